package domain

import "fmt"

// stations lists the SRT network, main line stations first.
var stations = []Station{
	{Code: "0551", Name: "수서"},
	{Code: "0552", Name: "동탄"},
	{Code: "0553", Name: "평택지제"},
	{Code: "0502", Name: "천안아산"},
	{Code: "0297", Name: "오송"},
	{Code: "0010", Name: "대전"},
	{Code: "0514", Name: "공주"},
	{Code: "0030", Name: "익산"},
	{Code: "0033", Name: "정읍"},
	{Code: "0036", Name: "광주송정"},
	{Code: "0037", Name: "나주"},
	{Code: "0041", Name: "목포"},
	{Code: "0506", Name: "서대구"},
	{Code: "0507", Name: "김천구미"},
	{Code: "0015", Name: "동대구"},
	{Code: "0508", Name: "신경주"},
	{Code: "0509", Name: "울산(통도사)"},
	{Code: "0020", Name: "부산"},
	{Code: "0683", Name: "경주"},
	{Code: "0515", Name: "포항"},
	{Code: "0017", Name: "밀양"},
	{Code: "0056", Name: "진영"},
	{Code: "0512", Name: "창원중앙"},
	{Code: "0057", Name: "창원"},
	{Code: "0059", Name: "마산"},
	{Code: "0063", Name: "진주"},
	{Code: "0139", Name: "여수EXPO"},
	{Code: "0045", Name: "전주"},
	{Code: "0049", Name: "남원"},
	{Code: "0051", Name: "곡성"},
	{Code: "0053", Name: "구례구"},
	{Code: "0054", Name: "순천"},
	{Code: "0138", Name: "여천"},
}

var stationCodes = func() map[string]string {
	m := make(map[string]string, len(stations))
	for _, s := range stations {
		m[s.Name] = s.Code
	}
	return m
}()

var stationNames = invert(stationCodes)

type Station struct {
	Code string
	Name string
}

// Stations returns every known station in network order.
func Stations() []Station {
	return append([]Station(nil), stations...)
}

func (s Station) String() string {
	return fmt.Sprintf("%s역", s.Name)
}

// GetStation resolves a station by its display name.
func GetStation(name string) (Station, error) {
	code, ok := stationCodes[name]
	if !ok {
		return Station{}, ErrStationNotFound
	}
	return Station{Code: code, Name: name}, nil
}

// StationByCode builds a Station from a code found in a response. Unknown
// codes keep an empty name.
func StationByCode(code string) Station {
	return Station{Code: code, Name: stationNames[code]}
}

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
