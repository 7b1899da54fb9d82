package srt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

const (
	statusSuccess        = "SUCC"
	codeLoginRequired    = "S111"
	codeAlreadyCancelled = "ERR800052"
	messageNoResults     = "조회 결과가 없습니다."
)

// Envelope is a decoded reply body. Payload fields stay raw until a caller
// projects them.
type Envelope map[string]json.RawMessage

// Result is the status triple every reply carries in resultMap.
type Result struct {
	Status  string `json:"strResult"`
	Code    string `json:"msgCd"`
	Message string `json:"msgTxt"`
}

// ParseEnvelope decodes body and validates its result descriptor. It returns
// the envelope only when exactly one descriptor is present and it reports
// success; every other reply becomes a *domain.Error.
func ParseEnvelope(body []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil || env == nil {
		return nil, domain.ErrProtocol
	}

	var results []Result
	if raw, ok := env["resultMap"]; ok {
		if err := json.Unmarshal(raw, &results); err != nil {
			return nil, domain.ErrProtocol
		}
	}
	if len(results) != 1 {
		return nil, domain.ErrProtocol
	}

	if err := classify(results[0]); err != nil {
		return nil, err
	}
	return env, nil
}

func classify(r Result) error {
	if r.Status == statusSuccess {
		return nil
	}
	kind := domain.KindUnknown
	switch r.Code {
	case codeLoginRequired:
		kind = domain.KindLoginRequired
	case codeAlreadyCancelled:
		kind = domain.KindAlreadyCancelled
	}
	return &domain.Error{Kind: kind, Code: r.Code, Message: r.Message}
}

// Result returns the single descriptor of a validated envelope.
func (e Envelope) Result() Result {
	var results []Result
	_ = json.Unmarshal(e["resultMap"], &results)
	if len(results) == 0 {
		return Result{}
	}
	return results[0]
}

// Decode unmarshals the payload found at a dotted path such as
// "outDataSets.dsOutput1" into dst.
func (e Envelope) Decode(path string, dst any) error {
	keys := strings.Split(path, ".")
	node := map[string]json.RawMessage(e)
	for i, key := range keys {
		raw, ok := node[key]
		if !ok {
			return fmt.Errorf("envelope has no %q: %w", path, domain.ErrProtocol)
		}
		if i == len(keys)-1 {
			if err := json.Unmarshal(raw, dst); err != nil {
				return fmt.Errorf("decode %q: %w", path, err)
			}
			return nil
		}
		node = nil
		if err := json.Unmarshal(raw, &node); err != nil {
			return fmt.Errorf("decode %q: %w", path, err)
		}
	}
	return nil
}
