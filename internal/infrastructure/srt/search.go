package srt

import (
	"context"
	"errors"
	"iter"
	"net/url"
	"time"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

const pathSearch = "/ara/selectListAra10007_n.do"

// Find lists trains from one station to another departing at or after date.
// A zero date searches today from midnight. The service only answers with a
// bounded window of the nearest trains; with all set, Find keeps asking for
// the next window until an empty one comes back. Trains sharing the last
// second of a window may show up twice.
func (c *Client) Find(ctx context.Context, from, to domain.Station, date time.Time, all bool) ([]*domain.Train, error) {
	if !all {
		return c.searchPage(ctx, from, to, date)
	}

	var trains []*domain.Train
	for page, err := range c.Pages(ctx, from, to, date) {
		if err != nil {
			return nil, err
		}
		trains = append(trains, page...)
	}
	return trains, nil
}

// Pages yields consecutive schedule windows in departure order. Each window
// starts one second after the last departure of the previous one and the
// sequence ends at the first empty window or error. Ranging again restarts
// from date.
func (c *Client) Pages(ctx context.Context, from, to domain.Station, date time.Time) iter.Seq2[[]*domain.Train, error] {
	return func(yield func([]*domain.Train, error) bool) {
		anchor := date
		for {
			page, err := c.searchPage(ctx, from, to, anchor)
			if err != nil {
				yield(nil, err)
				return
			}
			if len(page) == 0 {
				return
			}
			if !yield(page, nil) {
				return
			}
			anchor = page[len(page)-1].DepartureTime.Add(time.Second)
		}
	}
}

func (c *Client) searchPage(ctx context.Context, from, to domain.Station, date time.Time) ([]*domain.Train, error) {
	day, clock := searchDateTime(date)
	form := url.Values{
		"chtnDvCd":      {"1"},
		"arriveTime":    {"N"},
		"seatAttCd":     {"015"},
		"psgNum":        {"1"},
		"trnGpCd":       {"109"},
		"stlbTrnClsfCd": {"05"},
		"dptDt":         {day},
		"dptTm":         {clock},
		"arvRsStnCd":    {to.Code},
		"dptRsStnCd":    {from.Code},
	}

	env, err := c.call(ctx, pathSearch, form)
	c.metrics.observeSearchPage()
	if err != nil {
		var e *domain.Error
		if errors.As(err, &e) && e.Message == messageNoResults {
			return []*domain.Train{}, nil
		}
		return nil, err
	}
	if env.Result().Message == messageNoResults {
		return []*domain.Train{}, nil
	}

	var rows []trainRow
	if err := env.Decode("outDataSets.dsOutput1", &rows); err != nil {
		return nil, err
	}
	trains := make([]*domain.Train, 0, len(rows))
	for _, r := range rows {
		trains = append(trains, r.train())
	}
	return trains, nil
}

func searchDateTime(date time.Time) (day, clock string) {
	if date.IsZero() {
		return time.Now().In(domain.KST).Format("20060102"), "000000"
	}
	date = date.In(domain.KST)
	return date.Format("20060102"), date.Format("150405")
}
