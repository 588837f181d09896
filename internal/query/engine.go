// Package query applies filtering and offset/limit pagination over the
// snapshot loaded at startup. Results keep the table's insertion order;
// nothing here sorts.
package query

import (
	"fmt"

	"taxiapi/internal/domain"
	"taxiapi/internal/store"
	"taxiapi/internal/utils"
)

// Engine serves read-only listings from one immutable snapshot.
type Engine struct {
	snap     *store.Snapshot
	maxLimit int
}

func New(snap *store.Snapshot, maxLimit int) *Engine {
	return &Engine{snap: snap, maxLimit: maxLimit}
}

// TripsResult is one materialized page of trips plus the total match count.
type TripsResult struct {
	Total int
	Trips []domain.Trip
}

// DriversResult is one materialized page of drivers plus the total count.
type DriversResult struct {
	Total   int
	Drivers []domain.Driver
}

// Trips filters by the optional driver id and date, then windows the matches
// with offset/limit. An empty page is NOT_FOUND: zero matches, or an offset
// beyond the end of a non-empty filtered set.
func (e *Engine) Trips(f domain.TripFilter, p domain.Page) (TripsResult, error) {
	if err := e.checkPage(p); err != nil {
		return TripsResult{}, err
	}

	var dateKey int64
	if f.Date != nil {
		dateKey = utils.DayKey(*f.Date)
	}

	total := 0
	page := []domain.Trip{}
	for _, t := range e.snap.Trips {
		if f.DriverID != nil && t.DriverID != *f.DriverID {
			continue
		}
		if f.Date != nil && t.DateKey != dateKey {
			continue
		}
		if total >= p.Offset && len(page) < p.Limit {
			page = append(page, t)
		}
		total++
	}

	if len(page) == 0 {
		return TripsResult{}, domain.NotFoundError{Resource: "trips"}
	}
	return TripsResult{Total: total, Trips: page}, nil
}

// Drivers windows the drivers table with offset/limit. No filters.
func (e *Engine) Drivers(p domain.Page) (DriversResult, error) {
	if err := e.checkPage(p); err != nil {
		return DriversResult{}, err
	}

	total := len(e.snap.Drivers)
	if p.Offset >= total {
		return DriversResult{}, domain.NotFoundError{Resource: "drivers"}
	}

	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	page := e.snap.Drivers[p.Offset:end]
	if len(page) == 0 {
		return DriversResult{}, domain.NotFoundError{Resource: "drivers"}
	}
	return DriversResult{Total: total, Drivers: page}, nil
}

func (e *Engine) checkPage(p domain.Page) error {
	if p.Offset < 0 {
		return domain.ValidationError{Field: "offset", Msg: "must be >= 0"}
	}
	if p.Limit < 1 {
		return domain.ValidationError{Field: "limit", Msg: "must be >= 1"}
	}
	if p.Limit > e.maxLimit {
		return domain.ValidationError{Field: "limit", Msg: fmt.Sprintf("must be <= %d", e.maxLimit)}
	}
	return nil
}
