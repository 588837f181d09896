package domain

// Trip is one historical taxi journey, replayed as if live.
// Rows are immutable after load; the table is read-only at request time.
type Trip struct {
	TripID      string `json:"trip_id"`
	CallType    string `json:"call_type"`
	OriginCall  *int64 `json:"origin_call"`
	OriginStand *int64 `json:"origin_stand"`
	DriverID    int64  `json:"driver_id"`
	Timestamp   int64  `json:"timestamp"`
	DayType     string `json:"day_type"`
	MissingData bool   `json:"missing_data"`
	Polyline    string `json:"polyline"`

	// DateKey is the UTC calendar day of Timestamp (days since epoch),
	// derived once at load so the date filter is an integer compare.
	DateKey int64 `json:"-"`
}

// Driver carries per-taxi aggregates produced by the upstream ETL.
type Driver struct {
	DriverID   int64   `json:"driver_id"`
	Vehicle    string  `json:"vehicle"`
	Rating     float64 `json:"rating"`
	TripsCount int64   `json:"trips_count"`
}

// Page carries offset/limit windowing params.
type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// TripFilter holds the optional trips filters; nil means absent.
type TripFilter struct {
	DriverID *int64
	// Date is a unix timestamp in seconds; it matches trips whose start
	// falls on the same UTC calendar day (exact-day match, not a range).
	Date *int64
}
