// Package store performs the one-time load of the trips and drivers tables
// into an immutable in-memory snapshot. Row order follows file order; the
// query layer depends on that order staying fixed.
package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"taxiapi/internal/domain"
	"taxiapi/internal/utils"
)

const (
	TripsFile   = "trips.csv"
	DriversFile = "drivers.csv"
)

var tripsHeader = []string{
	"trip_id", "call_type", "origin_call", "origin_stand",
	"taxi_id", "timestamp", "day_type", "missing_data", "polyline",
}

var driversHeader = []string{"driver_id", "vehicle", "rating", "trips_count"}

// Snapshot is the immutable, shared copy of both tables. It is built once at
// startup and handed by reference to every request handler; nothing mutates
// it afterwards, so no locking is needed on the read path.
type Snapshot struct {
	Trips   []domain.Trip
	Drivers []domain.Driver
}

// Downloader fetches one named data file into a local path. *S3Downloader is
// the production implementation; tests substitute a func-backed fake.
type Downloader interface {
	Download(ctx context.Context, name, localPath string) error
}

// Loader loads the snapshot from a local directory, falling back to a
// download when the files are not present and a Downloader is configured.
type Loader struct {
	DataDir    string
	Downloader Downloader

	mu   sync.Mutex
	snap *Snapshot
}

// Load builds the snapshot. It is idempotent: a second call returns the
// snapshot built by the first. Any failure (missing file, unreadable file,
// schema mismatch) is returned to the caller, which treats it as fatal.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.snap != nil {
		return l.snap, nil
	}

	tripsPath := filepath.Join(l.DataDir, TripsFile)
	driversPath := filepath.Join(l.DataDir, DriversFile)

	if !fileExists(tripsPath) || !fileExists(driversPath) {
		if l.Downloader == nil {
			return nil, fmt.Errorf("data files missing in %s and no object storage configured", l.DataDir)
		}
		if err := l.download(ctx, tripsPath, driversPath); err != nil {
			return nil, err
		}
	}

	trips, err := readTrips(tripsPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", TripsFile, err)
	}
	drivers, err := readDrivers(driversPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", DriversFile, err)
	}

	l.snap = &Snapshot{Trips: trips, Drivers: drivers}
	utils.LogEvent("", "store", "load",
		fmt.Sprintf("trips=%d drivers=%d dir=%s", len(trips), len(drivers), l.DataDir))
	return l.snap, nil
}

func (l *Loader) download(ctx context.Context, tripsPath, driversPath string) error {
	if err := os.MkdirAll(l.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	for name, local := range map[string]string{
		TripsFile:   tripsPath,
		DriversFile: driversPath,
	} {
		utils.LogEvent("", "store", "download", "object="+name)
		if err := l.Downloader.Download(ctx, name, local); err != nil {
			return fmt.Errorf("download %s: %w", name, err)
		}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// openCSV opens the file and verifies the header matches the expected schema
// exactly. Partial or reordered headers are a schema mismatch.
func openCSV(path string, want []string) (*os.File, *csv.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r := csv.NewReader(f)
	r.ReuseRecord = false

	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(want) {
		f.Close()
		return nil, nil, fmt.Errorf("schema mismatch: got %d columns, want %d", len(header), len(want))
	}
	for i, col := range want {
		if header[i] != col {
			f.Close()
			return nil, nil, fmt.Errorf("schema mismatch: column %d is %q, want %q", i, header[i], col)
		}
	}
	return f, r, nil
}

func readTrips(path string) ([]domain.Trip, error) {
	f, r, err := openCSV(path, tripsHeader)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	trips := []domain.Trip{}
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		driverID, err := strconv.ParseInt(rec[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: taxi_id: %w", line, err)
		}
		ts, err := strconv.ParseInt(rec[5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: timestamp: %w", line, err)
		}
		missing, err := strconv.ParseBool(rec[7])
		if err != nil {
			return nil, fmt.Errorf("line %d: missing_data: %w", line, err)
		}
		originCall, err := optionalInt(rec[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: origin_call: %w", line, err)
		}
		originStand, err := optionalInt(rec[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: origin_stand: %w", line, err)
		}

		trips = append(trips, domain.Trip{
			TripID:      rec[0],
			CallType:    rec[1],
			OriginCall:  originCall,
			OriginStand: originStand,
			DriverID:    driverID,
			Timestamp:   ts,
			DayType:     rec[6],
			MissingData: missing,
			Polyline:    rec[8],
			DateKey:     utils.DayKey(ts),
		})
	}
	return trips, nil
}

func readDrivers(path string) ([]domain.Driver, error) {
	f, r, err := openCSV(path, driversHeader)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	drivers := []domain.Driver{}
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: driver_id: %w", line, err)
		}
		rating, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: rating: %w", line, err)
		}
		count, err := strconv.ParseInt(rec[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: trips_count: %w", line, err)
		}

		drivers = append(drivers, domain.Driver{
			DriverID:   id,
			Vehicle:    rec[1],
			Rating:     rating,
			TripsCount: count,
		})
	}
	return drivers, nil
}

func optionalInt(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
