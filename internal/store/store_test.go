package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const tripsCSV = `trip_id,call_type,origin_call,origin_stand,taxi_id,timestamp,day_type,missing_data,polyline
1372636858620000589,C,,,20000589,1372636858,A,False,"[[-8.618643,41.141412],[-8.618499,41.141376]]"
1372637303620000596,B,,7,20000596,1372637303,A,False,"[[-8.639847,41.159826]]"
1372636951620000320,A,31508,,20000320,1372723260,A,True,"[]"
`

const driversCSV = `driver_id,vehicle,rating,trips_count
20000589,Mercedes Vito,4.7,1823
20000596,Toyota Prius,4.2,951
20000320,Dacia Lodgy,3.9,1204
`

func writeDataDir(t *testing.T, trips, drivers string) string {
	t.Helper()
	dir := t.TempDir()
	if trips != "" {
		if err := os.WriteFile(filepath.Join(dir, TripsFile), []byte(trips), 0o644); err != nil {
			t.Fatalf("write trips: %v", err)
		}
	}
	if drivers != "" {
		if err := os.WriteFile(filepath.Join(dir, DriversFile), []byte(drivers), 0o644); err != nil {
			t.Fatalf("write drivers: %v", err)
		}
	}
	return dir
}

func TestLoadKeepsFileOrder(t *testing.T) {
	dir := writeDataDir(t, tripsCSV, driversCSV)

	l := &Loader{DataDir: dir}
	snap, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(snap.Trips) != 3 || len(snap.Drivers) != 3 {
		t.Fatalf("unexpected row counts: trips=%d drivers=%d", len(snap.Trips), len(snap.Drivers))
	}

	wantIDs := []string{"1372636858620000589", "1372637303620000596", "1372636951620000320"}
	for i, want := range wantIDs {
		if snap.Trips[i].TripID != want {
			t.Fatalf("trip %d out of order: got %s, want %s", i, snap.Trips[i].TripID, want)
		}
	}
	if snap.Drivers[0].DriverID != 20000589 || snap.Drivers[2].DriverID != 20000320 {
		t.Fatalf("driver order broken: %+v", snap.Drivers)
	}
}

func TestLoadDerivesFields(t *testing.T) {
	dir := writeDataDir(t, tripsCSV, driversCSV)

	snap, err := (&Loader{DataDir: dir}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	first := snap.Trips[0]
	if first.DriverID != 20000589 || first.Timestamp != 1372636858 {
		t.Fatalf("unexpected first trip: %+v", first)
	}
	if first.OriginCall != nil || first.OriginStand != nil {
		t.Fatalf("empty optionals should be nil: %+v", first)
	}
	// 1372636858 and 1372637303 are both 2013-07-01 UTC; 1372723260 is the next day.
	if snap.Trips[0].DateKey != snap.Trips[1].DateKey {
		t.Fatalf("same-day trips got different date keys: %d vs %d", snap.Trips[0].DateKey, snap.Trips[1].DateKey)
	}
	if snap.Trips[2].DateKey != snap.Trips[0].DateKey+1 {
		t.Fatalf("next-day trip key: got %d, want %d", snap.Trips[2].DateKey, snap.Trips[0].DateKey+1)
	}
	if second := snap.Trips[1]; second.OriginStand == nil || *second.OriginStand != 7 {
		t.Fatalf("origin_stand not parsed: %+v", second)
	}
	if third := snap.Trips[2]; !third.MissingData || third.OriginCall == nil || *third.OriginCall != 31508 {
		t.Fatalf("third trip fields: %+v", third)
	}

	if d := snap.Drivers[1]; d.Vehicle != "Toyota Prius" || d.Rating != 4.2 || d.TripsCount != 951 {
		t.Fatalf("driver fields: %+v", d)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	dir := writeDataDir(t, tripsCSV, driversCSV)

	l := &Loader{DataDir: dir}
	first, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}

	// Corrupt the files; the second call must return the existing snapshot
	// without touching disk.
	if err := os.WriteFile(filepath.Join(dir, TripsFile), []byte("broken"), 0o644); err != nil {
		t.Fatalf("overwrite trips: %v", err)
	}
	second, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if first != second {
		t.Fatalf("Load is not idempotent: %p vs %p", first, second)
	}
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	dir := writeDataDir(t, tripsCSV, "")

	if _, err := (&Loader{DataDir: dir}).Load(context.Background()); err == nil {
		t.Fatal("expected error for missing drivers file")
	}
}

func TestLoadFailsOnSchemaMismatch(t *testing.T) {
	bad := strings.Replace(tripsCSV, "taxi_id", "cab_id", 1)
	dir := writeDataDir(t, bad, driversCSV)

	_, err := (&Loader{DataDir: dir}).Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "schema mismatch") {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func TestLoadFailsOnBadNumericField(t *testing.T) {
	bad := strings.Replace(tripsCSV, "1372636858,", "notatime,", 1)
	dir := writeDataDir(t, bad, driversCSV)

	if _, err := (&Loader{DataDir: dir}).Load(context.Background()); err == nil {
		t.Fatal("expected error for non-numeric timestamp")
	}
}

type fakeDownloader struct {
	files map[string]string
	calls []string
}

func (f *fakeDownloader) Download(_ context.Context, name, localPath string) error {
	f.calls = append(f.calls, name)
	return os.WriteFile(localPath, []byte(f.files[name]), 0o644)
}

func TestLoadDownloadsWhenFilesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	dl := &fakeDownloader{files: map[string]string{
		TripsFile:   tripsCSV,
		DriversFile: driversCSV,
	}}
	l := &Loader{DataDir: dir, Downloader: dl}

	snap, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(snap.Trips) != 3 {
		t.Fatalf("downloaded data not loaded: %d trips", len(snap.Trips))
	}
	if len(dl.calls) != 2 {
		t.Fatalf("expected both objects downloaded, got %v", dl.calls)
	}
}

func TestParseBucket(t *testing.T) {
	cases := []struct {
		in, bucket, prefix string
	}{
		{"taxi-data", "taxi-data", ""},
		{"taxi-data/porto", "taxi-data", "porto/"},
		{"taxi-data/porto/", "taxi-data", "porto/"},
		{"taxi-data/porto/v2", "taxi-data", "porto/v2/"},
	}
	for _, tc := range cases {
		bucket, prefix := ParseBucket(tc.in)
		if bucket != tc.bucket || prefix != tc.prefix {
			t.Fatalf("ParseBucket(%q) = (%q, %q), want (%q, %q)", tc.in, bucket, prefix, tc.bucket, tc.prefix)
		}
	}
}
