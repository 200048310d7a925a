package networth

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/networth-report/networth/date"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 8, 0, 0, 0, time.UTC)
}

func TestStoreSaveLoad(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	snap := testSnapshot(day(2025, time.January, 15),
		asset("a1", "Brokerage", USD(1000)),
		debt("d1", "Mortgage", USD(400)),
	)
	if err := store.Save(snap); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load(date.New(2025, time.January, 15))
	if err != nil {
		t.Fatal(err)
	}
	if !got.NetWorth.Equal(USD(600)) || got.Currency != "USD" {
		t.Errorf("loaded net worth = %s %s", got.NetWorth, got.Currency)
	}
	if len(got.Accounts) != 2 || got.Accounts[0].Name != "Brokerage" {
		t.Errorf("loaded accounts = %+v", got.Accounts)
	}
}

func TestStoreLoadAbsent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, err = store.Load(date.New(2025, time.January, 15))
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Load() error = %v, want ErrNoSnapshot", err)
	}
	if _, err := store.Latest(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Latest() error = %v, want ErrNoSnapshot", err)
	}
}

func TestStoreFilePermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(testSnapshot(day(2025, time.January, 15))); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Errorf("dir perm = %o, want 700", perm)
	}
	info, err = os.Stat(filepath.Join(dir, "snapshot_2025-01-15.json"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file perm = %o, want 600", perm)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	// Saved out of order, listed chronological.
	for _, d := range []time.Time{
		day(2025, time.March, 1),
		day(2025, time.January, 15),
		day(2025, time.February, 10),
	} {
		if err := store.Save(testSnapshot(d)); err != nil {
			t.Fatal(err)
		}
	}
	// Unrelated files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	days, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []date.Date{
		date.New(2025, time.January, 15),
		date.New(2025, time.February, 10),
		date.New(2025, time.March, 1),
	}
	if !slices.Equal(days, want) {
		t.Errorf("List() = %v, want %v", days, want)
	}

	latest, err := store.Latest()
	if err != nil {
		t.Fatal(err)
	}
	if latest.On() != date.New(2025, time.March, 1) {
		t.Errorf("Latest() on %s", latest.On())
	}
}

func TestStoreCleanup(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	today := date.New(2025, time.March, 15)
	kept := []date.Date{
		today,
		today.Add(-1),
		today.Add(-30),                 // inside retention
		date.New(2024, time.August, 26), // old Monday, milestone
	}
	dropped := []date.Date{
		date.New(2024, time.August, 27), // old Tuesday
		date.New(2024, time.December, 25),
	}
	for _, d := range append(append([]date.Date{}, kept...), dropped...) {
		if err := store.Save(testSnapshot(day(d.Year(), d.Month(), d.Day()))); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := store.Cleanup(today, 60)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != len(dropped) {
		t.Errorf("Cleanup() deleted %d, want %d", deleted, len(dropped))
	}
	days, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(days, []date.Date{kept[3], kept[2], kept[1], kept[0]}) {
		t.Errorf("List() after cleanup = %v", days)
	}

	// A second run finds nothing more to delete.
	deleted, err = store.Cleanup(today, 60)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 0 {
		t.Errorf("second Cleanup() deleted %d, want 0", deleted)
	}
}

func TestStoreCleanupNegativeRetention(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Cleanup(date.New(2025, time.March, 15), -1); !errors.Is(err, date.ErrNegativeRetention) {
		t.Errorf("Cleanup(-1) error = %v, want ErrNegativeRetention", err)
	}
}
