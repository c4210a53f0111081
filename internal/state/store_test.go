package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/farewatch/fare-cli/internal/core"
)

func testKey() core.ItineraryKey {
	return core.KeyFor(core.ItinerarySpec{Legs: []core.RouteSpec{{
		Origin: "SJU", Destination: "FCO", Date: "2026-05-06", Time: "20:25",
	}}})
}

func TestStore_LoadUnknownKey(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	_, found, err := s.Load(testKey())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if found {
		t.Error("fresh store must report the key as unseen")
	}
}

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	price := 2100.50
	want := core.LegState{LastPrice: &price, AlertedBelow: true}
	if err := s.Save(testKey(), want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, found, err := s.Load(testKey())
	if err != nil || !found {
		t.Fatalf("load failed: %v found=%v", err, found)
	}
	if got.LastPrice == nil || *got.LastPrice != price || !got.AlertedBelow {
		t.Errorf("round trip mismatch: %+v", got)
	}

	// Upsert overwrites in place.
	price2 := 1999.00
	if err := s.Save(testKey(), core.LegState{LastPrice: &price2}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	got, _, _ = s.Load(testKey())
	if *got.LastPrice != price2 || got.AlertedBelow {
		t.Errorf("upsert mismatch: %+v", got)
	}
}

func TestStore_NullLastPrice(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Save(testKey(), core.LegState{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, found, err := s.Load(testKey())
	if err != nil || !found {
		t.Fatalf("load failed: %v", err)
	}
	if got.LastPrice != nil {
		t.Errorf("expected null last price, got %v", *got.LastPrice)
	}
}

func TestStore_HistoryAppendOnlyNewestFirst(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	base := time.Date(2026, 5, 6, 12, 0, 0, 0, time.UTC)
	for i, price := range []float64{2400, 2300, 2100} {
		err := s.AppendHistory(testKey(), core.PriceObservation{
			ObservedAt: base.Add(time.Duration(i) * time.Hour),
			Price:      price,
			Note:       "run",
		})
		if err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	obs, err := s.History(testKey(), 2)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(obs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(obs))
	}
	if obs[0].Price != 2100 || obs[1].Price != 2300 {
		t.Errorf("expected newest first, got %v then %v", obs[0].Price, obs[1].Price)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	price := 2100.0
	if err := s.Save(testKey(), core.LegState{LastPrice: &price}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	_ = s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = s2.Close() }()

	got, found, err := s2.Load(testKey())
	if err != nil || !found {
		t.Fatalf("load after reopen failed: %v found=%v", err, found)
	}
	if *got.LastPrice != price {
		t.Errorf("state lost across reopen: %+v", got)
	}
}
