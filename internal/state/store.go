package state

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/farewatch/fare-cli/internal/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS leg_state (
	key TEXT PRIMARY KEY,
	last_price REAL,
	alerted_below INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS price_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	key TEXT NOT NULL,
	observed_at TEXT NOT NULL,
	price REAL NOT NULL,
	note TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_price_history_key ON price_history(key, observed_at);
`

// Store persists per-itinerary alert state and the append-only price
// history in a single sqlite file. A missing file is a fresh store, never
// an error.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path. An empty path uses an
// in-memory database, which tests rely on.
func Open(path string) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init state schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the persisted state for a key. found is false when the key
// has never been observed.
func (s *Store) Load(key core.ItineraryKey) (core.LegState, bool, error) {
	var st core.LegState
	var price sql.NullFloat64
	var alerted int

	err := s.db.QueryRow(
		`SELECT last_price, alerted_below FROM leg_state WHERE key = ?`, key.String(),
	).Scan(&price, &alerted)
	if err == sql.ErrNoRows {
		return st, false, nil
	}
	if err != nil {
		return st, false, err
	}
	if price.Valid {
		v := price.Float64
		st.LastPrice = &v
	}
	st.AlertedBelow = alerted != 0
	return st, true, nil
}

// Save upserts the state for a key.
func (s *Store) Save(key core.ItineraryKey, st core.LegState) error {
	var price interface{}
	if st.LastPrice != nil {
		price = *st.LastPrice
	}
	alerted := 0
	if st.AlertedBelow {
		alerted = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO leg_state (key, last_price, alerted_below, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			last_price = excluded.last_price,
			alerted_below = excluded.alerted_below,
			updated_at = excluded.updated_at
	`, key.String(), price, alerted, time.Now().UTC().Format(time.RFC3339))
	return err
}

// AppendHistory records one observation. History rows are never rewritten.
func (s *Store) AppendHistory(key core.ItineraryKey, obs core.PriceObservation) error {
	_, err := s.db.Exec(
		`INSERT INTO price_history (key, observed_at, price, note) VALUES (?, ?, ?, ?)`,
		key.String(), obs.ObservedAt.UTC().Format(time.RFC3339), obs.Price, obs.Note,
	)
	return err
}

// History returns the most recent observations for a key, newest first.
func (s *Store) History(key core.ItineraryKey, limit int) ([]core.PriceObservation, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT observed_at, price, note FROM price_history
		WHERE key = ? ORDER BY id DESC LIMIT ?
	`, key.String(), limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []core.PriceObservation
	for rows.Next() {
		var obs core.PriceObservation
		var at string
		if err := rows.Scan(&at, &obs.Price, &obs.Note); err != nil {
			continue
		}
		if t, err := time.Parse(time.RFC3339, at); err == nil {
			obs.ObservedAt = t
		}
		out = append(out, obs)
	}
	return out, rows.Err()
}
