// Package history persists battery state points and reconciles them into
// renderable intervals for the level chart.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/kusaanko/BatFi/pkg/notify"
	"github.com/kusaanko/BatFi/pkg/power"
)

const schema = `
CREATE TABLE IF NOT EXISTS power_states (
	id TEXT PRIMARY KEY,
	timestamp INTEGER NOT NULL,
	battery_level INTEGER NOT NULL,
	mode TEXT NOT NULL,
	charger_connected INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_power_states_ts ON power_states(timestamp);
`

// Store is the sqlite-backed state point store. Appends fire a payloadless
// change notification so observers can re-query their window.
type Store struct {
	db      *sql.DB
	changes *notify.Bridge
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{
		db:      db,
		changes: notify.NewBridge(),
	}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Changes is the payloadless notification source fired on every append.
func (s *Store) Changes() *notify.Bridge {
	return s.changes
}

// Append inserts p and notifies observers.
func (s *Store) Append(p power.StatePoint) error {
	_, err := s.db.Exec(
		"INSERT INTO power_states (id, timestamp, battery_level, mode, charger_connected) VALUES (?, ?, ?, ?, ?)",
		p.ID.String(), p.Timestamp.Unix(), p.BatteryLevel, string(p.Mode), p.ChargerConnected,
	)
	if err != nil {
		return fmt.Errorf("insert state point: %w", err)
	}
	s.changes.Notify()
	return nil
}

// PointsInRange returns state points with from <= timestamp <= to, ordered
// by timestamp ascending.
func (s *Store) PointsInRange(from, to time.Time) ([]power.StatePoint, error) {
	rows, err := s.db.Query(
		"SELECT id, timestamp, battery_level, mode, charger_connected FROM power_states WHERE timestamp >= ? AND timestamp <= ? ORDER BY timestamp ASC",
		from.Unix(), to.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("query state points: %w", err)
	}
	defer rows.Close()

	var points []power.StatePoint
	for rows.Next() {
		var (
			id   string
			ts   int64
			mode string
			p    power.StatePoint
		)
		if err := rows.Scan(&id, &ts, &p.BatteryLevel, &mode, &p.ChargerConnected); err != nil {
			return nil, fmt.Errorf("scan state point: %w", err)
		}
		p.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse state point id %q: %w", id, err)
		}
		p.Timestamp = time.Unix(ts, 0)
		p.Mode = power.AppChargingMode(mode)
		points = append(points, p)
	}
	return points, rows.Err()
}

// DeleteOlderThan removes state points recorded before cutoff and returns
// how many were removed.
func (s *Store) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM power_states WHERE timestamp < ?", cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete state points: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logrus.Debugf("removed %d state points older than %s", n, cutoff)
	}
	return n, nil
}
