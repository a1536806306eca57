package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"fomezero/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS datasets (
  checksum TEXT PRIMARY KEY,
  source TEXT NOT NULL,
  rowsRead INTEGER NOT NULL,
  droppedMissing INTEGER NOT NULL,
  droppedDuplicates INTEGER NOT NULL,
  rowsKept INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS restaurants (
  checksum TEXT NOT NULL,
  position INTEGER NOT NULL,
  restaurant_id INTEGER NOT NULL,
  restaurant_name TEXT NOT NULL,
  country TEXT NOT NULL,
  city TEXT NOT NULL,
  address TEXT NOT NULL,
  locality TEXT NOT NULL,
  locality_verbose TEXT NOT NULL,
  longitude REAL NOT NULL,
  latitude REAL NOT NULL,
  cuisines TEXT NOT NULL,
  price_type TEXT NOT NULL,
  average_cost_for_two INTEGER NOT NULL,
  currency TEXT NOT NULL,
  has_table_booking INTEGER NOT NULL,
  has_online_delivery INTEGER NOT NULL,
  is_delivering_now INTEGER NOT NULL,
  aggregate_rating REAL NOT NULL,
  rating_color TEXT NOT NULL,
  color_name TEXT NOT NULL,
  rating_text TEXT NOT NULL,
  votes INTEGER NOT NULL,
  PRIMARY KEY(checksum, position),
  FOREIGN KEY(checksum) REFERENCES datasets(checksum)
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  checksum TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// SaveDataset replaces any stored copy of the dataset with the same checksum.
func (d *DB) SaveDataset(ds internal.Dataset) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM restaurants WHERE checksum = ?`, ds.Checksum); err != nil {
		return err
	}
	if _, err := tx.Exec(`
INSERT INTO datasets (checksum, source, rowsRead, droppedMissing, droppedDuplicates, rowsKept)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(checksum) DO UPDATE SET
  source=excluded.source,
  rowsRead=excluded.rowsRead,
  droppedMissing=excluded.droppedMissing,
  droppedDuplicates=excluded.droppedDuplicates,
  rowsKept=excluded.rowsKept,
  createdAt=CURRENT_TIMESTAMP
`, ds.Checksum, ds.Source, ds.Stats.Read, ds.Stats.DroppedMissing, ds.Stats.DroppedDuplicates, ds.Stats.Kept); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO restaurants (
  checksum, position, restaurant_id, restaurant_name, country, city, address,
  locality, locality_verbose, longitude, latitude, cuisines, price_type,
  average_cost_for_two, currency, has_table_booking, has_online_delivery,
  is_delivering_now, aggregate_rating, rating_color, color_name, rating_text, votes
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range ds.Records {
		if _, err := stmt.Exec(
			ds.Checksum, i, r.RestaurantID, r.RestaurantName, r.Country, r.City, r.Address,
			r.Locality, r.LocalityVerbose, r.Longitude, r.Latitude, r.Cuisines, r.PriceType,
			r.AverageCostForTwo, r.Currency, bool(r.HasTableBooking), bool(r.HasOnlineDelivery),
			bool(r.IsDeliveringNow), r.AggregateRating, r.RatingColor, r.ColorName, r.RatingText, r.Votes,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetDataset returns nil when no dataset with the checksum is stored.
func (d *DB) GetDataset(checksum string) (*internal.Dataset, error) {
	ds := internal.Dataset{Checksum: checksum}
	err := d.conn.QueryRow(`
SELECT source, rowsRead, droppedMissing, droppedDuplicates, rowsKept
FROM datasets WHERE checksum = ?
`, checksum).Scan(&ds.Source, &ds.Stats.Read, &ds.Stats.DroppedMissing, &ds.Stats.DroppedDuplicates, &ds.Stats.Kept)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := d.conn.Query(`
SELECT restaurant_id, restaurant_name, country, city, address,
       locality, locality_verbose, longitude, latitude, cuisines, price_type,
       average_cost_for_two, currency, has_table_booking, has_online_delivery,
       is_delivering_now, aggregate_rating, rating_color, color_name, rating_text, votes
FROM restaurants WHERE checksum = ? ORDER BY position ASC
`, checksum)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ds.Records = make([]internal.CanonicalRecord, 0, ds.Stats.Kept)
	for rows.Next() {
		var r internal.CanonicalRecord
		var booking, delivery, delivering bool
		if err := rows.Scan(
			&r.RestaurantID, &r.RestaurantName, &r.Country, &r.City, &r.Address,
			&r.Locality, &r.LocalityVerbose, &r.Longitude, &r.Latitude, &r.Cuisines, &r.PriceType,
			&r.AverageCostForTwo, &r.Currency, &booking, &delivery,
			&delivering, &r.AggregateRating, &r.RatingColor, &r.ColorName, &r.RatingText, &r.Votes,
		); err != nil {
			return nil, err
		}
		r.HasTableBooking = internal.Flag(booking)
		r.HasOnlineDelivery = internal.Flag(delivery)
		r.IsDeliveringNow = internal.Flag(delivering)
		ds.Records = append(ds.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ds.Records) != ds.Stats.Kept {
		return nil, fmt.Errorf("dataset %s: stored %d rows, expected %d", checksum, len(ds.Records), ds.Stats.Kept)
	}
	return &ds, nil
}

// PruneDatasets keeps the most recent keep datasets and drops the rest.
func (d *DB) PruneDatasets(keep int) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stale := `SELECT checksum FROM datasets ORDER BY createdAt DESC, rowid DESC LIMIT -1 OFFSET ?`
	if _, err := tx.Exec(`DELETE FROM restaurants WHERE checksum IN (`+stale+`)`, keep); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM datasets WHERE checksum IN (`+stale+`)`, keep); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) CountDatasets() (int, error) {
	var n int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM datasets`).Scan(&n)
	return n, err
}

func (d *DB) InsertRun(traceID, checksum string, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, checksum, timingsJson, countsJson) VALUES (?, ?, ?, ?)`, traceID, checksum, string(timingsJSON), string(countsJSON))
	return err
}

func (d *DB) ListRuns(limit int) ([]internal.RunRow, error) {
	rows, err := d.conn.Query(`
SELECT id, traceId, checksum, timingsJson, countsJson, createdAt
FROM runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRow
	for rows.Next() {
		var row internal.RunRow
		var timingsJSON, countsJSON string
		if err := rows.Scan(&row.ID, &row.TraceID, &row.Checksum, &timingsJSON, &countsJSON, &row.CreatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(timingsJSON), &row.Timings)
		_ = json.Unmarshal([]byte(countsJSON), &row.Counts)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
