package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createMachinesQuery := `
	CREATE TABLE IF NOT EXISTS vending_machines (
		id TEXT PRIMARY KEY,
		retailer TEXT NOT NULL DEFAULT '',
		machine_id TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
		longitude DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_vending_machines_city
	ON vending_machines(city);
	`

	statements := []string{
		createMachinesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with vending machines from a JSON file.
// Existing rows with the same id are replaced.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed stops: DB is nil")
	}

	stops, err := LoadStopsJSON(jsonPath)
	if err != nil {
		return fmt.Errorf("seed stops: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO vending_machines (
		id,
		retailer,
		machine_id,
		address,
		city,
		latitude,
		longitude
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE
	SET retailer = EXCLUDED.retailer,
		machine_id = EXCLUDED.machine_id,
		address = EXCLUDED.address,
		city = EXCLUDED.city,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed stops: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range stops {
		if _, err := stmt.Exec(
			s.ID, s.Retailer, s.MachineID, s.Address, s.City,
			s.Coordinates.Lat, s.Coordinates.Lon,
		); err != nil {
			return fmt.Errorf("seed stops: insert id=%q: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stops: commit tx: %w", err)
	}

	return nil
}
