package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"vending-route-service/internal/domain"
	"vending-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the StopRepository port.
type PostgresStopRepository struct{ DB *sql.DB }

func NewPostgresStopRepository(db *sql.DB) *PostgresStopRepository {
	return &PostgresStopRepository{DB: db}
}

// Return all vending machines stored in the database, ordered by id.
func (p *PostgresStopRepository) ListStops(ctx context.Context) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "stops.postgres.List")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres stop repository: DB is nil")
	}

	query := `
	SELECT
		id,
		retailer,
		machine_id,
		address,
		city,
		latitude,
		longitude
	FROM vending_machines
	ORDER BY id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stops: query vending_machines table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 64)
	for rows.Next() {
		var s domain.Stop
		if err := rows.Scan(
			&s.ID, &s.Retailer, &s.MachineID, &s.Address, &s.City,
			&s.Coordinates.Lat, &s.Coordinates.Lon,
		); err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}
		stops = append(stops, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}
