package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"vending-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vending_machines.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadStopsJSON(t *testing.T) {
	path := writeFile(t, `[
		{"id": "2", "retailer": " Circle K ", "machineID": "CK-9", "address": "1 Main St", "city": "Phoenix", "latitude": 33.45, "longitude": -112.07},
		{"id": "1", "retailer": "Walgreens", "machineID": "W-1", "address": "2 Elm St", "city": "Tempe", "latitude": 33.42, "longitude": -111.94}
	]`)

	stops, err := LoadStopsJSON(path)
	require.NoError(t, err)
	require.Len(t, stops, 2)

	assert.Equal(t, domain.Stop{
		ID:          "2",
		Retailer:    "Circle K",
		MachineID:   "CK-9",
		Address:     "1 Main St",
		City:        "Phoenix",
		Coordinates: domain.Coordinates{Lat: 33.45, Lon: -112.07},
	}, stops[0])
	assert.Equal(t, "1", stops[1].ID, "file order must be preserved")
}

func TestLoadStopsJSONRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{name: "missing id", content: `[{"id": " ", "latitude": 1, "longitude": 1}]`},
		{name: "duplicate id", content: `[{"id": "a", "latitude": 1, "longitude": 1}, {"id": "a", "latitude": 2, "longitude": 2}]`},
		{name: "latitude out of range", content: `[{"id": "a", "latitude": 91, "longitude": 1}]`, target: domain.ErrInvalidCoordinate},
		{name: "longitude out of range", content: `[{"id": "a", "latitude": 1, "longitude": -200}]`, target: domain.ErrInvalidCoordinate},
		{name: "not json", content: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStopsJSON(writeFile(t, tt.content))
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "err = %v", err)
			}
		})
	}
}

func TestLoadStopsJSONMissingFile(t *testing.T) {
	_, err := LoadStopsJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestJSONStopRepositoryListStops(t *testing.T) {
	repo := NewJSONStopRepository(writeFile(t, `[{"id": "a", "latitude": 1, "longitude": 2}]`))

	stops, err := repo.ListStops(context.Background())
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, domain.Coordinates{Lat: 1, Lon: 2}, stops[0].Coordinates)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.ListStops(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
