package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"vending-route-service/internal/domain"
)

// StopSeed mirrors one record of the vending machine data file.
type StopSeed struct {
	ID        string  `json:"id"`
	Retailer  string  `json:"retailer"`
	MachineID string  `json:"machineID"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LoadStopsJSON reads and validates the vending machine data file.
// Records keep their file order.
func LoadStopsJSON(jsonPath string) ([]domain.Stop, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load stops: read %q: %w", jsonPath, err)
	}

	var data []StopSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load stops: parse json: %w", err)
	}

	seen := make(map[string]struct{}, len(data))
	stops := make([]domain.Stop, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return nil, fmt.Errorf("load stops: item at index %d: id cannot be empty", i+1)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("load stops: item at index %d: duplicate id %q", i+1, id)
		}
		seen[id] = struct{}{}

		c := domain.Coordinates{Lat: item.Latitude, Lon: item.Longitude}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("load stops: item id=%q: %w", id, err)
		}

		stops = append(stops, domain.Stop{
			ID:          id,
			Retailer:    strings.TrimSpace(item.Retailer),
			MachineID:   strings.TrimSpace(item.MachineID),
			Address:     strings.TrimSpace(item.Address),
			City:        strings.TrimSpace(item.City),
			Coordinates: c,
		})
	}

	return stops, nil
}

// JSON file implementation of the StopRepository port.
// The file is read on every call so edits show up without a restart.
type JSONStopRepository struct {
	Path string
}

func NewJSONStopRepository(path string) *JSONStopRepository {
	return &JSONStopRepository{Path: path}
}

func (j *JSONStopRepository) ListStops(ctx context.Context) ([]domain.Stop, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadStopsJSON(j.Path)
}
