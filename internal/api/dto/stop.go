package dto

type StopResponse struct {
	ID        string  `json:"id"`
	Retailer  string  `json:"retailer"`
	MachineID string  `json:"machine_id"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ListStopsResponse struct {
	Stops []StopResponse `json:"stops"`
}
