package domain

// Represents a single vending machine the user can be routed to.
// Only Coordinates takes part in planning; the remaining fields are
// display metadata carried through unchanged.
type Stop struct {
	ID          string
	Retailer    string
	MachineID   string
	Address     string
	City        string
	Coordinates Coordinates
}
