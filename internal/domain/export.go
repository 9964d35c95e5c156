package domain

import "time"

// ExportRow is one item of a trip flattened for export.
// Lists appear in ListKinds order; Person is "-" for kinds without one.
type ExportRow struct {
	TripID    string    `json:"trip_id"`
	TripName  string    `json:"trip_name"`
	Kind      ListKind  `json:"kind"`
	Text      string    `json:"text"`
	Person    string    `json:"person"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}
