package models

import "github.com/uptrace/bun"

// Event is a scheduled live show. One event per date in practice,
// though the schema does not enforce it.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID              int64  `bun:"id,pk,autoincrement" json:"id"`
	Date            string `bun:"date,notnull" json:"date"` // YYYY-MM-DD
	Title           string `bun:"title,notnull" json:"title"`
	Description     string `bun:"description,nullzero" json:"description,omitempty"`
	OpenTime        string `bun:"open_time,nullzero" json:"open_time,omitempty"`
	StartTime       string `bun:"start_time,nullzero" json:"start_time,omitempty"`
	PerformanceTime string `bun:"performance_time,nullzero" json:"performance_time,omitempty"`
	Price           string `bun:"price,nullzero" json:"price,omitempty"`
	Location        string `bun:"location,nullzero" json:"location,omitempty"`
	ImageData       string `bun:"image_data,nullzero" json:"image_data,omitempty"` // base64
}

// EventSummary is the slice of an event the calendar needs.
type EventSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	ImageData string `json:"image_data,omitempty"`
}
