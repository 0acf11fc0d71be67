package models

import "github.com/uptrace/bun"

// Reservation is a booking of People attendees against one event.
// EventID is not a real foreign key: deleting the event leaves the
// reservation dangling and readers must tolerate that.
type Reservation struct {
	bun.BaseModel `bun:"table:reservations"`

	ID      int64  `bun:"id,pk,autoincrement" json:"id"`
	EventID int64  `bun:"event_id,notnull" json:"event_id"`
	UserID  *int64 `bun:"user_id,nullzero" json:"user_id,omitempty"`
	Name    string `bun:"name,notnull" json:"name"`
	People  int    `bun:"people,notnull" json:"people"`
	Email   string `bun:"email,nullzero" json:"email,omitempty"`
	Status  string `bun:"status,notnull,default:'active'" json:"status"`
}

// CustomerRow is one line of the owner's customer list: a reservation
// joined with its event.
type CustomerRow struct {
	Date   string `bun:"date" json:"date"`
	Title  string `bun:"title" json:"title"`
	Name   string `bun:"name" json:"name"`
	Email  string `bun:"email" json:"email,omitempty"`
	People int    `bun:"people" json:"people"`
}
