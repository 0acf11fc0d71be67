package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"live-reservation/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ---------------- RESERVATIONS ----------------

// GetReservationByID → fetch one reservation by its ID
func (d *DB) GetReservationByID(id int64) (*models.Reservation, error) {
	var res models.Reservation
	err := d.Bun.NewSelect().
		Model(&res).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByEventAndEmail → the merge candidate for a booking: the earliest
// active reservation sharing the (event, email) pair.
func (d *DB) GetByEventAndEmail(eventID int64, email string) (*models.Reservation, error) {
	var res models.Reservation
	err := d.Bun.NewSelect().
		Model(&res).
		Where("event_id = ?", eventID).
		Where("email = ?", email).
		Order("id ASC").
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateReservation → insert new reservation, filling the generated id
func (d *DB) CreateReservation(res *models.Reservation) error {
	_, err := d.Bun.NewInsert().Model(res).Exec(context.Background())
	return err
}

// UpdatePeople → set the merged party size, leaving every other field
// untouched
func (d *DB) UpdatePeople(id int64, people int) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.Reservation)(nil)).
		Set("people = ?", people).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}

// ListByEvent → all reservations against one event id. Returns an
// empty slice for an unknown or deleted event.
func (d *DB) ListByEvent(eventID int64) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := d.Bun.NewSelect().
		Model(&reservations).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// SumPeopleByEvent → total booked attendees across an event's
// reservations; zero when the event has none.
func (d *DB) SumPeopleByEvent(eventID int64) (int, error) {
	var total int
	err := d.Bun.NewSelect().
		Model((*models.Reservation)(nil)).
		ColumnExpr("COALESCE(SUM(people), 0)").
		Where("event_id = ?", eventID).
		Scan(context.Background(), &total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// DeleteReservation → delete a reservation by ID
func (d *DB) DeleteReservation(id int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Reservation)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}

// ---------------- RELATION QUERIES ----------------

// CustomerList → every reservation joined with its event, newest event
// first. The inner join drops reservations whose event was deleted.
func (d *DB) CustomerList() ([]models.CustomerRow, error) {
	var rows []models.CustomerRow
	err := d.Bun.NewSelect().
		TableExpr("reservations AS r").
		ColumnExpr("e.date, e.title, r.name, r.email, r.people").
		Join("JOIN events AS e ON r.event_id = e.id").
		OrderExpr("e.date DESC, r.id ASC").
		Scan(context.Background(), &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
