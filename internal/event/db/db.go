package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"live-reservation/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ---------------- EVENTS ----------------

// GetEventByID → fetch one event by its ID
func (d *DB) GetEventByID(id int64) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetEventByDate → fetch the event shown for a calendar date. When the
// date holds several events the lowest id wins.
func (d *DB) GetEventByDate(date string) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("date = ?", date).
		Order("id ASC").
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetEventsByMonth → all events within one calendar month, ordered by
// date then id so the per-date winner is stable.
func (d *DB) GetEventsByMonth(year, month int) ([]models.Event, error) {
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Where("date LIKE ?", prefix+"%").
		Order("date ASC", "id ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListEvents → full schedule, soonest first
func (d *DB) ListEvents() ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Order("date ASC", "id ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListEventsDesc → admin view ordering, newest date first
func (d *DB) ListEventsDesc() ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Order("date DESC", "id DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent → insert new event, filling the generated id
func (d *DB) CreateEvent(event *models.Event) error {
	_, err := d.Bun.NewInsert().Model(event).Exec(context.Background())
	return err
}

// UpdateEvent → update the editable fields
func (d *DB) UpdateEvent(event models.Event) error {
	_, err := d.Bun.NewUpdate().
		Model(&event).
		Column("date", "title", "description", "open_time", "start_time", "performance_time", "price", "location", "image_data").
		Where("id = ?", event.ID).
		Exec(context.Background())
	return err
}

// DeleteEvent → delete an event by ID. Reservations pointing at it are
// left behind; readers tolerate the dangling rows.
func (d *DB) DeleteEvent(id int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Event)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}
