package db_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"live-reservation/internal/event/db"
	"live-reservation/internal/models"
)

func setupTestDB(t *testing.T) *db.DB {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, bunDB.ResetModel(context.Background(), (*models.Event)(nil)))

	return &db.DB{Bun: bunDB}
}

func TestCreateAndGetEvent(t *testing.T) {
	d := setupTestDB(t)

	event := &models.Event{
		Date:      "2026-05-05",
		Title:     "Test Show",
		OpenTime:  "18:00",
		StartTime: "19:00",
		Price:     "¥3,000",
		Location:  "Shimokitazawa",
	}
	require.NoError(t, d.CreateEvent(event))
	require.NotZero(t, event.ID, "insert should fill the generated id")

	got, err := d.GetEventByID(event.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Test Show", got.Title)
	assert.Equal(t, "2026-05-05", got.Date)
	assert.Equal(t, "¥3,000", got.Price)
}

func TestGetEventByDateLowestIDWins(t *testing.T) {
	d := setupTestDB(t)

	first := &models.Event{Date: "2026-05-05", Title: "First"}
	second := &models.Event{Date: "2026-05-05", Title: "Second"}
	require.NoError(t, d.CreateEvent(first))
	require.NoError(t, d.CreateEvent(second))

	got, err := d.GetEventByDate("2026-05-05")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "First", got.Title)
}

func TestGetEventByDateMissing(t *testing.T) {
	d := setupTestDB(t)

	got, err := d.GetEventByDate("2026-12-24")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetEventsByMonth(t *testing.T) {
	d := setupTestDB(t)

	require.NoError(t, d.CreateEvent(&models.Event{Date: "2026-05-05", Title: "In May"}))
	require.NoError(t, d.CreateEvent(&models.Event{Date: "2026-05-20", Title: "Also May"}))
	require.NoError(t, d.CreateEvent(&models.Event{Date: "2026-06-01", Title: "In June"}))

	events, err := d.GetEventsByMonth(2026, 5)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "In May", events[0].Title)
	assert.Equal(t, "Also May", events[1].Title)
}

func TestListOrdering(t *testing.T) {
	d := setupTestDB(t)

	require.NoError(t, d.CreateEvent(&models.Event{Date: "2026-07-01", Title: "Later"}))
	require.NoError(t, d.CreateEvent(&models.Event{Date: "2026-05-05", Title: "Sooner"}))

	asc, err := d.ListEvents()
	require.NoError(t, err)
	require.Len(t, asc, 2)
	assert.Equal(t, "Sooner", asc[0].Title)

	desc, err := d.ListEventsDesc()
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, "Later", desc[0].Title)
}

func TestUpdateEvent(t *testing.T) {
	d := setupTestDB(t)

	event := &models.Event{Date: "2026-05-05", Title: "Before"}
	require.NoError(t, d.CreateEvent(event))

	event.Title = "After"
	event.Location = "Koenji"
	require.NoError(t, d.UpdateEvent(*event))

	got, err := d.GetEventByID(event.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, "Koenji", got.Location)
}

func TestDeleteEvent(t *testing.T) {
	d := setupTestDB(t)

	event := &models.Event{Date: "2026-05-05", Title: "Gone"}
	require.NoError(t, d.CreateEvent(event))
	require.NoError(t, d.DeleteEvent(event.ID))

	got, err := d.GetEventByID(event.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
