package reservation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"live-reservation/internal/cache"
	"live-reservation/internal/logger"
	"live-reservation/internal/models"
	"live-reservation/internal/reservation"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) GetReservationByID(id int64) (*models.Reservation, error) {
	args := m.Called(id)
	res, _ := args.Get(0).(*models.Reservation)
	return res, args.Error(1)
}

func (m *MockDBLayer) GetByEventAndEmail(eventID int64, email string) (*models.Reservation, error) {
	args := m.Called(eventID, email)
	res, _ := args.Get(0).(*models.Reservation)
	return res, args.Error(1)
}

func (m *MockDBLayer) CreateReservation(res *models.Reservation) error {
	args := m.Called(res)
	return args.Error(0)
}

func (m *MockDBLayer) UpdatePeople(id int64, people int) error {
	args := m.Called(id, people)
	return args.Error(0)
}

func (m *MockDBLayer) ListByEvent(eventID int64) ([]models.Reservation, error) {
	args := m.Called(eventID)
	list, _ := args.Get(0).([]models.Reservation)
	return list, args.Error(1)
}

func (m *MockDBLayer) SumPeopleByEvent(eventID int64) (int, error) {
	args := m.Called(eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockDBLayer) DeleteReservation(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDBLayer) CustomerList() ([]models.CustomerRow, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]models.CustomerRow)
	return rows, args.Error(1)
}

type MockEventLayer struct {
	mock.Mock
}

func (m *MockEventLayer) GetEventByID(id int64) (*models.Event, error) {
	args := m.Called(id)
	event, _ := args.Get(0).(*models.Event)
	return event, args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishReservationCreated(res models.Reservation) error {
	args := m.Called(res)
	return args.Error(0)
}

func (m *MockPublisher) PublishReservationMerged(res models.Reservation) error {
	args := m.Called(res)
	return args.Error(0)
}

func (m *MockPublisher) PublishReservationCancelled(res models.Reservation) error {
	args := m.Called(res)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendBookingNotice(event models.Event, res models.Reservation) error {
	args := m.Called(event, res)
	return args.Error(0)
}

func newService(db *MockDBLayer, events *MockEventLayer, kafka *MockPublisher, mailer *MockMailer, merge bool) *reservation.ReservationService {
	// Avoid wrapping a typed-nil *MockMailer in the Mailer interface,
	// which would defeat the service's nil check.
	var m reservation.Mailer
	if mailer != nil {
		m = mailer
	}
	return reservation.NewReservationService(
		db, events, kafka, m,
		cache.NewMemoryCache(time.Minute),
		logger.NewConsole(),
		merge,
	)
}

func testEvent() *models.Event {
	return &models.Event{ID: 1, Date: "2026-05-05", Title: "Test Show"}
}

func TestBookInsertsBaseline(t *testing.T) {
	db := new(MockDBLayer)
	events := new(MockEventLayer)
	kafka := new(MockPublisher)
	svc := newService(db, events, kafka, nil, false)

	events.On("GetEventByID", int64(1)).Return(testEvent(), nil)
	db.On("CreateReservation", mock.AnythingOfType("*models.Reservation")).Return(nil)
	kafka.On("PublishReservationCreated", mock.AnythingOfType("models.Reservation")).Return(nil)

	result, err := svc.Book(context.Background(), reservation.BookingRequest{
		EventID: 1, Name: "A", People: 2, Email: "a@x.com",
	})
	require.NoError(t, err)
	assert.False(t, result.Merged)
	assert.Equal(t, "active", result.Reservation.Status)

	db.AssertExpectations(t)
	kafka.AssertExpectations(t)
}

// Merge disabled: a repeat booking for the same email inserts a second
// row and never consults the existing one.
func TestBookRepeatWithoutMergeInsertsAgain(t *testing.T) {
	db := new(MockDBLayer)
	events := new(MockEventLayer)
	kafka := new(MockPublisher)
	svc := newService(db, events, kafka, nil, false)

	events.On("GetEventByID", int64(1)).Return(testEvent(), nil)
	db.On("CreateReservation", mock.AnythingOfType("*models.Reservation")).Return(nil).Twice()
	kafka.On("PublishReservationCreated", mock.AnythingOfType("models.Reservation")).Return(nil).Twice()

	for i := 0; i < 2; i++ {
		_, err := svc.Book(context.Background(), reservation.BookingRequest{
			EventID: 1, Name: "A", People: 2, Email: "a@x.com",
		})
		require.NoError(t, err)
	}

	db.AssertExpectations(t)
	db.AssertNotCalled(t, "GetByEventAndEmail", mock.Anything, mock.Anything)
	db.AssertNotCalled(t, "UpdatePeople", mock.Anything, mock.Anything)
}

func TestBookMergesIntoExistingRow(t *testing.T) {
	db := new(MockDBLayer)
	events := new(MockEventLayer)
	kafka := new(MockPublisher)
	svc := newService(db, events, kafka, nil, true)

	existing := &models.Reservation{
		ID: 7, EventID: 1, Name: "A", People: 2, Email: "a@x.com", Status: "active",
	}
	events.On("GetEventByID", int64(1)).Return(testEvent(), nil)
	db.On("GetByEventAndEmail", int64(1), "a@x.com").Return(existing, nil)
	db.On("UpdatePeople", int64(7), 5).Return(nil)
	kafka.On("PublishReservationMerged", mock.AnythingOfType("models.Reservation")).Return(nil)

	result, err := svc.Book(context.Background(), reservation.BookingRequest{
		EventID: 1, Name: "A", People: 3, Email: "a@x.com",
	})
	require.NoError(t, err)
	assert.True(t, result.Merged)
	assert.Equal(t, 5, result.Reservation.People)
	assert.Equal(t, int64(7), result.Reservation.ID)

	db.AssertExpectations(t)
	db.AssertNotCalled(t, "CreateReservation", mock.Anything)
}

// Merge only applies when an email is supplied; an anonymous booking
// always inserts.
func TestBookMergeSkippedWithoutEmail(t *testing.T) {
	db := new(MockDBLayer)
	events := new(MockEventLayer)
	kafka := new(MockPublisher)
	svc := newService(db, events, kafka, nil, true)

	events.On("GetEventByID", int64(1)).Return(testEvent(), nil)
	db.On("CreateReservation", mock.AnythingOfType("*models.Reservation")).Return(nil)
	kafka.On("PublishReservationCreated", mock.AnythingOfType("models.Reservation")).Return(nil)

	_, err := svc.Book(context.Background(), reservation.BookingRequest{
		EventID: 1, Name: "A", People: 2,
	})
	require.NoError(t, err)

	db.AssertNotCalled(t, "GetByEventAndEmail", mock.Anything, mock.Anything)
}

func TestBookValidation(t *testing.T) {
	svc := newService(new(MockDBLayer), new(MockEventLayer), new(MockPublisher), nil, false)

	_, err := svc.Book(context.Background(), reservation.BookingRequest{EventID: 1, Name: "  ", People: 2})
	assert.ErrorIs(t, err, reservation.ErrNameRequired)

	_, err = svc.Book(context.Background(), reservation.BookingRequest{EventID: 1, Name: "A", People: 0})
	assert.ErrorIs(t, err, reservation.ErrInvalidPartySize)

	_, err = svc.Book(context.Background(), reservation.BookingRequest{EventID: 1, Name: "A", People: 11})
	assert.ErrorIs(t, err, reservation.ErrInvalidPartySize)
}

func TestBookUnknownEvent(t *testing.T) {
	db := new(MockDBLayer)
	events := new(MockEventLayer)
	svc := newService(db, events, new(MockPublisher), nil, false)

	events.On("GetEventByID", int64(42)).Return(nil, nil)

	_, err := svc.Book(context.Background(), reservation.BookingRequest{EventID: 42, Name: "A", People: 2})
	assert.ErrorIs(t, err, reservation.ErrEventNotFound)
	db.AssertNotCalled(t, "CreateReservation", mock.Anything)
}

// Mail delivery failure is logged but never fails the booking.
func TestBookMailerFailureIsNotFatal(t *testing.T) {
	db := new(MockDBLayer)
	events := new(MockEventLayer)
	kafka := new(MockPublisher)
	mailer := new(MockMailer)
	svc := newService(db, events, kafka, mailer, false)

	events.On("GetEventByID", int64(1)).Return(testEvent(), nil)
	db.On("CreateReservation", mock.AnythingOfType("*models.Reservation")).Return(nil)
	kafka.On("PublishReservationCreated", mock.AnythingOfType("models.Reservation")).Return(nil)
	mailer.On("SendBookingNotice", mock.AnythingOfType("models.Event"), mock.AnythingOfType("models.Reservation")).
		Return(errors.New("smtp refused"))

	result, err := svc.Book(context.Background(), reservation.BookingRequest{
		EventID: 1, Name: "A", People: 2, Email: "a@x.com",
	})
	require.NoError(t, err)
	assert.False(t, result.Merged)
	mailer.AssertExpectations(t)
}

func TestReservationsByEventDegradesToEmpty(t *testing.T) {
	db := new(MockDBLayer)
	svc := newService(db, new(MockEventLayer), new(MockPublisher), nil, false)

	db.On("ListByEvent", int64(1)).Return(nil, errors.New("db down"))

	assert.Empty(t, svc.ReservationsByEvent(1))
}

func TestAttendeeTotal(t *testing.T) {
	db := new(MockDBLayer)
	svc := newService(db, new(MockEventLayer), new(MockPublisher), nil, false)

	db.On("SumPeopleByEvent", int64(1)).Return(7, nil)
	db.On("SumPeopleByEvent", int64(2)).Return(0, errors.New("db down"))

	assert.Equal(t, 7, svc.AttendeeTotal(1))
	assert.Equal(t, 0, svc.AttendeeTotal(2))
}

func TestCancelPublishesAndFlushes(t *testing.T) {
	db := new(MockDBLayer)
	kafka := new(MockPublisher)
	svc := newService(db, new(MockEventLayer), kafka, nil, false)

	res := &models.Reservation{ID: 3, EventID: 1, Name: "A", People: 2, Status: "active"}
	db.On("GetReservationByID", int64(3)).Return(res, nil)
	db.On("DeleteReservation", int64(3)).Return(nil)
	kafka.On("PublishReservationCancelled", *res).Return(nil)

	require.NoError(t, svc.Cancel(context.Background(), 3))
	db.AssertExpectations(t)
	kafka.AssertExpectations(t)
}
