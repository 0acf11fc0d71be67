package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"live-reservation/internal/cache"
	"live-reservation/internal/logger"
	"live-reservation/internal/models"
)

var (
	ErrNameRequired     = errors.New("attendee name is required")
	ErrInvalidPartySize = errors.New("party size must be between 1 and 10")
	ErrEventNotFound    = errors.New("event not found")
)

type DBLayer interface {
	GetReservationByID(id int64) (*models.Reservation, error)
	GetByEventAndEmail(eventID int64, email string) (*models.Reservation, error)
	CreateReservation(res *models.Reservation) error
	UpdatePeople(id int64, people int) error
	ListByEvent(eventID int64) ([]models.Reservation, error)
	SumPeopleByEvent(eventID int64) (int, error)
	DeleteReservation(id int64) error
	CustomerList() ([]models.CustomerRow, error)
}

type EventLayer interface {
	GetEventByID(id int64) (*models.Event, error)
}

type KafkaPublisher interface {
	PublishReservationCreated(res models.Reservation) error
	PublishReservationMerged(res models.Reservation) error
	PublishReservationCancelled(res models.Reservation) error
}

type Mailer interface {
	SendBookingNotice(event models.Event, res models.Reservation) error
}

type BookingRequest struct {
	EventID int64  `json:"event_id"`
	Name    string `json:"name"`
	People  int    `json:"people"`
	Email   string `json:"email,omitempty"`
	UserID  *int64 `json:"-"`
}

type BookingResult struct {
	Reservation models.Reservation `json:"reservation"`
	Merged      bool               `json:"merged"`
}

// ReservationService applies the booking policy. The baseline is
// always-insert; MergeEnabled folds a repeat booking for the same
// (event, email) pair into the existing row instead.
type ReservationService struct {
	DB           DBLayer
	Events       EventLayer
	Kafka        KafkaPublisher
	Mailer       Mailer
	Cache        cache.Cache
	Logger       *logger.Logger
	MergeEnabled bool
}

func NewReservationService(db DBLayer, events EventLayer, kafka KafkaPublisher, mailer Mailer, c cache.Cache, log *logger.Logger, mergeEnabled bool) *ReservationService {
	return &ReservationService{
		DB:           db,
		Events:       events,
		Kafka:        kafka,
		Mailer:       mailer,
		Cache:        c,
		Logger:       log,
		MergeEnabled: mergeEnabled,
	}
}

// Book validates a request and either merges it into an existing
// reservation or inserts a new row.
//
// The merge path reads then writes without a transaction: two
// concurrent bookings for the same (event, email) pair can produce two
// rows instead of one merged row. Known weakness, kept as-is.
func (s *ReservationService) Book(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if req.People < 1 || req.People > 10 {
		return nil, ErrInvalidPartySize
	}

	event, err := s.Events.GetEventByID(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up event %d: %w", req.EventID, err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	email := strings.TrimSpace(req.Email)

	if s.MergeEnabled && email != "" {
		existing, err := s.DB.GetByEventAndEmail(req.EventID, email)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing reservation: %w", err)
		}
		if existing != nil {
			newTotal := existing.People + req.People
			if err := s.DB.UpdatePeople(existing.ID, newTotal); err != nil {
				return nil, fmt.Errorf("failed to merge reservation %d: %w", existing.ID, err)
			}
			s.Cache.Flush(ctx)

			merged := *existing
			merged.People = newTotal
			s.Logger.LogBooking("MERGE", merged.ID, fmt.Sprintf("event %d now %d attendees for %s", req.EventID, newTotal, email))

			if err := s.Kafka.PublishReservationMerged(merged); err != nil {
				s.Logger.Error("KAFKA", fmt.Sprintf("Publish error (reservation merged): %v", err))
			}
			s.notify(*event, merged)

			return &BookingResult{Reservation: merged, Merged: true}, nil
		}
	}

	res := models.Reservation{
		EventID: req.EventID,
		UserID:  req.UserID,
		Name:    strings.TrimSpace(req.Name),
		People:  req.People,
		Email:   email,
		Status:  "active",
	}
	if err := s.DB.CreateReservation(&res); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	s.Cache.Flush(ctx)
	s.Logger.LogBooking("CREATE", res.ID, fmt.Sprintf("event %d, %d attendees", req.EventID, req.People))

	if err := s.Kafka.PublishReservationCreated(res); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("Publish error (reservation created): %v", err))
	}
	s.notify(*event, res)

	return &BookingResult{Reservation: res, Merged: false}, nil
}

// notify sends the booking summary mail. Delivery failure never rolls
// back the committed reservation.
func (s *ReservationService) notify(event models.Event, res models.Reservation) {
	if s.Mailer == nil {
		return
	}
	if err := s.Mailer.SendBookingNotice(event, res); err != nil {
		s.Logger.Error("MAILER", fmt.Sprintf("Booking notice for reservation %d: %v", res.ID, err))
	}
}

func (s *ReservationService) Reservation(id int64) (*models.Reservation, error) {
	return s.DB.GetReservationByID(id)
}

// ReservationsByEvent lists bookings for an event. A deleted or
// unknown event yields an empty list, not an error.
func (s *ReservationService) ReservationsByEvent(eventID int64) []models.Reservation {
	reservations, err := s.DB.ListByEvent(eventID)
	if err != nil {
		s.Logger.Error("BOOKING", fmt.Sprintf("ReservationsByEvent %d: %v", eventID, err))
		return nil
	}
	return reservations
}

// AttendeeTotal sums the booked party sizes for one event. A failed
// read degrades to zero, same as the list reads.
func (s *ReservationService) AttendeeTotal(eventID int64) int {
	total, err := s.DB.SumPeopleByEvent(eventID)
	if err != nil {
		s.Logger.Error("BOOKING", fmt.Sprintf("AttendeeTotal %d: %v", eventID, err))
		return 0
	}
	return total
}

// Customers is the owner's full guest list, joined with events; rows
// whose event has been deleted are filtered out by the join.
func (s *ReservationService) Customers() []models.CustomerRow {
	rows, err := s.DB.CustomerList()
	if err != nil {
		s.Logger.Error("BOOKING", fmt.Sprintf("Customers: %v", err))
		return nil
	}
	return rows
}

func (s *ReservationService) Cancel(ctx context.Context, id int64) error {
	res, err := s.DB.GetReservationByID(id)
	if err != nil {
		return fmt.Errorf("reservation %d not found: %w", id, err)
	}
	if err := s.DB.DeleteReservation(id); err != nil {
		return fmt.Errorf("failed to delete reservation %d: %w", id, err)
	}
	s.Cache.Flush(ctx)
	s.Logger.LogBooking("CANCEL", id, "deleted by owner")

	if res != nil {
		if err := s.Kafka.PublishReservationCancelled(*res); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("Publish error (reservation cancelled): %v", err))
		}
	}
	return nil
}
