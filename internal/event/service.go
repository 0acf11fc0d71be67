package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"live-reservation/internal/cache"
	"live-reservation/internal/logger"
	"live-reservation/internal/models"
)

type DBLayer interface {
	GetEventByID(id int64) (*models.Event, error)
	GetEventByDate(date string) (*models.Event, error)
	GetEventsByMonth(year, month int) ([]models.Event, error)
	ListEvents() ([]models.Event, error)
	ListEventsDesc() ([]models.Event, error)
	CreateEvent(event *models.Event) error
	UpdateEvent(event models.Event) error
	DeleteEvent(id int64) error
}

// EventService caches reads for the configured window and flushes the
// whole cache when any write commits.
//
// Read methods degrade to an empty result when the store fails; the
// failure is logged but callers cannot tell "empty" from "failed".
// That matches the established contract of this system and must not be
// changed quietly.
type EventService struct {
	DB     DBLayer
	Cache  cache.Cache
	Logger *logger.Logger
}

func NewEventService(db DBLayer, c cache.Cache, log *logger.Logger) *EventService {
	return &EventService{DB: db, Cache: c, Logger: log}
}

// ---------------- READS ----------------

func (s *EventService) EventsByMonth(ctx context.Context, year, month int) []models.Event {
	key := cache.Key("events_by_month", year, month)
	if raw, ok := s.Cache.Get(ctx, key); ok {
		var events []models.Event
		if json.Unmarshal(raw, &events) == nil {
			return events
		}
	}

	events, err := s.DB.GetEventsByMonth(year, month)
	if err != nil {
		s.Logger.Error("EVENT", fmt.Sprintf("EventsByMonth %04d-%02d: %v", year, month, err))
		return nil
	}

	if raw, err := json.Marshal(events); err == nil {
		s.Cache.Set(ctx, key, raw)
	}
	return events
}

func (s *EventService) EventByDate(ctx context.Context, date string) *models.Event {
	key := cache.Key("event_by_date", date)
	if raw, ok := s.Cache.Get(ctx, key); ok {
		var event models.Event
		if json.Unmarshal(raw, &event) == nil {
			return &event
		}
	}

	event, err := s.DB.GetEventByDate(date)
	if err != nil {
		s.Logger.Error("EVENT", fmt.Sprintf("EventByDate %s: %v", date, err))
		return nil
	}
	if event == nil {
		return nil
	}

	if raw, err := json.Marshal(event); err == nil {
		s.Cache.Set(ctx, key, raw)
	}
	return event
}

func (s *EventService) EventByID(ctx context.Context, id int64) *models.Event {
	key := cache.Key("event_by_id", id)
	if raw, ok := s.Cache.Get(ctx, key); ok {
		var event models.Event
		if json.Unmarshal(raw, &event) == nil {
			return &event
		}
	}

	event, err := s.DB.GetEventByID(id)
	if err != nil {
		s.Logger.Error("EVENT", fmt.Sprintf("EventByID %d: %v", id, err))
		return nil
	}
	if event == nil {
		return nil
	}

	if raw, err := json.Marshal(event); err == nil {
		s.Cache.Set(ctx, key, raw)
	}
	return event
}

func (s *EventService) ListEvents(ctx context.Context) []models.Event {
	key := cache.Key("list_events")
	if raw, ok := s.Cache.Get(ctx, key); ok {
		var events []models.Event
		if json.Unmarshal(raw, &events) == nil {
			return events
		}
	}

	events, err := s.DB.ListEvents()
	if err != nil {
		s.Logger.Error("EVENT", fmt.Sprintf("ListEvents: %v", err))
		return nil
	}

	if raw, err := json.Marshal(events); err == nil {
		s.Cache.Set(ctx, key, raw)
	}
	return events
}

func (s *EventService) ListEventsDesc(ctx context.Context) []models.Event {
	events, err := s.DB.ListEventsDesc()
	if err != nil {
		s.Logger.Error("EVENT", fmt.Sprintf("ListEventsDesc: %v", err))
		return nil
	}
	return events
}

// EventsByDate reduces a month's events to one summary per date for
// the calendar. Input comes ordered by (date, id); the first event per
// date wins, so the lowest id represents a double-booked date.
func EventsByDate(events []models.Event) map[string]models.EventSummary {
	byDate := make(map[string]models.EventSummary, len(events))
	for _, ev := range events {
		if _, taken := byDate[ev.Date]; taken {
			continue
		}
		byDate[ev.Date] = models.EventSummary{
			ID:        ev.ID,
			Title:     ev.Title,
			ImageData: ev.ImageData,
		}
	}
	return byDate
}

// ---------------- WRITES ----------------

func (s *EventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if strings.TrimSpace(event.Date) == "" || strings.TrimSpace(event.Title) == "" {
		return fmt.Errorf("date and title are required")
	}
	if err := s.DB.CreateEvent(event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	s.Cache.Flush(ctx)
	s.Logger.Info("EVENT", fmt.Sprintf("Created event %d on %s", event.ID, event.Date))
	return nil
}

func (s *EventService) UpdateEvent(ctx context.Context, event models.Event) error {
	if err := s.DB.UpdateEvent(event); err != nil {
		return fmt.Errorf("failed to update event %d: %w", event.ID, err)
	}
	s.Cache.Flush(ctx)
	s.Logger.Info("EVENT", fmt.Sprintf("Updated event %d", event.ID))
	return nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.DB.DeleteEvent(id); err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	s.Cache.Flush(ctx)
	s.Logger.Info("EVENT", fmt.Sprintf("Deleted event %d", id))
	return nil
}
