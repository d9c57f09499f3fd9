package repository

import (
	"context"
	"errors"

	"aspirevote-backend/cmd/aspirevote/model"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

// EventStore is implemented by every event backend.
type EventStore interface {
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, id string) (model.Event, error)
	CreateEvent(ctx context.Context, event model.Event) (model.Event, error)
	CreateEvents(ctx context.Context, events []model.Event) ([]model.Event, error)
	Ping(ctx context.Context) error
}

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{
		db: db,
	}
}

func (r *EventRepo) ListEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (r *EventRepo) GetEvent(ctx context.Context, id string) (model.Event, error) {
	var event model.Event
	result := r.db.
		WithContext(ctx).
		Where("id = ?", id).
		Take(&event)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return model.Event{}, ErrEventNotFound
	}
	if result.Error != nil {
		return model.Event{}, result.Error
	}

	return event, nil
}

func (r *EventRepo) CreateEvent(ctx context.Context, event model.Event) (model.Event, error) {
	if err := assignID(&event); err != nil {
		return model.Event{}, err
	}

	result := r.db.
		WithContext(ctx).
		Create(&event)
	if result.Error != nil {
		return model.Event{}, result.Error
	}

	return event, nil
}

// CreateEvents inserts all events in one transaction.
func (r *EventRepo) CreateEvents(ctx context.Context, events []model.Event) ([]model.Event, error) {
	if len(events) == 0 {
		return nil, nil
	}
	for i := range events {
		if err := assignID(&events[i]); err != nil {
			return nil, err
		}
	}

	err := r.db.
		WithContext(ctx).
		Transaction(func(tx *gorm.DB) error {
			return tx.Create(&events).Error
		})
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepo) Ping(ctx context.Context) error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}

	return db.PingContext(ctx)
}

func assignID(event *model.Event) error {
	if event.ID != "" {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return pkgerrors.Wrap(err, "generate event id")
	}
	event.ID = id.String()
	return nil
}
