package repository

import (
	"context"
	"errors"
	"time"

	"aspirevote-backend/cmd/aspirevote/model"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const eventsCollection = "events"

// eventDocument mirrors the layout the original mongoose schema wrote, so
// existing collections decode without migration.
type eventDocument struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	Name                 string             `bson:"name"`
	Description          string             `bson:"description,omitempty"`
	Picture              string             `bson:"picture,omitempty"`
	IsActive             bool               `bson:"isActive"`
	StartNominationPhase time.Time          `bson:"startNominationPhase"`
	EndNominationPhase   time.Time          `bson:"endNominationPhase"`
	StartVotingPhase     time.Time          `bson:"startVotingPhase"`
	EndVotingPhase       time.Time          `bson:"endVotingPhase"`
	ResultPhase          time.Time          `bson:"resultPhase"`
}

func newEventDocument(event model.Event) (eventDocument, error) {
	doc := eventDocument{
		Name:                 event.Name,
		Description:          event.Description,
		Picture:              event.Picture,
		IsActive:             event.IsActive,
		StartNominationPhase: event.StartNominationPhase,
		EndNominationPhase:   event.EndNominationPhase,
		StartVotingPhase:     event.StartVotingPhase,
		EndVotingPhase:       event.EndVotingPhase,
		ResultPhase:          event.ResultPhase,
	}
	if event.ID == "" {
		doc.ID = primitive.NewObjectID()
		return doc, nil
	}
	id, err := primitive.ObjectIDFromHex(event.ID)
	if err != nil {
		return eventDocument{}, pkgerrors.Wrapf(err, "event id %q", event.ID)
	}
	doc.ID = id
	return doc, nil
}

func (d eventDocument) toModel() model.Event {
	return model.Event{
		ID:                   d.ID.Hex(),
		Name:                 d.Name,
		Description:          d.Description,
		Picture:              d.Picture,
		IsActive:             d.IsActive,
		StartNominationPhase: d.StartNominationPhase.UTC(),
		EndNominationPhase:   d.EndNominationPhase.UTC(),
		StartVotingPhase:     d.StartVotingPhase.UTC(),
		EndVotingPhase:       d.EndVotingPhase.UTC(),
		ResultPhase:          d.ResultPhase.UTC(),
	}
}

type MongoEventRepo struct {
	client *mongo.Client
	events *mongo.Collection
}

func NewMongoEventRepo(client *mongo.Client, database string) *MongoEventRepo {
	return &MongoEventRepo{
		client: client,
		events: client.Database(database).Collection(eventsCollection),
	}
}

// ListEvents returns events in natural collection order.
func (r *MongoEventRepo) ListEvents(ctx context.Context) ([]model.Event, error) {
	cursor, err := r.events.Find(ctx, bson.D{})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find events")
	}

	var docs []eventDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, pkgerrors.Wrap(err, "decode events")
	}

	events := make([]model.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, doc.toModel())
	}
	return events, nil
}

func (r *MongoEventRepo) GetEvent(ctx context.Context, id string) (model.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Event{}, ErrEventNotFound
	}

	var doc eventDocument
	err = r.events.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Event{}, ErrEventNotFound
	}
	if err != nil {
		return model.Event{}, pkgerrors.Wrapf(err, "find event %s", id)
	}
	return doc.toModel(), nil
}

func (r *MongoEventRepo) CreateEvent(ctx context.Context, event model.Event) (model.Event, error) {
	doc, err := newEventDocument(event)
	if err != nil {
		return model.Event{}, err
	}
	if _, err := r.events.InsertOne(ctx, doc); err != nil {
		return model.Event{}, pkgerrors.Wrap(err, "insert event")
	}
	return doc.toModel(), nil
}

// CreateEvents inserts the batch with one ordered InsertMany.
func (r *MongoEventRepo) CreateEvents(ctx context.Context, events []model.Event) ([]model.Event, error) {
	if len(events) == 0 {
		return nil, nil
	}

	docs := make([]interface{}, 0, len(events))
	created := make([]model.Event, 0, len(events))
	for _, event := range events {
		doc, err := newEventDocument(event)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
		created = append(created, doc.toModel())
	}

	if _, err := r.events.InsertMany(ctx, docs); err != nil {
		return nil, pkgerrors.Wrap(err, "insert events")
	}
	return created, nil
}

func (r *MongoEventRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}
