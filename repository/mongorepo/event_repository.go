package mongorepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

type EventRepository struct {
	coll *mongo.Collection
}

func eventFilter(filter repository.EventFilter) bson.M {
	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	window := bson.M{}
	if !filter.From.IsZero() {
		window["$gte"] = filter.From.UTC()
	}
	if !filter.To.IsZero() {
		window["$lte"] = filter.To.UTC()
	}
	if len(window) > 0 {
		query["date_time"] = window
	}
	return query
}

func (r *EventRepository) List(ctx context.Context, filter repository.EventFilter) ([]model.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_time", Value: 1}})
	return findAll[model.Event](ctx, r.coll, eventFilter(filter), "list events", opts)
}

func (r *EventRepository) Count(ctx context.Context, filter repository.EventFilter) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, eventFilter(filter))
	return count, translate("count events", err)
}

func (r *EventRepository) Get(ctx context.Context, userID, id string) (*model.Event, error) {
	return findOne[model.Event](ctx, r.coll, owned(userID, id), "get event")
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	if event.ID == "" {
		event.ID = model.NewID()
	}
	event.CreatedAt = now()
	event.UpdatedAt = event.CreatedAt
	_, err := r.coll.InsertOne(ctx, event)
	return translate("create event", err)
}

func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	event.UpdatedAt = now()
	return replaceOwned(ctx, r.coll, owned(event.UserID, event.ID), event, "update event")
}

func (r *EventRepository) Delete(ctx context.Context, userID, id string) error {
	return deleteOne(ctx, r.coll, owned(userID, id), "delete event")
}

func (r *EventRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	return translate("delete user events", err)
}

func (r *EventRepository) DueForReminder(ctx context.Context, userID string, from, to time.Time) ([]model.Event, error) {
	filter := bson.M{
		"reminder_enabled": true,
		"reminder_sent":    notReminded,
		"date_time":        bson.M{"$gte": from.UTC(), "$lte": to.UTC()},
	}
	if userID != "" {
		filter["user_id"] = userID
	}
	opts := options.Find().SetSort(bson.D{{Key: "user_id", Value: 1}, {Key: "date_time", Value: 1}})
	return findAll[model.Event](ctx, r.coll, filter, "find due events", opts)
}

func (r *EventRepository) MarkReminded(ctx context.Context, ids []string, at time.Time) error {
	return markReminded(ctx, r.coll, ids, at, "mark events reminded")
}
