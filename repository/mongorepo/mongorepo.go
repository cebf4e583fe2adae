// Package mongorepo implements the repository contracts on MongoDB.
// Topics are embedded in their module document.
package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sahilchouksey/studyflow/repository"
)

const (
	CollectionUsers      = "users"
	CollectionTasks      = "tasks"
	CollectionEvents     = "events"
	CollectionSubjects   = "subjects"
	CollectionModules    = "modules"
	CollectionClassSlots = "class_slots"
	CollectionJobLogs    = "cron_job_logs"
	CollectionAuditLogs  = "admin_audit_logs"
)

// New builds every repository over one database handle
func New(db *mongo.Database) repository.Repositories {
	return repository.Repositories{
		Tasks:     &TaskRepository{coll: db.Collection(CollectionTasks)},
		Events:    &EventRepository{coll: db.Collection(CollectionEvents)},
		Subjects:  &SubjectRepository{coll: db.Collection(CollectionSubjects)},
		Modules:   &ModuleRepository{coll: db.Collection(CollectionModules)},
		Slots:     &ClassSlotRepository{coll: db.Collection(CollectionClassSlots)},
		Users:     &UserRepository{coll: db.Collection(CollectionUsers)},
		JobLogs:   &JobLogRepository{coll: db.Collection(CollectionJobLogs)},
		AuditLogs: &AuditLogRepository{coll: db.Collection(CollectionAuditLogs)},
	}
}

// EnsureIndexes creates the indexes the queries rely on. It is safe to run repeatedly.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionTasks: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "due_date", Value: 1}}},
			{Keys: bson.D{{Key: "reminder_sent", Value: 1}, {Key: "due_date", Value: 1}}},
		},
		CollectionEvents: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date_time", Value: 1}}},
			{Keys: bson.D{{Key: "reminder_sent", Value: 1}, {Key: "date_time", Value: 1}}},
		},
		CollectionSubjects: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "color", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionModules: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "subject_id", Value: 1}}},
		},
		CollectionClassSlots: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "day", Value: 1}}},
		},
		CollectionJobLogs: {
			{Keys: bson.D{{Key: "job_name", Value: 1}, {Key: "started_at", Value: -1}}},
		},
		CollectionAuditLogs: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

// now is the clock used for created_at/updated_at stamps
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func owned(userID, id string) bson.M {
	return bson.M{"_id": id, "user_id": userID}
}

// notReminded matches documents whose reminder flag is false or missing
var notReminded = bson.M{"$ne": true}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, op string, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translate(op, err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, translate(op, err)
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, op string) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, translate(op, err)
	}
	return &out, nil
}

func replaceOwned(ctx context.Context, coll *mongo.Collection, filter bson.M, doc interface{}, op string) error {
	result, err := coll.ReplaceOne(ctx, filter, doc)
	if err != nil {
		return translate(op, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, filter bson.M, op string) error {
	result, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return translate(op, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func markReminded(ctx context.Context, coll *mongo.Collection, ids []string, at time.Time, op string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"reminder_sent": true, "reminder_sent_at": at.UTC()}},
	)
	return translate(op, err)
}
