package mongorepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sahilchouksey/studyflow/model"
)

type JobLogRepository struct {
	coll *mongo.Collection
}

func (r *JobLogRepository) Create(ctx context.Context, entry *model.CronJobLog) error {
	if entry.ID == "" {
		entry.ID = model.NewID()
	}
	entry.CreatedAt = now()
	entry.UpdatedAt = entry.CreatedAt
	_, err := r.coll.InsertOne(ctx, entry)
	return translate("create job log", err)
}

func (r *JobLogRepository) Update(ctx context.Context, entry *model.CronJobLog) error {
	entry.UpdatedAt = now()
	return replaceOwned(ctx, r.coll, bson.M{"_id": entry.ID}, entry, "update job log")
}

func (r *JobLogRepository) Recent(ctx context.Context, jobName string, limit int) ([]model.CronJobLog, error) {
	filter := bson.M{}
	if jobName != "" {
		filter["job_name"] = jobName
	}
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return findAll[model.CronJobLog](ctx, r.coll, filter, "list job logs", opts)
}

func (r *JobLogRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{"started_at": bson.M{"$lt": before.UTC()}})
	if err != nil {
		return 0, translate("prune job logs", err)
	}
	return result.DeletedCount, nil
}

type AuditLogRepository struct {
	coll *mongo.Collection
}

func (r *AuditLogRepository) Create(ctx context.Context, entry *model.AdminAuditLog) error {
	if entry.ID == "" {
		entry.ID = model.NewID()
	}
	entry.CreatedAt = now()
	_, err := r.coll.InsertOne(ctx, entry)
	return translate("create audit log", err)
}

func (r *AuditLogRepository) Recent(ctx context.Context, limit int) ([]model.AdminAuditLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return findAll[model.AdminAuditLog](ctx, r.coll, bson.M{}, "list audit logs", opts)
}
