package mongorepo

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

type TaskRepository struct {
	coll *mongo.Collection
}

func taskFilter(filter repository.TaskFilter) bson.M {
	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Completed != nil {
		query["completed"] = *filter.Completed
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	return query
}

// sortByDue orders tasks by due date and puts undated tasks last
func sortByDue(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].DueDate, tasks[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

func (r *TaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	tasks, err := findAll[model.Task](ctx, r.coll, taskFilter(filter), "list tasks", opts)
	if err != nil {
		return nil, err
	}
	sortByDue(tasks)
	return tasks, nil
}

func (r *TaskRepository) Count(ctx context.Context, filter repository.TaskFilter) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, taskFilter(filter))
	return count, translate("count tasks", err)
}

func (r *TaskRepository) Get(ctx context.Context, userID, id string) (*model.Task, error) {
	return findOne[model.Task](ctx, r.coll, owned(userID, id), "get task")
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = model.NewID()
	}
	task.CreatedAt = now()
	task.UpdatedAt = task.CreatedAt
	_, err := r.coll.InsertOne(ctx, task)
	return translate("create task", err)
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	task.UpdatedAt = now()
	return replaceOwned(ctx, r.coll, owned(task.UserID, task.ID), task, "update task")
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	return deleteOne(ctx, r.coll, owned(userID, id), "delete task")
}

func (r *TaskRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	return translate("delete user tasks", err)
}

func (r *TaskRepository) DueForReminder(ctx context.Context, userID string, from, to time.Time) ([]model.Task, error) {
	filter := bson.M{
		"completed":     false,
		"reminder_sent": notReminded,
		"due_date":      bson.M{"$gte": from.UTC(), "$lte": to.UTC()},
	}
	if userID != "" {
		filter["user_id"] = userID
	}
	opts := options.Find().SetSort(bson.D{{Key: "user_id", Value: 1}, {Key: "due_date", Value: 1}})
	return findAll[model.Task](ctx, r.coll, filter, "find due tasks", opts)
}

func (r *TaskRepository) MarkReminded(ctx context.Context, ids []string, at time.Time) error {
	return markReminded(ctx, r.coll, ids, at, "mark tasks reminded")
}
