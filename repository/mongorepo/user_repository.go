package mongorepo

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

type UserRepository struct {
	coll *mongo.Collection
}

func (r *UserRepository) List(ctx context.Context, opts repository.UserListOptions) ([]model.User, int64, error) {
	filter := bson.M{}
	if opts.Search != "" {
		pattern := caseInsensitive(opts.Search)
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
		}
	}
	if opts.Role != "" {
		filter["role"] = opts.Role
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translate("count users", err)
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(opts.Offset))
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	users, err := findAll[model.User](ctx, r.coll, filter, "list users", findOpts)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func caseInsensitive(search string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	return count, translate("count users", err)
}

func (r *UserRepository) Get(ctx context.Context, id string) (*model.User, error) {
	return findOne[model.User](ctx, r.coll, bson.M{"_id": id}, "get user")
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, r.coll, bson.M{"email": model.NormalizeEmail(email)}, "get user by email")
}

func (r *UserRepository) GetMany(ctx context.Context, ids []string) (map[string]model.User, error) {
	users := make(map[string]model.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	rows, err := findAll[model.User](ctx, r.coll, bson.M{"_id": bson.M{"$in": ids}}, "get users")
	if err != nil {
		return nil, err
	}
	for _, u := range rows {
		users[u.ID] = u
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = model.NewID()
	}
	user.Email = model.NormalizeEmail(user.Email)
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	_, err := r.coll.InsertOne(ctx, user)
	return translate("create user", err)
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	user.Email = model.NormalizeEmail(user.Email)
	user.UpdatedAt = now()
	return replaceOwned(ctx, r.coll, bson.M{"_id": user.ID}, user, "update user")
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.coll, bson.M{"_id": id}, "delete user")
}
