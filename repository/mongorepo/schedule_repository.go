package mongorepo

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sahilchouksey/studyflow/model"
)

type SubjectRepository struct {
	coll *mongo.Collection
}

func (r *SubjectRepository) List(ctx context.Context, userID string) ([]model.Subject, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return findAll[model.Subject](ctx, r.coll, bson.M{"user_id": userID}, "list subjects", opts)
}

func (r *SubjectRepository) Get(ctx context.Context, userID, id string) (*model.Subject, error) {
	return findOne[model.Subject](ctx, r.coll, owned(userID, id), "get subject")
}

func (r *SubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	if subject.ID == "" {
		subject.ID = model.NewID()
	}
	subject.CreatedAt = now()
	subject.UpdatedAt = subject.CreatedAt
	_, err := r.coll.InsertOne(ctx, subject)
	return translate("create subject", err)
}

func (r *SubjectRepository) Update(ctx context.Context, subject *model.Subject) error {
	subject.UpdatedAt = now()
	return replaceOwned(ctx, r.coll, owned(subject.UserID, subject.ID), subject, "update subject")
}

func (r *SubjectRepository) Delete(ctx context.Context, userID, id string) error {
	return deleteOne(ctx, r.coll, owned(userID, id), "delete subject")
}

func (r *SubjectRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	return translate("delete user subjects", err)
}

func (r *SubjectRepository) ColorTaken(ctx context.Context, userID, color, excludeID string) (bool, error) {
	filter := bson.M{"user_id": userID, "color": color}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, translate("check subject color", err)
	}
	return count > 0, nil
}

type ModuleRepository struct {
	coll *mongo.Collection
}

func withTopics(modules []model.Module) []model.Module {
	for i := range modules {
		if modules[i].Topics == nil {
			modules[i].Topics = []model.Topic{}
		}
		modules[i].Reindex()
	}
	return modules
}

func (r *ModuleRepository) List(ctx context.Context, userID, subjectID string) ([]model.Module, error) {
	filter := bson.M{"user_id": userID}
	if subjectID != "" {
		filter["subject_id"] = subjectID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	modules, err := findAll[model.Module](ctx, r.coll, filter, "list modules", opts)
	if err != nil {
		return nil, err
	}
	return withTopics(modules), nil
}

func (r *ModuleRepository) Get(ctx context.Context, userID, id string) (*model.Module, error) {
	module, err := findOne[model.Module](ctx, r.coll, owned(userID, id), "get module")
	if err != nil {
		return nil, err
	}
	if module.Topics == nil {
		module.Topics = []model.Topic{}
	}
	module.Reindex()
	return module, nil
}

func (r *ModuleRepository) Create(ctx context.Context, module *model.Module) error {
	if module.ID == "" {
		module.ID = model.NewID()
	}
	if module.Topics == nil {
		module.Topics = []model.Topic{}
	}
	module.Reindex()
	module.CreatedAt = now()
	module.UpdatedAt = module.CreatedAt
	_, err := r.coll.InsertOne(ctx, module)
	return translate("create module", err)
}

func (r *ModuleRepository) Update(ctx context.Context, module *model.Module) error {
	if module.Topics == nil {
		module.Topics = []model.Topic{}
	}
	module.Reindex()
	module.UpdatedAt = now()
	return replaceOwned(ctx, r.coll, owned(module.UserID, module.ID), module, "update module")
}

// Delete removes the module document and with it every embedded topic
func (r *ModuleRepository) Delete(ctx context.Context, userID, id string) error {
	return deleteOne(ctx, r.coll, owned(userID, id), "delete module")
}

func (r *ModuleRepository) DeleteBySubject(ctx context.Context, userID, subjectID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID, "subject_id": subjectID})
	return translate("delete subject modules", err)
}

func (r *ModuleRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	return translate("delete user modules", err)
}

func (r *ModuleRepository) CountBySubject(ctx context.Context, userID string) (map[string]model.ModuleCounts, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$subject_id",
			"total":     bson.M{"$sum": 1},
			"completed": bson.M{"$sum": bson.M{"$cond": bson.A{"$completed", 1, 0}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate("count modules", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		SubjectID string `bson:"_id"`
		Total     int64  `bson:"total"`
		Completed int64  `bson:"completed"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, translate("count modules", err)
	}

	counts := make(map[string]model.ModuleCounts, len(rows))
	for _, row := range rows {
		counts[row.SubjectID] = model.ModuleCounts{Total: row.Total, Completed: row.Completed}
	}
	return counts, nil
}

type ClassSlotRepository struct {
	coll *mongo.Collection
}

func weekdayIndex(day string) int {
	for i, d := range model.Weekdays {
		if d == day {
			return i
		}
	}
	return len(model.Weekdays)
}

func (r *ClassSlotRepository) List(ctx context.Context, userID, day string) ([]model.ClassSlot, error) {
	filter := bson.M{"user_id": userID}
	if day != "" {
		filter["day"] = day
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	slots, err := findAll[model.ClassSlot](ctx, r.coll, filter, "list class slots", opts)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return weekdayIndex(slots[i].Day) < weekdayIndex(slots[j].Day)
	})
	return slots, nil
}

func (r *ClassSlotRepository) Get(ctx context.Context, userID, id string) (*model.ClassSlot, error) {
	return findOne[model.ClassSlot](ctx, r.coll, owned(userID, id), "get class slot")
}

func (r *ClassSlotRepository) Create(ctx context.Context, slot *model.ClassSlot) error {
	if slot.ID == "" {
		slot.ID = model.NewID()
	}
	slot.CreatedAt = now()
	slot.UpdatedAt = slot.CreatedAt
	_, err := r.coll.InsertOne(ctx, slot)
	return translate("create class slot", err)
}

func (r *ClassSlotRepository) Update(ctx context.Context, slot *model.ClassSlot) error {
	slot.UpdatedAt = now()
	return replaceOwned(ctx, r.coll, owned(slot.UserID, slot.ID), slot, "update class slot")
}

func (r *ClassSlotRepository) Delete(ctx context.Context, userID, id string) error {
	return deleteOne(ctx, r.coll, owned(userID, id), "delete class slot")
}

func (r *ClassSlotRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	return translate("delete user class slots", err)
}
