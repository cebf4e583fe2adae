package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/sahilchouksey/studyflow/model"
)

// SubjectRepository handles CRUD for subjects.
type SubjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

func (r *SubjectRepository) List(ctx context.Context, userID string) ([]model.Subject, error) {
	subjects := []model.Subject{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&subjects).Error; err != nil {
		return nil, translate("list subjects", err)
	}
	return subjects, nil
}

func (r *SubjectRepository) Get(ctx context.Context, userID, id string) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&subject).Error; err != nil {
		return nil, translate("get subject", err)
	}
	return &subject, nil
}

func (r *SubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	if subject.ID == "" {
		subject.ID = model.NewID()
	}
	return translate("create subject", r.db.WithContext(ctx).Create(subject).Error)
}

func (r *SubjectRepository) Update(ctx context.Context, subject *model.Subject) error {
	return translate("update subject", r.db.WithContext(ctx).Save(subject).Error)
}

func (r *SubjectRepository) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(r.db.WithContext(ctx), &model.Subject{}, userID, id, "delete subject")
}

func (r *SubjectRepository) DeleteByUser(ctx context.Context, userID string) error {
	return translate("delete user subjects", r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Subject{}).Error)
}

// ColorTaken reports whether another subject of the user already uses color
func (r *SubjectRepository) ColorTaken(ctx context.Context, userID, color, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Subject{}).Where("user_id = ? AND color = ?", userID, color)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, translate("check subject color", err)
	}
	return count > 0, nil
}
