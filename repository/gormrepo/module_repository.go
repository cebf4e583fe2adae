package gormrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// ModuleRepository stores modules in one table and their topics in module_topics.
// Topics are always written as a whole list together with their module.
type ModuleRepository struct {
	db *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

func orderedTopics(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *ModuleRepository) List(ctx context.Context, userID, subjectID string) ([]model.Module, error) {
	modules := []model.Module{}
	query := r.db.WithContext(ctx).Preload("Topics", orderedTopics).Where("user_id = ?", userID)
	if subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}
	if err := query.Order("created_at ASC").Find(&modules).Error; err != nil {
		return nil, translate("list modules", err)
	}
	for i := range modules {
		if modules[i].Topics == nil {
			modules[i].Topics = []model.Topic{}
		}
	}
	return modules, nil
}

func (r *ModuleRepository) Get(ctx context.Context, userID, id string) (*model.Module, error) {
	var module model.Module
	err := r.db.WithContext(ctx).
		Preload("Topics", orderedTopics).
		Where("id = ? AND user_id = ?", id, userID).
		First(&module).Error
	if err != nil {
		return nil, translate("get module", err)
	}
	if module.Topics == nil {
		module.Topics = []model.Topic{}
	}
	return &module, nil
}

func (r *ModuleRepository) Create(ctx context.Context, module *model.Module) error {
	if module.ID == "" {
		module.ID = model.NewID()
	}
	module.Reindex()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(module).Error; err != nil {
			return err
		}
		if len(module.Topics) > 0 {
			return tx.Create(&module.Topics).Error
		}
		return nil
	})
	return translate("create module", err)
}

func (r *ModuleRepository) Update(ctx context.Context, module *model.Module) error {
	module.Reindex()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(module).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id = ?", module.ID).Delete(&model.Topic{}).Error; err != nil {
			return err
		}
		if len(module.Topics) > 0 {
			return tx.Create(&module.Topics).Error
		}
		return nil
	})
	return translate("update module", err)
}

func (r *ModuleRepository) Delete(ctx context.Context, userID, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Module{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return tx.Where("module_id = ?", id).Delete(&model.Topic{}).Error
	})
	return translate("delete module", err)
}

func (r *ModuleRepository) DeleteBySubject(ctx context.Context, userID, subjectID string) error {
	return r.deleteWhere(ctx, "delete subject modules", "user_id = ? AND subject_id = ?", userID, subjectID)
}

func (r *ModuleRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.deleteWhere(ctx, "delete user modules", "user_id = ?", userID)
}

func (r *ModuleRepository) deleteWhere(ctx context.Context, op, cond string, args ...interface{}) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&model.Module{}).Select("id").Where(cond, args...)
		if err := tx.Where("module_id IN (?)", owned).Delete(&model.Topic{}).Error; err != nil {
			return err
		}
		return tx.Where(cond, args...).Delete(&model.Module{}).Error
	})
	return translate(op, err)
}

// CountBySubject aggregates module totals per subject in one grouped query
func (r *ModuleRepository) CountBySubject(ctx context.Context, userID string) (map[string]model.ModuleCounts, error) {
	var rows []struct {
		SubjectID string
		Total     int64
		Completed int64
	}
	err := r.db.WithContext(ctx).Model(&model.Module{}).
		Select("subject_id, COUNT(*) AS total, SUM(CASE WHEN completed = ? THEN 1 ELSE 0 END) AS completed", true).
		Where("user_id = ?", userID).
		Group("subject_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate("count modules", err)
	}

	counts := make(map[string]model.ModuleCounts, len(rows))
	for _, row := range rows {
		counts[row.SubjectID] = model.ModuleCounts{Total: row.Total, Completed: row.Completed}
	}
	return counts, nil
}
