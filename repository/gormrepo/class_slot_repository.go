package gormrepo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/sahilchouksey/studyflow/model"
)

// ClassSlotRepository handles CRUD for timetable slots.
type ClassSlotRepository struct {
	db *gorm.DB
}

func NewClassSlotRepository(db *gorm.DB) *ClassSlotRepository {
	return &ClassSlotRepository{db: db}
}

// weekdayOrder sorts rows Monday first instead of alphabetically
var weekdayOrder = func() string {
	var b strings.Builder
	b.WriteString("CASE day")
	for i, day := range model.Weekdays {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", day, i)
	}
	b.WriteString(" ELSE 7 END")
	return b.String()
}()

func (r *ClassSlotRepository) List(ctx context.Context, userID, day string) ([]model.ClassSlot, error) {
	slots := []model.ClassSlot{}
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if day != "" {
		query = query.Where("day = ?", day)
	}
	if err := query.Order(weekdayOrder).Order("start_time ASC").Find(&slots).Error; err != nil {
		return nil, translate("list class slots", err)
	}
	return slots, nil
}

func (r *ClassSlotRepository) Get(ctx context.Context, userID, id string) (*model.ClassSlot, error) {
	var slot model.ClassSlot
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&slot).Error; err != nil {
		return nil, translate("get class slot", err)
	}
	return &slot, nil
}

func (r *ClassSlotRepository) Create(ctx context.Context, slot *model.ClassSlot) error {
	if slot.ID == "" {
		slot.ID = model.NewID()
	}
	return translate("create class slot", r.db.WithContext(ctx).Create(slot).Error)
}

func (r *ClassSlotRepository) Update(ctx context.Context, slot *model.ClassSlot) error {
	return translate("update class slot", r.db.WithContext(ctx).Save(slot).Error)
}

func (r *ClassSlotRepository) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(r.db.WithContext(ctx), &model.ClassSlot{}, userID, id, "delete class slot")
}

func (r *ClassSlotRepository) DeleteByUser(ctx context.Context, userID string) error {
	return translate("delete user class slots", r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.ClassSlot{}).Error)
}
