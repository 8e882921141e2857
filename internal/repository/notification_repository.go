package repository

import (
	"errors"

	"github.com/hmtri1011/surveyhub/internal/errs"
	"github.com/hmtri1011/surveyhub/internal/model"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	CreateBatch(notifications []model.Notification) error
	FindByRecipient(recipientID uint) ([]model.Notification, error)
	FindByIDForRecipient(id string, recipientID uint) (*model.Notification, error)
	Update(notification *model.Notification) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) CreateBatch(notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.Create(&notifications).Error
}

func (r *notificationRepository) FindByRecipient(recipientID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Where("recipient_id = ?", recipientID).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) FindByIDForRecipient(id string, recipientID uint) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.Where("id = ? AND recipient_id = ?", id, recipientID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) Update(notification *model.Notification) error {
	return r.db.Save(notification).Error
}
