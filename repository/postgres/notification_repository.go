package postgres

import (
	"github.com/essomba/schoolhub/apperror"
	"github.com/essomba/schoolhub/model"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PostgresNotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) CreateNotification(req model.CreateNotificationRequest) (*model.Notification, error) {
	notification := model.Notification{
		ID:       uuid.New().String(),
		Title:    req.Title,
		Body:     req.Body,
		Audience: pq.StringArray(req.Audience),
		SenderID: req.SenderID,
	}
	if err := r.db.Create(&notification).Error; err != nil {
		return nil, apperror.FromDB(err, "notification")
	}
	return &notification, nil
}

func (r *PostgresNotificationRepository) GetNotificationByID(notificationID string) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.Where("id = ?", notificationID).First(&notification).Error; err != nil {
		return nil, apperror.FromDB(err, "notification")
	}
	return &notification, nil
}

func (r *PostgresNotificationRepository) ListNotifications(audienceRole string, filter model.ListFilter) ([]model.Notification, int, error) {
	var notifications []model.Notification
	var total int64

	query := r.db.Model(&model.Notification{})
	if audienceRole != "" {
		query = query.Where("? = ANY(audience)", audienceRole)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR body ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "notification")
	}
	if err := applyPagination(query, filter).Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "notification")
	}
	return notifications, int(total), nil
}

func (r *PostgresNotificationRepository) DeleteNotification(notificationID string) error {
	result := r.db.Where("id = ?", notificationID).Delete(&model.Notification{})
	if result.Error != nil {
		return apperror.FromDB(result.Error, "notification")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("notification not found")
	}
	return nil
}
