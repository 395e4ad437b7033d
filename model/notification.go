package model

import (
	"time"

	"github.com/lib/pq"
)

// ===============================
// Database Entities (Internal)
// ===============================

// Notification is an announcement addressed to one or more roles.
type Notification struct {
	ID        string         `gorm:"type:text;primary_key"`
	Title     string         `gorm:"not null"`
	Body      string         `gorm:"not null"`
	Audience  pq.StringArray `gorm:"type:text[]"` // roles the notification targets
	SenderID  string         `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ===============================
// Repository Requests
// ===============================

type CreateNotificationRequest struct {
	Title    string
	Body     string
	Audience []string
	SenderID string
}

// ===============================
// API DTOs (External)
// ===============================

type CreateNotificationAPIRequest struct {
	Title    string   `json:"title" binding:"required"`
	Body     string   `json:"body" binding:"required"`
	Audience []string `json:"audience" binding:"required,min=1,dive,oneof=ADMIN TEACHER STUDENT PARENT STAFF"`
}

type NotificationResponse struct {
	NotificationID string    `json:"notification_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Audience       []string  `json:"audience"`
	SenderID       string    `json:"sender_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func (n *Notification) ToNotificationResponse() *NotificationResponse {
	return &NotificationResponse{
		NotificationID: n.ID,
		Title:          n.Title,
		Body:           n.Body,
		Audience:       n.Audience,
		SenderID:       n.SenderID,
		CreatedAt:      n.CreatedAt,
	}
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Pagination    Pagination             `json:"pagination"`
}

// ===============================
// Kafka Message Structures
// ===============================

// NotificationMessage is the payload published to the notification topic and
// consumed by the email worker.
type NotificationMessage struct {
	NotificationID string    `json:"notification_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Audience       []string  `json:"audience"`
	SenderID       string    `json:"sender_id"`
	Timestamp      time.Time `json:"timestamp"`
}

// EmailTemplate represents an email to be sent (logged to console).
type EmailTemplate struct {
	To      string
	Subject string
	Body    string
}

// GenerateAnnouncementEmail renders the notification as an email addressed
// to one audience role's mailing alias.
func (m *NotificationMessage) GenerateAnnouncementEmail(role string) *EmailTemplate {
	return &EmailTemplate{
		To:      role,
		Subject: "School announcement: " + m.Title,
		Body: m.Body + "\n\n" +
			"Sent " + m.Timestamp.Format("2006-01-02 15:04") + "\n" +
			"Notification ID: " + m.NotificationID + "\n",
	}
}
