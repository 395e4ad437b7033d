package main

import (
	"log"
	"net/http"

	"github.com/essomba/schoolhub/cache"
	"github.com/essomba/schoolhub/model"
	"github.com/essomba/schoolhub/notifier"
	"github.com/essomba/schoolhub/repository"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	repo      repository.NotificationRepository
	store     cache.Store
	publisher notifier.NotificationPublisher
}

func NewNotificationHandler(repo repository.NotificationRepository, store cache.Store, publisher notifier.NotificationPublisher) *NotificationHandler {
	return &NotificationHandler{
		repo:      repo,
		store:     store,
		publisher: publisher,
	}
}

// CreateNotification persists the announcement, then hands it to the
// delivery pipeline. Delivery failure does not roll the row back; the
// announcement is still visible in-app.
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req model.CreateNotificationAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	notification, err := h.repo.CreateNotification(model.CreateNotificationRequest{
		Title:    req.Title,
		Body:     req.Body,
		Audience: req.Audience,
		SenderID: c.GetString("user_id"),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.publisher.Publish(c.Request.Context(), notification); err != nil {
		log.Printf("failed to publish notification %s: %v", notification.ID, err)
	}

	if !invalidateOrAbort(c, h.store, cache.ListPattern("notifications")) {
		return
	}

	c.JSON(http.StatusCreated, notification.ToNotificationResponse())
}

func (h *NotificationHandler) GetNotification(c *gin.Context) {
	notification, err := h.repo.GetNotificationByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	respondCached(c, h.store, notification.ToNotificationResponse())
}

// ListNotifications returns announcements addressed to the caller's role
// (admins see everything).
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	filter := parseListFilter(c)

	audienceRole := c.GetString("user_role")
	if audienceRole == model.RoleAdmin {
		audienceRole = ""
	}

	notifications, total, err := h.repo.ListNotifications(audienceRole, filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.NotificationListResponse{
		Notifications: make([]model.NotificationResponse, 0, len(notifications)),
		Pagination:    model.NewPagination(filter, total),
	}
	for i := range notifications {
		response.Notifications = append(response.Notifications, *notifications[i].ToNotificationResponse())
	}

	respondCached(c, h.store, response)
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	notificationID := c.Param("id")
	if err := h.repo.DeleteNotification(notificationID); err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.Key("notification", notificationID),
		cache.ListPattern("notifications"),
	) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}
