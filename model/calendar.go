package model

import "time"

// ===============================
// Database Entities (Internal)
// ===============================

// SchoolEvent is an event on an academic calendar (sports day, PTA meeting).
type SchoolEvent struct {
	ID          string `gorm:"type:text;primary_key"`
	CalendarID  string `gorm:"type:text;not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Location    string
	StartsAt    time.Time `gorm:"not null"`
	EndsAt      time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Holiday is a school holiday on an academic calendar.
type Holiday struct {
	ID         string    `gorm:"type:text;primary_key"`
	CalendarID string    `gorm:"type:text;not null;index"`
	Name       string    `gorm:"not null"`
	StartDate  time.Time `gorm:"not null"`
	EndDate    time.Time `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ===============================
// Repository Requests
// ===============================

type CreateEventRequest struct {
	CalendarID  string
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
}

type CreateHolidayRequest struct {
	CalendarID string
	Name       string
	StartDate  time.Time
	EndDate    time.Time
}

// ===============================
// API DTOs (External)
// ===============================

type CreateEventAPIRequest struct {
	CalendarID  string    `json:"calendar_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
}

type UpdateEventAPIRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
}

type CreateHolidayAPIRequest struct {
	CalendarID string    `json:"calendar_id" binding:"required"`
	Name       string    `json:"name" binding:"required"`
	StartDate  time.Time `json:"start_date" binding:"required"`
	EndDate    time.Time `json:"end_date" binding:"required"`
}

type EventResponse struct {
	EventID     string    `json:"event_id"`
	CalendarID  string    `json:"calendar_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *SchoolEvent) ToEventResponse() *EventResponse {
	return &EventResponse{
		EventID:     e.ID,
		CalendarID:  e.CalendarID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		CreatedAt:   e.CreatedAt,
	}
}

type HolidayResponse struct {
	HolidayID  string    `json:"holiday_id"`
	CalendarID string    `json:"calendar_id"`
	Name       string    `json:"name"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *Holiday) ToHolidayResponse() *HolidayResponse {
	return &HolidayResponse{
		HolidayID:  h.ID,
		CalendarID: h.CalendarID,
		Name:       h.Name,
		StartDate:  h.StartDate,
		EndDate:    h.EndDate,
		CreatedAt:  h.CreatedAt,
	}
}

type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	Pagination Pagination      `json:"pagination"`
}

type HolidayListResponse struct {
	Holidays   []HolidayResponse `json:"holidays"`
	Pagination Pagination        `json:"pagination"`
}
