package model

import "time"

// ===============================
// Database Entities (Internal)
// ===============================

// Level represents a grade level (e.g. "Grade 5").
type Level struct {
	ID          string `gorm:"type:text;primary_key"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Classes []Class `gorm:"foreignKey:LevelID"`
}

// Class is a stream within a level (e.g. "5 North").
type Class struct {
	ID        string `gorm:"type:text;primary_key"`
	LevelID   string `gorm:"type:text;not null;index"`
	Name      string `gorm:"not null"`
	TeacherID string `gorm:"type:text"` // class teacher, user ID
	CreatedAt time.Time
	UpdatedAt time.Time

	Level Level `gorm:"foreignKey:LevelID"`
}

// Course is a subject taught to a class.
type Course struct {
	ID        string `gorm:"type:text;primary_key"`
	ClassID   string `gorm:"type:text;not null;index"`
	Name      string `gorm:"not null"`
	Code      string `gorm:"uniqueIndex;not null"`
	TeacherID string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Class Class `gorm:"foreignKey:ClassID"`
}

// AcademicCalendar is one academic year with its terms, events and holidays.
type AcademicCalendar struct {
	ID        string    `gorm:"type:text;primary_key"`
	Year      string    `gorm:"uniqueIndex;not null"` // e.g. "2025/2026"
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Terms    []Term        `gorm:"foreignKey:CalendarID"`
	Events   []SchoolEvent `gorm:"foreignKey:CalendarID"`
	Holidays []Holiday     `gorm:"foreignKey:CalendarID"`
}

// Term is one term within an academic calendar.
type Term struct {
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

type CreateLevelRequest struct {
	Name        string
	Description string
}

type CreateClassRequest struct {
	LevelID   string
	Name      string
	TeacherID string
}

type CreateCourseRequest struct {
	ClassID   string
	Name      string
	Code      string
	TeacherID string
}

type CreateCalendarRequest struct {
	Year      string
	StartDate time.Time
	EndDate   time.Time
}

type CreateTermRequest struct {
	CalendarID string
	Name       string
	StartDate  time.Time
	EndDate    time.Time
}

// ===============================
// API DTOs (External)
// ===============================

type CreateLevelAPIRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateLevelAPIRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CreateClassAPIRequest struct {
	LevelID   string `json:"level_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	TeacherID string `json:"teacher_id"`
}

type UpdateClassAPIRequest struct {
	Name      string `json:"name" binding:"required"`
	TeacherID string `json:"teacher_id"`
}

// CreateCoursesAPIRequest accepts one or more courses for a class; the batch
// is inserted in a single transaction.
type CreateCoursesAPIRequest struct {
	ClassID string             `json:"class_id" binding:"required"`
	Courses []CourseAPIPayload `json:"courses" binding:"required,min=1,dive"`
}

type CourseAPIPayload struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	TeacherID string `json:"teacher_id"`
}

type UpdateCourseAPIRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	TeacherID string `json:"teacher_id"`
}

type CreateCalendarAPIRequest struct {
	Year      string    `json:"year" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

type CreateTermAPIRequest struct {
	CalendarID string    `json:"calendar_id" binding:"required"`
	Name       string    `json:"name" binding:"required"`
	StartDate  time.Time `json:"start_date" binding:"required"`
	EndDate    time.Time `json:"end_date" binding:"required"`
}

type LevelResponse struct {
	LevelID     string          `json:"level_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Classes     []ClassResponse `json:"classes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (l *Level) ToLevelResponse() *LevelResponse {
	resp := &LevelResponse{
		LevelID:     l.ID,
		Name:        l.Name,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
	}
	for i := range l.Classes {
		resp.Classes = append(resp.Classes, *l.Classes[i].ToClassResponse())
	}
	return resp
}

type ClassResponse struct {
	ClassID   string    `json:"class_id"`
	LevelID   string    `json:"level_id"`
	Name      string    `json:"name"`
	TeacherID string    `json:"teacher_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Class) ToClassResponse() *ClassResponse {
	return &ClassResponse{
		ClassID:   c.ID,
		LevelID:   c.LevelID,
		Name:      c.Name,
		TeacherID: c.TeacherID,
		CreatedAt: c.CreatedAt,
	}
}

type CourseResponse struct {
	CourseID  string    `json:"course_id"`
	ClassID   string    `json:"class_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	TeacherID string    `json:"teacher_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Course) ToCourseResponse() *CourseResponse {
	return &CourseResponse{
		CourseID:  c.ID,
		ClassID:   c.ClassID,
		Name:      c.Name,
		Code:      c.Code,
		TeacherID: c.TeacherID,
		CreatedAt: c.CreatedAt,
	}
}

type CalendarResponse struct {
	CalendarID string            `json:"calendar_id"`
	Year       string            `json:"year"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    time.Time         `json:"end_date"`
	Terms      []TermResponse    `json:"terms,omitempty"`
	Events     []EventResponse   `json:"events,omitempty"`
	Holidays   []HolidayResponse `json:"holidays,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

func (c *AcademicCalendar) ToCalendarResponse() *CalendarResponse {
	resp := &CalendarResponse{
		CalendarID: c.ID,
		Year:       c.Year,
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		CreatedAt:  c.CreatedAt,
	}
	for i := range c.Terms {
		resp.Terms = append(resp.Terms, *c.Terms[i].ToTermResponse())
	}
	for i := range c.Events {
		resp.Events = append(resp.Events, *c.Events[i].ToEventResponse())
	}
	for i := range c.Holidays {
		resp.Holidays = append(resp.Holidays, *c.Holidays[i].ToHolidayResponse())
	}
	return resp
}

type TermResponse struct {
	TermID     string    `json:"term_id"`
	CalendarID string    `json:"calendar_id"`
	Name       string    `json:"name"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

func (t *Term) ToTermResponse() *TermResponse {
	return &TermResponse{
		TermID:     t.ID,
		CalendarID: t.CalendarID,
		Name:       t.Name,
		StartDate:  t.StartDate,
		EndDate:    t.EndDate,
	}
}

type LevelListResponse struct {
	Levels     []LevelResponse `json:"levels"`
	Pagination Pagination      `json:"pagination"`
}

type ClassListResponse struct {
	Classes    []ClassResponse `json:"classes"`
	Pagination Pagination      `json:"pagination"`
}

type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination Pagination       `json:"pagination"`
}

type CalendarListResponse struct {
	Calendars  []CalendarResponse `json:"calendars"`
	Pagination Pagination         `json:"pagination"`
}

type TermListResponse struct {
	Terms      []TermResponse `json:"terms"`
	Pagination Pagination     `json:"pagination"`
}
