package model

import "time"

// ===============================
// Database Entities (Internal)
// ===============================

// Admission is a student's enrolment record, created when the student joins
// a class.
type Admission struct {
	ID             string    `gorm:"type:text;primary_key"`
	StudentID      string    `gorm:"type:text;not null;uniqueIndex"` // user ID
	ClassID        string    `gorm:"type:text;not null;index"`
	AdmissionDate  time.Time `gorm:"not null"`
	GuardianUserID string    `gorm:"type:text"` // parent user ID
	Status         string    `gorm:"not null;default:'ENROLLED'"` // ENROLLED, TRANSFERRED, GRADUATED, WITHDRAWN
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FormerSchool records where a student studied before admission.
type FormerSchool struct {
	ID         string `gorm:"type:text;primary_key"`
	StudentID  string `gorm:"type:text;not null;index"`
	SchoolName string `gorm:"not null"`
	Address    string
	FromYear   int
	ToYear     int
	Remarks    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BehaviorReport is a dated behavioral observation filed by a teacher.
type BehaviorReport struct {
	ID          string    `gorm:"type:text;primary_key"`
	StudentID   string    `gorm:"type:text;not null;index"`
	ReporterID  string    `gorm:"type:text;not null"` // teacher or staff user ID
	Category    string    `gorm:"not null"`           // e.g. CONDUCT, ATTENDANCE, ACADEMIC
	Description string    `gorm:"not null"`
	ReportedAt  time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisciplinaryAction is a sanction tied to a behavior report.
type DisciplinaryAction struct {
	ID         string    `gorm:"type:text;primary_key"`
	StudentID  string    `gorm:"type:text;not null;index"`
	ReportID   string    `gorm:"type:text"` // optional originating behavior report
	Action     string    `gorm:"not null"`  // e.g. WARNING, DETENTION, SUSPENSION
	Reason     string    `gorm:"not null"`
	IssuedByID string    `gorm:"type:text;not null"`
	StartDate  time.Time `gorm:"not null"`
	EndDate    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Extracurricular records a student's participation in a club or activity.
type Extracurricular struct {
	ID        string `gorm:"type:text;primary_key"`
	StudentID string `gorm:"type:text;not null;index"`
	Activity  string `gorm:"not null"`
	Position  string // e.g. member, captain
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ===============================
// Repository Requests
// ===============================

type CreateAdmissionRequest struct {
	StudentID      string
	ClassID        string
	AdmissionDate  time.Time
	GuardianUserID string
}

type CreateFormerSchoolRequest struct {
	StudentID  string
	SchoolName string
	Address    string
	FromYear   int
	ToYear     int
	Remarks    string
}

type CreateBehaviorReportRequest struct {
	StudentID   string
	ReporterID  string
	Category    string
	Description string
	ReportedAt  time.Time
}

type CreateDisciplinaryActionRequest struct {
	StudentID  string
	ReportID   string
	Action     string
	Reason     string
	IssuedByID string
	StartDate  time.Time
	EndDate    time.Time
}

type CreateExtracurricularRequest struct {
	StudentID string
	Activity  string
	Position  string
	Notes     string
}

// ===============================
// API DTOs (External)
// ===============================

type CreateAdmissionAPIRequest struct {
	StudentID      string    `json:"student_id" binding:"required"`
	ClassID        string    `json:"class_id" binding:"required"`
	AdmissionDate  time.Time `json:"admission_date" binding:"required"`
	GuardianUserID string    `json:"guardian_user_id"`
}

type UpdateAdmissionAPIRequest struct {
	ClassID        string `json:"class_id" binding:"required"`
	GuardianUserID string `json:"guardian_user_id"`
	Status         string `json:"status" binding:"required,oneof=ENROLLED TRANSFERRED GRADUATED WITHDRAWN"`
}

type CreateFormerSchoolAPIRequest struct {
	StudentID  string `json:"student_id" binding:"required"`
	SchoolName string `json:"school_name" binding:"required"`
	Address    string `json:"address"`
	FromYear   int    `json:"from_year"`
	ToYear     int    `json:"to_year"`
	Remarks    string `json:"remarks"`
}

type CreateBehaviorReportAPIRequest struct {
	StudentID   string    `json:"student_id" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	Description string    `json:"description" binding:"required"`
	ReportedAt  time.Time `json:"reported_at" binding:"required"`
}

type CreateDisciplinaryActionAPIRequest struct {
	StudentID string    `json:"student_id" binding:"required"`
	ReportID  string    `json:"report_id"`
	Action    string    `json:"action" binding:"required"`
	Reason    string    `json:"reason" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date"`
}

type CreateExtracurricularAPIRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Activity  string `json:"activity" binding:"required"`
	Position  string `json:"position"`
	Notes     string `json:"notes"`
}

type AdmissionResponse struct {
	AdmissionID    string    `json:"admission_id"`
	StudentID      string    `json:"student_id"`
	ClassID        string    `json:"class_id"`
	AdmissionDate  time.Time `json:"admission_date"`
	GuardianUserID string    `json:"guardian_user_id,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func (a *Admission) ToAdmissionResponse() *AdmissionResponse {
	return &AdmissionResponse{
		AdmissionID:    a.ID,
		StudentID:      a.StudentID,
		ClassID:        a.ClassID,
		AdmissionDate:  a.AdmissionDate,
		GuardianUserID: a.GuardianUserID,
		Status:         a.Status,
		CreatedAt:      a.CreatedAt,
	}
}

type FormerSchoolResponse struct {
	FormerSchoolID string    `json:"former_school_id"`
	StudentID      string    `json:"student_id"`
	SchoolName     string    `json:"school_name"`
	Address        string    `json:"address,omitempty"`
	FromYear       int       `json:"from_year,omitempty"`
	ToYear         int       `json:"to_year,omitempty"`
	Remarks        string    `json:"remarks,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (f *FormerSchool) ToFormerSchoolResponse() *FormerSchoolResponse {
	return &FormerSchoolResponse{
		FormerSchoolID: f.ID,
		StudentID:      f.StudentID,
		SchoolName:     f.SchoolName,
		Address:        f.Address,
		FromYear:       f.FromYear,
		ToYear:         f.ToYear,
		Remarks:        f.Remarks,
		CreatedAt:      f.CreatedAt,
	}
}

type BehaviorReportResponse struct {
	ReportID    string    `json:"report_id"`
	StudentID   string    `json:"student_id"`
	ReporterID  string    `json:"reporter_id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ReportedAt  time.Time `json:"reported_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (b *BehaviorReport) ToBehaviorReportResponse() *BehaviorReportResponse {
	return &BehaviorReportResponse{
		ReportID:    b.ID,
		StudentID:   b.StudentID,
		ReporterID:  b.ReporterID,
		Category:    b.Category,
		Description: b.Description,
		ReportedAt:  b.ReportedAt,
		CreatedAt:   b.CreatedAt,
	}
}

type DisciplinaryActionResponse struct {
	ActionID   string    `json:"action_id"`
	StudentID  string    `json:"student_id"`
	ReportID   string    `json:"report_id,omitempty"`
	Action     string    `json:"action"`
	Reason     string    `json:"reason"`
	IssuedByID string    `json:"issued_by_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (d *DisciplinaryAction) ToDisciplinaryActionResponse() *DisciplinaryActionResponse {
	return &DisciplinaryActionResponse{
		ActionID:   d.ID,
		StudentID:  d.StudentID,
		ReportID:   d.ReportID,
		Action:     d.Action,
		Reason:     d.Reason,
		IssuedByID: d.IssuedByID,
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,
		CreatedAt:  d.CreatedAt,
	}
}

type ExtracurricularResponse struct {
	ExtracurricularID string    `json:"extracurricular_id"`
	StudentID         string    `json:"student_id"`
	Activity          string    `json:"activity"`
	Position          string    `json:"position,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func (e *Extracurricular) ToExtracurricularResponse() *ExtracurricularResponse {
	return &ExtracurricularResponse{
		ExtracurricularID: e.ID,
		StudentID:         e.StudentID,
		Activity:          e.Activity,
		Position:          e.Position,
		Notes:             e.Notes,
		CreatedAt:         e.CreatedAt,
	}
}

type AdmissionListResponse struct {
	Admissions []AdmissionResponse `json:"admissions"`
	Pagination Pagination          `json:"pagination"`
}

type FormerSchoolListResponse struct {
	FormerSchools []FormerSchoolResponse `json:"former_schools"`
	Pagination    Pagination             `json:"pagination"`
}

type BehaviorReportListResponse struct {
	Reports    []BehaviorReportResponse `json:"reports"`
	Pagination Pagination               `json:"pagination"`
}

type DisciplinaryActionListResponse struct {
	Actions    []DisciplinaryActionResponse `json:"actions"`
	Pagination Pagination                   `json:"pagination"`
}

type ExtracurricularListResponse struct {
	Extracurriculars []ExtracurricularResponse `json:"extracurriculars"`
	Pagination       Pagination                `json:"pagination"`
}
