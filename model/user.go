package model

import "time"

// Roles recognised by the authorization middleware.
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
	RoleParent  = "PARENT"
	RoleStaff   = "STAFF"
)

// ===============================
// Database Entities (Internal)
// ===============================

// User represents any registered account: admin, teacher, student, parent or
// staff. The Role column drives per-route authorization.
type User struct {
	ID           string `gorm:"type:text;primary_key"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Role         string `gorm:"not null;default:'STUDENT'"`
	PhoneNumber  string
	PhotoURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ===============================
// Repository Requests
// ===============================

type CreateUserRequest struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        string
	PhoneNumber string
}

// ===============================
// API DTOs (External)
// ===============================

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Role        string `json:"role" binding:"required,oneof=ADMIN TEACHER STUDENT PARENT STAFF"`
	PhoneNumber string `json:"phone_number"`
}

func (r *RegisterRequest) ToCreateUserRequest() CreateUserRequest {
	return CreateUserRequest{
		Email:       r.Email,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Role:        r.Role,
		PhoneNumber: r.PhoneNumber,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        string    `json:"role"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToUserResponse() *UserResponse {
	return &UserResponse{
		UserID:      u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		PhotoURL:    u.PhotoURL,
		CreatedAt:   u.CreatedAt,
	}
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}

type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}
