package postgres

import (
	"github.com/essomba/schoolhub/apperror"
	"github.com/essomba/schoolhub/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user with hashed password.
func (r *PostgresUserRepository) CreateUser(req model.CreateUserRequest) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		PhoneNumber:  req.PhoneNumber,
	}

	if err := r.db.Create(&user).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}

	return &user, nil
}

func (r *PostgresUserRepository) GetUserByID(userID string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}
	return &user, nil
}

func (r *PostgresUserRepository) ListUsers(role string, filter model.ListFilter) ([]model.User, int, error) {
	var users []model.User
	var total int64

	query := r.db.Model(&model.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "user")
	}

	if err := applyPagination(query, filter).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "user")
	}

	return users, int(total), nil
}

func (r *PostgresUserRepository) UpdateUserPhoto(userID, photoURL string) error {
	result := r.db.Model(&model.User{}).Where("id = ?", userID).Update("photo_url", photoURL)
	if result.Error != nil {
		return apperror.FromDB(result.Error, "user")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("user not found")
	}
	return nil
}

// ValidatePassword checks if the provided password matches the user's password.
func (r *PostgresUserRepository) ValidatePassword(user *model.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

// GetDB returns the database instance for health checks
func (r *PostgresUserRepository) GetDB() *gorm.DB {
	return r.db
}
