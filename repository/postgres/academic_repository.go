package postgres

import (
	"github.com/essomba/schoolhub/apperror"
	"github.com/essomba/schoolhub/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresAcademicRepository struct {
	db *gorm.DB
}

func NewAcademicRepository(db *gorm.DB) *PostgresAcademicRepository {
	return &PostgresAcademicRepository{db: db}
}

// Level operations

func (r *PostgresAcademicRepository) CreateLevel(req model.CreateLevelRequest) (*model.Level, error) {
	level := model.Level{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := r.db.Create(&level).Error; err != nil {
		return nil, apperror.FromDB(err, "level")
	}
	return &level, nil
}

func (r *PostgresAcademicRepository) GetLevelByID(levelID string) (*model.Level, error) {
	var level model.Level
	if err := r.db.Preload("Classes").Where("id = ?", levelID).First(&level).Error; err != nil {
		return nil, apperror.FromDB(err, "level")
	}
	return &level, nil
}

func (r *PostgresAcademicRepository) ListLevels(filter model.ListFilter) ([]model.Level, int, error) {
	var levels []model.Level
	var total int64

	query := r.db.Model(&model.Level{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "level")
	}
	if err := applyPagination(query, filter).Order("name ASC").Find(&levels).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "level")
	}
	return levels, int(total), nil
}

func (r *PostgresAcademicRepository) UpdateLevel(levelID string, req model.CreateLevelRequest) (*model.Level, error) {
	var level model.Level
	if err := r.db.Where("id = ?", levelID).First(&level).Error; err != nil {
		return nil, apperror.FromDB(err, "level")
	}

	level.Name = req.Name
	level.Description = req.Description
	if err := r.db.Save(&level).Error; err != nil {
		return nil, apperror.FromDB(err, "level")
	}
	return &level, nil
}

func (r *PostgresAcademicRepository) DeleteLevel(levelID string) error {
	result := r.db.Where("id = ?", levelID).Delete(&model.Level{})
	if result.Error != nil {
		return apperror.FromDB(result.Error, "level")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("level not found")
	}
	return nil
}

// Class operations

func (r *PostgresAcademicRepository) CreateClass(req model.CreateClassRequest) (*model.Class, error) {
	// Reject unknown levels up front so the error is a 404, not a raw FK violation
	var count int64
	if err := r.db.Model(&model.Level{}).Where("id = ?", req.LevelID).Count(&count).Error; err != nil {
		return nil, apperror.FromDB(err, "level")
	}
	if count == 0 {
		return nil, apperror.NotFound("level not found")
	}

	class := model.Class{
		ID:        uuid.New().String(),
		LevelID:   req.LevelID,
		Name:      req.Name,
		TeacherID: req.TeacherID,
	}
	if err := r.db.Create(&class).Error; err != nil {
		return nil, apperror.FromDB(err, "class")
	}
	return &class, nil
}

func (r *PostgresAcademicRepository) GetClassByID(classID string) (*model.Class, error) {
	var class model.Class
	if err := r.db.Where("id = ?", classID).First(&class).Error; err != nil {
		return nil, apperror.FromDB(err, "class")
	}
	return &class, nil
}

func (r *PostgresAcademicRepository) ListClasses(levelID string, filter model.ListFilter) ([]model.Class, int, error) {
	var classes []model.Class
	var total int64

	query := r.db.Model(&model.Class{})
	if levelID != "" {
		query = query.Where("level_id = ?", levelID)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "class")
	}
	if err := applyPagination(query, filter).Order("name ASC").Find(&classes).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "class")
	}
	return classes, int(total), nil
}

func (r *PostgresAcademicRepository) UpdateClass(classID string, req model.UpdateClassAPIRequest) (*model.Class, error) {
	var class model.Class
	if err := r.db.Where("id = ?", classID).First(&class).Error; err != nil {
		return nil, apperror.FromDB(err, "class")
	}

	class.Name = req.Name
	class.TeacherID = req.TeacherID
	if err := r.db.Save(&class).Error; err != nil {
		return nil, apperror.FromDB(err, "class")
	}
	return &class, nil
}

func (r *PostgresAcademicRepository) DeleteClass(classID string) error {
	result := r.db.Where("id = ?", classID).Delete(&model.Class{})
	if result.Error != nil {
		return apperror.FromDB(result.Error, "class")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("class not found")
	}
	return nil
}

// Course operations

// CreateCourses inserts the batch in a single transaction; either every
// course lands or none do.
func (r *PostgresAcademicRepository) CreateCourses(reqs []model.CreateCourseRequest) ([]model.Course, error) {
	courses := make([]model.Course, 0, len(reqs))
	for _, req := range reqs {
		courses = append(courses, model.Course{
			ID:        uuid.New().String(),
			ClassID:   req.ClassID,
			Name:      req.Name,
			Code:      req.Code,
			TeacherID: req.TeacherID,
		})
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&courses, 100).Error
	})
	if err != nil {
		return nil, apperror.FromDB(err, "course")
	}
	return courses, nil
}

func (r *PostgresAcademicRepository) GetCourseByID(courseID string) (*model.Course, error) {
	var course model.Course
	if err := r.db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return nil, apperror.FromDB(err, "course")
	}
	return &course, nil
}

func (r *PostgresAcademicRepository) ListCourses(classID string, filter model.ListFilter) ([]model.Course, int, error) {
	var courses []model.Course
	var total int64

	query := r.db.Model(&model.Course{})
	if classID != "" {
		query = query.Where("class_id = ?", classID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "course")
	}
	if err := applyPagination(query, filter).Order("code ASC").Find(&courses).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "course")
	}
	return courses, int(total), nil
}

func (r *PostgresAcademicRepository) UpdateCourse(courseID string, req model.UpdateCourseAPIRequest) (*model.Course, error) {
	var course model.Course
	if err := r.db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return nil, apperror.FromDB(err, "course")
	}

	course.Name = req.Name
	course.Code = req.Code
	course.TeacherID = req.TeacherID
	if err := r.db.Save(&course).Error; err != nil {
		return nil, apperror.FromDB(err, "course")
	}
	return &course, nil
}

func (r *PostgresAcademicRepository) DeleteCourse(courseID string) error {
	result := r.db.Where("id = ?", courseID).Delete(&model.Course{})
	if result.Error != nil {
		return apperror.FromDB(result.Error, "course")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("course not found")
	}
	return nil
}
