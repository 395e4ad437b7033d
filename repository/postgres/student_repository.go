package postgres

import (
	"github.com/essomba/schoolhub/apperror"
	"github.com/essomba/schoolhub/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresStudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

// Admission operations

func (r *PostgresStudentRepository) CreateAdmission(req model.CreateAdmissionRequest) (*model.Admission, error) {
	admission := model.Admission{
		ID:             uuid.New().String(),
		StudentID:      req.StudentID,
		ClassID:        req.ClassID,
		AdmissionDate:  req.AdmissionDate,
		GuardianUserID: req.GuardianUserID,
		Status:         "ENROLLED",
	}
	if err := r.db.Create(&admission).Error; err != nil {
		return nil, apperror.FromDB(err, "admission")
	}
	return &admission, nil
}

func (r *PostgresStudentRepository) GetAdmissionByID(admissionID string) (*model.Admission, error) {
	var admission model.Admission
	if err := r.db.Where("id = ?", admissionID).First(&admission).Error; err != nil {
		return nil, apperror.FromDB(err, "admission")
	}
	return &admission, nil
}

func (r *PostgresStudentRepository) ListAdmissions(classID string, filter model.ListFilter) ([]model.Admission, int, error) {
	var admissions []model.Admission
	var total int64

	query := r.db.Model(&model.Admission{})
	if classID != "" {
		query = query.Where("class_id = ?", classID)
	}
	if filter.Search != "" {
		query = query.Where("status ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "admission")
	}
	if err := applyPagination(query, filter).Order("admission_date DESC").Find(&admissions).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "admission")
	}
	return admissions, int(total), nil
}

func (r *PostgresStudentRepository) UpdateAdmission(admissionID string, req model.UpdateAdmissionAPIRequest) (*model.Admission, error) {
	var admission model.Admission
	if err := r.db.Where("id = ?", admissionID).First(&admission).Error; err != nil {
		return nil, apperror.FromDB(err, "admission")
	}

	admission.ClassID = req.ClassID
	admission.GuardianUserID = req.GuardianUserID
	admission.Status = req.Status
	if err := r.db.Save(&admission).Error; err != nil {
		return nil, apperror.FromDB(err, "admission")
	}
	return &admission, nil
}

// Former school operations

func (r *PostgresStudentRepository) CreateFormerSchool(req model.CreateFormerSchoolRequest) (*model.FormerSchool, error) {
	formerSchool := model.FormerSchool{
		ID:         uuid.New().String(),
		StudentID:  req.StudentID,
		SchoolName: req.SchoolName,
		Address:    req.Address,
		FromYear:   req.FromYear,
		ToYear:     req.ToYear,
		Remarks:    req.Remarks,
	}
	if err := r.db.Create(&formerSchool).Error; err != nil {
		return nil, apperror.FromDB(err, "former school")
	}
	return &formerSchool, nil
}

func (r *PostgresStudentRepository) ListFormerSchools(studentID string, filter model.ListFilter) ([]model.FormerSchool, int, error) {
	var formerSchools []model.FormerSchool
	var total int64

	query := r.db.Model(&model.FormerSchool{}).Where("student_id = ?", studentID)
	if filter.Search != "" {
		query = query.Where("school_name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "former school")
	}
	if err := applyPagination(query, filter).Order("to_year DESC").Find(&formerSchools).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "former school")
	}
	return formerSchools, int(total), nil
}

func (r *PostgresStudentRepository) DeleteFormerSchool(formerSchoolID string) error {
	result := r.db.Where("id = ?", formerSchoolID).Delete(&model.FormerSchool{})
	if result.Error != nil {
		return apperror.FromDB(result.Error, "former school")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("former school not found")
	}
	return nil
}

// Behavior report operations

func (r *PostgresStudentRepository) CreateBehaviorReport(req model.CreateBehaviorReportRequest) (*model.BehaviorReport, error) {
	report := model.BehaviorReport{
		ID:          uuid.New().String(),
		StudentID:   req.StudentID,
		ReporterID:  req.ReporterID,
		Category:    req.Category,
		Description: req.Description,
		ReportedAt:  req.ReportedAt,
	}
	if err := r.db.Create(&report).Error; err != nil {
		return nil, apperror.FromDB(err, "behavior report")
	}
	return &report, nil
}

func (r *PostgresStudentRepository) ListBehaviorReports(studentID string, filter model.ListFilter) ([]model.BehaviorReport, int, error) {
	var reports []model.BehaviorReport
	var total int64

	query := r.db.Model(&model.BehaviorReport{}).Where("student_id = ?", studentID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("category ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "behavior report")
	}
	if err := applyPagination(query, filter).Order("reported_at DESC").Find(&reports).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "behavior report")
	}
	return reports, int(total), nil
}

// Disciplinary action operations

func (r *PostgresStudentRepository) CreateDisciplinaryAction(req model.CreateDisciplinaryActionRequest) (*model.DisciplinaryAction, error) {
	action := model.DisciplinaryAction{
		ID:         uuid.New().String(),
		StudentID:  req.StudentID,
		ReportID:   req.ReportID,
		Action:     req.Action,
		Reason:     req.Reason,
		IssuedByID: req.IssuedByID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if err := r.db.Create(&action).Error; err != nil {
		return nil, apperror.FromDB(err, "disciplinary action")
	}
	return &action, nil
}

func (r *PostgresStudentRepository) ListDisciplinaryActions(studentID string, filter model.ListFilter) ([]model.DisciplinaryAction, int, error) {
	var actions []model.DisciplinaryAction
	var total int64

	query := r.db.Model(&model.DisciplinaryAction{}).Where("student_id = ?", studentID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("action ILIKE ? OR reason ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "disciplinary action")
	}
	if err := applyPagination(query, filter).Order("start_date DESC").Find(&actions).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "disciplinary action")
	}
	return actions, int(total), nil
}

// Extracurricular operations

func (r *PostgresStudentRepository) CreateExtracurricular(req model.CreateExtracurricularRequest) (*model.Extracurricular, error) {
	extracurricular := model.Extracurricular{
		ID:        uuid.New().String(),
		StudentID: req.StudentID,
		Activity:  req.Activity,
		Position:  req.Position,
		Notes:     req.Notes,
	}
	if err := r.db.Create(&extracurricular).Error; err != nil {
		return nil, apperror.FromDB(err, "extracurricular")
	}
	return &extracurricular, nil
}

func (r *PostgresStudentRepository) ListExtracurriculars(studentID string, filter model.ListFilter) ([]model.Extracurricular, int, error) {
	var extracurriculars []model.Extracurricular
	var total int64

	query := r.db.Model(&model.Extracurricular{}).Where("student_id = ?", studentID)
	if filter.Search != "" {
		query = query.Where("activity ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "extracurricular")
	}
	if err := applyPagination(query, filter).Order("created_at DESC").Find(&extracurriculars).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "extracurricular")
	}
	return extracurriculars, int(total), nil
}

func (r *PostgresStudentRepository) DeleteExtracurricular(extracurricularID string) error {
	result := r.db.Where("id = ?", extracurricularID).Delete(&model.Extracurricular{})
	if result.Error != nil {
		return apperror.FromDB(result.Error, "extracurricular")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("extracurricular not found")
	}
	return nil
}
