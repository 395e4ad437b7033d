package main

import (
	"net/http"

	"github.com/essomba/schoolhub/cache"
	"github.com/essomba/schoolhub/model"
	"github.com/essomba/schoolhub/repository"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	repo  repository.StudentRepository
	store cache.Store
}

func NewStudentHandler(repo repository.StudentRepository, store cache.Store) *StudentHandler {
	return &StudentHandler{repo: repo, store: store}
}

// studentPatterns enumerates every cache key family that can hold stale data
// for one student's lifecycle records.
func studentPatterns(studentID string, families ...string) []string {
	patterns := make([]string, 0, len(families))
	for _, family := range families {
		patterns = append(patterns, cache.ChildKey("student", studentID, family)+":*")
	}
	return patterns
}

// ===============================
// Admissions
// ===============================

func (h *StudentHandler) CreateAdmission(c *gin.Context) {
	var req model.CreateAdmissionAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	admission, err := h.repo.CreateAdmission(model.CreateAdmissionRequest{
		StudentID:      req.StudentID,
		ClassID:        req.ClassID,
		AdmissionDate:  req.AdmissionDate,
		GuardianUserID: req.GuardianUserID,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store, cache.ListPattern("admissions")) {
		return
	}

	c.JSON(http.StatusCreated, admission.ToAdmissionResponse())
}

func (h *StudentHandler) GetAdmission(c *gin.Context) {
	admission, err := h.repo.GetAdmissionByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	respondCached(c, h.store, admission.ToAdmissionResponse())
}

func (h *StudentHandler) ListAdmissions(c *gin.Context) {
	filter := parseListFilter(c)

	admissions, total, err := h.repo.ListAdmissions(c.Query("class_id"), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.AdmissionListResponse{
		Admissions: make([]model.AdmissionResponse, 0, len(admissions)),
		Pagination: model.NewPagination(filter, total),
	}
	for i := range admissions {
		response.Admissions = append(response.Admissions, *admissions[i].ToAdmissionResponse())
	}

	respondCached(c, h.store, response)
}

func (h *StudentHandler) UpdateAdmission(c *gin.Context) {
	var req model.UpdateAdmissionAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	admission, err := h.repo.UpdateAdmission(c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.Key("admission", admission.ID),
		cache.ListPattern("admissions"),
	) {
		return
	}

	c.JSON(http.StatusOK, admission.ToAdmissionResponse())
}

// ===============================
// Former schools
// ===============================

func (h *StudentHandler) CreateFormerSchool(c *gin.Context) {
	var req model.CreateFormerSchoolAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	formerSchool, err := h.repo.CreateFormerSchool(model.CreateFormerSchoolRequest{
		StudentID:  req.StudentID,
		SchoolName: req.SchoolName,
		Address:    req.Address,
		FromYear:   req.FromYear,
		ToYear:     req.ToYear,
		Remarks:    req.Remarks,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store, studentPatterns(formerSchool.StudentID, "former-schools")...) {
		return
	}

	c.JSON(http.StatusCreated, formerSchool.ToFormerSchoolResponse())
}

func (h *StudentHandler) ListFormerSchools(c *gin.Context) {
	filter := parseListFilter(c)

	formerSchools, total, err := h.repo.ListFormerSchools(c.Param("id"), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.FormerSchoolListResponse{
		FormerSchools: make([]model.FormerSchoolResponse, 0, len(formerSchools)),
		Pagination:    model.NewPagination(filter, total),
	}
	for i := range formerSchools {
		response.FormerSchools = append(response.FormerSchools, *formerSchools[i].ToFormerSchoolResponse())
	}

	respondCached(c, h.store, response)
}

func (h *StudentHandler) DeleteFormerSchool(c *gin.Context) {
	studentID := c.Param("id")
	if err := h.repo.DeleteFormerSchool(c.Param("recordId")); err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store, studentPatterns(studentID, "former-schools")...) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Former school record deleted successfully"})
}

// ===============================
// Behavior reports
// ===============================

func (h *StudentHandler) CreateBehaviorReport(c *gin.Context) {
	var req model.CreateBehaviorReportAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	report, err := h.repo.CreateBehaviorReport(model.CreateBehaviorReportRequest{
		StudentID:   req.StudentID,
		ReporterID:  c.GetString("user_id"),
		Category:    req.Category,
		Description: req.Description,
		ReportedAt:  req.ReportedAt,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store, studentPatterns(report.StudentID, "behavior-reports")...) {
		return
	}

	c.JSON(http.StatusCreated, report.ToBehaviorReportResponse())
}

func (h *StudentHandler) ListBehaviorReports(c *gin.Context) {
	filter := parseListFilter(c)

	reports, total, err := h.repo.ListBehaviorReports(c.Param("id"), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.BehaviorReportListResponse{
		Reports:    make([]model.BehaviorReportResponse, 0, len(reports)),
		Pagination: model.NewPagination(filter, total),
	}
	for i := range reports {
		response.Reports = append(response.Reports, *reports[i].ToBehaviorReportResponse())
	}

	respondCached(c, h.store, response)
}

// ===============================
// Disciplinary actions
// ===============================

func (h *StudentHandler) CreateDisciplinaryAction(c *gin.Context) {
	var req model.CreateDisciplinaryActionAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	action, err := h.repo.CreateDisciplinaryAction(model.CreateDisciplinaryActionRequest{
		StudentID:  req.StudentID,
		ReportID:   req.ReportID,
		Action:     req.Action,
		Reason:     req.Reason,
		IssuedByID: c.GetString("user_id"),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store, studentPatterns(action.StudentID, "disciplinary-actions")...) {
		return
	}

	c.JSON(http.StatusCreated, action.ToDisciplinaryActionResponse())
}

func (h *StudentHandler) ListDisciplinaryActions(c *gin.Context) {
	filter := parseListFilter(c)

	actions, total, err := h.repo.ListDisciplinaryActions(c.Param("id"), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.DisciplinaryActionListResponse{
		Actions:    make([]model.DisciplinaryActionResponse, 0, len(actions)),
		Pagination: model.NewPagination(filter, total),
	}
	for i := range actions {
		response.Actions = append(response.Actions, *actions[i].ToDisciplinaryActionResponse())
	}

	respondCached(c, h.store, response)
}

// ===============================
// Extracurriculars
// ===============================

func (h *StudentHandler) CreateExtracurricular(c *gin.Context) {
	var req model.CreateExtracurricularAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	extracurricular, err := h.repo.CreateExtracurricular(model.CreateExtracurricularRequest{
		StudentID: req.StudentID,
		Activity:  req.Activity,
		Position:  req.Position,
		Notes:     req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store, studentPatterns(extracurricular.StudentID, "extracurriculars")...) {
		return
	}

	c.JSON(http.StatusCreated, extracurricular.ToExtracurricularResponse())
}

func (h *StudentHandler) ListExtracurriculars(c *gin.Context) {
	filter := parseListFilter(c)

	extracurriculars, total, err := h.repo.ListExtracurriculars(c.Param("id"), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.ExtracurricularListResponse{
		Extracurriculars: make([]model.ExtracurricularResponse, 0, len(extracurriculars)),
		Pagination:       model.NewPagination(filter, total),
	}
	for i := range extracurriculars {
		response.Extracurriculars = append(response.Extracurriculars, *extracurriculars[i].ToExtracurricularResponse())
	}

	respondCached(c, h.store, response)
}

func (h *StudentHandler) DeleteExtracurricular(c *gin.Context) {
	studentID := c.Param("id")
	if err := h.repo.DeleteExtracurricular(c.Param("recordId")); err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store, studentPatterns(studentID, "extracurriculars")...) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Extracurricular record deleted successfully"})
}
