package main

import (
	"net/http"

	"github.com/essomba/schoolhub/cache"
	"github.com/essomba/schoolhub/model"
	"github.com/essomba/schoolhub/repository"
	"github.com/gin-gonic/gin"
)

type AcademicHandler struct {
	repo  repository.AcademicRepository
	store cache.Store
}

func NewAcademicHandler(repo repository.AcademicRepository, store cache.Store) *AcademicHandler {
	return &AcademicHandler{repo: repo, store: store}
}

// ===============================
// Levels
// ===============================

func (h *AcademicHandler) CreateLevel(c *gin.Context) {
	var req model.CreateLevelAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	level, err := h.repo.CreateLevel(model.CreateLevelRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store, cache.ListPattern("levels")) {
		return
	}

	c.JSON(http.StatusCreated, level.ToLevelResponse())
}

func (h *AcademicHandler) GetLevel(c *gin.Context) {
	level, err := h.repo.GetLevelByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	respondCached(c, h.store, level.ToLevelResponse())
}

func (h *AcademicHandler) ListLevels(c *gin.Context) {
	filter := parseListFilter(c)

	levels, total, err := h.repo.ListLevels(filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.LevelListResponse{
		Levels:     make([]model.LevelResponse, 0, len(levels)),
		Pagination: model.NewPagination(filter, total),
	}
	for i := range levels {
		response.Levels = append(response.Levels, *levels[i].ToLevelResponse())
	}

	respondCached(c, h.store, response)
}

func (h *AcademicHandler) UpdateLevel(c *gin.Context) {
	var req model.UpdateLevelAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	level, err := h.repo.UpdateLevel(c.Param("id"), model.CreateLevelRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.Key("level", level.ID),
		cache.ListPattern("levels"),
	) {
		return
	}

	c.JSON(http.StatusOK, level.ToLevelResponse())
}

func (h *AcademicHandler) DeleteLevel(c *gin.Context) {
	levelID := c.Param("id")
	if err := h.repo.DeleteLevel(levelID); err != nil {
		handleError(c, err)
		return
	}

	// Classes under the level embed it, so their keys go too
	if !invalidateOrAbort(c, h.store,
		cache.Key("level", levelID),
		cache.ListPattern("levels"),
		cache.ListPattern("classes"),
	) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Level deleted successfully"})
}

// ===============================
// Classes
// ===============================

func (h *AcademicHandler) CreateClass(c *gin.Context) {
	var req model.CreateClassAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	class, err := h.repo.CreateClass(model.CreateClassRequest{
		LevelID:   req.LevelID,
		Name:      req.Name,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	// The owning level's detail payload embeds its classes
	if !invalidateOrAbort(c, h.store,
		cache.ListPattern("classes"),
		cache.Key("level", class.LevelID),
	) {
		return
	}

	c.JSON(http.StatusCreated, class.ToClassResponse())
}

func (h *AcademicHandler) GetClass(c *gin.Context) {
	class, err := h.repo.GetClassByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	respondCached(c, h.store, class.ToClassResponse())
}

func (h *AcademicHandler) ListClasses(c *gin.Context) {
	filter := parseListFilter(c)

	classes, total, err := h.repo.ListClasses(c.Query("level_id"), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.ClassListResponse{
		Classes:    make([]model.ClassResponse, 0, len(classes)),
		Pagination: model.NewPagination(filter, total),
	}
	for i := range classes {
		response.Classes = append(response.Classes, *classes[i].ToClassResponse())
	}

	respondCached(c, h.store, response)
}

func (h *AcademicHandler) UpdateClass(c *gin.Context) {
	var req model.UpdateClassAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	class, err := h.repo.UpdateClass(c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.Key("class", class.ID),
		cache.ListPattern("classes"),
		cache.Key("level", class.LevelID),
	) {
		return
	}

	c.JSON(http.StatusOK, class.ToClassResponse())
}

func (h *AcademicHandler) DeleteClass(c *gin.Context) {
	class, err := h.repo.GetClassByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.repo.DeleteClass(class.ID); err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.Key("class", class.ID),
		cache.ListPattern("classes"),
		cache.Key("level", class.LevelID),
	) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Class deleted successfully"})
}

// ===============================
// Courses
// ===============================

// CreateCourses accepts a batch of courses for a class; the insert is
// all-or-nothing.
func (h *AcademicHandler) CreateCourses(c *gin.Context) {
	var req model.CreateCoursesAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	reqs := make([]model.CreateCourseRequest, 0, len(req.Courses))
	for _, course := range req.Courses {
		reqs = append(reqs, model.CreateCourseRequest{
			ClassID:   req.ClassID,
			Name:      course.Name,
			Code:      course.Code,
			TeacherID: course.TeacherID,
		})
	}

	courses, err := h.repo.CreateCourses(reqs)
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store, cache.ListPattern("courses")) {
		return
	}

	responses := make([]model.CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, *courses[i].ToCourseResponse())
	}
	c.JSON(http.StatusCreated, gin.H{"courses": responses})
}

func (h *AcademicHandler) GetCourse(c *gin.Context) {
	course, err := h.repo.GetCourseByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	respondCached(c, h.store, course.ToCourseResponse())
}

func (h *AcademicHandler) ListCourses(c *gin.Context) {
	filter := parseListFilter(c)

	courses, total, err := h.repo.ListCourses(c.Query("class_id"), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.CourseListResponse{
		Courses:    make([]model.CourseResponse, 0, len(courses)),
		Pagination: model.NewPagination(filter, total),
	}
	for i := range courses {
		response.Courses = append(response.Courses, *courses[i].ToCourseResponse())
	}

	respondCached(c, h.store, response)
}

func (h *AcademicHandler) UpdateCourse(c *gin.Context) {
	var req model.UpdateCourseAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	course, err := h.repo.UpdateCourse(c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.Key("course", course.ID),
		cache.ListPattern("courses"),
	) {
		return
	}

	c.JSON(http.StatusOK, course.ToCourseResponse())
}

func (h *AcademicHandler) DeleteCourse(c *gin.Context) {
	courseID := c.Param("id")
	if err := h.repo.DeleteCourse(courseID); err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.Key("course", courseID),
		cache.ListPattern("courses"),
	) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}
