package main

import (
	"github.com/essomba/schoolhub/cache"
	"github.com/essomba/schoolhub/model"
	"github.com/essomba/schoolhub/momo"
	"github.com/essomba/schoolhub/notifier"
	"github.com/essomba/schoolhub/repository"
	"github.com/essomba/schoolhub/storage"
	"github.com/gin-gonic/gin"
)

// Dependencies carries every explicitly constructed collaborator into the
// router. Nothing here is a package-level singleton; main owns the
// lifecycle.
type Dependencies struct {
	Store         cache.Store
	Users         repository.UserRepository
	Academic      repository.AcademicRepository
	Calendar      repository.CalendarRepository
	Students      repository.StudentRepository
	Notifications repository.NotificationRepository
	Momo          *momo.Service
	Publisher     notifier.NotificationPublisher
	Uploader      storage.Uploader
	JWT           *JWTService
}

func SetupRouter(deps Dependencies) *gin.Engine {
	authHandler := NewAuthHandler(deps.Users, deps.JWT, deps.Store)
	academicHandler := NewAcademicHandler(deps.Academic, deps.Store)
	calendarHandler := NewCalendarHandler(deps.Calendar, deps.Store)
	studentHandler := NewStudentHandler(deps.Students, deps.Store)
	notificationHandler := NewNotificationHandler(deps.Notifications, deps.Store, deps.Publisher)
	momoHandler := NewMomoHandler(deps.Momo)
	uploadHandler := NewUploadHandler(deps.Uploader, deps.Users, deps.Store)
	healthHandler := NewHealthHandler(deps.Users, deps.Store)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware())
	r.Use(LoggingMiddleware())
	r.MaxMultipartMemory = maxUploadSize

	r.GET("/health", healthHandler.HealthCheck)

	api := r.Group("/api/v1")

	// Public endpoints
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	// Invoked by the payment provider, not by users
	api.PUT("/payments/momo/callback", momoHandler.Callback)

	// Everything below requires a bearer token
	protected := api.Group("")
	protected.Use(AuthMiddleware(deps.JWT))

	allRoles := []string{model.RoleAdmin, model.RoleTeacher, model.RoleStudent, model.RoleParent, model.RoleStaff}
	staffRoles := []string{model.RoleAdmin, model.RoleStaff}
	teachingRoles := []string{model.RoleAdmin, model.RoleStaff, model.RoleTeacher}

	// Users
	users := protected.Group("/users")
	users.GET("", RequireRoles(teachingRoles...), CacheRead(deps.Store, listKeyFn("users")), authHandler.ListUsers)
	users.GET("/:id", RequireRoles(allRoles...), CacheRead(deps.Store, entityKeyFn("user")), authHandler.GetUser)
	users.POST("/:id/photo", RequireRoles(staffRoles...), uploadHandler.UploadUserPhoto)

	// Uploads
	uploads := protected.Group("/uploads")
	uploads.Use(RequireRoles(staffRoles...))
	uploads.POST("", uploadHandler.Upload)
	uploads.DELETE("/:publicId", uploadHandler.Delete)

	// Levels
	levels := protected.Group("/levels")
	levels.GET("", RequireRoles(allRoles...), CacheRead(deps.Store, listKeyFn("levels")), academicHandler.ListLevels)
	levels.GET("/:id", RequireRoles(allRoles...), CacheRead(deps.Store, entityKeyFn("level")), academicHandler.GetLevel)
	levels.POST("", RequireRoles(model.RoleAdmin), academicHandler.CreateLevel)
	levels.PUT("/:id", RequireRoles(model.RoleAdmin), academicHandler.UpdateLevel)
	levels.DELETE("/:id", RequireRoles(model.RoleAdmin), academicHandler.DeleteLevel)

	// Classes
	classes := protected.Group("/classes")
	classes.GET("", RequireRoles(allRoles...), CacheRead(deps.Store, listKeyFn("classes")), academicHandler.ListClasses)
	classes.GET("/:id", RequireRoles(allRoles...), CacheRead(deps.Store, entityKeyFn("class")), academicHandler.GetClass)
	classes.POST("", RequireRoles(model.RoleAdmin), academicHandler.CreateClass)
	classes.PUT("/:id", RequireRoles(model.RoleAdmin), academicHandler.UpdateClass)
	classes.DELETE("/:id", RequireRoles(model.RoleAdmin), academicHandler.DeleteClass)

	// Courses
	courses := protected.Group("/courses")
	courses.GET("", RequireRoles(allRoles...), CacheRead(deps.Store, listKeyFn("courses")), academicHandler.ListCourses)
	courses.GET("/:id", RequireRoles(allRoles...), CacheRead(deps.Store, entityKeyFn("course")), academicHandler.GetCourse)
	courses.POST("", RequireRoles(model.RoleAdmin), academicHandler.CreateCourses)
	courses.PUT("/:id", RequireRoles(model.RoleAdmin), academicHandler.UpdateCourse)
	courses.DELETE("/:id", RequireRoles(model.RoleAdmin), academicHandler.DeleteCourse)

	// Academic calendars
	calendars := protected.Group("/calendars")
	calendars.GET("", RequireRoles(allRoles...), CacheRead(deps.Store, listKeyFn("calendars")), calendarHandler.ListCalendars)
	calendars.GET("/:id", RequireRoles(allRoles...), CacheRead(deps.Store, entityKeyFn("calendar")), calendarHandler.GetCalendar)
	calendars.POST("", RequireRoles(model.RoleAdmin), calendarHandler.CreateCalendar)
	calendars.DELETE("/:id", RequireRoles(model.RoleAdmin), calendarHandler.DeleteCalendar)

	// Terms
	terms := protected.Group("/terms")
	terms.GET("", RequireRoles(allRoles...), CacheRead(deps.Store, listKeyFn("terms")), calendarHandler.ListTerms)
	terms.GET("/:id", RequireRoles(allRoles...), CacheRead(deps.Store, entityKeyFn("term")), calendarHandler.GetTerm)
	terms.POST("", RequireRoles(model.RoleAdmin), calendarHandler.CreateTerm)
	terms.DELETE("/:id", RequireRoles(model.RoleAdmin), calendarHandler.DeleteTerm)

	// Events
	events := protected.Group("/events")
	events.GET("", RequireRoles(allRoles...), CacheRead(deps.Store, listKeyFn("events")), calendarHandler.ListEvents)
	events.GET("/:id", RequireRoles(allRoles...), CacheRead(deps.Store, entityKeyFn("event")), calendarHandler.GetEvent)
	events.POST("", RequireRoles(staffRoles...), calendarHandler.CreateEvent)
	events.PUT("/:id", RequireRoles(staffRoles...), calendarHandler.UpdateEvent)
	events.DELETE("/:id", RequireRoles(staffRoles...), calendarHandler.DeleteEvent)

	// Holidays
	holidays := protected.Group("/holidays")
	holidays.GET("", RequireRoles(allRoles...), CacheRead(deps.Store, listKeyFn("holidays")), calendarHandler.ListHolidays)
	holidays.GET("/:id", RequireRoles(allRoles...), CacheRead(deps.Store, entityKeyFn("holiday")), calendarHandler.GetHoliday)
	holidays.POST("", RequireRoles(model.RoleAdmin), calendarHandler.CreateHoliday)
	holidays.DELETE("/:id", RequireRoles(model.RoleAdmin), calendarHandler.DeleteHoliday)

	// Admissions
	admissions := protected.Group("/admissions")
	admissions.GET("", RequireRoles(teachingRoles...), CacheRead(deps.Store, listKeyFn("admissions")), studentHandler.ListAdmissions)
	admissions.GET("/:id", RequireRoles(teachingRoles...), CacheRead(deps.Store, entityKeyFn("admission")), studentHandler.GetAdmission)
	admissions.POST("", RequireRoles(staffRoles...), studentHandler.CreateAdmission)
	admissions.PUT("/:id", RequireRoles(staffRoles...), studentHandler.UpdateAdmission)

	// Student lifecycle records, scoped under the student
	students := protected.Group("/students/:id")
	students.GET("/former-schools", RequireRoles(teachingRoles...), CacheRead(deps.Store, childListKeyFn("student", "former-schools")), studentHandler.ListFormerSchools)
	students.POST("/former-schools", RequireRoles(staffRoles...), studentHandler.CreateFormerSchool)
	students.DELETE("/former-schools/:recordId", RequireRoles(staffRoles...), studentHandler.DeleteFormerSchool)
	students.GET("/behavior-reports", RequireRoles(teachingRoles...), CacheRead(deps.Store, childListKeyFn("student", "behavior-reports")), studentHandler.ListBehaviorReports)
	students.POST("/behavior-reports", RequireRoles(teachingRoles...), studentHandler.CreateBehaviorReport)
	students.GET("/disciplinary-actions", RequireRoles(teachingRoles...), CacheRead(deps.Store, childListKeyFn("student", "disciplinary-actions")), studentHandler.ListDisciplinaryActions)
	students.POST("/disciplinary-actions", RequireRoles(staffRoles...), studentHandler.CreateDisciplinaryAction)
	students.GET("/extracurriculars", RequireRoles(teachingRoles...), CacheRead(deps.Store, childListKeyFn("student", "extracurriculars")), studentHandler.ListExtracurriculars)
	students.POST("/extracurriculars", RequireRoles(teachingRoles...), studentHandler.CreateExtracurricular)
	students.DELETE("/extracurriculars/:recordId", RequireRoles(staffRoles...), studentHandler.DeleteExtracurricular)

	// Notifications; the list is scoped to the caller's role, so the cache
	// key carries the role to keep audiences apart
	notifications := protected.Group("/notifications")
	notifications.GET("", RequireRoles(allRoles...), CacheRead(deps.Store, func(c *gin.Context) string {
		return cache.ListKey("notifications:"+c.GetString("user_role"), c.Request.URL.Query())
	}), notificationHandler.ListNotifications)
	notifications.GET("/:id", RequireRoles(allRoles...), CacheRead(deps.Store, entityKeyFn("notification")), notificationHandler.GetNotification)
	notifications.POST("", RequireRoles(staffRoles...), notificationHandler.CreateNotification)
	notifications.DELETE("/:id", RequireRoles(model.RoleAdmin), notificationHandler.DeleteNotification)

	// Payments
	payments := protected.Group("/payments/momo")
	payments.POST("", RequireRoles(allRoles...), momoHandler.InitiatePayment)
	payments.GET("/transactions", RequireRoles(model.RoleAdmin), momoHandler.ListTransactions)

	return r
}
