package repository

import (
	"github.com/essomba/schoolhub/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(req model.CreateUserRequest) (*model.User, error)
	GetUserByID(userID string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	ListUsers(role string, filter model.ListFilter) ([]model.User, int, error)
	UpdateUserPhoto(userID, photoURL string) error
	ValidatePassword(user *model.User, password string) bool

	// GetDB returns the database instance for health checks
	GetDB() *gorm.DB
}

type AcademicRepository interface {
	// Level operations
	CreateLevel(req model.CreateLevelRequest) (*model.Level, error)
	GetLevelByID(levelID string) (*model.Level, error)
	ListLevels(filter model.ListFilter) ([]model.Level, int, error)
	UpdateLevel(levelID string, req model.CreateLevelRequest) (*model.Level, error)
	DeleteLevel(levelID string) error

	// Class operations
	CreateClass(req model.CreateClassRequest) (*model.Class, error)
	GetClassByID(classID string) (*model.Class, error)
	ListClasses(levelID string, filter model.ListFilter) ([]model.Class, int, error)
	UpdateClass(classID string, req model.UpdateClassAPIRequest) (*model.Class, error)
	DeleteClass(classID string) error

	// Course operations; creation is batched in one transaction
	CreateCourses(reqs []model.CreateCourseRequest) ([]model.Course, error)
	GetCourseByID(courseID string) (*model.Course, error)
	ListCourses(classID string, filter model.ListFilter) ([]model.Course, int, error)
	UpdateCourse(courseID string, req model.UpdateCourseAPIRequest) (*model.Course, error)
	DeleteCourse(courseID string) error
}

type CalendarRepository interface {
	// Calendar operations
	CreateCalendar(req model.CreateCalendarRequest) (*model.AcademicCalendar, error)
	GetCalendarByID(calendarID string) (*model.AcademicCalendar, error)
	ListCalendars(filter model.ListFilter) ([]model.AcademicCalendar, int, error)
	DeleteCalendar(calendarID string) error

	// Term operations
	CreateTerm(req model.CreateTermRequest) (*model.Term, error)
	GetTermByID(termID string) (*model.Term, error)
	ListTerms(calendarID string, filter model.ListFilter) ([]model.Term, int, error)
	DeleteTerm(termID string) error

	// Event operations
	CreateEvent(req model.CreateEventRequest) (*model.SchoolEvent, error)
	GetEventByID(eventID string) (*model.SchoolEvent, error)
	ListEvents(calendarID string, filter model.ListFilter) ([]model.SchoolEvent, int, error)
	UpdateEvent(eventID string, req model.UpdateEventAPIRequest) (*model.SchoolEvent, error)
	DeleteEvent(eventID string) error

	// Holiday operations
	CreateHoliday(req model.CreateHolidayRequest) (*model.Holiday, error)
	GetHolidayByID(holidayID string) (*model.Holiday, error)
	ListHolidays(calendarID string, filter model.ListFilter) ([]model.Holiday, int, error)
	DeleteHoliday(holidayID string) error
}

type StudentRepository interface {
	// Admission operations
	CreateAdmission(req model.CreateAdmissionRequest) (*model.Admission, error)
	GetAdmissionByID(admissionID string) (*model.Admission, error)
	ListAdmissions(classID string, filter model.ListFilter) ([]model.Admission, int, error)
	UpdateAdmission(admissionID string, req model.UpdateAdmissionAPIRequest) (*model.Admission, error)

	// Former school operations
	CreateFormerSchool(req model.CreateFormerSchoolRequest) (*model.FormerSchool, error)
	ListFormerSchools(studentID string, filter model.ListFilter) ([]model.FormerSchool, int, error)
	DeleteFormerSchool(formerSchoolID string) error

	// Behavior report operations
	CreateBehaviorReport(req model.CreateBehaviorReportRequest) (*model.BehaviorReport, error)
	ListBehaviorReports(studentID string, filter model.ListFilter) ([]model.BehaviorReport, int, error)

	// Disciplinary action operations
	CreateDisciplinaryAction(req model.CreateDisciplinaryActionRequest) (*model.DisciplinaryAction, error)
	ListDisciplinaryActions(studentID string, filter model.ListFilter) ([]model.DisciplinaryAction, int, error)

	// Extracurricular operations
	CreateExtracurricular(req model.CreateExtracurricularRequest) (*model.Extracurricular, error)
	ListExtracurriculars(studentID string, filter model.ListFilter) ([]model.Extracurricular, int, error)
	DeleteExtracurricular(extracurricularID string) error
}

type NotificationRepository interface {
	CreateNotification(req model.CreateNotificationRequest) (*model.Notification, error)
	GetNotificationByID(notificationID string) (*model.Notification, error)
	ListNotifications(audienceRole string, filter model.ListFilter) ([]model.Notification, int, error)
	DeleteNotification(notificationID string) error
}

type MomoRepository interface {
	// API user: the application's provider identity, created once
	GetAPIUser() (*model.MomoAPIUser, error)
	SaveAPIUser(referenceID, apiKey string) (*model.MomoAPIUser, error)

	// Transactions: created PENDING, mutated exactly once by the callback
	CreateTransaction(txn *model.MomoTransaction) error
	GetTransactionByExternalID(externalID string) (*model.MomoTransaction, error)
	UpdateTransactionStatus(externalID, status, financialTransactionID, reason string) (*model.MomoTransaction, error)
	ListTransactions(filter model.ListFilter) ([]model.MomoTransaction, int, error)
}
