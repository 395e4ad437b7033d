package postgres

import (
	"github.com/essomba/schoolhub/apperror"
	"github.com/essomba/schoolhub/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresCalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *PostgresCalendarRepository {
	return &PostgresCalendarRepository{db: db}
}

// Calendar operations

func (r *PostgresCalendarRepository) CreateCalendar(req model.CreateCalendarRequest) (*model.AcademicCalendar, error) {
	calendar := model.AcademicCalendar{
		ID:        uuid.New().String(),
		Year:      req.Year,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := r.db.Create(&calendar).Error; err != nil {
		return nil, apperror.FromDB(err, "calendar")
	}
	return &calendar, nil
}

func (r *PostgresCalendarRepository) GetCalendarByID(calendarID string) (*model.AcademicCalendar, error) {
	var calendar model.AcademicCalendar
	err := r.db.Preload("Terms").Preload("Events").Preload("Holidays").
		Where("id = ?", calendarID).First(&calendar).Error
	if err != nil {
		return nil, apperror.FromDB(err, "calendar")
	}
	return &calendar, nil
}

func (r *PostgresCalendarRepository) ListCalendars(filter model.ListFilter) ([]model.AcademicCalendar, int, error) {
	var calendars []model.AcademicCalendar
	var total int64

	query := r.db.Model(&model.AcademicCalendar{})
	if filter.Search != "" {
		query = query.Where("year ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "calendar")
	}
	if err := applyPagination(query, filter).Order("start_date DESC").Find(&calendars).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "calendar")
	}
	return calendars, int(total), nil
}

func (r *PostgresCalendarRepository) DeleteCalendar(calendarID string) error {
	result := r.db.Where("id = ?", calendarID).Delete(&model.AcademicCalendar{})
	if result.Error != nil {
		return apperror.FromDB(result.Error, "calendar")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("calendar not found")
	}
	return nil
}

// Term operations

func (r *PostgresCalendarRepository) CreateTerm(req model.CreateTermRequest) (*model.Term, error) {
	if err := r.requireCalendar(req.CalendarID); err != nil {
		return nil, err
	}

	term := model.Term{
		ID:         uuid.New().String(),
		CalendarID: req.CalendarID,
		Name:       req.Name,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if err := r.db.Create(&term).Error; err != nil {
		return nil, apperror.FromDB(err, "term")
	}
	return &term, nil
}

func (r *PostgresCalendarRepository) GetTermByID(termID string) (*model.Term, error) {
	var term model.Term
	if err := r.db.Where("id = ?", termID).First(&term).Error; err != nil {
		return nil, apperror.FromDB(err, "term")
	}
	return &term, nil
}

func (r *PostgresCalendarRepository) ListTerms(calendarID string, filter model.ListFilter) ([]model.Term, int, error) {
	var terms []model.Term
	var total int64

	query := r.db.Model(&model.Term{})
	if calendarID != "" {
		query = query.Where("calendar_id = ?", calendarID)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "term")
	}
	if err := applyPagination(query, filter).Order("start_date ASC").Find(&terms).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "term")
	}
	return terms, int(total), nil
}

func (r *PostgresCalendarRepository) DeleteTerm(termID string) error {
	result := r.db.Where("id = ?", termID).Delete(&model.Term{})
	if result.Error != nil {
		return apperror.FromDB(result.Error, "term")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("term not found")
	}
	return nil
}

// Event operations

func (r *PostgresCalendarRepository) CreateEvent(req model.CreateEventRequest) (*model.SchoolEvent, error) {
	if err := r.requireCalendar(req.CalendarID); err != nil {
		return nil, err
	}

	event := model.SchoolEvent{
		ID:          uuid.New().String(),
		CalendarID:  req.CalendarID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := r.db.Create(&event).Error; err != nil {
		return nil, apperror.FromDB(err, "event")
	}
	return &event, nil
}

func (r *PostgresCalendarRepository) GetEventByID(eventID string) (*model.SchoolEvent, error) {
	var event model.SchoolEvent
	if err := r.db.Where("id = ?", eventID).First(&event).Error; err != nil {
		return nil, apperror.FromDB(err, "event")
	}
	return &event, nil
}

func (r *PostgresCalendarRepository) ListEvents(calendarID string, filter model.ListFilter) ([]model.SchoolEvent, int, error) {
	var events []model.SchoolEvent
	var total int64

	query := r.db.Model(&model.SchoolEvent{})
	if calendarID != "" {
		query = query.Where("calendar_id = ?", calendarID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR location ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "event")
	}
	if err := applyPagination(query, filter).Order("starts_at ASC").Find(&events).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "event")
	}
	return events, int(total), nil
}

func (r *PostgresCalendarRepository) UpdateEvent(eventID string, req model.UpdateEventAPIRequest) (*model.SchoolEvent, error) {
	var event model.SchoolEvent
	if err := r.db.Where("id = ?", eventID).First(&event).Error; err != nil {
		return nil, apperror.FromDB(err, "event")
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	if err := r.db.Save(&event).Error; err != nil {
		return nil, apperror.FromDB(err, "event")
	}
	return &event, nil
}

func (r *PostgresCalendarRepository) DeleteEvent(eventID string) error {
	result := r.db.Where("id = ?", eventID).Delete(&model.SchoolEvent{})
	if result.Error != nil {
		return apperror.FromDB(result.Error, "event")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("event not found")
	}
	return nil
}

// Holiday operations

func (r *PostgresCalendarRepository) CreateHoliday(req model.CreateHolidayRequest) (*model.Holiday, error) {
	if err := r.requireCalendar(req.CalendarID); err != nil {
		return nil, err
	}

	holiday := model.Holiday{
		ID:         uuid.New().String(),
		CalendarID: req.CalendarID,
		Name:       req.Name,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if err := r.db.Create(&holiday).Error; err != nil {
		return nil, apperror.FromDB(err, "holiday")
	}
	return &holiday, nil
}

func (r *PostgresCalendarRepository) GetHolidayByID(holidayID string) (*model.Holiday, error) {
	var holiday model.Holiday
	if err := r.db.Where("id = ?", holidayID).First(&holiday).Error; err != nil {
		return nil, apperror.FromDB(err, "holiday")
	}
	return &holiday, nil
}

func (r *PostgresCalendarRepository) ListHolidays(calendarID string, filter model.ListFilter) ([]model.Holiday, int, error) {
	var holidays []model.Holiday
	var total int64

	query := r.db.Model(&model.Holiday{})
	if calendarID != "" {
		query = query.Where("calendar_id = ?", calendarID)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "holiday")
	}
	if err := applyPagination(query, filter).Order("start_date ASC").Find(&holidays).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "holiday")
	}
	return holidays, int(total), nil
}

func (r *PostgresCalendarRepository) DeleteHoliday(holidayID string) error {
	result := r.db.Where("id = ?", holidayID).Delete(&model.Holiday{})
	if result.Error != nil {
		return apperror.FromDB(result.Error, "holiday")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("holiday not found")
	}
	return nil
}

func (r *PostgresCalendarRepository) requireCalendar(calendarID string) error {
	var count int64
	if err := r.db.Model(&model.AcademicCalendar{}).Where("id = ?", calendarID).Count(&count).Error; err != nil {
		return apperror.FromDB(err, "calendar")
	}
	if count == 0 {
		return apperror.NotFound("calendar not found")
	}
	return nil
}
