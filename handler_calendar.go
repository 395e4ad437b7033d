package main

import (
	"net/http"

	"github.com/essomba/schoolhub/cache"
	"github.com/essomba/schoolhub/model"
	"github.com/essomba/schoolhub/repository"
	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	repo  repository.CalendarRepository
	store cache.Store
}

func NewCalendarHandler(repo repository.CalendarRepository, store cache.Store) *CalendarHandler {
	return &CalendarHandler{repo: repo, store: store}
}

// ===============================
// Academic calendars
// ===============================

func (h *CalendarHandler) CreateCalendar(c *gin.Context) {
	var req model.CreateCalendarAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !req.EndDate.After(req.StartDate) {
		badRequest(c, "end_date must be after start_date")
		return
	}

	calendar, err := h.repo.CreateCalendar(model.CreateCalendarRequest{
		Year:      req.Year,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store, cache.ListPattern("calendars")) {
		return
	}

	c.JSON(http.StatusCreated, calendar.ToCalendarResponse())
}

func (h *CalendarHandler) GetCalendar(c *gin.Context) {
	calendar, err := h.repo.GetCalendarByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	respondCached(c, h.store, calendar.ToCalendarResponse())
}

func (h *CalendarHandler) ListCalendars(c *gin.Context) {
	filter := parseListFilter(c)

	calendars, total, err := h.repo.ListCalendars(filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.CalendarListResponse{
		Calendars:  make([]model.CalendarResponse, 0, len(calendars)),
		Pagination: model.NewPagination(filter, total),
	}
	for i := range calendars {
		response.Calendars = append(response.Calendars, *calendars[i].ToCalendarResponse())
	}

	respondCached(c, h.store, response)
}

func (h *CalendarHandler) DeleteCalendar(c *gin.Context) {
	calendarID := c.Param("id")
	if err := h.repo.DeleteCalendar(calendarID); err != nil {
		handleError(c, err)
		return
	}

	// Terms, events and holidays scope under the calendar; their caches go
	// with it via explicit patterns
	if !invalidateOrAbort(c, h.store,
		cache.Key("calendar", calendarID),
		cache.ListPattern("calendars"),
		cache.ListPattern("terms"),
		cache.ListPattern("events"),
		cache.ListPattern("holidays"),
	) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Calendar deleted successfully"})
}

// ===============================
// Terms
// ===============================

func (h *CalendarHandler) CreateTerm(c *gin.Context) {
	var req model.CreateTermAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	term, err := h.repo.CreateTerm(model.CreateTermRequest{
		CalendarID: req.CalendarID,
		Name:       req.Name,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.ListPattern("terms"),
		cache.Key("calendar", term.CalendarID),
	) {
		return
	}

	c.JSON(http.StatusCreated, term.ToTermResponse())
}

func (h *CalendarHandler) GetTerm(c *gin.Context) {
	term, err := h.repo.GetTermByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	respondCached(c, h.store, term.ToTermResponse())
}

func (h *CalendarHandler) ListTerms(c *gin.Context) {
	filter := parseListFilter(c)

	terms, total, err := h.repo.ListTerms(c.Query("calendar_id"), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.TermListResponse{
		Terms:      make([]model.TermResponse, 0, len(terms)),
		Pagination: model.NewPagination(filter, total),
	}
	for i := range terms {
		response.Terms = append(response.Terms, *terms[i].ToTermResponse())
	}

	respondCached(c, h.store, response)
}

func (h *CalendarHandler) DeleteTerm(c *gin.Context) {
	term, err := h.repo.GetTermByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.repo.DeleteTerm(term.ID); err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.Key("term", term.ID),
		cache.ListPattern("terms"),
		cache.Key("calendar", term.CalendarID),
	) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Term deleted successfully"})
}

// ===============================
// Events
// ===============================

func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	var req model.CreateEventAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	event, err := h.repo.CreateEvent(model.CreateEventRequest{
		CalendarID:  req.CalendarID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.ListPattern("events"),
		cache.Key("calendar", event.CalendarID),
	) {
		return
	}

	c.JSON(http.StatusCreated, event.ToEventResponse())
}

func (h *CalendarHandler) GetEvent(c *gin.Context) {
	event, err := h.repo.GetEventByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	respondCached(c, h.store, event.ToEventResponse())
}

func (h *CalendarHandler) ListEvents(c *gin.Context) {
	filter := parseListFilter(c)

	events, total, err := h.repo.ListEvents(c.Query("calendar_id"), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.EventListResponse{
		Events:     make([]model.EventResponse, 0, len(events)),
		Pagination: model.NewPagination(filter, total),
	}
	for i := range events {
		response.Events = append(response.Events, *events[i].ToEventResponse())
	}

	respondCached(c, h.store, response)
}

func (h *CalendarHandler) UpdateEvent(c *gin.Context) {
	var req model.UpdateEventAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	event, err := h.repo.UpdateEvent(c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}

	// The parent calendar's detail payload embeds its events
	if !invalidateOrAbort(c, h.store,
		cache.Key("event", event.ID),
		cache.ListPattern("events"),
		cache.Key("calendar", event.CalendarID),
	) {
		return
	}

	c.JSON(http.StatusOK, event.ToEventResponse())
}

func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	event, err := h.repo.GetEventByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.repo.DeleteEvent(event.ID); err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.Key("event", event.ID),
		cache.ListPattern("events"),
		cache.Key("calendar", event.CalendarID),
	) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// ===============================
// Holidays
// ===============================

func (h *CalendarHandler) CreateHoliday(c *gin.Context) {
	var req model.CreateHolidayAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	holiday, err := h.repo.CreateHoliday(model.CreateHolidayRequest{
		CalendarID: req.CalendarID,
		Name:       req.Name,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.ListPattern("holidays"),
		cache.Key("calendar", holiday.CalendarID),
	) {
		return
	}

	c.JSON(http.StatusCreated, holiday.ToHolidayResponse())
}

func (h *CalendarHandler) GetHoliday(c *gin.Context) {
	holiday, err := h.repo.GetHolidayByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	respondCached(c, h.store, holiday.ToHolidayResponse())
}

func (h *CalendarHandler) ListHolidays(c *gin.Context) {
	filter := parseListFilter(c)

	holidays, total, err := h.repo.ListHolidays(c.Query("calendar_id"), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response := model.HolidayListResponse{
		Holidays:   make([]model.HolidayResponse, 0, len(holidays)),
		Pagination: model.NewPagination(filter, total),
	}
	for i := range holidays {
		response.Holidays = append(response.Holidays, *holidays[i].ToHolidayResponse())
	}

	respondCached(c, h.store, response)
}

func (h *CalendarHandler) DeleteHoliday(c *gin.Context) {
	holiday, err := h.repo.GetHolidayByID(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.repo.DeleteHoliday(holiday.ID); err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.Key("holiday", holiday.ID),
		cache.ListPattern("holidays"),
		cache.Key("calendar", holiday.CalendarID),
	) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Holiday deleted successfully"})
}
