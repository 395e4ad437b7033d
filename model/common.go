package model

import "time"

// ===============================
// Shared API types
// ===============================

// ErrorResponse is the JSON envelope for every error.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// Pagination describes the slice of a collection returned by a list endpoint.
type Pagination struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"has_more"`
}

// ListFilter carries the common list query parameters (page, limit, fetchAll,
// search) down to the repository layer.
type ListFilter struct {
	Page     int
	Limit    int
	FetchAll bool
	Search   string
}

// Offset converts page/limit into a row offset.
func (f ListFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// NewPagination builds the pagination envelope for a filter and total count.
func NewPagination(f ListFilter, total int) Pagination {
	if f.FetchAll {
		return Pagination{Total: total, Page: 1, Limit: total, HasMore: false}
	}
	return Pagination{
		Total:   total,
		Page:    f.Page,
		Limit:   f.Limit,
		HasMore: f.Offset()+f.Limit < total,
	}
}
