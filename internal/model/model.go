// Package model defines the core domain types for the pet-sitting backend.
package model

// CalendarEvent is the slice of an upstream calendar event this service
// cares about. Timed events carry StartTime (an RFC 3339 timestamp),
// all-day events carry StartDate (YYYY-MM-DD). An event may carry neither,
// in which case it is skipped during day grouping.
type CalendarEvent struct {
	Summary   string
	StartTime string
	StartDate string
}

// ReviewRecord is a row of the reviews table as stored upstream.
// The ID is opaque and owned by the store; this service only reads
// and appends, never mutates.
type ReviewRecord struct {
	ID     string
	Name   string
	Review string
}

// Review is the client-facing projection of a ReviewRecord.
type Review struct {
	Name   string `json:"name"`
	Review string `json:"review"`
}

// AccessCode is a row of the codes table: a single-use shared secret
// that gates review submission. The row is deleted when the code is used.
type AccessCode struct {
	ID   string
	Code string
}

// SubmitReviewRequest is the payload for submitting a new review.
type SubmitReviewRequest struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Review string `json:"review"`
}

// SubmitReviewResponse reports the outcome of a submission attempt.
type SubmitReviewResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
