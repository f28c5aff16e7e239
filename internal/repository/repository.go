// Package repository implements the upstream data stores for the
// pet-sitting backend. Both stores are Airtable tables; this service owns
// no persistence of its own.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/elizabeth-johnson8888/petsitting-backend/internal/airtable"
	"github.com/elizabeth-johnson8888/petsitting-backend/internal/model"
)

// ErrInvalidCode is returned when a submitted access code matches no row
// of the codes table. Consumed codes fall under this as well: their rows
// are gone.
var ErrInvalidCode = errors.New("invalid access code")

// Field names of the upstream tables.
const (
	fieldName   = "Name"
	fieldReview = "Review"
	fieldCode   = "Code"
)

// ReviewRepository reads and appends rows of the reviews table.
type ReviewRepository struct {
	table *airtable.Client
}

// NewReviewRepository constructs a ReviewRepository.
func NewReviewRepository(table *airtable.Client) *ReviewRepository {
	return &ReviewRepository{table: table}
}

// List returns all reviews in store order.
func (r *ReviewRepository) List(ctx context.Context) ([]model.ReviewRecord, error) {
	records, err := r.table.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	reviews := make([]model.ReviewRecord, 0, len(records))
	for _, rec := range records {
		reviews = append(reviews, model.ReviewRecord{
			ID:     rec.ID,
			Name:   rec.StringField(fieldName),
			Review: rec.StringField(fieldReview),
		})
	}
	return reviews, nil
}

// Create appends a new review row. Name and review text are stored as
// supplied.
func (r *ReviewRepository) Create(ctx context.Context, name, review string) error {
	_, err := r.table.CreateRecord(ctx, map[string]any{
		fieldName:   name,
		fieldReview: review,
	})
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// CodeRepository reads and consumes rows of the access-codes table.
type CodeRepository struct {
	table *airtable.Client
}

// NewCodeRepository constructs a CodeRepository.
func NewCodeRepository(table *airtable.Client) *CodeRepository {
	return &CodeRepository{table: table}
}

// List returns all access codes in store order.
func (r *CodeRepository) List(ctx context.Context) ([]model.AccessCode, error) {
	records, err := r.table.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list access codes: %w", err)
	}

	codes := make([]model.AccessCode, 0, len(records))
	for _, rec := range records {
		codes = append(codes, model.AccessCode{
			ID:   rec.ID,
			Code: rec.StringField(fieldCode),
		})
	}
	return codes, nil
}

// Delete removes the code row with the given id, consuming the code.
func (r *CodeRepository) Delete(ctx context.Context, id string) error {
	if err := r.table.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete access code: %w", err)
	}
	return nil
}
