package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/elizabeth-johnson8888/petsitting-backend/internal/model"
	"github.com/elizabeth-johnson8888/petsitting-backend/internal/repository"
)

// ReviewStore reads and appends rows of the reviews table.
type ReviewStore interface {
	List(ctx context.Context) ([]model.ReviewRecord, error)
	Create(ctx context.Context, name, review string) error
}

// CodeStore reads and consumes rows of the access-codes table.
type CodeStore interface {
	List(ctx context.Context) ([]model.AccessCode, error)
	Delete(ctx context.Context, id string) error
}

// ReviewService lists published reviews and accepts new submissions gated
// by a one-time access code.
type ReviewService struct {
	reviews ReviewStore
	codes   CodeStore
}

// NewReviewService constructs a ReviewService with its dependencies.
func NewReviewService(reviews ReviewStore, codes CodeStore) *ReviewService {
	return &ReviewService{reviews: reviews, codes: codes}
}

// ListReviews returns all reviews projected to their client-facing shape,
// in store order.
func (s *ReviewService) ListReviews(ctx context.Context) ([]model.Review, error) {
	records, err := s.reviews.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	reviews := make([]model.Review, 0, len(records))
	for _, rec := range records {
		reviews = append(reviews, model.Review{Name: rec.Name, Review: rec.Review})
	}
	return reviews, nil
}

// SubmitReview validates the supplied access code against the codes table,
// consumes it, and appends the review. The steps run strictly in that
// order; a failure aborts the remaining steps.
//
// Codes match after trimming surrounding whitespace on both sides of the
// comparison; matching is otherwise exact and case-sensitive. The first
// matching row wins when duplicates exist.
//
// The delete precedes the append so the code cannot be reused once the
// submission is underway. If the append then fails, the code stays
// consumed with no review recorded; there is no compensating transaction.
func (s *ReviewService) SubmitReview(ctx context.Context, req model.SubmitReviewRequest) error {
	supplied := strings.TrimSpace(req.Code)

	codes, err := s.codes.List(ctx)
	if err != nil {
		return fmt.Errorf("fetch access codes: %w", err)
	}

	var matched *model.AccessCode
	for i := range codes {
		if strings.TrimSpace(codes[i].Code) == supplied {
			matched = &codes[i]
			break
		}
	}
	if matched == nil {
		return repository.ErrInvalidCode
	}

	if err := s.codes.Delete(ctx, matched.ID); err != nil {
		return fmt.Errorf("consume access code: %w", err)
	}

	if err := s.reviews.Create(ctx, req.Name, req.Review); err != nil {
		return fmt.Errorf("append review: %w", err)
	}
	return nil
}
