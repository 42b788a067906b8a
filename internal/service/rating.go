package service

import (
	"context"

	"github.com/grimoire/catalog-service/internal/errs"
	"github.com/grimoire/catalog-service/internal/model"
)

const (
	minGrade = 0
	maxGrade = 5
)

// SubmitRating folds one rater's grade into the book. Checks run in a fixed
// order: grade range, book existence, then one-rating-per-rater. The append
// and the average recompute happen atomically in the repository, so a failed
// submission leaves the book untouched.
func (s *Service) SubmitRating(ctx context.Context, rater, bookUid string, grade int) (model.Book, error) {
	if grade < minGrade || grade > maxGrade {
		return model.Book{}, errs.ErrInvalidGrade
	}
	return s.repo.SubmitRating(ctx, bookUid, rater, grade)
}
