package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/grimoire/catalog-service/internal/errs"
	"github.com/grimoire/catalog-service/internal/model"
)

// SubmitRating appends the rater's grade to the book and rewrites the
// average from the full rating sequence, all in one transaction. The book
// row is locked for the duration so two concurrent submissions for the
// same book serialize instead of racing on the read-modify-write.
func (r *repository) SubmitRating(ctx context.Context, bookUid, rater string, grade int) (model.Book, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Book{}, errors.Wrap(err, "begin tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var book model.Book
	err = tx.GetContext(ctx, &book,
		`select `+bookColumns+` from books where book_uid = $1 for update`, bookUid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	if err = r.attachRatings(ctx, tx, &book); err != nil {
		return model.Book{}, err
	}

	if book.Rated(rater) {
		return model.Book{}, errs.ErrRatingExists
	}

	if _, err = tx.ExecContext(ctx,
		`insert into ratings (book_id, rater, grade) values ($1, $2, $3)`,
		book.ID, rater, grade); err != nil {
		// the unique index backstops the membership check
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Book{}, errs.ErrRatingExists
		}
		return model.Book{}, errors.Wrap(err, "insert rating")
	}

	book.Ratings = append(book.Ratings, model.Rating{Rater: rater, Grade: grade})
	book.AverageRating = model.Average(book.Ratings)

	if _, err = tx.ExecContext(ctx,
		`update books set average_rating = $1 where id = $2`,
		book.AverageRating, book.ID); err != nil {
		return model.Book{}, errors.Wrap(err, "update average")
	}

	if err = tx.Commit(); err != nil {
		return model.Book{}, errors.Wrap(err, "commit")
	}

	r.log.Debug("rating submitted",
		zap.String("bookUid", bookUid),
		zap.String("rater", rater),
		zap.Int("grade", grade),
		zap.Float64("average", book.AverageRating),
	)
	return book, nil
}
