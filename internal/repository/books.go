package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/grimoire/catalog-service/internal/errs"
	"github.com/grimoire/catalog-service/internal/model"
)

const bookColumns = `id, book_uid, owner, title, author, image_url, year, genre, average_rating`

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	q, args, err := qb.Insert(booksTableName).
		Columns("book_uid", "owner", "title", "author", "image_url", "year", "genre").
		Values(book.BookUid, book.Owner, book.Title, book.Author, book.ImageURL, book.Year, book.Genre).
		Suffix("returning " + bookColumns).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var created model.Book
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		return model.Book{}, errors.Wrap(err, "create book")
	}
	created.Ratings = []model.Rating{}
	return created, nil
}

func (r *repository) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	q, args, err := qb.Select(bookColumns).
		From(booksTableName).
		Where(sq.Eq{"book_uid": bookUid}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	if err := r.attachRatings(ctx, r.db, &book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context) ([]model.Book, error) {
	q, args, err := qb.Select(bookColumns).
		From(booksTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.selectBooks(ctx, q, args)
}

func (r *repository) TopRated(ctx context.Context, limit int) ([]model.Book, error) {
	q, args, err := qb.Select(bookColumns).
		From(booksTableName).
		OrderBy("average_rating desc", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.selectBooks(ctx, q, args)
}

func (r *repository) UpdateBook(ctx context.Context, bookUid string, data model.BookData, imageURL string) (model.Book, error) {
	upd := qb.Update(booksTableName).
		Set("title", data.Title).
		Set("author", data.Author).
		Set("year", data.Year).
		Set("genre", data.Genre).
		Where(sq.Eq{"book_uid": bookUid}).
		Suffix("returning " + bookColumns)
	if imageURL != "" {
		upd = upd.Set("image_url", imageURL)
	}
	q, args, err := upd.ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, errors.Wrap(err, "update book")
	}
	if err := r.attachRatings(ctx, r.db, &book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) DeleteBook(ctx context.Context, bookUid string) error {
	q, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"book_uid": bookUid}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "delete book")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) selectBooks(ctx context.Context, q string, args []interface{}) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, q, args...); err != nil {
		r.log.Error("selectBooks", zap.String("q", q), zap.Error(err))
		return nil, err
	}
	if err := r.attachRatingsAll(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

type queryer interface {
	sqlx.QueryerContext
}

// attachRatings loads the book's ratings in submission order.
func (r *repository) attachRatings(ctx context.Context, db queryer, book *model.Book) error {
	q, args, err := qb.Select("rater", "grade").
		From(ratingsTableName).
		Where(sq.Eq{"book_id": book.ID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return err
	}
	ratings := []model.Rating{}
	if err := sqlx.SelectContext(ctx, db, &ratings, q, args...); err != nil {
		return err
	}
	book.Ratings = ratings
	return nil
}

func (r *repository) attachRatingsAll(ctx context.Context, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}
	ids := make([]int, 0, len(books))
	for i := range books {
		books[i].Ratings = []model.Rating{}
		ids = append(ids, books[i].ID)
	}
	q, args, err := qb.Select("book_id", "rater", "grade").
		From(ratingsTableName).
		Where(sq.Eq{"book_id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return err
	}
	var rows []struct {
		BookID int    `db:"book_id"`
		Rater  string `db:"rater"`
		Grade  int    `db:"grade"`
	}
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return err
	}
	byID := make(map[int]*model.Book, len(books))
	for i := range books {
		byID[books[i].ID] = &books[i]
	}
	for _, row := range rows {
		if b, ok := byID[row.BookID]; ok {
			b.Ratings = append(b.Ratings, model.Rating{Rater: row.Rater, Grade: row.Grade})
		}
	}
	return nil
}
