package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/grimoire/catalog-service/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	TopRated(ctx context.Context, limit int) ([]model.Book, error)
	UpdateBook(ctx context.Context, bookUid string, data model.BookData, imageURL string) (model.Book, error)
	DeleteBook(ctx context.Context, bookUid string) error
	SubmitRating(ctx context.Context, bookUid, rater string, grade int) (model.Book, error)

	CreateUser(ctx context.Context, email, passwordHash string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName   = `users`
	booksTableName   = `books`
	ratingsTableName = `ratings`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
