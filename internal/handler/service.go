package handler

import (
	"context"
	"io"

	"github.com/grimoire/catalog-service/internal/model"
	"github.com/grimoire/catalog-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CatalogService interface {
	Signup(ctx context.Context, creds model.CredentialsRequest) error
	Login(ctx context.Context, creds model.CredentialsRequest) (model.AuthResponse, error)

	CreateBook(ctx context.Context, owner string, data model.BookData, imageURL string) (model.Book, error)
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	TopRated(ctx context.Context, limit int) ([]model.Book, error)
	UpdateBook(ctx context.Context, requester, bookUid string, data model.BookData, imageURL string) (model.Book, error)
	DeleteBook(ctx context.Context, requester, bookUid string) error
	SubmitRating(ctx context.Context, rater, bookUid string, grade int) (model.Book, error)
}

// ImageSaver stores an uploaded cover and returns the stored file name.
type ImageSaver interface {
	Save(r io.Reader) (string, error)
}

var _ CatalogService = (*service.Service)(nil)
