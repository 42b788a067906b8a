package service

import (
	"context"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grimoire/catalog-service/internal/errs"
	"github.com/grimoire/catalog-service/internal/model"
)

func (s *Service) CreateBook(ctx context.Context, owner string, data model.BookData, imageURL string) (model.Book, error) {
	book := model.Book{
		BookUid:  uuid.New().String(),
		Owner:    owner,
		Title:    data.Title,
		Author:   data.Author,
		ImageURL: imageURL,
		Year:     data.Year,
		Genre:    data.Genre,
	}
	return s.repo.CreateBook(ctx, book)
}

func (s *Service) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	return s.repo.GetBook(ctx, bookUid)
}

func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListBooks(ctx)
}

func (s *Service) TopRated(ctx context.Context, limit int) ([]model.Book, error) {
	return s.repo.TopRated(ctx, limit)
}

// UpdateBook replaces the mutable fields of the requester's book. With a
// non-empty imageURL the stored cover is replaced and the old file removed
// best-effort.
func (s *Service) UpdateBook(ctx context.Context, requester, bookUid string, data model.BookData, imageURL string) (model.Book, error) {
	book, err := s.repo.GetBook(ctx, bookUid)
	if err != nil {
		return model.Book{}, err
	}
	if book.Owner != requester {
		return model.Book{}, errs.ErrNotOwner
	}

	updated, err := s.repo.UpdateBook(ctx, bookUid, data, imageURL)
	if err != nil {
		return model.Book{}, err
	}
	if imageURL != "" && book.ImageURL != imageURL {
		s.removeCover(book.ImageURL)
	}
	return updated, nil
}

// DeleteBook removes the requester's book. The cover file cleanup is
// fire-and-forget: its failure is logged, never surfaced.
func (s *Service) DeleteBook(ctx context.Context, requester, bookUid string) error {
	book, err := s.repo.GetBook(ctx, bookUid)
	if err != nil {
		return err
	}
	if book.Owner != requester {
		return errs.ErrNotOwner
	}

	if err := s.repo.DeleteBook(ctx, bookUid); err != nil {
		return err
	}
	s.removeCover(book.ImageURL)
	return nil
}

func (s *Service) removeCover(imageURL string) {
	name := path.Base(imageURL)
	go func() {
		if err := s.images.Remove(name); err != nil {
			s.log.Warn("cover cleanup failed", zap.String("image", name), zap.Error(err))
		}
	}()
}
