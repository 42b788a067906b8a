package service

import (
	"io"

	"go.uber.org/zap"

	"github.com/grimoire/catalog-service/internal/repository"
)

// ImageStore is the cover storage collaborator. Failures of Remove never
// propagate to callers, they are logged.
type ImageStore interface {
	Save(r io.Reader) (string, error)
	Remove(name string) error
}

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	images ImageStore
	jwtKey []byte
}

func NewService(repo repository.Repository, images ImageStore, jwtKey []byte, log *zap.Logger) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		images: images,
		jwtKey: jwtKey,
	}
}
