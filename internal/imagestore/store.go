package imagestore

import (
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/grimoire/catalog-service/internal/errs"
)

const (
	maxWidth  = 600
	maxHeight = 800
	quality   = 80
)

// Store keeps cover images on local disk, re-encoded to webp under a
// uuid-derived name.
type Store struct {
	dir string
	log *zap.Logger
}

func New(dir string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "image dir")
	}
	return &Store{
		dir: dir,
		log: log.Named("imagestore"),
	}, nil
}

// Save decodes the upload (jpeg/png/webp), fits it into maxWidth x maxHeight
// and writes it as webp. It returns the stored file name.
func (s *Store) Save(r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", errs.ErrBadImage
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	name := uuid.New().String() + ".webp"
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.Wrap(err, "create image file")
	}
	defer f.Close()

	if err := webp.Encode(f, img, &webp.Options{Quality: quality}); err != nil {
		_ = os.Remove(f.Name())
		return "", errors.Wrap(err, "encode webp")
	}
	return name, nil
}

// Remove deletes a stored cover. A missing file is not an error.
func (s *Store) Remove(name string) error {
	name = filepath.Base(name)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir is the root served as the static /images route.
func (s *Store) Dir() string {
	return s.dir
}
