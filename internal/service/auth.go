package service

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/grimoire/catalog-service/internal/errs"
	"github.com/grimoire/catalog-service/internal/model"
	"github.com/grimoire/catalog-service/pkg/auth"
)

const bcryptCost = 10

func (s *Service) Signup(ctx context.Context, creds model.CredentialsRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcryptCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	_, err = s.repo.CreateUser(ctx, creds.Email, string(hash))
	return err
}

func (s *Service) Login(ctx context.Context, creds model.CredentialsRequest) (model.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.AuthResponse{}, errs.ErrInvalidCredential
		}
		return model.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return model.AuthResponse{}, errs.ErrInvalidCredential
	}

	userID := strconv.Itoa(user.ID)
	token, expiresAt, err := auth.NewToken(s.jwtKey, userID, user.Email)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "sign token")
	}

	return model.AuthResponse{
		UserID:      userID,
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Unix()),
	}, nil
}
