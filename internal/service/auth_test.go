package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/grimoire/catalog-service/internal/errs"
	"github.com/grimoire/catalog-service/internal/model"
	repo_mocks "github.com/grimoire/catalog-service/internal/repository/mocks"
	"github.com/grimoire/catalog-service/internal/service"
	"github.com/grimoire/catalog-service/pkg/auth"
)

var jwtKey = []byte("test-secret")

func TestService_Signup(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := repo_mocks.NewMockRepository(c)

	creds := model.CredentialsRequest{Email: "reader@example.com", Password: "s3cr3t-pw"}

	repo.EXPECT().
		CreateUser(context.Background(), creds.Email, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, hash string) (model.User, error) {
			// never store the plaintext
			require.NotEqual(t, creds.Password, hash)
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)))
			return model.User{ID: 1, Email: creds.Email, PasswordHash: hash}, nil
		})

	svc := service.NewService(repo, nopImages{}, jwtKey, zap.NewExample().Named("test"))
	require.NoError(t, svc.Signup(context.Background(), creds))
}

func TestService_Signup_EmailTaken(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := repo_mocks.NewMockRepository(c)

	repo.EXPECT().
		CreateUser(context.Background(), "reader@example.com", gomock.Any()).
		Return(model.User{}, errs.ErrEmailTaken)

	svc := service.NewService(repo, nopImages{}, jwtKey, zap.NewExample().Named("test"))
	err := svc.Signup(context.Background(), model.CredentialsRequest{Email: "reader@example.com", Password: "s3cr3t-pw"})
	require.ErrorIs(t, err, errs.ErrEmailTaken)
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	const password = "s3cr3t-pw"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := model.User{ID: 42, Email: "reader@example.com", PasswordHash: string(hash)}

	type mockBehavior func(r *repo_mocks.MockRepository)

	var tests = []struct {
		name         string
		password     string
		mockBehavior mockBehavior
		wantErr      error
	}{
		{
			name:     "ok",
			password: password,
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserByEmail(context.Background(), user.Email).Return(user, nil)
			},
		},
		{
			name:     "wrong password",
			password: "not-the-password",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserByEmail(context.Background(), user.Email).Return(user, nil)
			},
			wantErr: errs.ErrInvalidCredential,
		},
		{
			name:     "unknown user",
			password: password,
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserByEmail(context.Background(), user.Email).Return(model.User{}, errs.ErrNotFound)
			},
			wantErr: errs.ErrInvalidCredential,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			repo := repo_mocks.NewMockRepository(c)
			tt.mockBehavior(repo)

			svc := service.NewService(repo, nopImages{}, jwtKey, zap.NewExample().Named("test"))
			resp, err := svc.Login(context.Background(), model.CredentialsRequest{Email: user.Email, Password: tt.password})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "42", resp.UserID)

			claims, err := auth.ParseToken(jwtKey, resp.AccessToken)
			require.NoError(t, err)
			require.Equal(t, "42", claims.UserID)
			require.Equal(t, user.Email, claims.Email)
		})
	}
}
