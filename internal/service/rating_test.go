package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grimoire/catalog-service/internal/errs"
	"github.com/grimoire/catalog-service/internal/model"
	repo_mocks "github.com/grimoire/catalog-service/internal/repository/mocks"
	"github.com/grimoire/catalog-service/internal/service"
)

func TestService_SubmitRating(t *testing.T) {
	t.Parallel()

	const (
		bookUid = "7e7f43f1-9f5a-44b0-b41e-7d4082e440a1"
		rater   = "42"
	)
	type mockBehavior func(r *repo_mocks.MockRepository)

	var tests = []struct {
		name         string
		grade        int
		mockBehavior mockBehavior
		want         model.Book
		wantErr      error
	}{
		{
			name:  "ok",
			grade: 4,
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					SubmitRating(context.Background(), bookUid, rater, 4).
					Return(model.Book{
						BookUid:       bookUid,
						Ratings:       []model.Rating{{Rater: rater, Grade: 4}},
						AverageRating: 4,
					}, nil)
			},
			want: model.Book{
				BookUid:       bookUid,
				Ratings:       []model.Rating{{Rater: rater, Grade: 4}},
				AverageRating: 4,
			},
		},
		{
			name:  "grade boundary low",
			grade: 0,
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					SubmitRating(context.Background(), bookUid, rater, 0).
					Return(model.Book{BookUid: bookUid}, nil)
			},
			want: model.Book{BookUid: bookUid},
		},
		{
			// the grade check comes before any repository access
			name:         "grade too high",
			grade:        6,
			mockBehavior: func(r *repo_mocks.MockRepository) {},
			wantErr:      errs.ErrInvalidGrade,
		},
		{
			name:         "grade negative",
			grade:        -1,
			mockBehavior: func(r *repo_mocks.MockRepository) {},
			wantErr:      errs.ErrInvalidGrade,
		},
		{
			name:  "book not found",
			grade: 3,
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					SubmitRating(context.Background(), bookUid, rater, 3).
					Return(model.Book{}, errs.ErrNotFound)
			},
			wantErr: errs.ErrNotFound,
		},
		{
			name:  "duplicate rater",
			grade: 3,
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().
					SubmitRating(context.Background(), bookUid, rater, 3).
					Return(model.Book{}, errs.ErrRatingExists)
			},
			wantErr: errs.ErrRatingExists,
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

			svc := service.NewService(repo, nopImages{}, []byte("key"), zap.NewExample().Named("test"))

			book, err := svc.SubmitRating(context.Background(), rater, bookUid, tt.grade)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, book)
		})
	}
}
