package handler_test

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/grimoire/catalog-service/internal/errs"
	service_mocks "github.com/grimoire/catalog-service/internal/handler/mocks"
	"github.com/grimoire/catalog-service/internal/model"
)

func TestHandler_TopRated(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockCatalogService(c)

	svc.EXPECT().
		TopRated(gomock.Any(), 3).
		Return([]model.Book{
			{BookUid: "b1", Owner: "1", Title: "A", Author: "a", ImageURL: "u1", Year: 2000, Genre: "g", Ratings: []model.Rating{{Rater: "2", Grade: 5}}, AverageRating: 5},
			{BookUid: "b2", Owner: "1", Title: "B", Author: "b", ImageURL: "u2", Year: 2001, Genre: "g", Ratings: []model.Rating{{Rater: "2", Grade: 3}}, AverageRating: 3},
			{BookUid: "b3", Owner: "2", Title: "C", Author: "c", ImageURL: "u3", Year: 2002, Genre: "g", Ratings: []model.Rating{}, AverageRating: 0},
		}, nil)

	e := newRouter(t, svc, service_mocks.NewMockImageSaver(c))

	r := httptest.NewRequest(http.MethodGet, "/api/v1/books/bestrating", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`[{"bookUid":"b1","userId":"1","title":"A","author":"a","imageUrl":"u1","year":2000,"genre":"g","ratings":[{"userId":"2","grade":5}],"averageRating":5},`+
			`{"bookUid":"b2","userId":"1","title":"B","author":"b","imageUrl":"u2","year":2001,"genre":"g","ratings":[{"userId":"2","grade":3}],"averageRating":3},`+
			`{"bookUid":"b3","userId":"2","title":"C","author":"c","imageUrl":"u3","year":2002,"genre":"g","ratings":[],"averageRating":0}]`,
		strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_GetBook(t *testing.T) {
	t.Parallel()

	type mockBehavior func(r *service_mocks.MockCatalogService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().
					GetBook(gomock.Any(), bookUid).
					Return(model.Book{BookUid: bookUid, Owner: "1", Title: "A", Author: "a", ImageURL: "u", Year: 2000, Genre: "g", Ratings: []model.Rating{}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"bookUid":"` + bookUid + `","userId":"1","title":"A","author":"a","imageUrl":"u","year":2000,"genre":"g","ratings":[],"averageRating":0}`,
		},
		{
			name: "not found",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().
					GetBook(gomock.Any(), bookUid).
					Return(model.Book{}, errs.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"not found"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockCatalogService(c)
			tt.mockBehavior(svc)

			e := newRouter(t, svc, service_mocks.NewMockImageSaver(c))

			r := httptest.NewRequest(http.MethodGet, "/api/v1/books/"+bookUid, http.NoBody)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_CreateBook(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockCatalogService(c)
	images := service_mocks.NewMockImageSaver(c)

	images.EXPECT().Save(gomock.Any()).Return("cover.webp", nil)
	svc.EXPECT().
		CreateBook(gomock.Any(), userID,
			model.BookData{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "SF"},
			"http://example.com/images/cover.webp").
		Return(model.Book{BookUid: bookUid, Owner: userID, Title: "Dune", Author: "Frank Herbert",
			ImageURL: "http://example.com/images/cover.webp", Year: 1965, Genre: "SF", Ratings: []model.Rating{}}, nil)

	e := newRouter(t, svc, images)

	body, contentType := multipartBook(t, `{"title":"Dune","author":"Frank Herbert","year":1965,"genre":"SF"}`, true)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/books", body)
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("Authorization", bearer(t, userID))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_CreateBook_RejectsForbiddenFields(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockCatalogService(c)
	images := service_mocks.NewMockImageSaver(c)

	// owner must never come from the payload; the service is not reached
	e := newRouter(t, svc, images)

	body, contentType := multipartBook(t,
		`{"title":"Dune","author":"Frank Herbert","year":1965,"genre":"SF","userId":"13"}`, true)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/books", body)
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("Authorization", bearer(t, userID))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateBook_ImageRequired(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockCatalogService(c)

	e := newRouter(t, svc, service_mocks.NewMockImageSaver(c))

	body, contentType := multipartBook(t, `{"title":"Dune","author":"Frank Herbert","year":1965,"genre":"SF"}`, false)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/books", body)
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("Authorization", bearer(t, userID))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `{"message":"image file is required"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_UpdateBook_NonOwner(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockCatalogService(c)

	svc.EXPECT().
		UpdateBook(gomock.Any(), userID, bookUid,
			model.BookData{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "SF"}, "").
		Return(model.Book{}, errs.ErrNotOwner)

	e := newRouter(t, svc, service_mocks.NewMockImageSaver(c))

	r := httptest.NewRequest(http.MethodPut, "/api/v1/books/"+bookUid,
		strings.NewReader(`{"title":"Dune","author":"Frank Herbert","year":1965,"genre":"SF"}`))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", bearer(t, userID))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, `{"message":"not the book owner"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_DeleteBook(t *testing.T) {
	t.Parallel()

	type mockBehavior func(r *service_mocks.MockCatalogService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		expectedCode int
	}{
		{
			name: "owner",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().DeleteBook(gomock.Any(), userID, bookUid).Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "non-owner",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().DeleteBook(gomock.Any(), userID, bookUid).Return(errs.ErrNotOwner)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "missing",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().DeleteBook(gomock.Any(), userID, bookUid).Return(errs.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockCatalogService(c)
			tt.mockBehavior(svc)

			e := newRouter(t, svc, service_mocks.NewMockImageSaver(c))

			r := httptest.NewRequest(http.MethodDelete, "/api/v1/books/"+bookUid, http.NoBody)
			r.Header.Set("Authorization", bearer(t, userID))
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

// multipartBook builds the create/update form: a "book" JSON part and,
// optionally, a small png "image" part.
func multipartBook(t *testing.T, bookJSON string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("book", bookJSON))
	if withImage {
		fw, err := mw.CreateFormFile("image", "cover.png")
		require.NoError(t, err)
		require.NoError(t, png.Encode(fw, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}
