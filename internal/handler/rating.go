package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grimoire/catalog-service/internal/model"
	"github.com/grimoire/catalog-service/pkg/auth"
)

// SubmitRating records the caller's grade for a book and returns the book
// with its recomputed average.
//
//	@Router	/api/v1/books/{bookUid}/rating [post]
func (h *Handler) SubmitRating(c echo.Context) error {
	ctx := c.Request().Context()
	rater, err := auth.GetUserID(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	var req model.RatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.catalogSvc.SubmitRating(ctx, rater, c.Param("bookUid"), req.Grade)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}
