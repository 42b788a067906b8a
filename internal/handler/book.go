package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/grimoire/catalog-service/internal/model"
	"github.com/grimoire/catalog-service/pkg/auth"
)

const topRatedLimit = 3

// ListBooks returns every book with its ratings.
//
//	@Router	/api/v1/books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	books, err := h.catalogSvc.ListBooks(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

// TopRated returns the best rated books, average descending.
//
//	@Router	/api/v1/books/bestrating [get]
func (h *Handler) TopRated(c echo.Context) error {
	books, err := h.catalogSvc.TopRated(c.Request().Context(), topRatedLimit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

// GetBook returns one book by its uid.
//
//	@Router	/api/v1/books/{bookUid} [get]
func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.catalogSvc.GetBook(c.Request().Context(), c.Param("bookUid"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// CreateBook accepts a multipart form: a "book" JSON part with the
// allow-listed fields and a required "image" cover file.
//
//	@Router	/api/v1/books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	owner, err := auth.GetUserID(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	data, err := decodeBookData(c, []byte(c.FormValue("book")))
	if err != nil {
		return err
	}

	imageURL, err := h.storeCover(c, true)
	if err != nil {
		return err
	}

	book, err := h.catalogSvc.CreateBook(ctx, owner, data, imageURL)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

// UpdateBook replaces the mutable fields of the requester's book. The body
// is either the same multipart form as CreateBook (cover replaced) or a
// bare JSON object (cover kept).
//
//	@Router	/api/v1/books/{bookUid} [put]
func (h *Handler) UpdateBook(c echo.Context) error {
	ctx := c.Request().Context()
	requester, err := auth.GetUserID(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	var (
		data     model.BookData
		imageURL string
	)
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if data, err = decodeBookData(c, []byte(c.FormValue("book"))); err != nil {
			return err
		}
		if imageURL, err = h.storeCover(c, false); err != nil {
			return err
		}
	} else {
		raw, readErr := readBody(c)
		if readErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, readErr.Error())
		}
		if data, err = decodeBookData(c, raw); err != nil {
			return err
		}
	}

	book, err := h.catalogSvc.UpdateBook(ctx, requester, c.Param("bookUid"), data, imageURL)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook removes the requester's book and its stored cover.
//
//	@Router	/api/v1/books/{bookUid} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	requester, err := auth.GetUserID(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	if err := h.catalogSvc.DeleteBook(ctx, requester, c.Param("bookUid")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// storeCover saves the uploaded "image" part and returns its public URL.
// When required is false a missing part is not an error.
func (h *Handler) storeCover(c echo.Context, required bool) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if !required {
			return "", nil
		}
		return "", echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer src.Close()

	name, err := h.images.Save(src)
	if err != nil {
		return "", httpError(err)
	}
	return c.Scheme() + "://" + c.Request().Host + "/images/" + name, nil
}

// decodeBookData parses the allow-listed book fields, rejecting unknown
// ones so owner and rating data can never arrive from a client.
func decodeBookData(c echo.Context, raw []byte) (model.BookData, error) {
	var data model.BookData
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return model.BookData{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&data); err != nil {
		return model.BookData{}, err
	}
	return data, nil
}

func readBody(c echo.Context) ([]byte, error) {
	defer c.Request().Body.Close()
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(c.Request().Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
