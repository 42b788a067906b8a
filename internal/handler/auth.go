package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grimoire/catalog-service/internal/model"
)

// Signup registers a new user.
//
//	@Router	/api/v1/auth/signup [post]
func (h *Handler) Signup(c echo.Context) error {
	var creds model.CredentialsRequest
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&creds); err != nil {
		return err
	}

	if err := h.catalogSvc.Signup(c.Request().Context(), creds); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "user created"})
}

// Login checks the credentials and issues a bearer token.
//
//	@Router	/api/v1/auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var creds model.CredentialsRequest
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&creds); err != nil {
		return err
	}

	resp, err := h.catalogSvc.Login(c.Request().Context(), creds)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}
