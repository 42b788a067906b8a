package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "github.com/grimoire/catalog-service/docs"
	"github.com/grimoire/catalog-service/internal/errs"
	md "github.com/grimoire/catalog-service/pkg/middleware"
	"github.com/grimoire/catalog-service/pkg/validate"
)

type Handler struct {
	catalogSvc CatalogService
	images     ImageSaver
	jwtKey     []byte
	imageDir   string
	log        *zap.Logger
}

func New(catalogSvc CatalogService, images ImageSaver, jwtKey []byte, imageDir string, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc: catalogSvc,
		images:     images,
		jwtKey:     jwtKey,
		imageDir:   imageDir,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Static("/images", h.imageDir)

	e.Validator = validate.NewCustomValidator()

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/auth/signup", h.Signup)
	api.POST("/auth/login", h.Login)

	api.GET("/books", h.ListBooks)
	api.GET("/books/bestrating", h.TopRated)
	api.GET("/books/:bookUid", h.GetBook)

	protected := api.Group("", md.JwtAuthentication(h.jwtKey), middleware.BodyLimit("8M"))
	protected.POST("/books", h.CreateBook)
	protected.PUT("/books/:bookUid", h.UpdateBook)
	protected.DELETE("/books/:bookUid", h.DeleteBook)
	protected.POST("/books/:bookUid/rating", h.SubmitRating)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps domain failures to response categories.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidGrade),
		errors.Is(err, errs.ErrRatingExists),
		errors.Is(err, errs.ErrEmailTaken),
		errors.Is(err, errs.ErrBadImage):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrNotOwner),
		errors.Is(err, errs.ErrInvalidCredential):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
