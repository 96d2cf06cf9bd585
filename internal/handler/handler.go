package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/errs"
	md "github.com/schoolhub/library-service/pkg/middleware"
	"github.com/schoolhub/library-service/pkg/validate"
)

type Services struct {
	Catalog    CatalogService
	Membership MembershipService
	Loan       LoanService
	Review     ReviewService
	Calendar   EventService
	Recommend  RecommendService
	Stats      StatsService
}

type Handler struct {
	svc Services
	log *zap.Logger
}

func New(svc Services, log *zap.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log,
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

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/books", h.AddBook)
	api.GET("/books", h.GetBooks)
	api.GET("/books/:bookId", h.GetBook)
	api.GET("/books/:bookId/available", h.AvailableCopies)
	api.GET("/books/:bookId/reviews", h.GetReviews)
	api.POST("/books/:bookId/reviews", h.SubmitReview)

	api.GET("/students", h.GetStudents)
	api.GET("/students/:studentId", h.GetStudent)
	api.GET("/students/:studentId/loans", h.GetOpenLoans)
	api.GET("/students/:studentId/loans/history", h.GetLoanHistory)
	api.GET("/students/:studentId/fines", h.GetFines)
	api.GET("/students/:studentId/recommendations", h.GetRecommendations)

	api.POST("/loans", h.IssueLoan)
	api.POST("/loans/:loanId/return", h.ReturnLoan)

	api.GET("/events", h.GetEvents)
	api.POST("/events", h.AddEvent)

	api.GET("/stats", h.GetStats)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps domain error kinds onto status codes.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrNoCopyAvailable),
		errors.Is(err, errs.ErrAlreadyReturned),
		errors.Is(err, errs.ErrDuplicateReview):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrTransientStore):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
