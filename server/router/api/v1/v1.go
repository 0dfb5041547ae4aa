package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/inquora/inquora/internal/profile"
	"github.com/inquora/inquora/plugin/llm"
	"github.com/inquora/inquora/server/interview"
	apperrors "github.com/inquora/inquora/server/internal/errors"
	"github.com/inquora/inquora/server/internal/observability"
	"github.com/inquora/inquora/server/middleware"
	"github.com/inquora/inquora/store"
)

// APIV1Service registers the v1 REST API on an echo server.
type APIV1Service struct {
	Profile    *profile.Profile
	Store      *store.Store
	Controller *interview.Controller

	rateLimiter *middleware.RateLimiter
}

// NewAPIV1Service wires the interview controller and its collaborators.
func NewAPIV1Service(prof *profile.Profile, st *store.Store, llmService llm.Service) *APIV1Service {
	planProvider := interview.NewPlanProvider(llmService)
	analyzer := interview.NewAnalysisGenerator(llmService)
	controller := interview.NewController(st, llmService, planProvider, analyzer, prof)

	return &APIV1Service{
		Profile:     prof,
		Store:       st,
		Controller:  controller,
		rateLimiter: middleware.NewRateLimiter(10, 20),
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	group := echoServer.Group("/api/v1")
	group.Use(echomw.CORS())
	group.Use(s.requestContextMiddleware())
	group.Use(s.rateLimiter.Middleware())

	group.POST("/interviews", s.StartInterview)
	group.POST("/interviews/:id/messages", s.SendMessage)
	group.POST("/interviews/:id/complete", s.CompleteInterview)
	group.GET("/interviews/:id", s.GetInterview)
}

// requestContextMiddleware attaches a RequestContext to every request and
// logs its outcome with duration.
func (s *APIV1Service) requestContextMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqCtx := observability.NewRequestContext(slog.Default(), c.Request().Method+" "+c.Path(), "")
			ctx := observability.WithRequestContext(c.Request().Context(), reqCtx)
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				} else if status < http.StatusBadRequest {
					status = http.StatusInternalServerError
				}
			}

			attrs := []slog.Attr{
				slog.Int("status", status),
				slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
			}
			// Client-side rejections are routine; only upstream and
			// persistence failures belong in the error log.
			switch {
			case status >= http.StatusInternalServerError:
				if err == nil {
					err = errors.New(http.StatusText(status))
				}
				reqCtx.Error("request failed", err, attrs...)
			case status >= http.StatusBadRequest:
				if err != nil {
					attrs = append(attrs, slog.String("error", err.Error()))
				}
				reqCtx.Warn("request rejected", attrs...)
			default:
				reqCtx.Info("request handled", attrs...)
			}
			return err
		}
	}
}

// errorResponse is the structured error payload.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(c echo.Context, err error) error {
	code := apperrors.GetCodeFromError(err, apperrors.ErrCodeUpstreamFailure)

	status := http.StatusInternalServerError
	switch code {
	case apperrors.ErrCodeInvalidArgument, apperrors.ErrCodeFailedPrecondition:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	case apperrors.ErrCodeLLMUnavailable:
		status = http.StatusServiceUnavailable
	}

	message := err.Error()
	if ierr, ok := err.(*apperrors.InterviewError); ok {
		message = ierr.Message
	}

	return c.JSON(status, &errorResponse{Code: string(code), Message: message})
}

func unixToRFC3339(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}
