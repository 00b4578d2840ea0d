package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskman/taskman-api/docs"
	"github.com/taskman/taskman-api/internal/api/handler"
	"github.com/taskman/taskman-api/internal/api/middleware"
	"github.com/taskman/taskman-api/internal/core/ports"
)

// Deps is everything the router needs to serve requests.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Tasks    ports.TaskService
	Projects ports.ProjectService

	// Readiness lists the dependencies probed by /health/ready.
	Readiness map[string]handler.Pinger
	Logger    zerolog.Logger

	// Registerer and Gatherer back the HTTP metrics. Nil means the
	// prometheus defaults.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "taskman",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/swagger")
		},
	}))

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	taskHandler := handler.NewTaskHandler(deps.Tasks)
	projectHandler := handler.NewProjectHandler(deps.Projects)
	requireUser := middleware.Auth(deps.Auth)

	// --- Auth routes ---
	authGroup := e.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authHandler.Me, requireUser)
	authGroup.PATCH("/update-user", userHandler.Update)
	authGroup.GET("/users", userHandler.List)

	// --- Task routes ---
	tasks := e.Group("/tasks")
	tasks.POST("/add-task", taskHandler.Create)
	tasks.PATCH("/update-task", taskHandler.Update)
	tasks.GET("/tasks-list", taskHandler.List)
	tasks.GET("/my-tasks", taskHandler.Mine, requireUser)
	tasks.GET("/tasks-for-day", taskHandler.ForDay)
	tasks.GET("/get-candidate/:task_grade", taskHandler.Candidate)
	tasks.DELETE("/delete-task/:task_id", taskHandler.Delete)

	// --- Project routes ---
	projects := e.Group("/projects")
	projects.POST("/add-project", projectHandler.Create)
	projects.GET("/projects-list", projectHandler.List)

	// --- Operations ---
	healthHandler := handler.NewHealthHandler(deps.Readiness)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
