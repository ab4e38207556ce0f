// Package httpapi serves the NoteKeeper REST API over gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, username, password string, email *string) (*services.Session, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
	Me(claims *auth.Claims) services.Identity
}

type NoteService interface {
	List(ctx context.Context, owner string) ([]*models.Note, error)
	Search(ctx context.Context, owner, phrase string) ([]*models.Note, error)
	Get(ctx context.Context, owner, id string) (*models.Note, error)
	Create(ctx context.Context, owner string, in services.NoteInput) (*models.Note, error)
	Update(ctx context.Context, owner, id string, in services.NoteInput) (*models.Note, error)
	Delete(ctx context.Context, owner, id string) error
	DeleteMany(ctx context.Context, owner string, ids []string) (deleted, missing []string, err error)
	DeleteAll(ctx context.Context, owner string) (int64, error)
}

type Exporter interface {
	Export(ctx context.Context, owner string) (*services.Export, error)
}

type HTTPServer struct {
	address  string
	logger   logging.Logger
	gate     *auth.Gate
	users    UserService
	notes    NoteService
	exporter Exporter
	metrics  *requestMetrics
	engine   *gin.Engine
}

// NewHTTPServer builds the router. reg receives the request metrics and is
// exposed on /metrics.
func NewHTTPServer(a string, l logging.Logger, gate *auth.Gate, us UserService, ns NoteService, ex Exporter, reg *prometheus.Registry) *HTTPServer {
	s := &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		gate:     gate,
		users:    us,
		notes:    ns,
		exporter: ex,
		metrics:  newRequestMetrics(reg),
	}
	s.engine = s.routes(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return s
}

func (s *HTTPServer) routes(metrics http.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/ping", s.ping)
	r.GET("/metrics", gin.WrapH(metrics))

	api := r.Group("/api")
	api.POST("/users/register", s.register)
	api.POST("/users/login", s.login)

	protected := api.Group("", s.requireAuth())
	protected.GET("/users/me", s.me)

	notes := protected.Group("/notes")
	notes.GET("", s.listNotes)
	notes.POST("", s.createNote)
	notes.DELETE("", s.deleteAllNotes)
	notes.GET("/search", s.searchNotes)
	notes.POST("/delete", s.deleteNotes)
	notes.POST("/export", s.exportNotes)
	notes.GET("/:id", s.getNote)
	notes.PUT("/:id", s.updateNote)
	notes.DELETE("/:id", s.deleteNote)

	return r
}

// Handler exposes the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
