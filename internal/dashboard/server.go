// Package dashboard serves the local web view of the build tracker: summary
// cards, the add-build form and the filterable card list.
package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/kitlog/internal/stage"
	"github.com/zulandar/kitlog/internal/tracker"
	"go.uber.org/zap"
)

// StartOpts holds configuration for the dashboard server.
type StartOpts struct {
	Store  *tracker.Store
	Port   int
	Out    io.Writer
	Logger *zap.Logger
}

// Start launches the dashboard HTTP server on localhost. It blocks until ctx
// is cancelled, then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Store == nil {
		return fmt.Errorf("dashboard: store is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := NewRouter(opts.Store, opts.Logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", opts.Port),
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Dashboard running at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// NewRouter builds the Gin engine serving store. All requests are
// serialized: the store has a single owner.
func NewRouter(store *tracker.Store, logger *zap.Logger) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery())

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	h := &handler{store: store, log: logger}
	registerRoutes(router, h)
	return router, nil
}

// handler owns the store on behalf of concurrent HTTP requests.
type handler struct {
	mu    sync.Mutex
	store *tracker.Store
	log   *zap.Logger
}

// parseTemplates loads the embedded HTML templates.
func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": tracker.FormatDate,
		"formatTime": tracker.FormatTime,
		"stageIndex": stage.Index,
		"position":   func(status string) string { return stage.Position(stage.Index(status)) },
		"progress":   func(status string) int { return stage.Progress(stage.Index(status)) },
		"isFirst":    func(status string) bool { return stage.Index(status) == 0 },
		"isLast":     func(status string) bool { return stage.Index(status) == stage.Last() },
	}
}
