package dashboard

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/kitlog/internal/models"
	"github.com/zulandar/kitlog/internal/stage"
	"github.com/zulandar/kitlog/internal/tracker"
	"go.uber.org/zap"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, h *handler) {
	// Embedded static assets (served from assets/ subdir of the embed.FS).
	staticFS, _ := fs.Sub(assetsFS, "assets")
	router.StaticFS("/static", http.FS(staticFS))

	// Pages and form posts.
	router.GET("/", h.index)
	router.POST("/builds", h.create)
	router.POST("/builds/:id/advance", h.advance(1))
	router.POST("/builds/:id/back", h.advance(-1))
	router.POST("/builds/:id/delete", h.remove)
	router.POST("/reset", h.reset)
	router.POST("/samples", h.samples)

	// JSON API.
	api := router.Group("/api")
	api.GET("/builds", h.apiBuilds)
	api.GET("/summary", h.apiSummary)
	api.GET("/stages", h.apiStages)
}

// pageData assembles everything layout.html renders. Callers hold h.mu.
func (h *handler) pageData(formErr string, form tracker.CreateOpts) gin.H {
	return gin.H{
		"Summary":   h.store.Summary(),
		"View":      h.store.View(),
		"Filter":    h.store.Filter(),
		"Stages":    stage.All(),
		"Grades":    models.Grades,
		"FormError": formErr,
		"Form":      form,
	}
}

func (h *handler) index(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if status, ok := c.GetQuery("status"); ok {
		if err := h.store.SetFilter(status); err != nil {
			c.HTML(http.StatusBadRequest, "layout.html", h.pageData(err.Error(), tracker.CreateOpts{}))
			return
		}
	}
	c.HTML(http.StatusOK, "layout.html", h.pageData("", tracker.CreateOpts{}))
}

func (h *handler) create(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	opts := tracker.CreateOpts{
		KitName: c.PostForm("kitName"),
		Scale:   c.PostForm("scale"),
		Grade:   c.PostForm("grade"),
		Status:  c.PostForm("status"),
		Started: c.PostForm("started"),
		Target:  c.PostForm("target"),
		Notes:   c.PostForm("notes"),
	}
	b, err := h.store.Create(opts)
	if errors.Is(err, tracker.ErrValidation) {
		c.HTML(http.StatusBadRequest, "layout.html", h.pageData(userMessage(err), opts))
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("build added", zap.String("id", b.ID), zap.String("kit", b.KitName))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handler) advance(direction int) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.mu.Lock()
		defer h.mu.Unlock()

		if err := h.store.AdvanceStage(c.Param("id"), direction); err != nil {
			h.fail(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func (h *handler) remove(c *gin.Context) {
	if !confirmed(c) {
		c.String(http.StatusBadRequest, "delete requires confirm=yes")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Delete(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handler) reset(c *gin.Context) {
	if !confirmed(c) {
		c.String(http.StatusBadRequest, "reset requires confirm=yes")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.ResetAll(); err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("tracker reset")
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handler) samples(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.LoadSamples(); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// buildJSON is the API representation of a build plus its derived progress.
type buildJSON struct {
	models.Build
	StageIndex int    `json:"stageIndex"`
	Progress   int    `json:"progress"`
	Position   string `json:"position"`
}

func (h *handler) apiBuilds(c *gin.Context) {
	filter, err := tracker.ParseFilter(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": userMessage(err)})
		return
	}

	h.mu.Lock()
	v := tracker.DeriveView(h.store.Builds(), filter)
	h.mu.Unlock()

	out := make([]buildJSON, len(v.Builds))
	for i, b := range v.Builds {
		idx := stage.Index(b.Status)
		out[i] = buildJSON{Build: b, StageIndex: idx, Progress: stage.Progress(idx), Position: stage.Position(idx)}
	}
	c.JSON(http.StatusOK, gin.H{
		"filter": v.Filter,
		"total":  v.Total,
		"builds": out,
		"empty":  v.EmptyMessage(),
	})
}

func (h *handler) apiSummary(c *gin.Context) {
	h.mu.Lock()
	s := h.store.Summary()
	h.mu.Unlock()

	byStage := make(map[string]int, stage.Count())
	for i, n := range s.ByStage {
		byStage[stage.Label(i)] = n
	}
	c.JSON(http.StatusOK, gin.H{
		"total":         s.Total,
		"snapBuild":     s.SnapBuild,
		"paintFinish":   s.PaintFinish,
		"showcaseReady": s.ShowcaseReady,
		"byStage":       byStage,
	})
}

func (h *handler) apiStages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stages": stage.All()})
}

func (h *handler) fail(c *gin.Context, err error) {
	h.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.String(http.StatusInternalServerError, err.Error())
}

func confirmed(c *gin.Context) bool {
	return strings.EqualFold(c.PostForm("confirm"), "yes")
}

// userMessage strips package prefixes from a validation error.
func userMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, tracker.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(tracker.ErrValidation.Error())+2:]
	}
	return msg
}
