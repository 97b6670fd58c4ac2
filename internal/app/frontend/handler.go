// Package frontend serves the trip form and itinerary pages, one
// renderer.Session per browser.
package frontend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/renderer"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

// SessionCookie names the cookie holding the session id.
const SessionCookie = "trip_session"

type Handler struct {
	store  *SessionStore
	secure bool
	log    *zap.Logger
}

// NewHandler serves pages from store. secure marks the session cookie Secure.
func NewHandler(store *SessionStore, secure bool, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, secure: secure, log: log}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.ShowPage)
	r.POST(renderer.SubmitPath, h.Submit)
	r.POST(renderer.DemoPath, h.LoadDemo)
	r.POST("/days/:day/toggle", h.ToggleDay)
	r.POST(renderer.ResetPath, h.Reset)
	r.POST(renderer.DismissErrorPath, h.DismissError)
	r.GET(renderer.ExportPath, h.Export)
}

func (h *Handler) session(c *gin.Context) *renderer.Session {
	incoming, _ := c.Cookie(SessionCookie)
	id, session := h.store.Get(incoming)
	if id != incoming {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, 0, "/", "", h.secure, true)
	}
	return session
}

// ShowPage renders the current state of the browser's session.
func (h *Handler) ShowPage(c *gin.Context) {
	state := h.session(c).State()
	c.Render(http.StatusOK, TemplRender{Ctx: c.Request.Context(), Component: renderer.Page(state)})
}

// Submit forwards the form to the backend and redirects back to the page.
func (h *Handler) Submit(c *gin.Context) {
	session := h.session(c)
	err := session.Submit(c.Request.Context(), c.PostForm("url"), c.PostForm("trip_duration"), c.PostForm("preferences"))
	h.logOutcome("submit", err)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) LoadDemo(c *gin.Context) {
	err := h.session(c).LoadDemo(c.Request.Context())
	h.logOutcome("demo", err)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) ToggleDay(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid day")
		return
	}
	if !h.session(c).ToggleDay(day) {
		h.log.Debug("Toggle ignored", zap.Int("day", day))
	}
	c.Redirect(http.StatusSeeOther, "/#day-"+strconv.Itoa(day))
}

func (h *Handler) Reset(c *gin.Context) {
	h.session(c).Reset()
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) DismissError(c *gin.Context) {
	h.session(c).DismissError()
	c.Redirect(http.StatusSeeOther, "/")
}

// Export downloads the displayed itinerary as plain text.
func (h *Handler) Export(c *gin.Context) {
	state := h.session(c).State()
	if state.Phase != renderer.PhaseDisplaying || state.Itinerary == nil {
		c.String(http.StatusNotFound, "No itinerary loaded")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="itinerary.txt"`)
	c.String(http.StatusOK, renderer.ExportText(state.Itinerary))
}

func (h *Handler) logOutcome(action string, err error) {
	var validationErr *models.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &validationErr):
		h.log.Debug("Form rejected", zap.String("action", action), zap.Error(err))
	case errors.Is(err, models.ErrRequestInFlight):
		h.log.Info("Request already in flight", zap.String("action", action))
	default:
		h.log.Warn("Backend request failed", zap.String("action", action), zap.Error(err))
	}
}
