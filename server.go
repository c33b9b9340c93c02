package main

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zachkp/portfolio/internal/lifecycle"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/profile"
	"github.com/Zachkp/portfolio/internal/session"
	"github.com/Zachkp/portfolio/internal/visits"
)

const sessionCookie = "portfolio_session"

type server struct {
	profile  profile.Profile
	sessions *session.Manager
	tracker  *visits.Tracker
	logger   *slog.Logger
	// cookieMaxAge matches the session TTL.
	cookieMaxAge time.Duration
	// trustedProxies may set X-Forwarded-For. Empty trusts none.
	trustedProxies []string
}

// actionView is the data behind the ai.html fragment.
type actionView struct {
	Action         string
	Title          string
	Loading        string
	Phase          string
	Text           string
	Message        string
	Disabled       bool
	Version        uint64
	NoticeTitle    string
	DismissSeconds int
}

func newActionView(a aiAction, snap lifecycle.Snapshot) actionView {
	return actionView{
		Action:         a.Name,
		Title:          a.Title,
		Loading:        a.Loading,
		Phase:          snap.Phase.String(),
		Text:           snap.Text,
		Message:        snap.Message,
		Disabled:       snap.Disabled,
		Version:        snap.Version,
		NoticeTitle:    DisabledTitle,
		DismissSeconds: NoticeDismissSeconds,
	}
}

func newRouter(s *server) (*gin.Engine, error) {
	r := gin.Default()
	// ClientIP keys the trigger limit, so forwarded headers are only
	// honoured from configured proxies.
	if err := r.SetTrustedProxies(s.trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(requestIDMiddleware())
	r.SetHTMLTemplate(template.Must(template.ParseFS(assets, "templates/*.html")))

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))
	r.Static("/images", "./images")

	r.Use(visitorTrackingMiddleware(s.tracker, s.logger))

	r.GET("/", s.index)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ai := r.Group("/ai")
	{
		ai.POST("/:action", s.triggerAction)
		ai.GET("/:action", s.actionState)
		ai.DELETE("/:action", s.resetAction)
	}
	return r, nil
}

// Home page route
func (s *server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"profile":      s.profile,
		"showCounter":  s.tracker.Enabled(),
		"visitorCount": s.tracker.Count(c.Request.Context()),
		"year":         time.Now().Year(),
	})
}

// triggerAction starts an AI action and answers with its fragment. A
// busy trigger is ignored and the current phase rendered instead. The
// client's rate limit is checked before a session is created.
func (s *server) triggerAction(c *gin.Context) {
	action, ok := findAction(c.Param("action"))
	if !ok {
		c.String(http.StatusNotFound, "unknown action")
		return
	}

	if sess, ok := s.existingSession(c); ok {
		if ctrl, ok := sess.Controller(action.Name); ok && ctrl.Snapshot().Phase == lifecycle.Pending {
			s.rejected(c, action, ctrl.Snapshot(), "busy")
			return
		}
	}

	if !s.sessions.Allow(c.ClientIP()) {
		metrics.RejectedTriggers.WithLabelValues(action.Name, "rate_limited").Inc()
		s.logger.Warn("ai trigger rate limited",
			"action", action.Name,
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(requestIDKey))
		c.HTML(http.StatusTooManyRequests, "ai.html", failedView(action))
		return
	}

	sess := s.visitorSession(c)
	if sess == nil {
		c.HTML(http.StatusInternalServerError, "ai.html", failedView(action))
		return
	}
	ctrl, ok := sess.Controller(action.Name)
	if !ok {
		c.String(http.StatusNotFound, "unknown action")
		return
	}

	err := s.sessions.Trigger(sess, action.Name, c.PostForm("jobDescription"))
	switch {
	case errors.Is(err, lifecycle.ErrBusy):
		s.rejected(c, action, ctrl.Snapshot(), "busy")
		return
	case errors.Is(err, session.ErrExpired):
		s.logger.Warn("ai trigger on expired session",
			"action", action.Name,
			"session_id", sess.ID,
			"request_id", c.GetString(requestIDKey))
		c.HTML(http.StatusOK, "ai.html", failedView(action))
		return
	case err != nil:
		s.logger.Error("failed to trigger ai action",
			"action", action.Name,
			"request_id", c.GetString(requestIDKey),
			"error", err)
	}
	c.HTML(http.StatusOK, "ai.html", newActionView(action, ctrl.Snapshot()))
}

func (s *server) rejected(c *gin.Context, action aiAction, snap lifecycle.Snapshot, reason string) {
	metrics.RejectedTriggers.WithLabelValues(action.Name, reason).Inc()
	c.HTML(http.StatusOK, "ai.html", newActionView(action, snap))
}

func failedView(action aiAction) actionView {
	return newActionView(action, lifecycle.Snapshot{Phase: lifecycle.Failed, Message: action.Failure})
}

// actionState is polled by the page while an action is pending. Visitors
// without a session see the idle fragment.
func (s *server) actionState(c *gin.Context) {
	action, ctrl, ok := s.lookup(c)
	if !ok {
		return
	}
	var snap lifecycle.Snapshot
	if ctrl != nil {
		snap = ctrl.Snapshot()
	}
	c.HTML(http.StatusOK, "ai.html", newActionView(action, snap))
}

// resetAction runs when the visitor dismisses a dialog.
func (s *server) resetAction(c *gin.Context) {
	action, ctrl, ok := s.lookup(c)
	if !ok {
		return
	}
	var snap lifecycle.Snapshot
	if ctrl != nil {
		ctrl.Reset()
		snap = ctrl.Snapshot()
	}
	c.HTML(http.StatusOK, "ai.html", newActionView(action, snap))
}

// lookup resolves the action and, if the visitor has a live session, its
// controller. It never creates a session.
func (s *server) lookup(c *gin.Context) (aiAction, *lifecycle.Controller, bool) {
	action, ok := findAction(c.Param("action"))
	if !ok {
		c.String(http.StatusNotFound, "unknown action")
		return aiAction{}, nil, false
	}
	sess, ok := s.existingSession(c)
	if !ok {
		return action, nil, true
	}
	ctrl, _ := sess.Controller(action.Name)
	return action, ctrl, true
}

func (s *server) existingSession(c *gin.Context) (*session.Session, bool) {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		return nil, false
	}
	return s.sessions.Find(id)
}

// visitorSession returns the caller's session, issuing a cookie for new
// visitors.
func (s *server) visitorSession(c *gin.Context) *session.Session {
	id, _ := c.Cookie(sessionCookie)
	sess, err := s.sessions.Get(id)
	if err != nil {
		s.logger.Error("failed to create session", "request_id", c.GetString(requestIDKey), "error", err)
		return nil
	}
	if sess.ID != id {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sess.ID, int(s.cookieMaxAge.Seconds()), "/", "", false, true)
	}
	return sess
}
