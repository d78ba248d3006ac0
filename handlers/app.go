package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/philipobiorah/attendance-app/sessions"
	"github.com/philipobiorah/attendance-app/templates"
)

// App bundles what the handlers need. It is built once in main; there
// is no package-level state.
type App struct {
	Sessions *sessions.Manager
	Recorder *sessions.Recorder
	// BaseURL overrides the request host when building the attend URL
	// encoded into QR images. Needed behind a reverse proxy.
	BaseURL string
}

func (a *App) Router() *gin.Engine {
	router := gin.Default()
	router.SetHTMLTemplate(template.Must(template.New("").ParseFS(templates.FS, "*.html")))

	router.GET("/", a.ShowCreateForm)
	router.POST("/", a.CreateSession)
	router.GET("/session/:code", a.ShowSession)
	router.GET("/session/:code/qr", a.SessionQR)
	router.GET("/attend/:code", a.ShowAttendForm)
	router.POST("/attend/:code", a.SubmitAttendance)
	router.GET("/session/:code/attendance", a.AttendanceList)
	router.GET("/session/:code/attendance.json", a.AttendanceJSON)

	return router
}

// attendURL builds the absolute student-facing URL for a code. QR
// images encode this exact string.
func (a *App) attendURL(c *gin.Context, code string) string {
	base := a.BaseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return base + "/attend/" + code
}

// notFound writes the 404 for an unknown session code.
func notFound(c *gin.Context, err error) bool {
	if errors.Is(err, sessions.ErrNotFound) {
		c.String(http.StatusNotFound, "Unknown session code.")
		return true
	}
	return false
}
