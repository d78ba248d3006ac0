package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/philipobiorah/attendance-app/qr"
)

const defaultDurationMinutes = 15

func (a *App) ShowCreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "create_session.html", gin.H{
		"Error": c.Query("error"),
	})
}

// CreateSession handles the teacher's form post and redirects to the
// new session's detail page. A missing or non-numeric duration falls
// back to the default; a zero or negative one is taken at face value
// and produces an already-expired session.
func (a *App) CreateSession(c *gin.Context) {
	courseName := strings.TrimSpace(c.PostForm("course_name"))
	if courseName == "" {
		courseName = "Untitled class"
	}

	minutes, err := strconv.Atoi(c.PostForm("duration_minutes"))
	if err != nil {
		minutes = defaultDurationMinutes
	}

	sess, err := a.Sessions.Create(courseName, time.Duration(minutes)*time.Minute)
	if err != nil {
		log.Printf("failed to create session: %v", err)
		c.String(http.StatusInternalServerError, "Could not create the session.")
		return
	}

	c.Redirect(http.StatusSeeOther, "/session/"+sess.PermanentCode)
}

func (a *App) ShowSession(c *gin.Context) {
	sess, err := a.Sessions.ByPermanentCode(c.Param("code"))
	if err != nil {
		if notFound(c, err) {
			return
		}
		log.Printf("failed to load session: %v", err)
		c.String(http.StatusInternalServerError, "Could not load the session.")
		return
	}

	c.HTML(http.StatusOK, "session.html", gin.H{
		"Session":   sess,
		"AttendURL": a.attendURL(c, sess.CurrentCode),
	})
}

// SessionQR serves the rotating QR image. Each poll runs the rotation
// check, so the displayed code advances while the teacher's page is
// open. The code in effect is echoed in X-Session-Code so the polling
// page can notice a rotation without decoding the image.
func (a *App) SessionQR(c *gin.Context) {
	sess, err := a.Sessions.ByPermanentCode(c.Param("code"))
	if err != nil {
		if notFound(c, err) {
			return
		}
		log.Printf("failed to load session: %v", err)
		c.String(http.StatusInternalServerError, "Could not load the session.")
		return
	}

	code, err := a.Sessions.MaybeRotate(sess)
	if err != nil {
		log.Printf("failed to rotate session code: %v", err)
		c.String(http.StatusInternalServerError, "Could not refresh the QR code.")
		return
	}

	png, err := qr.Render(a.attendURL(c, code))
	if err != nil {
		log.Printf("failed to render QR code: %v", err)
		c.String(http.StatusInternalServerError, "Could not render the QR code.")
		return
	}

	c.Header("X-Session-Code", code)
	c.Data(http.StatusOK, "image/png", png)
}
