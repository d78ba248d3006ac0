package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/philipobiorah/attendance-app/sessions"
)

const expiredMessage = "This attendance link has expired."

// attendForm is what the student submits after scanning.
type attendForm struct {
	StudentID   string `form:"student_id"`
	StudentName string `form:"student_name"`
}

func (a *App) ShowAttendForm(c *gin.Context) {
	sess, err := a.Sessions.ByAnyCode(c.Param("code"))
	if err != nil {
		if notFound(c, err) {
			return
		}
		log.Printf("failed to load session: %v", err)
		c.String(http.StatusInternalServerError, "Could not load the session.")
		return
	}

	if a.Sessions.Expired(sess) {
		c.String(http.StatusGone, expiredMessage)
		return
	}

	c.HTML(http.StatusOK, "attend.html", gin.H{
		"Session": sess,
		"Code":    c.Param("code"),
		"Error":   c.Query("error"),
	})
}

// SubmitAttendance records a student's presence. Validation failures
// bounce back to the form with a message; a duplicate submission is a
// success from the student's point of view, just phrased differently.
func (a *App) SubmitAttendance(c *gin.Context) {
	sess, err := a.Sessions.ByAnyCode(c.Param("code"))
	if err != nil {
		if notFound(c, err) {
			return
		}
		log.Printf("failed to load session: %v", err)
		c.String(http.StatusInternalServerError, "Could not load the session.")
		return
	}

	var form attendForm
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("failed to bind attendance form: %v", err)
	}

	outcome, err := a.Recorder.Record(sess, form.StudentID, form.StudentName)
	switch {
	case errors.Is(err, sessions.ErrExpired):
		c.String(http.StatusGone, expiredMessage)
	case errors.Is(err, sessions.ErrEmptyStudentID), errors.Is(err, sessions.ErrEmptyStudentName):
		c.Redirect(http.StatusSeeOther, c.Request.URL.Path+"?error="+url.QueryEscape(err.Error()))
	case err != nil:
		log.Printf("failed to record attendance: %v", err)
		c.String(http.StatusInternalServerError, "Could not record your attendance.")
	case outcome == sessions.AlreadyRecorded:
		c.String(http.StatusOK, "Your attendance is already recorded for this session.")
	default:
		c.String(http.StatusOK, "Attendance recorded successfully. You can close this page.")
	}
}
