package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/philipobiorah/attendance-app/models"
)

type rosterRecord struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	MarkedAt    string `json:"marked_at"`
}

type rosterResponse struct {
	SessionCode string         `json:"session_code"`
	Records     []rosterRecord `json:"records"`
}

// AttendanceList renders the HTML roster. Either code form resolves.
func (a *App) AttendanceList(c *gin.Context) {
	sess, records, ok := a.loadRoster(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "attendance_list.html", gin.H{
		"Session": sess,
		"Records": records,
	})
}

// AttendanceJSON serves the roster for polling clients that refresh
// the list without a page reload.
func (a *App) AttendanceJSON(c *gin.Context) {
	sess, records, ok := a.loadRoster(c)
	if !ok {
		return
	}

	resp := rosterResponse{
		SessionCode: sess.PermanentCode,
		Records:     make([]rosterRecord, 0, len(records)),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, rosterRecord{
			StudentID:   rec.StudentID,
			StudentName: rec.StudentName,
			MarkedAt:    rec.MarkedAt.UTC().Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (a *App) loadRoster(c *gin.Context) (*models.Session, []models.Attendance, bool) {
	sess, err := a.Sessions.ByAnyCode(c.Param("code"))
	if err != nil {
		if notFound(c, err) {
			return nil, nil, false
		}
		log.Printf("failed to load session: %v", err)
		c.String(http.StatusInternalServerError, "Could not load the session.")
		return nil, nil, false
	}

	records, err := a.Recorder.List(sess)
	if err != nil {
		log.Printf("failed to list attendance: %v", err)
		c.String(http.StatusInternalServerError, "Could not load the attendance list.")
		return nil, nil, false
	}
	return sess, records, true
}
