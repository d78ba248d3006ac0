package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/philipobiorah/attendance-app/models"
	"github.com/philipobiorah/attendance-app/sessions"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestApp(t *testing.T) (*App, *fakeClock) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Session{}, &models.Attendance{}))

	clk := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	manager := sessions.NewManager(db)
	manager.Now = clk.Now
	recorder := sessions.NewRecorder(db)
	recorder.Now = clk.Now

	return &App{Sessions: manager, Recorder: recorder}, clk
}

func do(router *gin.Engine, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func submission(id, name string) url.Values {
	return url.Values{"student_id": {id}, "student_name": {name}}
}

func TestCreateSession_RedirectsToDetailPage(t *testing.T) {
	app, _ := newTestApp(t)
	router := app.Router()

	w := do(router, http.MethodPost, "/", url.Values{
		"course_name":      {"CS101"},
		"duration_minutes": {"45"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/session/"))

	w = do(router, http.MethodGet, location, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CS101")
}

// The full teacher/student round trip: create a one-minute session,
// mark one student, let it expire, watch a late student get turned
// away, and read the roster back as JSON.
func TestAttendanceFlow(t *testing.T) {
	app, clk := newTestApp(t)
	router := app.Router()

	w := do(router, http.MethodPost, "/", url.Values{
		"course_name":      {"CS101"},
		"duration_minutes": {"1"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	code := strings.TrimPrefix(w.Header().Get("Location"), "/session/")
	require.NotEmpty(t, code)

	w = do(router, http.MethodPost, "/attend/"+code, submission("S1", "Alice"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recorded successfully")

	clk.Advance(61 * time.Second)

	w = do(router, http.MethodPost, "/attend/"+code, submission("S2", "Bob"))
	assert.Equal(t, http.StatusGone, w.Code)

	w = do(router, http.MethodGet, "/session/"+code+"/attendance.json", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp rosterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, code, resp.SessionCode)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "S1", resp.Records[0].StudentID)
	assert.Equal(t, "Alice", resp.Records[0].StudentName)
}

func TestAttend_DuplicateSubmission(t *testing.T) {
	app, _ := newTestApp(t)
	router := app.Router()
	sess, err := app.Sessions.Create("CS101", time.Hour)
	require.NoError(t, err)

	w := do(router, http.MethodPost, "/attend/"+sess.PermanentCode, submission("S1", "Alice"))
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPost, "/attend/"+sess.PermanentCode, submission("S1", "Alice"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already recorded")

	records, err := app.Recorder.List(sess)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttend_BlankStudentIDRedirectsBack(t *testing.T) {
	app, _ := newTestApp(t)
	router := app.Router()
	sess, err := app.Sessions.Create("CS101", time.Hour)
	require.NoError(t, err)

	w := do(router, http.MethodPost, "/attend/"+sess.PermanentCode, submission("   ", "Bob"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=")

	records, err := app.Recorder.List(sess)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAttend_ExpiredFormIsGone(t *testing.T) {
	app, clk := newTestApp(t)
	router := app.Router()
	sess, err := app.Sessions.Create("CS101", time.Minute)
	require.NoError(t, err)

	clk.Advance(61 * time.Second)

	w := do(router, http.MethodGet, "/attend/"+sess.PermanentCode, nil)
	assert.Equal(t, http.StatusGone, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestSessionQR_RotatesAndSetsHeader(t *testing.T) {
	app, clk := newTestApp(t)
	router := app.Router()
	sess, err := app.Sessions.Create("CS101", time.Hour)
	require.NoError(t, err)

	w := do(router, http.MethodGet, "/session/"+sess.PermanentCode+"/qr", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, sess.PermanentCode, w.Header().Get("X-Session-Code"))
	assert.Equal(t, "\x89PNG\r\n\x1a\n", w.Body.String()[:8])

	// within the window the code must hold steady
	clk.Advance(30 * time.Second)
	w = do(router, http.MethodGet, "/session/"+sess.PermanentCode+"/qr", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sess.PermanentCode, w.Header().Get("X-Session-Code"))

	clk.Advance(31 * time.Second)
	w = do(router, http.MethodGet, "/session/"+sess.PermanentCode+"/qr", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rotated := w.Header().Get("X-Session-Code")
	require.NotEmpty(t, rotated)
	assert.NotEqual(t, sess.PermanentCode, rotated)

	// the rotating code is a valid student-facing address
	w = do(router, http.MethodGet, "/attend/"+rotated, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoster_AcceptsEitherCode(t *testing.T) {
	app, clk := newTestApp(t)
	router := app.Router()
	sess, err := app.Sessions.Create("CS101", time.Hour)
	require.NoError(t, err)

	clk.Advance(61 * time.Second)
	rotated, err := app.Sessions.MaybeRotate(sess)
	require.NoError(t, err)
	require.NotEqual(t, sess.PermanentCode, rotated)

	for _, code := range []string{sess.PermanentCode, rotated} {
		w := do(router, http.MethodGet, "/session/"+code+"/attendance.json", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp rosterResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, sess.PermanentCode, resp.SessionCode)
	}
}

func TestUnknownCode_Is404Everywhere(t *testing.T) {
	app, _ := newTestApp(t)
	router := app.Router()

	paths := []string{
		"/session/no-such-code",
		"/session/no-such-code/qr",
		"/attend/no-such-code",
		"/session/no-such-code/attendance",
		"/session/no-such-code/attendance.json",
	}
	for _, path := range paths {
		w := do(router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}
