package sessions

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/philipobiorah/attendance-app/models"
)

// Outcome of a Record call. The zero value is not a valid outcome.
type Outcome int

const (
	// Recorded means a new attendance row was inserted.
	Recorded Outcome = iota + 1
	// AlreadyRecorded means this student was marked present earlier in
	// the same session. Resubmitting is harmless.
	AlreadyRecorded
)

var (
	ErrEmptyStudentID   = errors.New("please enter your student ID")
	ErrEmptyStudentName = errors.New("please enter your name")
)

// Recorder validates and persists attendance submissions.
type Recorder struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{DB: db, Now: time.Now}
}

// Record marks studentID present in sess. Expiry is checked before
// anything else; inputs are trimmed and must be non-empty. Duplicates
// are not pre-checked: the insert is attempted and the unique index on
// (session_id, student_id) decides, so two simultaneous submissions for
// the same student can never both insert.
func (r *Recorder) Record(sess *models.Session, studentID, studentName string) (Outcome, error) {
	if r.Now().After(sess.ExpiresAt) {
		return 0, ErrExpired
	}

	studentID = strings.TrimSpace(studentID)
	studentName = strings.TrimSpace(studentName)
	if studentID == "" {
		return 0, ErrEmptyStudentID
	}
	if studentName == "" {
		return 0, ErrEmptyStudentName
	}

	rec := models.Attendance{
		SessionID:   sess.ID,
		StudentID:   studentID,
		StudentName: studentName,
		MarkedAt:    r.Now(),
	}
	err := r.DB.Create(&rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return AlreadyRecorded, nil
	}
	if err != nil {
		return 0, fmt.Errorf("record attendance: %w", err)
	}
	return Recorded, nil
}

// List returns the roster for sess ordered by when students were
// marked, earliest first. ID breaks marked_at ties so the order is
// stable.
func (r *Recorder) List(sess *models.Session) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.DB.Where("session_id = ?", sess.ID).
		Order("marked_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}
