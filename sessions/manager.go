package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/philipobiorah/attendance-app/models"
)

// DefaultRotateEvery bounds how long a photographed QR code stays valid.
const DefaultRotateEvery = 60 * time.Second

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// Manager owns the session lifecycle: creation, lookup by either code,
// and lazy rotation of the current QR code. Time is injected so tests
// can drive rotation and expiry deterministically.
type Manager struct {
	DB          *gorm.DB
	Now         func() time.Time
	RotateEvery time.Duration
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		DB:          db,
		Now:         time.Now,
		RotateEvery: DefaultRotateEvery,
	}
}

// Create stores a new session expiring duration from now. The permanent
// and current codes start out equal. A zero or negative duration is
// accepted and yields a session that is already expired.
func (m *Manager) Create(courseName string, duration time.Duration) (*models.Session, error) {
	now := m.Now()
	code := uuid.NewString()
	sess := &models.Session{
		PermanentCode:  code,
		CurrentCode:    code,
		CourseName:     courseName,
		CreatedAt:      now,
		ExpiresAt:      now.Add(duration),
		LastRotationAt: now,
	}
	if err := m.DB.Create(sess).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (m *Manager) ByPermanentCode(code string) (*models.Session, error) {
	var sess models.Session
	err := m.DB.Where("permanent_code = ?", code).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up session: %w", err)
	}
	return &sess, nil
}

// ByAnyCode resolves a session from either its permanent code or its
// current rotating code. Student-facing and roster URLs go through
// here, so a link captured under either form keeps working.
func (m *Manager) ByAnyCode(code string) (*models.Session, error) {
	sess, err := m.ByPermanentCode(code)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	var s models.Session
	err = m.DB.Where("current_code = ?", code).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up session: %w", err)
	}
	return &s, nil
}

// MaybeRotate swaps in a fresh current code once RotateEvery has elapsed
// since the last rotation, and returns the code now in effect. Rotation
// only advances when something polls the QR endpoint; a session nobody
// is displaying keeps its old code, which nobody can scan anyway.
func (m *Manager) MaybeRotate(sess *models.Session) (string, error) {
	now := m.Now()
	if now.Sub(sess.LastRotationAt) < m.RotateEvery {
		return sess.CurrentCode, nil
	}

	sess.CurrentCode = uuid.NewString()
	sess.LastRotationAt = now
	err := m.DB.Model(sess).Updates(map[string]any{
		"current_code":     sess.CurrentCode,
		"last_rotation_at": sess.LastRotationAt,
	}).Error
	if err != nil {
		return "", fmt.Errorf("rotate session %d: %w", sess.ID, err)
	}
	return sess.CurrentCode, nil
}

func (m *Manager) Expired(sess *models.Session) bool {
	return m.Now().After(sess.ExpiresAt)
}
