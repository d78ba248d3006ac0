package models

import "time"

// Session is one timed attendance-taking window for a course meeting.
//
// PermanentCode never changes and is what teacher-facing URLs use.
// CurrentCode is the short-lived code embedded in the QR image; it is
// swapped for a fresh one once the rotation window elapses, so a
// photographed QR code stops working shortly after it was taken.
type Session struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	PermanentCode  string    `json:"permanentCode" gorm:"uniqueIndex;size:64;not null"`
	CurrentCode    string    `json:"currentCode" gorm:"index;size:64;not null"`
	CourseName     string    `json:"courseName" gorm:"size:100;not null"`
	CreatedAt      time.Time `json:"createdAt"`
	ExpiresAt      time.Time `json:"expiresAt" gorm:"not null"`
	LastRotationAt time.Time `json:"lastRotationAt"`
}
