package models

import "time"

// Attendance marks one student present in one session. The composite
// unique index on (session_id, student_id) is what makes duplicate
// submissions safe under concurrency: the second insert fails at the
// database, not in application code.
type Attendance struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SessionID   uint      `json:"sessionID" gorm:"uniqueIndex:idx_session_student;not null"`
	StudentID   string    `json:"studentID" gorm:"uniqueIndex:idx_session_student;size:50;not null"`
	StudentName string    `json:"studentName" gorm:"size:100;not null"`
	MarkedAt    time.Time `json:"markedAt"`
}
