package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// Attendance is one record per student per course per date.
type Attendance struct {
	gorm.Model
	CourseID  uint      `json:"course_id" gorm:"uniqueIndex:idx_attendance_course_student_date;not null"`
	StudentID uint      `json:"student_id" gorm:"uniqueIndex:idx_attendance_course_student_date;not null"`
	Date      time.Time `json:"date" gorm:"uniqueIndex:idx_attendance_course_student_date;not null"`
	Status    string    `json:"status" gorm:"not null"` // present, absent
	MarkedBy  uint      `json:"marked_by" gorm:"not null"`
}
