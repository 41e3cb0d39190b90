package models

import "gorm.io/gorm"

type Enrollment struct {
	gorm.Model
	StudentID uint   `json:"student_id" gorm:"uniqueIndex:idx_enrollments_course_student;not null"`
	CourseID  uint   `json:"course_id" gorm:"uniqueIndex:idx_enrollments_course_student;not null"`
	Status    string `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, COMPLETED, DROPPED
	IsDeleted bool   `gorm:"default:false"`
}
