package models

import (
	"time"

	"gorm.io/gorm"
)

// Feedback is one submission per student per course; a prerequisite for
// requesting a certificate.
type Feedback struct {
	gorm.Model
	StudentID               uint      `json:"student_id" gorm:"uniqueIndex:idx_feedback_student_course;not null"`
	CourseID                uint      `json:"course_id" gorm:"uniqueIndex:idx_feedback_student_course;not null"`
	InstitutionID           uint      `json:"institution_id" gorm:"index;not null"`
	Rating                  int       `json:"rating" gorm:"not null"`
	ContentQuality          int       `json:"content_quality"`
	InstructorEffectiveness int       `json:"instructor_effectiveness"`
	CourseStructure         int       `json:"course_structure"`
	OverallSatisfaction     int       `json:"overall_satisfaction"`
	Comments                string    `json:"comments"`
	Suggestions             string    `json:"suggestions"`
	WouldRecommend          bool      `json:"would_recommend"`
	SubmissionDate          time.Time `json:"submission_date"`
}
