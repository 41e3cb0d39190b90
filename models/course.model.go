package models

import (
	"time"

	"gorm.io/gorm"
)

// Course statuses flipped by the approval flow and the lifecycle scheduler.
const (
	CourseCreated    = "CREATED"
	CourseApproved   = "APPROVED"
	CourseInProgress = "IN_PROGRESS"
	CourseCompleted  = "COMPLETED"
	CourseCancelled  = "CANCELLED"
)

type Course struct {
	gorm.Model
	InstitutionID  uint       `json:"institution_id" gorm:"index;not null"`
	CourseName     string     `json:"course_name" gorm:"not null"`
	Title          string     `json:"title" gorm:"not null"`
	Description    string     `json:"description"`
	Duration       int64      `json:"duration"` // days
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	TrainerName    string     `json:"trainer_name"`
	TrainerEmail   string     `json:"trainer_email"`
	CourseTiming   string     `json:"course_timing"`
	CourseFee      float64    `json:"course_fee" gorm:"default:0"`
	IsGspCourse    bool       `json:"is_gsp_course" gorm:"default:false"`
	Status         string     `json:"status" gorm:"default:'CREATED'"`
	ApprovalDate   *time.Time `json:"approval_date"`
	ApprovedBy     *uint      `json:"approved_by"`
	CompletionDate *time.Time `json:"completion_date"`
	CreatedBy      uint       `json:"created_by" gorm:"not null"`
	IsDeleted      bool       `gorm:"default:false"`
}
