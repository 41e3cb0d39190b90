package certificate

import (
	"edusetu/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

// minimum attendance percentage required to request a certificate
const attendanceThreshold = 80.0

// AttendancePercentage computes the student's coverage for a course: their
// present records over the count of distinct dates on which any attendance
// was taken. No recorded sessions counts as 0%.
func (s *Service) AttendancePercentage(courseID, studentID uint) (float64, error) {
	var totalSessions int64
	err := s.db.Model(&models.Attendance{}).
		Where("course_id = ?", courseID).
		Distinct("date").
		Count(&totalSessions).Error
	if err != nil {
		return 0, err
	}
	if totalSessions == 0 {
		return 0, nil
	}

	var presentCount int64
	err = s.db.Model(&models.Attendance{}).
		Where("course_id = ? AND student_id = ? AND status = ?", courseID, studentID, models.AttendancePresent).
		Count(&presentCount).Error
	if err != nil {
		return 0, err
	}

	return float64(presentCount) / float64(totalSessions) * 100, nil
}

// Request checks a student's eligibility and creates their certificate in
// the requested state. Preconditions, all required: student role, active
// enrollment, no existing certificate for the pair, submitted feedback and
// at least 80% attendance.
func (s *Service) Request(actor *models.User, courseID uint) (*models.Certificate, error) {
	if actor.Role != models.RoleStudent {
		return nil, forbidden("only students can request certificates")
	}

	var course models.Course
	err := s.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("course")
	}
	if err != nil {
		return nil, err
	}

	var enrollment models.Enrollment
	err = s.db.Where("course_id = ? AND student_id = ? AND is_deleted = ?", courseID, actor.ID, false).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, forbidden("student is not enrolled in this course")
	}
	if err != nil {
		return nil, err
	}

	var existing models.Certificate
	err = s.db.Where("course_id = ? AND student_id = ?", courseID, actor.ID).First(&existing).Error
	if err == nil {
		return nil, duplicateRequest()
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var feedback models.Feedback
	err = s.db.Where("course_id = ? AND student_id = ?", courseID, actor.ID).First(&feedback).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, feedbackRequired()
	}
	if err != nil {
		return nil, err
	}

	pct, err := s.AttendancePercentage(courseID, actor.ID)
	if err != nil {
		return nil, err
	}
	if pct < attendanceThreshold {
		return nil, insufficientAttendance(pct)
	}

	cert := models.Certificate{
		CourseID:      courseID,
		StudentID:     actor.ID,
		Status:        models.CertRequested,
		RequestedDate: time.Now(),
		// issued_date stays NULL until the issue transition
	}
	if err := s.db.Create(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a concurrent request for the same pair
			return nil, duplicateRequest()
		}
		return nil, err
	}

	return &cert, nil
}
