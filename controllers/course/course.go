package controllers

import (
	"edusetu/database"
	"edusetu/middleware"
	"edusetu/models"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateCourse creates a course under an institution (institution admin)
func CreateCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		InstitutionID uint    `json:"institution_id"`
		CourseName    string  `json:"course_name"`
		Title         string  `json:"title"`
		Description   string  `json:"description"`
		Duration      int64   `json:"duration"`
		StartDate     string  `json:"start_date"`
		EndDate       string  `json:"end_date"`
		TrainerName   string  `json:"trainer_name"`
		TrainerEmail  string  `json:"trainer_email"`
		CourseTiming  string  `json:"course_timing"`
		CourseFee     float64 `json:"course_fee"`
		IsGspCourse   bool    `json:"is_gsp_course"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	startDate := c.Locals("courseStartDate").(time.Time)
	endDate := c.Locals("courseEndDate").(time.Time)

	var institution models.Institution
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.InstitutionID, false).First(&institution).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Institution not found!", nil)
	}

	course := models.Course{
		InstitutionID: reqData.InstitutionID,
		CourseName:    reqData.CourseName,
		Title:         reqData.Title,
		Description:   reqData.Description,
		Duration:      reqData.Duration,
		StartDate:     startDate,
		EndDate:       endDate,
		TrainerName:   reqData.TrainerName,
		TrainerEmail:  reqData.TrainerEmail,
		CourseTiming:  reqData.CourseTiming,
		CourseFee:     reqData.CourseFee,
		IsGspCourse:   reqData.IsGspCourse,
		Status:        models.CourseCreated,
		CreatedBy:     user.ID,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// ApproveCourse approves a created course (nodal officer)
func ApproveCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	now := time.Now()
	res := database.Database.Db.Model(&models.Course{}).
		Where("id = ? AND status = ?", courseID, models.CourseCreated).
		Updates(map[string]interface{}{
			"status":        models.CourseApproved,
			"approval_date": now,
			"approved_by":   user.ID,
		})
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve course!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course must be in CREATED status to approve!", nil)
	}

	database.Database.Db.Where("id = ?", courseID).First(&course)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course approved successfully!", course)
}

// GetAllCourses lists courses visible to everyone
func GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// EnrollInCourse enrolls the current student into a course
func EnrollInCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing models.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND student_id = ? AND is_deleted = ?", courseID, user.ID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	enrollment := models.Enrollment{
		StudentID: user.ID,
		CourseID:  courseID,
		Status:    "ENROLLED",
	}
	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

// MarkAttendance records one student's attendance for a course date
func MarkAttendance(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAttendance").(*struct {
		CourseID  uint   `json:"course_id"`
		StudentID uint   `json:"student_id"`
		Date      string `json:"date"`
		Status    string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	date := c.Locals("attendanceDate").(time.Time)

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND student_id = ? AND is_deleted = ?",
		reqData.CourseID, reqData.StudentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Student is not enrolled in this course!", nil)
	}

	attendance := models.Attendance{
		CourseID:  reqData.CourseID,
		StudentID: reqData.StudentID,
		Date:      date,
		Status:    reqData.Status,
		MarkedBy:  user.ID,
	}
	if err := database.Database.Db.Create(&attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Attendance already marked for this date!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark attendance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attendance marked successfully!", attendance)
}

// SubmitFeedback records the current student's course feedback
func SubmitFeedback(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedFeedback").(*struct {
		CourseID                uint   `json:"course_id"`
		Rating                  int    `json:"rating"`
		ContentQuality          int    `json:"content_quality"`
		InstructorEffectiveness int    `json:"instructor_effectiveness"`
		CourseStructure         int    `json:"course_structure"`
		OverallSatisfaction     int    `json:"overall_satisfaction"`
		Comments                string `json:"comments"`
		Suggestions             string `json:"suggestions"`
		WouldRecommend          *bool  `json:"would_recommend"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND student_id = ? AND is_deleted = ?",
		reqData.CourseID, user.ID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	feedback := models.Feedback{
		StudentID:               user.ID,
		CourseID:                reqData.CourseID,
		InstitutionID:           course.InstitutionID,
		Rating:                  reqData.Rating,
		ContentQuality:          reqData.ContentQuality,
		InstructorEffectiveness: reqData.InstructorEffectiveness,
		CourseStructure:         reqData.CourseStructure,
		OverallSatisfaction:     reqData.OverallSatisfaction,
		Comments:                reqData.Comments,
		Suggestions:             reqData.Suggestions,
		WouldRecommend:          *reqData.WouldRecommend,
		SubmissionDate:          time.Now(),
	}
	if err := database.Database.Db.Create(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Feedback already submitted for this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit feedback!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Feedback submitted successfully!", feedback)
}
