package courseValidator

import (
	"edusetu/middleware"
	"edusetu/models"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.InstitutionID == 0 {
			errors["institution_id"] = "Institution ID is required!"
		}
		if strings.TrimSpace(reqData.CourseName) == "" {
			errors["course_name"] = "Course name is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Duration < 1 {
			errors["duration"] = "Duration must be at least 1 day!"
		}

		startDate, err := time.Parse("2006-01-02", reqData.StartDate)
		if err != nil {
			errors["start_date"] = "Start date must be in YYYY-MM-DD format!"
		}
		endDate, err := time.Parse("2006-01-02", reqData.EndDate)
		if err != nil {
			errors["end_date"] = "End date must be in YYYY-MM-DD format!"
		} else if !startDate.IsZero() && endDate.Before(startDate) {
			errors["end_date"] = "End date must be after start date!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		c.Locals("courseStartDate", startDate)
		c.Locals("courseEndDate", endDate)
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}

func MarkAttendance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID  uint   `json:"course_id"`
			StudentID uint   `json:"student_id"`
			Date      string `json:"date"`
			Status    string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		if reqData.StudentID == 0 {
			errors["student_id"] = "Student ID is required!"
		}
		if reqData.Status != models.AttendancePresent && reqData.Status != models.AttendanceAbsent {
			errors["status"] = "Status must be \"present\" or \"absent\"!"
		}

		date, err := time.Parse("2006-01-02", reqData.Date)
		if err != nil {
			errors["date"] = "Date must be in YYYY-MM-DD format!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAttendance", reqData)
		c.Locals("attendanceDate", date)
		return c.Next()
	}
}

func SubmitFeedback() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		for field, rating := range map[string]int{
			"rating":                   reqData.Rating,
			"content_quality":          reqData.ContentQuality,
			"instructor_effectiveness": reqData.InstructorEffectiveness,
			"course_structure":         reqData.CourseStructure,
			"overall_satisfaction":     reqData.OverallSatisfaction,
		} {
			if rating < 1 || rating > 5 {
				errors[field] = "Rating must be between 1 and 5!"
			}
		}
		if reqData.WouldRecommend == nil {
			errors["would_recommend"] = "Recommendation is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFeedback", reqData)
		return c.Next()
	}
}
