package utils

import (
	"edusetu/database"
	"edusetu/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[COURSE-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// processCourseStarts flips APPROVED courses whose start date has arrived to
// IN_PROGRESS.
func processCourseStarts() {
	db := database.Database.Db
	now := time.Now()

	res := db.Model(&models.Course{}).
		Where("status = ? AND start_date <= ? AND is_deleted = ?", models.CourseApproved, now, false).
		Update("status", models.CourseInProgress)
	if res.Error != nil {
		logScheduler("Error starting courses: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler("Marked courses IN_PROGRESS")
	}
}

// processCourseCompletions flips IN_PROGRESS courses past their end date to
// COMPLETED and stamps the completion date.
func processCourseCompletions() {
	db := database.Database.Db
	now := time.Now()

	res := db.Model(&models.Course{}).
		Where("status = ? AND end_date < ? AND is_deleted = ?", models.CourseInProgress, now, false).
		Updates(map[string]interface{}{
			"status":          models.CourseCompleted,
			"completion_date": now,
		})
	if res.Error != nil {
		logScheduler("Error completing courses: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler("Marked courses COMPLETED")
	}
}

// InitializeCourseScheduler starts the daily course lifecycle jobs.
func InitializeCourseScheduler() *cron.Cron {
	logScheduler("Initializing course scheduler...")

	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*60*60+30*60)
	}

	c := cron.New(cron.WithLocation(loc))

	// shortly past midnight, matching the reference schedule
	c.AddFunc("5 0 * * *", processCourseStarts)
	c.AddFunc("5 0 * * *", processCourseCompletions)

	c.Start()

	logScheduler("Course scheduler initialized successfully")
	return c
}
