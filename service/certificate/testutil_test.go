package certificate

import (
	"edusetu/models"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Node{},
		&models.Institution{},
		&models.Course{},
		&models.Enrollment{},
		&models.Attendance{},
		&models.Feedback{},
		&models.Certificate{},
		&models.CertificateSequence{},
	))
	return db
}

type stubRenderer struct {
	url   string
	fail  bool
	calls int
}

func (r *stubRenderer) Render(studentName, courseName string, startDate, endDate time.Time) (string, error) {
	r.calls++
	if r.fail {
		return "", errors.New("rendering backend unavailable")
	}
	return r.url, nil
}

type stubMailer struct {
	sent []string // codes
}

func (m *stubMailer) SendIssued(email, studentName, courseName, code, url string) error {
	m.sent = append(m.sent, code)
	return nil
}

// fixture wires a complete approval chain: a node headed by an officer, an
// institution assigned to it, a course and the four acting users.
type fixture struct {
	db       *gorm.DB
	svc      *Service
	renderer *stubRenderer
	mailer   *stubMailer

	student   models.User
	officer   models.User
	admin     models.User
	authority models.User

	node        models.Node
	institution models.Institution
	course      models.Course
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		db:       newTestDB(t),
		renderer: &stubRenderer{url: "/certificates/test.html"},
		mailer:   &stubMailer{},
	}
	f.svc = NewService(f.db, f.renderer, f.mailer)

	f.student = f.createUser(t, "Asha Verma", "asha@example.com", models.RoleStudent)
	f.officer = f.createUser(t, "R K Sharma", "rksharma@example.com", models.RoleNodalOfficer)
	f.admin = f.createUser(t, "Meena Gupta", "meena@example.com", models.RoleAdmin)
	f.authority = f.createUser(t, "GSP Desk", "gsp@example.com", models.RoleGspAuthority)

	f.node = models.Node{NodeName: "North Zone", StateName: "Punjab", NodalOfficerID: f.officer.ID}
	require.NoError(t, f.db.Create(&f.node).Error)

	f.institution = models.Institution{
		Name:             "Guru Nanak Skill Centre",
		City:             "Chandigarh",
		State:            "Punjab",
		Status:           "active",
		AssignedNodeID:   &f.node.ID,
		RegistrationDate: time.Now(),
	}
	require.NoError(t, f.db.Create(&f.institution).Error)

	f.course = f.createCourse(t, "Welding Fundamentals")

	return f
}

func (f *fixture) createUser(t *testing.T, name, email, role string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Role: role, Password: "x"}
	require.NoError(t, f.db.Create(&user).Error)
	return user
}

func (f *fixture) createCourse(t *testing.T, name string) models.Course {
	t.Helper()
	course := models.Course{
		InstitutionID: f.institution.ID,
		CourseName:    name,
		Title:         name,
		Duration:      30,
		StartDate:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC),
		Status:        models.CourseInProgress,
		CreatedBy:     f.admin.ID,
	}
	require.NoError(t, f.db.Create(&course).Error)
	return course
}

func (f *fixture) enroll(t *testing.T, student models.User, course models.Course) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.Enrollment{
		StudentID: student.ID,
		CourseID:  course.ID,
		Status:    "ENROLLED",
	}).Error)
}

func (f *fixture) submitFeedback(t *testing.T, student models.User, course models.Course) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.Feedback{
		StudentID:      student.ID,
		CourseID:       course.ID,
		InstitutionID:  f.institution.ID,
		Rating:         4,
		WouldRecommend: true,
		SubmissionDate: time.Now(),
	}).Error)
}

// markAttendance records presentDays present and absentDays absent records
// for the student on consecutive dates.
func (f *fixture) markAttendance(t *testing.T, student models.User, course models.Course, presentDays, absentDays int) {
	t.Helper()
	day := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	for i := 0; i < presentDays+absentDays; i++ {
		status := models.AttendancePresent
		if i >= presentDays {
			status = models.AttendanceAbsent
		}
		require.NoError(t, f.db.Create(&models.Attendance{
			CourseID:  course.ID,
			StudentID: student.ID,
			Date:      day.AddDate(0, 0, i),
			Status:    status,
			MarkedBy:  f.admin.ID,
		}).Error)
	}
}

// makeEligible sets up enrollment, feedback and 4/5 attendance for the
// fixture's student and course.
func (f *fixture) makeEligible(t *testing.T) {
	t.Helper()
	f.enroll(t, f.student, f.course)
	f.submitFeedback(t, f.student, f.course)
	f.markAttendance(t, f.student, f.course, 4, 1)
}

// requested creates an eligible certificate request and returns it.
func (f *fixture) requested(t *testing.T) *models.Certificate {
	t.Helper()
	f.makeEligible(t)
	cert, err := f.svc.Request(&f.student, f.course.ID)
	require.NoError(t, err)
	return cert
}

// gspApproved walks a requested certificate through verify, institution sign
// and GSP approval.
func (f *fixture) gspApproved(t *testing.T) *models.Certificate {
	t.Helper()
	cert := f.requested(t)

	cert, err := f.svc.Verify(&f.officer, cert.ID, ActionApprove)
	require.NoError(t, err)
	cert, err = f.svc.InstitutionSign(&f.admin, cert.ID, "sig-institution")
	require.NoError(t, err)
	cert, err = f.svc.GspApprove(&f.authority, cert.ID, "sig-gsp")
	require.NoError(t, err)
	return cert
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	var cerr *Error
	require.True(t, errors.As(err, &cerr), fmt.Sprintf("expected certificate.Error, got %v", err))
	require.Equal(t, kind, cerr.Kind)
	return cerr
}
