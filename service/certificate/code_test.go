package certificate

import (
	"edusetu/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testCourse(name string, start time.Time) *models.Course {
	return &models.Course{CourseName: name, StartDate: start}
}

func TestComposeCode(t *testing.T) {
	course := testCourse("Welding Fundamentals", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	institution := &models.Institution{City: "Chandigarh"}

	code, err := ComposeCode(course, institution, 7)
	require.NoError(t, err)
	assert.Equal(t, "SSRGSP/WEL/CHA/24/03/01/0007", code)
}

func TestComposeCodePadsShortComponents(t *testing.T) {
	course := testCourse("AI", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	institution := &models.Institution{City: "Pu"}

	code, err := ComposeCode(course, institution, 1234)
	require.NoError(t, err)
	assert.Equal(t, "SSRGSP/AIX/PUX/25/11/01/1234", code)
}

func TestComposeCodeMissingContext(t *testing.T) {
	institution := &models.Institution{City: "Pune"}

	_, err := ComposeCode(nil, institution, 1)
	requireKind(t, err, KindMissingContext)

	_, err = ComposeCode(testCourse("Welding", time.Now()), nil, 1)
	requireKind(t, err, KindMissingContext)
}

func TestDecomposeCodeRoundTrip(t *testing.T) {
	course := testCourse("Plumbing Basics", time.Date(2023, 7, 2, 0, 0, 0, 0, time.UTC))
	institution := &models.Institution{City: "Amritsar"}

	code, err := ComposeCode(course, institution, 42)
	require.NoError(t, err)

	fields, err := DecomposeCode(code)
	require.NoError(t, err)
	assert.Equal(t, CodePrefix, fields.Prefix)
	assert.Equal(t, "PLU", fields.CourseType)
	assert.Equal(t, "AMR", fields.Location)
	assert.Equal(t, "2023", fields.Year)
	assert.Equal(t, "07", fields.Month)
	assert.Equal(t, "01", fields.BatchNo)
	assert.Equal(t, "0042", fields.CertificateNumber)
}

func TestDecomposeCodeMalformed(t *testing.T) {
	for _, code := range []string{
		"",
		"SSRGSP",
		"SSRGSP/WEL/CHA/24/03/01",
		"SSRGSP/WEL/CHA/24/03/01/0007/extra",
	} {
		_, err := DecomposeCode(code)
		requireKind(t, err, KindMalformedCode)
	}
}

func TestNextSequenceNumberMonotonic(t *testing.T) {
	db := newTestDB(t)

	var got []int
	for i := 0; i < 3; i++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			n, err := nextSequenceNumber(tx, CodePrefix)
			if err != nil {
				return err
			}
			got = append(got, n)
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestNextSequenceNumberBootstrapConflict(t *testing.T) {
	db := newTestDB(t)

	// A soft-deleted row is invisible to the increment but still occupies
	// the unique index, which is exactly what the loser of a concurrent
	// first allocation sees: zero rows updated, then a rejected create.
	seq := models.CertificateSequence{Prefix: CodePrefix, LastNumber: 3}
	require.NoError(t, db.Create(&seq).Error)
	require.NoError(t, db.Delete(&seq).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := nextSequenceNumber(tx, CodePrefix)
		return err
	})
	cerr := requireKind(t, err, KindDuplicateCode)
	assert.True(t, cerr.Retryable)
}

func TestNextSequenceNumberPerPrefix(t *testing.T) {
	db := newTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := nextSequenceNumber(tx, CodePrefix)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = nextSequenceNumber(tx, "OTHER")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		return nil
	})
	require.NoError(t, err)
}
