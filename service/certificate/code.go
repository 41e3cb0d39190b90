package certificate

import (
	"edusetu/models"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CodePrefix is the fixed leading component of every certificate code.
const CodePrefix = "SSRGSP"

// batchNumber is a fixed literal until multi-batch courses exist.
const batchNumber = "01"

// CodeFields is the decoded form of a certificate code.
type CodeFields struct {
	Prefix            string `json:"prefix"`
	CourseType        string `json:"courseType"`
	Location          string `json:"location"`
	Year              string `json:"year"` // expanded to 4 digits
	Month             string `json:"month"`
	BatchNo           string `json:"batchNo"`
	CertificateNumber string `json:"certificateNumber"`
}

// codeComponent takes the first three characters upper-cased, right-padding
// with X so decomposed codes always split into fixed-width fields.
func codeComponent(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) >= 3 {
		return s[:3]
	}
	return s + strings.Repeat("X", 3-len(s))
}

// ComposeCode builds the certificate code
// SSRGSP/{courseType}/{location}/{yy}/{mm}/{batch}/{nnnn} from the course,
// its institution and the allocated sequence number.
func ComposeCode(course *models.Course, institution *models.Institution, sequenceNumber int) (string, error) {
	if course == nil || institution == nil {
		return "", missingContext()
	}

	courseType := codeComponent(course.CourseName)
	location := codeComponent(institution.City)
	year := course.StartDate.Format("06")
	month := course.StartDate.Format("01")

	return fmt.Sprintf("%s/%s/%s/%s/%s/%s/%04d",
		CodePrefix, courseType, location, year, month, batchNumber, sequenceNumber), nil
}

// DecomposeCode splits a certificate code back into its structural fields,
// expanding the 2-digit year to 4 digits.
func DecomposeCode(code string) (*CodeFields, error) {
	parts := strings.Split(code, "/")
	if len(parts) != 7 {
		return nil, malformedCode(code)
	}

	return &CodeFields{
		Prefix:            parts[0],
		CourseType:        parts[1],
		Location:          parts[2],
		Year:              "20" + parts[3],
		Month:             parts[4],
		BatchNo:           parts[5],
		CertificateNumber: parts[6],
	}, nil
}

// nextSequenceNumber allocates the next certificate number for the prefix by
// incrementing the counter row inside the caller's transaction. The UPDATE
// holds a row lock until the transaction commits, so concurrent issues
// serialise here instead of racing over a scan of existing hashes.
func nextSequenceNumber(tx *gorm.DB, prefix string) (int, error) {
	res := tx.Model(&models.CertificateSequence{}).
		Where("prefix = ?", prefix).
		UpdateColumn("last_number", gorm.Expr("last_number + 1"))
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		// First issue for this prefix. If a concurrent transaction created
		// the row first, the unique index on prefix rejects this create;
		// surface that as the retryable duplicate kind so the issue retry
		// re-runs against the committed counter.
		seq := models.CertificateSequence{Prefix: prefix, LastNumber: 1}
		if err := tx.Create(&seq).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return 0, duplicateSequence(prefix)
			}
			return 0, err
		}
		return 1, nil
	}

	var seq models.CertificateSequence
	if err := tx.Where("prefix = ?", prefix).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.LastNumber, nil
}
