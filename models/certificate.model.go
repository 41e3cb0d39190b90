package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate statuses form a strict linear progression; the only backward
// edge is verified -> requested on rejection.
const (
	CertRequested         = "requested"
	CertVerified          = "verified"
	CertInstitutionSigned = "institution_signed"
	CertGspApproved       = "gsp_approved"
	CertIssued            = "issued"
)

type Certificate struct {
	gorm.Model
	CourseID              uint       `json:"course_id" gorm:"uniqueIndex:idx_certificates_course_student;not null"`
	StudentID             uint       `json:"student_id" gorm:"uniqueIndex:idx_certificates_course_student;not null"`
	Status                string     `json:"status" gorm:"default:'requested'"`
	RequestedDate         time.Time  `json:"requested_date"`
	VerifiedDate          *time.Time `json:"verified_date"`
	VerifiedBy            *uint      `json:"verified_by"`
	InstitutionSignedDate *time.Time `json:"institution_signed_date"`
	InstitutionSignature  string     `json:"institution_signature"`
	GspApprovedDate       *time.Time `json:"gsp_approved_date"`
	GspApprovedBy         *uint      `json:"gsp_approved_by"`
	GspSignature          string     `json:"gsp_signature"`
	IssuedDate            *time.Time `json:"issued_date"`
	CertificateURL        string     `json:"certificate_url"`
	UniqueHash            *string    `json:"unique_hash" gorm:"uniqueIndex"` // SSRGSP code, set once at issue
	DownloadCount         int        `json:"download_count" gorm:"default:0"`
	IsDeleted             bool       `gorm:"default:false"`
}

// CertificateSequence is the atomic counter behind certificate numbering,
// one row per code prefix. Incrementing it inside the issue transaction
// serialises number allocation.
type CertificateSequence struct {
	gorm.Model
	Prefix     string `json:"prefix" gorm:"uniqueIndex;not null"`
	LastNumber int    `json:"last_number" gorm:"default:0"`
}
