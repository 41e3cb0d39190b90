package certificate

import (
	"edusetu/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ArtifactProducer renders the certificate document and returns its public
// URL. Rendering may be slow and may fail; the issue transition treats it as
// a remote call and only commits the issued status after it succeeds.
type ArtifactProducer interface {
	Render(studentName, courseName string, startDate, endDate time.Time) (string, error)
}

// Mailer notifies the student once their certificate is issued. Failures are
// logged by the caller and never block issuance.
type Mailer interface {
	SendIssued(email, studentName, courseName, code, url string) error
}

// Service owns the certificate lifecycle: eligibility checks, the approval
// state machine, code generation and lookups.
type Service struct {
	db        *gorm.DB
	artifacts ArtifactProducer
	mailer    Mailer // optional
}

func NewService(db *gorm.DB, artifacts ArtifactProducer, mailer Mailer) *Service {
	return &Service{db: db, artifacts: artifacts, mailer: mailer}
}

func (s *Service) getCertificate(id uint) (*models.Certificate, error) {
	var cert models.Certificate
	err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("certificate")
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// hasJurisdiction reports whether the nodal officer administers the node the
// course's institution is assigned to. This is the one canonical ownership
// path: course -> institution -> assigned node -> nodal officer.
func (s *Service) hasJurisdiction(officer *models.User, course *models.Course) (bool, error) {
	var inst models.Institution
	err := s.db.Where("id = ? AND is_deleted = ?", course.InstitutionID, false).First(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if inst.AssignedNodeID == nil {
		return false, nil
	}

	var node models.Node
	err = s.db.Where("id = ? AND is_deleted = ?", *inst.AssignedNodeID, false).First(&node).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return node.NodalOfficerID == officer.ID, nil
}

// jurisdictionCourseIDs returns the ids of all courses the officer may act
// on, via the same institution -> node derivation used by hasJurisdiction.
func (s *Service) jurisdictionCourseIDs(officer *models.User) ([]uint, error) {
	var nodeIDs []uint
	if err := s.db.Model(&models.Node{}).
		Where("nodal_officer_id = ? AND is_deleted = ?", officer.ID, false).
		Pluck("id", &nodeIDs).Error; err != nil {
		return nil, err
	}
	if len(nodeIDs) == 0 {
		return []uint{}, nil
	}

	var instIDs []uint
	if err := s.db.Model(&models.Institution{}).
		Where("assigned_node_id IN ? AND is_deleted = ?", nodeIDs, false).
		Pluck("id", &instIDs).Error; err != nil {
		return nil, err
	}
	if len(instIDs) == 0 {
		return []uint{}, nil
	}

	var courseIDs []uint
	if err := s.db.Model(&models.Course{}).
		Where("institution_id IN ? AND is_deleted = ?", instIDs, false).
		Pluck("id", &courseIDs).Error; err != nil {
		return nil, err
	}
	return courseIDs, nil
}
