package certificate

import (
	"edusetu/models"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Verify actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Every forward transition is applied as a single UPDATE conditioned on the
// expected prior status; zero rows affected means another request got there
// first or the certificate never reached that status, and both cases report
// InvalidState naming the required status.

// Verify moves a requested certificate to verified (approve) or resets a
// requested/verified one back to requested (reject). Only the nodal officer
// whose node covers the course's institution may act.
func (s *Service) Verify(actor *models.User, certificateID uint, action string) (*models.Certificate, error) {
	if actor.Role != models.RoleNodalOfficer {
		return nil, forbidden("only nodal officers can verify certificates")
	}

	cert, err := s.getCertificate(certificateID)
	if err != nil {
		return nil, err
	}

	var course models.Course
	if err := s.db.Where("id = ?", cert.CourseID).First(&course).Error; err != nil {
		return nil, err
	}
	ok, err := s.hasJurisdiction(actor, &course)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, forbidden("certificate not in your jurisdiction")
	}

	switch action {
	case ActionApprove:
		now := time.Now()
		res := s.db.Model(&models.Certificate{}).
			Where("id = ? AND status = ?", certificateID, models.CertRequested).
			Updates(map[string]interface{}{
				"status":        models.CertVerified,
				"verified_date": now,
				"verified_by":   actor.ID,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, invalidState(models.CertRequested)
		}
	case ActionReject:
		// Reset for resubmission; nothing is stamped.
		res := s.db.Model(&models.Certificate{}).
			Where("id = ? AND status IN ?", certificateID, []string{models.CertRequested, models.CertVerified}).
			Update("status", models.CertRequested)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, invalidState(models.CertRequested + " or " + models.CertVerified)
		}
	default:
		return nil, fmt.Errorf("invalid verify action %q", action)
	}

	return s.getCertificate(certificateID)
}

// InstitutionSign attaches the institution admin's signature to a verified
// certificate.
func (s *Service) InstitutionSign(actor *models.User, certificateID uint, signature string) (*models.Certificate, error) {
	if actor.Role != models.RoleAdmin {
		return nil, forbidden("only institution admins can sign certificates")
	}
	if strings.TrimSpace(signature) == "" {
		return nil, signatureRequired("institution")
	}

	if _, err := s.getCertificate(certificateID); err != nil {
		return nil, err
	}

	res := s.db.Model(&models.Certificate{}).
		Where("id = ? AND status = ?", certificateID, models.CertVerified).
		Updates(map[string]interface{}{
			"status":                  models.CertInstitutionSigned,
			"institution_signed_date": time.Now(),
			"institution_signature":   signature,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, invalidState(models.CertVerified)
	}

	return s.getCertificate(certificateID)
}

// GspApprove attaches the regulatory authority's signature to an
// institution-signed certificate.
func (s *Service) GspApprove(actor *models.User, certificateID uint, signature string) (*models.Certificate, error) {
	if actor.Role != models.RoleGspAuthority {
		return nil, forbidden("only GSP authority can approve certificates")
	}
	if strings.TrimSpace(signature) == "" {
		return nil, signatureRequired("GSP")
	}

	if _, err := s.getCertificate(certificateID); err != nil {
		return nil, err
	}

	res := s.db.Model(&models.Certificate{}).
		Where("id = ? AND status = ?", certificateID, models.CertInstitutionSigned).
		Updates(map[string]interface{}{
			"status":            models.CertGspApproved,
			"gsp_approved_date": time.Now(),
			"gsp_approved_by":   actor.ID,
			"gsp_signature":     signature,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, invalidState(models.CertInstitutionSigned)
	}

	return s.getCertificate(certificateID)
}

// Issue finalises a GSP-approved certificate: renders the artifact, then in
// one transaction allocates the next sequence number, composes the code and
// commits status, code, URL and issue date together. The artifact is
// produced first so a rendering failure leaves the status untouched. A
// unique-hash collision (the storage backstop behind the counter) is retried
// once before surfacing as DuplicateCode.
func (s *Service) Issue(actor *models.User, certificateID uint) (*models.Certificate, error) {
	switch actor.Role {
	case models.RoleNodalOfficer, models.RoleAdmin, models.RoleGspAuthority:
	default:
		return nil, forbidden("insufficient permissions to issue certificates")
	}

	cert, err := s.getCertificate(certificateID)
	if err != nil {
		return nil, err
	}
	if cert.Status != models.CertGspApproved {
		return nil, invalidState(models.CertGspApproved)
	}

	var course models.Course
	if err := s.db.Where("id = ?", cert.CourseID).First(&course).Error; err != nil {
		return nil, err
	}
	var institution models.Institution
	err = s.db.Where("id = ?", course.InstitutionID).First(&institution).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, missingContext()
	}
	if err != nil {
		return nil, err
	}
	var student models.User
	if err := s.db.Where("id = ?", cert.StudentID).First(&student).Error; err != nil {
		return nil, err
	}

	url, err := s.artifacts.Render(student.Name, course.CourseName, course.StartDate, course.EndDate)
	if err != nil {
		return nil, artifactFailed(err)
	}

	var code string
	issueOnce := func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			seq, err := nextSequenceNumber(tx, CodePrefix)
			if err != nil {
				return err
			}
			code, err = ComposeCode(&course, &institution, seq)
			if err != nil {
				return err
			}

			res := tx.Model(&models.Certificate{}).
				Where("id = ? AND status = ?", certificateID, models.CertGspApproved).
				Updates(map[string]interface{}{
					"status":          models.CertIssued,
					"issued_date":     time.Now(),
					"unique_hash":     code,
					"certificate_url": url,
				})
			if res.Error != nil {
				if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
					return duplicateCode(code)
				}
				return res.Error
			}
			if res.RowsAffected == 0 {
				return invalidState(models.CertGspApproved)
			}
			return nil
		})
	}

	err = issueOnce()
	var cerr *Error
	if errors.As(err, &cerr) && cerr.Kind == KindDuplicateCode {
		// one automatic retry of the code-generation step
		err = issueOnce()
	}
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendIssued(student.Email, student.Name, course.CourseName, code, url); err != nil {
			log.Printf("certificate %d issued but notification failed: %v", certificateID, err)
		}
	}

	return s.getCertificate(certificateID)
}
