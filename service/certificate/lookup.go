package certificate

import (
	"edusetu/models"
	"errors"

	"gorm.io/gorm"
)

// PublicUser is the slice of a user attached to certificate views.
type PublicUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SearchResult is a certificate resolved by its code, with the decoded code
// fields and related records attached for display.
type SearchResult struct {
	CodeFields
	Certificate models.Certificate `json:"certificate"`
	Course      models.Course      `json:"course"`
	Institution models.Institution `json:"institution"`
	Student     PublicUser         `json:"student"`
}

// ListFilters narrows List. Zero values mean no filter; role-based
// restrictions are applied on top.
type ListFilters struct {
	Status    string
	CourseID  uint
	StudentID uint
}

// DownloadResult is the outcome of a download: the stored URL and the count
// after this download.
type DownloadResult struct {
	CertificateURL string `json:"certificate_url"`
	DownloadCount  int    `json:"download_count"`
}

// SearchByCode decodes the given code and resolves the certificate carrying
// it as unique hash.
func (s *Service) SearchByCode(code string) (*SearchResult, error) {
	fields, err := DecomposeCode(code)
	if err != nil {
		return nil, err
	}

	var cert models.Certificate
	err = s.db.Where("unique_hash = ? AND is_deleted = ?", code, false).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("certificate")
	}
	if err != nil {
		return nil, err
	}

	result := SearchResult{CodeFields: *fields, Certificate: cert}
	if err := s.db.Where("id = ?", cert.CourseID).First(&result.Course).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("id = ?", result.Course.InstitutionID).First(&result.Institution).Error; err != nil {
		return nil, err
	}
	var student models.User
	if err := s.db.Where("id = ?", cert.StudentID).First(&student).Error; err != nil {
		return nil, err
	}
	result.Student = PublicUser{ID: student.ID, Name: student.Name, Email: student.Email}

	return &result, nil
}

// List returns certificates visible to the actor: students see their own,
// nodal officers see those for courses under their node, other roles see
// whatever the filters select.
func (s *Service) List(actor *models.User, filters ListFilters) ([]models.Certificate, error) {
	query := s.db.Where("is_deleted = ?", false)

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.CourseID != 0 {
		query = query.Where("course_id = ?", filters.CourseID)
	}
	if filters.StudentID != 0 {
		query = query.Where("student_id = ?", filters.StudentID)
	}

	switch actor.Role {
	case models.RoleStudent:
		query = query.Where("student_id = ?", actor.ID)
	case models.RoleNodalOfficer:
		courseIDs, err := s.jurisdictionCourseIDs(actor)
		if err != nil {
			return nil, err
		}
		if len(courseIDs) == 0 {
			return []models.Certificate{}, nil
		}
		query = query.Where("course_id IN ?", courseIDs)
	}

	var certs []models.Certificate
	if err := query.Order("created_at desc").Find(&certs).Error; err != nil {
		return nil, err
	}
	return certs, nil
}

// Download returns the issued certificate's URL to its owning student and
// counts the download. The increment is a single conditional UPDATE so
// concurrent downloads each count exactly once.
func (s *Service) Download(actor *models.User, certificateID uint) (*DownloadResult, error) {
	if actor.Role != models.RoleStudent {
		return nil, forbidden("only students can download certificates")
	}

	cert, err := s.getCertificate(certificateID)
	if err != nil {
		return nil, err
	}
	if cert.StudentID != actor.ID {
		return nil, forbidden("access denied")
	}
	if cert.Status != models.CertIssued {
		return nil, invalidState(models.CertIssued)
	}

	res := s.db.Model(&models.Certificate{}).
		Where("id = ? AND status = ?", certificateID, models.CertIssued).
		UpdateColumn("download_count", gorm.Expr("download_count + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, invalidState(models.CertIssued)
	}

	cert, err = s.getCertificate(certificateID)
	if err != nil {
		return nil, err
	}
	return &DownloadResult{CertificateURL: cert.CertificateURL, DownloadCount: cert.DownloadCount}, nil
}
