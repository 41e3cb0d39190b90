package certificate

import (
	"edusetu/models"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^SSRGSP/[A-Z]{3}/[A-Z]{3}/\d{2}/\d{2}/01/\d{4}$`)

func TestHappyPathToIssued(t *testing.T) {
	f := newFixture(t)
	cert := f.requested(t)

	cert, err := f.svc.Verify(&f.officer, cert.ID, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, models.CertVerified, cert.Status)
	require.NotNil(t, cert.VerifiedDate)
	require.NotNil(t, cert.VerifiedBy)
	assert.Equal(t, f.officer.ID, *cert.VerifiedBy)

	cert, err = f.svc.InstitutionSign(&f.admin, cert.ID, "sig1")
	require.NoError(t, err)
	assert.Equal(t, models.CertInstitutionSigned, cert.Status)
	require.NotNil(t, cert.InstitutionSignedDate)
	assert.Equal(t, "sig1", cert.InstitutionSignature)

	cert, err = f.svc.GspApprove(&f.authority, cert.ID, "sig2")
	require.NoError(t, err)
	assert.Equal(t, models.CertGspApproved, cert.Status)
	require.NotNil(t, cert.GspApprovedDate)
	require.NotNil(t, cert.GspApprovedBy)
	assert.Equal(t, f.authority.ID, *cert.GspApprovedBy)
	assert.Equal(t, "sig2", cert.GspSignature)
	assert.Nil(t, cert.IssuedDate)

	cert, err = f.svc.Issue(&f.officer, cert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CertIssued, cert.Status)
	require.NotNil(t, cert.UniqueHash)
	assert.Regexp(t, codePattern, *cert.UniqueHash)
	assert.Equal(t, "/certificates/test.html", cert.CertificateURL)
	require.NotNil(t, cert.IssuedDate)
	assert.Zero(t, cert.DownloadCount)

	// issuance notified the student with the allocated code
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, *cert.UniqueHash, f.mailer.sent[0])
}

func TestVerifyRequiresNodalOfficer(t *testing.T) {
	f := newFixture(t)
	cert := f.requested(t)

	_, err := f.svc.Verify(&f.admin, cert.ID, ActionApprove)
	requireKind(t, err, KindForbidden)
}

func TestVerifyOutsideJurisdiction(t *testing.T) {
	f := newFixture(t)
	cert := f.requested(t)

	// an officer heading no node has no jurisdiction over the course
	stranger := f.createUser(t, "S K Bose", "skbose@example.com", models.RoleNodalOfficer)
	_, err := f.svc.Verify(&stranger, cert.ID, ActionApprove)
	requireKind(t, err, KindForbidden)
}

func TestVerifyUnknownCertificate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Verify(&f.officer, 9999, ActionApprove)
	requireKind(t, err, KindNotFound)
}

func TestRejectionCycle(t *testing.T) {
	f := newFixture(t)
	cert := f.requested(t)

	cert, err := f.svc.Verify(&f.officer, cert.ID, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, models.CertVerified, cert.Status)

	cert, err = f.svc.Verify(&f.officer, cert.ID, ActionReject)
	require.NoError(t, err)
	assert.Equal(t, models.CertRequested, cert.Status)

	// re-approval succeeds after the reset
	cert, err = f.svc.Verify(&f.officer, cert.ID, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, models.CertVerified, cert.Status)
}

func TestInstitutionSignOutOfOrder(t *testing.T) {
	f := newFixture(t)
	cert := f.requested(t)

	_, err := f.svc.InstitutionSign(&f.admin, cert.ID, "sig1")
	cerr := requireKind(t, err, KindInvalidState)
	assert.Equal(t, models.CertVerified, cerr.RequiredStatus)
	assert.Contains(t, cerr.Message, models.CertVerified)
}

func TestInstitutionSignRequiresSignature(t *testing.T) {
	f := newFixture(t)
	cert := f.requested(t)
	_, err := f.svc.Verify(&f.officer, cert.ID, ActionApprove)
	require.NoError(t, err)

	_, err = f.svc.InstitutionSign(&f.admin, cert.ID, "   ")
	requireKind(t, err, KindSignatureRequired)
}

func TestGspApproveRequiresSignature(t *testing.T) {
	f := newFixture(t)
	cert := f.requested(t)
	_, err := f.svc.Verify(&f.officer, cert.ID, ActionApprove)
	require.NoError(t, err)
	_, err = f.svc.InstitutionSign(&f.admin, cert.ID, "sig1")
	require.NoError(t, err)

	_, err = f.svc.GspApprove(&f.authority, cert.ID, "")
	requireKind(t, err, KindSignatureRequired)
}

func TestGspApproveOutOfOrder(t *testing.T) {
	f := newFixture(t)
	cert := f.requested(t)

	_, err := f.svc.GspApprove(&f.authority, cert.ID, "sig2")
	cerr := requireKind(t, err, KindInvalidState)
	assert.Equal(t, models.CertInstitutionSigned, cerr.RequiredStatus)
}

func TestIssueRequiresGspApproved(t *testing.T) {
	f := newFixture(t)
	cert := f.requested(t)

	_, err := f.svc.Issue(&f.officer, cert.ID)
	cerr := requireKind(t, err, KindInvalidState)
	assert.Equal(t, models.CertGspApproved, cerr.RequiredStatus)
}

func TestIssueWrongRole(t *testing.T) {
	f := newFixture(t)
	cert := f.gspApproved(t)

	_, err := f.svc.Issue(&f.student, cert.ID)
	requireKind(t, err, KindForbidden)
}

func TestIssueArtifactFailureLeavesStatus(t *testing.T) {
	f := newFixture(t)
	cert := f.gspApproved(t)

	f.renderer.fail = true
	_, err := f.svc.Issue(&f.officer, cert.ID)
	cerr := requireKind(t, err, KindArtifactFailed)
	assert.True(t, cerr.Retryable)

	var reloaded models.Certificate
	require.NoError(t, f.db.First(&reloaded, cert.ID).Error)
	assert.Equal(t, models.CertGspApproved, reloaded.Status)
	assert.Nil(t, reloaded.UniqueHash)
	assert.Nil(t, reloaded.IssuedDate)

	// retry succeeds once rendering recovers
	f.renderer.fail = false
	issued, err := f.svc.Issue(&f.officer, cert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CertIssued, issued.Status)
}

func TestIssuedCodesAreSequential(t *testing.T) {
	f := newFixture(t)

	first := f.gspApproved(t)
	first, err := f.svc.Issue(&f.officer, first.ID)
	require.NoError(t, err)

	second := f.createUser(t, "Vikram Singh", "vikram@example.com", models.RoleStudent)
	f.enroll(t, second, f.course)
	f.submitFeedback(t, second, f.course)
	f.markAttendance(t, second, f.course, 5, 0)

	cert, err := f.svc.Request(&second, f.course.ID)
	require.NoError(t, err)
	cert, err = f.svc.Verify(&f.officer, cert.ID, ActionApprove)
	require.NoError(t, err)
	cert, err = f.svc.InstitutionSign(&f.admin, cert.ID, "sig1")
	require.NoError(t, err)
	cert, err = f.svc.GspApprove(&f.authority, cert.ID, "sig2")
	require.NoError(t, err)
	cert, err = f.svc.Issue(&f.authority, cert.ID)
	require.NoError(t, err)

	require.NotNil(t, first.UniqueHash)
	require.NotNil(t, cert.UniqueHash)
	assert.NotEqual(t, *first.UniqueHash, *cert.UniqueHash)

	firstFields, err := DecomposeCode(*first.UniqueHash)
	require.NoError(t, err)
	secondFields, err := DecomposeCode(*cert.UniqueHash)
	require.NoError(t, err)
	assert.Equal(t, "0001", firstFields.CertificateNumber)
	assert.Equal(t, "0002", secondFields.CertificateNumber)
}

func TestIssueIsNotRepeatable(t *testing.T) {
	f := newFixture(t)
	cert := f.gspApproved(t)

	issued, err := f.svc.Issue(&f.officer, cert.ID)
	require.NoError(t, err)

	_, err = f.svc.Issue(&f.officer, cert.ID)
	cerr := requireKind(t, err, KindInvalidState)
	assert.Equal(t, models.CertGspApproved, cerr.RequiredStatus)

	// the original hash survived untouched
	var reloaded models.Certificate
	require.NoError(t, f.db.First(&reloaded, cert.ID).Error)
	require.NotNil(t, reloaded.UniqueHash)
	assert.Equal(t, *issued.UniqueHash, *reloaded.UniqueHash)
}
