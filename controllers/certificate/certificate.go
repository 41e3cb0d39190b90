package controllers

import (
	"edusetu/middleware"
	"edusetu/service/certificate"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the certificate lifecycle service over HTTP.
type Handler struct {
	svc *certificate.Service
}

func NewHandler(svc *certificate.Service) *Handler {
	return &Handler{svc: svc}
}

// httpStatus maps a certificate error kind to a transport status code.
func httpStatus(kind certificate.Kind) int {
	switch kind {
	case certificate.KindNotFound:
		return fiber.StatusNotFound
	case certificate.KindForbidden:
		return fiber.StatusForbidden
	case certificate.KindArtifactFailed:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusBadRequest
	}
}

// respondError renders a service error, attaching kind-specific details.
func respondError(c *fiber.Ctx, err error) error {
	var cerr *certificate.Error
	if errors.As(err, &cerr) {
		var data interface{}
		switch cerr.Kind {
		case certificate.KindInsufficientAttendance:
			data = fiber.Map{"current_attendance": cerr.Percentage}
		case certificate.KindInvalidState:
			data = fiber.Map{"required_status": cerr.RequiredStatus}
		}
		return middleware.JsonResponse(c, httpStatus(cerr.Kind), false, cerr.Message, data)
	}
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}

// RequestCertificate lets a student request a certificate for a course
func (h *Handler) RequestCertificate(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	cert, err := h.svc.Request(user, courseID)
	if err != nil {
		return respondError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate request submitted successfully!", cert)
}

// VerifyCertificate approves or rejects a requested certificate (nodal officer)
func (h *Handler) VerifyCertificate(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificateID := c.Locals("certificateID").(uint)
	action := c.Locals("action").(string)

	cert, err := h.svc.Verify(user, certificateID, action)
	if err != nil {
		return respondError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate "+action+"d successfully!", cert)
}

// InstitutionSign signs a verified certificate (institution admin)
func (h *Handler) InstitutionSign(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificateID := c.Locals("certificateID").(uint)
	signature := c.Locals("signature").(string)

	cert, err := h.svc.InstitutionSign(user, certificateID, signature)
	if err != nil {
		return respondError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate signed by institution successfully!", cert)
}

// GspApprove approves an institution-signed certificate (GSP authority)
func (h *Handler) GspApprove(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificateID := c.Locals("certificateID").(uint)
	signature := c.Locals("signature").(string)

	cert, err := h.svc.GspApprove(user, certificateID, signature)
	if err != nil {
		return respondError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate approved by GSP Authority successfully!", cert)
}

// IssueCertificate finalises a GSP-approved certificate
func (h *Handler) IssueCertificate(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificateID := c.Locals("certificateID").(uint)

	cert, err := h.svc.Issue(user, certificateID)
	if err != nil {
		return respondError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued successfully!", cert)
}

// ListCertificates returns certificates visible to the current user
func (h *Handler) ListCertificates(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	filters := c.Locals("listFilters").(certificate.ListFilters)

	certs, err := h.svc.List(user, filters)
	if err != nil {
		return respondError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certs,
		"total":        len(certs),
	})
}

// SearchByCode resolves a certificate from its code
func (h *Handler) SearchByCode(c *fiber.Ctx) error {
	code := c.Locals("certificateCode").(string)

	result, err := h.svc.SearchByCode(code)
	if err != nil {
		return respondError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate found!", result)
}

// DownloadCertificate returns the certificate URL to its owning student
func (h *Handler) DownloadCertificate(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificateID := c.Locals("certificateID").(uint)

	result, err := h.svc.Download(user, certificateID)
	if err != nil {
		return respondError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate download initiated!", result)
}
