package certificateValidator

import (
	"edusetu/middleware"
	"edusetu/service/certificate"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func RequestCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint `json:"course_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		c.Locals("courseID", reqData.CourseID)
		return c.Next()
	}
}

func VerifyCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CertificateID uint   `json:"certificate_id"`
			Action        string `json:"action"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CertificateID == 0 {
			errors["certificate_id"] = "Certificate ID is required!"
		}
		if reqData.Action != certificate.ActionApprove && reqData.Action != certificate.ActionReject {
			errors["action"] = "Action must be \"approve\" or \"reject\"!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("certificateID", reqData.CertificateID)
		c.Locals("action", reqData.Action)
		return c.Next()
	}
}

func InstitutionSign() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CertificateID        uint   `json:"certificate_id"`
			InstitutionSignature string `json:"institution_signature"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CertificateID == 0 {
			errors["certificate_id"] = "Certificate ID is required!"
		}
		if strings.TrimSpace(reqData.InstitutionSignature) == "" {
			errors["institution_signature"] = "Institution signature is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("certificateID", reqData.CertificateID)
		c.Locals("signature", reqData.InstitutionSignature)
		return c.Next()
	}
}

func GspApprove() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CertificateID uint   `json:"certificate_id"`
			GspSignature  string `json:"gsp_signature"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CertificateID == 0 {
			errors["certificate_id"] = "Certificate ID is required!"
		}
		if strings.TrimSpace(reqData.GspSignature) == "" {
			errors["gsp_signature"] = "GSP signature is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("certificateID", reqData.CertificateID)
		c.Locals("signature", reqData.GspSignature)
		return c.Next()
	}
}

func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CertificateID uint `json:"certificate_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CertificateID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate ID is required!", nil)
		}

		c.Locals("certificateID", reqData.CertificateID)
		return c.Next()
	}
}

func ListCertificates() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status    string `query:"status"`
			CourseID  uint   `query:"course_id"`
			StudentID uint   `query:"student_id"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("listFilters", certificate.ListFilters{
			Status:    reqData.Status,
			CourseID:  reqData.CourseID,
			StudentID: reqData.StudentID,
		})
		return c.Next()
	}
}

func SearchByCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := strings.TrimSpace(c.Query("code"))
		if code == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate code is required!", nil)
		}

		c.Locals("certificateCode", code)
		return c.Next()
	}
}

func DownloadCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("certificate_id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Certificate ID!", nil)
		}

		c.Locals("certificateID", uint(id))
		return c.Next()
	}
}
