package certificateRoutes

import (
	controllers "edusetu/controllers/certificate"
	"edusetu/middleware"
	"edusetu/models"
	validators "edusetu/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up the certificate lifecycle routes
func SetupCertificateRoutes(app *fiber.App, handler *controllers.Handler) {
	certGroup := app.Group("/certificate")

	certGroup.Post("/request", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.RequestCertificate(), handler.RequestCertificate)
	certGroup.Post("/verify", middleware.JWTMiddleware, middleware.RequireRole(models.RoleNodalOfficer), validators.VerifyCertificate(), handler.VerifyCertificate)
	certGroup.Post("/institution-sign", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), validators.InstitutionSign(), handler.InstitutionSign)
	certGroup.Post("/gsp-approve", middleware.JWTMiddleware, middleware.RequireRole(models.RoleGspAuthority), validators.GspApprove(), handler.GspApprove)
	certGroup.Post("/issue", middleware.JWTMiddleware, middleware.RequireRole(models.RoleNodalOfficer, models.RoleAdmin, models.RoleGspAuthority), validators.IssueCertificate(), handler.IssueCertificate)

	certGroup.Get("/", middleware.JWTMiddleware, middleware.RequireRole(), validators.ListCertificates(), handler.ListCertificates)
	certGroup.Get("/search", middleware.JWTMiddleware, middleware.RequireRole(), validators.SearchByCode(), handler.SearchByCode)
	certGroup.Get("/download/:certificate_id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.DownloadCertificate(), handler.DownloadCertificate)
}
