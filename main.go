package main

import (
	"edusetu/config"
	certControllers "edusetu/controllers/certificate"
	"edusetu/database"
	authRoutes "edusetu/routers/authRoutes"
	certificateRoutes "edusetu/routers/certificateRoutes"
	courseRoutes "edusetu/routers/courseRoutes"
	"edusetu/service/certificate"
	"edusetu/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files (issued certificate artifacts live here)
	app.Static("/", "./public")

	renderer := utils.NewCertificateRenderer(config.AppConfig.CertificateDir, config.AppConfig.ArtifactStoreURL)
	certService := certificate.NewService(database.Database.Db, renderer, utils.IssuedMailer{})
	certHandler := certControllers.NewHandler(certService)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app, certHandler)

	utils.InitializeCourseScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
