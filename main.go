package main

import (
	"skillforge/config"
	"skillforge/database"
	authRoutes "skillforge/routers/authRoutes"
	catalogRoutes "skillforge/routers/catalogRoutes"
	certificateRoutes "skillforge/routers/certificateRoutes"
	enrollmentRoutes "skillforge/routers/enrollmentRoutes"
	progressRoutes "skillforge/routers/progressRoutes"
	rewardRoutes "skillforge/routers/rewardRoutes"
	"skillforge/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	catalogRoutes.SetupCatalogRoutes(app)
	catalogRoutes.SetupAdminCatalogRoutes(app)
	progressRoutes.SetupProgressRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	rewardRoutes.SetupRewardRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)

	// Daily streak reminder job
	utils.StartStreakScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
