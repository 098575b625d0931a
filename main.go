package main

import (
	"fmt"
	"log"
	"os"

	"fixmate-backend/config"
	"fixmate-backend/models"
	"fixmate-backend/routes"
	"fixmate-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Customer{},
		&models.PhoneNumber{},
		&models.Appliance{},
		&models.ServiceCenter{},
		&models.Technician{},
		&models.Skill{},
		&models.ServiceRequest{},
		&models.Invoice{},
	)
}

func main() {
	notifier := services.NewNotificationService(config.DB)
	reminders := services.NewReminderService(config.DB, notifier)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter(config.DB)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
