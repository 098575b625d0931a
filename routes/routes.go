package routes

import (
	"fixmate-backend/config"
	"fixmate-backend/controllers"
	"fixmate-backend/services"
	"fixmate-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	engine := services.NewLifecycleService(db)
	ratings := services.NewRatingService(db)
	notifier := services.NewNotificationService(db)

	requestController := controllers.NewServiceRequestController(engine)
	technicianController := controllers.NewTechnicianController(engine, ratings, notifier)

	auth := r.Group("/auth")
	{
		auth.POST("/check-email", controllers.CheckEmail)
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/technician/login", controllers.TechnicianLogin)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	customer := r.Group("/customer")
	customer.Use(utils.AuthMiddleware())
	{
		customer.GET("/profile/:customer_id", controllers.GetCustomerProfile)
		customer.PUT("/profile/:customer_id", controllers.UpdateCustomerProfile)
		customer.PUT("/address/:customer_id", controllers.UpdateCustomerAddress)
		customer.PUT("/phone/:customer_id", controllers.UpdateCustomerPhones)
		customer.POST("/verify-password", controllers.VerifyPassword)
		customer.PUT("/change-password/:customer_id", controllers.ChangePassword)
	}

	appliances := r.Group("/appliances")
	appliances.Use(utils.AuthMiddleware())
	{
		appliances.GET("/:customer_id", controllers.GetAppliances)
		appliances.POST("", controllers.AddAppliance)
	}

	serviceRequests := r.Group("/service-requests")
	serviceRequests.Use(utils.AuthMiddleware())
	{
		serviceRequests.POST("", requestController.Create)
		serviceRequests.GET("/:customer_id", requestController.List)
		serviceRequests.DELETE("/:request_id", requestController.Cancel)
		serviceRequests.PUT("/:request_id/rating", requestController.Rate)
	}

	technician := r.Group("/technician")
	technician.Use(utils.TechnicianAuthMiddleware())
	{
		technician.GET("/available-skills", technicianController.AvailableSkills)
		technician.GET("/:technician_id/requests", technicianController.Requests)
		technician.GET("/:technician_id/history", technicianController.History)
		technician.GET("/:technician_id/profile", technicianController.Profile)
		technician.PUT("/:technician_id/profile", technicianController.UpdateProfile)
		technician.POST("/:technician_id/skills", technicianController.AddSkill)
		technician.DELETE("/:technician_id/skills/:skill", technicianController.DeleteSkill)
		technician.PUT("/requests/:request_id/start", technicianController.Start)
		technician.POST("/requests/:request_id/finish", technicianController.Finish)
		technician.PUT("/invoices/:invoice_id/mark-paid", technicianController.MarkPaid)
	}

	return r
}
