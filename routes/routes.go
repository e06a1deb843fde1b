package routes

import (
	"student_admin_backend/handlers"
	"student_admin_backend/middleware"
	"student_admin_backend/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, repo *repository.Repository, tokens handlers.TokenIssuer, db handlers.Pinger, jwtSecret []byte, logger *zap.Logger) {
	handlers.RegisterValidators()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(repo.Admins, tokens, logger)
	dashboardHandler := handlers.NewDashboardHandler(repo.Students, repo.Attendance, repo.Payments, logger)
	studentHandler := handlers.NewStudentHandler(repo.Students, repo.Attendance, repo.Payments, logger)
	attendanceHandler := handlers.NewAttendanceHandler(repo.Students, repo.Attendance, logger)
	paymentHandler := handlers.NewPaymentHandler(repo.Payments, logger)

	// Public routes
	r.GET("/health", healthHandler.HealthCheck)

	api := r.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtSecret, logger))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)
		protected.GET("/dashboard/summary", dashboardHandler.Summary)

		// Student routes
		protected.GET("/students/", studentHandler.GetStudents)
		protected.GET("/students/:id", studentHandler.GetStudent)
		protected.POST("/students/add", studentHandler.CreateStudent)
		protected.PUT("/students/update/:id", studentHandler.UpdateStudent)
		protected.DELETE("/students/delete/:id", studentHandler.DeleteStudent)

		// Attendance routes
		protected.GET("/attendance/date/:date", attendanceHandler.GetByDate)
		protected.POST("/attendance/mark-bulk", attendanceHandler.MarkBulk)
		protected.GET("/attendance/records", attendanceHandler.GetRecords)
		protected.GET("/attendance/report", attendanceHandler.GetReport)
		protected.GET("/attendance/report/export", attendanceHandler.ExportReport)

		// Payment routes
		protected.GET("/payments/all", paymentHandler.GetPayments)
		protected.GET("/payments/stats", paymentHandler.GetStatistics)
		protected.GET("/payments/student/:id", paymentHandler.GetStudentPayments)
		protected.POST("/payments/add", paymentHandler.CreatePayment)
		protected.DELETE("/payments/delete/:id", paymentHandler.DeletePayment)
	}
}
