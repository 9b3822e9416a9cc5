package routes

import (
	"classtrack_go/controllers"
	"classtrack_go/middleware"
	"classtrack_go/services"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes. The SMS sender, fee and
// messaging services are shared with the reminder scheduler and constructed
// by the caller.
func SetupRoutes(app *fiber.App, smsSender services.SmsSender, feeService *services.FeeService, messagingService *services.MessagingService) {
	instituteService := services.NewInstituteService()
	studentService := services.NewStudentService()
	attendanceService := services.NewAttendanceService(smsSender)
	sessionService := services.NewSessionService()
	importService := services.NewImportService()

	// Controllers
	authController := &controllers.AuthController{}
	healthController := &controllers.HealthController{}
	instituteController := controllers.NewInstituteController(instituteService)
	studentController := controllers.NewStudentController(studentService)
	importController := controllers.NewStudentImportController(importService)
	attendanceController := controllers.NewAttendanceController(attendanceService)
	sessionController := controllers.NewSessionController(sessionService)
	feeController := controllers.NewFeeController(feeService)
	messagingController := controllers.NewMessagingController(messagingService)

	api := app.Group("/api")

	// Kiosk endpoints (no authentication, the kiosk device is trusted)
	api.Post("/attendance/mark", attendanceController.MarkAttendance)
	api.Post("/attendance/mark-by-index", attendanceController.MarkAttendanceByIndex)

	// Authentication
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Get("/profile", middleware.JWTMiddleware(), authController.GetProfile)
	auth.Put("/password", middleware.JWTMiddleware(), authController.ChangePassword)
	auth.Post("/logout", middleware.JWTMiddleware(), authController.Logout)

	// Everything under /api/admin requires a valid JWT
	admin := api.Group("/admin", middleware.JWTMiddleware())

	// Attendance reporting and sessions
	admin.Get("/attendance/report", attendanceController.GetAttendanceReport)
	sessions := admin.Group("/attendance/sessions")
	sessions.Post("/", sessionController.CreateSession)
	sessions.Get("/", sessionController.GetActiveSessions)
	sessions.Get("/today", sessionController.GetTodaysActiveSessions)
	sessions.Get("/:id", sessionController.GetSession)
	sessions.Put("/:id/deactivate", sessionController.DeactivateSession)

	// Batches and subjects. Deleting either is destructive enough to be
	// restricted to super admins.
	institute := admin.Group("/institute")
	institute.Post("/batches", instituteController.CreateBatch)
	institute.Get("/batches", instituteController.GetBatches)
	institute.Put("/batches/:id", instituteController.UpdateBatch)
	institute.Delete("/batches/:id", middleware.RequireSuperAdmin(), instituteController.DeleteBatch)
	institute.Post("/subjects", instituteController.CreateSubject)
	institute.Get("/subjects", instituteController.GetSubjects)
	institute.Put("/subjects/:id", instituteController.UpdateSubject)
	institute.Delete("/subjects/:id", middleware.RequireSuperAdmin(), instituteController.DeleteSubject)

	// Students
	students := admin.Group("/students")
	students.Post("/", studentController.CreateStudent)
	students.Get("/", studentController.GetStudents)
	students.Get("/next-student-id", studentController.GetNextStudentID)
	students.Post("/import-csv", importController.ImportStudents)
	students.Get("/csv-template", importController.DownloadCsvTemplate)
	students.Get("/excel-template", importController.DownloadExcelTemplate)
	students.Get("/:id", studentController.GetStudent)
	students.Put("/:id", studentController.UpdateStudent)
	students.Patch("/:id/deactivate", studentController.DeactivateStudent)
	students.Delete("/:id", middleware.RequireSuperAdmin(), studentController.DeleteStudent)

	// Fees
	fees := admin.Group("/fees")
	fees.Post("/", feeController.CreateFeeRecord)
	fees.Put("/:id/payment", feeController.UpdatePayment)
	fees.Get("/student/:studentId", feeController.GetFeesForStudent)

	// Messaging
	messaging := admin.Group("/messaging")
	messaging.Post("/broadcast", messagingController.SendBroadcast)
	messaging.Post("/fee-reminders", messagingController.SendFeeReminders)

	// Health check with dependency probes
	app.Get("/health", healthController.Check)
}
