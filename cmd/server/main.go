package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"clinic-reservation-backend/internal/config"
	"clinic-reservation-backend/internal/database"
	"clinic-reservation-backend/internal/handler"
	"clinic-reservation-backend/internal/middleware"
	"clinic-reservation-backend/internal/repository"
	"clinic-reservation-backend/internal/schedule"
	"clinic-reservation-backend/internal/service"
	"clinic-reservation-backend/pkg/hashid"
	"clinic-reservation-backend/pkg/logger"
	"clinic-reservation-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()

	// 2. Initialize logger
	zlog := logger.New(cfg.Server.Env)
	defer zlog.Sync()
	zlog.Info("Configuration loaded")

	// 3. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 4. Initialize database connection and run migrations
	db := database.Connect(cfg)
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	zlog.Info("Database ready")

	// 5. Initialize id obfuscation codec
	ids, err := hashid.NewCodec(cfg.Hashids.Salt, cfg.Hashids.MinLength)
	if err != nil {
		log.Fatalf("Failed to initialize id codec: %v", err)
	}

	// 6. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	hospitalRepo := repository.NewHospitalRepo(db)
	holidayRepo := repository.NewHolidayRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 7. Initialize services
	policy := schedule.Policy{
		OpenTime:     cfg.Booking.OpenTime,
		CloseTime:    cfg.Booking.CloseTime,
		SlotInterval: cfg.Booking.SlotInterval,
		LeadTime:     cfg.Booking.LeadTime,
		WindowDays:   cfg.Booking.WindowDays,
	}
	authService := service.NewAuthService(userRepo, auditRepo, zlog)
	patientService := service.NewPatientService(userRepo, hospitalRepo, auditRepo, zlog)
	hospitalService := service.NewHospitalService(hospitalRepo, holidayRepo, auditRepo, zlog)
	reservationService := service.NewReservationService(db, policy, reservationRepo, holidayRepo, userRepo, auditRepo, zlog)
	workerService := service.NewWorkerService(userRepo, zlog)

	// 8. Start background worker in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go workerService.Start(ctx)

	// 9. Setup Gin
	gin.SetMode(cfg.Server.GinMode)
	handler.RegisterValidations()

	r := gin.Default()
	r.Use(middleware.CORS(cfg))

	// 10. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	patientHandler := handler.NewPatientHandler(patientService, authService, ids)
	hospitalHandler := handler.NewHospitalHandler(hospitalService)
	reservationHandler := handler.NewReservationHandler(reservationService, ids)

	// 11. Define routes
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "clinic-reservation-backend",
		})
	})

	// Auth routes (public)
	r.POST("/token", authHandler.Login)
	r.POST("/token/line", authHandler.LoginWithLine)
	auth := r.Group("/auth")
	{
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/verify", middleware.AuthMiddleware(), authHandler.Verify)
	}

	// Public routes
	r.POST("/api/users/patient", patientHandler.RegisterPatient)
	r.GET("/api/hospital/code/:code", hospitalHandler.GetHospitalByCode)

	// Authenticated routes
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/me", patientHandler.GetMe)
		api.GET("/me/reservations", reservationHandler.GetMyNextReservation)

		api.GET("/reservations/available_slots", reservationHandler.GetAvailableSlots)
		api.POST("/reservations", reservationHandler.CreateReservation)
		api.GET("/reservations/:reservation_id", reservationHandler.GetReservation)
		api.DELETE("/reservations/:reservation_id", reservationHandler.CancelReservation)

		api.GET("/hospital/holidays", hospitalHandler.ListHolidays)
		api.GET("/users/patient/:patient_id", patientHandler.GetPatient)

		// Admin-only routes
		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/reservations/admin", reservationHandler.CreateReservationForPatient)
			admin.GET("/reservations", reservationHandler.GetReservations)
			admin.GET("/users/patients", patientHandler.ListPatients)
			admin.PUT("/users/patient/:patient_id", patientHandler.UpdatePatient)
			admin.PUT("/hospital", hospitalHandler.UpdateHospital)
			admin.POST("/hospital/holidays", hospitalHandler.AddHoliday)
			admin.DELETE("/hospital/holidays/:holiday_id", hospitalHandler.DeleteHoliday)
		}
	}

	// 12. Setup graceful shutdown
	go func() {
		zlog.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	// Cancel background worker context
	cancel()
	zlog.Info("Server exited")
}
