package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visioncare/config"
	"visioncare/database"
	appointmentRepoPkg "visioncare/database/repository/appointment"
	examRepoPkg "visioncare/database/repository/exam"
	patientRepoPkg "visioncare/database/repository/patient"
	referralRepoPkg "visioncare/database/repository/referral"
	specialistRepoPkg "visioncare/database/repository/specialist"
	userRepoPkg "visioncare/database/repository/user"
	"visioncare/handlers"
	"visioncare/middleware"
	"visioncare/routes"
	appointmentService "visioncare/services/appointment"
	"visioncare/services/directory"
	examService "visioncare/services/exam"
	patientService "visioncare/services/patient"
	referralService "visioncare/services/referral"
	"visioncare/services/scheduling"
	"visioncare/services/storage"
	userService "visioncare/services/user"
	"visioncare/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	storageService, err := storage.NewGCSStorageService(context.Background(),
		config.AppConfig.StorageBucket, config.AppConfig.StorageCredentialsFile)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	specialistRepo := specialistRepoPkg.NewMongoSpecialistRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	examRepo := examRepoPkg.NewMongoExamRepo()
	referralRepo := referralRepoPkg.NewMongoReferralRepo()

	dir := directory.Loader{
		Patients:    patientRepo,
		Specialists: specialistRepo,
		Users:       userRepo,
	}
	policy := scheduling.Policy{AdminCanCancel: config.AppConfig.AdminCanCancel}

	// Services.
	usersSvc := userService.NewUserService(userRepo, patientRepo, specialistRepo,
		userService.RedisSessionStore{Client: utils.GetAuthCacheClient()})
	appointmentsSvc := appointmentService.NewAppointmentService(appointmentRepo, dir, policy)
	patientsSvc := patientService.NewPatientService(patientRepo)
	urlTTL := time.Duration(config.AppConfig.SignedURLTTLSeconds) * time.Second
	examsSvc := examService.NewExamService(examRepo, dir, storageService, urlTTL)
	referralsSvc := referralService.NewReferralService(referralRepo, dir)

	handlerBundle := &handlers.HandlerBundle{
		Appointments: appointmentsSvc,
		Patients:     patientsSvc,
		Exams:        examsSvc,
		Referrals:    referralsSvc,
		Users:        usersSvc,
	}

	routes.RegisterRoutes(router, handlerBundle, utils.GetAuthCacheClient())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
