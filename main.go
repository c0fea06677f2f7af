// File: salonbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonbook/config"
	"salonbook/cron"
	"salonbook/database"
	appointmentRepo "salonbook/database/repository/appointment"
	"salonbook/handlers"
	"salonbook/middleware"
	"salonbook/models"
	"salonbook/routes"
	"salonbook/services/auth"
	"salonbook/services/booking"
	"salonbook/services/email"
	"salonbook/services/schedule"
	"salonbook/services/verification"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitCodeCache()
	utils.FirebaseInit()

	// Email pipeline: handlers enqueue through the dispatcher, the background
	// worker delivers through the relay.
	relay := email.NewEmailJSRelay()
	emailDispatcher := email.NewDispatcher()
	cron.InitEmailWorker(relay)

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	// services.
	catalog := models.DefaultCatalog()

	verificationService := &verification.Service{
		Store:  &verification.RedisCodeStore{Client: utils.GetCodeCacheClient()},
		Sender: emailDispatcher,
	}

	authService := &auth.DefaultAuthService{
		Identity: auth.NewIdentityClient(),
		Firebase: utils.GetFirebaseAuthClient(),
		RegStore: &auth.RedisRegistrationStore{Client: utils.GetCacheClient()},
		Codes:    verificationService,
		Broker:   auth.NewSessionBroker(),
	}
	stopSessionLog := authService.ObserveSession(func(s *models.Session) {
		if s == nil {
			logger.Info("session feed: signed out")
			return
		}
		logger.Info("session feed: signed in", zap.String("email", s.Email))
	})
	defer stopSessionLog()

	scheduleService := &schedule.DefaultScheduleService{
		Repo:        apptRepo,
		Catalog:     catalog,
		SeedOnEmpty: config.AppConfig.SeedOnEmpty,
		SeedFlag:    &schedule.RedisSeedFlag{Client: utils.GetCacheClient()},
	}

	unsubscribe, err := scheduleService.Subscribe(context.Background(),
		func(appts []models.Appointment) {
			logger.Debug("schedule snapshot replaced", zap.Int("appointments", len(appts)))
		},
		func(err error) {
			logger.Error("schedule feed error", zap.Error(err))
		})
	if err != nil {
		logger.Sugar().Fatalf("main: failed to establish appointment feed: %v", err)
	}
	defer unsubscribe()

	bookingService := &booking.DefaultBookingService{
		Schedule: scheduleService,
		Catalog:  catalog,
		Email:    emailDispatcher,
	}

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetCodeCacheClient()},
		database.MongoClient,
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &handlers.HandlerBundle{
		Auth:     authService,
		Booking:  bookingService,
		Schedule: scheduleService,
		Email:    emailDispatcher,
		Catalog:  catalog,
	}
	routes.RegisterRoutes(router, handlerBundle)

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

	logger.Sugar().Info("main: server stopped gracefully")
}
