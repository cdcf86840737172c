package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/app"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/config"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/constants"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/controllers"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/metrics"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/middleware"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/repositories"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/routes"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/services"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize rentals-service:", err)
	}
	defer application.Close()

	userRepo := repositories.NewUserRepository(application.DB)
	flatRepo := repositories.NewFlatRepository(application.DB)
	tenancyRepo := repositories.NewTenancyRepository(application.DB)
	slotRepo := repositories.NewViewingSlotRepository(application.DB)
	notifRepo := repositories.NewNotificationRepository(application.DB)
	basketRepo := repositories.NewBasketRepository(application.Redis)

	if cfg.SeedTestData {
		if err := app.SeedTestData(context.Background(), userRepo, flatRepo, slotRepo); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		}
		utils.Logger.Info("Seeded test data successfully")
	}

	var sgClient *sendgrid.Client
	if cfg.SendGridAPIKey != "" {
		sgClient = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}

	rentalMetrics := metrics.NewRentalMetrics()
	notifyService := services.NewNotifyService(notifRepo, userRepo, sgClient, cfg.SendGridFromEmail)
	listingService := services.NewListingService(flatRepo, slotRepo, notifyService, rentalMetrics)
	availabilityService := services.NewAvailabilityService(flatRepo, tenancyRepo)
	bookingService := services.NewBookingService(flatRepo, tenancyRepo, basketRepo, notifyService, rentalMetrics)
	viewingService := services.NewViewingService(flatRepo, slotRepo, notifyService, rentalMetrics)
	basketService := services.NewBasketService(basketRepo, flatRepo, bookingService)
	schedulerService := services.NewTenancySchedulerService(tenancyRepo)

	listingsController := controllers.NewListingsController(listingService)
	bookingsController := controllers.NewBookingsController(bookingService, availabilityService)
	viewingsController := controllers.NewViewingsController(viewingService)
	basketController := controllers.NewBasketController(basketService)
	notificationsController := controllers.NewNotificationsController(notifyService)
	healthController := controllers.NewHealthController(application)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.Handle(routes.Metrics, promhttp.Handler()).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	// Any authenticated user
	secured.HandleFunc(routes.FlatAvailability, bookingsController.FlatAvailabilityHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.FlatViewingSlots, viewingsController.ListFlatSlotsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.NotificationsBase, notificationsController.ListNotificationsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.NotificationsRead, notificationsController.MarkReadHandler).Methods(http.MethodPost)

	// Owners
	owners := secured.NewRoute().Subrouter()
	owners.Use(middleware.RequireRole(models.RoleOwner))
	owners.HandleFunc(routes.FlatsBase, listingsController.SubmitFlatHandler).Methods(http.MethodPost)
	owners.HandleFunc(routes.FlatsMy, listingsController.ListMyFlatsHandler).Methods(http.MethodGet)

	// Managers
	managers := secured.NewRoute().Subrouter()
	managers.Use(middleware.RequireRole(models.RoleManager))
	managers.HandleFunc(routes.FlatsPending, listingsController.ListPendingFlatsHandler).Methods(http.MethodGet)
	managers.HandleFunc(routes.FlatsApprove, listingsController.ApproveFlatHandler).Methods(http.MethodPost)
	managers.HandleFunc(routes.FlatsReject, listingsController.RejectFlatHandler).Methods(http.MethodPost)

	// Customers
	customers := secured.NewRoute().Subrouter()
	customers.Use(middleware.RequireRole(models.RoleCustomer))
	customers.HandleFunc(routes.RentalsBase, bookingsController.BookRentalHandler).Methods(http.MethodPost)
	customers.HandleFunc(routes.RentalsMy, bookingsController.ListMyRentalsHandler).Methods(http.MethodGet)
	customers.HandleFunc(routes.ViewingsClaim, viewingsController.ClaimSlotHandler).Methods(http.MethodPost)
	customers.HandleFunc(routes.ViewingsMy, viewingsController.ListMyViewingsHandler).Methods(http.MethodGet)
	customers.HandleFunc(routes.BasketBase, basketController.HoldFlatHandler).Methods(http.MethodPost)
	customers.HandleFunc(routes.BasketBase, basketController.ListBasketHandler).Methods(http.MethodGet)
	customers.HandleFunc(routes.BasketItem, basketController.ReleaseHoldHandler).Methods(http.MethodDelete)
	customers.HandleFunc(routes.BasketCheckout, basketController.CheckoutHoldHandler).Methods(http.MethodPost)

	c := cron.New()
	_, cronErr := c.AddFunc(constants.TenancyRolloverCronSpec, func() {
		if e := schedulerService.RunDailyRollover(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled tenancy roll-over failed")
		}
	})
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule tenancy roll-over cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	instrumented := rentalMetrics.InstrumentHandler("api", co.Handler(router))

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, instrumented); err != nil {
		utils.Logger.Fatal("rentals-service failed to start:", err)
	}
}
