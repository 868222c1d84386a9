package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/cache"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/gateway"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/health"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/telemetry"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/worker"
	"github.com/aaravmahajanofficial/storefront-checkout/pkg/sendgrid"
	stripeClient "github.com/aaravmahajanofficial/storefront-checkout/pkg/stripe"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	db, repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer redisClient.Close()

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	locker := cache.NewRedisLocker(redisClient)
	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)

	httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	router := gateway.NewRouter(gateway.Options{
		HTTPClient: httpClient,
		Stripe:     stripeClient.NewStripeClient(stripeClient.WithHTTPClient(httpClient)),
		Timeout:    cfg.Gateway.Timeout,
	})

	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.Host, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	settingsService := service.NewSettingsService(repos.Settings, redisCache, cfg.Cache.SettingsTTL)
	dispatcher := service.NewNotificationDispatcher(repos.Notifications, emailService)
	lifecycle := service.NewCartLifecycleManager(repos.Carts, repos.Transactions, settingsService, dispatcher, locker, cfg.Cart, cfg.Payment)
	pricer := service.NewCartPricer(repos.Coupons, repos.Sales, service.NewFlatRateShipping(cfg.Shipping))
	cartService := service.NewCartService(repos.Carts, repos.Transactions, repos.Products, settingsService, lifecycle, pricer, cfg.Payment)
	checkoutService := service.NewCheckoutService(repos.Carts, repos.Transactions, rateLimiter, settingsService, router, pricer, cfg.Gateway, cfg.Payment)
	orderService := service.NewOrderService(repos.Orders)
	verifier := service.NewPaymentVerifier(repos.Transactions, repos.Carts, repos.Coupons, orderService, settingsService, router, cfg.Payment)
	paymentService := service.NewPaymentService(repos.Transactions, verifier)
	promotionService := service.NewPromotionService(repos.Sales, repos.Coupons)

	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, cfg.Gateway)
	adminHandler := handlers.NewAdminHandler(lifecycle, settingsService, promotionService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthChecker, err := health.NewHealthHandler(cfg, &health.Endpoints{Settings: settingsService, Gateways: router})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/carts", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("GET /api/v1/carts/quote", authMiddleware.Authenticate(cartHandler.Quote()))
	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.InitiatePayment()))
	routerMux.HandleFunc("GET /api/v1/payments/callback/{gateway}", paymentHandler.HandleCallback())
	routerMux.HandleFunc("POST /api/v1/payments/callback/{gateway}", paymentHandler.HandleCallback())
	routerMux.HandleFunc("GET /api/v1/payments/{handle}", authMiddleware.Authenticate(paymentHandler.GetPayment()))
	routerMux.HandleFunc("POST /api/v1/admin/carts/sweep", authMiddleware.RequireAdmin(adminHandler.SweepCarts()))
	routerMux.HandleFunc("GET /api/v1/admin/payments", authMiddleware.RequireAdmin(paymentHandler.ListPayments()))
	routerMux.HandleFunc("GET /api/v1/admin/settings", authMiddleware.RequireAdmin(adminHandler.GetSettings()))
	routerMux.HandleFunc("PUT /api/v1/admin/settings", authMiddleware.RequireAdmin(adminHandler.UpdateSettings()))
	routerMux.HandleFunc("POST /api/v1/admin/sales", authMiddleware.RequireAdmin(adminHandler.CreateSale()))
	routerMux.HandleFunc("POST /api/v1/admin/coupons", authMiddleware.RequireAdmin(adminHandler.CreateCoupon()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthChecker.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront-checkout")

	// Setup http server
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		return worker.NewSweeper(lifecycle, cfg.Cart.SweepInterval).Run(groupCtx)
	})

	group.Go(func() error {
		<-groupCtx.Done()

		slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Server shut down gracefully. All connections closed.")
		}

		return shutdownTracing(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		slog.Error("❌ Server stopped with error", slog.String("error", err.Error()))
	}

}
