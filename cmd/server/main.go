package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skyriting/skyriting/internal/config"
	"github.com/skyriting/skyriting/internal/database"
	"github.com/skyriting/skyriting/internal/email"
	"github.com/skyriting/skyriting/internal/metrics"
	"github.com/skyriting/skyriting/internal/payment"
	postgresrepo "github.com/skyriting/skyriting/internal/repository/postgres"
	"github.com/skyriting/skyriting/internal/service"
	"github.com/skyriting/skyriting/internal/token"
	"github.com/skyriting/skyriting/internal/transport/http/handlers"
	"github.com/skyriting/skyriting/internal/transport/http/middleware"
	"github.com/skyriting/skyriting/pkg/logger"
)

const (
	paymentGatewayTimeout = 3 * time.Second

	// requestTimeout bounds each request's context; store calls that
	// outlive it fail with a retryable TIMEOUT response.
	requestTimeout = 15 * time.Second
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer pool.Close()
	log.Info("connected to database")

	if err := database.RunMigrations(ctx, cfg); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	brandRepo := postgresrepo.NewBrandRepo(pool)
	productRepo := postgresrepo.NewProductRepo(pool)
	postRepo := postgresrepo.NewPostRepo(pool)
	orderRepo := postgresrepo.NewOrderRepo(pool)
	wishlistRepo := postgresrepo.NewWishlistRepo(pool)

	// Collaborators
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)

	var gateway payment.IntentGateway
	if cfg.PaymentGatewayURL != "" {
		gateway = payment.NewHTTPGateway(cfg.PaymentGatewayURL, paymentGatewayTimeout)
	} else {
		log.Warn("no payment gateway configured, using mock")
		gateway = payment.MockGateway{}
	}

	var mailer email.Sender
	if cfg.SMTPHost != "" {
		mailer = email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, log)
	} else {
		log.Warn("no SMTP host configured, emails disabled")
		mailer = email.Noop{}
	}

	// Services
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(brandRepo, productRepo)
	postService := service.NewPostService(postRepo, userRepo)
	orderService := service.NewOrderService(orderRepo, userRepo, gateway, mailer, log)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	adminService := service.NewAdminService(userRepo, brandRepo, productRepo, orderRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	userHandler := handlers.NewUserHandler(userService, log)
	brandHandler := handlers.NewBrandHandler(catalogService, log)
	productHandler := handlers.NewProductHandler(catalogService, log)
	postHandler := handlers.NewPostHandler(postService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService, log)
	adminHandler := handlers.NewAdminHandler(adminService, log)

	// Auth middleware
	auth := middleware.Auth(tokens, userRepo)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/brands", brandHandler.List)
	mux.HandleFunc("GET /api/brands/{id}", brandHandler.Get)
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/trending", productHandler.Trending)
	mux.HandleFunc("GET /api/products/new-arrivals", productHandler.NewArrivals)
	mux.HandleFunc("GET /api/products/{id}", productHandler.Get)
	mux.HandleFunc("GET /api/posts/feed", postHandler.Feed)
	mux.HandleFunc("GET /api/users/{id}", userHandler.GetProfile)

	// Protected - Auth & Users
	mux.Handle("GET /api/auth/me", auth(http.HandlerFunc(authHandler.Me)))
	mux.Handle("PUT /api/users/me", auth(http.HandlerFunc(userHandler.UpdateProfile)))
	mux.Handle("POST /api/users/{id}/follow", auth(http.HandlerFunc(userHandler.Follow)))
	mux.Handle("DELETE /api/users/{id}/follow", auth(http.HandlerFunc(userHandler.Unfollow)))

	// Protected - Posts
	mux.Handle("POST /api/posts", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("POST /api/posts/{id}/like", auth(http.HandlerFunc(postHandler.Like)))
	mux.Handle("POST /api/posts/{id}/comments", auth(http.HandlerFunc(postHandler.Comment)))

	// Protected - Catalog management
	mux.Handle("POST /api/brands", auth(http.HandlerFunc(brandHandler.Create)))
	mux.Handle("PUT /api/brands/{id}", auth(http.HandlerFunc(brandHandler.Update)))
	mux.Handle("DELETE /api/brands/{id}", auth(http.HandlerFunc(brandHandler.Delete)))
	mux.Handle("POST /api/products", auth(http.HandlerFunc(productHandler.Create)))
	mux.Handle("PUT /api/products/{id}", auth(http.HandlerFunc(productHandler.Update)))
	mux.Handle("DELETE /api/products/{id}", auth(http.HandlerFunc(productHandler.Delete)))

	// Protected - Orders
	mux.Handle("POST /api/orders", auth(http.HandlerFunc(orderHandler.Create)))
	mux.Handle("GET /api/orders/my", auth(http.HandlerFunc(orderHandler.MyOrders)))
	mux.Handle("GET /api/orders/{id}", auth(http.HandlerFunc(orderHandler.Get)))

	// Protected - Wishlist
	mux.Handle("GET /api/wishlist", auth(http.HandlerFunc(wishlistHandler.Get)))
	mux.Handle("POST /api/wishlist/{id}", auth(http.HandlerFunc(wishlistHandler.Add)))
	mux.Handle("DELETE /api/wishlist/{id}", auth(http.HandlerFunc(wishlistHandler.Remove)))

	// Protected - Admin
	mux.Handle("GET /api/admin/analytics", auth(http.HandlerFunc(adminHandler.Analytics)))
	mux.Handle("GET /api/admin/users", auth(http.HandlerFunc(adminHandler.ListUsers)))
	mux.Handle("POST /api/admin/users/{id}/verify", auth(http.HandlerFunc(adminHandler.VerifyInfluencer)))
	mux.Handle("POST /api/admin/users/{id}/ban", auth(http.HandlerFunc(adminHandler.BanUser)))
	mux.Handle("GET /api/admin/orders", auth(http.HandlerFunc(orderHandler.ListAll)))
	mux.Handle("PUT /api/admin/orders/{id}/status", auth(http.HandlerFunc(orderHandler.UpdateStatus)))

	handler := middleware.CORS(cfg.CORSOrigins)(metrics.InstrumentHandler(middleware.Timeout(requestTimeout)(mux)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Past the request deadline the handler still needs to write the
		// timeout response, so keep a margin above requestTimeout.
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
