package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GauriLakshmi/Farm-Connect/internal/config"
	"github.com/GauriLakshmi/Farm-Connect/internal/handlers"
	"github.com/GauriLakshmi/Farm-Connect/internal/models"
	"github.com/GauriLakshmi/Farm-Connect/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(cfg.MigrationsDir); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := db.SeedDemoData(); err != nil {
		slog.Error("Failed to seed demo data", "error", err)
		os.Exit(1)
	}

	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	gate := &handlers.Gate{Store: db, SessionStore: sessionStore}
	authHandler := &handlers.AuthHandler{Store: db, SessionStore: sessionStore, Templates: templates, Gate: gate}
	homeHandler := &handlers.HomeHandler{Store: db, SessionStore: sessionStore, Templates: templates, Gate: gate}
	orderHandler := &handlers.OrderHandler{Store: db, SessionStore: sessionStore, Templates: templates}
	farmerHandler := &handlers.FarmerHandler{Store: db, SessionStore: sessionStore, Templates: templates, UploadDir: "static/uploads"}
	adminHandler := &handlers.AdminHandler{Store: db, SessionStore: sessionStore, Templates: templates}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate limiter for credential and order submissions
	rateLimiter := handlers.NewRateLimiter(2 * time.Second)

	// Public routes
	mux.HandleFunc("/", homeHandler.Index)
	mux.HandleFunc("GET /products", homeHandler.Products)
	mux.HandleFunc("GET /product/{id}", homeHandler.ProductDetail)
	mux.HandleFunc("GET /register", authHandler.RegisterForm)
	mux.HandleFunc("POST /register", rateLimiter.Middleware(authHandler.Register))
	mux.HandleFunc("GET /login", authHandler.LoginForm)
	mux.HandleFunc("POST /login", rateLimiter.Middleware(authHandler.Login))
	mux.HandleFunc("/logout", authHandler.Logout)

	// Customer routes
	mux.HandleFunc("GET /order/{id}", gate.RequireRole(models.RoleCustomer, orderHandler.OrderForm))
	mux.HandleFunc("POST /order/{id}", gate.RequireRole(models.RoleCustomer, orderHandler.PlaceOrder))
	mux.HandleFunc("GET /my_orders", gate.RequireLogin(orderHandler.MyOrders))

	// Farmer routes
	mux.HandleFunc("GET /farmer/dashboard", gate.RequireRole(models.RoleFarmer, farmerHandler.Dashboard))
	mux.HandleFunc("GET /api/farmer/new_orders_count", gate.RequireRole(models.RoleFarmer, farmerHandler.NewOrdersCount))
	mux.HandleFunc("GET /farmer/products/new", gate.RequireRole(models.RoleFarmer, farmerHandler.AddProductForm))
	mux.HandleFunc("POST /farmer/products", gate.RequireRole(models.RoleFarmer, farmerHandler.CreateProduct))
	mux.HandleFunc("GET /farmer/products/edit", gate.RequireRole(models.RoleFarmer, farmerHandler.EditProductForm))
	mux.HandleFunc("POST /farmer/products/update", gate.RequireRole(models.RoleFarmer, farmerHandler.UpdateProduct))
	mux.HandleFunc("POST /farmer/products/delete", gate.RequireRole(models.RoleFarmer, farmerHandler.DeleteProduct))

	// Admin routes
	mux.HandleFunc("GET /admin/dashboard", gate.RequireRole(models.RoleAdmin, adminHandler.Dashboard))
	mux.HandleFunc("GET /admin/users", gate.RequireRole(models.RoleAdmin, adminHandler.Users))
	mux.HandleFunc("GET /admin/users/edit", gate.RequireRole(models.RoleAdmin, adminHandler.EditUserForm))
	mux.HandleFunc("POST /admin/users/update", gate.RequireRole(models.RoleAdmin, adminHandler.UpdateUser))
	mux.HandleFunc("GET /admin/products", gate.RequireRole(models.RoleAdmin, adminHandler.Products))

	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
