package main

import (
	"database/sql"
	"log"
	"net/http"

	"routeseven-be/internal/address"
	"routeseven-be/internal/cart"
	"routeseven-be/internal/catalog"
	"routeseven-be/internal/config"
	"routeseven-be/internal/db"
	"routeseven-be/internal/httpapi"
	"routeseven-be/internal/logger"
	"routeseven-be/internal/middleware"
	"routeseven-be/internal/quotation"
	"routeseven-be/internal/render"
	"routeseven-be/internal/user"
)

// Indirections for testing
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	handler := newServer(cfg, database)

	log.Printf("🚀 Quotation server running at http://localhost:%s/", cfg.AppPort)
	return startServerFunc(":"+cfg.AppPort, handler)
}

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	catalogRepo := catalog.NewRepository(database)
	cartRepo := cart.NewRepository(database)
	addressRepo := address.NewRepository(database)
	userRepo := user.NewRepository(database)
	quotationRepo := quotation.NewRepository(database)

	userSvc := user.NewService(userRepo)
	quotationSvc := quotation.NewService(
		quotation.NewBuilder(),
		quotationRepo,
		cartRepo,
		catalogRepo,
		addressRepo,
		userRepo,
		render.NewRenderer(),
	)

	mux := http.NewServeMux()
	httpapi.NewHandler(quotationSvc, userSvc).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.AuthMiddleware(handler)

	return handler
}
