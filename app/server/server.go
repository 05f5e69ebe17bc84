// Package server assembles the HTTP API: repositories, handlers, the admin
// gate and the route table.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/duckcreek/farmstore/app/api"
	"github.com/duckcreek/farmstore/app/blog"
	"github.com/duckcreek/farmstore/app/catalog"
	"github.com/duckcreek/farmstore/app/contact"
	"github.com/duckcreek/farmstore/app/orders"
	"github.com/duckcreek/farmstore/app/stats"
	"github.com/duckcreek/farmstore/auth"
	"github.com/duckcreek/farmstore/config"
	"github.com/duckcreek/farmstore/models"
	"github.com/duckcreek/farmstore/session"
)

// New builds the API handler from its dependencies.
func New(cfg *config.Config, db *gorm.DB, sessions session.Store) http.Handler {
	users := models.NewUsersRepository(db)

	// Authority sources in fixed priority order: local session wins over an
	// external token.
	resolver := auth.Chain{
		auth.NewSessionResolver(sessions, users),
		auth.NewTokenResolver(cfg.TokenIssuer, cfg.TokenSecret, cfg.TokenSubjects, users),
	}
	gate := auth.NewGate(resolver)

	authHandler := auth.NewHandler(sessions, users, resolver, auth.AdminCredential{
		ID:           cfg.AdminID,
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
		Email:        cfg.AdminEmail,
	}, cfg.SessionTTL)

	catalogHandler := catalog.NewCatalogHandler(models.NewProductsRepository(db))
	ordersHandler := orders.NewOrdersHandler(models.NewOrdersRepository(db))
	blogHandler := blog.NewBlogHandler(models.NewBlogRepository(db))
	contactHandler := contact.NewContactHandler(models.NewContactRepository(db))
	statsHandler := stats.NewStatsHandler(models.NewStatsRepository(db))

	mux := http.NewServeMux()

	// Public storefront.
	mux.HandleFunc("GET /api/products", catalogHandler.HandleList)
	mux.HandleFunc("GET /api/products/categories", catalogHandler.HandleCategories)
	mux.HandleFunc("GET /api/products/{id}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("POST /api/orders", ordersHandler.HandlePlaceOrder)
	mux.HandleFunc("GET /api/blog", blogHandler.HandleList)
	mux.HandleFunc("GET /api/blog/{slug}", blogHandler.HandleGetBySlug)
	mux.HandleFunc("POST /api/contact", contactHandler.HandleCreate)

	// Auth.
	mux.HandleFunc("POST /api/auth/admin-login", authHandler.HandleAdminLogin)
	mux.HandleFunc("GET /api/auth/user", authHandler.HandleGetUser)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)

	// Admin back-office, every route behind the gate.
	admin := func(h http.HandlerFunc) http.Handler {
		return gate.RequireAdmin(h)
	}
	mux.Handle("GET /api/admin/products", admin(catalogHandler.HandleListAll))
	mux.Handle("POST /api/admin/products", admin(catalogHandler.HandleCreate))
	mux.Handle("PUT /api/admin/products/{id}", admin(catalogHandler.HandleUpdate))
	mux.Handle("DELETE /api/admin/products/{id}", admin(catalogHandler.HandleDelete))
	mux.Handle("GET /api/admin/orders", admin(ordersHandler.HandleListAll))
	mux.Handle("PUT /api/admin/orders/{id}/status", admin(ordersHandler.HandleUpdateStatus))
	mux.Handle("GET /api/admin/blog", admin(blogHandler.HandleListAll))
	mux.Handle("POST /api/admin/blog", admin(blogHandler.HandleCreate))
	mux.Handle("PUT /api/admin/blog/{id}", admin(blogHandler.HandleUpdate))
	mux.Handle("DELETE /api/admin/blog/{id}", admin(blogHandler.HandleDelete))
	mux.Handle("GET /api/admin/contact", admin(contactHandler.HandleListAll))
	mux.Handle("PUT /api/admin/contact/{id}/read", admin(contactHandler.HandleMarkRead))
	mux.Handle("GET /api/admin/stats", admin(statsHandler.HandleGet))

	return api.RequestLogger(mux)
}

const shutdownTimeout = 10 * time.Second

// Run serves the handler until SIGINT/SIGTERM, then drains in-flight
// requests.
func Run(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
