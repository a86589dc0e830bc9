package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/shelfspace/bookshelf/backend/auth"
	"github.com/shelfspace/bookshelf/backend/config"
	"github.com/shelfspace/bookshelf/backend/handlers"
	"github.com/shelfspace/bookshelf/backend/middleware"
	"github.com/shelfspace/bookshelf/backend/service"
	"github.com/shelfspace/bookshelf/backend/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb: ", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Println("mongodb disconnect:", err)
		}
	}()
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal("mongodb indexes: ", err)
	}

	var s3Service *service.S3Service
	if cfg.S3Bucket != "" {
		s3Service, err = service.NewS3Service(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey)
		if err != nil {
			log.Fatal("s3: ", err)
		}
	} else {
		log.Println("warning: AWS_S3_BUCKET not set; cover uploads disabled")
	}

	tokens := auth.NewTokenService(cfg.JWTSecret)
	resolver := &auth.SessionResolver{Tokens: tokens, Users: db}

	authHandler := &handlers.AuthHandler{Store: db, Tokens: tokens, Secure: cfg.Production()}
	booksHandler := &handlers.BooksHandler{Store: db}
	reviewsHandler := &handlers.ReviewsHandler{Store: db}
	pagesHandler := &handlers.PagesHandler{Books: db}
	uploadHandler := &handlers.UploadHandler{S3: s3Service, MaxBytes: cfg.MaxUploadMB * 1024 * 1024}

	r := chi.NewRouter()
	r.Use(middleware.AllowAll())
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithUser(resolver))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Page routes, gated by the navigation guard.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Guard(middleware.DefaultRoutes))
		r.Get("/profile", pagesHandler.Profile)
		r.Get("/books/add", pagesHandler.AddBookPage)
		r.Get("/books/{id}/edit", pagesHandler.EditBookPage)
		r.Get("/login", pagesHandler.LoginPage)
		r.Get("/signup", pagesHandler.SignupPage)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		r.Get("/books", booksHandler.List)
		r.Get("/books/{id}", booksHandler.Get)
		r.Get("/genres", booksHandler.Genres)

		// Mutations require an authenticated actor.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/auth/me", authHandler.Me)
			r.Post("/books", booksHandler.Create)
			r.Put("/books/{id}", booksHandler.Update)
			r.Delete("/books/{id}", booksHandler.Delete)
			r.Post("/books/{id}/reviews", reviewsHandler.Create)
			r.Delete("/reviews/{id}", reviewsHandler.Delete)
			r.Post("/upload/cover", uploadHandler.Cover)
		})
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Println("server listening on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}
