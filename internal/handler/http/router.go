package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/iza-pos/pos-backend-go/internal/handler/http/middleware"
	"github.com/iza-pos/pos-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, archiveHandler ArchiveHandler, exportBasePath string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "iza-pos"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Delivered export files
	r.Handle("/exports/*", http.StripPrefix("/exports/", http.FileServer(http.Dir(exportBasePath))))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/archives", func(r chi.Router) {
				r.Get("/", archiveHandler.List)
				r.Post("/generate", archiveHandler.Generate)
				r.Post("/purge-source", archiveHandler.PurgeSource)
				r.Delete("/{archiveID}", archiveHandler.Delete)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/sales/workbook", archiveHandler.SalesWorkbook)
			})
		})
	})

	return r
}
