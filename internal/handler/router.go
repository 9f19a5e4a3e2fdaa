package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	extractionHandler *ExtractionHandler,
	requestMiddleware func(http.Handler) http.Handler,
) http.Handler {
	router := mux.NewRouter()
	router.Use(requestMiddleware)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"letter-extractor"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/extract", extractionHandler.Extract).Methods(http.MethodPost)

	// The bundled web client posts to /api/extract.
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/extract", extractionHandler.Extract).Methods(http.MethodPost)

	// Any origin, method and header, with credentials. Local/internal use only.
	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(router)
}
