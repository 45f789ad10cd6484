// Package server is a development backend for the resume upload client. It
// stores uploads in S3 and extracts text with Textract.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/gostones/resumeupload/internal/config"
	"github.com/gostones/resumeupload/internal/types"
)

// ObjectStore persists uploaded files.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key, contentType, md5 string, body []byte) error
}

// TextDetector returns the text lines of a stored document.
type TextDetector interface {
	DetectLines(ctx context.Context, bucket, key string) ([]string, error)
}

type Server struct {
	store        ObjectStore
	detector     TextDetector
	bucket       string
	allowOrigin  string
	maxBodyBytes int64
	log          zerolog.Logger
}

func New(cfg config.ServerConfig, store ObjectStore, detector TextDetector, logger zerolog.Logger) *Server {
	return &Server{
		store:        store,
		detector:     detector,
		bucket:       cfg.BucketName(),
		allowOrigin:  cfg.AllowOrigin,
		maxBodyBytes: cfg.MaxBodyBytes,
		log:          logger,
	}
}

// Handler returns the routed handler with CORS, request id and access
// logging applied to every request, matched or not.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/upload", s.upload).Methods(http.MethodPost)
	r.HandleFunc("/process", s.process).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(s.notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.notFound)

	return s.cors(s.requestID(s.accessLog(r)))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &types.HealthResponse{
		Status:  "healthy",
		Message: "Resume Auto Backend is running",
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, &types.ErrorResponse{
		Error:  "Route not found",
		Path:   r.URL.Path,
		Method: r.Method,
	})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")

	status := http.StatusInternalServerError
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	writeJSON(w, status, &types.ErrorResponse{
		Error:   err.Error(),
		Message: "Internal server error occurred",
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
