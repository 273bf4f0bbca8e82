package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/hsuan0717/health/internal/ai"
	"github.com/hsuan0717/health/internal/engine"
)

// Server exposes the tracker over HTTP for browser dashboards. It is a
// thin layer: every request recomputes from storage via the engine
// service, the same way the CLI does.
type Server struct {
	svc *engine.Service
	ai  *ai.Client
}

func New(svc *engine.Service, aiClient *ai.Client) *Server {
	return &Server{svc: svc, ai: aiClient}
}

// Handler builds the routed, CORS-wrapped, logged handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/diet", s.listDiet).Methods(http.MethodGet)
	r.HandleFunc("/api/diet", s.createDiet).Methods(http.MethodPost)
	r.HandleFunc("/api/diet/{id}", s.deleteDiet).Methods(http.MethodDelete)
	r.HandleFunc("/api/exercise", s.listExercise).Methods(http.MethodGet)
	r.HandleFunc("/api/exercise", s.createExercise).Methods(http.MethodPost)
	r.HandleFunc("/api/exercise/{id}", s.deleteExercise).Methods(http.MethodDelete)
	r.HandleFunc("/api/sleep", s.listSleep).Methods(http.MethodGet)
	r.HandleFunc("/api/sleep", s.createSleep).Methods(http.MethodPost)
	r.HandleFunc("/api/sleep/{id}", s.deleteSleep).Methods(http.MethodDelete)
	r.HandleFunc("/api/advice", s.getAdvice).Methods(http.MethodGet)
	r.HandleFunc("/api/score", s.getScore).Methods(http.MethodGet)
	r.HandleFunc("/api/layout", s.getLayout).Methods(http.MethodGet)
	r.HandleFunc("/api/layout", s.putLayout).Methods(http.MethodPut)
	r.HandleFunc("/api/report", s.generateReport).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(loggingMiddleware(r))
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		log.Printf("%d - %s %s - %v", wrapper.statusCode, r.Method, r.URL.Path, time.Since(start))
	})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
