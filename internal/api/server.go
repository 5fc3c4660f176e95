// Package api exposes a note store over a small JSON HTTP API.
//
// Routes mirror the screens of the note application:
//
//	GET    /notes?title=&tag=<id>   list, filtered
//	POST   /notes                   create
//	GET    /notes/{id}              show
//	PUT    /notes/{id}              edit
//	DELETE /notes/{id}              delete
//	GET    /tags                    list tags
//	POST   /tags                    create a tag
//	PUT    /tags/{id}               rename a tag
//	DELETE /tags/{id}               delete a tag
//	GET    /theme                   current palette
//	PUT    /theme                   set the theme
//	POST   /theme/toggle            flip the theme
//	GET    /health                  liveness
//
// Any other path redirects to /notes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aretw0/jot/pkg/notes"
)

// Server handles API requests against a notes.Service.
type Server struct {
	store  *notes.Service
	logger *slog.Logger
	router *mux.Router
}

// New creates the API server. A nil logger discards logs.
func New(store *notes.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		store:  store,
		logger: logger,
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	r.HandleFunc("/notes", s.listNotes).Methods(http.MethodGet)
	r.HandleFunc("/notes", s.createNote).Methods(http.MethodPost)
	r.HandleFunc("/notes/{id}", s.getNote).Methods(http.MethodGet)
	r.HandleFunc("/notes/{id}", s.updateNote).Methods(http.MethodPut)
	r.HandleFunc("/notes/{id}", s.deleteNote).Methods(http.MethodDelete)

	r.HandleFunc("/tags", s.listTags).Methods(http.MethodGet)
	r.HandleFunc("/tags", s.createTag).Methods(http.MethodPost)
	r.HandleFunc("/tags/{id}", s.updateTag).Methods(http.MethodPut)
	r.HandleFunc("/tags/{id}", s.deleteTag).Methods(http.MethodDelete)

	r.HandleFunc("/theme", s.getTheme).Methods(http.MethodGet)
	r.HandleFunc("/theme", s.setTheme).Methods(http.MethodPut)
	r.HandleFunc("/theme/toggle", s.toggleTheme).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/notes", http.StatusFound)
	})
	r.Use(s.logRequests)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	sendResult(w, http.StatusOK, "ok", s.store.State())
}
