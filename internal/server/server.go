package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/edgesplit/edgesplit/internal/config"
	"github.com/edgesplit/edgesplit/internal/store"
)

type Server struct {
	handle    *config.Handle
	store     store.Store
	port      int
	router    *http.ServeMux
	log       *logrus.Logger
	startTime time.Time
}

func New(handle *config.Handle, s store.Store, port int, log *logrus.Logger) *Server {
	srv := &Server{
		handle:    handle,
		store:     s,
		port:      port,
		router:    http.NewServeMux(),
		log:       log,
		startTime: time.Now(),
	}

	srv.setupRoutes()
	return srv
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/decide", s.handleDecide)
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/api/tests", s.handleTestsAPI)
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)

	s.log.WithFields(logrus.Fields{
		"addr":  addr,
		"tests": s.handle.Catalog().Len(),
	}).Info("edgesplit listening")

	return http.ListenAndServe(addr, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) StartTime() time.Time {
	return s.startTime
}
