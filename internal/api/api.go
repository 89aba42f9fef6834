// Package api provides HTTP handlers and the main API server logic for CrisisTriage.
//
// It exposes RESTful endpoints for running crisis assessments, recording and
// analyzing mood history, managing crisis events, and generating prevention
// plans. The engine itself is pure; this layer is the thin caller that feeds
// it data, persists results, and renders its output as JSON.
package api

import (
	"log/slog"
	"net/http"

	"github.com/carelink/crisistriage/internal/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Opts holds configuration options for the API server.
type Opts struct {
	Addr               string // listen address
	PersistAssessments bool   // store assessment results when a participant id is supplied
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the API server listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) {
		o.Addr = addr
	}
}

// WithPersistAssessments controls whether assessment results are stored
// for requests that carry a participant id.
func WithPersistAssessments(persist bool) Option {
	return func(o *Opts) {
		o.PersistAssessments = persist
	}
}

// Server wires the assessment engine to the HTTP surface and the store.
type Server struct {
	st                 store.Store
	addr               string
	persistAssessments bool
}

// NewServer constructs a Server over the given store.
func NewServer(st store.Store, opts ...Option) *Server {
	cfg := Opts{Addr: DefaultAddr, PersistAssessments: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		st:                 st,
		addr:               cfg.Addr,
		persistAssessments: cfg.PersistAssessments,
	}
}

// Handler returns the server's route table as an http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/assess", s.assessHandler)
	mux.HandleFunc("/assessments", s.assessmentRecordsHandler)
	mux.HandleFunc("/mood/entries", s.moodEntriesHandler)
	mux.HandleFunc("/mood/risk", s.moodRiskHandler)
	mux.HandleFunc("/prevention/plan", s.preventionPlanHandler)
	mux.HandleFunc("/events", s.crisisEventsHandler)
	mux.HandleFunc("/health", s.healthHandler)
	return mux
}

// Run constructs the store and server from options and blocks serving HTTP.
func Run(storeOpts []store.Option, apiOpts []Option) error {
	st, err := store.New(storeOpts...)
	if err != nil {
		slog.Error("api.Run: failed to initialize store", "error", err)
		return err
	}
	defer st.Close()

	srv := NewServer(st, apiOpts...)
	slog.Info("CrisisTriage API listening", "addr", srv.addr)
	return http.ListenAndServe(srv.addr, srv.Handler())
}
