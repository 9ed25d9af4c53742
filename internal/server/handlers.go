package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/edgesplit/edgesplit/internal/bucket"
)

// DecideResponse is the per-request output surface: one bucket label per
// active test.
type DecideResponse struct {
	VisitorID   string            `json:"visitor_id"`
	NewVisitor  bool              `json:"new_visitor"`
	Assignments map[string]string `json:"assignments"`
}

// handleDecide resolves the visitor's assignment set against the current
// catalog snapshot, persists it back through cookies and exposes each bucket
// as an X-AB-<test> header for downstream routing. Token damage never fails
// the request; the visitor is simply treated as new.
func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cat := s.handle.Catalog()
	v := identify(r)
	existing := bucket.DecodeAssignments(assignToken(r))

	resolved := bucket.Resolve(existing, cat, bucket.HashDraw(v.id))

	assignments := make(map[string]string, len(resolved))
	for name, a := range resolved {
		assignments[name] = a.Label
		w.Header().Set("X-AB-"+name, a.Label)

		if err := s.store.RecordAssignment(r.Context(), name, a.Label, v.id); err != nil {
			// Observational only; the decision stands either way.
			s.log.WithError(err).WithField("test", name).Warn("failed to record assignment")
		}
	}

	setVisitorCookies(w, v, bucket.EncodeAssignments(resolved))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DecideResponse{
		VisitorID:   v.id,
		NewVisitor:  v.isNew,
		Assignments: assignments,
	})
}

type HealthResponse struct {
	Status           string `json:"status"`
	TestsCount       int    `json:"tests_count"`
	AssignmentsCount int    `json:"assignments_count"`
	UptimeSeconds    int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count, err := s.store.CountAssignments(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := HealthResponse{
		Status:           "ok",
		TestsCount:       s.handle.Catalog().Len(),
		AssignmentsCount: count,
		UptimeSeconds:    int64(time.Since(s.startTime).Seconds()),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

type TestInfo struct {
	Name    string   `json:"name"`
	Buckets []string `json:"buckets"`
	Weights []int    `json:"weights"`
	Total   int      `json:"total"`
}

// handleTestsAPI dumps the active catalog for operators.
func (s *Server) handleTestsAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cat := s.handle.Catalog()
	tests := make([]TestInfo, 0, cat.Len())
	for _, name := range cat.ActiveTests() {
		def, _ := cat.Get(name)
		tests = append(tests, TestInfo{
			Name:    def.Name,
			Buckets: def.Buckets,
			Weights: def.Weights,
			Total:   def.Total,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tests)
}
