package assignments

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fieldserve/crewsched/core/conflict"
	"github.com/fieldserve/crewsched/core/model"
)

// Snapshot provides the job and technician documents a check runs against.
// Implemented by infra/store.
type Snapshot interface {
	ActiveJobs(ctx context.Context) ([]model.Job, error)
	Technician(ctx context.Context, id string) (*model.Technician, error)
}

// CheckRequest is the body of POST /api/assignments/check.
type CheckRequest struct {
	TechnicianID string    `json:"technician_id"`
	Job          model.Job `json:"job"`
	Timezone     string    `json:"timezone,omitempty"`
}

// NewCheckHandler returns an HTTP handler evaluating assignment conflicts
// via POST /api/assignments/check. defaultTZ is used when the request does
// not name a timezone.
func NewCheckHandler(mgr *conflict.Manager, snap Snapshot, defaultTZ string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req CheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.TechnicianID == "" {
			http.Error(w, "technician_id is required", http.StatusBadRequest)
			return
		}
		jobs, err := snap.ActiveJobs(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		tech, err := snap.Technician(r.Context(), req.TechnicianID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		tz := req.Timezone
		if tz == "" {
			tz = defaultTZ
		}
		resp := mgr.Check(r.Context(), conflict.CheckRequest{
			TechnicianID: req.TechnicianID,
			Job:          req.Job,
			ExistingJobs: jobs,
			Technician:   tech,
			Timezone:     tz,
		})
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
