package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"irp-planner/internal/api/dto"
	"irp-planner/internal/planner"
	"irp-planner/internal/platform/obs"
	"irp-planner/internal/ports"
)

// PlanHandler serves the planning endpoints: submitting a new horizon for
// optimization and retrieving a previously computed run by ID.
type PlanHandler struct {
	Audit    ports.AuditStore
	Cache    ports.DistanceCache
	Metrics  *obs.Metrics
	validate *validator.Validate
}

func NewPlanHandler(audit ports.AuditStore, cache ports.DistanceCache, metrics *obs.Metrics) *PlanHandler {
	return &PlanHandler{
		Audit:    audit,
		Cache:    cache,
		Metrics:  metrics,
		validate: validator.New(),
	}
}

// Create runs the IRP planner over a submitted request and persists the
// result under a generated run ID.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	planReq, err := req.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	timer := obs.Time(r.Context(), "plans.Create")
	resp, planErr := planner.PlanHorizon(r.Context(), planReq, h.Cache)
	outcome := "success"
	if planErr != nil {
		outcome = "error"
	} else if !resp.Success {
		outcome = "rejected"
	}
	timer(&planErr)

	if h.Metrics != nil {
		h.Metrics.PlanRequestsTotal.WithLabelValues(outcome).Inc()
		h.Metrics.PlanDurationSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		if resp != nil {
			h.Metrics.RoutesGenerated.Observe(float64(len(resp.Routes)))
		}
	}

	if planErr != nil {
		if errors.Is(planErr, planner.ErrInternalFault) {
			log.Printf("plan horizon failed: %v", planErr)
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	runID := uuid.New().String()
	if h.Audit != nil {
		if err := h.Audit.SaveRun(r.Context(), runID, planReq, resp); err != nil {
			log.Printf("save plan run %s failed: %v", runID, err)
		}
	}

	if resp.Success {
		log.Printf("plan %s complete: %d routes generated, %.2f km, %.2f cost", runID, len(resp.Routes), resp.TotalDistance, resp.TotalCost)
	}

	writeJSON(w, r, http.StatusOK, dto.FromDomain(runID, resp))
}

// Get retrieves a previously computed planning run by its generated ID.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Audit == nil {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	runID := chi.URLParam(r, "runID")
	run, err := h.Audit.GetRun(r.Context(), runID)
	if err != nil {
		log.Printf("get plan run %s failed: %v", runID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if run == nil {
		writeError(w, r, http.StatusNotFound, "run not found")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromDomain(run.RunID, &run.Response))
}
