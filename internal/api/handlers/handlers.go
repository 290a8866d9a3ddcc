// Package handlers implements the HTTP handlers for the InstaStartup
// service: artifact generation, the task-unit catalog, pipelines, and
// teams. All handlers use the Store interface.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/instastartup/instastartup/internal/assembler"
	"github.com/instastartup/instastartup/internal/config"
	"github.com/instastartup/instastartup/internal/pipeline"
	"github.com/instastartup/instastartup/internal/provider"
	"github.com/instastartup/instastartup/internal/registry"
	"github.com/instastartup/instastartup/internal/store"
	"github.com/instastartup/instastartup/pkg/models"
)

// Handlers holds all handler dependencies.
type Handlers struct {
	Store     store.Store
	Registry  *registry.Registry
	Runner    *pipeline.Runner
	Teams     *pipeline.Coordinator
	Providers config.ProviderConfig

	validate *validator.Validate
}

// New creates a new Handlers instance with all dependencies.
func New(s store.Store, reg *registry.Registry, run *pipeline.Runner, teams *pipeline.Coordinator, providers config.ProviderConfig) *Handlers {
	return &Handlers{
		Store:     s,
		Registry:  reg,
		Runner:    run,
		Teams:     teams,
		Providers: providers,
		validate:  validator.New(),
	}
}

// ── Generation ───────────────────────────────────────────────

func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Idea = strings.TrimSpace(req.Idea)
	if utf8.RuneCountInString(req.Idea) < models.MinIdeaLength {
		respondError(w, http.StatusBadRequest, "Please provide a more detailed startup idea (at least 10 characters)")
		return
	}

	p, err := provider.New(req.Provider, h.Providers)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	artifact, err := assembler.Assemble(r.Context(), req.Idea, p)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	docID, err := h.Store.SaveArtifact(r.Context(), artifact)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// The stored copy carries the storage id; the in-memory artifact
	// is re-keyed to match so the response is the canonical record.
	artifact.ID = docID

	log.Info().
		Str("artifact_id", artifact.ID).
		Str("brand", artifact.BrandName).
		Str("provider", string(p.Kind())).
		Msg("Startup package generated")
	respondJSON(w, http.StatusCreated, artifact)
}

func (h *Handlers) GetArtifact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "artifactId")

	artifact, err := h.Store.GetArtifact(r.Context(), id)
	if err != nil {
		if _, ok := err.(*store.ErrNotFound); ok {
			respondError(w, http.StatusNotFound, err.Error())
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusOK, artifact)
}

func (h *Handlers) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	artifacts, err := h.Store.ListArtifacts(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if artifacts == nil {
		artifacts = []models.Artifact{}
	}
	respondJSON(w, http.StatusOK, artifacts)
}

// ── Units ────────────────────────────────────────────────────

func (h *Handlers) ListUnits(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Registry.List())
}

func (h *Handlers) GetUnit(w http.ResponseWriter, r *http.Request) {
	unitID := chi.URLParam(r, "unitId")

	unit, err := h.Registry.Get(unitID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, unit)
}

// ── Pipelines ────────────────────────────────────────────────

type createPipelineRequest struct {
	// Template selects a built-in pipeline. Empty means custom.
	Template string                 `json:"template,omitempty"`
	Idea     string                 `json:"idea,omitempty"`
	Product  map[string]interface{} `json:"product,omitempty"`

	// Custom pipeline fields, used when Template is empty.
	Name        string                `json:"name,omitempty"`
	Description string                `json:"description,omitempty"`
	Steps       []models.PipelineStep `json:"steps,omitempty"`
}

func (h *Handlers) CreatePipeline(w http.ResponseWriter, r *http.Request) {
	var req createPipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var pl *models.Pipeline
	switch req.Template {
	case "startup-generation":
		idea := strings.TrimSpace(req.Idea)
		if utf8.RuneCountInString(idea) < models.MinIdeaLength {
			respondError(w, http.StatusBadRequest, "Please provide a more detailed startup idea (at least 10 characters)")
			return
		}
		pl = h.Runner.NewStartupGenerationPipeline(idea)

	case "marketing-campaign":
		if req.Product == nil {
			respondError(w, http.StatusBadRequest, "Missing product data")
			return
		}
		pl = h.Runner.NewMarketingCampaignPipeline(req.Product)

	case "":
		if req.Name == "" || len(req.Steps) == 0 {
			respondError(w, http.StatusBadRequest, "Custom pipelines require a name and at least one step")
			return
		}
		// Every referenced unit and operation must exist in the catalog.
		for _, step := range req.Steps {
			if _, err := h.Registry.Operation(step.UnitID, step.Operation); err != nil {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		pl = h.Runner.Define(req.Name, req.Description, req.Steps)

	default:
		respondError(w, http.StatusBadRequest, "Unknown pipeline template: "+req.Template)
		return
	}

	if err := h.Store.CreatePipeline(r.Context(), pl); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info().Str("pipeline_id", pl.ID).Str("name", pl.Name).Msg("Pipeline defined")
	respondJSON(w, http.StatusCreated, pl)
}

type executePipelineRequest struct {
	Provider models.ProviderKind `json:"provider,omitempty"`
}

func (h *Handlers) ExecutePipeline(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "pipelineId")

	pl, err := h.Store.GetPipeline(r.Context(), id)
	if err != nil {
		if _, ok := err.(*store.ErrNotFound); ok {
			respondError(w, http.StatusNotFound, err.Error())
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	var req executePipelineRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	p, err := provider.New(req.Provider, h.Providers)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.Runner.Execute(r.Context(), p, pl); err != nil {
		if errors.Is(err, pipeline.ErrPipelineTerminal) || errors.Is(err, pipeline.ErrPipelineActive) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.Store.UpdatePipeline(r.Context(), pl); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Step failures are reported through pipeline.status, not HTTP errors.
	respondJSON(w, http.StatusOK, pl)
}

func (h *Handlers) GetPipeline(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "pipelineId")

	pl, err := h.Store.GetPipeline(r.Context(), id)
	if err != nil {
		if _, ok := err.(*store.ErrNotFound); ok {
			respondError(w, http.StatusNotFound, err.Error())
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusOK, pl)
}

func (h *Handlers) ListPipelines(w http.ResponseWriter, r *http.Request) {
	pipelines, err := h.Store.ListPipelines(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if pipelines == nil {
		pipelines = []models.Pipeline{}
	}
	respondJSON(w, http.StatusOK, pipelines)
}

// ── Teams ────────────────────────────────────────────────────

type createTeamRequest struct {
	Name    string   `json:"name" validate:"required"`
	UnitIDs []string `json:"unitIds" validate:"required,min=1"`
}

func (h *Handlers) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.Teams.CreateTeam(r.Context(), req.Name, req.UnitIDs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, team)
}

func (h *Handlers) GetTeam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "teamId")

	team, err := h.Store.GetTeam(r.Context(), id)
	if err != nil {
		if _, ok := err.(*store.ErrNotFound); ok {
			respondError(w, http.StatusNotFound, err.Error())
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *Handlers) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Store.ListTeams(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}
	respondJSON(w, http.StatusOK, teams)
}

// ── Helpers ──────────────────────────────────────────────────

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
