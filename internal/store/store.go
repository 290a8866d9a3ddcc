// Package store provides the storage interface and implementations for
// the InstaStartup service. The in-memory implementation with JSON
// snapshot persistence is the default; handlers depend only on the
// Store interface so a document-store backend can be swapped in.
package store

import (
	"context"

	"github.com/instastartup/instastartup/pkg/models"
)

// Store is the primary storage interface.
type Store interface {
	ArtifactStore
	PipelineStore
	TeamStore

	// Ping checks if the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases all resources held by the store.
	Close() error
}

// ── Artifact Store ──────────────────────────────────────────

type ArtifactStore interface {
	// SaveArtifact persists the artifact and returns the
	// storage-assigned document id, which becomes the canonical
	// lookup key. The caller must re-key its in-memory copy under
	// the returned id.
	SaveArtifact(ctx context.Context, artifact *models.Artifact) (string, error)

	// GetArtifact returns the artifact stored under id, or *ErrNotFound.
	GetArtifact(ctx context.Context, id string) (*models.Artifact, error)

	// ListArtifacts returns up to limit artifacts, newest first.
	ListArtifacts(ctx context.Context, limit int) ([]models.Artifact, error)
}

// ── Pipeline Store ──────────────────────────────────────────

type PipelineStore interface {
	CreatePipeline(ctx context.Context, p *models.Pipeline) error
	GetPipeline(ctx context.Context, id string) (*models.Pipeline, error)
	UpdatePipeline(ctx context.Context, p *models.Pipeline) error
	ListPipelines(ctx context.Context) ([]models.Pipeline, error)
}

// ── Team Store ──────────────────────────────────────────────

type TeamStore interface {
	CreateTeam(ctx context.Context, team *models.Team) error
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	UpdateTeam(ctx context.Context, team *models.Team) error
	ListTeams(ctx context.Context) ([]models.Team, error)
}

// ── Errors ──────────────────────────────────────────────────

// ErrNotFound is returned when a requested entity does not exist.
type ErrNotFound struct {
	Entity string
	Key    string
}

func (e *ErrNotFound) Error() string {
	return e.Entity + " not found: " + e.Key
}
