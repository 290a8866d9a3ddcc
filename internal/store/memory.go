// Package store — in-memory Store implementation.
// Supports file-based snapshot persistence so data survives restarts.
package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/instastartup/instastartup/pkg/models"
)

// snapshot is the JSON-serializable shape written to disk.
type snapshot struct {
	Artifacts map[string]*models.Artifact `json:"artifacts"`
	Pipelines map[string]*models.Pipeline `json:"pipelines"`
	Teams     map[string]*models.Team     `json:"teams"`
}

// MemoryStore implements Store with in-memory maps.
type MemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]*models.Artifact // key: storage id
	pipelines map[string]*models.Pipeline // key: id
	teams     map[string]*models.Team     // key: id

	// Persistence
	snapshotPath string        // empty = no persistence
	saveMu       sync.Mutex    // guards file writes
	saveCh       chan struct{} // debounce channel
	doneCh       chan struct{} // signals background goroutine to stop
	closeOnce    sync.Once
}

// NewMemoryStore creates a new in-memory store. If dataDir is empty,
// INSTASTARTUP_DATA_DIR is consulted, then ~/.instastartup. An
// unresolvable directory disables persistence rather than failing.
func NewMemoryStore(dataDir string) *MemoryStore {
	m := &MemoryStore{
		artifacts: make(map[string]*models.Artifact),
		pipelines: make(map[string]*models.Pipeline),
		teams:     make(map[string]*models.Team),
		saveCh:    make(chan struct{}, 1),
		doneCh:    make(chan struct{}),
	}

	if dataDir == "" {
		dataDir = os.Getenv("INSTASTARTUP_DATA_DIR")
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			dataDir = filepath.Join(home, ".instastartup")
		}
	}
	if dataDir != "" {
		m.snapshotPath = filepath.Join(dataDir, "data.json")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			log.Warn().Err(err).Str("dir", dataDir).Msg("Cannot create data dir, persistence disabled")
			m.snapshotPath = ""
		}
	}

	if m.snapshotPath != "" {
		m.loadSnapshot()
		go m.saveLoop()
	}

	log.Info().Str("snapshot", m.snapshotPath).Msg("Memory store configured")
	return m
}

// ── Artifacts ───────────────────────────────────────────────

// SaveArtifact stores a copy of the artifact under a fresh
// storage-assigned id and returns that id. The stored copy carries the
// new id; the caller re-keys its own copy.
func (m *MemoryStore) SaveArtifact(_ context.Context, artifact *models.Artifact) (string, error) {
	docID := uuid.New().String()

	stored := artifact.Clone()
	stored.ID = docID

	m.mu.Lock()
	m.artifacts[docID] = stored
	m.mu.Unlock()

	m.requestSave()
	return docID, nil
}

func (m *MemoryStore) GetArtifact(_ context.Context, id string) (*models.Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.artifacts[id]
	if !ok {
		return nil, &ErrNotFound{Entity: "artifact", Key: id}
	}
	return a.Clone(), nil
}

func (m *MemoryStore) ListArtifacts(_ context.Context, limit int) ([]models.Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Artifact, 0, len(m.artifacts))
	for _, a := range m.artifacts {
		out = append(out, *a.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── Pipelines ───────────────────────────────────────────────

func (m *MemoryStore) CreatePipeline(_ context.Context, p *models.Pipeline) error {
	m.mu.Lock()
	m.pipelines[p.ID] = p.Clone()
	m.mu.Unlock()
	m.requestSave()
	return nil
}

func (m *MemoryStore) GetPipeline(_ context.Context, id string) (*models.Pipeline, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pipelines[id]
	if !ok {
		return nil, &ErrNotFound{Entity: "pipeline", Key: id}
	}
	return p.Clone(), nil
}

func (m *MemoryStore) UpdatePipeline(_ context.Context, p *models.Pipeline) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pipelines[p.ID]; !ok {
		return &ErrNotFound{Entity: "pipeline", Key: p.ID}
	}
	m.pipelines[p.ID] = p.Clone()
	m.requestSave()
	return nil
}

func (m *MemoryStore) ListPipelines(_ context.Context) ([]models.Pipeline, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Pipeline, 0, len(m.pipelines))
	for _, p := range m.pipelines {
		out = append(out, *p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ── Teams ───────────────────────────────────────────────────

func (m *MemoryStore) CreateTeam(_ context.Context, team *models.Team) error {
	m.mu.Lock()
	m.teams[team.ID] = team.Clone()
	m.mu.Unlock()
	m.requestSave()
	return nil
}

func (m *MemoryStore) GetTeam(_ context.Context, id string) (*models.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.teams[id]
	if !ok {
		return nil, &ErrNotFound{Entity: "team", Key: id}
	}
	return t.Clone(), nil
}

func (m *MemoryStore) UpdateTeam(_ context.Context, team *models.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.teams[team.ID]; !ok {
		return &ErrNotFound{Entity: "team", Key: team.ID}
	}
	m.teams[team.ID] = team.Clone()
	m.requestSave()
	return nil
}

func (m *MemoryStore) ListTeams(_ context.Context) ([]models.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Team, 0, len(m.teams))
	for _, t := range m.teams {
		out = append(out, *t.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ── Lifecycle ───────────────────────────────────────────────

func (m *MemoryStore) Ping(_ context.Context) error { return nil }

func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() {
		close(m.doneCh)
		if m.snapshotPath != "" {
			m.saveSnapshot()
		}
	})
	return nil
}

// ── Snapshot persistence ────────────────────────────────────

// requestSave signals the background goroutine to persist data.
// Non-blocking: coalesces multiple rapid writes into one disk flush.
func (m *MemoryStore) requestSave() {
	if m.snapshotPath == "" {
		return
	}
	select {
	case m.saveCh <- struct{}{}:
	default:
		// Already pending
	}
}

// saveLoop debounces save requests (max 1 write per 500ms).
func (m *MemoryStore) saveLoop() {
	for {
		select {
		case <-m.doneCh:
			return
		case <-m.saveCh:
			time.Sleep(500 * time.Millisecond)
			m.saveSnapshot()
		}
	}
}

// saveSnapshot persists all data to disk as JSON.
func (m *MemoryStore) saveSnapshot() {
	m.mu.RLock()
	snap := snapshot{
		Artifacts: m.artifacts,
		Pipelines: m.pipelines,
		Teams:     m.teams,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	m.mu.RUnlock()

	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal snapshot")
		return
	}

	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	// Write to temp file then rename for atomicity
	tmp := m.snapshotPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		log.Error().Err(err).Str("path", tmp).Msg("Failed to write snapshot tmp")
		return
	}
	if err := os.Rename(tmp, m.snapshotPath); err != nil {
		log.Error().Err(err).Str("path", m.snapshotPath).Msg("Failed to rename snapshot")
		return
	}

	log.Debug().Str("path", m.snapshotPath).Msg("Snapshot saved")
}

// loadSnapshot reads data from disk on startup.
func (m *MemoryStore) loadSnapshot() {
	data, err := os.ReadFile(m.snapshotPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", m.snapshotPath).Msg("No snapshot file found, starting fresh")
			return
		}
		log.Warn().Err(err).Str("path", m.snapshotPath).Msg("Failed to read snapshot")
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Warn().Err(err).Str("path", m.snapshotPath).Msg("Snapshot corrupt, starting fresh")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.Artifacts != nil {
		m.artifacts = snap.Artifacts
	}
	if snap.Pipelines != nil {
		m.pipelines = snap.Pipelines
	}
	if snap.Teams != nil {
		m.teams = snap.Teams
	}

	log.Info().
		Int("artifacts", len(m.artifacts)).
		Int("pipelines", len(m.pipelines)).
		Int("teams", len(m.teams)).
		Msg("Snapshot loaded")
}
