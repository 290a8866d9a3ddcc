package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/instastartup/instastartup/internal/registry"
	"github.com/instastartup/instastartup/internal/store"
	"github.com/instastartup/instastartup/pkg/models"
)

// Coordinator manages unit teams: creation, membership, and the shared
// memory updated whenever a member unit executes a task. All team
// mutation goes through the coordinator's mutex.
type Coordinator struct {
	mu       sync.Mutex
	store    store.TeamStore
	registry *registry.Registry
}

// NewCoordinator creates a team coordinator backed by the given store.
func NewCoordinator(st store.TeamStore, reg *registry.Registry) *Coordinator {
	return &Coordinator{store: st, registry: reg}
}

// CreateTeam creates a team from the given unit ids. Unknown ids are
// silently dropped rather than rejected.
func (c *Coordinator) CreateTeam(ctx context.Context, name string, unitIDs []string) (*models.Team, error) {
	members := make([]string, 0, len(unitIDs))
	for _, id := range unitIDs {
		if _, err := c.registry.Get(id); err != nil {
			log.Warn().Str("unit", id).Str("team", name).Msg("Skipping unknown unit in team")
			continue
		}
		members = append(members, id)
	}

	team := &models.Team{
		ID:             uuid.New().String(),
		Name:           name,
		MemberUnitIDs:  members,
		SharedMemory:   make(map[string]interface{}),
		MessageHistory: []models.UnitMessage{},
		CreatedAt:      time.Now().UTC(),
	}

	if err := c.store.CreateTeam(ctx, team); err != nil {
		return nil, err
	}

	log.Info().Str("team_id", team.ID).Str("name", name).Int("members", len(members)).Msg("Team created")
	return team, nil
}

// RecordExecution propagates a unit's task output to every team the
// unit belongs to: the raw content is appended to the message history
// and the parsed value is written to shared memory under the unit's
// "-latest" key. Content that is not JSON is stored as the raw string.
func (c *Coordinator) RecordExecution(ctx context.Context, unitID, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	teams, err := c.store.ListTeams(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Cannot list teams for execution record")
		return
	}

	msg := models.UnitMessage{
		ID:        uuid.New().String(),
		UnitID:    unitID,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	var latest interface{}
	if err := json.Unmarshal([]byte(content), &latest); err != nil {
		latest = content
	}

	for i := range teams {
		team := &teams[i]
		if !memberOf(team, unitID) {
			continue
		}
		team.MessageHistory = append(team.MessageHistory, msg)
		if team.SharedMemory == nil {
			team.SharedMemory = make(map[string]interface{})
		}
		team.SharedMemory[unitID+"-latest"] = latest

		if err := c.store.UpdateTeam(ctx, team); err != nil {
			log.Warn().Err(err).Str("team_id", team.ID).Msg("Failed to record team execution")
		}
	}
}

func memberOf(team *models.Team, unitID string) bool {
	for _, id := range team.MemberUnitIDs {
		if id == unitID {
			return true
		}
	}
	return false
}
