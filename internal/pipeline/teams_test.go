package pipeline_test

import (
	"context"
	"testing"

	"github.com/instastartup/instastartup/internal/pipeline"
	"github.com/instastartup/instastartup/internal/registry"
	"github.com/instastartup/instastartup/internal/store"
)

func newCoordinator(t *testing.T) (*pipeline.Coordinator, store.Store) {
	t.Helper()
	s := store.NewMemoryStore(t.TempDir())
	t.Cleanup(func() { s.Close() })
	return pipeline.NewCoordinator(s, registry.New()), s
}

func TestCreateTeam_DropsUnknownUnits(t *testing.T) {
	c, _ := newCoordinator(t)

	team, err := c.CreateTeam(context.Background(), "launch crew", []string{
		"product-manager",
		"ghost-unit",
		"engineer",
	})
	if err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}
	if len(team.MemberUnitIDs) != 2 {
		t.Fatalf("MemberUnitIDs len = %d, want 2", len(team.MemberUnitIDs))
	}
	for _, id := range team.MemberUnitIDs {
		if id == "ghost-unit" {
			t.Error("unknown unit kept as member")
		}
	}
}

func TestRecordExecution_UpdatesMemberTeams(t *testing.T) {
	c, s := newCoordinator(t)
	ctx := context.Background()

	team, err := c.CreateTeam(ctx, "builders", []string{"engineer", "designer"})
	if err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}
	other, err := c.CreateTeam(ctx, "growth", []string{"marketing-lead"})
	if err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}

	c.RecordExecution(ctx, "engineer", `{"stack": ["go", "postgres"]}`)

	got, err := s.GetTeam(ctx, team.ID)
	if err != nil {
		t.Fatalf("GetTeam() error = %v", err)
	}
	if len(got.MessageHistory) != 1 {
		t.Fatalf("MessageHistory len = %d, want 1", len(got.MessageHistory))
	}
	if got.MessageHistory[0].UnitID != "engineer" {
		t.Errorf("message UnitID = %q, want engineer", got.MessageHistory[0].UnitID)
	}
	latest, ok := got.SharedMemory["engineer-latest"]
	if !ok {
		t.Fatal("SharedMemory missing engineer-latest")
	}
	if _, ok := latest.(map[string]interface{}); !ok {
		t.Errorf("engineer-latest type = %T, want parsed JSON object", latest)
	}

	// Teams without the unit stay untouched.
	gotOther, _ := s.GetTeam(ctx, other.ID)
	if len(gotOther.MessageHistory) != 0 {
		t.Errorf("non-member team MessageHistory len = %d, want 0", len(gotOther.MessageHistory))
	}
}

func TestRecordExecution_NonJSONContentStoredRaw(t *testing.T) {
	c, s := newCoordinator(t)
	ctx := context.Background()

	team, err := c.CreateTeam(ctx, "support", []string{"customer-success"})
	if err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}

	c.RecordExecution(ctx, "customer-success", "plain text reply")

	got, _ := s.GetTeam(ctx, team.ID)
	if got.SharedMemory["customer-success-latest"] != "plain text reply" {
		t.Errorf("SharedMemory value = %v, want the raw string", got.SharedMemory["customer-success-latest"])
	}
}
