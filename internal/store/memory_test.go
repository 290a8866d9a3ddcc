package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/instastartup/instastartup/internal/store"
	"github.com/instastartup/instastartup/pkg/models"
)

// newTestStore creates a fresh store persisting to a temp dir.
func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s := store.NewMemoryStore(t.TempDir())
	t.Cleanup(func() { s.Close() })
	return s
}

// ─── Artifacts ───────────────────────────────────────────────

func TestSaveArtifact_AssignsStorageID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	artifact := &models.Artifact{
		ID:        "pre-save-id",
		Idea:      "an AI-powered meal planning app",
		BrandName: "MealMind",
		CreatedAt: time.Now().UTC(),
	}

	docID, err := s.SaveArtifact(ctx, artifact)
	if err != nil {
		t.Fatalf("SaveArtifact() error = %v", err)
	}
	if docID == "" {
		t.Fatal("SaveArtifact() returned empty id")
	}
	if docID == "pre-save-id" {
		t.Error("SaveArtifact() kept the caller id, want a storage-assigned one")
	}

	got, err := s.GetArtifact(ctx, docID)
	if err != nil {
		t.Fatalf("GetArtifact(%q) error = %v", docID, err)
	}
	if got.ID != docID {
		t.Errorf("stored artifact ID = %q, want %q", got.ID, docID)
	}
	if got.BrandName != "MealMind" {
		t.Errorf("stored artifact BrandName = %q, want %q", got.BrandName, "MealMind")
	}

	// The pre-save id is not a valid lookup key.
	if _, err := s.GetArtifact(ctx, "pre-save-id"); err == nil {
		t.Error("GetArtifact(pre-save-id) succeeded, want not found")
	}
}

func TestGetArtifact_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetArtifact(context.Background(), "missing")
	if err == nil {
		t.Fatal("GetArtifact() error = nil, want not found")
	}
	if _, ok := err.(*store.ErrNotFound); !ok {
		t.Errorf("GetArtifact() error type = %T, want *store.ErrNotFound", err)
	}
}

func TestListArtifacts_NewestFirstWithLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		a := &models.Artifact{
			Idea:      "idea",
			BrandName: "Brand",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if _, err := s.SaveArtifact(ctx, a); err != nil {
			t.Fatalf("SaveArtifact() error = %v", err)
		}
	}

	got, err := s.ListArtifacts(ctx, 3)
	if err != nil {
		t.Fatalf("ListArtifacts() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListArtifacts() len = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Errorf("ListArtifacts() not newest-first at index %d", i)
		}
	}
}

// ─── Pipelines ───────────────────────────────────────────────

func TestPipelineCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pl := &models.Pipeline{
		ID:        "pl-1",
		Name:      "test pipeline",
		Status:    models.PipelinePending,
		Results:   map[string]interface{}{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreatePipeline(ctx, pl); err != nil {
		t.Fatalf("CreatePipeline() error = %v", err)
	}

	got, err := s.GetPipeline(ctx, "pl-1")
	if err != nil {
		t.Fatalf("GetPipeline() error = %v", err)
	}
	if got.Status != models.PipelinePending {
		t.Errorf("Status = %q, want %q", got.Status, models.PipelinePending)
	}

	got.Status = models.PipelineCompleted
	got.Results["define_product_scope"] = map[string]interface{}{"ok": true}
	if err := s.UpdatePipeline(ctx, got); err != nil {
		t.Fatalf("UpdatePipeline() error = %v", err)
	}

	got2, _ := s.GetPipeline(ctx, "pl-1")
	if got2.Status != models.PipelineCompleted {
		t.Errorf("after update, Status = %q, want %q", got2.Status, models.PipelineCompleted)
	}
	if _, ok := got2.Results["define_product_scope"]; !ok {
		t.Error("after update, Results missing recorded step")
	}
}

func TestGetPipeline_CopyDoesNotAliasStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pl := &models.Pipeline{
		ID:     "pl-iso",
		Name:   "isolation",
		Status: models.PipelinePending,
		Steps: []models.PipelineStep{
			{UnitID: "engineer", Operation: "select_tech_stack", Parameters: map[string]interface{}{"idea": "x"}},
		},
		Results:   map[string]interface{}{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreatePipeline(ctx, pl); err != nil {
		t.Fatalf("CreatePipeline() error = %v", err)
	}

	// Mutating a fetched copy must not reach the stored record.
	got, err := s.GetPipeline(ctx, "pl-iso")
	if err != nil {
		t.Fatalf("GetPipeline() error = %v", err)
	}
	got.Status = models.PipelineRunning
	got.Results["select_tech_stack"] = map[string]interface{}{"partial": true}
	got.Steps[0].Parameters["idea"] = "mutated"

	fresh, err := s.GetPipeline(ctx, "pl-iso")
	if err != nil {
		t.Fatalf("GetPipeline() error = %v", err)
	}
	if fresh.Status != models.PipelinePending {
		t.Errorf("stored Status = %q, want pending", fresh.Status)
	}
	if len(fresh.Results) != 0 {
		t.Errorf("stored Results len = %d, want 0 (copy mutation leaked into the store)", len(fresh.Results))
	}
	if fresh.Steps[0].Parameters["idea"] != "x" {
		t.Errorf("stored step parameter = %v, want %q", fresh.Steps[0].Parameters["idea"], "x")
	}

	// The caller's original record is isolated from the store too.
	pl.Results["late_write"] = true
	fresh2, _ := s.GetPipeline(ctx, "pl-iso")
	if len(fresh2.Results) != 0 {
		t.Errorf("stored Results len = %d after caller mutation, want 0", len(fresh2.Results))
	}
}

func TestGetPipeline_ConcurrentCopyMutation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pl := &models.Pipeline{
		ID:        "pl-race",
		Status:    models.PipelinePending,
		Results:   map[string]interface{}{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreatePipeline(ctx, pl); err != nil {
		t.Fatalf("CreatePipeline() error = %v", err)
	}

	// Each goroutine mutates its own fetched copy; without real copies
	// these writes hit one shared map.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			got, err := s.GetPipeline(ctx, "pl-race")
			if err != nil {
				t.Errorf("GetPipeline() error = %v", err)
				return
			}
			for j := 0; j < 100; j++ {
				got.Results[fmt.Sprintf("step-%d-%d", n, j)] = j
			}
		}(i)
	}
	wg.Wait()

	fresh, err := s.GetPipeline(ctx, "pl-race")
	if err != nil {
		t.Fatalf("GetPipeline() error = %v", err)
	}
	if len(fresh.Results) != 0 {
		t.Errorf("stored Results len = %d, want 0", len(fresh.Results))
	}
}

func TestUpdatePipeline_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdatePipeline(context.Background(), &models.Pipeline{ID: "ghost"})
	if err == nil {
		t.Fatal("UpdatePipeline() error = nil, want not found")
	}
	if _, ok := err.(*store.ErrNotFound); !ok {
		t.Errorf("UpdatePipeline() error type = %T, want *store.ErrNotFound", err)
	}
}

// ─── Teams ───────────────────────────────────────────────────

func TestTeamCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	team := &models.Team{
		ID:            "team-1",
		Name:          "launch crew",
		MemberUnitIDs: []string{"product-manager", "engineer"},
		SharedMemory:  map[string]interface{}{},
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.CreateTeam(ctx, team); err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}

	got, err := s.GetTeam(ctx, "team-1")
	if err != nil {
		t.Fatalf("GetTeam() error = %v", err)
	}
	if len(got.MemberUnitIDs) != 2 {
		t.Errorf("MemberUnitIDs len = %d, want 2", len(got.MemberUnitIDs))
	}

	got.SharedMemory["engineer-latest"] = map[string]interface{}{"stack": "go"}
	if err := s.UpdateTeam(ctx, got); err != nil {
		t.Fatalf("UpdateTeam() error = %v", err)
	}

	got2, _ := s.GetTeam(ctx, "team-1")
	if _, ok := got2.SharedMemory["engineer-latest"]; !ok {
		t.Error("after update, SharedMemory missing key")
	}
}

func TestGetTeam_CopyDoesNotAliasStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	team := &models.Team{
		ID:            "team-iso",
		Name:          "isolation crew",
		MemberUnitIDs: []string{"engineer"},
		SharedMemory:  map[string]interface{}{},
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.CreateTeam(ctx, team); err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}

	got, err := s.GetTeam(ctx, "team-iso")
	if err != nil {
		t.Fatalf("GetTeam() error = %v", err)
	}
	got.SharedMemory["engineer-latest"] = "leaked"
	got.MessageHistory = append(got.MessageHistory, models.UnitMessage{
		ID: "m1", UnitID: "engineer", Content: "leaked",
	})

	fresh, err := s.GetTeam(ctx, "team-iso")
	if err != nil {
		t.Fatalf("GetTeam() error = %v", err)
	}
	if len(fresh.SharedMemory) != 0 {
		t.Errorf("stored SharedMemory len = %d, want 0 (copy mutation leaked into the store)", len(fresh.SharedMemory))
	}
	if len(fresh.MessageHistory) != 0 {
		t.Errorf("stored MessageHistory len = %d, want 0", len(fresh.MessageHistory))
	}
}

// ─── Persistence ─────────────────────────────────────────────

func TestSnapshotSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1 := store.NewMemoryStore(dir)
	docID, err := s1.SaveArtifact(ctx, &models.Artifact{
		Idea:      "a marketplace for local produce",
		BrandName: "FreshFind",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("SaveArtifact() error = %v", err)
	}
	// Close flushes the final snapshot.
	if err := s1.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s2 := store.NewMemoryStore(dir)
	t.Cleanup(func() { s2.Close() })

	got, err := s2.GetArtifact(ctx, docID)
	if err != nil {
		t.Fatalf("GetArtifact() after restart error = %v", err)
	}
	if got.BrandName != "FreshFind" {
		t.Errorf("after restart, BrandName = %q, want %q", got.BrandName, "FreshFind")
	}
}
