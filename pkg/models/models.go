// Package models defines the shared data types for the InstaStartup
// generation service: the composite startup Artifact produced by the
// assembler, the task-unit catalog entries, and the pipeline records
// executed by the pipeline runner.
package models

import (
	"time"
)

// ── Generation Request ───────────────────────────────────────

// MinIdeaLength is the minimum trimmed length of a startup idea.
const MinIdeaLength = 10

// ProviderKind identifies a generative-AI backend.
type ProviderKind string

const (
	ProviderOpenAI ProviderKind = "openai"
	ProviderGemini ProviderKind = "gemini"
	ProviderGitHub ProviderKind = "github"
)

// GenerationRequest is the immutable input to artifact assembly.
type GenerationRequest struct {
	Idea     string       `json:"idea" validate:"required"`
	Provider ProviderKind `json:"provider" validate:"omitempty,oneof=openai gemini github"`
}

// ── Artifact (startup package) ───────────────────────────────

// ColorScheme is a brand color palette in hex.
type ColorScheme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// MarketingCopy is the generated website copy block.
type MarketingCopy struct {
	HeroTitle    string `json:"heroTitle"`
	HeroSubtitle string `json:"heroSubtitle"`
	CTAText      string `json:"ctaText"`
	AboutText    string `json:"aboutText"`
}

// PricingPlan is one tier of the generated pricing table.
type PricingPlan struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Features []string `json:"features"`
}

// Pricing holds the ordered pricing tiers. Always three plans.
type Pricing struct {
	Plans []PricingPlan `json:"plans"`
}

// SlideType enumerates the fixed 10-slide deck structure.
type SlideType string

const (
	SlideTitle         SlideType = "title"
	SlideProblem       SlideType = "problem"
	SlideSolution      SlideType = "solution"
	SlideMarket        SlideType = "market"
	SlideProduct       SlideType = "product"
	SlideBusinessModel SlideType = "business-model"
	SlideCompetition   SlideType = "competition"
	SlideTeam          SlideType = "team"
	SlideFinancials    SlideType = "financials"
	SlideAsk           SlideType = "ask"
)

// Slide is one pitch-deck slide.
type Slide struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Type    SlideType `json:"type"`
}

// PitchDeck holds the ordered slides. Always ten slides.
type PitchDeck struct {
	Slides []Slide `json:"slides"`
}

// SocialMedia holds platform-specific launch copy.
type SocialMedia struct {
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
}

// Artifact is the complete generated startup package. The assembler
// returns only fully-populated artifacts: every field is either
// AI-derived or a documented fallback, never absent. Immutable after
// creation except for the ID, which the storage layer re-assigns on
// save (the caller re-keys the in-memory copy under the storage id).
type Artifact struct {
	ID             string        `json:"id"`
	Idea           string        `json:"idea"`
	BrandName      string        `json:"brandName"`
	Tagline        string        `json:"tagline"`
	Description    string        `json:"description"`
	TargetAudience string        `json:"targetAudience"`
	Colors         ColorScheme   `json:"colors"`
	MarketingCopy  MarketingCopy `json:"marketingCopy"`
	Features       []string      `json:"features"`
	BusinessModel  string        `json:"businessModel"`
	Pricing        Pricing       `json:"pricing"`
	PitchDeck      PitchDeck     `json:"pitchDeck"`
	SocialMedia    SocialMedia   `json:"socialMedia"`
	LogoURL        string        `json:"logoUrl"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// ── Task Units ───────────────────────────────────────────────

// Operation is one declared capability of a task unit, with documented
// input/output shapes. InputSchema is a JSON Schema fragment used for
// advisory parameter validation before invocation.
type Operation struct {
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	InputSchema  map[string]interface{} `json:"inputSchema,omitempty"`
	OutputSchema map[string]interface{} `json:"outputSchema,omitempty"`
}

// TaskUnit is a static catalog entry describing one task-performing
// unit ("agent"). Immutable after registry initialization.
type TaskUnit struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"displayName"`
	Description string      `json:"description"`
	Operations  []Operation `json:"operations"`
}

// UnitMessage records one executed task by a unit, appended to the
// message history of every team the unit belongs to.
type UnitMessage struct {
	ID        string                 `json:"id"`
	UnitID    string                 `json:"unitId"`
	Content   string                 `json:"content"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Team groups task units around shared memory and a message history.
// Mutation is serialized by the coordinator.
type Team struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	MemberUnitIDs  []string               `json:"memberUnitIds"`
	SharedMemory   map[string]interface{} `json:"sharedMemory"`
	MessageHistory []UnitMessage          `json:"messageHistory"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// ── Pipelines ────────────────────────────────────────────────

// PipelineStatus is the pipeline lifecycle state.
// pending → running → {completed | failed}; terminal states never
// transition again (a fresh pipeline must be defined to retry).
type PipelineStatus string

const (
	PipelinePending   PipelineStatus = "pending"
	PipelineRunning   PipelineStatus = "running"
	PipelineCompleted PipelineStatus = "completed"
	PipelineFailed    PipelineStatus = "failed"
)

// PipelineStep is a declared unit of pipeline work. Declared statically
// at pipeline-definition time and never mutated. Prerequisites name the
// operations of earlier steps whose results must exist before this step
// runs. The Parallel flag is carried for compatibility but advisory:
// the runner executes steps strictly sequentially.
type PipelineStep struct {
	UnitID        string                 `json:"unitId"`
	Operation     string                 `json:"operation"`
	Parameters    map[string]interface{} `json:"parameters,omitempty"`
	Prerequisites []string               `json:"prerequisites,omitempty"`
	Parallel      bool                   `json:"parallel,omitempty"`
}

// Pipeline is a declared sequence of steps with dependency constraints
// and a terminal status. Results maps operation names to the parsed
// JSON value returned by the executing unit; it only ever contains
// entries for steps that actually executed.
type Pipeline struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Steps       []PipelineStep         `json:"steps"`
	Status      PipelineStatus         `json:"status"`
	Results     map[string]interface{} `json:"results"`
	Error       string                 `json:"error,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	StartedAt   *time.Time             `json:"startedAt,omitempty"`
	CompletedAt *time.Time             `json:"completedAt,omitempty"`
	DurationMs  int64                  `json:"durationMs,omitempty"`
}

// Terminal reports whether the pipeline has finished (successfully or not).
func (p *Pipeline) Terminal() bool {
	return p.Status == PipelineCompleted || p.Status == PipelineFailed
}

// ── Copies ───────────────────────────────────────────────────
//
// The storage layer hands out copies, never its own records. A plain
// struct copy would alias the reference-typed fields, so each record
// type carries a Clone that copies them.

// Clone returns a copy whose Steps, step parameter maps, prerequisite
// lists, and Results do not alias the receiver's.
func (p *Pipeline) Clone() *Pipeline {
	cp := *p
	cp.Steps = make([]PipelineStep, len(p.Steps))
	for i, s := range p.Steps {
		cp.Steps[i] = s
		cp.Steps[i].Parameters = copyValueMap(s.Parameters)
		cp.Steps[i].Prerequisites = append([]string(nil), s.Prerequisites...)
	}
	cp.Results = copyValueMap(p.Results)
	return &cp
}

// Clone returns a copy whose member list, shared memory, and message
// history do not alias the receiver's.
func (t *Team) Clone() *Team {
	cp := *t
	cp.MemberUnitIDs = append([]string(nil), t.MemberUnitIDs...)
	cp.SharedMemory = copyValueMap(t.SharedMemory)
	cp.MessageHistory = make([]UnitMessage, len(t.MessageHistory))
	for i, msg := range t.MessageHistory {
		cp.MessageHistory[i] = msg
		cp.MessageHistory[i].Metadata = copyValueMap(msg.Metadata)
	}
	return &cp
}

// Clone returns a copy whose slice-typed fields do not alias the
// receiver's.
func (a *Artifact) Clone() *Artifact {
	cp := *a
	cp.Features = append([]string(nil), a.Features...)
	cp.Pricing.Plans = make([]PricingPlan, len(a.Pricing.Plans))
	for i, plan := range a.Pricing.Plans {
		cp.Pricing.Plans[i] = plan
		cp.Pricing.Plans[i].Features = append([]string(nil), plan.Features...)
	}
	cp.PitchDeck.Slides = append([]Slide(nil), a.PitchDeck.Slides...)
	return &cp
}

// copyValueMap copies the top level of a JSON-shaped map. Nested values
// come from json.Unmarshal and are treated as immutable once stored.
func copyValueMap(in map[string]interface{}) map[string]interface{} {
	if in == nil {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
