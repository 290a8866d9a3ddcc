// Package registry holds the fixed catalog of task units ("agents")
// used by the pipeline runner. The catalog is built once at startup
// and is read-only afterwards, so concurrent reads need no locking.
//
// A unit performs an operation by building a JSON-only prompt from the
// operation's declared description and output shape and sending it
// through the capability provider's text path. The raw response is
// returned untouched; parsing it is the caller's contract.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/instastartup/instastartup/internal/provider"
	"github.com/instastartup/instastartup/pkg/models"
)

// ErrUnitNotFound is returned when a caller references an unknown unit id.
type ErrUnitNotFound struct {
	ID string
}

func (e *ErrUnitNotFound) Error() string {
	return "task unit not found: " + e.ID
}

// ErrOperationUnknown is returned when a unit does not declare the
// requested operation.
type ErrOperationUnknown struct {
	UnitID    string
	Operation string
}

func (e *ErrOperationUnknown) Error() string {
	return fmt.Sprintf("unit %s has no operation %q", e.UnitID, e.Operation)
}

// Registry is the static task-unit catalog.
type Registry struct {
	units map[string]*models.TaskUnit
	order []string
}

// New builds the registry with the six built-in units.
func New() *Registry {
	r := &Registry{units: make(map[string]*models.TaskUnit)}
	for _, u := range builtinUnits() {
		r.register(u)
	}
	return r
}

func (r *Registry) register(u *models.TaskUnit) {
	r.units[u.ID] = u
	r.order = append(r.order, u.ID)
}

// Get returns the unit with the given id, or *ErrUnitNotFound.
func (r *Registry) Get(id string) (*models.TaskUnit, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, &ErrUnitNotFound{ID: id}
	}
	return u, nil
}

// List returns all units in registration order.
func (r *Registry) List() []models.TaskUnit {
	out := make([]models.TaskUnit, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.units[id])
	}
	return out
}

// Operation returns a unit's declared operation, or *ErrOperationUnknown.
func (r *Registry) Operation(unitID, name string) (*models.Operation, error) {
	u, err := r.Get(unitID)
	if err != nil {
		return nil, err
	}
	for i := range u.Operations {
		if u.Operations[i].Name == name {
			return &u.Operations[i], nil
		}
	}
	return nil, &ErrOperationUnknown{UnitID: unitID, Operation: name}
}

// Execute performs a unit operation: it builds the operation prompt
// and sends it through the provider's text path, returning the raw
// assistant text. Provider errors propagate; the registry has no
// fallback layer.
func (r *Registry) Execute(ctx context.Context, p provider.Provider, unitID, operation string, params map[string]interface{}) (string, error) {
	u, err := r.Get(unitID)
	if err != nil {
		return "", err
	}
	op, err := r.Operation(unitID, operation)
	if err != nil {
		return "", err
	}
	return p.GenerateText(ctx, operationPrompt(u, op, params))
}

// operationPrompt builds a JSON-only prompt from the unit's role, the
// operation's declared purpose and output shape, and the merged
// parameters (prerequisite outputs included under their own keys).
func operationPrompt(u *models.TaskUnit, op *models.Operation, params map[string]interface{}) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "As an experienced %s (%s), perform the task %q: %s\n\n",
		u.DisplayName, u.Description, op.Name, op.Description)

	if len(params) > 0 {
		sb.WriteString("Parameters:\n")
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, _ := json.Marshal(params[k])
			fmt.Fprintf(&sb, "- %s: %s\n", k, string(v))
		}
		sb.WriteString("\n")
	}

	if len(op.OutputSchema) > 0 {
		shape, _ := json.MarshalIndent(op.OutputSchema, "", "  ")
		fmt.Fprintf(&sb, "Return ONLY valid JSON matching this shape:\n%s\n\n", string(shape))
	} else {
		sb.WriteString("Return ONLY a valid JSON object.\n\n")
	}

	sb.WriteString("IMPORTANT: Return ONLY the JSON object, no markdown, no explanation, no code blocks.")
	return sb.String()
}
