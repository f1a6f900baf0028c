package differ

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/delta/pkg/types"
)

// FieldChange is the changeset of one field, tagged for dispatch.
type FieldChange struct {
	Tag      uint8              `json:"tag" yaml:"tag"`
	Name     string             `json:"name" yaml:"name"`
	Strategy types.StrategyType `json:"strategy" yaml:"strategy"`
	Changes  any                `json:"changes" yaml:"changes"` // strategy changeset, e.g. []ordered.Change[T]
}

// Changeset represents all field changes between two values.
type Changeset struct {
	Changes []FieldChange    `json:"changes" yaml:"changes"`
	Summary ChangesetSummary `json:"summary" yaml:"summary"`
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	FieldsChanged int                        `json:"fields_changed" yaml:"fields_changed"`
	ByStrategy    map[types.StrategyType]int `json:"by_strategy,omitempty" yaml:"by_strategy,omitempty"`
	TotalChanges  int                        `json:"total_changes" yaml:"total_changes"`
}

// summarize computes the summary for a list of field changes.
func summarize(changes []FieldChange) ChangesetSummary {
	s := ChangesetSummary{FieldsChanged: len(changes)}
	for _, fc := range changes {
		n := countOf(fc.Changes)
		if s.ByStrategy == nil {
			s.ByStrategy = make(map[types.StrategyType]int)
		}
		s.ByStrategy[fc.Strategy] += n
		s.TotalChanges += n
	}
	return s
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c != nil && c.Summary.TotalChanges > 0
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return !c.HasChanges()
}

// Field returns the change for the named field, or nil.
func (c *Changeset) Field(name string) *FieldChange {
	for i := range c.Changes {
		if c.Changes[i].Name == name {
			return &c.Changes[i]
		}
	}
	return nil
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	parts := make([]string, 0, len(c.Changes))
	for _, fc := range c.Changes {
		parts = append(parts, fmt.Sprintf("%s: %d", fc.Name, countOf(fc.Changes)))
	}
	return fmt.Sprintf("Changeset: %s (Total: %d changes)", strings.Join(parts, ", "), c.Summary.TotalChanges)
}

// Print writes a detailed, human-readable view of the changeset to w.
func (c *Changeset) Print(w io.Writer) {
	fmt.Fprintln(w, c.String())
	if c.IsEmpty() {
		return
	}
	fmt.Fprintln(w, strings.Repeat("─", 80))
	for _, fc := range c.Changes {
		fmt.Fprintf(w, "\n🔄 %s [%s] (tag %d):\n", fc.Name, fc.Strategy, fc.Tag)
		fmt.Fprintf(w, "  • %v\n", fc.Changes)
	}
}
