package cmd

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"

	"spritepad/keys"
	"spritepad/log"
)

// ApplyKeyConfig rebinds the registry from user configuration. The whole
// table is reset, bindDefaults restores the built-in chords, then each
// override replaces the named command's chords entirely. An override with
// an empty spec list unbinds the command. Unknown command names and
// malformed specs fail the apply up front so a typo can't leave a
// half-rebound table.
func ApplyKeyConfig(r *Registry, overrides map[string][]string, bindDefaults func(*Registry)) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	// Validate before touching the registry.
	for _, name := range names {
		if r.FindByName(name) == nil {
			return fmt.Errorf("key config: unknown command %q%s", name, suggestFor(r, name))
		}
		for _, spec := range overrides[name] {
			if _, err := keys.ParseSpec(spec); err != nil {
				return fmt.Errorf("key config: %w", err)
			}
		}
	}

	r.ResetAllKeys()
	if bindDefaults != nil {
		bindDefaults(r)
	}

	for _, name := range names {
		r.ResetKeys(name)
		cmd := r.FindByName(name)
		for _, spec := range overrides[name] {
			if err := r.BindKey(cmd, spec); err != nil {
				return fmt.Errorf("key config: %w", err)
			}
		}
	}

	if len(overrides) > 0 {
		log.InfoLog.Printf("applied %d key binding override(s)", len(overrides))
	}
	return nil
}

// ResetKeys clears the named command's accelerator only.
func (r *Registry) ResetKeys(name string) {
	for i := range r.entries {
		if r.entries[i].cmd.Name() == name {
			r.entries[i].accel = nil
			return
		}
	}
}

// suggestFor proposes the closest registered command name for an unknown
// one, if any is close enough to look like a typo.
func suggestFor(r *Registry, name string) string {
	best := ""
	bestDist := 4
	for _, c := range r.Commands() {
		d := levenshtein.ComputeDistance(name, c.Name())
		if d < bestDist {
			best, bestDist = c.Name(), d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
