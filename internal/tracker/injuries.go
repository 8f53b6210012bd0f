// ABOUTME: Injury operations on the tracker.
// ABOUTME: Create, partial update, ID-prefix lookup, and the active filter.
package tracker

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/recovery/internal/models"
)

var (
	// ErrInjuryNotFound is returned by FindInjury when nothing matches.
	ErrInjuryNotFound = errors.New("injury not found")

	// ErrAmbiguousID is returned by FindInjury when a prefix matches several injuries.
	ErrAmbiguousID = errors.New("ambiguous id prefix")
)

// AddInjury stores a new injury under a freshly assigned ID. Any ID on in is ignored.
func (t *Tracker) AddInjury(in models.Injury) models.Injury {
	t.mu.Lock()
	defer t.mu.Unlock()

	stored := in.Clone()
	stored.ID = t.newID()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = t.now()
	}
	t.injuries = append(t.injuries, stored)
	t.persist()

	return stored.Clone()
}

// PatchInjury merges patch into the injury with id.
// It returns false and changes nothing when no injury has that id.
func (t *Tracker) PatchInjury(id uuid.UUID, patch models.InjuryPatch) (models.Injury, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOfInjury(id)
	if i < 0 {
		return models.Injury{}, false
	}
	patch.Apply(&t.injuries[i])
	t.persist()

	return t.injuries[i].Clone(), true
}

// Injury returns the injury with id.
func (t *Tracker) Injury(id uuid.UUID) (models.Injury, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i := t.indexOfInjury(id)
	if i < 0 {
		return models.Injury{}, false
	}
	return t.injuries[i].Clone(), true
}

// Injuries returns every injury in insertion order.
func (t *Tracker) Injuries() []models.Injury {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return cloneAll(t.injuries)
}

// ActiveInjuries returns injuries whose status is active or recovering, in insertion order.
func (t *Tracker) ActiveInjuries() []models.Injury {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return activeInjuries(t.injuries)
}

// FindInjury resolves a full ID or unique ID prefix.
func (t *Tracker) FindInjury(idOrPrefix string) (models.Injury, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	prefix := strings.ToLower(strings.TrimSpace(idOrPrefix))
	if prefix == "" {
		return models.Injury{}, fmt.Errorf("%w: empty id", ErrInjuryNotFound)
	}

	var matches []models.Injury
	for _, in := range t.injuries {
		if strings.HasPrefix(in.ID.String(), prefix) {
			matches = append(matches, in)
		}
	}

	switch len(matches) {
	case 0:
		return models.Injury{}, fmt.Errorf("%w: %s", ErrInjuryNotFound, idOrPrefix)
	case 1:
		return matches[0].Clone(), nil
	default:
		return models.Injury{}, fmt.Errorf("%w %s: matches %d injuries", ErrAmbiguousID, idOrPrefix, len(matches))
	}
}

// indexOfInjury returns the position of id in t.injuries or -1. Caller must hold t.mu.
func (t *Tracker) indexOfInjury(id uuid.UUID) int {
	return slices.IndexFunc(t.injuries, func(in models.Injury) bool {
		return in.ID == id
	})
}

func activeInjuries(injuries []models.Injury) []models.Injury {
	var out []models.Injury
	for _, in := range injuries {
		if in.Status.IsOpen() {
			out = append(out, in.Clone())
		}
	}
	return out
}
