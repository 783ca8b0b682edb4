package registry

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/getmockd/mockreg/pkg/logging"
)

// Entity is a registered mock that can decide whether it services a request.
//
// Matches must be a pure predicate. When it returns false the string explains
// why. Equal defines the value equality used by Remove and Replace.
type Entity[R, E any] interface {
	Matches(req R) (bool, string)
	Equal(other E) bool
}

// Identifier is implemented by entities that can name themselves in error
// messages, conventionally with their target URL.
type Identifier interface {
	Identifier() string
}

// Registry is the contract shared by matching strategies.
type Registry[R any, E Entity[R, E]] interface {
	// Registered returns the held entities in registration order. The
	// returned slice is a copy.
	Registered() []E

	// Reset removes every entity.
	Reset()

	// Find selects the entity that services req. found is false when no
	// entity matched. reasons lists the failure reason of each non-matching
	// entity that was evaluated, in scan order.
	Find(req R) (match E, found bool, reasons []string)

	// Add appends e. Duplicates are kept.
	Add(e E)

	// Remove deletes every entity equal to e. Absent entities are ignored.
	Remove(e E)

	// Replace overwrites the first entity equal to e, keeping its position.
	// It returns a *NotRegisteredError when no entity equals e.
	Replace(e E) error
}

// Option configures a DefaultRegistry.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to trace consumption and mutations.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// DefaultRegistry implements first-match selection with consumption of the
// earliest match when a request is ambiguous.
type DefaultRegistry[R any, E Entity[R, E]] struct {
	entities []E
	log      *slog.Logger
}

// New creates an empty DefaultRegistry.
func New[R any, E Entity[R, E]](opts ...Option) *DefaultRegistry[R, E] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &DefaultRegistry[R, E]{
		log: logging.OrNop(o.logger),
	}
}

// Registered returns a copy of the held entities in registration order.
func (r *DefaultRegistry[R, E]) Registered() []E {
	return slices.Clone(r.entities)
}

// Len returns the number of held entities.
func (r *DefaultRegistry[R, E]) Len() int {
	return len(r.entities)
}

// Reset removes every entity.
func (r *DefaultRegistry[R, E]) Reset() {
	r.entities = nil
}

// Find scans the entities in order. A single match is returned and kept.
// On a second match the first one is removed and returned immediately; later
// entities are not evaluated.
func (r *DefaultRegistry[R, E]) Find(req R) (E, bool, []string) {
	var (
		zero     E
		first    E
		firstIdx = -1
		reasons  []string
	)

	for i, e := range r.entities {
		ok, reason := e.Matches(req)
		if !ok {
			reasons = append(reasons, reason)
			continue
		}
		if firstIdx < 0 {
			firstIdx = i
			first = e
			continue
		}

		r.entities = slices.Delete(r.entities, firstIdx, firstIdx+1)
		r.log.Debug("consumed ambiguous match",
			"index", firstIdx,
			"entity", describe(first),
			"remaining", len(r.entities))
		return first, true, reasons
	}

	if firstIdx < 0 {
		r.log.Debug("no registered entity matched",
			"registered", len(r.entities),
			"reasons", len(reasons))
		return zero, false, reasons
	}
	return first, true, reasons
}

// Add appends e.
func (r *DefaultRegistry[R, E]) Add(e E) {
	r.entities = append(r.entities, e)
}

// Remove deletes every entity equal to e.
func (r *DefaultRegistry[R, E]) Remove(e E) {
	before := len(r.entities)
	r.entities = slices.DeleteFunc(r.entities, func(held E) bool {
		return held.Equal(e)
	})
	if removed := before - len(r.entities); removed > 0 {
		r.log.Debug("removed entities", "entity", describe(e), "count", removed)
	}
}

// Replace overwrites the first entity equal to e in place.
func (r *DefaultRegistry[R, E]) Replace(e E) error {
	idx := slices.IndexFunc(r.entities, func(held E) bool {
		return held.Equal(e)
	})
	if idx < 0 {
		return &NotRegisteredError{Identifier: describe(e)}
	}
	r.entities[idx] = e
	r.log.Debug("replaced entity", "index", idx, "entity", describe(e))
	return nil
}

// describe returns the display identifier of e.
func describe(e any) string {
	switch v := e.(type) {
	case Identifier:
		return v.Identifier()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
