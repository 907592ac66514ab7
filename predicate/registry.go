package predicate

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the predicate definitions for one legal branch. It is
// mutable until Seal succeeds and immutable afterwards; a sealed registry
// needs no locking for reads, but the mutex keeps concurrent build phases
// safe as well.
type Registry struct {
	mu     sync.RWMutex
	name   string
	defs   map[string]*Definition
	sealed bool
}

// New creates an empty registry. The name identifies the legal branch
// ("rights", "paja", ...) and prefixes names during federation.
func New(name string) *Registry {
	return &Registry{
		name: name,
		defs: make(map[string]*Definition),
	}
}

// Name returns the registry name.
func (r *Registry) Name() string {
	return r.name
}

// RegisterPrimitive registers a primitive predicate under name. It fails
// with DuplicateNameError if the name is taken and SealedError after Seal.
func (r *Registry) RegisterPrimitive(name string, fn PrimitiveFunc, opts ...Option) error {
	def := &Definition{Name: name, Kind: KindPrimitive, Primitive: fn}
	for _, opt := range opts {
		opt(def)
	}
	return r.register(def)
}

// RegisterComposite registers a composite predicate under name, defined as
// kind (and/or/not) over the given child predicate names. Children need not
// be registered yet; references are resolved at Seal.
func (r *Registry) RegisterComposite(name string, kind Kind, children []string, opts ...Option) error {
	def := &Definition{Name: name, Kind: kind, Children: append([]string(nil), children...)}
	for _, opt := range opts {
		opt(def)
	}
	return r.register(def)
}

func (r *Registry) register(def *Definition) error {
	if err := def.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return &SealedError{Registry: r.name, Name: def.Name}
	}
	if _, exists := r.defs[def.Name]; exists {
		return &DuplicateNameError{Registry: r.name, Name: def.Name}
	}

	r.defs[def.Name] = def
	return nil
}

// Resolve returns the definition registered under name, or
// UnknownPredicateError.
func (r *Registry) Resolve(name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]
	if !ok {
		return nil, &UnknownPredicateError{Registry: r.name, Name: name}
	}
	return def, nil
}

// Names returns all registered predicate names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered predicates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// Sealed returns true once Seal has succeeded.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Seal validates the full definition graph and transitions the registry to
// its immutable state. Every composite child reference must resolve
// (UnknownPredicateError) and the reference graph must be acyclic
// (CyclicDefinitionError, carrying the cycle path). Sealing an already
// sealed registry is a no-op.
func (r *Registry) Seal() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return nil
	}

	if err := r.validateGraph(); err != nil {
		return err
	}

	r.sealed = true
	return nil
}

// dfs colors for cycle detection.
const (
	colorWhite = iota // unvisited
	colorGray         // on the current path
	colorBlack        // fully explored
)

func (r *Registry) validateGraph() error {
	colors := make(map[string]int, len(r.defs))

	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if colors[name] != colorWhite {
			continue
		}
		if err := r.visit(name, colors, []string{}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) visit(name string, colors map[string]int, path []string) error {
	def, ok := r.defs[name]
	if !ok {
		return &UnknownPredicateError{Registry: r.name, Name: name}
	}

	colors[name] = colorGray
	path = append(path, name)

	for _, child := range def.Children {
		switch colors[child] {
		case colorGray:
			// Found a back edge; report the cycle from the first
			// occurrence of child on the path.
			cycle := extractCycle(path, child)
			return &CyclicDefinitionError{Registry: r.name, Cycle: cycle}
		case colorWhite:
			if err := r.visit(child, colors, path); err != nil {
				return err
			}
		}
	}

	colors[name] = colorBlack
	return nil
}

func extractCycle(path []string, start string) []string {
	for i, name := range path {
		if name == start {
			cycle := append([]string(nil), path[i:]...)
			return append(cycle, start)
		}
	}
	// start is always on the path when a gray node is re-entered
	return []string{start, start}
}

// snapshot returns copies of all definitions. Used by Federate.
func (r *Registry) snapshot() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]*Definition, 0, len(r.defs))
	for _, def := range r.defs {
		defs = append(defs, def.clone())
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// String implements fmt.Stringer for log output.
func (r *Registry) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	state := "open"
	if r.sealed {
		state = "sealed"
	}
	return fmt.Sprintf("registry %q (%d predicates, %s)", r.name, len(r.defs), state)
}
