package predicate

import (
	"fmt"
)

// Federate merges branch registries into a single registry for cross-branch
// rules. Every predicate is re-registered under "<branch>.<name>", with
// composite child references rewritten the same way, so shared names like
// "freedom-of-religion?" in different branches never shadow each other.
//
// The returned registry is unsealed so the caller can add cross-branch
// composites before sealing. Source registries are not modified.
func Federate(name string, branches ...*Registry) (*Registry, error) {
	if len(branches) == 0 {
		return nil, fmt.Errorf("federation %q: at least one branch registry is required", name)
	}

	merged := New(name)
	seen := make(map[string]string, len(branches))

	for _, branch := range branches {
		if branch.Name() == "" {
			return nil, fmt.Errorf("federation %q: branch registry without a name cannot be federated", name)
		}
		if prev, dup := seen[branch.Name()]; dup {
			return nil, fmt.Errorf("federation %q: branch name %q used twice (%s)", name, branch.Name(), prev)
		}
		seen[branch.Name()] = branch.String()

		prefix := branch.Name() + "."
		for _, def := range branch.snapshot() {
			qualified := def.clone()
			qualified.Name = prefix + def.Name
			for i, child := range qualified.Children {
				qualified.Children[i] = prefix + child
			}
			if err := merged.register(qualified); err != nil {
				return nil, fmt.Errorf("federation %q: %w", name, err)
			}
		}
	}

	return merged, nil
}
