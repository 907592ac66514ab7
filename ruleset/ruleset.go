// Package ruleset assembles the branch vocabularies into a single
// federated registry for cross-branch legal analysis.
//
// Each branch (rights, limitation, paja, popia) keeps its own
// namespace: a federated predicate is addressed as
// "<branch>.<name>", e.g. "rights.right-to-vote?".
package ruleset

import (
	"github.com/lexkit/lexengine/predicate"
	"github.com/lexkit/lexengine/rule"
	"github.com/lexkit/lexengine/ruleset/limitation"
	"github.com/lexkit/lexengine/ruleset/paja"
	"github.com/lexkit/lexengine/ruleset/popia"
	"github.com/lexkit/lexengine/ruleset/rights"
)

// Cross-branch composites only a federated registry can express.
const (
	// InfringementJustified holds when a rights infringement survives
	// the limitation analysis.
	InfringementJustified = "infringement-justified?"
)

// Federated builds a sealed registry holding every branch vocabulary
// plus the cross-branch composites.
func Federated() (*predicate.Registry, error) {
	branches := []struct {
		name     string
		register func(*predicate.Registry) error
	}{
		{"rights", rights.Register},
		{"limitation", limitation.Register},
		{"paja", paja.Register},
		{"popia", popia.Register},
	}

	regs := make([]*predicate.Registry, 0, len(branches))
	for _, b := range branches {
		reg := predicate.New(b.name)
		if err := b.register(reg); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	merged, err := predicate.Federate("constitution", regs...)
	if err != nil {
		return nil, err
	}

	// A limitation of protected expression is constitutional only when
	// the expression was protected in the first place and the
	// limitation is justified under section 36.
	err = rule.Define(merged, InfringementJustified,
		rule.All("rights."+rights.ExpressionProtected, "limitation."+limitation.Justified),
		predicate.WithDescription("Rights infringement survives the limitation analysis"))
	if err != nil {
		return nil, err
	}

	if err := merged.Seal(); err != nil {
		return nil, err
	}
	return merged, nil
}
