// Package rights provides the Bill of Rights predicate vocabulary.
//
// The package defines named legal tests for individual rights claims:
// the section 19 franchise test, the section 15 freedom-of-religion
// threshold, and the section 16 freedom-of-expression screen. Each test
// is registered as a composite predicate over boolean and numeric fact
// attributes, so an evaluation produces a full trace of which elements
// of the test were met.
//
// Register all tests into a fresh registry, seal it, then evaluate:
//
//	reg := predicate.New("rights")
//	if err := rights.Register(reg); err != nil {
//	    return err
//	}
//	if err := reg.Seal(); err != nil {
//	    return err
//	}
package rights
