package limitation

import (
	"github.com/lexkit/lexengine/predicate"
	"github.com/lexkit/lexengine/rule"
)

// Limitation analysis predicates (section 36).
const (
	// GeneralLaw holds when the limiting measure is a law of general
	// application.
	GeneralLaw = "law-of-general-application?"

	// ImportantPurpose holds when the limitation pursues a purpose
	// important enough to justify limiting a right.
	ImportantPurpose = "important-purpose?"

	// Suitability holds when the measure is rationally connected to
	// its purpose.
	Suitability = "suitability?"

	// LessRestrictiveMeans holds when a less restrictive measure could
	// achieve the same purpose.
	LessRestrictiveMeans = "less-restrictive-means-available?"

	// Necessity is the negation of LessRestrictiveMeans.
	Necessity = "necessity?"

	// StrictProportionality holds when the benefit of the measure
	// outweighs the severity of the limitation.
	StrictProportionality = "proportionality-stricto-sensu?"

	// Proportionality is the three-stage proportionality review:
	// suitability, necessity, and proportionality in the narrow sense.
	Proportionality = "proportionality?"

	// Justified is the full section 36 test.
	Justified = "limitation-justified?"
)

// Fact attribute keys the primitives read.
const (
	AttrGeneralLaw           = "law_of_general_application"
	AttrImportantPurpose     = "important_purpose"
	AttrRationallyConnected  = "rationally_connected"
	AttrLessRestrictiveMeans = "less_restrictive_means_available"
	AttrBenefitOutweighsHarm = "benefit_outweighs_harm"
)

// Register adds the limitation vocabulary to reg. The registry must not
// be sealed.
func Register(reg *predicate.Registry) error {
	primitives := []struct {
		name string
		fn   predicate.PrimitiveFunc
		desc string
	}{
		{GeneralLaw, rule.BoolAttr(AttrGeneralLaw), "Measure is a law of general application"},
		{ImportantPurpose, rule.BoolAttr(AttrImportantPurpose), "Limitation pursues an important purpose"},
		{Suitability, rule.BoolAttr(AttrRationallyConnected), "Measure is rationally connected to its purpose"},
		{LessRestrictiveMeans, rule.BoolAttr(AttrLessRestrictiveMeans), "A less restrictive measure is available"},
		{StrictProportionality, rule.BoolAttr(AttrBenefitOutweighsHarm), "Benefit outweighs the severity of the limitation"},
	}

	for _, p := range primitives {
		if err := reg.RegisterPrimitive(p.name, p.fn, predicate.WithDescription(p.desc)); err != nil {
			return err
		}
	}

	composites := []struct {
		name string
		expr rule.Expr
		desc string
	}{
		{Necessity, rule.Not(LessRestrictiveMeans), "No less restrictive measure is available"},
		{Proportionality, rule.All(Suitability, Necessity, StrictProportionality), "Three-stage proportionality review"},
		{Justified, rule.All(GeneralLaw, ImportantPurpose, Proportionality), "Section 36 limitation test"},
	}

	for _, c := range composites {
		if err := rule.Define(reg, c.name, c.expr, predicate.WithDescription(c.desc)); err != nil {
			return err
		}
	}

	return nil
}

// NewRegistry builds and seals a registry holding only the limitation
// vocabulary.
func NewRegistry() (*predicate.Registry, error) {
	reg := predicate.New("limitation")
	if err := Register(reg); err != nil {
		return nil, err
	}
	if err := reg.Seal(); err != nil {
		return nil, err
	}
	return reg, nil
}
