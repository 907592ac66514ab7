package paja

import (
	"github.com/lexkit/lexengine/predicate"
	"github.com/lexkit/lexengine/rule"
)

// Threshold predicates: is the conduct administrative action?
const (
	// PublicPower holds when the conduct exercises a public power or
	// performs a public function.
	PublicPower = "public-power?"

	// AdverseEffect holds when the conduct adversely affects rights.
	AdverseEffect = "adversely-affects-rights?"

	// ExternalEffect holds when the conduct has a direct, external
	// legal effect.
	ExternalEffect = "direct-external-effect?"

	// AdministrativeAction is the threshold test: public power,
	// adverse effect, and external effect together.
	AdministrativeAction = "administrative-action?"
)

// Review predicates: is the administrative action lawful?
const (
	// Authorized holds when the action was authorized by an empowering
	// provision.
	Authorized = "authorized-by-law?"

	// Notice holds when affected persons received adequate notice.
	Notice = "adequate-notice?"

	// Hearing holds when affected persons had an opportunity to be
	// heard.
	Hearing = "opportunity-to-be-heard?"

	// ProcedurallyFair combines notice and hearing.
	ProcedurallyFair = "procedurally-fair?"

	// Irrational holds when no rational decision-maker could have
	// reached the decision.
	Irrational = "irrational?"

	// Reasonable is the negation of Irrational.
	Reasonable = "reasonable?"

	// WithinReviewWindow holds when review was sought within 180 days
	// of the decision.
	WithinReviewWindow = "within-180-days?"

	// ActionLawful is the full review test over an administrative
	// action.
	ActionLawful = "action-lawful?"
)

// Fact attribute keys the primitives read.
const (
	AttrPublicPower       = "public_power"
	AttrAdverseEffect     = "adversely_affects_rights"
	AttrExternalEffect    = "direct_external_effect"
	AttrAuthorized        = "authorized_by_law"
	AttrNotice            = "adequate_notice"
	AttrHearing           = "opportunity_to_be_heard"
	AttrIrrational        = "irrational"
	AttrDaysSinceDecision = "days_since_decision"
)

// ReviewWindowDays is the outer limit, in days, for seeking judicial
// review under section 7(1).
const ReviewWindowDays = 180

// Register adds the administrative-justice vocabulary to reg. The
// registry must not be sealed.
func Register(reg *predicate.Registry) error {
	primitives := []struct {
		name string
		fn   predicate.PrimitiveFunc
		desc string
	}{
		{PublicPower, rule.BoolAttr(AttrPublicPower), "Conduct exercises a public power or function"},
		{AdverseEffect, rule.BoolAttr(AttrAdverseEffect), "Conduct adversely affects rights"},
		{ExternalEffect, rule.BoolAttr(AttrExternalEffect), "Conduct has a direct external legal effect"},
		{Authorized, rule.BoolAttr(AttrAuthorized), "Action is authorized by an empowering provision"},
		{Notice, rule.BoolAttr(AttrNotice), "Affected persons received adequate notice"},
		{Hearing, rule.BoolAttr(AttrHearing), "Affected persons could make representations"},
		{Irrational, rule.BoolAttr(AttrIrrational), "No rational decision-maker could reach the decision"},
		{WithinReviewWindow, rule.Threshold(AttrDaysSinceDecision, rule.OpLTE, ReviewWindowDays), "Review sought within the 180-day window"},
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
		{AdministrativeAction, rule.All(PublicPower, AdverseEffect, ExternalEffect), "Threshold test for administrative action"},
		{ProcedurallyFair, rule.All(Notice, Hearing), "Procedural fairness under section 3"},
		{Reasonable, rule.Not(Irrational), "Decision is not irrational"},
		{ActionLawful, rule.All(AdministrativeAction, Authorized, ProcedurallyFair, Reasonable, WithinReviewWindow), "Full lawfulness review of an administrative action"},
	}

	for _, c := range composites {
		if err := rule.Define(reg, c.name, c.expr, predicate.WithDescription(c.desc)); err != nil {
			return err
		}
	}

	return nil
}

// NewRegistry builds and seals a registry holding only the
// administrative-justice vocabulary.
func NewRegistry() (*predicate.Registry, error) {
	reg := predicate.New("paja")
	if err := Register(reg); err != nil {
		return nil, err
	}
	if err := reg.Seal(); err != nil {
		return nil, err
	}
	return reg, nil
}
