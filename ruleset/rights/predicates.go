package rights

import (
	"github.com/lexkit/lexengine/predicate"
	"github.com/lexkit/lexengine/rule"
)

// Franchise test predicates (section 19).
const (
	// Citizen holds when the subject is a citizen.
	Citizen = "citizen?"

	// AgeOfMajority holds when the subject is 18 or older.
	AgeOfMajority = "age-18-or-over?"

	// RegisteredVoter holds when the subject appears on the voters roll.
	RegisteredVoter = "registered-voter?"

	// Disqualified holds when a court has disqualified the subject.
	Disqualified = "disqualified?"

	// NotDisqualified is the negation of Disqualified.
	NotDisqualified = "not-disqualified?"

	// RightToVote is the full franchise test: citizen, of age,
	// registered, and not disqualified.
	RightToVote = "right-to-vote?"
)

// Freedom of religion predicates (section 15).
const (
	// SincereBelief holds when the claimed belief is sincerely held.
	SincereBelief = "sincere-belief?"

	// ReligiousPractice holds when the conduct is a practice of the belief.
	ReligiousPractice = "religious-practice?"

	// ReligionEngaged holds when the right to freedom of religion is
	// engaged: a sincere belief and a practice of it.
	ReligionEngaged = "freedom-of-religion-engaged?"
)

// Freedom of expression predicates (section 16).
const (
	// ExpressiveAct holds when the conduct conveys meaning.
	ExpressiveAct = "expressive-act?"

	// HateSpeech holds when the expression falls under the section 16(2)
	// exclusions (propaganda for war, incitement, advocacy of hatred).
	HateSpeech = "hate-speech?"

	// NotHateSpeech is the negation of HateSpeech.
	NotHateSpeech = "not-hate-speech?"

	// ExpressionProtected holds for expressive acts outside the
	// exclusions.
	ExpressionProtected = "expression-protected?"
)

// Fact attribute keys the primitives read.
const (
	AttrCitizen           = "citizen"
	AttrAge               = "age"
	AttrRegisteredVoter   = "registered_voter"
	AttrDisqualified      = "disqualified"
	AttrSincereBelief     = "sincere_belief"
	AttrReligiousPractice = "religious_practice"
	AttrExpressiveAct     = "expressive_act"
	AttrHateSpeech        = "hate_speech"
)

// Register adds the rights vocabulary to reg. The registry must not be
// sealed.
func Register(reg *predicate.Registry) error {
	primitives := []struct {
		name string
		fn   predicate.PrimitiveFunc
		desc string
	}{
		{Citizen, rule.BoolAttr(AttrCitizen), "Subject is a citizen"},
		{AgeOfMajority, rule.Threshold(AttrAge, rule.OpGTE, 18), "Subject is 18 years or older"},
		{RegisteredVoter, rule.BoolAttr(AttrRegisteredVoter), "Subject is on the voters roll"},
		{Disqualified, rule.BoolAttr(AttrDisqualified), "Subject is disqualified by court order"},
		{SincereBelief, rule.BoolAttr(AttrSincereBelief), "Belief is sincerely held"},
		{ReligiousPractice, rule.BoolAttr(AttrReligiousPractice), "Conduct is a practice of the belief"},
		{ExpressiveAct, rule.BoolAttr(AttrExpressiveAct), "Conduct conveys meaning"},
		{HateSpeech, rule.BoolAttr(AttrHateSpeech), "Expression falls under the s16(2) exclusions"},
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
		{NotDisqualified, rule.Not(Disqualified), "Subject is not disqualified"},
		{RightToVote, rule.All(Citizen, AgeOfMajority, RegisteredVoter, NotDisqualified), "Section 19 franchise test"},
		{ReligionEngaged, rule.All(SincereBelief, ReligiousPractice), "Section 15 freedom of religion threshold"},
		{NotHateSpeech, rule.Not(HateSpeech), "Expression is outside the s16(2) exclusions"},
		{ExpressionProtected, rule.All(ExpressiveAct, NotHateSpeech), "Section 16 protected expression"},
	}

	for _, c := range composites {
		if err := rule.Define(reg, c.name, c.expr, predicate.WithDescription(c.desc)); err != nil {
			return err
		}
	}

	return nil
}

// NewRegistry builds and seals a registry holding only the rights
// vocabulary. Convenient for callers that do not need federation.
func NewRegistry() (*predicate.Registry, error) {
	reg := predicate.New("rights")
	if err := Register(reg); err != nil {
		return nil, err
	}
	if err := reg.Seal(); err != nil {
		return nil, err
	}
	return reg, nil
}
