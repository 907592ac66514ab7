package rights_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexkit/lexengine/eval"
	"github.com/lexkit/lexengine/fact"
	"github.com/lexkit/lexengine/ruleset/rights"
)

func newEvaluator(t *testing.T) *eval.Evaluator {
	t.Helper()
	reg, err := rights.NewRegistry()
	require.NoError(t, err)
	e, err := eval.New(reg)
	require.NoError(t, err)
	return e
}

func TestRegistryRegistered(t *testing.T) {
	reg, err := rights.NewRegistry()
	require.NoError(t, err)
	assert.True(t, reg.Sealed())

	names := []string{
		rights.Citizen,
		rights.AgeOfMajority,
		rights.RegisteredVoter,
		rights.Disqualified,
		rights.NotDisqualified,
		rights.RightToVote,
		rights.ReligionEngaged,
		rights.ExpressionProtected,
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			def, err := reg.Resolve(name)
			require.NoError(t, err)
			assert.NotEmpty(t, def.Description)
		})
	}
}

func TestRightToVote(t *testing.T) {
	e := newEvaluator(t)

	tests := []struct {
		name  string
		attrs map[string]any
		want  bool
	}{
		{
			name: "qualified voter",
			attrs: map[string]any{
				rights.AttrCitizen:         true,
				rights.AttrAge:             34,
				rights.AttrRegisteredVoter: true,
				rights.AttrDisqualified:    false,
			},
			want: true,
		},
		{
			name: "under age",
			attrs: map[string]any{
				rights.AttrCitizen:         true,
				rights.AttrAge:             17,
				rights.AttrRegisteredVoter: true,
				rights.AttrDisqualified:    false,
			},
			want: false,
		},
		{
			name: "disqualified by court order",
			attrs: map[string]any{
				rights.AttrCitizen:         true,
				rights.AttrAge:             40,
				rights.AttrRegisteredVoter: true,
				rights.AttrDisqualified:    true,
			},
			want: false,
		},
		{
			name: "not a citizen",
			attrs: map[string]any{
				rights.AttrCitizen:         false,
				rights.AttrAge:             40,
				rights.AttrRegisteredVoter: true,
				rights.AttrDisqualified:    false,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fact.MustNew("applicant", tt.attrs)
			got, trace, err := e.Evaluate(rights.RightToVote, f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.NotNil(t, trace)
			assert.Len(t, trace.Children, 4)
		})
	}
}

func TestRightToVoteShortCircuit(t *testing.T) {
	e := newEvaluator(t)

	// A minor fails on the age element; the remaining elements are
	// skipped, not evaluated.
	f := fact.MustNew("minor", map[string]any{
		rights.AttrCitizen:         true,
		rights.AttrAge:             17,
		rights.AttrRegisteredVoter: true,
		rights.AttrDisqualified:    false,
	})

	got, trace, err := e.Evaluate(rights.RightToVote, f)
	require.NoError(t, err)
	assert.False(t, got)

	skipped := trace.SkippedChildren()
	require.Len(t, skipped, 2)
	assert.Equal(t, rights.RegisteredVoter, skipped[0].Predicate)
	assert.Equal(t, rights.NotDisqualified, skipped[1].Predicate)

	decider := trace.Decider()
	require.NotNil(t, decider)
	assert.Equal(t, rights.AgeOfMajority, decider.Predicate)
}

func TestReligionEngaged(t *testing.T) {
	e := newEvaluator(t)

	sincere := fact.MustNew("claimant-1", map[string]any{
		rights.AttrSincereBelief:     true,
		rights.AttrReligiousPractice: true,
	})
	got, _, err := e.Evaluate(rights.ReligionEngaged, sincere)
	require.NoError(t, err)
	assert.True(t, got)

	insincere := fact.MustNew("claimant-2", map[string]any{
		rights.AttrSincereBelief:     false,
		rights.AttrReligiousPractice: true,
	})
	got, _, err = e.Evaluate(rights.ReligionEngaged, insincere)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestExpressionProtected(t *testing.T) {
	e := newEvaluator(t)

	tests := []struct {
		name       string
		expressive bool
		hate       bool
		want       bool
	}{
		{"protected speech", true, false, true},
		{"hate speech excluded", true, true, false},
		{"non-expressive conduct", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fact.MustNew("speaker", map[string]any{
				rights.AttrExpressiveAct: tt.expressive,
				rights.AttrHateSpeech:    tt.hate,
			})
			got, _, err := e.Evaluate(rights.ExpressionProtected, f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMissingAttributeIsError(t *testing.T) {
	e := newEvaluator(t)

	// No attributes at all: the first element already fails with an
	// error, not a false result.
	f := fact.MustNew("nobody", map[string]any{})
	_, trace, err := e.Evaluate(rights.RightToVote, f)
	assert.Error(t, err)
	assert.Nil(t, trace)
}
