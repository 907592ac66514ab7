package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexkit/lexengine/eval"
	"github.com/lexkit/lexengine/fact"
	"github.com/lexkit/lexengine/predicate"
	"github.com/lexkit/lexengine/rule"
)

const franchiseYAML = `predicates:
  - name: not-disqualified?
    kind: not
    children: ["disqualified?"]
  - name: right-to-vote?
    kind: and
    description: Section 19 franchise test
    children:
      - citizen?
      - age-18-or-over?
      - registered-voter?
      - not-disqualified?
`

const franchiseJSON = `{
  "predicates": [
    {"name": "not-disqualified?", "kind": "not", "children": ["disqualified?"]},
    {"name": "right-to-vote?", "kind": "and", "children": ["citizen?", "age-18-or-over?", "registered-voter?", "not-disqualified?"]}
  ]
}`

// registerFranchisePrimitives registers the leaf predicates rule files
// compose over.
func registerFranchisePrimitives(t *testing.T, r *predicate.Registry) {
	t.Helper()
	require.NoError(t, r.RegisterPrimitive("citizen?", rule.BoolAttr("citizen")))
	require.NoError(t, r.RegisterPrimitive("age-18-or-over?", rule.Threshold("age", rule.OpGTE, 18)))
	require.NoError(t, r.RegisterPrimitive("registered-voter?", rule.BoolAttr("registered_voter")))
	require.NoError(t, r.RegisterPrimitive("disqualified?", rule.BoolAttr("disqualified")))
}

func TestParse(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		doc, err := Parse([]byte(franchiseYAML), "yaml")
		require.NoError(t, err)
		require.Len(t, doc.Predicates, 2)
		assert.Equal(t, "not-disqualified?", doc.Predicates[0].Name)
		assert.Equal(t, "Section 19 franchise test", doc.Predicates[1].Description)
	})

	t.Run("json", func(t *testing.T) {
		doc, err := Parse([]byte(franchiseJSON), "json")
		require.NoError(t, err)
		require.Len(t, doc.Predicates, 2)
		assert.Equal(t, []string{"disqualified?"}, doc.Predicates[0].Children)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Parse([]byte(franchiseYAML), "toml")
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("predicates: ["), "yaml")
		assert.Error(t, err)
	})
}

func TestApply(t *testing.T) {
	t.Run("registers composites and evaluates end to end", func(t *testing.T) {
		r := predicate.New("rights")
		registerFranchisePrimitives(t, r)

		doc, err := Parse([]byte(franchiseYAML), "yaml")
		require.NoError(t, err)
		require.NoError(t, doc.Apply(r))
		require.NoError(t, r.Seal())

		e, err := eval.New(r)
		require.NoError(t, err)

		f := fact.MustNew("applicant-1", map[string]any{
			"age":              20,
			"citizen":          true,
			"registered_voter": true,
			"disqualified":     false,
		})
		result, _, err := e.Evaluate("right-to-vote?", f)
		require.NoError(t, err)
		assert.True(t, result)
	})

	t.Run("rejects primitive kind", func(t *testing.T) {
		doc := &Document{Predicates: []Entry{
			{Name: "citizen?", Kind: "primitive"},
		}}
		err := doc.Apply(predicate.New("rights"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "through the API")
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		doc := &Document{Predicates: []Entry{
			{Name: "x?", Kind: "xor", Children: []string{"a?", "b?"}},
		}}
		err := doc.Apply(predicate.New("rights"))
		assert.Error(t, err)
	})

	t.Run("duplicate surfaces as DuplicateNameError", func(t *testing.T) {
		r := predicate.New("rights")
		registerFranchisePrimitives(t, r)
		doc := &Document{Predicates: []Entry{
			{Name: "citizen?", Kind: "and", Children: []string{"age-18-or-over?"}},
		}}
		err := doc.Apply(r)
		assert.True(t, predicate.IsDuplicateName(err))
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("dispatches on extension", func(t *testing.T) {
		yamlPath := filepath.Join(dir, "franchise.yaml")
		require.NoError(t, os.WriteFile(yamlPath, []byte(franchiseYAML), 0644))
		jsonPath := filepath.Join(dir, "franchise.json")
		require.NoError(t, os.WriteFile(jsonPath, []byte(franchiseJSON), 0644))

		yamlDoc, err := LoadFile(yamlPath)
		require.NoError(t, err)
		jsonDoc, err := LoadFile(jsonPath)
		require.NoError(t, err)
		assert.Equal(t, len(yamlDoc.Predicates), len(jsonDoc.Predicates))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "rules.toml")
		require.NoError(t, os.WriteFile(path, []byte(""), 0644))
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestLoadDir(t *testing.T) {
	setup := func(t *testing.T) string {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "rights"), 0755))
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "rights", "franchise.yaml"),
			[]byte(franchiseYAML), 0644))
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "notes.txt"),
			[]byte("not a rule file"), 0644))
		return dir
	}

	t.Run("loads matching files recursively", func(t *testing.T) {
		dir := setup(t)
		r := predicate.New("rights")
		registerFranchisePrimitives(t, r)

		files, err := LoadDir(dir, nil, r)
		require.NoError(t, err)
		assert.Equal(t, []string{"rights/franchise.yaml"}, files)
		require.NoError(t, r.Seal())
		assert.Equal(t, 6, r.Len())
	})

	t.Run("explicit pattern filters files", func(t *testing.T) {
		dir := setup(t)
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "extra.json"),
			[]byte(`{"predicates": []}`), 0644))

		r := predicate.New("rights")
		registerFranchisePrimitives(t, r)
		files, err := LoadDir(dir, []string{"**/*.json"}, r)
		require.NoError(t, err)
		assert.Equal(t, []string{"extra.json"}, files)
	})

	t.Run("broken file aborts with file context", func(t *testing.T) {
		dir := setup(t)
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "broken.yaml"),
			[]byte("predicates:\n  - name: x?\n    kind: xor\n"), 0644))

		r := predicate.New("rights")
		registerFranchisePrimitives(t, r)
		_, err := LoadDir(dir, nil, r)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.yaml")
	})
}
