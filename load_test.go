package treeval_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	treeval "github.com/reoring/treeval"
)

const rulesYAML = `
id:
  required: true
  format: uuid
score:
  - condition: isBig
    range: [101, 1000]
  - range: [0, 100]
tags:
  childRules:
    "*":
      noRepeat: true
      maxLength: 8
`

func TestParseRulesYAML(t *testing.T) {
	rules, err := treeval.ParseRulesYAML([]byte(rulesYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := rules.Names(), []string{"id", "score", "tags"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("declaration order = %v, want %v", got, want)
	}

	r, alts, ok := rules.Entry("id")
	if !ok || r == nil || !r.Required || r.Format != "uuid" {
		t.Fatalf("id entry = %+v (alts %v)", r, alts)
	}

	r, alts, ok = rules.Entry("score")
	if !ok || r != nil || len(alts) != 2 {
		t.Fatalf("score should be a 2-entry alternative list, got %+v / %v", r, alts)
	}
	if alts[0].Condition != "isBig" || alts[0].Range == nil {
		t.Fatalf("first alternative = %+v", alts[0])
	}
	if alts[1].Condition != "" {
		t.Fatalf("else alternative should carry no condition: %+v", alts[1])
	}

	r, _, _ = rules.Entry("tags")
	if r == nil || r.ChildRules == nil || !r.ChildRules.HasWildcard() {
		t.Fatalf("tags entry = %+v", r)
	}
}

func TestParseRulesYAML_DuplicateName(t *testing.T) {
	_, err := treeval.ParseRulesYAML([]byte("a: {required: true}\na: {required: false}\n"))
	if _, ok := treeval.AsConfigError(err); !ok {
		t.Fatalf("expected *ConfigError, got %v (%T)", err, err)
	}
}

func TestParseRulesYAML_BadEntry(t *testing.T) {
	_, err := treeval.ParseRulesYAML([]byte("a: 42\n"))
	if _, ok := treeval.AsConfigError(err); !ok {
		t.Fatalf("expected *ConfigError, got %v (%T)", err, err)
	}
}

func TestParseRulesJSON(t *testing.T) {
	src := `{
		"zfirst": {"required": true},
		"second": [
			{"condition": "isBig", "range": [101, 1000]},
			{"range": [0, 100]}
		],
		"third": {"childRules": {"*": {"ascending": true}}}
	}`
	rules, err := treeval.ParseRulesJSON([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := rules.Names(), []string{"zfirst", "second", "third"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("declaration order = %v, want %v", got, want)
	}
	_, alts, _ := rules.Entry("second")
	if len(alts) != 2 || alts[0].Range == nil {
		t.Fatalf("alternatives = %v", alts)
	}
	if got := alts[0].Range.Min; got != float64(101) {
		t.Fatalf("range min = %v (%T)", got, got)
	}
}

func TestParseRulesJSON_Errors(t *testing.T) {
	if _, err := treeval.ParseRulesJSON([]byte(`{"a": 1}`)); err == nil {
		t.Fatalf("scalar entry should fail")
	}
	if _, err := treeval.ParseRulesJSON([]byte(`{"a": {}, "a": {}}`)); err == nil {
		t.Fatalf("duplicate rule name should fail")
	}
	if _, err := treeval.ParseRulesJSON([]byte(`[1, 2]`)); err == nil {
		t.Fatalf("non-object rule map should fail")
	}
}

func TestRangeTupleArity(t *testing.T) {
	if _, err := treeval.ParseRulesYAML([]byte("a: {range: [1, 2, 3]}\n")); err == nil {
		t.Fatalf("3-element range should fail")
	}
}

func TestLoadedRulesRoundTrip(t *testing.T) {
	rules, err := treeval.ParseRulesYAML([]byte(rulesYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := treeval.ReadDataJSON(strings.NewReader(`{
		"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"score": 42,
		"tags": ["go", "schema"]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts := treeval.Options{Conditions: map[string]treeval.ConditionFunc{
		"isBig": func(parent, v any) bool {
			n, _ := v.(float64)
			return n > 100
		},
	}}
	if err := treeval.Validate(context.Background(), data, rules, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
