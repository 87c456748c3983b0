package template

import (
	"strings"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

func testContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"name":    cty.StringVal("Portal 2"),
			"hours":   cty.NumberFloatVal(21.5),
			"nothing": cty.NullVal(cty.String),
			"raw":     cty.StringVal("${name}"),
			"tags":    cty.ListVal([]cty.Value{cty.StringVal("fps"), cty.StringVal("puzzle")}),
			"empty":   cty.ListValEmpty(cty.String),
			"played":  cty.True,
		},
		Functions: BaseFunctions(),
	}
}

func TestEngine_Render(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"plain text", "no slots here", "no slots here"},
		{"string slot", "# ${name}", "# Portal 2"},
		{"number slot", "${hours} hours", "21.5 hours"},
		{"arithmetic", "${hours * 2}", "43"},
		{"comparison", "${hours > 20}", "true"},
		{"ternary", "${played ? \"yes\" : \"no\"}", "yes"},
		{"null renders empty", "[${nothing}]", "[]"},
		{"list joins", "${tags}", "fps, puzzle"},
		{"empty list", "[${empty}]", "[]"},
		{"function call", "${upper(name)}", "PORTAL 2"},
		{"join function", "${join(\" / \", tags)}", "fps / puzzle"},
		{"format function", "${format(\"%.1f\", hours)}", "21.5"},
		{"adjacent slots", "${name}${name}", "Portal 2Portal 2"},
		{"escape", "$${name}", "${name}"},
		{"dollar without brace", "costs $5", "costs $5"},
		{"string with brace", "${\"a{b}c\"}", "a{b}c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := engine.Render(tt.template, testContext())
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestEngine_FailedSlotKeepsRawText(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name     string
		template string
	}{
		{"unknown variable", "before ${missing} after"},
		{"unknown attribute", "before ${name.nope} after"},
		{"unknown function", "before ${frobnicate(name)} after"},
		{"syntax error", "before ${1 +} after"},
		{"empty slot", "before ${} after"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := engine.Render(tt.template, testContext())
			if got != tt.template {
				t.Errorf("Render(%q) = %q, want raw template preserved", tt.template, got)
			}
			if len(diags) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d", len(diags))
			}
			if !strings.HasPrefix(diags[0].Slot, "${") {
				t.Errorf("diagnostic slot %q should include delimiters", diags[0].Slot)
			}
		})
	}
}

func TestEngine_FailedSlotDoesNotAffectOthers(t *testing.T) {
	engine := NewEngine()

	got, diags := engine.Render("${name} ${missing} ${upper(name)}", testContext())

	want := "Portal 2 ${missing} PORTAL 2"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if len(diags) != 1 {
		t.Errorf("expected 1 diagnostic, got %d", len(diags))
	}
}

func TestEngine_NoSecondPass(t *testing.T) {
	engine := NewEngine()

	// A substituted value that looks like a slot must not be expanded.
	got, diags := engine.Render("value: ${raw}", testContext())
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got != "value: ${name}" {
		t.Errorf("Render() = %q, want %q", got, "value: ${name}")
	}
}

func TestEngine_UnterminatedSlot(t *testing.T) {
	engine := NewEngine()

	got, diags := engine.Render("before ${name after", testContext())
	if got != "before ${name after" {
		t.Errorf("Render() = %q, want input preserved", got)
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
}

func TestEngine_Deterministic(t *testing.T) {
	engine := NewEngine()
	template := "# ${name}\n${join(\", \", tags)}\n${hours * 2} ${missing}"

	first, _ := engine.Render(template, testContext())
	for i := 0; i < 5; i++ {
		again, _ := engine.Render(template, testContext())
		if again != first {
			t.Fatalf("render %d produced %q, first produced %q", i, again, first)
		}
	}
}
