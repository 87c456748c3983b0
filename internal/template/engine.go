package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Diagnostic reports one expression slot that could not be evaluated.
//
// The slot's raw text (delimiters included) is preserved verbatim in the
// rendered output, so a diagnostic never implies lost or corrupted text.
type Diagnostic struct {
	// Slot is the original slot text including the ${ } delimiters.
	Slot string

	// Detail describes why evaluation failed.
	Detail string
}

// Engine renders templates containing ${ expression } slots.
//
// The template is scanned left to right. Each slot's inner text is parsed
// as a single HCL expression and evaluated against the supplied
// hcl.EvalContext — and only against it: the evaluator has no access to
// process, filesystem, or environment state, and no bindings can be added
// during evaluation. The expression grammar covers property access,
// arithmetic, comparison, ternary conditionals, for-expressions over
// supplied collections, string operations, and calls to the functions in
// the context's allow list.
//
// Evaluation rules:
//   - A slot evaluating to null substitutes the empty string.
//   - Any other value is converted to text (lists join with ", ").
//   - A slot that fails to parse or evaluate keeps its raw original text
//     in the output and yields a Diagnostic.
//   - Slots are independent and evaluated in source order; a slot never
//     observes another slot's substitution.
//
// The literal sequence "$${" escapes to "${" without opening a slot.
//
// Render is a pure function of its two arguments: identical inputs yield
// byte-identical output.
//
// Example:
//
//	engine := template.NewEngine()
//	out, diags := engine.Render("Hello ${upper(name)}", evalCtx)
type Engine struct{}

// NewEngine creates a new template Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Render evaluates every expression slot in tmpl against evalCtx and
// returns the rendered text along with diagnostics for any failed slots.
func (e *Engine) Render(tmpl string, evalCtx *hcl.EvalContext) (string, []Diagnostic) {
	var out strings.Builder
	var diags []Diagnostic

	for i := 0; i < len(tmpl); {
		if strings.HasPrefix(tmpl[i:], "$${") {
			out.WriteString("${")
			i += 3
			continue
		}

		if strings.HasPrefix(tmpl[i:], "${") {
			end, ok := findSlotEnd(tmpl, i+2)
			if !ok {
				// Unterminated slot: keep the rest verbatim.
				diags = append(diags, Diagnostic{Slot: tmpl[i:], Detail: "unterminated expression slot"})
				out.WriteString(tmpl[i:])
				break
			}

			raw := tmpl[i : end+1]
			text, err := evalSlot(tmpl[i+2:end], evalCtx)
			if err != nil {
				diags = append(diags, Diagnostic{Slot: raw, Detail: err.Error()})
				out.WriteString(raw)
			} else {
				out.WriteString(text)
			}
			i = end + 1
			continue
		}

		next := strings.IndexByte(tmpl[i:], '$')
		if next < 0 {
			out.WriteString(tmpl[i:])
			break
		}
		out.WriteString(tmpl[i : i+next])
		i += next
		if !strings.HasPrefix(tmpl[i:], "${") && !strings.HasPrefix(tmpl[i:], "$${") {
			out.WriteByte('$')
			i++
		}
	}

	return out.String(), diags
}

// findSlotEnd scans from start (just past "${") for the matching close
// brace, tracking nested braces and skipping brace characters inside
// quoted strings. Returns the index of the closing brace.
func findSlotEnd(s string, start int) (int, bool) {
	depth := 1
	inString := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++ // skip the escaped character
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}

// evalSlot parses and evaluates a single slot expression.
func evalSlot(src string, evalCtx *hcl.EvalContext) (string, error) {
	expr, parseDiags := hclsyntax.ParseExpression([]byte(src), "template", hcl.InitialPos)
	if parseDiags.HasErrors() {
		return "", errors.New(parseDiags.Error())
	}

	val, evalDiags := expr.Value(evalCtx)
	if evalDiags.HasErrors() {
		return "", errors.New(evalDiags.Error())
	}

	return formatValue(val)
}

// formatValue converts an evaluated value to its textual representation.
// Null becomes the empty string, never the word "null".
func formatValue(val cty.Value) (string, error) {
	if val.IsNull() {
		return "", nil
	}
	if !val.IsKnown() {
		return "", errors.New("expression produced an unknown value")
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil

	case ty.IsPrimitiveType():
		converted, err := convert.Convert(val, cty.String)
		if err != nil {
			return "", err
		}
		return converted.AsString(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		var parts []string
		for _, elem := range val.AsValueSlice() {
			text, err := formatValue(elem)
			if err != nil {
				return "", err
			}
			parts = append(parts, text)
		}
		return strings.Join(parts, ", "), nil

	default:
		return "", fmt.Errorf("cannot render value of type %s", ty.FriendlyName())
	}
}
