// Package template implements the note template engine.
//
// A template is plain text interleaved with ${ expression } slots. Slot
// expressions use HCL expression syntax evaluated with go-cty against an
// explicit hcl.EvalContext, which is the entire sandbox boundary: only
// the variables and functions placed in the context are reachable.
//
// # Basic Usage
//
//	engine := template.NewEngine()
//	evalCtx := &hcl.EvalContext{
//	    Variables: map[string]cty.Value{"name": cty.StringVal("Portal 2")},
//	    Functions: template.BaseFunctions(),
//	}
//	out, diags := engine.Render("# ${name}\n", evalCtx)
//
// # Failure Isolation
//
// A slot that fails to parse or evaluate is preserved verbatim in the
// output (delimiters included) and reported as a Diagnostic; surrounding
// text and other slots are unaffected. One bad expression never aborts a
// render.
package template
