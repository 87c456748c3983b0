package note

import (
	"fmt"
	"strings"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// HelperFunctions returns the fixed set of pure domain helpers exposed to
// note templates, alongside template.BaseFunctions. All of them accept
// null where the underlying game field is tri-state.
func HelperFunctions() map[string]function.Function {
	return map[string]function.Function{
		"format_playtime": formatPlaytimeFunc,
		"format_date":     formatDateFunc,
		"link":            linkFunc,
		"yaml_string":     yamlStringFunc,
	}
}

// format_playtime(hours) renders a playtime in hours, mapping an absent
// value to "Never played".
var formatPlaytimeFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "hours", Type: cty.Number, AllowNull: true},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		if args[0].IsNull() {
			return cty.StringVal("Never played"), nil
		}
		hours, _ := args[0].AsBigFloat().Float64()
		return cty.StringVal(fmt.Sprintf("%.1f hours", hours)), nil
	},
})

// format_date(unix) renders a Unix timestamp as an ISO date, mapping an
// absent value to "Never".
var formatDateFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "unix", Type: cty.Number, AllowNull: true},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		if args[0].IsNull() {
			return cty.StringVal("Never"), nil
		}
		unix, _ := args[0].AsBigFloat().Int64()
		return cty.StringVal(time.Unix(unix, 0).UTC().Format("2006-01-02")), nil
	},
})

// yaml_string(text) renders text as a double-quoted YAML scalar.
// Titles containing quotes or backslashes would otherwise break the
// frontmatter block, and a note with unparseable frontmatter can never
// be recognized as enriched.
var yamlStringFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "text", Type: cty.String, AllowNull: true},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		text := ""
		if !args[0].IsNull() {
			text = args[0].AsString()
		}
		escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(text)
		return cty.StringVal(`"` + escaped + `"`), nil
	},
})

// link(text, url) renders a markdown link, degrading to the bare text
// when the URL is absent or empty.
var linkFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "text", Type: cty.String, AllowNull: true},
		{Name: "url", Type: cty.String, AllowNull: true},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		text := ""
		if !args[0].IsNull() {
			text = args[0].AsString()
		}
		if args[1].IsNull() || args[1].AsString() == "" {
			return cty.StringVal(text), nil
		}
		return cty.StringVal(fmt.Sprintf("[%s](%s)", text, args[1].AsString())), nil
	},
})
