package template

import (
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// BaseFunctions returns the general-purpose primitives available to
// every template, independent of the per-game bindings.
//
// These are the only non-domain functions templates may call; there is
// deliberately no way to reach the filesystem, environment, or network
// from an expression.
func BaseFunctions() map[string]function.Function {
	return map[string]function.Function{
		"format":   stdlib.FormatFunc,
		"join":     stdlib.JoinFunc,
		"upper":    stdlib.UpperFunc,
		"lower":    stdlib.LowerFunc,
		"trim":     stdlib.TrimSpaceFunc,
		"coalesce": stdlib.CoalesceFunc,
		"max":      stdlib.MaxFunc,
		"min":      stdlib.MinFunc,
		"abs":      stdlib.AbsoluteFunc,
	}
}
