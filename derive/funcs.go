package derive

import (
	"os"

	"github.com/expr-lang/expr"
	"github.com/signadot/ward"
)

// reserved names of the evaluation environment. Other names resolve to the
// fields of the document when it is an object.
const (
	docName      = "doc"
	getpathName  = "getpath"
	listpathName = "listpath"
	whereamiName = "whereami"
)

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(newEnv(nil)),
		expr.AllowUndefinedVariables(),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

// newEnv returns the evaluation environment of h. A nil h gives an
// environment with the right types, for compiling.
func newEnv(h *ward.Handle) map[string]any {
	env := map[string]any{}
	var doc any
	if h != nil {
		doc = h.Get()
		if m, ok := doc.(map[string]any); ok {
			for k, v := range m {
				env[k] = v
			}
		}
	}
	env[docName] = doc
	env[getpathName] = func(path string) any {
		res, err := h.Lookup(path)
		if err != nil {
			panic(err)
		}
		return res.Get()
	}
	env[listpathName] = func(path string) []any {
		hs, err := h.List(path)
		if err != nil {
			panic(err)
		}
		res := make([]any, len(hs))
		for i, c := range hs {
			res[i] = c.Get()
		}
		return res
	}
	env[whereamiName] = func() string {
		return h.KPath()
	}
	return env
}
