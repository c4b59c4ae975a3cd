package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

type debug struct {
	Walk      bool
	Notify    bool
	Subscribe bool
	Eval      bool
}

var (
	d   *debug
	out io.Writer = os.Stderr
)

func init() {
	d = &debug{}
	d.Walk = boolEnv("WARD_DEBUG_WALK")
	d.Notify = boolEnv("WARD_DEBUG_NOTIFY")
	d.Subscribe = boolEnv("WARD_DEBUG_SUBSCRIBE")
	d.Eval = boolEnv("WARD_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Walk() bool {
	return d.Walk
}
func Notify() bool {
	return d.Notify
}
func Subscribe() bool {
	return d.Subscribe
}
func Eval() bool {
	return d.Eval
}

// Enable turns on every debug flag, for tests and the cli's -v.
func Enable() {
	d.Walk = true
	d.Notify = true
	d.Subscribe = true
	d.Eval = true
}

// SetOutput redirects debug output, which defaults to stderr.
func SetOutput(w io.Writer) {
	out = w
}

// Logf writes a debug message. Container arguments are rendered as
// indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		default:
		}
	}
	fmt.Fprintf(out, msg, args...)
}
