// Package debug gates verbose stderr tracing behind environment
// variables, so delivery and decode internals can be watched without
// touching the logging callback applications install.
package debug

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"
)

type debug struct {
	Dispatch bool
	Session  bool
	Queue    bool
	Decode   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Dispatch = boolEnv("MDX_DEBUG_DISPATCH")
	d.Session = boolEnv("MDX_DEBUG_SESSION")
	d.Queue = boolEnv("MDX_DEBUG_QUEUE")
	d.Decode = boolEnv("MDX_DEBUG_DECODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Dispatch() bool {
	return d.Dispatch
}
func Session() bool {
	return d.Session
}
func Queue() bool {
	return d.Queue
}
func Decode() bool {
	return d.Decode
}

// Logf writes to stderr, pretty-printing map and slice arguments as
// indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		switch a := args[i].(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
