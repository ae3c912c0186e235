package thermo

import (
	"fmt"
	"sort"
	"strings"
)

// EOSError reports a failed oracle evaluation. The failing operation and
// its parameters are attached so a caller can adjust inputs and retry; the
// shock tube pipeline itself never retries, it propagates.
type EOSError struct {
	Op          string
	Composition string
	Params      map[string]float64
	Err         error
}

func (e *EOSError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "equation of state: %s failed", e.Op)
	if e.Composition != "" {
		fmt.Fprintf(&sb, " for %q", e.Composition)
	}
	if len(e.Params) != 0 {
		keys := make([]string, 0, len(e.Params))
		for k := range e.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%g", k, e.Params[k])
		}
		fmt.Fprintf(&sb, " (%s)", strings.Join(parts, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *EOSError) Unwrap() error { return e.Err }
