package shock_tube

import "fmt"

// InputValidationError reports a physically inadmissible or malformed
// problem setup, detected before any gas model call is made.
type InputValidationError struct {
	Field  string
	Reason string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NoIntersectionError means the shock and expansion P-u curves never come
// within the velocity matching tolerance anywhere inside the search
// bracket. Widening the shock speed sweep moves the bracket's upper end.
type NoIntersectionError struct {
	PRatio    float64 // best candidate pressure ratio P/P1
	Residual  float64 // velocity mismatch at the candidate, m/s
	Tolerance float64 // m/s
	Lo, Hi    float64 // search bracket in P/P1
}

func (e *NoIntersectionError) Error() string {
	return fmt.Sprintf(
		"no intersection of shock and expansion P-u curves on [%.6g, %.6g]: residual %.4g m/s at P/P1 = %.6g exceeds tolerance %.4g m/s",
		e.Lo, e.Hi, e.Residual, e.PRatio, e.Tolerance)
}

// ExtrapolationError means the matched pressure ratio landed at the edge of
// the search bracket or outside the sampled range of one of the curves, so
// the reported state would be an extrapolation rather than an
// interpolation. Widening the shock speed sweep usually resolves it.
type ExtrapolationError struct {
	PRatio float64
	Lo, Hi float64
	Curve  string // "shock", "expansion" or "bracket"
}

func (e *ExtrapolationError) Error() string {
	if e.Curve == "bracket" {
		return fmt.Sprintf(
			"matched pressure ratio %.6g pinned at the edge of the search bracket [%.6g, %.6g]",
			e.PRatio, e.Lo, e.Hi)
	}
	return fmt.Sprintf(
		"matched pressure ratio %.6g outside the sampled %s curve range [%.6g, %.6g]",
		e.PRatio, e.Curve, e.Lo, e.Hi)
}

// IterationBudgetError reports a bounded march that hit its step limit
// before reaching its target velocity. Last carries the final valid sample
// so a caller can judge how far short the march stopped before retrying
// with a larger budget or a smaller volume growth factor.
type IterationBudgetError struct {
	Op      string
	Steps   int
	Target  float64 // m/s
	Reached float64 // m/s
	Last    FlowPoint
}

func (e *IterationBudgetError) Error() string {
	return fmt.Sprintf("%s: stopped after %d steps at %.6g of target %.6g m/s (last P = %.6g Pa)",
		e.Op, e.Steps, e.Reached, e.Target, e.Last.P)
}
