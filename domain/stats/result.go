package stats

import "fmt"

// TestKind identifies which statistical test produced a Result
type TestKind string

const (
	TestProportionZ   TestKind = "proportion-z"
	TestChiSquare     TestKind = "chi-square"
	TestKruskalWallis TestKind = "kruskal-wallis"
	TestMannWhitney   TestKind = "mann-whitney"
)

// Alpha is the decision threshold applied uniformly to every test
const Alpha = 0.05

// Result represents one statistical comparison. Applicable=false is a
// distinct outcome meaning the test's preconditions (sample size,
// non-degenerate variance) were not met; it is never coerced to a zero
// statistic or a default conclusion.
type Result struct {
	Kind       TestKind
	Statistic  float64
	PValue     float64
	Applicable bool
	Reason     string // why the test was inapplicable, empty otherwise
}

// Inapplicable creates the distinct not-applicable outcome
func Inapplicable(kind TestKind, reason string) Result {
	return Result{Kind: kind, Applicable: false, Reason: reason}
}

func applicable(kind TestKind, statistic, pValue float64) Result {
	return Result{Kind: kind, Statistic: statistic, PValue: pValue, Applicable: true}
}

// Significant reports whether the result is applicable and below Alpha
func (r Result) Significant() bool {
	return r.Applicable && r.PValue < Alpha
}

// Conclusion returns the fixed-wording decision string for the hypothesis
// named by subject, keyed by the 0.05 threshold.
func (r Result) Conclusion(subject string) string {
	if !r.Applicable {
		return fmt.Sprintf("Test not applicable for %s: %s", subject, r.Reason)
	}
	if r.PValue < Alpha {
		return fmt.Sprintf("RESULT: Reject H0 — %s differs (p < 0.05)", subject)
	}
	return fmt.Sprintf("RESULT: Fail to reject H0 — no evidence of differences in %s", subject)
}
