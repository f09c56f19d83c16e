package insurance

// Numeric is an explicit optional numeric value. A missing Numeric is a
// distinct state, not zero and not NaN; arithmetic helpers state their own
// missing-propagation rule.
type Numeric struct {
	Value float64
	Valid bool
}

// Num creates a present numeric value
func Num(v float64) Numeric {
	return Numeric{Value: v, Valid: true}
}

// Missing creates the absent numeric value
func Missing() Numeric {
	return Numeric{}
}

// OrZero returns the value, treating missing as 0. This is the
// summation rule: sums skip nothing but contribute 0 for missing cells.
func (n Numeric) OrZero() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}

// PolicyRecord is one normalized insurance transaction. Raw categorical
// attributes stay as strings in Attrs (absent key = missing value); the
// numeric fields and the four derived metrics are fixed at normalization
// time and never mutated afterwards.
type PolicyRecord struct {
	PolicyID string
	Premium  Numeric
	Claims   Numeric
	Attrs    map[string]string

	// Derived metrics, pure functions of the raw fields above.
	ClaimOccurred bool
	ClaimSeverity Numeric // claims amount, defined only when a claim occurred
	Margin        Numeric // premium - claims, missing when either side is
	LossRatio     Numeric // claims / premium, missing when premium is 0 or absent
}

// Attr returns the named categorical attribute, reporting presence
func (r PolicyRecord) Attr(column string) (string, bool) {
	v, ok := r.Attrs[column]
	return v, ok
}
