package insurance

import (
	"math"
	"strconv"
	"strings"

	"riskhypo/domain/dataset"
)

// Normalizer converts raw table rows into immutable PolicyRecords: it cleans
// the financial columns into Numerics and derives the per-record risk metrics.
// Unparseable values become missing, never errors; a run continues with a
// reduced sample for that field.
type Normalizer struct {
	schema dataset.Schema
}

// NewNormalizer creates a normalizer bound to the table's schema
func NewNormalizer(schema dataset.Schema) *Normalizer {
	return &Normalizer{schema: schema}
}

// Normalize produces a fresh record set; the input table is not modified.
// When the premium column is absent entirely, Margin and LossRatio are
// missing for every record and no error is raised.
func (n *Normalizer) Normalize(t *dataset.Table) []PolicyRecord {
	hasPremium := n.schema.Has(dataset.ColTotalPremium)
	hasClaims := n.schema.Has(dataset.ColTotalClaims)
	hasPolicyID := n.schema.Has(dataset.ColPolicyID)

	categorical := []string{
		dataset.ColProvince,
		dataset.ColPostalCode,
		dataset.ColGender,
		dataset.ColVehicleType,
		dataset.ColVehicleMake,
		dataset.ColVehicleModel,
	}

	records := make([]PolicyRecord, 0, t.Len())
	for _, row := range t.Rows {
		rec := PolicyRecord{Attrs: make(map[string]string)}

		if hasPolicyID {
			if v, ok := row.Get(dataset.ColPolicyID); ok {
				rec.PolicyID = v
			}
		}
		if hasPremium {
			if v, ok := row.Get(dataset.ColTotalPremium); ok {
				rec.Premium = CleanNumeric(v)
			}
		}
		if hasClaims {
			if v, ok := row.Get(dataset.ColTotalClaims); ok {
				rec.Claims = CleanNumeric(v)
			}
		}
		for _, col := range categorical {
			if !n.schema.Has(col) {
				continue
			}
			if v, ok := row.Get(col); ok {
				rec.Attrs[col] = v
			}
		}

		rec.derive()
		records = append(records, rec)
	}

	return records
}

// derive computes the four per-record metrics from the cleaned fields
func (r *PolicyRecord) derive() {
	// Claim occurrence treats missing claims as 0.
	r.ClaimOccurred = r.Claims.Valid && r.Claims.Value > 0

	if r.ClaimOccurred {
		r.ClaimSeverity = Num(r.Claims.Value)
	} else {
		r.ClaimSeverity = Missing()
	}

	if r.Premium.Valid && r.Claims.Valid {
		r.Margin = Num(r.Premium.Value - r.Claims.Value)
	} else {
		r.Margin = Missing()
	}

	if r.Premium.Valid && r.Premium.Value != 0 && r.Claims.Valid {
		r.LossRatio = Num(r.Claims.Value / r.Premium.Value)
	} else {
		r.LossRatio = Missing()
	}
}

// CleanNumeric parses a raw currency cell into a Numeric. Surrounding
// whitespace, thousands separators and common currency symbols are stripped
// before parsing; anything that still fails to parse is missing.
func CleanNumeric(raw string) Numeric {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return Missing()
	}

	// Parenthesized amounts are accounting negatives: (123.45) -> -123.45
	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, "("), ")")
		negative = true
	}

	for _, symbol := range []string{"$", "R", "€", "£"} {
		cleaned = strings.ReplaceAll(cleaned, symbol, "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	if negative {
		cleaned = "-" + cleaned
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return Missing()
	}
	return Num(v)
}
