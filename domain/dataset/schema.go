package dataset

// Well-known column names of the insurance transaction dataset. Only the
// financial columns are required; everything else is optional and must be
// checked through the Schema before use.
const (
	ColTransactionMonth = "TransactionMonth"
	ColTotalPremium     = "TotalPremium"
	ColTotalClaims      = "TotalClaims"
	ColProvince         = "Province"
	ColPostalCode       = "PostalCode"
	ColGender           = "Gender"
	ColVehicleType      = "VehicleType"
	ColVehicleMake      = "make"
	ColVehicleModel     = "Model"
	ColPolicyID         = "PolicyID"
	ColCustomValue      = "CustomValueEstimate"
)

// Schema is the capability descriptor for a loaded table: which columns are
// actually available. Components consult it once up front instead of probing
// rows at runtime.
type Schema struct {
	columns map[string]struct{}
}

// NewSchema builds a Schema from a table's column list
func NewSchema(t *Table) Schema {
	cols := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		cols[c] = struct{}{}
	}
	return Schema{columns: cols}
}

// Has reports whether the named column exists in the dataset
func (s Schema) Has(column string) bool {
	_, ok := s.columns[column]
	return ok
}

// HasAll reports whether every named column exists
func (s Schema) HasAll(columns ...string) bool {
	for _, c := range columns {
		if !s.Has(c) {
			return false
		}
	}
	return true
}
