// Package testkit generates deterministic synthetic insurance datasets for
// tests: seeded random policies with controllable per-province claim rates
// so significance assertions have a known ground truth.
package testkit

import (
	"fmt"
	"math/rand"

	"riskhypo/domain/dataset"
	"riskhypo/domain/insurance"
)

// GeneratorConfig controls the synthetic dataset shape
type GeneratorConfig struct {
	Rows         int
	Seed         int64
	Provinces    []string
	ClaimRates   map[string]float64 // per-province probability of a claim
	BasePremium  float64
	MeanSeverity map[string]float64 // per-province mean claim amount
}

// DefaultConfig returns a balanced two-province dataset with a strong
// frequency contrast between the provinces.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Rows:        2000,
		Seed:        42,
		Provinces:   []string{"Gauteng", "Western Cape"},
		ClaimRates:  map[string]float64{"Gauteng": 0.30, "Western Cape": 0.05},
		BasePremium: 500,
		MeanSeverity: map[string]float64{
			"Gauteng":      4000,
			"Western Cape": 2500,
		},
	}
}

// GenerateRecords builds normalized policy records directly
func GenerateRecords(cfg GeneratorConfig) []insurance.PolicyRecord {
	rng := rand.New(rand.NewSource(cfg.Seed))
	genders := []string{"Male", "Female"}
	makes := []string{"Toyota", "Volkswagen", "Ford", "BMW"}

	records := make([]insurance.PolicyRecord, 0, cfg.Rows)
	for i := 0; i < cfg.Rows; i++ {
		province := cfg.Provinces[i%len(cfg.Provinces)]
		premium := cfg.BasePremium + rng.Float64()*200

		claims := 0.0
		if rng.Float64() < cfg.ClaimRates[province] {
			claims = cfg.MeanSeverity[province] * (0.5 + rng.Float64())
		}

		rec := insurance.PolicyRecord{
			PolicyID: fmt.Sprintf("P%06d", i),
			Premium:  insurance.Num(premium),
			Claims:   insurance.Num(claims),
			Attrs: map[string]string{
				dataset.ColProvince:    province,
				dataset.ColGender:      genders[rng.Intn(len(genders))],
				dataset.ColVehicleMake: makes[rng.Intn(len(makes))],
			},
		}
		rec.ClaimOccurred = claims > 0
		if rec.ClaimOccurred {
			rec.ClaimSeverity = insurance.Num(claims)
		}
		rec.Margin = insurance.Num(premium - claims)
		if premium != 0 {
			rec.LossRatio = insurance.Num(claims / premium)
		}
		records = append(records, rec)
	}
	return records
}

// GenerateTable builds the same dataset as a raw table, the way it would
// arrive from a delimited file.
func GenerateTable(cfg GeneratorConfig) *dataset.Table {
	records := GenerateRecords(cfg)
	header := []string{
		dataset.ColPolicyID, dataset.ColProvince, dataset.ColGender,
		dataset.ColVehicleMake, dataset.ColTotalPremium, dataset.ColTotalClaims,
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.PolicyID,
			rec.Attrs[dataset.ColProvince],
			rec.Attrs[dataset.ColGender],
			rec.Attrs[dataset.ColVehicleMake],
			fmt.Sprintf("%.2f", rec.Premium.Value),
			fmt.Sprintf("%.2f", rec.Claims.Value),
		})
	}
	return dataset.NewTable(header, rows)
}
