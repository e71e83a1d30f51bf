// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/pdiddy/materials-miner/pkg/types"
)

// ChemicalSummary aggregates the values of one property for one chemical.
type ChemicalSummary struct {
	Chemical types.Chemical `json:"chemical" yaml:"chemical"`
	Unit     string         `json:"unit" yaml:"unit"`
	Count    int            `json:"count" yaml:"count"`
	Mean     float64        `json:"mean" yaml:"mean"`

	// StdErr is the population standard deviation divided by sqrt(Count).
	StdErr float64 `json:"std_err" yaml:"std_err"`
}

// Summarize groups the records of property by chemical and returns each
// chemical's mean and standard error, sorted ascending by mean. Records
// without a chemical are left out.
func (s *Store) Summarize(ctx context.Context, property string) ([]ChemicalSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chemical, value, unit FROM records
		 WHERE property = ? AND chemical IS NOT NULL
		 ORDER BY rowid`, property)
	if err != nil {
		return nil, fmt.Errorf("querying %s values: %w", property, err)
	}
	defer rows.Close()

	var (
		order  []types.Chemical
		values = make(map[types.Chemical][]float64)
		units  = make(map[types.Chemical]string)
	)
	for rows.Next() {
		var (
			chem  string
			value float64
			unit  string
		)
		if err := rows.Scan(&chem, &value, &unit); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		c := types.Chemical(chem)
		if _, seen := values[c]; !seen {
			order = append(order, c)
			units[c] = unit
		}
		values[c] = append(values[c], value)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summaries := make([]ChemicalSummary, 0, len(order))
	for _, c := range order {
		mean, stdErr := MeanStdErr(values[c])
		summaries = append(summaries, ChemicalSummary{
			Chemical: c,
			Unit:     units[c],
			Count:    len(values[c]),
			Mean:     mean,
			StdErr:   stdErr,
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool { return summaries[i].Mean < summaries[j].Mean })
	return summaries, nil
}

// MeanStdErr returns the mean of values and the population standard
// deviation divided by sqrt(n). Both are zero for an empty slice.
func MeanStdErr(values []float64) (mean, stdErr float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= n

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq/n) / math.Sqrt(n)
}
