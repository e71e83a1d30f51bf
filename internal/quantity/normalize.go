// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quantity

import (
	"errors"
	"fmt"
	"math"

	"github.com/pdiddy/materials-miner/pkg/types"
)

// ErrUnknownUnit is matched by every *UnitError.
var ErrUnknownUnit = errors.New("unknown unit")

// UnitError reports a unit with no conversion entry. Unit is empty when the
// target itself is unsupported.
type UnitError struct {
	Unit   string
	Target string
}

func (e *UnitError) Error() string {
	if e.Unit == "" {
		return fmt.Sprintf("unsupported target unit %q", e.Target)
	}
	return fmt.Sprintf("cannot convert unit %q to %s", e.Unit, e.Target)
}

// Is lets errors.Is(err, ErrUnknownUnit) match any UnitError.
func (e *UnitError) Is(target error) bool {
	return target == ErrUnknownUnit
}

// Option configures Normalize.
type Option func(*normalizeOptions)

type normalizeOptions struct {
	roundTo *int
}

// RoundTo rounds converted values to places decimal places.
func RoundTo(places int) Option {
	return func(o *normalizeOptions) { o.roundTo = &places }
}

// RoundToPtr rounds when places is non-nil and leaves values unrounded otherwise.
func RoundToPtr(places *int) Option {
	return func(o *normalizeOptions) { o.roundTo = places }
}

// Normalize converts every value in span to target (K, nm, Å or an alias
// such as "A"). A range yields one NormalizedQuantity per value. It fails
// with a *UnitError when the span's unit has no conversion to target; no
// partial result is returned. A span without numbers yields nil.
func Normalize(span, target string, opts ...Option) ([]types.NormalizedQuantity, error) {
	var o normalizeOptions
	for _, opt := range opts {
		opt(&o)
	}

	canonical, ok := CanonicalTarget(target)
	if !ok {
		return nil, &UnitError{Target: target}
	}

	source := Unit(span, defaultUnits[targetDomain[canonical]]...)
	convert, ok := conversions[canonical][source]
	if !ok {
		return nil, &UnitError{Unit: source, Target: canonical}
	}

	values := Numbers(span)
	if len(values) == 0 {
		return nil, nil
	}
	result := make([]types.NormalizedQuantity, len(values))
	for i, v := range values {
		result[i] = types.NormalizedQuantity{
			Value:       round(convert(v), o.roundTo),
			Unit:        canonical,
			SourceValue: v,
			SourceUnit:  source,
			Mention:     span,
		}
	}
	return result, nil
}

// NormalizeAll normalizes each mention to target. Mentions that fail are
// returned alongside their error so the caller can report and skip them.
func NormalizeAll(mentions []types.QuantityMention, target string, opts ...Option) ([]types.NormalizedQuantity, []error) {
	var (
		result []types.NormalizedQuantity
		errs   []error
	)
	for _, m := range mentions {
		q, err := Normalize(m.Text, target, opts...)
		if err != nil {
			errs = append(errs, fmt.Errorf("normalizing %q: %w", m.Text, err))
			continue
		}
		result = append(result, q...)
	}
	return result, errs
}

func round(v float64, places *int) float64 {
	if places == nil {
		return v
	}
	p := math.Pow(10, float64(*places))
	return math.Round(v*p) / p
}
