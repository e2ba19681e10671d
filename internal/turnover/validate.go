// Package turnover implements the capital-turnover calculation core:
// input validation and the pure ratio engine. It performs no I/O and
// keeps no state.
package turnover

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Domain bounds for the monetary fields and the reporting period.
const (
	MaxMonetary = 1e12
	MinAssets   = 0.01

	DefaultPeriodDays = 365
	MinPeriodDays     = 1
	MaxPeriodDays     = 366
)

// Range violation messages shown to the user, one per field.
const (
	msgRevenueRange = "Выручка: от 0 до 10^12"
	msgAssetsRange  = "Активы: от 0.01 до 10^12"
	msgEquityRange  = "Собственный капитал: от 0 до 10^12"
	msgDebtRange    = "Заемный капитал: от 0 до 10^12"
	msgPeriodRange  = "Период: 1-366 дней"
)

// Input is a validated calculation request. It is immutable once built
// and consumed exactly once by Calculate.
type Input struct {
	Revenue       float64
	AverageAssets float64
	EquityCapital float64
	DebtCapital   float64
	PeriodDays    int
}

// Tokenize splits raw command arguments into whitespace-delimited tokens.
func Tokenize(raw string) []string {
	return strings.Fields(raw)
}

// Validate parses 4 or 5 numeric tokens (comma or dot decimal separator)
// into an Input. It returns *ParseError when the tokens cannot be read as
// numbers of the expected arity, and *RangeError listing every violated
// field otherwise. The fifth token is the period in days, defaulting to 365.
func Validate(tokens []string) (Input, error) {
	if len(tokens) < 4 || len(tokens) > 5 {
		return Input{}, &ParseError{Reason: fmt.Sprintf("expected 4 or 5 values, got %d", len(tokens))}
	}

	nums := make([]float64, len(tokens))
	for i, tok := range tokens {
		normalized := strings.ReplaceAll(strings.TrimSpace(tok), ",", ".")
		v, err := strconv.ParseFloat(normalized, 64)
		if err != nil {
			return Input{}, &ParseError{Reason: fmt.Sprintf("value %d is not a number", i+1)}
		}
		nums[i] = v
	}

	revenue := nums[0]
	avgAssets := nums[1]
	equity := nums[2]
	debt := nums[3]
	period := float64(DefaultPeriodDays)
	if len(nums) == 5 {
		period = nums[4]
	}

	// NaN evades every ordered comparison, so each bound check names it
	// explicitly; it must land in the same violation list as real bounds.
	var merr *multierror.Error
	if math.IsNaN(revenue) || revenue < 0 || revenue > MaxMonetary {
		merr = multierror.Append(merr, errors.New(msgRevenueRange))
	}
	if math.IsNaN(avgAssets) || avgAssets < MinAssets || avgAssets > MaxMonetary {
		merr = multierror.Append(merr, errors.New(msgAssetsRange))
	}
	if math.IsNaN(equity) || equity < 0 || equity > MaxMonetary {
		merr = multierror.Append(merr, errors.New(msgEquityRange))
	}
	if math.IsNaN(debt) || debt < 0 || debt > MaxMonetary {
		merr = multierror.Append(merr, errors.New(msgDebtRange))
	}
	if math.IsNaN(period) || period < MinPeriodDays || period > MaxPeriodDays {
		merr = multierror.Append(merr, errors.New(msgPeriodRange))
	}
	if merr != nil {
		return Input{}, newRangeError(merr)
	}

	return Input{
		Revenue:       revenue,
		AverageAssets: avgAssets,
		EquityCapital: equity,
		DebtCapital:   debt,
		PeriodDays:    int(period),
	}, nil
}
