package turnover

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestCalculateFirstReferenceExample(t *testing.T) {
	in := Input{Revenue: 2000000, AverageAssets: 1000000, EquityCapital: 500000, DebtCapital: 300000, PeriodDays: 365}
	res := Calculate(in)

	if !res.Success {
		t.Fatalf("expected success, errors: %v", res.Errors)
	}
	if !almostEqual(res.AssetTurnover, 2.0) {
		t.Errorf("AssetTurnover: got %v, want 2.0", res.AssetTurnover)
	}
	if !almostEqual(res.EquityTurnover, 4.0) {
		t.Errorf("EquityTurnover: got %v, want 4.0", res.EquityTurnover)
	}
	if !almostEqual(res.DebtTurnover, 2000000.0/300000.0) {
		t.Errorf("DebtTurnover: got %v", res.DebtTurnover)
	}
	if !almostEqual(res.TurnoverPeriod, 182.5) {
		t.Errorf("TurnoverPeriod: got %v, want 182.5", res.TurnoverPeriod)
	}

	text := strings.Join(res.Messages, "\n")
	if !strings.Contains(text, "*Оборачиваемость активов:* 2.0") {
		t.Errorf("missing asset line in %q", text)
	}
	if !strings.Contains(text, "*Оборачиваемость заемного капитала:* 6.7") {
		t.Errorf("missing debt line in %q", text)
	}
	if !strings.Contains(text, "указано 3.3") {
		t.Errorf("missing reference discrepancy note in %q", text)
	}
	if !strings.Contains(text, "*Период оборота:* 182.5 дней") {
		t.Errorf("missing period line in %q", text)
	}
	if len(res.Annotations) != 1 || res.Annotations[0] != AnnotationReferenceDebt1 {
		t.Errorf("Annotations: got %v", res.Annotations)
	}
}

func TestCalculateSecondReferenceExample(t *testing.T) {
	in := Input{Revenue: 1000000, AverageAssets: 600000, EquityCapital: 300000, DebtCapital: 150000, PeriodDays: 365}
	res := Calculate(in)

	if !almostEqual(res.AssetTurnover, 1000000.0/600000.0) {
		t.Errorf("AssetTurnover: got %v", res.AssetTurnover)
	}
	if !almostEqual(res.TurnoverPeriod, 365.0/(1000000.0/600000.0)) {
		t.Errorf("TurnoverPeriod: got %v", res.TurnoverPeriod)
	}
	text := strings.Join(res.Messages, "\n")
	if !strings.Contains(text, "указано 2.0") {
		t.Errorf("missing reference discrepancy note in %q", text)
	}
	if len(res.Annotations) != 1 || res.Annotations[0] != AnnotationReferenceDebt2 {
		t.Errorf("Annotations: got %v", res.Annotations)
	}

	// Qualitative labels: assets medium, equity and debt high.
	if !strings.Contains(text, "• Активы: средняя оборачиваемость") {
		t.Errorf("asset label wrong in %q", text)
	}
	if !strings.Contains(text, "• Собственный капитал: высокая оборачиваемость") {
		t.Errorf("equity label wrong in %q", text)
	}
	if !strings.Contains(text, "• Заемный капитал: высокая оборачиваемость") {
		t.Errorf("debt label wrong in %q", text)
	}
}

func TestCalculateReferenceToleranceWindow(t *testing.T) {
	near := Input{Revenue: 2000000.05, AverageAssets: 1000000, EquityCapital: 500000, DebtCapital: 300000.05, PeriodDays: 365}
	if res := Calculate(near); len(res.Annotations) != 1 {
		t.Errorf("within tolerance: got annotations %v", res.Annotations)
	}
	far := Input{Revenue: 2000000.2, AverageAssets: 1000000, EquityCapital: 500000, DebtCapital: 300000, PeriodDays: 365}
	if res := Calculate(far); len(res.Annotations) != 0 {
		t.Errorf("outside tolerance: got annotations %v", res.Annotations)
	}
}

func TestCalculateZeroEquityAndDebt(t *testing.T) {
	in := Input{Revenue: 1000, AverageAssets: 100, EquityCapital: 0, DebtCapital: 0, PeriodDays: 365}
	res := Calculate(in)

	if res.EquityTurnover != 0 || res.DebtTurnover != 0 {
		t.Fatalf("zero capital must stay zero: %+v", res)
	}
	text := strings.Join(res.Messages, "\n")
	if !strings.Contains(text, "(не рассчитывается, СК = 0)") {
		t.Errorf("missing equity skip note in %q", text)
	}
	if !strings.Contains(text, "(не рассчитывается, ЗК = 0)") {
		t.Errorf("missing debt skip note in %q", text)
	}
	if strings.Contains(text, "• Собственный капитал") || strings.Contains(text, "• Заемный капитал") {
		t.Errorf("analysis must skip non-computed ratios: %q", text)
	}
}

func TestCalculateZeroRevenue(t *testing.T) {
	in := Input{Revenue: 0, AverageAssets: 100, EquityCapital: 50, DebtCapital: 50, PeriodDays: 365}
	res := Calculate(in)

	if res.AssetTurnover != 0 || res.TurnoverPeriod != 0 {
		t.Fatalf("zero revenue: got %+v", res)
	}
	text := strings.Join(res.Messages, "\n")
	if !strings.Contains(text, "*Период оборота:* (не рассчитывается)") {
		t.Errorf("missing period skip note in %q", text)
	}
	if !strings.Contains(text, "• Активы: низкая оборачиваемость") {
		t.Errorf("zero ratio should read low, got %q", text)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	in := Input{Revenue: 2000000, AverageAssets: 1000000, EquityCapital: 500000, DebtCapital: 300000, PeriodDays: 365}
	first := Calculate(in)
	second := Calculate(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input must produce identical results:\n%+v\n%+v", first, second)
	}
}

func TestInterpretBoundaries(t *testing.T) {
	cases := []struct {
		ratio float64
		want  string
	}{
		{0, "низкая"},
		{1.0, "низкая"},
		{1.000001, "средняя"},
		{2.0, "средняя"},
		{2.000001, "высокая"},
		{10, "высокая"},
	}
	for _, tc := range cases {
		if got := Interpret(tc.ratio); got != tc.want {
			t.Errorf("Interpret(%v): got %q, want %q", tc.ratio, got, tc.want)
		}
	}
}

func TestFailureMapsRangeViolations(t *testing.T) {
	_, err := Validate([]string{"-1", "0", "50", "50"})
	res := Failure(err)
	if res.Success {
		t.Fatal("failure result must not be successful")
	}
	want := []string{msgRevenueRange, msgAssetsRange}
	if !reflect.DeepEqual(res.Errors, want) {
		t.Fatalf("Errors: got %v, want %v", res.Errors, want)
	}
	if res.AssetTurnover != 0 || res.TurnoverPeriod != 0 {
		t.Fatalf("numeric fields must stay zero: %+v", res)
	}
}

func TestFailureWithPlainError(t *testing.T) {
	res := Failure(errors.New("boom"))
	if res.Success || len(res.Errors) != 1 || res.Errors[0] != "boom" {
		t.Fatalf("got %+v", res)
	}
}
