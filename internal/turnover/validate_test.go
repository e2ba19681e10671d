package turnover

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("  2000000\t1000000  500000 300000 ")
	want := []string{"2000000", "1000000", "500000", "300000"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize: got %v, want %v", got, want)
	}
	if got := Tokenize("   "); len(got) != 0 {
		t.Fatalf("Tokenize blank: got %v, want empty", got)
	}
}

func TestValidateFourTokensDefaultsPeriod(t *testing.T) {
	in, err := Validate([]string{"2000000", "1000000", "500000", "300000"})
	if err != nil {
		t.Fatalf("Validate: unexpected error %v", err)
	}
	want := Input{Revenue: 2000000, AverageAssets: 1000000, EquityCapital: 500000, DebtCapital: 300000, PeriodDays: 365}
	if in != want {
		t.Fatalf("Validate: got %+v, want %+v", in, want)
	}
}

func TestValidateFifthTokenTruncatesToDays(t *testing.T) {
	in, err := Validate([]string{"1000", "100", "50", "50", "180.9"})
	if err != nil {
		t.Fatalf("Validate: unexpected error %v", err)
	}
	if in.PeriodDays != 180 {
		t.Fatalf("PeriodDays: got %d, want 180", in.PeriodDays)
	}
}

func TestValidateCommaDecimalSeparator(t *testing.T) {
	in, err := Validate([]string{"1000,5", "100,25", "50", "50"})
	if err != nil {
		t.Fatalf("Validate: unexpected error %v", err)
	}
	if in.Revenue != 1000.5 || in.AverageAssets != 100.25 {
		t.Fatalf("comma parsing: got %+v", in)
	}
}

func TestValidateArity(t *testing.T) {
	for _, tokens := range [][]string{
		nil,
		{"1"},
		{"1", "2", "3"},
		{"1", "2", "3", "4", "5", "6"},
	} {
		_, err := Validate(tokens)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Validate(%v): got %v, want *ParseError", tokens, err)
			continue
		}
		if parseErr.Code() != "PARSE_ERROR" {
			t.Errorf("Validate(%v): code %q", tokens, parseErr.Code())
		}
	}
}

func TestValidateNonNumericToken(t *testing.T) {
	_, err := Validate([]string{"2000000", "abc", "500000", "300000"})
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %v, want *ParseError", err)
	}
	if !strings.Contains(parseErr.Reason, "value 2") {
		t.Fatalf("Reason should name the offending position, got %q", parseErr.Reason)
	}
}

func TestValidateRangeViolations(t *testing.T) {
	cases := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{
			name:   "zero assets",
			tokens: []string{"2000000", "0", "500000", "300000"},
			want:   []string{msgAssetsRange},
		},
		{
			name:   "negative assets only",
			tokens: []string{"100", "-5", "10", "10"},
			want:   []string{msgAssetsRange},
		},
		{
			name:   "negative revenue",
			tokens: []string{"-1", "100", "50", "50"},
			want:   []string{msgRevenueRange},
		},
		{
			name:   "revenue above cap",
			tokens: []string{"2e12", "100", "50", "50"},
			want:   []string{msgRevenueRange},
		},
		{
			name:   "negative equity and debt",
			tokens: []string{"1000", "100", "-5", "-5"},
			want:   []string{msgEquityRange, msgDebtRange},
		},
		{
			name:   "period out of range",
			tokens: []string{"1000", "100", "50", "50", "400"},
			want:   []string{msgPeriodRange},
		},
		{
			name:   "NaN revenue and period",
			tokens: []string{"NaN", "100", "50", "50", "NaN"},
			want:   []string{msgRevenueRange, msgPeriodRange},
		},
		{
			name:   "NaN in every field",
			tokens: []string{"nan", "NaN", "nan", "NaN", "nan"},
			want:   []string{msgRevenueRange, msgAssetsRange, msgEquityRange, msgDebtRange, msgPeriodRange},
		},
		{
			name:   "infinite revenue",
			tokens: []string{"+Inf", "100", "50", "50"},
			want:   []string{msgRevenueRange},
		},
		{
			name:   "everything wrong at once",
			tokens: []string{"-1", "0", "-1", "-1", "0"},
			want:   []string{msgRevenueRange, msgAssetsRange, msgEquityRange, msgDebtRange, msgPeriodRange},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.tokens)
			var rangeErr *RangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("got %v, want *RangeError", err)
			}
			if rangeErr.Code() != "RANGE_ERROR" {
				t.Fatalf("code %q", rangeErr.Code())
			}
			if got := rangeErr.Violations(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("violations: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidateBoundaryValuesPass(t *testing.T) {
	in, err := Validate([]string{"0", "0.01", "0", "0", "1"})
	if err != nil {
		t.Fatalf("lower bounds should pass, got %v", err)
	}
	if in.PeriodDays != 1 {
		t.Fatalf("PeriodDays: got %d, want 1", in.PeriodDays)
	}
	if _, err := Validate([]string{"1e12", "1e12", "1e12", "1e12", "366"}); err != nil {
		t.Fatalf("upper bounds should pass, got %v", err)
	}
}
