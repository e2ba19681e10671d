package session

import (
	"sync"
	"testing"

	"capturnbot/internal/turnover"
)

func TestGetMissingUser(t *testing.T) {
	s := NewStore()
	sess, ok := s.Get(42)
	if ok {
		t.Fatal("missing user should not report existing session")
	}
	if sess.UserID != 42 || sess.Mode != ModeIdle || sess.LastCalculation != nil {
		t.Fatalf("unexpected default session: %+v", sess)
	}
}

func TestLastCalculationRoundTrip(t *testing.T) {
	s := NewStore()
	in := turnover.Input{Revenue: 1000, AverageAssets: 100, EquityCapital: 50, DebtCapital: 50, PeriodDays: 365}
	res := turnover.Calculate(in)

	if _, ok := s.LastCalculation(7); ok {
		t.Fatal("empty store must not return a calculation")
	}

	s.SetLastCalculation(7, in, res)
	calc, ok := s.LastCalculation(7)
	if !ok {
		t.Fatal("stored calculation not found")
	}
	if calc.Input != in {
		t.Fatalf("Input: got %+v, want %+v", calc.Input, in)
	}
	if calc.Result.AssetTurnover != res.AssetTurnover {
		t.Fatalf("Result mismatch: %+v", calc.Result)
	}

	// Other users stay isolated.
	if _, ok := s.LastCalculation(8); ok {
		t.Fatal("calculation leaked to another user")
	}
}

func TestSetLastCalculationOverwrites(t *testing.T) {
	s := NewStore()
	first := turnover.Input{Revenue: 1000, AverageAssets: 100, PeriodDays: 365}
	second := turnover.Input{Revenue: 2000, AverageAssets: 200, PeriodDays: 180}

	s.SetLastCalculation(1, first, turnover.Calculate(first))
	s.SetLastCalculation(1, second, turnover.Calculate(second))

	calc, ok := s.LastCalculation(1)
	if !ok || calc.Input != second {
		t.Fatalf("overwrite failed: %+v", calc)
	}
	if s.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", s.Len())
	}
}

func TestAwaitingInputFlag(t *testing.T) {
	s := NewStore()
	if s.AwaitingInput(5) {
		t.Fatal("fresh user must not await input")
	}
	s.SetAwaitingInput(5, true)
	if !s.AwaitingInput(5) {
		t.Fatal("flag not set")
	}
	if sess, _ := s.Get(5); sess.Mode != ModeAwaitingInput {
		t.Fatalf("Mode: got %q", sess.Mode)
	}
	s.SetAwaitingInput(5, false)
	if s.AwaitingInput(5) {
		t.Fatal("flag not cleared")
	}
}

func TestClearAll(t *testing.T) {
	s := NewStore()
	in := turnover.Input{Revenue: 1000, AverageAssets: 100, PeriodDays: 365}
	s.SetLastCalculation(1, in, turnover.Calculate(in))
	s.SetAwaitingInput(2, true)

	if s.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", s.Len())
	}
	s.ClearAll()
	if s.Len() != 0 {
		t.Fatalf("Len after clear: got %d, want 0", s.Len())
	}
	if _, ok := s.LastCalculation(1); ok {
		t.Fatal("calculation survived ClearAll")
	}
	if s.AwaitingInput(2) {
		t.Fatal("input flag survived ClearAll")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore()
	s.SetAwaitingInput(9, true)
	sess, _ := s.Get(9)
	sess.Mode = ModeIdle
	if !s.AwaitingInput(9) {
		t.Fatal("mutating the returned snapshot must not affect the store")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore()
	in := turnover.Input{Revenue: 1000, AverageAssets: 100, PeriodDays: 365}
	res := turnover.Calculate(in)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.SetAwaitingInput(id, true)
			s.SetLastCalculation(id, in, res)
			s.AwaitingInput(id)
			s.LastCalculation(id)
		}(int64(i % 4))
	}
	wg.Wait()
	if s.Len() != 4 {
		t.Fatalf("Len: got %d, want 4", s.Len())
	}
}
