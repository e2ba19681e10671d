package dialog

import (
	"errors"
	"strings"
	"testing"

	"capturnbot/internal/session"
)

func newTestController() (*Controller, *session.Store) {
	store := session.NewStore()
	return NewController(store), store
}

func TestMainMenu(t *testing.T) {
	ctrl, _ := newTestController()
	r := ctrl.MainMenu()
	if r.Screen != ScreenMainMenu {
		t.Fatalf("Screen: got %v", r.Screen)
	}
	if len(r.Rows) != 2 {
		t.Fatalf("Rows: got %d, want 2", len(r.Rows))
	}
	if r.Rows[0][0].Event != EventOpenCalculate || r.Rows[1][0].Event != EventOpenTests {
		t.Fatalf("unexpected button events: %+v", r.Rows)
	}
}

func TestNavigateOpenCalculateArmsInput(t *testing.T) {
	ctrl, store := newTestController()
	r, err := ctrl.Navigate(1, EventOpenCalculate, "")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if r.Screen != ScreenCalculateInstructions {
		t.Fatalf("Screen: got %v", r.Screen)
	}
	if !store.AwaitingInput(1) {
		t.Fatal("OpenCalculate must arm the input mode")
	}
	if _, ok := store.LastCalculation(1); ok {
		t.Fatal("OpenCalculate must not touch the stored calculation")
	}
}

func TestNavigateBackDisarmsInput(t *testing.T) {
	ctrl, store := newTestController()
	ctrl.Navigate(1, EventOpenCalculate, "")
	r, err := ctrl.Navigate(1, EventBack, "")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if r.Screen != ScreenMainMenu {
		t.Fatalf("Screen: got %v", r.Screen)
	}
	if store.AwaitingInput(1) {
		t.Fatal("Back must disarm the input mode")
	}
}

func TestNavigateOpenTests(t *testing.T) {
	ctrl, _ := newTestController()
	r, err := ctrl.Navigate(1, EventOpenTests, "")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if r.Screen != ScreenTestMenu {
		t.Fatalf("Screen: got %v", r.Screen)
	}
	if len(r.Rows) != 3 || len(r.Rows[0]) != 2 {
		t.Fatalf("test menu layout: %+v", r.Rows)
	}
}

func TestNavigateRunExample(t *testing.T) {
	ctrl, store := newTestController()
	for _, key := range []string{"1", "2"} {
		r, err := ctrl.Navigate(1, EventRunExample, key)
		if err != nil {
			t.Fatalf("example %s: %v", key, err)
		}
		if r.Screen != ScreenResult {
			t.Fatalf("example %s: screen %v", key, r.Screen)
		}
		if !strings.Contains(r.Text, "указано") {
			t.Errorf("example %s must carry the discrepancy note: %q", key, r.Text)
		}
	}
	// Examples are stateless demos, never stored.
	if _, ok := store.LastCalculation(1); ok {
		t.Fatal("examples must not be stored as the user's calculation")
	}
}

func TestNavigateRunExampleUnknownKey(t *testing.T) {
	ctrl, _ := newTestController()
	_, err := ctrl.Navigate(1, EventRunExample, "3")
	if err == nil {
		t.Fatal("unknown example key must fail")
	}
	var stateErr *StateError
	if errors.As(err, &stateErr) {
		t.Fatal("unknown key is a routing bug, not a state error")
	}
}

func TestNavigateRunMineWithoutCalculation(t *testing.T) {
	ctrl, _ := newTestController()
	_, err := ctrl.Navigate(1, EventRunMine, "")
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("got %v, want *StateError", err)
	}
	if stateErr.Reason != textNoCalculation {
		t.Fatalf("Reason: got %q", stateErr.Reason)
	}
	if stateErr.Code() != "STATE_ERROR" {
		t.Fatalf("Code: got %q", stateErr.Code())
	}
}

func TestNavigateRunMineReplaysStored(t *testing.T) {
	ctrl, _ := newTestController()
	first := ctrl.Submit(Request{UserID: 1, Tokens: []string{"2000000", "1000000", "500000", "300000"}})
	if first.Screen != ScreenResult {
		t.Fatalf("submit screen: %v", first.Screen)
	}

	r, err := ctrl.Navigate(1, EventRunMine, "")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if r.Screen != ScreenResult {
		t.Fatalf("Screen: got %v", r.Screen)
	}
	if !strings.Contains(r.Text, titleMyData) {
		t.Errorf("missing replay title: %q", r.Text)
	}
	if !strings.Contains(r.Text, "*Оборачиваемость активов:* 2.0") {
		t.Errorf("replay must reproduce the stored numbers: %q", r.Text)
	}
}

func TestNavigateUnknownEvent(t *testing.T) {
	ctrl, _ := newTestController()
	if _, err := ctrl.Navigate(1, Event("nope"), ""); err == nil {
		t.Fatal("unknown event must fail")
	}
}

func TestSubmitSuccess(t *testing.T) {
	ctrl, store := newTestController()
	store.SetAwaitingInput(1, true)

	r := ctrl.Submit(Request{UserID: 1, Tokens: []string{"2000000", "1000000", "500000", "300000"}})
	if r.Screen != ScreenResult {
		t.Fatalf("Screen: got %v", r.Screen)
	}
	if !strings.Contains(r.Text, textCalculationDone) {
		t.Errorf("missing done header: %q", r.Text)
	}
	if store.AwaitingInput(1) {
		t.Fatal("submit must clear the input mode")
	}
	calc, ok := store.LastCalculation(1)
	if !ok {
		t.Fatal("successful submit must store the calculation")
	}
	if calc.Input.Revenue != 2000000 {
		t.Fatalf("stored input: %+v", calc.Input)
	}
	if len(r.Rows) != 2 {
		t.Fatalf("result layout: %+v", r.Rows)
	}
}

func TestSubmitParseErrorClearsInputMode(t *testing.T) {
	ctrl, store := newTestController()
	store.SetAwaitingInput(1, true)

	r := ctrl.Submit(Request{UserID: 1, Tokens: []string{"abc", "def"}})
	if r.Screen != ScreenError {
		t.Fatalf("Screen: got %v", r.Screen)
	}
	if r.Text != textInvalidInput {
		t.Fatalf("Text: got %q", r.Text)
	}
	if store.AwaitingInput(1) {
		t.Fatal("one input attempt only: flag must be cleared even on bad input")
	}
	if _, ok := store.LastCalculation(1); ok {
		t.Fatal("failed submit must not store anything")
	}
}

func TestSubmitRangeErrorListsViolations(t *testing.T) {
	ctrl, _ := newTestController()
	r := ctrl.Submit(Request{UserID: 1, Tokens: []string{"-1", "0", "50", "50"}})
	if r.Screen != ScreenError {
		t.Fatalf("Screen: got %v", r.Screen)
	}
	if !strings.HasPrefix(r.Text, textRangeErrorHeader) {
		t.Fatalf("missing header: %q", r.Text)
	}
	if !strings.Contains(r.Text, "Выручка") || !strings.Contains(r.Text, "Активы") {
		t.Fatalf("missing violations: %q", r.Text)
	}
}

func TestSubmitDegradesPanicToErrorScreen(t *testing.T) {
	// A controller over a nil store panics on the first session access;
	// the user must still get the generic error screen, not a crash.
	ctrl := NewController(nil)
	r := ctrl.Submit(Request{UserID: 1, Tokens: []string{"1000", "100", "50", "50"}})
	if r.Screen != ScreenError {
		t.Fatalf("Screen: got %v, want %v", r.Screen, ScreenError)
	}
	if r.Text != textUnexpectedError {
		t.Fatalf("Text: got %q, want %q", r.Text, textUnexpectedError)
	}
	if len(r.Rows) != 0 {
		t.Fatalf("error screen carries no buttons, got %+v", r.Rows)
	}
}

func TestSubmitCommandWithoutArgs(t *testing.T) {
	ctrl, _ := newTestController()
	r := ctrl.SubmitCommand(1, "   ")
	if r.Screen != ScreenMainMenu {
		t.Fatalf("bare command must open the menu, got %v", r.Screen)
	}
}

func TestSubmitCommandWithArgs(t *testing.T) {
	ctrl, _ := newTestController()
	r := ctrl.SubmitCommand(1, "1000000 600000 300000 150000 365")
	if r.Screen != ScreenResult {
		t.Fatalf("Screen: got %v", r.Screen)
	}
	if !strings.Contains(r.Text, "указано 2.0") {
		t.Errorf("second reference pair note missing: %q", r.Text)
	}
}

func TestSubmitFreeText(t *testing.T) {
	ctrl, store := newTestController()
	store.SetAwaitingInput(1, true)
	r := ctrl.SubmitFreeText(1, "2000000 1000000 500000 300000")
	if r.Screen != ScreenResult {
		t.Fatalf("Screen: got %v", r.Screen)
	}
	if store.AwaitingInput(1) {
		t.Fatal("free text submit must clear the input mode")
	}
}

func TestEventsCoverAllButtons(t *testing.T) {
	known := make(map[Event]bool)
	for _, ev := range Events() {
		known[ev] = true
	}
	renders := []Render{
		mainMenuRender(),
		calculateInstructionsRender(),
		testMenuRender(),
		{Rows: testResultRows()},
		{Rows: calcResultRows()},
	}
	for _, r := range renders {
		for _, row := range r.Rows {
			for _, b := range row {
				if !known[b.Event] {
					t.Errorf("button %q fires unregistered event %q", b.Label, b.Event)
				}
			}
		}
	}
}
