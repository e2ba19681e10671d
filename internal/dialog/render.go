package dialog

// Screen identifies a renderable dialog state. Screens are transient:
// every navigation event recomputes one, nothing is stored.
type Screen int

const (
	// ScreenMainMenu is the resting state of the dialog.
	ScreenMainMenu Screen = iota
	// ScreenCalculateInstructions explains the expected input format.
	ScreenCalculateInstructions
	// ScreenTestMenu lists the reference examples and the replay action.
	ScreenTestMenu
	// ScreenResult shows a finished calculation.
	ScreenResult
	// ScreenError shows a validation failure.
	ScreenError
)

// String returns a stable lowercase name for logs.
func (s Screen) String() string {
	switch s {
	case ScreenMainMenu:
		return "main_menu"
	case ScreenCalculateInstructions:
		return "calculate_instructions"
	case ScreenTestMenu:
		return "test_menu"
	case ScreenResult:
		return "result"
	case ScreenError:
		return "error"
	}
	return "unknown"
}

// Button is one inline action: a label plus the event it fires.
type Button struct {
	Label   string
	Event   Event
	Payload string
}

// Render is a request to the transport to display a screen. Text uses
// lightweight markup (bold and italic spans); Rows is the ordered button
// layout.
type Render struct {
	Screen Screen
	Text   string
	Rows   [][]Button
}

func mainMenuRender() Render {
	return Render{
		Screen: ScreenMainMenu,
		Text:   textMainMenu,
		Rows: [][]Button{
			{{Label: btnCalculate, Event: EventOpenCalculate}},
			{{Label: btnTests, Event: EventOpenTests}},
		},
	}
}

func calculateInstructionsRender() Render {
	return Render{
		Screen: ScreenCalculateInstructions,
		Text:   textCalculateInstructions,
		Rows: [][]Button{
			{{Label: btnBack, Event: EventBack}},
		},
	}
}

func testMenuRender() Render {
	return Render{
		Screen: ScreenTestMenu,
		Text:   textTestMenu,
		Rows: [][]Button{
			{
				{Label: btnExample1, Event: EventRunExample, Payload: "1"},
				{Label: btnExample2, Event: EventRunExample, Payload: "2"},
			},
			{{Label: btnMyData, Event: EventRunMine}},
			{{Label: btnBack, Event: EventBack}},
		},
	}
}

// testResultRows is the button layout shared by example and replay results.
func testResultRows() [][]Button {
	return [][]Button{
		{{Label: btnBackToTests, Event: EventOpenTests}},
		{{Label: btnToMenu, Event: EventBack}},
	}
}

// calcResultRows follows a direct calculation.
func calcResultRows() [][]Button {
	return [][]Button{
		{{Label: btnNewCalculation, Event: EventOpenCalculate}},
		{{Label: btnExamples, Event: EventOpenTests}},
	}
}
