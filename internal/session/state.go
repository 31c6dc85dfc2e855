package session

// State is the session's position in the interaction loop.
type State int

const (
	StateBegin State = iota
	StateWaitingText
	StateWaitingUserChoice
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateBegin:
		return "Begin"
	case StateWaitingText:
		return "WaitingText"
	case StateWaitingUserChoice:
		return "WaitingUserChoice"
	case StateEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// Event is the outcome of the side effect performed in a state.
type Event int

const (
	EventGreeted Event = iota
	EventQuit
	EventConverted
	EventConvertFailed
	EventAskAnother
	EventCancel
	EventExecuted
	EventExecuteFailed
	// EventAborted is a user abort at any prompt (Ctrl-C).
	EventAborted
)

func (e Event) String() string {
	switch e {
	case EventGreeted:
		return "Greeted"
	case EventQuit:
		return "Quit"
	case EventConverted:
		return "Converted"
	case EventConvertFailed:
		return "ConvertFailed"
	case EventAskAnother:
		return "AskAnother"
	case EventCancel:
		return "Cancel"
	case EventExecuted:
		return "Executed"
	case EventExecuteFailed:
		return "ExecuteFailed"
	case EventAborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// Next returns the state that follows s when ev happens. Pairs that make
// no sense (e.g. EventExecuted while waiting for text) leave s unchanged.
func Next(s State, ev Event) State {
	if ev == EventAborted {
		return StateEnd
	}

	switch s {
	case StateBegin:
		if ev == EventGreeted {
			return StateWaitingText
		}
	case StateWaitingText:
		switch ev {
		case EventQuit:
			return StateEnd
		case EventConverted:
			return StateWaitingUserChoice
		case EventConvertFailed:
			return StateWaitingText
		}
	case StateWaitingUserChoice:
		switch ev {
		case EventAskAnother, EventExecuteFailed:
			return StateWaitingText
		case EventCancel, EventExecuted:
			return StateEnd
		}
	}
	return s
}

// Choice is what the user wants to do with a converted command.
type Choice int

const (
	ChoiceExecute Choice = iota
	ChoiceEditAndRun
	ChoiceAskAnother
	ChoiceCancel
)

// Choices lists the menu entries in display order.
var Choices = []Choice{ChoiceExecute, ChoiceEditAndRun, ChoiceAskAnother, ChoiceCancel}

// String returns the menu label.
func (c Choice) String() string {
	switch c {
	case ChoiceExecute:
		return "Execute the command directly."
	case ChoiceEditAndRun:
		return "Edit and run the command."
	case ChoiceAskAnother:
		return "Ask another question."
	case ChoiceCancel:
		return "Cancel."
	default:
		return "Unknown."
	}
}
