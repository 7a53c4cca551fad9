package types

// InputType defines the type of input a host sends in response to a bubble action.
type InputType string

const (
	InputTypeCancel      InputType = "cancel"       // InputTypeCancel indicates the user closed a prompt without submitting.
	InputTypeAddWord     InputType = "add_word"     // InputTypeAddWord indicates a word was submitted from the add-word prompt.
	InputTypeQuickAction InputType = "quick_action" // InputTypeQuickAction indicates an entry was picked from the quick-actions menu.
)

// Quick action identifiers carried in Input.Content.
const (
	QuickActionAddWord = "add_word"
	QuickActionDisable = "disable"
	QuickActionClose   = "close"
)

// Input represents a user response to a bubble prompt or menu.
type Input struct {
	// Metadata holds optional additional information about the input.
	Metadata map[string]interface{}

	// Content is the submitted word, or the quick action identifier.
	Content string

	// Type indicates the kind of input.
	Type InputType
}

// NewCancelInput creates a new cancellation input.
func NewCancelInput() *Input {
	return &Input{
		Type:     InputTypeCancel,
		Metadata: make(map[string]interface{}),
	}
}

// NewAddWordInput creates an input carrying a word to look up.
func NewAddWordInput(word string) *Input {
	return &Input{
		Type:     InputTypeAddWord,
		Content:  word,
		Metadata: make(map[string]interface{}),
	}
}

// NewQuickActionInput creates an input for a quick-actions menu choice.
func NewQuickActionInput(action string) *Input {
	return &Input{
		Type:     InputTypeQuickAction,
		Content:  action,
		Metadata: make(map[string]interface{}),
	}
}

// IsCancel returns true if this is a cancellation input.
func (i *Input) IsCancel() bool {
	return i.Type == InputTypeCancel
}
