// Package result defines the contract between the query pipeline and
// the launcher host: an ordered list of selectable items, each carrying
// an action to perform when entered.
package result

// Item is one row in the rendered result list. The result list doubles
// as the error surface; failures are items like any other.
type Item struct {
	Icon        string
	Label       string
	Description string
	OnEnter     Action
	OnAltEnter  Action
	// Compact items render as a single highlight-free line.
	Compact bool
}

// Action is what happens when the user selects an item. The concrete
// types below are the only implementations.
type Action interface {
	isAction()
}

// DoNothing leaves the launcher as it is.
type DoNothing struct{}

// Hide closes the launcher window.
type Hide struct{}

// SetQuery replaces the launcher's query line, letting the user keep
// composing a command.
type SetQuery struct {
	Query string
}

// Invoke defers a side-effecting operation until the item is entered.
type Invoke struct {
	Name string
	Fn   func() Outcome
}

func (DoNothing) isAction() {}
func (Hide) isAction()      {}
func (SetQuery) isAction()  {}
func (Invoke) isAction()    {}

// Outcome reports what an invoked action produced: follow-up items to
// render, a replacement query, or plain completion.
type Outcome struct {
	Items []Item
	Query string
	Done  bool
}
