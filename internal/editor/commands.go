package editor

import "promptboard/internal/model"

// Command is a typed user action. Commands name their targets by id; they never hold
// references into editor state.
//
// Add* commands accept an optional ID for the created entity; when empty a fresh one is
// generated. Callers that want to focus the new entity pass their own model.NewID.
type Command interface {
	commandName() string
}

type AddRow struct {
	ID string
}

type RemoveRow struct {
	Row string
}

// MoveRow moves a row by Delta positions; moves past either end are no-ops.
type MoveRow struct {
	Row   string
	Delta int
}

type SetRowCols struct {
	Row  string
	Cols int
}

type SetRowTitle struct {
	Row   string
	Title string
}

// AddBlock appends a text, badges or sliders block to a row.
type AddBlock struct {
	Row  string
	Kind model.BlockKind
	ID   string
}

type RemoveBlock struct {
	Row   string
	Block string
}

type MoveBlock struct {
	Row   string
	Block string
	Delta int
}

type SetBlockTitle struct {
	Row   string
	Block string
	Title string
}

// SetText replaces the value of a text block.
type SetText struct {
	Row   string
	Block string
	Value string
}

type AddBadge struct {
	Row   string
	Block string
	ID    string
}

type RemoveBadge struct {
	Row   string
	Block string
	Item  string
}

type ToggleBadge struct {
	Row   string
	Block string
	Item  string
}

type SetBadgeLabel struct {
	Row   string
	Block string
	Item  string
	Label string
}

type SetBadgePayload struct {
	Row     string
	Block   string
	Item    string
	Payload string
}

type AddSlider struct {
	Row   string
	Block string
	ID    string
}

type RemoveSlider struct {
	Row   string
	Block string
	Item  string
}

type SetSliderLabel struct {
	Row   string
	Block string
	Item  string
	Label string
}

// SetSliderValue sets a slider value, clamped and snapped like a native range input.
type SetSliderValue struct {
	Row   string
	Block string
	Item  string
	Value float64
}

// RandomizeBadges flips one randomly chosen item in every badges block that has items.
type RandomizeBadges struct{}

func (AddRow) commandName() string          { return "add-row" }
func (RemoveRow) commandName() string       { return "remove-row" }
func (MoveRow) commandName() string         { return "move-row" }
func (SetRowCols) commandName() string      { return "set-row-cols" }
func (SetRowTitle) commandName() string     { return "set-row-title" }
func (AddBlock) commandName() string        { return "add-block" }
func (RemoveBlock) commandName() string     { return "remove-block" }
func (MoveBlock) commandName() string       { return "move-block" }
func (SetBlockTitle) commandName() string   { return "set-block-title" }
func (SetText) commandName() string         { return "set-text" }
func (AddBadge) commandName() string        { return "add-badge" }
func (RemoveBadge) commandName() string     { return "remove-badge" }
func (ToggleBadge) commandName() string     { return "toggle-badge" }
func (SetBadgeLabel) commandName() string   { return "set-badge-label" }
func (SetBadgePayload) commandName() string { return "set-badge-payload" }
func (AddSlider) commandName() string       { return "add-slider" }
func (RemoveSlider) commandName() string    { return "remove-slider" }
func (SetSliderLabel) commandName() string  { return "set-slider-label" }
func (SetSliderValue) commandName() string  { return "set-slider-value" }
func (RandomizeBadges) commandName() string { return "randomize-badges" }

// CommandName returns the stable name of cmd (as used in logs and the web form API).
func CommandName(cmd Command) string {
	if cmd == nil {
		return ""
	}
	return cmd.commandName()
}
