package controller

// ViewState is the page the landing experience currently shows
type ViewState int

const (
	Home ViewState = iota
	Detail
	Checkout
)

// String returns the page name used in analytics payloads
func (s ViewState) String() string {
	switch s {
	case Home:
		return "home"
	case Detail:
		return "technology"
	case Checkout:
		return "checkout"
	default:
		return "unknown"
	}
}

// ModalKind identifies a dialog the controller can show
type ModalKind string

const (
	// ModalNotLaunched is the "we're still finalizing the design" notice that
	// ends every pre-order attempt.
	ModalNotLaunched ModalKind = "not_launched"
)

// FieldAction describes an interaction with a checkout form field
type FieldAction string

const (
	FieldFocus    FieldAction = "focus"
	FieldComplete FieldAction = "complete"
	FieldClear    FieldAction = "clear"
)

// Control identifiers reported in button_click events
const (
	ControlLearnMore      = "learn_more"
	ControlReserve        = "reserve_yours"
	ControlSubmitPreorder = "submit_preorder"
	ControlReturnHome     = "return_home"
	ControlBack           = "back"
)
