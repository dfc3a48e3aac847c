package state

// Pending identifies the input a session is waiting for.
type Pending int

const (
	// Idle means no capture is armed.
	Idle Pending = iota
	// AwaitingWelcomeText waits for the next text message to become the welcome template.
	AwaitingWelcomeText
	// AwaitingWelcomePic waits for the next photo to become the welcome picture.
	AwaitingWelcomePic
)

// String returns the log name of the pending state.
func (p Pending) String() string {
	switch p {
	case Idle:
		return "idle"
	case AwaitingWelcomeText:
		return "awaiting_welcome_text"
	case AwaitingWelcomePic:
		return "awaiting_welcome_pic"
	default:
		return "unknown"
	}
}

// Tracker stores one pending input per user.
type Tracker interface {
	// Arm replaces whatever the user was waiting for with p.
	Arm(userID int64, p Pending)
	// Current returns the pending input, Idle if nothing is armed.
	Current(userID int64) Pending
	// Consume clears the state only when it equals p and reports whether it did.
	Consume(userID int64, p Pending) bool
	// Clear drops any pending input for the user.
	Clear(userID int64)
}
