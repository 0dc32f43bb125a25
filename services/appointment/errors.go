package appointment

import "errors"

var (
	// ErrSlotTaken surfaces a double-booking attempt. Shown to the user,
	// never retried automatically.
	ErrSlotTaken = errors.New("the selected slot is no longer available")
	// ErrNotPermitted means the viewer's role does not allow the action.
	ErrNotPermitted = errors.New("viewer is not permitted to perform this action")
	// ErrNotFound means the appointment does not exist.
	ErrNotFound = errors.New("appointment not found")
	// ErrInvalidInput wraps validation failures of a schedule/cancel request.
	ErrInvalidInput = errors.New("invalid appointment request")
)
