package errors

import "fmt"

var (
	ErrWorkerPanic  = fmt.Errorf("worker panic")
	ErrNameTaken    = fmt.Errorf("username already taken")
	ErrEmptyName    = fmt.Errorf("empty username")
	ErrUserNotFound = fmt.Errorf("user not found")
	ErrSelfChat     = fmt.Errorf("cannot chat with yourself")
	ErrNotInChat    = fmt.Errorf("not in a chat")
	ErrEmptyWords   = fmt.Errorf("no words have been found")
)

// BusyError is returned when a chat target is already paired with a third
// user. It carries the occupying partner so callers can name it in the refusal.
type BusyError struct {
	Target  string
	Partner string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("%s is already chatting with %s", e.Target, e.Partner)
}
