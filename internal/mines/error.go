package mines

// AssertionError reports a broken engine contract. The engine panics with
// it; it is never returned.
type AssertionError struct {
	message string
}

func (e AssertionError) Error() string {
	return "assertion failed: " + e.message
}

// assertionFailed logs message with its context attrs through [Log] and
// returns the error to panic with.
func assertionFailed(message string, args ...any) AssertionError {
	Log.Error("assertion failed: "+message, args...)
	return AssertionError{message}
}
