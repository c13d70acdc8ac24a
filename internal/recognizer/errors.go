package recognizer

import "errors"

// RecognitionError marks a failure of the speech-to-text step:
// unsupported device, unreadable audio, or a backend failure.
type RecognitionError struct {
	Provider string
	Err      error
}

func (e *RecognitionError) Error() string {
	if e == nil || e.Err == nil {
		return "recognition error"
	}
	if e.Provider == "" {
		return e.Err.Error()
	}
	return e.Provider + ": " + e.Err.Error()
}

func (e *RecognitionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsRecognitionError(err error) bool {
	var re *RecognitionError
	return errors.As(err, &re)
}
