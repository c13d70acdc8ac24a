package transcript

import "strings"

// Segment is one timed span of recognized speech.
// Offsets are seconds from the start of the audio; Start is expected
// to be non-negative and strictly before End.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Result is the complete output of the recognition step: the full
// transcript plus optional timed segments. It is built once by a
// recognizer and consumed once by a renderer; nothing mutates it.
type Result struct {
	Text     string
	Segments []Segment
	Language string
}

// Preview returns the first n runes of the transcript, with an
// ellipsis when the text was cut.
func (r *Result) Preview(n int) string {
	text := strings.TrimSpace(r.Text)
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
