package transcript

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// jsonSegment mirrors Segment for the timestamped JSON document.
type jsonSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// jsonDocument is the timestamped JSON output. Decoding an emitted
// document reproduces the same text and segments (round-trip).
type jsonDocument struct {
	FullText string        `json:"full_text"`
	Language string        `json:"language,omitempty"`
	Segments []jsonSegment `json:"segments"`
}

// Render serializes a result into the chosen format. It performs no
// I/O; an unrecognized format fails with ErrInvalidFormat before any
// file could be touched.
func Render(r *Result, format Format) (string, error) {
	switch format {
	case FormatText:
		return renderText(r), nil
	case FormatJSON:
		return renderJSON(r)
	case FormatSRT:
		return renderSRT(r), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, string(format))
	}
}

func renderText(r *Result) string {
	return strings.TrimSpace(r.Text)
}

func renderJSON(r *Result) (string, error) {
	doc := jsonDocument{
		FullText: r.Text,
		Language: r.Language,
		Segments: make([]jsonSegment, 0, len(r.Segments)),
	}
	for _, seg := range r.Segments {
		doc.Segments = append(doc.Segments, jsonSegment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode transcript JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// ParseJSON decodes a document produced by the JSON renderer back
// into a Result.
func ParseJSON(data []byte) (*Result, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode transcript JSON: %w", err)
	}
	r := &Result{
		Text:     doc.FullText,
		Language: doc.Language,
		Segments: make([]Segment, 0, len(doc.Segments)),
	}
	for _, seg := range doc.Segments {
		r.Segments = append(r.Segments, Segment(seg))
	}
	return r, nil
}

// renderSRT emits one numbered subtitle entry per segment, in order.
// Segments with empty text are skipped; a segment whose end does not
// advance past its start is stretched rather than dropped. With no
// usable segments the output is an empty document: zero entries is
// the documented fallback, and callers decide whether to warn.
func renderSRT(r *Result) string {
	var lines []string
	index := 0

	for _, seg := range r.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		end := seg.End
		if end <= seg.Start {
			end = seg.Start + 1.0
		}

		index++
		lines = append(lines, fmt.Sprintf("%d", index))
		lines = append(lines, fmt.Sprintf("%s --> %s", FormatSRTTime(seg.Start), FormatSRTTime(end)))
		lines = append(lines, text)
		lines = append(lines, "")
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// FormatSRTTime converts a second offset into the SubRip time form
// HH:MM:SS,mmm. Source audio is assumed under 24 hours, so no day
// wrap handling.
func FormatSRTTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(math.Round(seconds * 1000))
	hours := total / 3600000
	minutes := (total % 3600000) / 60000
	secs := (total % 60000) / 1000
	millis := total % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
