// Package validate normalizes untrusted field input and rejects anything
// unsafe to persist or render in HTML. Absent optional values come back as
// nil pointers, distinct from empty strings.
package validate

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/louisbranch/plotgod/internal/platform/errors"
)

// allowedNamePunct is the fixed punctuation allow-list for name-safe text.
var allowedNamePunct = map[rune]bool{
	' ': true, '-': true, '_': true, '.': true, ',': true, ':': true, ';': true,
	'\'': true, '’': true, // straight + curly apostrophe
	'(': true, ')': true, '[': true, ']': true,
	'&': true, '/': true,
}

// Angle brackets are blocked everywhere so stored values stay safe when
// rendered into templates.
func isBlocked(r rune) bool {
	return r == '<' || r == '>'
}

// isControl reports C0 control characters and DEL.
func isControl(r rune) bool {
	return r < 32 || r == 127
}

// isLetterMarkOrNumber reports Unicode categories L*, M*, and N*.
func isLetterMarkOrNumber(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r)
}

func isSafeName(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if isBlocked(r) {
			return false
		}
		if isControl(r) {
			return false
		}
		if isLetterMarkOrNumber(r) {
			continue
		}
		if allowedNamePunct[r] {
			continue
		}
		// Everything else (emoji, unusual symbols) is rejected.
		return false
	}
	return true
}

// Name validates a name-like field. Length limits count runes, matching how
// users perceive character counts.
func Name(raw, field string, maxLen int, required bool) (*string, error) {
	value := strings.TrimSpace(raw)

	if value == "" {
		if required {
			return nil, apperrors.Errorf(apperrors.KindInvalidInput, "%s is required.", field)
		}
		return nil, nil
	}

	if utf8.RuneCountInString(value) > maxLen {
		return nil, apperrors.Errorf(apperrors.KindInvalidInput, "%s is too long (max %d chars).", field, maxLen)
	}

	if !isSafeName(value) {
		return nil, apperrors.Errorf(apperrors.KindInvalidInput,
			"%s has invalid characters. "+
				"Allowed: letters/numbers (Unicode), spaces, and common punctuation "+
				"(- _ ' ’ . , : ; ( ) [ ] & /). "+
				"Also blocked: < > and control characters.", field)
	}

	return &value, nil
}

// Integer validates a whole-number field with optional inclusive bounds.
func Integer(raw, field string, required bool, minValue, maxValue *int) (*int, error) {
	value := strings.TrimSpace(raw)

	if value == "" {
		if required {
			return nil, apperrors.Errorf(apperrors.KindInvalidInput, "%s is required.", field)
		}
		return nil, nil
	}

	number, err := strconv.Atoi(value)
	if err != nil {
		return nil, apperrors.Errorf(apperrors.KindInvalidInput, "%s must be a number.", field)
	}

	if minValue != nil && number < *minValue {
		return nil, apperrors.Errorf(apperrors.KindInvalidInput, "%s must be at least %d.", field, *minValue)
	}
	if maxValue != nil && number > *maxValue {
		return nil, apperrors.Errorf(apperrors.KindInvalidInput, "%s must be at most %d.", field, *maxValue)
	}

	return &number, nil
}

// LongText validates free-form text. Unlike Name it permits newline,
// carriage return, tab, and any non-control Unicode outside the name
// allow-list, but still blocks angle brackets and other control characters.
func LongText(raw, field string, maxLen int, required bool) (*string, error) {
	value := strings.TrimSpace(raw)

	if value == "" {
		if required {
			return nil, apperrors.Errorf(apperrors.KindInvalidInput, "%s is required.", field)
		}
		return nil, nil
	}

	if utf8.RuneCountInString(value) > maxLen {
		return nil, apperrors.Errorf(apperrors.KindInvalidInput, "%s is too long (max %d chars).", field, maxLen)
	}

	for _, r := range value {
		if isBlocked(r) {
			return nil, apperrors.Errorf(apperrors.KindInvalidInput, "%s contains blocked characters: < or >.", field)
		}
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if isControl(r) {
			return nil, apperrors.Errorf(apperrors.KindInvalidInput, "%s contains invalid control characters.", field)
		}
	}

	return &value, nil
}
