package flow

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/encore/internal/domain"
)

// Interpolate replaces {key} placeholders in text with values from choices.
// "{{" and "}}" produce literal braces. Placeholders with no recorded value
// are kept verbatim; MissingKeys lists them. An unterminated "{" is an error.
func Interpolate(text string, choices map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(text))
	err := scanPlaceholders(text, func(lit string) {
		b.WriteString(lit)
	}, func(key string) {
		if v, ok := choices[key]; ok {
			b.WriteString(v)
			return
		}
		b.WriteString("{" + key + "}")
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// MissingKeys returns the placeholder keys in text that have no value in
// choices, in order of first appearance.
func MissingKeys(text string, choices map[string]string) []string {
	var missing []string
	seen := make(map[string]bool)
	_ = scanPlaceholders(text, func(string) {}, func(key string) {
		if _, ok := choices[key]; ok || seen[key] {
			return
		}
		seen[key] = true
		missing = append(missing, key)
	})
	return missing
}

// Placeholders returns every placeholder key referenced by text.
func Placeholders(text string) ([]string, error) {
	var keys []string
	err := scanPlaceholders(text, func(string) {}, func(key string) {
		keys = append(keys, key)
	})
	return keys, err
}

func scanPlaceholders(text string, literal func(string), placeholder func(string)) error {
	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], "{{"):
			literal("{")
			i += 2
		case strings.HasPrefix(text[i:], "}}"):
			literal("}")
			i += 2
		case text[i] == '{':
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return fmt.Errorf("unterminated placeholder at offset %d", i)
			}
			key := strings.TrimSpace(text[i+1 : i+1+end])
			if key == "" || strings.ContainsAny(key, "{\n") {
				return fmt.Errorf("malformed placeholder at offset %d", i)
			}
			placeholder(key)
			i += end + 2
		default:
			next := strings.IndexAny(text[i:], "{}")
			if next < 0 {
				literal(text[i:])
				return nil
			}
			if next == 0 {
				// lone "}"
				literal("}")
				i++
				continue
			}
			literal(text[i : i+next])
			i += next
		}
	}
	return nil
}

// NarrativeFor renders a story screen: the interpolated body followed by the
// branch paragraph selected by the choice recorded under the screen's
// branch key.
func NarrativeFor(lesson *domain.Lesson, screen domain.Screen, choices map[string]string) (string, error) {
	body, err := Interpolate(screen.Body, choices)
	if err != nil {
		return "", fmt.Errorf("screen %q body: %w", screen.ID, err)
	}
	if screen.BranchKey == "" || len(screen.Branches) == 0 {
		return body, nil
	}
	value, ok := choices[screen.BranchKey]
	if !ok {
		return body, nil
	}
	optionID, ok := lesson.OptionIDFor(screen.BranchKey, value)
	if !ok {
		return body, nil
	}
	branch, ok := screen.Branches[optionID]
	if !ok {
		return body, nil
	}
	para, err := Interpolate(branch, choices)
	if err != nil {
		return "", fmt.Errorf("screen %q branch %q: %w", screen.ID, optionID, err)
	}
	if body == "" {
		return para, nil
	}
	return body + "\n\n" + para, nil
}
