// Package render substitutes {name} placeholders in notification content.
package render

import (
	"fmt"
	"regexp"
)

var placeholderPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Apply replaces each {name} placeholder in template. Values come from
// variables first, then defaults keyed with braces, then defaults keyed
// bare. Placeholders with no value are kept verbatim.
func Apply(template string, variables, defaults map[string]any) string {
	if template == "" {
		return ""
	}
	return placeholderPattern.ReplaceAllStringFunc(template, func(placeholder string) string {
		name := placeholder[1 : len(placeholder)-1]
		if value, ok := variables[name]; ok {
			return stringify(value)
		}
		if value, ok := defaults[placeholder]; ok {
			return stringify(value)
		}
		if value, ok := defaults[name]; ok {
			return stringify(value)
		}
		return placeholder
	})
}

// Truncate cuts message to maxLength runes, ending with an ellipsis. A
// non-positive maxLength disables truncation.
func Truncate(message string, maxLength int) string {
	if maxLength <= 0 {
		return message
	}
	runes := []rune(message)
	if len(runes) <= maxLength {
		return message
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}

// Content renders a title, a message and the string values of a data
// payload, truncating the message to maxLength.
func Content(title, message string, data, variables, defaults map[string]any, maxLength int) (string, string, map[string]any) {
	outTitle := Apply(title, variables, defaults)
	outMessage := Truncate(Apply(message, variables, defaults), maxLength)

	outData := make(map[string]any, len(data))
	for key, value := range data {
		if s, ok := value.(string); ok {
			outData[key] = Apply(s, variables, defaults)
		} else {
			outData[key] = value
		}
	}
	return outTitle, outMessage, outData
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
