package enums

import "fmt"

// SurveySource describes where a case survey originated.
type SurveySource string

const (
	SurveySourceCase SurveySource = "Case"
	SurveySourceChat SurveySource = "Chat"
)

var validSurveySources = []SurveySource{
	SurveySourceCase,
	SurveySourceChat,
}

// IsValid reports whether the value matches the canonical survey source enum.
func (s SurveySource) IsValid() bool {
	for _, candidate := range validSurveySources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSurveySource converts the raw string to SurveySource.
func ParseSurveySource(value string) (SurveySource, error) {
	for _, candidate := range validSurveySources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid survey source %q", value)
}
