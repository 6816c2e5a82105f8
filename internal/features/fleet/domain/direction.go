package domain

import "strings"

// DirectionClassifier infers a truck's journey direction from report context
// and the free-text status/journey columns.
type DirectionClassifier interface {
	Classify(reportType ReportType, status, journeyText string) Direction
}

// KeywordRules is the configuration for KeywordClassifier. Returning keywords
// win over going keywords when both appear, since return annotations are
// usually appended to an older outbound status.
type KeywordRules struct {
	GoingKeywords     []string              `json:"going_keywords"`
	ReturningKeywords []string              `json:"returning_keywords"`
	Defaults          map[ReportType]Direction `json:"defaults"`
}

// DefaultKeywordRules returns the documented default rule set. The exact cues
// used by tracking clerks vary per report, so the set stays configuration
// rather than hard-coded branching.
func DefaultKeywordRules() KeywordRules {
	return KeywordRules{
		GoingKeywords: []string{
			"LOADED", "IN TRANSIT", "TRANSIT", "GOING", "EN ROUTE",
			"CROSSED", "BORDER", "OFFLOADING",
		},
		ReturningKeywords: []string{
			"RETURN", "RTN", "EMPTY", "BACK TO", "OFFLOADED", "HEADING BACK",
		},
		Defaults: map[ReportType]Direction{},
	}
}

// KeywordClassifier is the default DirectionClassifier: keyword cues over the
// status and journey text, then the report-type default, then UNKNOWN.
type KeywordClassifier struct {
	rules KeywordRules
}

// NewKeywordClassifier creates a KeywordClassifier with the given rules.
func NewKeywordClassifier(rules KeywordRules) *KeywordClassifier {
	return &KeywordClassifier{rules: rules}
}

// Classify implements DirectionClassifier.
func (c *KeywordClassifier) Classify(reportType ReportType, status, journeyText string) Direction {
	text := strings.ToUpper(status + " " + journeyText)

	if containsAny(text, c.rules.ReturningKeywords) {
		return DirectionReturning
	}
	if containsAny(text, c.rules.GoingKeywords) {
		return DirectionGoing
	}
	if d, ok := c.rules.Defaults[reportType]; ok {
		return d
	}
	return DirectionUnknown
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
