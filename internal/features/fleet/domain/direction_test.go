package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordClassifier_Defaults(t *testing.T) {
	c := NewKeywordClassifier(DefaultKeywordRules())

	tests := []struct {
		name    string
		status  string
		journey string
		want    Direction
	}{
		{"GoingLoaded", "Loaded at Mombasa", "", DirectionGoing},
		{"GoingTransit", "in transit to Kampala", "", DirectionGoing},
		{"GoingBorderCue", "", "crossed Malaba border", DirectionGoing},
		{"ReturningKeyword", "Returning to Mombasa", "", DirectionReturning},
		{"ReturningRtn", "RTN empty", "", DirectionReturning},
		{"ReturningFromJourneyText", "parked", "back to MSA on 12th", DirectionReturning},
		{"ReturningWinsOverGoing", "Loaded, now returning empty", "", DirectionReturning},
		{"Unknown", "parked at yard", "", DirectionUnknown},
		{"Empty", "", "", DirectionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(ReportTypeImport, tt.status, tt.journey)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeywordClassifier_ReportTypeDefault(t *testing.T) {
	rules := DefaultKeywordRules()
	rules.Defaults = map[ReportType]Direction{
		ReportTypeNoOrder: DirectionReturning,
	}
	c := NewKeywordClassifier(rules)

	assert.Equal(t, DirectionReturning, c.Classify(ReportTypeNoOrder, "parked", ""))
	assert.Equal(t, DirectionUnknown, c.Classify(ReportTypeImport, "parked", ""))

	// Keyword cues still win over the report-type default.
	assert.Equal(t, DirectionGoing, c.Classify(ReportTypeNoOrder, "loaded", ""))
}

func TestKeywordClassifier_CustomRules(t *testing.T) {
	c := NewKeywordClassifier(KeywordRules{
		GoingKeywords:     []string{"OUTBOUND"},
		ReturningKeywords: []string{"INBOUND"},
	})

	assert.Equal(t, DirectionGoing, c.Classify(ReportTypeImport, "outbound", ""))
	assert.Equal(t, DirectionReturning, c.Classify(ReportTypeImport, "inbound", ""))
	// The default LOADED cue is not part of the custom rules.
	assert.Equal(t, DirectionUnknown, c.Classify(ReportTypeImport, "loaded", ""))
}
