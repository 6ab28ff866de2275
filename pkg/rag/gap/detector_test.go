package gap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_EveryPhrase(t *testing.T) {
	d := NewDetector(nil)
	for _, p := range DefaultRefusalPhrases {
		t.Run(p, func(t *testing.T) {
			assert.True(t, d.Detect(p))
			assert.True(t, d.Detect("Sorry. "+p+" based on your current role permissions."))
			assert.False(t, d.Detect(strings.ToLower(p)), "matching is case-sensitive")
			assert.False(t, d.Detect(p[:len(p)-1]), "a truncated phrase is not a match")
		})
	}
}

func TestDetect_NegativeControls(t *testing.T) {
	d := NewDetector(nil)
	for _, answer := range []string{
		"",
		"Employees receive 20 vacation days per year.",
		"Hello! How can I help you today?",
		"Success: Leave requested.",
		"I do not have access",
		"I cannot find",
	} {
		assert.False(t, d.Detect(answer), answer)
	}
}

func TestNewDetector_CustomPhrases(t *testing.T) {
	d := NewDetector([]string{"", "Please contact HR"})
	assert.Equal(t, []string{"Please contact HR"}, d.Phrases())
	assert.True(t, d.Detect("Please contact HR for details."))
	assert.False(t, d.Detect("I cannot find the answer"))
}

func TestNewDetector_BlankFallsBackToDefaults(t *testing.T) {
	assert.Equal(t, DefaultRefusalPhrases, NewDetector([]string{""}).Phrases())
}
