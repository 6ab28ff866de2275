package gap

import "strings"

// DefaultRefusalPhrases are the markers the answer prompts instruct the model to use
// when the caller's role has no matching knowledge.
var DefaultRefusalPhrases = []string{
	"I do not have access to this information",
	"This information appears to be restricted",
	"I cannot find this information",
	"I cannot find the answer",
}

// Detector flags answers that are refusals. Matching is exact and case-sensitive.
type Detector struct {
	phrases []string
}

// NewDetector uses DefaultRefusalPhrases when phrases is empty. Blank entries are ignored.
func NewDetector(phrases []string) *Detector {
	var cleaned []string
	for _, p := range phrases {
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, DefaultRefusalPhrases...)
	}
	return &Detector{phrases: cleaned}
}

func (d *Detector) Detect(answer string) bool {
	for _, p := range d.phrases {
		if strings.Contains(answer, p) {
			return true
		}
	}
	return false
}

func (d *Detector) Phrases() []string {
	return append([]string(nil), d.phrases...)
}
