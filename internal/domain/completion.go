package domain

import "strings"

// Completion is the result of scanning a transcript for closing evidence
type Completion struct {
	IsComplete           bool
	ParticipantTurnCount int
}

// CompletionDetector classifies a transcript as finished or not
type CompletionDetector interface {
	Detect(turns []Turn) Completion
}

// PhraseCompletionDetector reports completion when any agent turn contains one
// of the closing phrases. Matching is exact and case-sensitive.
type PhraseCompletionDetector struct {
	Phrases []string
}

// NewPhraseCompletionDetector creates a detector for the given closing phrases
func NewPhraseCompletionDetector(phrases []string) *PhraseCompletionDetector {
	return &PhraseCompletionDetector{Phrases: phrases}
}

// Detect implements CompletionDetector
func (d *PhraseCompletionDetector) Detect(turns []Turn) Completion {
	var result Completion
	for _, turn := range turns {
		switch turn.Sender {
		case SenderParticipant:
			result.ParticipantTurnCount++
		case SenderAgent:
			if !result.IsComplete && d.containsClosing(turn.Text) {
				result.IsComplete = true
			}
		}
	}
	return result
}

func (d *PhraseCompletionDetector) containsClosing(text string) bool {
	for _, phrase := range d.Phrases {
		if phrase != "" && strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
