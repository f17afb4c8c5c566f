package domain

import (
	"fmt"
	"strings"
)

// AllTopicsDone is the NextTopicID sentinel once every topic has been covered
const AllTopicsDone = 0

// Progress is the derived view of which topics a transcript has covered
type Progress struct {
	CompletedTopics []int // ascending
	NextTopicID     int   // AllTopicsDone when every topic is covered
}

// AllDone reports whether every topic has been covered
func (p Progress) AllDone() bool {
	return p.NextTopicID == AllTopicsDone
}

// IsCompleted reports whether the topic id is in CompletedTopics
func (p Progress) IsCompleted(id int) bool {
	for _, c := range p.CompletedTopics {
		if c == id {
			return true
		}
	}
	return false
}

// TopicMatcher decides whether an agent message shows that a topic was asked
type TopicMatcher interface {
	Matches(topic Topic, agentText string) bool
}

// SubstringTopicMatcher marks a topic as asked when an agent message contains
// the first PrefixRunes runes of its text, or the explicit marker for its id.
//
// Mentioning a later topic early (a preview, a copy) marks it as asked and it
// is skipped for the rest of the interview. That is an accepted limitation.
type SubstringTopicMatcher struct {
	PrefixRunes int
	Marker      string // printf format, e.g. "问题%d"; empty disables marker matching
}

// NewSubstringTopicMatcher creates a matcher from the prompt set settings
func NewSubstringTopicMatcher(prefixRunes int, marker string) *SubstringTopicMatcher {
	return &SubstringTopicMatcher{
		PrefixRunes: prefixRunes,
		Marker:      marker,
	}
}

// Matches implements TopicMatcher
func (m *SubstringTopicMatcher) Matches(topic Topic, agentText string) bool {
	if prefix := runePrefix(topic.Text, m.PrefixRunes); prefix != "" && strings.Contains(agentText, prefix) {
		return true
	}
	if m.Marker != "" && strings.Contains(agentText, fmt.Sprintf(m.Marker, topic.ID)) {
		return true
	}
	return false
}

// InferProgress recomputes covered topics from scratch over the whole transcript.
// It is pure: the transcript is the only state.
func InferProgress(turns []Turn, topics TopicList, matcher TopicMatcher) Progress {
	completed := make(map[int]struct{})
	for _, topic := range topics {
		for _, turn := range turns {
			if turn.Sender != SenderAgent {
				continue
			}
			if matcher.Matches(topic, turn.Text) {
				completed[topic.ID] = struct{}{}
				break
			}
		}
	}

	next := AllTopicsDone
	for _, topic := range topics {
		if _, ok := completed[topic.ID]; !ok {
			next = topic.ID
			break
		}
	}

	return Progress{
		CompletedTopics: sortedIDs(completed),
		NextTopicID:     next,
	}
}

func runePrefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
