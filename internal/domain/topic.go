package domain

import (
	"fmt"
	"sort"
)

// Topic is one fixed discussion point of the interview
type Topic struct {
	ID   int    `yaml:"id" json:"id"`
	Text string `yaml:"text" json:"text"`
}

// TopicList is the ordered, immutable set of interview topics.
// IDs run from 1 to N in order.
type TopicList []Topic

// Get returns the topic with the given id
func (l TopicList) Get(id int) (Topic, bool) {
	for _, t := range l {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// Validate checks ids are 1..N in order and every topic has text
func (l TopicList) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("%w: topic list is empty", ErrValidation)
	}
	for i, t := range l {
		if t.ID != i+1 {
			return fmt.Errorf("%w: topic at position %d has id %d", ErrValidation, i+1, t.ID)
		}
		if t.Text == "" {
			return fmt.Errorf("%w: topic %d has no text", ErrValidation, t.ID)
		}
	}
	return nil
}

// SystemTemplates holds the section headers of the interview system instruction
type SystemTemplates struct {
	GreetingHeader     string `yaml:"greeting_header"`
	TopicsHeader       string `yaml:"topics_header"`
	TopicLine          string `yaml:"topic_line"` // args: topic id, topic text
	ClosingHeader      string `yaml:"closing_header"`
	RulesHeader        string `yaml:"rules_header"`
	ProhibitionsHeader string `yaml:"prohibitions_header"`
	DirectivesHeader   string `yaml:"directives_header"`
}

// ContextTemplates holds the framing strings used to render a chat turn
type ContextTemplates struct {
	Opening          string `yaml:"opening"`
	NextTopic        string `yaml:"next_topic"` // args: completed ids, next id, next text
	AllDone          string `yaml:"all_done"`
	HistoryHeader    string `yaml:"history_header"`
	Reminder         string `yaml:"reminder"`
	NewMessageHeader string `yaml:"new_message_header"`
	ReplyCue         string `yaml:"reply_cue"`
	ParticipantLabel string `yaml:"participant_label"`
	AgentLabel       string `yaml:"agent_label"`
}

// AnalysisTemplates holds the fixed analysis template and its transcript framing
type AnalysisTemplates struct {
	Instructions     string `yaml:"instructions"`
	Request          string `yaml:"request"` // args: participant, created, updated, client info, transcript
	NoClientInfo     string `yaml:"no_client_info"`
	ParticipantLabel string `yaml:"participant_label"`
	AgentLabel       string `yaml:"agent_label"`
}

// CounselorTemplates holds the fixed instructions of the counselor AI tools.
// They are optional; a tool whose instructions are empty is unavailable.
type CounselorTemplates struct {
	Conceptualization  string `yaml:"conceptualization"`
	Assessment         string `yaml:"assessment"`
	Supervision        string `yaml:"supervision"`
	Request            string `yaml:"request"`             // args: client info, transcript
	SupervisionRequest string `yaml:"supervision_request"` // args: client info, transcript, conceptualization, assessment
	ParticipantLabel   string `yaml:"participant_label"`
	AgentLabel         string `yaml:"agent_label"`
}

// Instructions returns the system instruction for kind
func (c CounselorTemplates) Instructions(kind CounselorReportKind) string {
	switch kind {
	case CounselorReportConceptualization:
		return c.Conceptualization
	case CounselorReportAssessment:
		return c.Assessment
	case CounselorReportSupervision:
		return c.Supervision
	}
	return ""
}

// PromptSet is the process-wide interview configuration: persona, rules,
// topics, closing evidence, the analysis template and the counselor tools.
type PromptSet struct {
	Name             string             `yaml:"name"`
	Persona          string             `yaml:"persona"`
	Objective        string             `yaml:"objective"`
	InitialMessage   string             `yaml:"initial_message"`
	ClosingMessage   string             `yaml:"closing_message"`
	Rules            []string           `yaml:"rules"`
	Prohibitions     []string           `yaml:"prohibitions"`
	Directives       []string           `yaml:"directives"`
	System           SystemTemplates    `yaml:"system"`
	Topics           TopicList          `yaml:"topics"`
	TopicMarker      string             `yaml:"topic_marker"` // printf format taking the topic id
	TopicPrefixRunes int                `yaml:"topic_prefix_runes"`
	ClosingPhrases   []string           `yaml:"closing_phrases"`
	Context          ContextTemplates   `yaml:"context"`
	Analysis         AnalysisTemplates  `yaml:"analysis"`
	Counselor        CounselorTemplates `yaml:"counselor"`
}

// Validate checks the fields the engine cannot run without
func (p *PromptSet) Validate() error {
	if err := p.Topics.Validate(); err != nil {
		return err
	}
	if len(p.ClosingPhrases) == 0 {
		return fmt.Errorf("%w: prompt set %q has no closing phrases", ErrValidation, p.Name)
	}
	if p.TopicPrefixRunes <= 0 {
		return fmt.Errorf("%w: prompt set %q has no topic prefix length", ErrValidation, p.Name)
	}
	if p.Context.NextTopic == "" || p.Context.AllDone == "" {
		return fmt.Errorf("%w: prompt set %q is missing context templates", ErrValidation, p.Name)
	}
	if p.Analysis.Instructions == "" || p.Analysis.Request == "" {
		return fmt.Errorf("%w: prompt set %q is missing analysis templates", ErrValidation, p.Name)
	}
	return nil
}

// sortedIDs returns the ids of a set in ascending order
func sortedIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
