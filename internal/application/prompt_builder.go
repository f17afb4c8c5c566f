package application

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"counsel-interview/internal/domain"
)

// clientInfoHiddenKeys are never forwarded to the generation backend
var clientInfoHiddenKeys = []string{"binding_code"}

// PromptBuilder struct - Renders prompt set templates into generation requests
type PromptBuilder struct {
	set    *domain.PromptSet
	system string
}

// NewPromptBuilder func - The interview system instruction is rendered once
func NewPromptBuilder(set *domain.PromptSet) *PromptBuilder {
	b := &PromptBuilder{set: set}
	b.system = b.renderSystemInstruction()
	return b
}

// SystemInstruction returns the fixed persona, topics and rules text
func (b *PromptBuilder) SystemInstruction() string {
	return b.system
}

// ChatRequest builds the request for one participant turn.
// history is the transcript before the new message.
func (b *PromptBuilder) ChatRequest(history []domain.Turn, progress domain.Progress, message string) domain.GenerationRequest {
	ctx := b.set.Context
	var sb strings.Builder

	switch {
	case !hasAgentTurn(history):
		sb.WriteString(ctx.Opening)
	case progress.AllDone():
		sb.WriteString(ctx.AllDone)
	default:
		next, _ := b.set.Topics.Get(progress.NextTopicID)
		sb.WriteString(fmt.Sprintf(ctx.NextTopic, formatIDs(progress.CompletedTopics), next.ID, next.Text))
	}
	sb.WriteString("\n\n")

	if len(history) > 0 {
		sb.WriteString(ctx.HistoryHeader)
		sb.WriteString("\n")
		writeTranscript(&sb, history, ctx.ParticipantLabel, ctx.AgentLabel)
		sb.WriteString("\n")
	}

	sb.WriteString(ctx.Reminder)
	sb.WriteString("\n\n")
	sb.WriteString(ctx.NewMessageHeader)
	sb.WriteString("\n")
	sb.WriteString(ctx.ParticipantLabel)
	sb.WriteString(": ")
	sb.WriteString(message)
	sb.WriteString("\n\n")
	sb.WriteString(ctx.ReplyCue)

	return domain.GenerationRequest{
		SystemInstruction: b.system,
		Prompt:            sb.String(),
	}
}

// AnalysisRequest builds the single-pass analysis request over the whole transcript
func (b *PromptBuilder) AnalysisRequest(session *domain.InterviewSession, clientInfo map[string]interface{}) (domain.GenerationRequest, error) {
	analysis := b.set.Analysis

	info, err := b.renderClientInfo(clientInfo)
	if err != nil {
		return domain.GenerationRequest{}, err
	}

	var transcript strings.Builder
	writeTranscript(&transcript, session.Messages, analysis.ParticipantLabel, analysis.AgentLabel)

	prompt := fmt.Sprintf(analysis.Request,
		session.ParticipantID,
		session.CreatedAt.In(domain.Location).Format(domain.OnlyDateTimeLayout),
		session.UpdatedAt.In(domain.Location).Format(domain.OnlyDateTimeLayout),
		info,
		strings.TrimRight(transcript.String(), "\n"),
	)

	return domain.GenerationRequest{
		SystemInstruction: analysis.Instructions,
		Prompt:            prompt,
	}, nil
}

// CounselorRequest builds the request of one counselor tool. transcript is
// sent as given; supervision also carries the earlier tool outputs.
func (b *PromptBuilder) CounselorRequest(request domain.CounselorReportRequest, transcript string) (domain.GenerationRequest, error) {
	counselor := b.set.Counselor

	instructions := counselor.Instructions(request.Kind)
	if instructions == "" {
		return domain.GenerationRequest{}, fmt.Errorf("%w: prompt set %q has no %s template", domain.ErrValidation, b.set.Name, request.Kind)
	}

	info, err := b.renderClientInfo(request.ClientInfo)
	if err != nil {
		return domain.GenerationRequest{}, err
	}

	var prompt string
	if request.Kind == domain.CounselorReportSupervision {
		prompt = fmt.Sprintf(counselor.SupervisionRequest, info, transcript,
			b.orNone(request.Conceptualization), b.orNone(request.Assessment))
	} else {
		prompt = fmt.Sprintf(counselor.Request, info, transcript)
	}

	return domain.GenerationRequest{
		SystemInstruction: instructions,
		Prompt:            prompt,
	}, nil
}

// SessionTranscript renders a stored interview with the counselor tool labels
func (b *PromptBuilder) SessionTranscript(session *domain.InterviewSession) string {
	var sb strings.Builder
	writeTranscript(&sb, session.Messages, b.set.Counselor.ParticipantLabel, b.set.Counselor.AgentLabel)
	return strings.TrimRight(sb.String(), "\n")
}

func (b *PromptBuilder) renderSystemInstruction() string {
	set := b.set
	var sections []string

	if head := joinNonEmpty("\n", set.Persona, set.Objective); head != "" {
		sections = append(sections, head)
	}
	if set.InitialMessage != "" {
		sections = append(sections, joinNonEmpty("\n", set.System.GreetingHeader, set.InitialMessage))
	}

	lines := make([]string, 0, len(set.Topics))
	for _, topic := range set.Topics {
		if set.System.TopicLine != "" {
			lines = append(lines, fmt.Sprintf(set.System.TopicLine, topic.ID, topic.Text))
		} else {
			lines = append(lines, topic.Text)
		}
	}
	sections = append(sections, joinNonEmpty("\n", set.System.TopicsHeader, strings.Join(lines, "\n")))

	if set.ClosingMessage != "" {
		sections = append(sections, joinNonEmpty("\n", set.System.ClosingHeader, set.ClosingMessage))
	}
	if len(set.Rules) > 0 {
		sections = append(sections, joinNonEmpty("\n", set.System.RulesHeader, bulletList(set.Rules)))
	}
	if len(set.Prohibitions) > 0 {
		sections = append(sections, joinNonEmpty("\n", set.System.ProhibitionsHeader, bulletList(set.Prohibitions)))
	}
	if len(set.Directives) > 0 {
		sections = append(sections, joinNonEmpty("\n", set.System.DirectivesHeader, bulletList(set.Directives)))
	}

	return strings.Join(sections, "\n\n")
}

func (b *PromptBuilder) renderClientInfo(clientInfo map[string]interface{}) (string, error) {
	visible := make(map[string]interface{}, len(clientInfo))
	for k, v := range clientInfo {
		visible[k] = v
	}
	for _, k := range clientInfoHiddenKeys {
		delete(visible, k)
	}
	if len(visible) == 0 {
		return b.set.Analysis.NoClientInfo, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(visible); err != nil {
		return "", fmt.Errorf("%w: client info: %v", domain.ErrValidation, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func (b *PromptBuilder) orNone(text string) string {
	if strings.TrimSpace(text) == "" {
		return b.set.Analysis.NoClientInfo
	}
	return text
}

func writeTranscript(sb *strings.Builder, turns []domain.Turn, participantLabel, agentLabel string) {
	for _, turn := range turns {
		label := agentLabel
		if turn.Sender == domain.SenderParticipant {
			label = participantLabel
		}
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(turn.Text)
		sb.WriteString("\n")
	}
}

func hasAgentTurn(turns []domain.Turn) bool {
	for _, turn := range turns {
		if turn.Sender == domain.SenderAgent {
			return true
		}
	}
	return false
}

// formatIDs renders ids as "[1, 2, 3]"
func formatIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
