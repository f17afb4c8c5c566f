package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/input"
	"counsel-interview/internal/ports/output"

	"github.com/sirupsen/logrus"
)

const (
	// maxUserInputLength caps the runes of one participant message
	maxUserInputLength = 4000
	// maxLineMessageLength is the LINE limit for one text message, in runes
	maxLineMessageLength = 5000
	// maxMessagesPerResponse caps how many LINE messages one reply fans out to
	maxMessagesPerResponse = 5
	// sentenceLookback is how far back a split looks for a sentence end
	sentenceLookback = 200
)

// Texts sent to LINE users
const (
	lineWelcomeText      = "您好，欢迎使用心理访谈助手。直接发送消息即可开始访谈。\n\n输入 /help 查看可用指令。"
	lineHelpText         = "可用指令：\n/help - 显示本说明\n/reset - 重新开始访谈\n/status - 查看访谈进度\n/report - 生成分析报告"
	lineResetText        = "访谈已重置，您可以重新开始了。"
	lineGeneratingText   = "正在生成您的分析报告，请稍候……"
	linePausedText       = "您的访谈目前已暂停，请联系您的咨询师恢复访谈。"
	lineUnavailableText  = "抱歉，系统暂时无法回复，请稍后再试。"
	lineUnsupportedText  = "目前仅支持文字消息。"
	lineNoSessionText    = "您还没有开始访谈，直接发送消息即可开始。"
	lineInsufficientText = "对话内容还不足以生成报告（当前 %d 条，至少需要 %d 条）。请继续访谈。"
)

// LineWebhookService struct - Application service implementing LINE webhook use cases
type LineWebhookService struct {
	lineClient output.LineClient
	interview  input.InterviewService
	reports    input.ReportService
}

// NewLineWebhookService func - Creates new LINE webhook service
func NewLineWebhookService(lineClient output.LineClient, interview input.InterviewService, reports input.ReportService) *LineWebhookService {
	return &LineWebhookService{
		lineClient: lineClient,
		interview:  interview,
		reports:    reports,
	}
}

// HandleWebhook func - Use case: Handle incoming webhook events from LINE
func (s *LineWebhookService) HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error {
	for _, event := range request.Events {
		logrus.Infof("Received LINE event: type=%s, userID=%s", event.Type, event.UserID)

		switch event.Type {
		case domain.LineEventTypeMessage:
			if err := s.handleMessageEvent(ctx, event); err != nil {
				logrus.Errorf("Failed to handle message event: %v", err)
				return err
			}

		case domain.LineEventTypeFollow:
			if err := s.handleFollowEvent(ctx, event); err != nil {
				logrus.Errorf("Failed to handle follow event: %v", err)
				return err
			}

		case domain.LineEventTypeUnfollow:
			logrus.Infof("User unfollowed: userID=%s", event.UserID)

		default:
			logrus.Infof("Unhandled event type: %s", event.Type)
		}
	}

	return nil
}

// handleMessageEvent - Text messages are interview turns, "/" prefixed ones are commands
func (s *LineWebhookService) handleMessageEvent(ctx context.Context, event domain.LineWebhookEvent) error {
	if event.Message == nil || event.UserID == "" {
		return nil
	}

	if event.Message.Type != domain.LineMessageTypeText {
		logrus.Infof("Ignoring non-text message: type=%s", event.Message.Type)
		return s.send(ctx, event, []string{lineUnsupportedText})
	}

	text := strings.TrimSpace(event.Message.Text)
	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, "/") {
		return s.handleCommand(ctx, event, text)
	}

	participantID := domain.LineParticipantID(event.UserID)
	result, err := s.interview.Chat(ctx, participantID, s.truncateUserInput(text))
	if err != nil {
		logrus.Errorf("Interview turn failed: participant=%s, error=%v", participantID, err)
		return s.send(ctx, event, []string{userFacingError(err)})
	}

	return s.send(ctx, event, s.splitAIResponse(result.AgentReply))
}

// handleCommand - Command routing
func (s *LineWebhookService) handleCommand(ctx context.Context, event domain.LineWebhookEvent, text string) error {
	parts := strings.Fields(text)
	command := strings.ToLower(parts[0])
	participantID := domain.LineParticipantID(event.UserID)

	switch command {
	case "/help":
		return s.send(ctx, event, []string{lineHelpText})

	case "/reset":
		if _, err := s.interview.ResetSession(ctx, participantID); err != nil {
			logrus.Errorf("Failed to reset session: participant=%s, error=%v", participantID, err)
			return s.send(ctx, event, []string{userFacingError(err)})
		}
		return s.send(ctx, event, []string{lineResetText})

	case "/status":
		status, err := s.interview.CheckStatus(ctx, participantID)
		if err != nil {
			logrus.Errorf("Failed to check status: participant=%s, error=%v", participantID, err)
			return s.send(ctx, event, []string{userFacingError(err)})
		}
		return s.send(ctx, event, []string{formatStatus(status)})

	case "/report":
		return s.handleReport(ctx, event, participantID)

	default:
		return s.send(ctx, event, []string{fmt.Sprintf("未知指令：%s\n输入 /help 查看可用指令。", command)})
	}
}

// handleReport - Acknowledge through the reply token, then push the report when it is ready
func (s *LineWebhookService) handleReport(ctx context.Context, event domain.LineWebhookEvent, participantID string) error {
	status, err := s.interview.CheckStatus(ctx, participantID)
	if err != nil {
		return s.send(ctx, event, []string{userFacingError(err)})
	}
	if !status.SessionExists {
		return s.send(ctx, event, []string{lineNoSessionText})
	}
	if !status.CanAnalyze {
		return s.send(ctx, event, []string{fmt.Sprintf(lineInsufficientText, status.MessageCount, status.MinMessages)})
	}

	if err := s.send(ctx, event, []string{lineGeneratingText}); err != nil {
		return err
	}

	result, err := s.reports.Analyze(ctx, domain.AnalysisRequest{ParticipantID: participantID})
	if err != nil {
		logrus.Errorf("Analysis failed: participant=%s, error=%v", participantID, err)
		return s.push(ctx, event.UserID, []string{userFacingError(err)})
	}
	return s.push(ctx, event.UserID, s.splitAIResponse(result.Report))
}

// handleFollowEvent - Welcome new followers
func (s *LineWebhookService) handleFollowEvent(ctx context.Context, event domain.LineWebhookEvent) error {
	logrus.Infof("User followed: userID=%s", event.UserID)
	if event.UserID == "" {
		return nil
	}
	if err := s.push(ctx, event.UserID, []string{lineWelcomeText}); err != nil {
		return fmt.Errorf("failed to send welcome message: %w", err)
	}
	return nil
}

// send replies with the first text and pushes the rest
func (s *LineWebhookService) send(ctx context.Context, event domain.LineWebhookEvent, texts []string) error {
	if len(texts) == 0 {
		return nil
	}
	if event.ReplyToken == "" {
		return s.push(ctx, event.UserID, texts)
	}

	reply := domain.LineReplyMessageRequest{
		ReplyToken: event.ReplyToken,
		Messages:   []domain.LineOutgoingMessage{textMessage(texts[0])},
	}
	if _, err := s.lineClient.ReplyMessage(ctx, reply); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	if len(texts) > 1 {
		return s.push(ctx, event.UserID, texts[1:])
	}
	return nil
}

func (s *LineWebhookService) push(ctx context.Context, userID string, texts []string) error {
	for _, text := range texts {
		push := domain.LinePushMessageRequest{
			To:       userID,
			Messages: []domain.LineOutgoingMessage{textMessage(text)},
		}
		if _, err := s.lineClient.PushMessage(ctx, push); err != nil {
			return fmt.Errorf("failed to send push message: %w", err)
		}
	}
	return nil
}

// truncateUserInput cuts messages longer than maxUserInputLength runes
func (s *LineWebhookService) truncateUserInput(text string) string {
	runes := []rune(text)
	if len(runes) <= maxUserInputLength {
		return text
	}
	logrus.Warnf("Truncating user input from %d to %d runes", len(runes), maxUserInputLength)
	return string(runes[:maxUserInputLength])
}

// splitAIResponse splits text into at most maxMessagesPerResponse chunks of at most
// maxLineMessageLength runes, preferring to cut after a sentence end
func (s *LineWebhookService) splitAIResponse(text string) []string {
	runes := []rune(text)
	if len(runes) <= maxLineMessageLength {
		return []string{text}
	}

	chunks := make([]string, 0, maxMessagesPerResponse)
	for len(runes) > 0 && len(chunks) < maxMessagesPerResponse {
		if len(runes) <= maxLineMessageLength {
			chunks = append(chunks, string(runes))
			break
		}

		cut := maxLineMessageLength
		for i := maxLineMessageLength - 1; i >= maxLineMessageLength-sentenceLookback; i-- {
			if isSentenceEnd(runes[i]) {
				cut = i + 1
				// keep the following space with this chunk
				if cut < len(runes) && runes[cut] == ' ' {
					cut++
				}
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	return chunks
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？', '\n':
		return true
	}
	return false
}

func textMessage(text string) domain.LineOutgoingMessage {
	return domain.LineOutgoingMessage{Type: domain.LineMessageTypeText, Text: text}
}

func formatStatus(status *domain.SessionStatusView) string {
	if !status.SessionExists {
		return lineNoSessionText
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("访谈状态：%s\n已回复：%d 次\n", status.Status, status.ParticipantTurnCount))
	switch status.NextStep {
	case domain.NextStepGenerateReport:
		sb.WriteString("访谈已完成，输入 /report 生成分析报告。")
	default:
		sb.WriteString("访谈进行中，请继续回复。")
	}
	if status.HasReport {
		sb.WriteString("\n已生成过分析报告。")
	}
	return sb.String()
}

// userFacingError hides technical details from LINE users
func userFacingError(err error) string {
	var insufficient *domain.InsufficientEvidenceError
	switch {
	case errors.Is(err, domain.ErrSessionPaused):
		return linePausedText
	case errors.As(err, &insufficient):
		return fmt.Sprintf(lineInsufficientText, insufficient.MessageCount, insufficient.MinMessages)
	case errors.Is(err, domain.ErrSessionNotFound):
		return lineNoSessionText
	default:
		return lineUnavailableText
	}
}
