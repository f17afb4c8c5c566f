package line

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"counsel-interview/internal/domain"
)

func newStubServer(t *testing.T, path string, check func(body map[string]interface{})) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			t.Errorf("expected path %s, got %s", path, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("expected bearer token, got %q", r.Header.Get("Authorization"))
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		check(body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sentMessages":[]}`))
	}))
}

func TestReplyMessageSendsText(t *testing.T) {
	server := newStubServer(t, "/v2/bot/message/reply", func(body map[string]interface{}) {
		if body["replyToken"] != "reply-token" {
			t.Errorf("expected reply token, got %v", body["replyToken"])
		}
		messages, _ := body["messages"].([]interface{})
		if len(messages) != 1 {
			t.Errorf("expected 1 message, got %d", len(messages))
			return
		}
		msg := messages[0].(map[string]interface{})
		if msg["type"] != "text" || msg["text"] != "您好" {
			t.Errorf("unexpected message: %v", msg)
		}
	})
	defer server.Close()

	adapter, err := NewLineClientAdapter("test-token", server.URL)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}
	_, err = adapter.ReplyMessage(context.Background(), domain.LineReplyMessageRequest{
		ReplyToken: "reply-token",
		Messages:   []domain.LineOutgoingMessage{{Type: domain.LineMessageTypeText, Text: "您好"}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestPushMessageSendsToUser(t *testing.T) {
	server := newStubServer(t, "/v2/bot/message/push", func(body map[string]interface{}) {
		if body["to"] != "U123" {
			t.Errorf("expected recipient U123, got %v", body["to"])
		}
	})
	defer server.Close()

	adapter, err := NewLineClientAdapter("test-token", server.URL)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}
	_, err = adapter.PushMessage(context.Background(), domain.LinePushMessageRequest{
		To:       "U123",
		Messages: []domain.LineOutgoingMessage{{Type: domain.LineMessageTypeText, Text: "报告"}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestConvertMessagesRejectsNonText(t *testing.T) {
	adapter := &LineClientAdapter{}
	_, err := adapter.convertMessages([]domain.LineOutgoingMessage{{Type: domain.LineMessageTypeSticker}})
	if err == nil {
		t.Error("expected error when nothing can be sent")
	}
}
