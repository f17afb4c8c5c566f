package domain

import (
	"reflect"
	"testing"
)

func testTopics() TopicList {
	return TopicList{
		{ID: 1, Text: "您目前是在职员工还是在校学生？"},
		{ID: 2, Text: "是什么契机让您想要寻求心理咨询服务呢？"},
		{ID: 3, Text: "在过去的一个月里，您的睡眠质量如何？"},
	}
}

func agent(text string) Turn {
	return Turn{Sender: SenderAgent, Text: text}
}

func participant(text string) Turn {
	return Turn{Sender: SenderParticipant, Text: text}
}

// TestInferProgressEmptyTranscript tests the starting point
func TestInferProgressEmptyTranscript(t *testing.T) {
	matcher := NewSubstringTopicMatcher(10, "问题%d")
	progress := InferProgress(nil, testTopics(), matcher)

	if len(progress.CompletedTopics) != 0 {
		t.Errorf("expected no completed topics, got %v", progress.CompletedTopics)
	}
	if progress.NextTopicID != 1 {
		t.Errorf("expected next topic 1, got %d", progress.NextTopicID)
	}
	if progress.AllDone() {
		t.Error("expected AllDone to be false")
	}
}

// TestInferProgressPrefixMatch tests matching on the leading runes of a topic
func TestInferProgressPrefixMatch(t *testing.T) {
	matcher := NewSubstringTopicMatcher(10, "")
	turns := []Turn{
		agent("您好！我们先开始吧。您目前是在职员工还是在校学生？"),
		participant("在职员工"),
	}

	progress := InferProgress(turns, testTopics(), matcher)

	if !reflect.DeepEqual(progress.CompletedTopics, []int{1}) {
		t.Errorf("expected completed [1], got %v", progress.CompletedTopics)
	}
	if progress.NextTopicID != 2 {
		t.Errorf("expected next topic 2, got %d", progress.NextTopicID)
	}
}

// TestInferProgressMarkerMatch tests matching on the explicit topic marker
func TestInferProgressMarkerMatch(t *testing.T) {
	matcher := NewSubstringTopicMatcher(10, "问题%d")
	turns := []Turn{agent("问题2：请说说您的情况")}

	progress := InferProgress(turns, testTopics(), matcher)

	if !progress.IsCompleted(2) {
		t.Errorf("expected topic 2 completed, got %v", progress.CompletedTopics)
	}
	if progress.NextTopicID != 1 {
		t.Errorf("expected lowest uncovered topic 1, got %d", progress.NextTopicID)
	}
}

// TestInferProgressIgnoresParticipantTurns tests that only agent turns count as asking
func TestInferProgressIgnoresParticipantTurns(t *testing.T) {
	matcher := NewSubstringTopicMatcher(10, "问题%d")
	turns := []Turn{participant("您目前是在职员工还是在校学生？问题2")}

	progress := InferProgress(turns, testTopics(), matcher)

	if len(progress.CompletedTopics) != 0 {
		t.Errorf("expected participant text to be ignored, got %v", progress.CompletedTopics)
	}
}

// TestInferProgressAllDone tests the sentinel once every topic is covered
func TestInferProgressAllDone(t *testing.T) {
	matcher := NewSubstringTopicMatcher(10, "问题%d")
	turns := []Turn{agent("问题1"), agent("问题2"), agent("问题3")}

	progress := InferProgress(turns, testTopics(), matcher)

	if !progress.AllDone() || progress.NextTopicID != AllTopicsDone {
		t.Errorf("expected all done, got next %d", progress.NextTopicID)
	}
	if !reflect.DeepEqual(progress.CompletedTopics, []int{1, 2, 3}) {
		t.Errorf("expected completed [1 2 3], got %v", progress.CompletedTopics)
	}
}

// TestInferProgressMonotonicOverPrefixes tests that covered topics only grow as the transcript grows
func TestInferProgressMonotonicOverPrefixes(t *testing.T) {
	matcher := NewSubstringTopicMatcher(10, "问题%d")
	turns := []Turn{
		agent("您好"),
		participant("你好"),
		agent("您目前是在职员工还是在校学生？"),
		participant("学生"),
		agent("问题3 在过去的一个月里，您的睡眠质量如何？"),
		participant("一般"),
		agent("是什么契机让您想要寻求心理咨询服务呢？"),
	}

	var previous []int
	for i := 0; i <= len(turns); i++ {
		progress := InferProgress(turns[:i], testTopics(), matcher)
		for _, id := range previous {
			if !progress.IsCompleted(id) {
				t.Fatalf("prefix %d lost completed topic %d", i, id)
			}
		}
		previous = progress.CompletedTopics
	}
	if len(previous) != 3 {
		t.Errorf("expected 3 completed topics at the end, got %v", previous)
	}
}

// TestInferProgressEarlyMentionSkipsTopic documents that previewing a later topic marks it asked
func TestInferProgressEarlyMentionSkipsTopic(t *testing.T) {
	matcher := NewSubstringTopicMatcher(10, "")
	turns := []Turn{
		agent("今天我们会聊到：在过去的一个月里，您的睡眠质量如何？等话题。首先，您目前是在职员工还是在校学生？"),
	}

	progress := InferProgress(turns, testTopics(), matcher)

	if !progress.IsCompleted(3) {
		t.Error("expected previewed topic 3 to be marked completed")
	}
	if progress.NextTopicID != 2 {
		t.Errorf("expected next topic 2, got %d", progress.NextTopicID)
	}
}

// TestSubstringTopicMatcherShortText tests a topic shorter than the prefix length
func TestSubstringTopicMatcherShortText(t *testing.T) {
	matcher := NewSubstringTopicMatcher(20, "")
	topic := Topic{ID: 1, Text: "您好吗"}

	if !matcher.Matches(topic, "请问您好吗？") {
		t.Error("expected whole short text to match")
	}
	if matcher.Matches(topic, "您好") {
		t.Error("expected partial text not to match")
	}
}
