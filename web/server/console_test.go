package server

import (
	"testing"
	"time"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan)

	logger.Printf("%s\n", "Test log message")

	select {
	case msg := <-messageChan:
		if msg.Message != "Test log message\n" {
			t.Errorf("Expected message 'Test log message\\n', got '%s'", msg.Message)
		}
		if msg.RenderID != "test-render-123" {
			t.Errorf("Expected render ID 'test-render-123', got '%s'", msg.RenderID)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_FormattedMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-format", messageChan)

	logger.Printf("Rendering %d objects, %d lights, reflection level %d\n", 5, 1, 2)

	select {
	case msg := <-messageChan:
		expected := "Rendering 5 objects, 1 lights, reflection level 2\n"
		if msg.Message != expected {
			t.Errorf("Expected formatted message '%s', got '%s'", expected, msg.Message)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for formatted message")
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-789", messageChan)

	// Second and third messages are dropped instead of blocking
	logger.Printf("Message 1\n")
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	if got := len(messageChan); got != 1 {
		t.Errorf("Expected 1 buffered message, got %d", got)
	}
	if msg := <-messageChan; msg.Message != "Message 1\n" {
		t.Errorf("Expected first message to be kept, got '%s'", msg.Message)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("test-render-nil", nil)

	// Should only go to the server log
	logger.Printf("Test message with nil channel\n")
}

func TestMessageLevel(t *testing.T) {
	tests := []struct {
		message  string
		expected string
	}{
		{"Rendered 100 pixels in 1ms\n", "info"},
		{"Render stopped after 3 scanlines: context canceled\n", "warning"},
		{"Render warning: slow\n", "warning"},
		{"Render error: boom\n", "error"},
		{"Failed to encode image\n", "error"},
	}

	for _, tt := range tests {
		if got := messageLevel(tt.message); got != tt.expected {
			t.Errorf("messageLevel(%q) = %s, expected %s", tt.message, got, tt.expected)
		}
	}
}
