package events

import (
	"testing"
	"time"
)

func TestPublishNilBroker(t *testing.T) {
	if err := Publish(nil, EventRunnerExited{ExitCode: 1}); err != nil {
		t.Errorf("Publish(nil) error = %v, want nil", err)
	}
}

func TestPublishDelivers(t *testing.T) {
	b := NewBroker()

	sub, err := b.Subscribe(TopicProcess)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := Publish(b, EventRunnerStarted{Path: "/x/vstest.console.exe", CommandLine: "tests.dll"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case msg := <-sub.Messages():
		evt, ok := msg.Payload.(EventRunnerStarted)
		if !ok {
			t.Fatalf("payload type = %T, want EventRunnerStarted", msg.Payload)
		}
		if evt.CommandLine != "tests.dll" {
			t.Errorf("CommandLine = %q, want %q", evt.CommandLine, "tests.dll")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Timeout waiting for EventRunnerStarted")
	}
}
