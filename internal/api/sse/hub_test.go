package sse

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "notification",
			data:      `{"id":1}`,
			expected:  "event: notification\ndata: {\"id\":1}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "notification",
			data:      "새 세션\n2월 12일",
			expected:  "event: notification\ndata: 새 세션\ndata: 2월 12일\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"hello", []string{"hello"}},
		{"line1\nline2", []string{"line1", "line2"}},
		{"line1\n", []string{"line1"}},
		{"", []string{""}},
		{"line1\r\nline2\r\n", []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		result := splitLines(tt.input)
		if strings.Join(result, "|") != strings.Join(tt.expected, "|") || len(result) != len(tt.expected) {
			t.Errorf("splitLines(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

// waitFor polls cond until it holds or a second passes
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func receive(t *testing.T, c *Client) string {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		if !ok {
			t.Fatal("client channel closed")
		}
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return ""
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub(1, nil)
	go hub.Run()
	defer hub.Close()

	a, b := NewClient(1), NewClient(1)
	if !hub.Register(a) || !hub.Register(b) {
		t.Fatal("Register() = false on an open hub")
	}
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.BroadcastEvent("notification", "hello")
	want := "event: notification\ndata: hello\n\n"
	if got := receive(t, a); got != want {
		t.Errorf("client a got %q, want %q", got, want)
	}
	if got := receive(t, b); got != want {
		t.Errorf("client b got %q, want %q", got, want)
	}

	hub.Unregister(a)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	if _, ok := <-a.send; ok {
		t.Error("unregistered client channel should be closed")
	}
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub(1, nil)
	go hub.Run()

	c := NewClient(1)
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Close()
	hub.Close()
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
	if _, ok := <-c.send; ok {
		t.Error("client channel should be closed when the hub stops")
	}
	if hub.Register(NewClient(1)) {
		t.Error("Register() on a closed hub should return false")
	}
	// must not block
	hub.Unregister(c)
}

func TestHubManager(t *testing.T) {
	m := NewHubManager(nil)
	defer m.Close()

	if m.GetHub(7) != nil {
		t.Fatal("GetHub() before any stream should be nil")
	}
	hub := m.GetOrCreateHub(7)
	if m.GetOrCreateHub(7) != hub {
		t.Error("GetOrCreateHub() should reuse the user's hub")
	}
	if m.GetHub(7) != hub {
		t.Error("GetHub() should return the created hub")
	}

	c := NewClient(7)
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	m.GetOrCreateHub(8)

	if removed := m.CleanupEmptyHubs(); removed != 1 {
		t.Errorf("CleanupEmptyHubs() = %d, want 1", removed)
	}
	if m.GetHub(8) != nil {
		t.Error("empty hub should be removed")
	}

	m.RemoveHub(7)
	if m.GetHub(7) != nil {
		t.Error("RemoveHub() should drop the hub")
	}
	if _, ok := <-c.send; ok {
		t.Error("removing a hub should disconnect its clients")
	}
}

func TestBroadcaster_Publish(t *testing.T) {
	m := NewHubManager(nil)
	defer m.Close()
	b := NewBroadcaster(m, nil)

	// nobody listening is a no-op
	b.Publish(3, model.Notification{ID: 1, Title: "무시"})

	hub := m.GetOrCreateHub(3)
	c := NewClient(3)
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	n := model.Notification{ID: 2, Title: "새 세션이 등록되었습니다."}
	b.Publish(3, n)

	msg := receive(t, c)
	prefix := "event: " + NotificationEvent + "\ndata: "
	if !strings.HasPrefix(msg, prefix) {
		t.Fatalf("unexpected message %q", msg)
	}
	var got model.Notification
	if err := json.Unmarshal([]byte(strings.TrimSuffix(strings.TrimPrefix(msg, prefix), "\n\n")), &got); err != nil {
		t.Fatalf("payload is not a notification: %v", err)
	}
	if got.ID != 2 || got.Title != n.Title {
		t.Errorf("got %+v, want %+v", got, n)
	}
}
