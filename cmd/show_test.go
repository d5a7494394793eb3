package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chris-regnier/moodlog/internal/mood"
)

func TestShowFullContent(t *testing.T) {
	setupTestEnv(t)
	addEntry(t, "may00010", testOwner, "Full journal entry content here", mood.Calm, may(10, 8))

	var buf bytes.Buffer
	if err := runShow(context.Background(), &buf, "may00010"); err != nil {
		t.Fatalf("runShow: %v", err)
	}
	out := stripANSI(buf.String())

	for _, want := range []string{"Entry: may00010", "Created: 2025-05-10 08:00", "Mood: calm", "Full journal entry content here"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestShowContentOnlyAndJSON(t *testing.T) {
	setupTestEnv(t)
	addEntry(t, "may00011", testOwner, "Just the words", mood.None, may(11, 8))

	showContentOnly = true
	var buf bytes.Buffer
	if err := runShow(context.Background(), &buf, "may00011"); err != nil {
		t.Fatalf("runShow: %v", err)
	}
	if buf.String() != "Just the words\n" {
		t.Errorf("unexpected content-only output %q", buf.String())
	}

	showContentOnly = false
	jsonOutput = true
	buf.Reset()
	if err := runShow(context.Background(), &buf, "may00011"); err != nil {
		t.Fatalf("runShow: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["id"] != "may00011" || got["content"] != "Just the words" {
		t.Errorf("unexpected JSON %v", got)
	}
}

func TestShowNotFound(t *testing.T) {
	setupTestEnv(t)
	addEntry(t, "may00012", otherUser, "not yours", mood.Sad, may(12, 8))

	for _, id := range []string{"nonexist", "may00012"} {
		err := runShow(context.Background(), &bytes.Buffer{}, id)
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("show %s: expected not found, got %v", id, err)
		}
	}
}

func TestShowInvalidID(t *testing.T) {
	setupTestEnv(t)
	if err := runShow(context.Background(), &bytes.Buffer{}, "BAD"); err == nil {
		t.Error("expected invalid ID error")
	}
}

func TestShowWrapsAtMaxWidth(t *testing.T) {
	sentence := "today the long meeting about the quarterly plan ran far past lunch and everyone left tired"

	render := func(width int) string {
		setupTestEnv(t)
		appConfig.MaxWidth = width
		addEntry(t, "may00013", testOwner, sentence, mood.Calm, may(13, 8))
		var buf bytes.Buffer
		if err := runShow(context.Background(), &buf, "may00013"); err != nil {
			t.Fatalf("runShow: %v", err)
		}
		return stripANSI(buf.String())
	}

	if out := render(200); !strings.Contains(out, sentence) {
		t.Errorf("expected the sentence on one line at width 200:\n%s", out)
	}
	if out := render(40); strings.Contains(out, sentence) {
		t.Errorf("expected the sentence wrapped at width 40:\n%s", out)
	}
}

func TestRenderWidth(t *testing.T) {
	setupTestEnv(t)
	appConfig.MaxWidth = 0
	if got := renderWidth(&bytes.Buffer{}); got != defaultRenderWidth {
		t.Errorf("renderWidth = %d, want %d", got, defaultRenderWidth)
	}
	appConfig.MaxWidth = 120
	if got := renderWidth(&bytes.Buffer{}); got != 120 {
		t.Errorf("renderWidth = %d, want 120", got)
	}
}
