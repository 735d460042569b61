package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/calista-labs/rulegraph/pkg/rules"
)

// fakeClient returns a canned completion per prompt and records the prompts
// it saw.
type fakeClient struct {
	mu      sync.Mutex
	prompts []string
	reply   func(prompt string) (string, error)
}

func decodeRules(t *testing.T, data string) []rules.Rule {
	t.Helper()

	rs, err := rules.Load([]byte(data))
	if err != nil {
		t.Fatalf("Failed to decode test rules: %v", err)
	}
	return rs
}

func (f *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.reply(prompt)
}

func TestChunkLines_SplitsBySize(t *testing.T) {
	text := "l1\nl2\nl3\nl4\nl5\n"

	chunks := chunkLines(text, 2)
	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "l1\nl2" || chunks[2] != "l5" {
		t.Errorf("Unexpected chunk content: %v", chunks)
	}
}

func TestChunkLines_DefaultSize(t *testing.T) {
	var lines []string
	for i := 0; i < 35; i++ {
		lines = append(lines, fmt.Sprintf("rule %d", i))
	}

	chunks := chunkLines(strings.Join(lines, "\n"), 0)
	if len(chunks) != 2 {
		t.Errorf("Expected 2 chunks with default size 30, got %d", len(chunks))
	}
}

func TestCleanModelOutput_StripsThinkTags(t *testing.T) {
	raw := "<think>\nsome reasoning\nacross lines\n</think>\n[{\"rule_id\": \"r1\"}]"

	got := CleanModelOutput(raw)
	if got != `[{"rule_id": "r1"}]` {
		t.Errorf("Expected bare JSON, got %q", got)
	}
}

func TestCleanModelOutput_StripsJSONFence(t *testing.T) {
	raw := "```json\n[{\"rule_id\": \"r1\"}]\n```"

	got := CleanModelOutput(raw)
	if got != `[{"rule_id": "r1"}]` {
		t.Errorf("Expected fence stripped, got %q", got)
	}
}

func TestCleanModelOutput_PlainPassesThrough(t *testing.T) {
	raw := `[{"rule_id": "r1"}]`

	if got := CleanModelOutput(raw); got != raw {
		t.Errorf("Expected unchanged output, got %q", got)
	}
}

func TestExtractRules_MergesChunksInOrder(t *testing.T) {
	// Each one-line chunk yields a rule named after its own line, so the
	// merged order proves chunk order survived concurrency.
	client := &fakeClient{reply: func(prompt string) (string, error) {
		for i := 1; i <= 3; i++ {
			if strings.Contains(prompt, fmt.Sprintf("line%d", i)) {
				return fmt.Sprintf(`[{"rule_id": "r%d", "triggers": [{"conditions": [{"device_name": "d"}]}], "actions": []}]`, i), nil
			}
		}
		return "", errors.New("unexpected prompt")
	}}
	e := &Extractor{Client: client, ChunkSize: 1}

	rs, err := e.ExtractRules(context.Background(), "PROMPT", "line1\nline2\nline3", "{}", "")
	if err != nil {
		t.Fatalf("ExtractRules failed: %v", err)
	}
	if len(rs) != 3 {
		t.Fatalf("Expected 3 rules, got %d", len(rs))
	}
	for i, r := range rs {
		if want := fmt.Sprintf("r%d", i+1); r.RuleID != want {
			t.Errorf("Rule %d: expected %s, got %s", i, want, r.RuleID)
		}
	}
}

func TestExtractRules_PromptCarriesAllInputs(t *testing.T) {
	client := &fakeClient{reply: func(string) (string, error) {
		return `[{"rule_id": "r1", "triggers": [{"conditions": [{"device_name": "d"}]}], "actions": []}]`, nil
	}}
	e := &Extractor{Client: client}

	_, err := e.ExtractRules(context.Background(), "PROMPT", "rule text", `{"devices": []}`, "ontology here")
	if err != nil {
		t.Fatalf("ExtractRules failed: %v", err)
	}

	prompt := client.prompts[0]
	for _, part := range []string{"PROMPT", "rule text", `{"devices": []}`, "ontology here"} {
		if !strings.Contains(prompt, part) {
			t.Errorf("Prompt missing %q", part)
		}
	}
}

func TestExtractRules_BadChunkFailsBatch(t *testing.T) {
	client := &fakeClient{reply: func(prompt string) (string, error) {
		if strings.Contains(prompt, "line2") {
			return "not json", nil
		}
		return `[{"rule_id": "ok", "triggers": [{"conditions": [{"device_name": "d"}]}], "actions": []}]`, nil
	}}
	e := &Extractor{Client: client, ChunkSize: 1}

	_, err := e.ExtractRules(context.Background(), "P", "line1\nline2", "{}", "")
	if err == nil {
		t.Fatal("Expected failure when one chunk returns garbage")
	}
	if !strings.Contains(err.Error(), "chunk 2") {
		t.Errorf("Expected error to name the failing chunk, got %v", err)
	}
}

func TestExtractRules_ReportsChunkOutcomes(t *testing.T) {
	client := &fakeClient{reply: func(string) (string, error) {
		return `[{"rule_id": "r1", "triggers": [{"conditions": [{"device_name": "d"}]}], "actions": []}]`, nil
	}}

	var mu sync.Mutex
	outcomes := map[string]int{}
	e := &Extractor{Client: client, ChunkSize: 1, OnChunk: func(outcome string) {
		mu.Lock()
		outcomes[outcome]++
		mu.Unlock()
	}}

	if _, err := e.ExtractRules(context.Background(), "P", "line1\nline2\nline3", "{}", ""); err != nil {
		t.Fatalf("ExtractRules failed: %v", err)
	}
	if outcomes["ok"] != 3 || outcomes["error"] != 0 {
		t.Errorf("Expected 3 ok outcomes, got %v", outcomes)
	}
}

func TestExtractRules_FailedChunkReportsErrorOutcome(t *testing.T) {
	client := &fakeClient{reply: func(string) (string, error) {
		return "", errors.New("model unavailable")
	}}

	var mu sync.Mutex
	outcomes := map[string]int{}
	e := &Extractor{Client: client, OnChunk: func(outcome string) {
		mu.Lock()
		outcomes[outcome]++
		mu.Unlock()
	}}

	if _, err := e.ExtractRules(context.Background(), "P", "line", "{}", ""); err == nil {
		t.Fatal("Expected failure when the model is unavailable")
	}
	if outcomes["error"] != 1 || outcomes["ok"] != 0 {
		t.Errorf("Expected 1 error outcome, got %v", outcomes)
	}
}

func TestExtractRules_InvalidRuleFailsValidation(t *testing.T) {
	client := &fakeClient{reply: func(string) (string, error) {
		// Missing rule_id.
		return `[{"triggers": [{"conditions": [{"device_name": "d"}]}], "actions": []}]`, nil
	}}
	e := &Extractor{Client: client}

	if _, err := e.ExtractRules(context.Background(), "P", "line", "{}", ""); err == nil {
		t.Fatal("Expected validation failure for rule without id")
	}
}

func TestInferChannels_SlicesAndMerges(t *testing.T) {
	client := &fakeClient{reply: func(prompt string) (string, error) {
		// Echo back whichever rule ids appear in the slice payload.
		var out []string
		for i := 1; i <= 3; i++ {
			if strings.Contains(prompt, fmt.Sprintf(`"r%d"`, i)) {
				out = append(out, fmt.Sprintf(`{"rule_id": "r%d", "triggers": [{"conditions": [{"device_name": "d"}]}], "actions": []}`, i))
			}
		}
		return "[" + strings.Join(out, ",") + "]", nil
	}}
	e := &Extractor{Client: client}

	input := `[
		{"rule_id": "r1", "triggers": [{"conditions": [{"device_name": "d"}]}], "actions": []},
		{"rule_id": "r2", "triggers": [{"conditions": [{"device_name": "d"}]}], "actions": []},
		{"rule_id": "r3", "triggers": [{"conditions": [{"device_name": "d"}]}], "actions": []}
	]`
	rs := decodeRules(t, input)

	got, err := e.InferChannels(context.Background(), "P", rs, 2)
	if err != nil {
		t.Fatalf("InferChannels failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 annotated rules, got %d", len(got))
	}
	if got[0].RuleID != "r1" || got[2].RuleID != "r3" {
		t.Errorf("Slice order lost: %v, %v", got[0].RuleID, got[2].RuleID)
	}
	if len(client.prompts) != 2 {
		t.Errorf("Expected 2 slices of size 2, got %d requests", len(client.prompts))
	}
}
