package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/calista-labs/rulegraph/pkg/rules"
)

// DefaultChunkSize is how many rule description lines go into one model
// request when no size is configured.
const DefaultChunkSize = 30

var thinkPattern = regexp.MustCompile(`(?s)^<think>.*?</think>\s*`)

// Extractor runs chunked model requests and reassembles the results in
// input order.
type Extractor struct {
	Client    ChatClient
	ChunkSize int
	// OnChunk, when set, observes each chunk request's outcome, "ok" or
	// "error". Chunks run concurrently, so it must be safe for concurrent
	// use.
	OnChunk func(outcome string)
}

func (e *Extractor) observe(outcome string) {
	if e.OnChunk != nil {
		e.OnChunk(outcome)
	}
}

// chunkLines splits text into chunks of at most size lines each.
func chunkLines(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	var chunks []string
	for start := 0; start < len(lines); start += size {
		end := start + size
		if end > len(lines) {
			end = len(lines)
		}
		chunks = append(chunks, strings.Join(lines[start:end], "\n"))
	}
	return chunks
}

// CleanModelOutput strips reasoning tags and JSON code fences from a model
// completion, leaving the bare document.
func CleanModelOutput(raw string) string {
	out := thinkPattern.ReplaceAllString(raw, "")
	out = strings.TrimLeft(out, "\n")
	out = strings.TrimSpace(out)
	if strings.HasPrefix(out, "```json") {
		out = strings.TrimSpace(strings.TrimPrefix(out, "```json"))
	} else if strings.HasPrefix(out, "```") {
		out = strings.TrimSpace(strings.TrimPrefix(out, "```"))
	}
	if strings.HasSuffix(out, "```") {
		out = strings.TrimSpace(strings.TrimSuffix(out, "```"))
	}
	return out
}

// runChunks issues one worker per chunk and returns the cleaned completions
// in chunk order. All workers must succeed; one bad chunk invalidates the
// batch, since a partial rule set would silently shrink the graph.
func (e *Extractor) runChunks(ctx context.Context, prompts []string) ([]string, error) {
	results := make([]string, len(prompts))
	g, ctx := errgroup.WithContext(ctx)
	for i, prompt := range prompts {
		i, prompt := i, prompt
		g.Go(func() error {
			raw, err := e.Client.Complete(ctx, prompt)
			if err != nil {
				e.observe("error")
				return fmt.Errorf("chunk %d: %w", i+1, err)
			}
			e.observe("ok")
			results[i] = CleanModelOutput(raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ExtractRules turns natural-language rule text into validated rule records.
// Rule text is chunked by line; every chunk's prompt also carries the device
// attribute list and the building ontology excerpt so the model can ground
// device names and locations.
func (e *Extractor) ExtractRules(ctx context.Context, promptText, ruleText, deviceJSON, ontology string) ([]rules.Rule, error) {
	var prompts []string
	for _, chunk := range chunkLines(ruleText, e.ChunkSize) {
		prompts = append(prompts, fmt.Sprintf(
			"%s\n-------------------------------\n#input1-rule text:\n%s\n-------------------------------\n#input2.device attributes list (JSON format):\n%s\n#input3.building ontology information:\n%s\n",
			promptText, chunk, deviceJSON, ontology))
	}

	outputs, err := e.runChunks(ctx, prompts)
	if err != nil {
		return nil, err
	}

	var merged []rules.Rule
	for i, out := range outputs {
		var rs []rules.Rule
		if err := json.Unmarshal([]byte(out), &rs); err != nil {
			return nil, fmt.Errorf("chunk %d: decode model output: %w", i+1, err)
		}
		merged = append(merged, rs...)
	}
	if err := rules.Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// InferChannels asks the model to annotate rule records with the implicit
// channels their devices emit and observe. Records are sliced, annotated
// concurrently, and merged back in slice order.
func (e *Extractor) InferChannels(ctx context.Context, promptText string, rs []rules.Rule, sliceSize int) ([]rules.Rule, error) {
	if sliceSize <= 0 {
		sliceSize = 20
	}

	var prompts []string
	for start := 0; start < len(rs); start += sliceSize {
		end := start + sliceSize
		if end > len(rs) {
			end = len(rs)
		}
		payload, err := json.MarshalIndent(rs[start:end], "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode rule slice: %w", err)
		}
		prompts = append(prompts, fmt.Sprintf(
			"%s\n-------------------------------\nInput:\nStructured Rules Data - JSON format:\n%s\n",
			promptText, payload))
	}

	outputs, err := e.runChunks(ctx, prompts)
	if err != nil {
		return nil, err
	}

	var merged []rules.Rule
	for i, out := range outputs {
		var annotated []rules.Rule
		if err := json.Unmarshal([]byte(out), &annotated); err != nil {
			return nil, fmt.Errorf("slice %d: decode model output: %w", i+1, err)
		}
		merged = append(merged, annotated...)
	}
	if err := rules.Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}
