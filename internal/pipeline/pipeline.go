package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"image-identifier/internal/llm"
)

// Result is one complete identify chain. A regeneration produces a new
// Result; nothing is carried over from the previous one.
type Result struct {
	Text      string       `json:"result"`
	Keywords  []string     `json:"keywords"`
	Questions []string     `json:"questions"`
	Lines     []RenderLine `json:"lines"`
}

// Empty reports whether the cleaned text has nothing to display.
func (r Result) Empty() bool {
	return r.Text == ""
}

// IdentifyError reports a failed identify call. Subject names what was being
// identified ("image" or "plant").
type IdentifyError struct {
	Subject string
	Err     error
}

func (e *IdentifyError) Error() string {
	return "identify " + e.Subject + ": " + e.Err.Error()
}

func (e *IdentifyError) Unwrap() error {
	return e.Err
}

// Pipeline turns model output into display text, keywords, related questions
// and line tags. The two model calls of a chain run one after the other.
type Pipeline struct {
	llm llm.Client
	log *slog.Logger
}

// New builds a pipeline around a shared model client.
func New(client llm.Client, log *slog.Logger) *Pipeline {
	return &Pipeline{llm: client, log: log}
}

// Identify runs the full chain for an image. instruction is appended to the
// identify prompt and may be empty. Only the identify call can fail; question
// generation degrades to an empty list.
func (p *Pipeline) Identify(ctx context.Context, image llm.InlineData, instruction string) (Result, error) {
	raw, err := p.llm.Generate(ctx, BuildIdentifyPrompt(instruction), &image)
	if err != nil {
		return Result{}, &IdentifyError{Subject: "image", Err: err}
	}
	return p.Process(ctx, raw), nil
}

// IdentifyPlant issues the single plant identification call and returns the
// raw model text untouched.
func (p *Pipeline) IdentifyPlant(ctx context.Context, image llm.InlineData) (string, error) {
	raw, err := p.llm.Generate(ctx, PlantPrompt, &image)
	if err != nil {
		return "", &IdentifyError{Subject: "plant", Err: err}
	}
	return raw, nil
}

// Process derives a Result from a raw model response.
func (p *Pipeline) Process(ctx context.Context, raw string) Result {
	text := Clean(raw)
	result := Result{
		Text:      text,
		Keywords:  ExtractKeywords(text),
		Questions: []string{},
		Lines:     ClassifyLines(text),
	}
	if result.Empty() {
		return result
	}
	result.Questions = p.GenerateQuestions(ctx, text)
	return result
}

// GenerateQuestions asks the model for related questions, one per line. The
// response is not validated: any number of lines may come back. Failures are
// logged and yield an empty list.
func (p *Pipeline) GenerateQuestions(ctx context.Context, text string) []string {
	resp, err := p.llm.Generate(ctx, QuestionsPrompt(text), nil)
	if err != nil {
		p.log.Warn("error generating related questions", "err", err)
		return []string{}
	}
	resp = strings.TrimSpace(resp)
	if resp == "" {
		return []string{}
	}
	return strings.Split(resp, "\n")
}
