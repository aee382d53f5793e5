package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/tutorstack/tutor-backend/internal/config"
	"github.com/tutorstack/tutor-backend/internal/model"
)

// Error kinds surfaced to callers. Rate-limit and quota exhaustion are
// distinct, caller-retryable conditions; nothing here retries internally.
var (
	ErrMissingAPIKey   = errors.New("grading service API key is not configured")
	ErrRateLimited     = errors.New("grading service rate limit exceeded")
	ErrQuotaExceeded   = errors.New("grading service quota exhausted")
	ErrHintUnavailable = errors.New("hint unavailable")
)

// EvalInput describes one question/answer pair to grade. ImageDataURI
// carries the source document encoded as a data URI and is only consulted
// when the multimodal branch is selected.
type EvalInput struct {
	QuestionText string
	AnswerText   string
	DocumentKind model.DocumentKind
	ImageDataURI string
}

// Client wraps an OpenAI-compatible grading/extraction service.
type Client struct {
	api   *openai.Client
	model string
	log   zerolog.Logger
}

// New creates the service client. A missing API key is a configuration
// error and is fatal at construction time, not at evaluation time.
func New(cfg *config.Config, log zerolog.Logger) (*Client, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	apiCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		apiCfg.BaseURL = cfg.OpenAIBaseURL
	}

	return &Client{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.OpenAIModel,
		log:   log.With().Str("component", "llm").Logger(),
	}, nil
}

// EvaluateAnswer grades one answer. The three-way branch (text-only /
// multimodal / lenient) is resolved from the question text and document
// kind; the caller's context governs the timeout and cancellation.
//
// A transport or service error is returned as-is (classified); it is never
// converted into an "incorrect" result. Malformed response content resolves
// to the ungradable fallback inside parseVerdict.
func (c *Client) EvaluateAnswer(ctx context.Context, in EvalInput) (GradeResult, error) {
	mode := SelectGradingMode(in.QuestionText, in.DocumentKind)
	if mode == ModeMultimodal && in.ImageDataURI == "" {
		// Source image could not be loaded; grade from text alone.
		mode = ModeText
	}

	msgs := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: buildEvalSystemPrompt(mode)},
	}

	userPrompt := buildEvalUserPrompt(in.QuestionText, in.AnswerText)
	if mode == ModeMultimodal {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: userPrompt},
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: in.ImageDataURI},
				},
			},
		})
	} else {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: userPrompt,
		})
	}

	raw, err := c.complete(ctx, msgs, 0.2)
	if err != nil {
		return GradeResult{}, err
	}

	result := parseVerdict(raw)
	if mode == ModeLenient && !result.Ungradable {
		// The service was told it cannot see the figure; a verdict it
		// returns anyway is not trustworthy and is demoted to ungradable.
		result = GradeResult{Ungradable: true, Feedback: result.Feedback}
	}
	c.log.Debug().
		Str("mode", string(mode)).
		Bool("ungradable", result.Ungradable).
		Msg("Answer evaluated")
	return result, nil
}

// GenerateHint produces one new hint. The full prior-hint history is sent so
// the service avoids repetition; that is advisory to the service, not
// enforced here. On any failure the distinct hint-unavailable condition is
// propagated; a hint is never fabricated locally.
func (c *Client) GenerateHint(ctx context.Context, questionText string, previousHints []string, kind model.DocumentKind, imageDataURI string) (string, error) {
	msgs := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: buildHintSystemPrompt()},
	}

	userPrompt := buildHintUserPrompt(questionText, previousHints)
	if AttachImageForHint(questionText, kind) && imageDataURI != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: userPrompt},
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: imageDataURI},
				},
			},
		})
	} else {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: userPrompt,
		})
	}

	raw, err := c.complete(ctx, msgs, 0.5)
	if err != nil {
		return "", err
	}

	hint := parseHint(raw)
	if hint == "" {
		return "", fmt.Errorf("%w: malformed hint response", ErrHintUnavailable)
	}
	return hint, nil
}

// ExtractQuestions runs OCR extraction over a document supplied as a data
// URI (image or PDF). Malformed response content yields an empty list, not
// an error; only transport and service failures are errors.
func (c *Client) ExtractQuestions(ctx context.Context, dataURI string) ([]ExtractedQuestion, error) {
	msgs := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: buildExtractionSystemPrompt()},
		{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type: openai.ChatMessagePartTypeText,
					Text: "Extract the questions from this document.",
				},
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: dataURI},
				},
			},
		},
	}

	raw, err := c.complete(ctx, msgs, 0.1)
	if err != nil {
		return nil, err
	}

	questions := parseExtraction(raw)
	c.log.Debug().Int("count", len(questions)).Msg("Questions extracted")
	return questions, nil
}

// complete performs a single blocking chat completion.
func (c *Client) complete(ctx context.Context, msgs []openai.ChatCompletionMessage, temperature float32) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: temperature,
	})
	if err != nil {
		return "", classifyServiceError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("grading service returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyServiceError maps HTTP status codes from the service onto the
// distinguishable error kinds. Anything else stays a generic service error.
func classifyServiceError(err error) error {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case http.StatusPaymentRequired:
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	return fmt.Errorf("grading service: %w", err)
}
