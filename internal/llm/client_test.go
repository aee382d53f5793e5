package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/tutorstack/tutor-backend/internal/config"
	"github.com/tutorstack/tutor-backend/internal/model"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(&config.Config{OpenAIAPIKey: ""}, zerolog.Nop())
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("New without key = %v, want ErrMissingAPIKey", err)
	}

	c, err := New(&config.Config{OpenAIAPIKey: "sk-test", OpenAIModel: "gpt-4o-mini"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New with key: %v", err)
	}
	if c == nil {
		t.Fatal("nil client")
	}
}

func TestEvaluateAnswerModes(t *testing.T) {
	const dataURI = "data:image/png;base64,aGVsbG8="
	const visualQuestion = "Read the graph and find the slope."

	tests := []struct {
		name           string
		in             EvalInput
		content        string
		wantImage      bool
		wantUngradable bool
	}{
		{
			name:      "multimodal attaches the image",
			in:        EvalInput{QuestionText: visualQuestion, AnswerText: "2", DocumentKind: model.DocumentKindImage, ImageDataURI: dataURI},
			content:   `{"isCorrect": true, "feedback": "Correct."}`,
			wantImage: true,
		},
		{
			name:           "lenient never sends the image",
			in:             EvalInput{QuestionText: visualQuestion, AnswerText: "2", DocumentKind: model.DocumentKindPaginated, ImageDataURI: dataURI},
			content:        `{"cannotGrade": true, "feedback": "I cannot see the figure."}`,
			wantUngradable: true,
		},
		{
			name:           "lenient verdict is demoted to ungradable",
			in:             EvalInput{QuestionText: visualQuestion, AnswerText: "2", DocumentKind: model.DocumentKindPaginated},
			content:        `{"isCorrect": true, "feedback": "Looks right."}`,
			wantUngradable: true,
		},
		{
			name:    "plain text sends no image",
			in:      EvalInput{QuestionText: "What is 2+2?", AnswerText: "4", DocumentKind: model.DocumentKindNone},
			content: `{"isCorrect": true, "feedback": "Correct."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotBody []byte
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Errorf("read request body: %v", err)
				}
				gotBody = body

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"choices": []map[string]any{
						{"message": map[string]any{"role": "assistant", "content": tt.content}},
					},
				})
			}))
			defer srv.Close()

			c, err := New(&config.Config{
				OpenAIAPIKey:  "sk-test",
				OpenAIModel:   "gpt-4o-mini",
				OpenAIBaseURL: srv.URL + "/v1",
			}, zerolog.Nop())
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			res, err := c.EvaluateAnswer(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("EvaluateAnswer: %v", err)
			}

			if got := strings.Contains(string(gotBody), dataURI); got != tt.wantImage {
				t.Errorf("request carries image = %v, want %v", got, tt.wantImage)
			}
			if res.Ungradable != tt.wantUngradable {
				t.Errorf("Ungradable = %v, want %v", res.Ungradable, tt.wantUngradable)
			}
			if tt.wantUngradable {
				if res.IsCorrect != nil {
					t.Errorf("IsCorrect = %v, want nil for ungradable", *res.IsCorrect)
				}
			} else if res.IsCorrect == nil || !*res.IsCorrect {
				t.Errorf("IsCorrect = %v, want true", res.IsCorrect)
			}
		})
	}
}

func TestClassifyServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"API 429", &openai.APIError{HTTPStatusCode: 429}, ErrRateLimited},
		{"API 402", &openai.APIError{HTTPStatusCode: 402}, ErrQuotaExceeded},
		{"request 429", &openai.RequestError{HTTPStatusCode: 429}, ErrRateLimited},
		{"API 500", &openai.APIError{HTTPStatusCode: 500}, nil},
		{"plain error", fmt.Errorf("connection refused"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyServiceError(tt.err)
			if tt.want != nil {
				if !errors.Is(got, tt.want) {
					t.Errorf("classifyServiceError = %v, want wrapping %v", got, tt.want)
				}
				return
			}
			if errors.Is(got, ErrRateLimited) || errors.Is(got, ErrQuotaExceeded) {
				t.Errorf("classifyServiceError = %v, want generic error", got)
			}
		})
	}
}
