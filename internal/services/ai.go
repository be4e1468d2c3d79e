package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/tasknest-api/internal/constants"
	"github.com/yukikurage/tasknest-api/internal/models"
)

// TaskDrafter turns free text into task drafts.
type TaskDrafter interface {
	DraftTasks(ctx context.Context, req DraftRequest) ([]GeneratedTask, error)
}

// DraftRequest carries the text and the values a draft may use.
type DraftRequest struct {
	Text       string
	Today      time.Time
	Categories []models.Category
	Priorities []models.Priority
}

// GeneratedTask is an unsaved task suggestion.
type GeneratedTask struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Priority string  `json:"priority"`
	DueDate  *string `json:"due_date"`
}

type AIService struct {
	client *openai.Client
	model  string
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4o,
	}
}

// NewAIServiceWithConfig builds an AIService against a custom endpoint.
func NewAIServiceWithConfig(cfg openai.ClientConfig, model string) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// DraftTasks asks the model to extract tasks from text.
func (s *AIService) DraftTasks(ctx context.Context, req DraftRequest) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: buildDraftPrompt(req),
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var out struct {
		Tasks []GeneratedTask `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return out.Tasks, nil
}

func buildDraftPrompt(req DraftRequest) string {
	categories := make([]string, len(req.Categories))
	for i, c := range req.Categories {
		categories[i] = string(c)
	}
	priorities := make([]string, len(req.Priorities))
	for i, p := range req.Priorities {
		priorities[i] = string(p)
	}

	return fmt.Sprintf(`You extract actionable tasks from text.

Today: %s

Text:
%s

Return a JSON object of this shape:
{
  "tasks": [
    {
      "name": "short task name",
      "category": "one of: %s",
      "priority": "one of: %s",
      "due_date": "YYYY-MM-DD, or null when no deadline is given"
    }
  ]
}

Rules:
- Return {"tasks": []} when the text contains no tasks
- Convert relative deadlines such as "tomorrow" or "next week" into dates
- Return at most %d tasks
- Return JSON only, without commentary`,
		req.Today.Format(constants.DateLayout),
		req.Text,
		strings.Join(categories, ", "),
		strings.Join(priorities, ", "),
		constants.MaxAIGeneratedTasks,
	)
}
