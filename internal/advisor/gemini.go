package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

var (
	ErrEmptyResponse   = errors.New("advisor returned empty response")
	ErrMalformedAnswer = errors.New("advisor answer is not valid json")
)

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// Suggestion ответ модели
type Suggestion struct {
	ClassroomID string `json:"allocated_classroom_id"`
	Success     bool   `json:"success"`
	Reason      string `json:"reason"`
}

// generateFunc отправляет промпт модели и возвращает текст ответа
type generateFunc func(ctx context.Context, prompt string) (string, error)

// Gemini советчик по выбору аудитории на основе Gemini.
// Его ответ только подсказка: движок перепроверяет её правилами занятости.
type Gemini struct {
	generate generateFunc
	logger   *zap.Logger
}

var _ allocation.Advisor = (*Gemini)(nil)

func NewGemini(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	generate := func(ctx context.Context, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})
		if err != nil {
			return "", fmt.Errorf("generate content: %w", err)
		}
		return resp.Text(), nil
	}

	return &Gemini{generate: generate, logger: logger}, nil
}

// Suggest возвращает ID аудитории или пустую строку, если модель не смогла выбрать
func (g *Gemini) Suggest(ctx context.Context, in allocation.AdvisorInput) (string, error) {
	text, err := g.generate(ctx, BuildPrompt(in))
	if err != nil {
		return "", err
	}

	suggestion, err := ParseSuggestion(text)
	if err != nil {
		return "", err
	}

	if !suggestion.Success {
		g.logger.Debug("Advisor declined to suggest a classroom",
			zap.String("professor_id", in.Professor.ID),
			zap.String("reason", suggestion.Reason))
		return "", nil
	}

	g.logger.Debug("Advisor suggested classroom",
		zap.String("professor_id", in.Professor.ID),
		zap.String("classroom_id", suggestion.ClassroomID),
		zap.String("reason", suggestion.Reason))
	return suggestion.ClassroomID, nil
}

// BuildPrompt описывает задачу и данные для модели
func BuildPrompt(in allocation.AdvisorInput) string {
	occupied := make(map[string]struct{}, len(in.Occupied))
	for _, id := range in.Occupied {
		occupied[id] = struct{}{}
	}

	var sb strings.Builder
	sb.WriteString("You are an exam proctoring allocation assistant.\n")
	sb.WriteString("Pick exactly one free classroom for the professor. Rules:\n")
	sb.WriteString("1. Never pick an occupied classroom.\n")
	sb.WriteString("2. Prefer classrooms of the professor's own department.\n")
	sb.WriteString("3. Only if none are free, pick a classroom of another department.\n\n")

	fmt.Fprintf(&sb, "Professor: %s, department %s, designation %s\n",
		in.Professor.Name, in.Professor.Department, in.Professor.Designation)
	fmt.Fprintf(&sb, "Exam: %s on %s (%s)\n\n", in.Slot.Subject, in.Slot.DateString(), in.Weekday)

	sb.WriteString("Classrooms:\n")
	for _, c := range in.Classrooms {
		status := "free"
		if _, ok := occupied[c.ID]; ok {
			status = "occupied"
		}
		fmt.Fprintf(&sb, "- id=%s name=%s department=%s floor=%d room=%s capacity=%d status=%s\n",
			c.ID, c.Name, c.Department, c.Floor, c.RoomNumber, c.Capacity, status)
	}

	sb.WriteString("\nAnswer with JSON only: ")
	sb.WriteString(`{"allocated_classroom_id": "<id or empty>", "success": true|false, "reason": "<short explanation>"}`)
	return sb.String()
}

// ParseSuggestion достаёт JSON из ответа модели (ответ может быть обёрнут в markdown)
func ParseSuggestion(text string) (*Suggestion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	raw := jsonObject.FindString(text)
	if raw == "" {
		return nil, fmt.Errorf("%w: no object in %q", ErrMalformedAnswer, text)
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAnswer, err)
	}

	s.ClassroomID = strings.TrimSpace(s.ClassroomID)
	if s.ClassroomID == "" {
		s.Success = false
	}
	return &s, nil
}
