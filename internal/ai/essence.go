package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
)

const essenceSystemPrompt = "You interpret the overall emotional essence of the day from the provided news items. " +
	"Choose one emoji from the allowed palette, a short emotion label, and a 1-2 line rationale. " +
	"Be opinionated but stay within the palette."

// essenceRequest — полезная нагрузка user-сообщения.
type essenceRequest struct {
	Task    string        `json:"task"`
	Items   []essenceItem `json:"items"`
	Palette []string      `json:"palette"`
	Rules   []string      `json:"rules"`
}

type essenceItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// rawEssence — ожидаемая форма ответа модели.
type rawEssence struct {
	EmotionLabel string `json:"emotion_label"`
	Emoji        string `json:"emoji"`
	Rationale    string `json:"rationale"`
}

// DistillEssence выводит эмоцию дня из выбранных позиций выпуска.
//
// Позиции передаются моделью заголовком и описанием (пустое описание
// заменяется заголовком). Эмодзи ответа обязан принадлежать палитре
// из конфигурации; палитра и температура фиксируются в результате.
func (c *Client) DistillEssence(ctx context.Context, picks []models.EmojiItem) (*models.Essence, error) {
	const op = "ai/DistillEssence"

	items := make([]essenceItem, 0, len(picks))
	for _, p := range picks {
		title := strings.TrimSpace(p.Title)
		summary := strings.TrimSpace(p.Summary)
		if summary == "" {
			summary = title
		}

		items = append(items, essenceItem{Title: title, Summary: summary})
	}

	payload, err := json.Marshal(essenceRequest{
		Task: "Select a single emotion emoji representing the overall vibe of the day. " +
			"Return JSON only, using the required schema.",
		Items:   items,
		Palette: c.cfg.EssencePalette,
		Rules: []string{
			"Emoji must be one of the provided palette options.",
			"Rationale must be 1-2 lines.",
			"Return JSON only.",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", op, err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: float32(c.cfg.EssenceTemperature),
		MaxTokens:   200,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: essenceSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: chat completion: %w", op, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: empty choices", op)
	}

	essence, err := c.validateEssence(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return essence, nil
}

// validateEssence строго проверяет ответ модели и дополняет его
// параметрами выбора (палитра, температура).
func (c *Client) validateEssence(raw string) (*models.Essence, error) {
	cleaned := cleanJSONResponse(raw)

	var re rawEssence
	if err := json.Unmarshal([]byte(cleaned), &re); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	label := strings.TrimSpace(re.EmotionLabel)
	if label == "" {
		return nil, errors.New("essence label missing")
	}

	inPalette := false
	for _, p := range c.cfg.EssencePalette {
		if p == re.Emoji {
			inPalette = true
			break
		}
	}
	if !inPalette {
		return nil, fmt.Errorf("essence emoji %q not in palette", re.Emoji)
	}

	rationale := strings.TrimSpace(re.Rationale)
	if rationale == "" {
		return nil, errors.New("essence rationale missing")
	}

	return &models.Essence{
		EmotionLabel: label,
		Emoji:        re.Emoji,
		Rationale:    rationale,
		Palette:      c.cfg.EssencePalette,
		Temperature:  c.cfg.EssenceTemperature,
		Fallback:     false,
	}, nil
}
