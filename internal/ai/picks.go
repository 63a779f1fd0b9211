package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
)

// pickCount — сколько позиций составляют обычный выпуск.
const pickCount = 5

// Лимиты полей ответа модели.
const (
	maxEmojiRunes = 4
	maxLabelRunes = 48
)

const picksSystemPrompt = "You select the day's 5 most important and diverse news items from a provided list, " +
	"assign exactly one fitting emoji to each, and respond using the required JSON schema."

// picksRequest — полезная нагрузка user-сообщения.
type picksRequest struct {
	Task        string          `json:"task"`
	Headlines   []picksHeadline `json:"headlines"`
	AllowedURLs []string        `json:"allowed_urls"`
	Rules       []string        `json:"rules"`
}

type picksHeadline struct {
	Idx   int    `json:"idx"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// rawPick — одна позиция в ответе модели.
type rawPick struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// picksEnvelope — модель отвечает объектом с ключом selections,
// но встречается и «голый» массив.
type picksEnvelope struct {
	Selections []rawPick `json:"selections"`
}

// PickEmojis выбирает пять позиций дня из собранных заголовков.
//
// Модели передаются только заголовки и URL; краткие описания
// подтягиваются к результату локально. Ответ проверяется строго:
// любое отклонение от схемы — ошибка, решение об отступлении к
// безопасным значениям принимает вызывающая сторона.
func (c *Client) PickEmojis(ctx context.Context, headlines []models.Headline) ([]models.EmojiItem, error) {
	const op = "ai/PickEmojis"

	if len(headlines) == 0 {
		return nil, fmt.Errorf("%s: no headlines", op)
	}

	items := make([]picksHeadline, 0, len(headlines))
	allowed := make([]string, 0, len(headlines))
	for i, h := range headlines {
		items = append(items, picksHeadline{Idx: i + 1, Title: h.Title, URL: h.URL})
		allowed = append(allowed, h.URL)
	}

	payload, err := json.Marshal(picksRequest{
		Task: "Review the provided headlines, pick 5 unique items that cover different topics, " +
			"assign a single emoji to each, craft a short lowercase label (<=48 chars), " +
			"and copy the exact URL from the allowed list.",
		Headlines:   items,
		AllowedURLs: allowed,
		Rules: []string{
			"Return JSON only.",
			"Use the provided schema exactly.",
			"Do not include explanations or additional properties.",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", op, err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: 0.2,
		MaxTokens:   1000,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: picksSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: chat completion: %w", op, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: empty choices", op)
	}

	picks, err := validatePicks(resp.Choices[0].Message.Content, headlines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return picks, nil
}

// validatePicks разбирает и строго проверяет ответ модели: ровно
// pickCount позиций, у каждой валидные эмодзи и метка, URL из
// исходного списка, без повторов. Заголовок и краткое описание
// подтягиваются из исходных данных по URL.
func validatePicks(raw string, headlines []models.Headline) ([]models.EmojiItem, error) {
	cleaned := cleanJSONResponse(raw)

	var list []rawPick
	var env picksEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err == nil && env.Selections != nil {
		list = env.Selections
	} else if err := json.Unmarshal([]byte(cleaned), &list); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if len(list) != pickCount {
		return nil, fmt.Errorf("expected %d items, got %d", pickCount, len(list))
	}

	titleByURL := make(map[string]string, len(headlines))
	summaryByURL := make(map[string]string, len(headlines))
	for _, h := range headlines {
		titleByURL[h.URL] = h.Title
		summaryByURL[h.URL] = h.Summary
	}

	seen := make(map[string]struct{}, pickCount)
	result := make([]models.EmojiItem, 0, pickCount)
	for i, p := range list {
		if n := utf8.RuneCountInString(p.Emoji); n < 1 || n > maxEmojiRunes {
			return nil, fmt.Errorf("item %d: invalid emoji %q", i, p.Emoji)
		}

		label := strings.TrimSpace(p.Label)
		if runes := []rune(label); len(runes) > maxLabelRunes {
			label = strings.TrimRight(string(runes[:maxLabelRunes]), " ")
		}
		if label == "" {
			return nil, fmt.Errorf("item %d: empty label", i)
		}

		title, ok := titleByURL[p.URL]
		if !ok {
			return nil, fmt.Errorf("item %d: url not in allowed set", i)
		}

		if _, dup := seen[p.URL]; dup {
			return nil, fmt.Errorf("item %d: duplicate url", i)
		}
		seen[p.URL] = struct{}{}

		result = append(result, models.EmojiItem{
			Char:    p.Emoji,
			Label:   label,
			URL:     p.URL,
			Title:   title,
			Summary: summaryByURL[p.URL],
		})
	}

	return result, nil
}
