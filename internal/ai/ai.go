// ai выбирает содержимое выпуска через OpenAI Chat Completions:
// пять эмодзи-позиций дня по заголовкам и эмоциональную эссенцию по
// выбранным позициям. Ответы модели строго проверяются локально;
// на случай отказа пакет отдаёт безопасные значения по умолчанию.
package ai

import (
	"errors"

	"github.com/sashabaranov/go-openai"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/config"
)

// Client реализует pipeline.Selector поверх OpenAI-совместимого API.
type Client struct {
	client *openai.Client
	cfg    config.AIConfig
}

// New создаёт новый LLM-клиент.
// base_url из конфигурации направляет запросы на совместимый API
// (прокси или локальная заглушка в тестах).
func New(cfg config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	occ := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		occ.BaseURL = cfg.BaseURL
	}

	return &Client{client: openai.NewClientWithConfig(occ), cfg: cfg}, nil
}
