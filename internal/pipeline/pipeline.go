// pipeline собирает запрос на производство выпуска: опрос RSS-лент,
// выбор содержимого через LLM (с безопасными значениями по умолчанию)
// и рендеринг изображения.
package pipeline

import (
	"math/rand"
	"time"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/config"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
)

// Pipeline — оркестратор подготовки выпуска.
type Pipeline struct {
	cfg      config.Config
	parser   Parser
	selector Selector
	renderer Renderer
	// shuffle — перемешивание заголовков против позиционного смещения
	// источников; подменяется в тестах.
	shuffle func([]models.Headline)
	// retryWait — пауза перед повтором выбора позиций; сокращается в тестах.
	retryWait time.Duration
}

// New создаёт новый конвейер подготовки выпуска.
func New(cfg config.Config, parser Parser, selector Selector, renderer Renderer) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		parser:   parser,
		selector: selector,
		renderer: renderer,
		shuffle: func(hs []models.Headline) {
			rand.Shuffle(len(hs), func(i, j int) { hs[i], hs[j] = hs[j], hs[i] })
		},
		retryWait: 2 * time.Second,
	}
}
