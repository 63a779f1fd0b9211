package pipeline

import (
	"context"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
)

// Parser описывает абстракцию источника заголовков (RSS и т.п.),
// который опрашивает несколько лент и возвращает доменные объекты.
//
// Требования к реализации:
//  1. URL заголовков должны быть нормализованы (без #fragment, UTM
//     и прочих трекеров) — по ним конвейер устраняет дубликаты;
//  2. порядок Items внутри результата — порядок ленты: лимит на
//     источник срезает хвост, а не случайные позиции;
//  3. реализация обязана уважать ctx (отмена/таймауты).
//
// ParseMany должен отправить по одному ParseResult на каждый URL и
// затем закрыть канал. Порядок результатов не гарантируется.
type Parser interface {
	ParseMany(ctx context.Context, urls []string) <-chan ParseResult
}

// ParseResult — результат опроса одной ленты.
// Если Err != nil, Items может быть неполным или пустым.
type ParseResult struct {
	URL   string
	Items []models.Headline
	Err   error
}

// Selector описывает выбор содержимого выпуска по собранным заголовкам.
//
//   - PickEmojis выбирает пять позиций дня из заголовков;
//   - DistillEssence выводит эмоцию дня из уже выбранных позиций.
//
// Ошибки реализации не фатальны для конвейера: у него есть безопасные
// значения по умолчанию.
type Selector interface {
	PickEmojis(ctx context.Context, headlines []models.Headline) ([]models.EmojiItem, error)
	DistillEssence(ctx context.Context, picks []models.EmojiItem) (*models.Essence, error)
}

// Renderer описывает рендеринг изображения выпуска.
type Renderer interface {
	// Render возвращает готовый PNG.
	Render(ctx context.Context, in RenderInput) ([]byte, error)
}

// RenderInput — параметры рендеринга.
//
// Для normal заполняется EmojiChars (пять символов в порядке выбора),
// для essence — EssenceEmoji.
type RenderInput struct {
	Date         string
	PostType     models.PostType
	EmojiChars   []string
	EssenceEmoji string
}
