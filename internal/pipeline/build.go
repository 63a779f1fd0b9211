package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pareeksourabh/today-in-emojis-cloud/pkg/log"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/ai"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/service"
)

// pickTries — сколько всего попыток выбора позиций (с паузой между ними).
const pickTries = 2

// BuildRequest готовит запрос на производство выпуска заданного типа.
//
// Шаги:
//  1. конкурентный опрос лент, лимит на источник, перемешивание,
//     общий срез и дедупликация по URL;
//  2. выбор пяти позиций дня (с повтором и безопасным набором
//     по умолчанию);
//  3. для essence — эссенция по выбранным позициям (с безопасным
//     значением по умолчанию);
//  4. рендеринг изображения.
//
// Отказ источников и модели не фатален; ошибка рендера — фатальна.
// Запрос для essence несёт и позиции, и эссенцию: лишнее поле сервис
// отбрасывает при сборке выпуска.
func (p *Pipeline) BuildRequest(ctx context.Context, date string, postType models.PostType) (*service.ProduceInput, error) {
	const op = "pipeline/BuildRequest"

	lg := log.From(ctx).With("op", op, "date", date, "post_type", string(postType))

	headlines := p.collectHeadlines(ctx)

	picks := p.selectPicks(ctx, headlines)

	var essence *models.Essence
	if postType == models.PostTypeEssence {
		essence = p.distillEssence(ctx, picks)
	}

	renderIn := RenderInput{Date: date, PostType: postType}
	switch postType {
	case models.PostTypeNormal:
		chars := make([]string, 0, len(picks))
		for _, pick := range picks {
			chars = append(chars, pick.Char)
		}
		renderIn.EmojiChars = chars
	case models.PostTypeEssence:
		renderIn.EssenceEmoji = essence.Emoji
	}

	image, err := p.renderer.Render(ctx, renderIn)
	if err != nil {
		return nil, fmt.Errorf("%s: render: %w", op, err)
	}

	lg.Info("request built",
		slog.Int("headlines", len(headlines)),
		slog.Int("image_bytes", len(image)),
	)

	return &service.ProduceInput{
		Date:       date,
		PostType:   postType,
		Emojis:     picks,
		Essence:    essence,
		Image:      image,
		RSSSources: p.cfg.RSS.Sources,
		Model:      p.cfg.AI.Model,
		Provider:   "openai",
	}, nil
}

// collectHeadlines — один проход по всем лентам: лимит на источник
// в порядке ленты, затем перемешивание, общий срез MaxItems и
// дедупликация по URL. Ошибки отдельных лент не фатальны.
func (p *Pipeline) collectHeadlines(ctx context.Context) []models.Headline {
	const op = "pipeline/collectHeadlines"

	lg := log.From(ctx)

	output := p.parser.ParseMany(ctx, p.cfg.RSS.Sources)

	var feedsOK, feedsErr int
	var collected []models.Headline

	for result := range output {
		if result.Err != nil {
			feedsErr++
			lg.Warn("parse_error",
				slog.String("op", op),
				slog.String("url", result.URL),
				slog.String("err", result.Err.Error()),
			)
			continue
		}

		items := result.Items
		if limit := p.cfg.RSS.PerSourceLimit; limit > 0 && len(items) > limit {
			items = items[:limit]
		}

		collected = append(collected, items...)
		feedsOK++
	}

	p.shuffle(collected)

	if max := p.cfg.RSS.MaxItems; max > 0 && len(collected) > max {
		collected = collected[:max]
	}

	collected = uniqueByURL(collected)

	lg.Info("headlines_collected",
		slog.String("op", op),
		slog.Int("feeds_ok", feedsOK),
		slog.Int("feeds_err", feedsErr),
		slog.Int("count", len(collected)),
	)

	return collected
}

// selectPicks выбирает позиции дня с одним повтором; без заголовков
// или после второй неудачи — безопасный набор по умолчанию.
func (p *Pipeline) selectPicks(ctx context.Context, headlines []models.Headline) []models.EmojiItem {
	const op = "pipeline/selectPicks"

	lg := log.From(ctx)

	if len(headlines) == 0 {
		lg.Warn("no_headlines", slog.String("op", op))
		return ai.FallbackPicks()
	}

	for try := 1; try <= pickTries; try++ {
		picks, err := p.selector.PickEmojis(ctx, headlines)
		if err == nil {
			return picks
		}

		lg.Warn("pick_failed",
			slog.String("op", op),
			slog.Int("try", try),
			slog.String("err", err.Error()),
		)

		if try < pickTries {
			select {
			case <-ctx.Done():
				return ai.FallbackPicks()
			case <-time.After(p.retryWait):
			}
		}
	}

	lg.Warn("pick_fallback", slog.String("op", op))

	return ai.FallbackPicks()
}

// distillEssence выводит эссенцию по выбранным позициям; при ошибке
// модели — нейтральная эссенция с пометкой fallback.
func (p *Pipeline) distillEssence(ctx context.Context, picks []models.EmojiItem) *models.Essence {
	const op = "pipeline/distillEssence"

	essence, err := p.selector.DistillEssence(ctx, picks)
	if err != nil {
		log.From(ctx).Warn("essence_fallback",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return ai.FallbackEssence(p.cfg.AI)
	}

	return essence
}

// uniqueByURL устраняет дубликаты, сохраняя первый экземпляр.
func uniqueByURL(items []models.Headline) []models.Headline {
	seen := make(map[string]struct{}, len(items))
	output := items[:0]

	for _, it := range items {
		if _, ok := seen[it.URL]; ok {
			continue
		}

		seen[it.URL] = struct{}{}
		output = append(output, it)
	}

	return output
}
