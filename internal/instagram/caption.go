package instagram

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
)

const (
	siteLine    = "todayinemojis.com"
	normalTags  = "#TodayInEmojis #DailyVibes #NewsInEmojis #Minimalism #FiveEmojis #WorldNews #DailyMood"
	essenceTags = "#TodayInEmojis #EssenceOfTheDay #DailyMood"
)

// Caption строит подпись публикации по выпуску: для normal — строка
// эмодзи и расшифровка позиций, для essence — фраза об эмоции дня.
func Caption(e models.Edition) string {
	if e.PostType == models.PostTypeEssence {
		return essenceCaption(e.Essence)
	}

	return normalCaption(e.Emojis)
}

func normalCaption(picks []models.EmojiItem) string {
	chars := make([]string, 0, len(picks))
	for _, p := range picks {
		chars = append(chars, p.Char)
	}

	lines := []string{
		"Today's vibe " + strings.Join(chars, " "),
		"",
		"Feel the day. Don't read it.",
		"",
	}

	for _, p := range picks {
		label := strings.TrimSpace(p.Label)
		if label == "" {
			continue
		}

		prefix := p.Char
		if prefix == "" {
			prefix = "•"
		}

		lines = append(lines, prefix+" "+capitalize(label))
	}

	lines = append(lines, "", normalTags, "", siteLine)

	return strings.Join(lines, "\n")
}

func essenceCaption(es *models.Essence) string {
	label, emoji, rationale := "neutral", "🌍", "a mix of signals"
	if es != nil {
		if v := strings.TrimSpace(es.EmotionLabel); v != "" {
			label = v
		}
		if v := strings.TrimSpace(es.Emoji); v != "" {
			emoji = v
		}
		if v := strings.TrimSpace(es.Rationale); v != "" {
			rationale = v
		}
	}

	// Точку ставит шаблон фразы, а не обоснование модели.
	rationale = strings.TrimSuffix(rationale, ".")

	lines := []string{
		fmt.Sprintf("Today I am %s because %s.", label, rationale),
		"",
		emoji,
		"",
		essenceTags,
		"",
		siteLine,
	}

	return strings.Join(lines, "\n")
}

// capitalize поднимает в верхний регистр первую руну подписи.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
