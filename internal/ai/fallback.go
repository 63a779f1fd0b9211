package ai

import (
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/config"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
)

// FallbackPicks возвращает нейтральный набор позиций на случай, когда
// заголовков нет или модель так и не дала валидного ответа.
// Ссылки, заголовки и описания пусты: набор не привязан к новостям.
func FallbackPicks() []models.EmojiItem {
	return []models.EmojiItem{
		{Char: "🌍", Label: "world"},
		{Char: "💡", Label: "insight"},
		{Char: "🤝", Label: "together"},
		{Char: "🌱", Label: "growth"},
		{Char: "😐", Label: "neutral"},
	}
}

// FallbackEssence возвращает нейтральную эссенцию с пометкой fallback.
func FallbackEssence(cfg config.AIConfig) *models.Essence {
	return &models.Essence{
		EmotionLabel: "neutral",
		Emoji:        cfg.EssenceFallbackEmoji,
		Rationale:    "Mixed signals across the day; using a neutral default.",
		Palette:      cfg.EssencePalette,
		Temperature:  cfg.EssenceTemperature,
		Fallback:     true,
	}
}
