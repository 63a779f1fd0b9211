package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
)

// editionRecord — форма документа выпуска при чтении из коллекции.
// Запись идёт через docFromEdition, поэтому omitempty здесь нужен только
// для симметрии с отсутствующими в документе полями.
type editionRecord struct {
	ID        string           `bson:"_id"`
	Date      string           `bson:"date"`
	Timestamp time.Time        `bson:"timestamp"`
	PostType  string           `bson:"post_type"`
	Emojis    []emojiRecord    `bson:"emojis,omitempty"`
	Essence   *essenceRecord   `bson:"essence,omitempty"`
	Assets    assetsRecord     `bson:"assets"`
	Source    sourceMetaRecord `bson:"source_meta"`
}

type emojiRecord struct {
	Char    string `bson:"char"`
	Label   string `bson:"label"`
	URL     string `bson:"url"`
	Title   string `bson:"title"`
	Summary string `bson:"summary"`
}

type essenceRecord struct {
	EmotionLabel string   `bson:"emotion_label"`
	Emoji        string   `bson:"emoji"`
	Rationale    string   `bson:"rationale"`
	Palette      []string `bson:"palette,omitempty"`
	Temperature  float64  `bson:"temperature"`
	Fallback     bool     `bson:"fallback"`
}

type assetsRecord struct {
	ImageURL    string    `bson:"image_url"`
	StoragePath string    `bson:"storage_path"`
	ExpiresAt   time.Time `bson:"expires_at"`
}

type sourceMetaRecord struct {
	RSSSources []string  `bson:"rss_sources,omitempty"`
	Model      string    `bson:"model"`
	Provider   string    `bson:"provider"`
	CreatedAt  time.Time `bson:"created_at"`
}

// MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

// docFromEdition собирает документ выпуска для записи.
// Отсутствующие значения кладутся как nil и вычищаются stripAbsent:
// в коллекцию попадают только заполненные поля, поэтому у normal-выпуска
// нет ключа essence, а у essence-выпуска — ключа emojis.
func docFromEdition(e models.Edition) bson.M {
	doc := bson.M{
		"_id":       e.ID,
		"date":      e.Date,
		"timestamp": toMS(e.Timestamp),
		"post_type": string(e.PostType),
		"emojis":    emojisValue(e.Emojis),
		"essence":   essenceValue(e.Essence),
		"assets": bson.M{
			"image_url":    e.Assets.ImageURL,
			"storage_path": e.Assets.StoragePath,
			"expires_at":   toMS(e.Assets.ExpiresAt),
		},
		"source_meta": bson.M{
			"rss_sources": stringsValue(e.Source.RSSSources),
			"model":       e.Source.Model,
			"provider":    e.Source.Provider,
			"created_at":  toMS(e.Source.CreatedAt),
		},
	}

	return stripAbsent(doc).(bson.M)
}

func emojisValue(items []models.EmojiItem) any {
	if len(items) == 0 {
		return nil
	}

	out := make(bson.A, 0, len(items))
	for _, item := range items {
		out = append(out, bson.M{
			"char":    item.Char,
			"label":   item.Label,
			"url":     item.URL,
			"title":   item.Title,
			"summary": item.Summary,
		})
	}

	return out
}

func essenceValue(e *models.Essence) any {
	if e == nil {
		return nil
	}

	return bson.M{
		"emotion_label": e.EmotionLabel,
		"emoji":         e.Emoji,
		"rationale":     e.Rationale,
		"palette":       stringsValue(e.Palette),
		"temperature":   e.Temperature,
		"fallback":      e.Fallback,
	}
}

func stringsValue(items []string) any {
	if len(items) == 0 {
		return nil
	}

	out := make(bson.A, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}

	return out
}

// stripAbsent рекурсивно убирает отсутствующие значения из документа:
// nil-значения ключей удаляются из bson.M, nil-элементы — из bson.A,
// вложенные документы и массивы обходятся на любую глубину.
// Повторное применение к уже очищенному документу ничего не меняет.
func stripAbsent(v any) any {
	switch val := v.(type) {
	case bson.M:
		out := bson.M{}
		for key, item := range val {
			if item == nil {
				continue
			}

			out[key] = stripAbsent(item)
		}

		return out
	case bson.A:
		out := bson.A{}
		for _, item := range val {
			if item == nil {
				continue
			}

			out = append(out, stripAbsent(item))
		}

		return out
	default:
		return v
	}
}

// modelFromRecord переводит документ в доменную модель.
// Все временные поля нормализуются к UTC.
func modelFromRecord(rec editionRecord) *models.Edition {
	out := models.Edition{
		ID:        rec.ID,
		Date:      rec.Date,
		Timestamp: rec.Timestamp.UTC(),
		PostType:  models.PostType(rec.PostType),
		Assets: models.Assets{
			ImageURL:    rec.Assets.ImageURL,
			StoragePath: rec.Assets.StoragePath,
			ExpiresAt:   rec.Assets.ExpiresAt.UTC(),
		},
		Source: models.SourceMeta{
			RSSSources: rec.Source.RSSSources,
			Model:      rec.Source.Model,
			Provider:   rec.Source.Provider,
			CreatedAt:  rec.Source.CreatedAt.UTC(),
		},
	}

	if len(rec.Emojis) > 0 {
		out.Emojis = make([]models.EmojiItem, 0, len(rec.Emojis))
		for _, item := range rec.Emojis {
			out.Emojis = append(out.Emojis, models.EmojiItem{
				Char:    item.Char,
				Label:   item.Label,
				URL:     item.URL,
				Title:   item.Title,
				Summary: item.Summary,
			})
		}
	}

	if rec.Essence != nil {
		out.Essence = &models.Essence{
			EmotionLabel: rec.Essence.EmotionLabel,
			Emoji:        rec.Essence.Emoji,
			Rationale:    rec.Essence.Rationale,
			Palette:      rec.Essence.Palette,
			Temperature:  rec.Essence.Temperature,
			Fallback:     rec.Essence.Fallback,
		}
	}

	return &out
}
