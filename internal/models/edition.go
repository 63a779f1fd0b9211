// Package models содержит доменные модели выпуска (edition): сам выпуск,
// эмодзи-подборку, «эссенцию дня» и метаданные публикации.
//
// Модели не содержат тегов сериализации: формат хранения — ответственность
// слоя storage, формат входных данных — ответственность CLI.
package models

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout — формат поля Date выпуска (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// PostType — тип выпуска за день.
type PostType string

const (
	// PostTypeNormal — обычный выпуск с подборкой из пяти эмодзи.
	// За день может выйти несколько обычных выпусков, каждый получает
	// порядковый номер, начиная с 1.
	PostTypeNormal PostType = "normal"
	// PostTypeEssence — «эссенция дня»: один эмодзи с эмоциональной
	// оценкой. Не более одного выпуска такого типа за день.
	PostTypeEssence PostType = "essence"
)

// Valid сообщает, является ли значение одним из известных типов выпуска.
func (p PostType) Valid() bool {
	switch p {
	case PostTypeNormal, PostTypeEssence:
		return true
	default:
		return false
	}
}

// EmojiItem — один элемент эмодзи-подборки обычного выпуска.
//
//   - Char — сам эмодзи (1–4 руны);
//   - Label — короткая подпись в нижнем регистре (до 48 символов);
//   - URL — ссылка на новость, к которой привязан эмодзи;
//   - Title/Summary — заголовок и краткое описание новости
//     (пустые у резервной подборки).
type EmojiItem struct {
	Char    string
	Label   string
	URL     string
	Title   string
	Summary string
}

// Essence — эмоциональная оценка дня для выпуска типа essence.
//
//   - EmotionLabel — короткое название эмоции;
//   - Emoji — эмодзи из разрешённой палитры;
//   - Rationale — обоснование в 1–2 строки;
//   - Palette — палитра, из которой выбирался эмодзи;
//   - Temperature — температура генерации;
//   - Fallback — true, если модель не дала валидного ответа и
//     использовано нейтральное значение по умолчанию.
type Essence struct {
	EmotionLabel string
	Emoji        string
	Rationale    string
	Palette      []string
	Temperature  float64
	Fallback     bool
}

// Assets — сведения о загруженном изображении выпуска.
//
//   - ImageURL — публичный URL изображения;
//   - StoragePath — ключ объекта в бакете (YYYY/MM/DD/имя.png);
//   - ExpiresAt — расчётный момент истечения срока хранения объекта.
type Assets struct {
	ImageURL    string
	StoragePath string
	ExpiresAt   time.Time
}

// SourceMeta — происхождение выпуска.
//
//   - RSSSources — список RSS-лент, из которых собирались заголовки;
//   - Model/Provider — модель и провайдер, выбиравшие эмодзи;
//   - CreatedAt — момент формирования выпуска (совпадает с Timestamp выпуска).
type SourceMeta struct {
	RSSSources []string
	Model      string
	Provider   string
	CreatedAt  time.Time
}

// Edition — доменная модель выпуска.
//
// Инварианты:
//   - ID детерминированно выводится из Date, PostType и порядкового номера
//     (см. EditionID);
//   - ровно одно из полей Emojis/Essence заполнено, и выбор определяется
//     PostType: normal несёт Emojis, essence несёт Essence;
//   - Timestamp и Source.CreatedAt фиксируются одним показанием часов.
type Edition struct {
	ID        string
	Date      string
	Timestamp time.Time
	PostType  PostType
	Emojis    []EmojiItem
	Essence   *Essence
	Assets    Assets
	Source    SourceMeta
}

// Validate проверяет инварианты собранного выпуска перед записью.
//
// Правила:
//   - ID непустой, Date — в формате YYYY-MM-DD;
//   - PostType известен, Timestamp ненулевой;
//   - выпуск несёт ровно одно содержимое: normal — только Emojis,
//     essence — только Essence.
func (e Edition) Validate() error {
	if e.ID == "" {
		return errors.New("empty id")
	}

	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return fmt.Errorf("bad date %q", e.Date)
	}

	if !e.PostType.Valid() {
		return fmt.Errorf("unknown post_type %q", e.PostType)
	}

	if e.Timestamp.IsZero() {
		return errors.New("zero timestamp")
	}

	switch e.PostType {
	case PostTypeNormal:
		if len(e.Emojis) == 0 {
			return errors.New("normal edition without emojis")
		}
		if e.Essence != nil {
			return errors.New("normal edition with essence")
		}
	case PostTypeEssence:
		if e.Essence == nil {
			return errors.New("essence edition without essence")
		}
		if len(e.Emojis) != 0 {
			return errors.New("essence edition with emojis")
		}
	}

	return nil
}

// EditionID детерминированно строит идентификатор выпуска.
//
// Для normal идентификатор включает порядковый номер за день
// ("2025-12-24-normal-2"), для essence номер не участвует
// ("2025-12-24-essence"): повторная публикация essence за тот же день
// даёт тот же идентификатор и отклоняется хранилищем.
func EditionID(date string, postType PostType, seq int64) string {
	if postType == PostTypeEssence {
		return fmt.Sprintf("%s-%s", date, PostTypeEssence)
	}

	return fmt.Sprintf("%s-%s-%d", date, PostTypeNormal, seq)
}
