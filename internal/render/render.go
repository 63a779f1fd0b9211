// Package render строит PNG-изображение выпуска через ImageMagick
// (convert + pango-разметка для цветных эмодзи).
//
// Макет normal: тёплый фон, белая карточка со скруглёнными углами и
// тонкой рамкой, дата в верхнем левом углу карточки, пять эмодзи по
// центру. Макет essence: один крупный эмодзи по центру, дата сверху.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/config"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/pipeline"
)

// Геометрия и палитра макета. База — квадрат 1080x1080; при другом
// размере холста все значения масштабируются пропорционально.
const (
	baseSize = 1080

	bgColor     = "#f5f3ee"
	cardColor   = "#ffffff"
	borderColor = "#dcd8d0"
	dateColor   = "#3c3c3c"

	paddingOuter    = 80
	cardRadius      = 60
	cardBorderWidth = 2

	dateFontSize  = 40
	emojiFontSize = 150
	emojiGap      = 35

	essenceBGColor       = "#f2f1ec"
	essenceDateColor     = "#464646"
	essenceEmojiFontSize = 420
	essenceDateFontSize  = 36
	essenceDateTopPad    = 70

	dateFont  = "DejaVu-Sans"
	emojiFont = "Noto-Color-Emoji"
)

// dateCaptionLayout — подпись даты на карточке ("24 Dec 2025").
const dateCaptionLayout = "2 Jan 2006"

// Magick — рендерер на базе внешнего бинаря ImageMagick.
// PNG читается со stdout процесса, временные файлы не используются.
type Magick struct {
	bin  string
	size int
}

// Проверка выполнения контракта конвейера.
var _ pipeline.Renderer = (*Magick)(nil)

// New создаёт рендерер. Наличие бинаря не проверяется: отсутствие
// ImageMagick проявится ошибкой первого Render.
func New(cfg config.RenderConfig) *Magick {
	return &Magick{bin: cfg.ConvertBin, size: cfg.Size}
}

// Render запускает convert и возвращает PNG со stdout.
// Ошибки процесса дополняются его stderr — там ImageMagick сообщает
// о недостающих шрифтах и ошибках разметки.
func (m *Magick) Render(ctx context.Context, in pipeline.RenderInput) ([]byte, error) {
	const op = "render/magick/Render"

	args, err := m.args(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := exec.CommandContext(ctx, m.bin, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", op, err, bytes.TrimSpace(exitErr.Stderr))
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%s: convert produced no output", op)
	}

	return out, nil
}

// args валидирует вход и собирает argv для convert.
func (m *Magick) args(in pipeline.RenderInput) ([]string, error) {
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		return nil, fmt.Errorf("bad date %q", in.Date)
	}

	switch in.PostType {
	case models.PostTypeNormal:
		if len(in.EmojiChars) == 0 {
			return nil, errors.New("normal render without emojis")
		}

		return m.normalArgs(in.EmojiChars, in.Date), nil
	case models.PostTypeEssence:
		if strings.TrimSpace(in.EssenceEmoji) == "" {
			return nil, errors.New("essence render without emoji")
		}

		return m.essenceArgs(in.EssenceEmoji, in.Date), nil
	default:
		return nil, fmt.Errorf("unknown post_type %q", in.PostType)
	}
}

// normalArgs — карточка с рамкой, датой и строкой эмодзи по центру.
func (m *Magick) normalArgs(chars []string, date string) []string {
	pad := m.scaled(paddingOuter)
	radius := m.scaled(cardRadius)
	emojiPt := m.scaled(emojiFontSize)

	return []string{
		"-size", fmt.Sprintf("%dx%d", m.size, m.size),
		"xc:" + bgColor,
		"-fill", cardColor,
		"-stroke", borderColor,
		"-strokewidth", strconv.Itoa(m.scaled(cardBorderWidth)),
		"-draw", fmt.Sprintf("roundrectangle %d,%d %d,%d %d,%d",
			pad, pad, m.size-pad, m.size-pad, radius, radius),
		"-font", dateFont,
		"-pointsize", strconv.Itoa(m.scaled(dateFontSize)),
		"-fill", dateColor,
		"-annotate", fmt.Sprintf("+%d+%d", m.dateLeft(len(chars)), pad+m.scaled(50)),
		formatDate(date),
		"-gravity", "center",
		"-font", emojiFont,
		"-pointsize", strconv.Itoa(emojiPt),
		pangoSpan(emojiPt, strings.Join(chars, " ")),
		"png:-",
	}
}

// essenceArgs — один крупный эмодзи по центру, дата по верхней кромке.
func (m *Magick) essenceArgs(char, date string) []string {
	emojiPt := m.scaled(essenceEmojiFontSize)

	return []string{
		"-size", fmt.Sprintf("%dx%d", m.size, m.size),
		"xc:" + essenceBGColor,
		"-gravity", "center",
		"-font", emojiFont,
		"-pointsize", strconv.Itoa(emojiPt),
		pangoSpan(emojiPt, char),
		"-font", dateFont,
		"-pointsize", strconv.Itoa(m.scaled(essenceDateFontSize)),
		"-fill", essenceDateColor,
		"-gravity", "north",
		"-annotate", fmt.Sprintf("+0+%d", m.scaled(essenceDateTopPad)),
		formatDate(date),
		"png:-",
	}
}

// dateLeft возвращает левый край строки эмодзи: подпись даты
// выравнивается по первой колонке, но не ближе paddingOuter к краю.
func (m *Magick) dateLeft(n int) int {
	pad := m.scaled(paddingOuter)
	if n <= 0 {
		return pad
	}

	row := n*m.scaled(emojiFontSize) + (n-1)*m.scaled(emojiGap)
	if left := (m.size - row) / 2; left > pad {
		return left
	}

	return pad
}

// scaled переводит базовую координату в координаты текущего холста.
func (m *Magick) scaled(v int) int {
	return v * m.size / baseSize
}

// pangoSpan оборачивает текст в pango-разметку с экранированием:
// convert принимает её как XML, и сырой амперсанд ломает рендер.
func pangoSpan(pt int, text string) string {
	escaped := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(text)

	return fmt.Sprintf(`pango:<span font="%d">%s</span>`, pt, escaped)
}

// formatDate переводит дату выпуска в подпись на карточке.
// Невалидная дата возвращается как есть (до args не доходит).
func formatDate(date string) string {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}

	return d.Format(dateCaptionLayout)
}
