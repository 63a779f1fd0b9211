package rss

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pareeksourabh/today-in-emojis-cloud/pkg/log"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/pipeline"
)

// userAgent представляется издателям: часть лент отдаёт 403 анонимным клиентам.
const userAgent = "Mozilla/5.0 (compatible; TodayInEmojis/1.0; +https://github.com)"

// summaryLimit — максимальная длина краткого описания в рунах.
const summaryLimit = 240

// Parser реализует pipeline.Parser для RSS 2.0.
// Возвращает доменные объекты models.Headline с нормализованным URL
// и очищенным от HTML кратким описанием.
//
// Параллелизм ограничен семафором maxConc. HTTP-клиент настраивается извне
// (таймауты, прокси и т.д.).
type Parser struct {
	client  *http.Client
	maxConc int
}

// New создаёт новый RSS-парсер.
func New(client *http.Client, maxConcurrent int) *Parser {
	if client == nil {
		client = &http.Client{Timeout: 25 * time.Second}
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	return &Parser{client: client, maxConc: maxConcurrent}
}

// ParseMany опрашивает несколько RSS-лент конкурентно и отдаёт результаты в канал.
// Канал закрывается после обработки всех URL.
func (p *Parser) ParseMany(ctx context.Context, urls []string) <-chan pipeline.ParseResult {
	output := make(chan pipeline.ParseResult)

	go func() {
		defer close(output)

		sem := make(chan struct{}, p.maxConc)

		for _, u := range urls {
			select {
			case <-ctx.Done():
				return
			default:
			}

			url := u
			sem <- struct{}{}

			go func() {
				defer func() {
					<-sem
				}()

				items, err := p.fetchOne(ctx, url)

				output <- pipeline.ParseResult{URL: url, Items: items, Err: err}
			}()
		}

		for i := 0; i < cap(sem); i++ {
			sem <- struct{}{}
		}
	}()

	return output
}

// fetchOne загружает и парсит RSS по URL.
func (p *Parser) fetchOne(ctx context.Context, src string) ([]models.Headline, error) {
	const op = "rss.fetchOne"

	lg := log.From(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		lg.Warn("http_error",
			slog.String("op", op),
			slog.String("url", src),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	dec := xml.NewDecoder(resp.Body)
	var doc rss
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	var output []models.Headline
	for _, item := range doc.Channel.Items {
		title := strings.TrimSpace(item.Title)
		link := canonicalLink(item.Link, item.GUID)

		if title == "" || link == "" {
			continue
		}

		output = append(output, models.Headline{
			Title:   title,
			URL:     link,
			Summary: cleanSummary(item.Description),
		})
	}

	return output, nil
}

var reTag = regexp.MustCompile(`<[^>]+>`)

var reSpace = regexp.MustCompile(`\s+`)

// cleanSummary готовит краткое описание: снимает HTML-сущности и теги,
// схлопывает пробелы и обрезает текст до summaryLimit рун.
func cleanSummary(text string) string {
	if text == "" {
		return ""
	}

	text = html.UnescapeString(text)
	text = reTag.ReplaceAllString(text, " ")
	text = strings.TrimSpace(reSpace.ReplaceAllString(text, " "))

	runes := []rune(text)
	if len(runes) > summaryLimit {
		text = strings.TrimRight(string(runes[:summaryLimit-3]), " ") + "..."
	}

	return text
}

// canonicalLink нормализует ссылку: убирает фрагмент и трекинг.
func canonicalLink(raw string, g guid) string {
	str := strings.TrimSpace(raw)

	if str == "" {
		if url := strings.TrimSpace(g.Value); strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
			str = url
		}
	}

	u, err := url.Parse(str)
	if err != nil {
		return str
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return str
	}

	u.Fragment = ""
	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || strings.HasSuffix(lk, "clid") || strings.HasPrefix(lk, "mc_") || lk == "igshid" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	return u.String()
}
