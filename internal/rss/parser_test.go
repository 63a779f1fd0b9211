package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/pipeline"
	"github.com/stretchr/testify/require"
)

// mkRSS — собирает минимальный RSS 2.0 документ.
func mkRSS(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    ` + strings.Join(items, "\n") + `
  </channel>
</rss>`
}

// mkItem — утилита шаблона <item>.
func mkItem(fields map[string]string) string {
	var b strings.Builder
	b.WriteString("<item>\n")

	for tag, val := range fields {
		switch tag {
		case "title", "link":
			b.WriteString(fmt.Sprintf("<%s>%s</%s>\n", tag, val, tag))
		case "description":
			b.WriteString(fmt.Sprintf("<description><![CDATA[%s]]></description>\n", val))
		case "guid":
			isPerm := ""
			value := val
			if left, right, ok := strings.Cut(val, "|"); ok {
				isPerm, value = left, right
			}

			if isPerm == "" {
				b.WriteString(fmt.Sprintf("<guid>%s</guid>\n", value))
			} else {
				b.WriteString(fmt.Sprintf("<guid isPermaLink=\"%s\">%s</guid>\n", isPerm, value))
			}
		}
	}

	b.WriteString("</item>")
	return b.String()
}

// Test_cleanSummary — снятие HTML, схлопывание пробелов, лимит длины.
func Test_cleanSummary(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", cleanSummary(""))
	require.Equal(t, "plain text", cleanSummary("plain text"))
	require.Equal(t, "bold & clean", cleanSummary("<p><b>bold</b> &amp; clean</p>"))
	require.Equal(t, "a b c", cleanSummary("  a \n\n b \t c  "))

	// Длинный текст обрезается до 240 рун с многоточием.
	long := strings.Repeat("слово ", 60)
	got := cleanSummary(long)
	require.LessOrEqual(t, len([]rune(got)), 240)
	require.True(t, strings.HasSuffix(got, "..."), "got=%q", got)

	// Ровно на границе — без обрезки.
	exact := strings.Repeat("x", 240)
	require.Equal(t, exact, cleanSummary(exact))
}

// Test_canonicalLink — нормализация ссылок и fallback на GUID.
func Test_canonicalLink(t *testing.T) {
	t.Parallel()

	// Нормализация.
	u := canonicalLink("https://example.org/a?utm_source=x&utm_medium=y#frag", guid{})
	require.Equal(t, "https://example.org/a", u)

	// Значимые параметры сохраняются (важно для Google News ссылок).
	u1 := canonicalLink("https://news.example.org/rss/search?q=when:24h&hl=en-US&fbclid=zzz", guid{})
	require.Equal(t, "https://news.example.org/rss/search?hl=en-US&q=when%3A24h", u1)

	// Fallback на GUID-URL при пустом link.
	u2 := canonicalLink("", guid{IsPermaLink: "false", Value: "https://example.org/gid?a=1#z"})
	require.Equal(t, "https://example.org/gid?a=1", u2)

	// Если строка не парсится как URL — возвращаем как есть.
	raw := "not a url value"
	require.Equal(t, raw, canonicalLink(raw, guid{}))
}

// Test_ParseMany_HappyPath_And_Errors — один URL успешный, второй — 500.
func Test_ParseMany_HappyPath_And_Errors(t *testing.T) {
	t.Parallel()

	// feed OK: два item + один без заголовка (выбрасывается).
	okFeed := mkRSS(
		mkItem(map[string]string{
			"title":       "  Hello  ",
			"link":        "https://example.org/a?utm_source=rss#frag",
			"description": "<p> teaser &amp; more </p>",
		}),
		mkItem(map[string]string{
			"title":       "No Link but GUID",
			"link":        "",
			"guid":        "false|https://example.org/guid",
			"description": "d",
		}),
		mkItem(map[string]string{
			"title": "",
			"link":  "https://example.org/skipped",
		}),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(okFeed))
	})
	mux.HandleFunc("/fail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := srv.Client()
	p := New(client, 4)

	ctx := context.Background()
	results := p.ParseMany(ctx, []string{srv.URL + "/ok", srv.URL + "/fail"})

	got := map[string]pipeline.ParseResult{}
	for r := range results {
		got[r.URL] = r
	}

	require.Len(t, got, 2)
	// Ошибочный URL.
	require.Error(t, got[srv.URL+"/fail"].Err)

	// Успешный URL.
	ok := got[srv.URL+"/ok"]
	require.NoError(t, ok.Err)
	require.Len(t, ok.Items, 2)

	// Сортировка по URL.
	sort.Slice(ok.Items, func(i, j int) bool { return ok.Items[i].URL < ok.Items[j].URL })

	it1 := ok.Items[0]
	require.Equal(t, "Hello", it1.Title)
	require.Equal(t, "https://example.org/a", it1.URL)
	require.Equal(t, "teaser & more", it1.Summary)

	it2 := ok.Items[1]
	require.Equal(t, "No Link but GUID", it2.Title)
	require.Equal(t, "https://example.org/guid", it2.URL)
	require.Equal(t, "d", it2.Summary)
}

// Test_ParseMany_UserAgent — парсер представляется фиксированным User-Agent.
func Test_ParseMany_UserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(mkRSS()))
	}))
	defer srv.Close()

	p := New(srv.Client(), 1)
	for range p.ParseMany(context.Background(), []string{srv.URL}) {
	}

	require.Equal(t, userAgent, gotUA)
}

// Test_ParseMany_ContextCancel — «подвисающий» хендлер + короткий таймаут контекста.
func Test_ParseMany_ContextCancel(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(mkRSS()))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := srv.Client()
	p := New(client, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	urls := []string{srv.URL + "/slow"}
	got := make([]pipeline.ParseResult, 0, len(urls))
	for r := range p.ParseMany(ctx, urls) {
		got = append(got, r)
	}

	require.Len(t, got, 1)
	require.Error(t, got[0].Err)
}
