package ai

import "strings"

// cleanJSONResponse нормализует JSON-ответ модели: снимает
// markdown-ограждения, а у ответов с прозой отбрасывает текст до
// первого '[' или '{'.
func cleanJSONResponse(content string) string {
	text := strings.TrimSpace(content)

	if strings.HasPrefix(text, "```") {
		for _, part := range strings.Split(text, "```") {
			candidate := strings.TrimSpace(part)
			if candidate == "" {
				continue
			}

			if strings.HasPrefix(strings.ToLower(candidate), "json") {
				candidate = strings.TrimSpace(candidate[4:])
			}

			if candidate != "" {
				return candidate
			}
		}

		return ""
	}

	if text != "" && text[0] != '[' && text[0] != '{' {
		for _, marker := range []string{"[", "{"} {
			if idx := strings.Index(text, marker); idx != -1 {
				return strings.TrimSpace(text[idx:])
			}
		}
	}

	return text
}
