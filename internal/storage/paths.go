package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
)

// Filename возвращает имя файла изображения внутри дневного префикса:
// "normal-{seq}.png" для обычного выпуска, "essence.png" для эссенции.
func Filename(postType models.PostType, seq int64) string {
	if postType == models.PostTypeEssence {
		return "essence.png"
	}

	return fmt.Sprintf("normal-%d.png", seq)
}

// ObjectKey строит ключ объекта из даты выпуска: дата YYYY-MM-DD
// разворачивается в префикс YYYY/MM/DD, к нему добавляется имя файла.
// Пример: ("2025-12-24", normal, 1) -> "2025/12/24/normal-1.png".
func ObjectKey(date string, postType models.PostType, seq int64) string {
	return strings.ReplaceAll(date, "-", "/") + "/" + Filename(postType, seq)
}

// ExpiresAt возвращает момент истечения срока хранения объекта:
// ровно retentionDays суток от createdAt, с точностью до секунды.
func ExpiresAt(createdAt time.Time, retentionDays int) time.Time {
	return createdAt.UTC().Add(time.Duration(retentionDays) * 24 * time.Hour).Truncate(time.Second)
}
