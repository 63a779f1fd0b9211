package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage"
)

// recentCutoff возвращает дату начала окна «последние days календарных дней»
// включительно: для days=1 это сегодняшняя дата.
func recentCutoff(now time.Time, days int) string {
	return now.UTC().AddDate(0, 0, -(days - 1)).Format(models.DateLayout)
}

// SaveEdition сохраняет новый выпуск.
// Ключ документа — идентификатор выпуска, поэтому повторное сохранение
// того же идентификатора отклоняется конфликтом по _id.
func (m *Mongo) SaveEdition(ctx context.Context, edition models.Edition) error {
	const op = "storage/mongo/SaveEdition"

	if _, err := m.editions.InsertOne(ctx, docFromEdition(edition)); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: insert: %w", op, err)
	}

	return nil
}

// EditionByID возвращает выпуск по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
func (m *Mongo) EditionByID(ctx context.Context, id string) (*models.Edition, error) {
	const op = "storage/mongo/EditionByID"

	var rec editionRecord
	if err := m.editions.FindOne(ctx, bson.D{{Key: "_id", Value: strings.TrimSpace(id)}}).Decode(&rec); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return modelFromRecord(rec), nil
}

// EditionsByDate возвращает все выпуски за дату.
// Сортировка: timestamp ASC, _id ASC — порядок появления в течение дня.
func (m *Mongo) EditionsByDate(ctx context.Context, date string) ([]models.Edition, error) {
	const op = "storage/mongo/EditionsByDate"

	filter := bson.D{{Key: "date", Value: date}}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := m.editions.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	return decodeEditions(ctx, cur, op)
}

// RecentEditions возвращает выпуски за последние days календарных дней.
// Сортировка: date DESC, timestamp DESC — свежие выпуски раньше.
func (m *Mongo) RecentEditions(ctx context.Context, days int) ([]models.Edition, error) {
	const op = "storage/mongo/RecentEditions"

	cutoff := recentCutoff(time.Now(), days)

	filter := bson.D{{Key: "date", Value: bson.D{{Key: "$gte", Value: cutoff}}}}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "timestamp", Value: -1}})

	cur, err := m.editions.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	return decodeEditions(ctx, cur, op)
}

// NextSequence атомарно выделяет следующий порядковый номер обычного
// выпуска за дату: $inc с upsert на документе-счётчике даты. Конкурентные
// вызовы за одну дату получают различные номера.
func (m *Mongo) NextSequence(ctx context.Context, date string) (int64, error) {
	const op = "storage/mongo/NextSequence"

	res := m.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: date}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var out struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&out); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return out.Seq, nil
}

// decodeEditions вычитывает курсор в список доменных моделей.
func decodeEditions(ctx context.Context, cur *mongodriver.Cursor, op string) ([]models.Edition, error) {
	var items []models.Edition
	for cur.Next(ctx) {
		var rec editionRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		items = append(items, *modelFromRecord(rec))
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}
