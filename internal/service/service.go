// service содержит бизнес-логику производства и чтения выпусков.
package service

import (
	"errors"
	"time"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/config"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage"
)

var (
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — выпуск отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — выпуск с таким идентификатором уже опубликован.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInternal — внутренняя ошибка (сторадж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// Service — описывает бизнес-логику производства выпусков:
// идентичность и нумерация, загрузка изображения, запись документа.
type Service struct {
	editions storage.EditionsStorage
	assets   storage.AssetsStorage
	cfg      config.Config
	// now — источник времени; подменяется в тестах.
	now func() time.Time
}

// New создает новый экземпляр Service.
func New(editions storage.EditionsStorage, assets storage.AssetsStorage, cfg config.Config) *Service {
	return &Service{
		editions: editions,
		assets:   assets,
		cfg:      cfg,
		now:      time.Now,
	}
}
