// minio предоставляет реализацию storage.AssetsStorage на базе MinIO/S3.
// minio.go - конструктор клиента MinIO: нормализует endpoint, разрешает
// учётные данные и проверяет наличие целевого бакета.
// assets.go — загрузка изображений выпусков по детерминированным ключам.
// provision.go — разовая подготовка бакета (создание, публичное чтение,
// lifecycle-правило истечения объектов).
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/config"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/storage"
)

// AssetsStore — адаптер MinIO для изображений выпусков.
// Хранит ссылку на конфиг и minio-go клиент.
type AssetsStore struct {
	cfg    *config.Config
	client *mclient.Client
}

// New создает и инициализирует клиент MinIO.
// Делает endpoint-перенастройку (убирает схему), подбирает Secure по схеме
// и выполняет fail-fast-проверку доступности бакета. Бакет создаётся
// заранее командой init-storage, а не здесь.
func New(ctx context.Context, cfg *config.Config) (*AssetsStore, error) {
	const op = "storage/minio/New"

	client, err := newClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.S3.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.S3.Bucket)
	}

	return &AssetsStore{cfg: cfg, client: client}, nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.AssetsStorage = (*AssetsStore)(nil)

// newClient собирает minio-go клиент без обращений к сети.
func newClient(cfg *config.Config) (*mclient.Client, error) {
	endpoint := cfg.S3.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	return mclient.New(endpoint, &mclient.Options{
		Creds:  resolveCredentials(cfg.S3),
		Secure: secure,
		Region: cfg.S3.Region,
	})
}

// resolveCredentials выбирает источник учётных данных:
// явный файл -> статическая пара -> цепочка окружения
// (AWS_*-переменные, ~/.aws/credentials, IAM-роль).
func resolveCredentials(s3 config.S3Config) *credentials.Credentials {
	if s3.CredentialsFile != "" {
		return credentials.NewFileAWSCredentials(s3.CredentialsFile, "")
	}

	if s3.AccessKey != "" || s3.SecretKey != "" {
		return credentials.NewStaticV4(s3.AccessKey, s3.SecretKey, "")
	}

	return credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.FileAWSCredentials{},
		&credentials.IAM{},
	})
}

// Ping проверяет доступность бакета.
func (s *AssetsStore) Ping(ctx context.Context) error {
	const op = "storage/minio/Ping"

	exists, err := s.client.BucketExists(ctx, s.cfg.S3.Bucket)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return fmt.Errorf("%s: bucket %q does not exist", op, s.cfg.S3.Bucket)
	}

	return nil
}

// publicURL собирает публичный адрес объекта: приоритет у public_base_url,
// иначе адрес строится из endpoint клиента и имени бакета.
func (s *AssetsStore) publicURL(key string) string {
	if base := strings.TrimRight(s.cfg.S3.PublicBaseURL, "/"); base != "" {
		return base + "/" + key
	}

	endpoint := strings.TrimRight(s.client.EndpointURL().String(), "/")

	return endpoint + "/" + s.cfg.S3.Bucket + "/" + key
}
