// Package instagram публикует изображение выпуска через Instagram Graph API.
//
// Протокол трёхшаговый: создание медиа-контейнера по публичному URL
// изображения, ожидание его обработки и публикация. Graph API скачивает
// изображение сам, поэтому URL обязан быть доступен извне.
package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pareeksourabh/today-in-emojis-cloud/pkg/log"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/config"
)

// Статусы обработки медиа-контейнера.
const (
	statusFinished   = "FINISHED"
	statusError      = "ERROR"
	statusExpired    = "EXPIRED"
	statusInProgress = "IN_PROGRESS"
)

// maxResponseBytes — потолок на тело ответа Graph API.
const maxResponseBytes = 1 << 20

// Client — клиент публикации в Instagram.
type Client struct {
	client *http.Client
	cfg    config.InstagramConfig
}

// New создаёт клиент публикации. Сетевых обращений не делает;
// клиент HTTP приходит снаружи и подменяется в тестах.
func New(client *http.Client, cfg config.InstagramConfig) *Client {
	return &Client{client: client, cfg: cfg}
}

// Publish проводит полный цикл публикации изображения с подписью
// и возвращает идентификатор опубликованного медиа.
func (c *Client) Publish(ctx context.Context, imageURL, caption string) (string, error) {
	const op = "instagram/Publish"

	lg := log.From(ctx).With("op", op)

	container, err := c.createContainer(ctx, imageURL, caption)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	lg.Info("media container created", "container_id", container)

	if err := c.waitContainer(ctx, container); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	media, err := c.publishContainer(ctx, container)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	lg.Info("published", "media_id", media)

	return media, nil
}

// VerifyImage проверяет публичную доступность изображения до создания
// контейнера: с недоступным URL Graph API молча уводит контейнер в ERROR.
func (c *Client) VerifyImage(ctx context.Context, imageURL string) error {
	const op = "instagram/VerifyImage"

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: image not accessible: status %d", op, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("%s: unexpected content-type %q", op, ct)
	}

	return nil
}

// createContainer создаёт медиа-контейнер и возвращает его идентификатор.
func (c *Client) createContainer(ctx context.Context, imageURL, caption string) (string, error) {
	const op = "instagram/createContainer"

	q := url.Values{}
	q.Set("image_url", imageURL)
	q.Set("caption", caption)
	q.Set("access_token", c.cfg.AccessToken)

	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, c.cfg.AccountID+"/media", q, &out); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if out.ID == "" {
		return "", fmt.Errorf("%s: response without container id", op)
	}

	return out.ID, nil
}

// waitContainer опрашивает статус контейнера до готовности.
// ERROR и EXPIRED фатальны; IN_PROGRESS, неизвестные статусы и сбои
// самого опроса ждут следующей попытки.
func (c *Client) waitContainer(ctx context.Context, containerID string) error {
	const op = "instagram/waitContainer"

	lg := log.From(ctx).With("op", op, "container_id", containerID)

	q := url.Values{}
	q.Set("fields", "status_code,status")
	q.Set("access_token", c.cfg.AccessToken)

	for attempt := 1; attempt <= c.cfg.PollAttempts; attempt++ {
		var out struct {
			StatusCode string `json:"status_code"`
			Status     string `json:"status"`
		}

		err := c.do(ctx, http.MethodGet, containerID, q, &out)
		switch {
		case err != nil:
			lg.Warn("status check failed", "attempt", attempt, "err", err)
		case out.StatusCode == statusFinished:
			return nil
		case out.StatusCode == statusError:
			return fmt.Errorf("%s: container processing failed: %s", op, out.Status)
		case out.StatusCode == statusExpired:
			return fmt.Errorf("%s: container expired", op)
		default:
			lg.Info("container not ready", "attempt", attempt, "status_code", out.StatusCode)
		}

		if attempt == c.cfg.PollAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(c.cfg.PollInterval):
		}
	}

	return fmt.Errorf("%s: container not ready after %d attempts", op, c.cfg.PollAttempts)
}

// publishContainer публикует готовый контейнер и возвращает
// идентификатор медиа.
func (c *Client) publishContainer(ctx context.Context, containerID string) (string, error) {
	const op = "instagram/publishContainer"

	q := url.Values{}
	q.Set("creation_id", containerID)
	q.Set("access_token", c.cfg.AccessToken)

	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, c.cfg.AccountID+"/media_publish", q, &out); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if out.ID == "" {
		return "", fmt.Errorf("%s: response without media id", op)
	}

	return out.ID, nil
}

// do выполняет запрос к Graph API. Параметры уходят в query string —
// так протокол принимает и POST-запросы. Не-200 превращается в ошибку
// с телом ответа: в нём Graph API детализирует причину отказа.
func (c *Client) do(ctx context.Context, method, endpoint string, q url.Values, out any) error {
	u := strings.TrimRight(c.cfg.GraphAPIBase, "/") + "/" + endpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
