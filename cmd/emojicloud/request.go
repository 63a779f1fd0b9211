package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/service"
)

// requestFile — JSON-формат файла запроса на производство: подготовленные
// данные дня плюс готовое изображение в base64. Формат совместим с
// today.json конвейера подготовки.
type requestFile struct {
	Date     string `json:"date"`
	PostType string `json:"post_type"`
	Emojis   []struct {
		Char    string `json:"char"`
		Label   string `json:"label"`
		URL     string `json:"url"`
		Title   string `json:"title"`
		Summary string `json:"summary"`
	} `json:"emojis"`
	Essence *struct {
		EmotionLabel string   `json:"emotion_label"`
		Emoji        string   `json:"emoji"`
		Rationale    string   `json:"rationale"`
		Palette      []string `json:"palette"`
		Temperature  float64  `json:"temperature"`
		Fallback     bool     `json:"fallback"`
	} `json:"essence"`
	ImageBufferBase64 string   `json:"image_buffer_base64"`
	RSSSources        []string `json:"rss_sources"`
	Model             string   `json:"model"`
	Provider          string   `json:"provider"`
}

// loadProduceRequest читает файл запроса и переводит его в запрос сервиса.
// Пустой post_type означает normal. Составную валидацию (дата, состав,
// непустое изображение) выполняет сервис.
func loadProduceRequest(path string) (*service.ProduceInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request file: %w", err)
	}

	var req requestFile
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("parse request file: %w", err)
	}

	if req.PostType == "" {
		req.PostType = string(models.PostTypeNormal)
	}

	var image []byte
	if req.ImageBufferBase64 != "" {
		image, err = base64.StdEncoding.DecodeString(req.ImageBufferBase64)
		if err != nil {
			return nil, fmt.Errorf("decode image_buffer_base64: %w", err)
		}
	}

	in := &service.ProduceInput{
		Date:       req.Date,
		PostType:   models.PostType(req.PostType),
		Image:      image,
		RSSSources: req.RSSSources,
		Model:      req.Model,
		Provider:   req.Provider,
	}

	for _, e := range req.Emojis {
		in.Emojis = append(in.Emojis, models.EmojiItem{
			Char:    e.Char,
			Label:   e.Label,
			URL:     e.URL,
			Title:   e.Title,
			Summary: e.Summary,
		})
	}

	if req.Essence != nil {
		in.Essence = &models.Essence{
			EmotionLabel: req.Essence.EmotionLabel,
			Emoji:        req.Essence.Emoji,
			Rationale:    req.Essence.Rationale,
			Palette:      req.Essence.Palette,
			Temperature:  req.Essence.Temperature,
			Fallback:     req.Essence.Fallback,
		}
	}

	return in, nil
}
