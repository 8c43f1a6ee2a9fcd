package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout — таймаут запросов к переводчику
const DefaultTimeout = 10 * time.Second

// Config содержит настройки провайдера перевода
type Config struct {
	Endpoint string // базовый URL, например https://api.cognitive.microsofttranslator.com
	Key      string // subscription key
	Region   string // subscription region
	Timeout  time.Duration
}

// Service — клиент провайдера перевода с кешированием.
// Детекция кешируется по точному тексту, переводы — по точной тройке
// (from, to, text). Кеши append-only и живут все время работы процесса:
// тексты считаются неизменяемыми после первого наблюдения.
type Service struct {
	httpClient *http.Client
	endpoint   string
	key        string
	region     string

	mu             sync.Mutex
	detectCache    map[string]string
	translateCache map[string]string
}

// NewService создает клиент провайдера перевода
func NewService(cfg Config) *Service {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		httpClient:     &http.Client{Timeout: timeout},
		endpoint:       strings.TrimRight(cfg.Endpoint, "/"),
		key:            cfg.Key,
		region:         cfg.Region,
		detectCache:    make(map[string]string),
		translateCache: make(map[string]string),
	}
}

// detectItem — элемент ответа detect endpoint'а
type detectItem struct {
	Language string `json:"language"`
}

// translateItem — элемент ответа translate endpoint'а
type translateItem struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// textItem — элемент тела запроса
type textItem struct {
	Text string `json:"text"`
}

// DetectLanguage определяет язык текста. Результат мемоизируется по
// точному тексту. Пустой текст считается английским без запроса.
func (s *Service) DetectLanguage(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "en", nil
	}

	s.mu.Lock()
	if lang, ok := s.detectCache[text]; ok {
		s.mu.Unlock()
		return lang, nil
	}
	s.mu.Unlock()

	var result []detectItem
	if err := s.post(ctx, "/detect?api-version=3.0", []textItem{{Text: text}}, &result); err != nil {
		return "", fmt.Errorf("detect request failed: %w", err)
	}
	if len(result) == 0 {
		return "", fmt.Errorf("detect returned empty result")
	}

	lang := result[0].Language

	s.mu.Lock()
	s.detectCache[text] = lang
	s.mu.Unlock()

	return lang, nil
}

// TranslateBatch переводит тексты одним запросом. Переводы берутся из
// кеша по точной тройке (from, to, text); дубликаты внутри batch'а
// схлопываются в один элемент запроса. Результат позиционно
// соответствует входу.
func (s *Service) TranslateBatch(ctx context.Context, texts []string, toLang, fromLang string) ([]string, error) {
	if len(texts) == 0 {
		return texts, nil
	}

	results := make([]string, len(texts))

	// 1. Разбираем кеш и собираем уникальные непереведенные тексты
	var pending []string
	pendingIndex := make(map[string]int) // text -> позиция в pending

	s.mu.Lock()
	for i, text := range texts {
		key := cacheKey(fromLang, toLang, text)
		if cached, ok := s.translateCache[key]; ok {
			results[i] = cached
			continue
		}
		if _, ok := pendingIndex[text]; !ok {
			pendingIndex[text] = len(pending)
			pending = append(pending, text)
		}
	}
	s.mu.Unlock()

	if len(pending) == 0 {
		return results, nil
	}

	// 2. Один запрос на все незакешированные тексты
	params := url.Values{"api-version": {"3.0"}, "to": {toLang}}
	if fromLang != "" {
		params.Set("from", fromLang)
	}

	body := make([]textItem, len(pending))
	for i, text := range pending {
		body[i] = textItem{Text: text}
	}

	var translated []translateItem
	if err := s.post(ctx, "/translate?"+params.Encode(), body, &translated); err != nil {
		return nil, fmt.Errorf("translate request failed: %w", err)
	}
	if len(translated) != len(pending) {
		return nil, fmt.Errorf("translate returned %d items, expected %d", len(translated), len(pending))
	}

	// 3. Кладем переводы в кеш и раскладываем по позициям
	s.mu.Lock()
	for i, item := range translated {
		if len(item.Translations) == 0 {
			s.mu.Unlock()
			return nil, fmt.Errorf("translate item %d has no translations", i)
		}
		s.translateCache[cacheKey(fromLang, toLang, pending[i])] = item.Translations[0].Text
	}
	for i, text := range texts {
		if results[i] != "" {
			continue
		}
		if idx, ok := pendingIndex[text]; ok {
			results[i] = translated[idx].Translations[0].Text
		}
	}
	s.mu.Unlock()

	return results, nil
}

// cacheKey строит ключ кеша переводов
func cacheKey(fromLang, toLang, text string) string {
	if fromLang == "" {
		fromLang = "auto"
	}
	return fromLang + ":" + toLang + ":" + text
}

// post выполняет запрос к провайдеру с subscription заголовками
func (s *Service) post(ctx context.Context, path string, body, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", s.key)
	req.Header.Set("Ocp-Apim-Subscription-Region", s.region)
	req.Header.Set("X-ClientTraceId", uuid.New().String())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
