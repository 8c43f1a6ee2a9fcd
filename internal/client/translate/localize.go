package translate

import (
	"context"
	"log/slog"
)

// Field описывает локализуемое текстовое поле записи T
type Field[T any] struct {
	Name string
	Get  func(T) string
	Set  func(*T, string)
}

// Result — итог локализации. Items всегда пригодны для показа:
// при любой ошибке провайдера возвращаются исходные записи.
type Result[T any] struct {
	Items      []T
	Translated bool
}

// Localize переводит заданные поля записей на целевой язык.
// Исходный язык берется из sourceLangOf (если задан), иначе
// определяется по первому непустому полю первой записи. Если исходный
// язык совпадает с целевым, записи возвращаются как есть без единого
// запроса. Перевод никогда не падает: любая ошибка логируется, и
// вызывающий получает оригинальные тексты.
func Localize[T any](ctx context.Context, svc *Service, items []T, fields []Field[T], targetLang string, sourceLangOf func(T) string) Result[T] {
	if len(items) == 0 || len(fields) == 0 || targetLang == "" {
		return Result[T]{Items: items}
	}

	// 1. Определяем исходный язык
	sourceLang := ""
	if sourceLangOf != nil {
		sourceLang = sourceLangOf(items[0])
	}
	if sourceLang == "" {
		sample := sampleText(items, fields)
		if sample == "" {
			return Result[T]{Items: items}
		}
		detected, err := svc.DetectLanguage(ctx, sample)
		if err != nil {
			slog.Warn("language detection failed, showing original text", "error", err)
			return Result[T]{Items: items}
		}
		sourceLang = detected
	}

	// 2. Совпадение языков — пропускаем без запросов
	if sourceLang == targetLang {
		return Result[T]{Items: items}
	}

	// 3. Переводим каждое поле одним batch-запросом
	translated := make([][]string, len(fields))
	for fi, field := range fields {
		texts := make([]string, len(items))
		for i, item := range items {
			texts[i] = field.Get(item)
		}

		result, err := svc.TranslateBatch(ctx, texts, targetLang, sourceLang)
		if err != nil {
			slog.Warn("translation failed, showing original text",
				"field", field.Name, "target", targetLang, "error", err)
			return Result[T]{Items: items}
		}
		translated[fi] = result
	}

	// 4. Применяем переводы к копиям записей
	localized := make([]T, len(items))
	copy(localized, items)
	for fi, field := range fields {
		for i := range localized {
			field.Set(&localized[i], translated[fi][i])
		}
	}

	return Result[T]{Items: localized, Translated: true}
}

// LocalizeOne — удобная обертка для одиночной записи
func LocalizeOne[T any](ctx context.Context, svc *Service, item T, fields []Field[T], targetLang string, sourceLangOf func(T) string) (T, bool) {
	result := Localize(ctx, svc, []T{item}, fields, targetLang, sourceLangOf)
	return result.Items[0], result.Translated
}

// sampleText возвращает первое непустое значение поля для детекции языка
func sampleText[T any](items []T, fields []Field[T]) string {
	for _, item := range items {
		for _, field := range fields {
			if text := field.Get(item); text != "" {
				return text
			}
		}
	}
	return ""
}
