package translate

import (
	"context"
	"sync"
)

// View держит локализованное представление списка записей и
// пересчитывает его при смене данных или целевого языка. Пока перевод
// в полете, Current возвращает предыдущее содержимое. Ответ устаревшего
// пересчета отбрасывается по номеру поколения: показан может быть
// только результат последнего запроса.
type View[T any] struct {
	svc          *Service
	fields       []Field[T]
	sourceLangOf func(T) string

	mu          sync.Mutex
	items       []T
	lang        string
	displayed   []T
	translating bool
	gen         uint64
	wg          sync.WaitGroup
}

// NewView создает представление с целевым языком по умолчанию
func NewView[T any](svc *Service, fields []Field[T], lang string, sourceLangOf func(T) string) *View[T] {
	return &View[T]{
		svc:          svc,
		fields:       fields,
		lang:         lang,
		sourceLangOf: sourceLangOf,
	}
}

// Set заменяет исходные записи и запускает пересчет
func (v *View[T]) Set(ctx context.Context, items []T) {
	v.mu.Lock()
	v.items = items
	if v.displayed == nil {
		// до первого перевода показываем оригинал
		v.displayed = items
	}
	v.recomputeLocked(ctx)
	v.mu.Unlock()
}

// SetLanguage меняет целевой язык и запускает пересчет
func (v *View[T]) SetLanguage(ctx context.Context, lang string) {
	v.mu.Lock()
	if v.lang != lang {
		v.lang = lang
		v.recomputeLocked(ctx)
	}
	v.mu.Unlock()
}

// Current возвращает записи для показа: локализованные, либо предыдущее
// содержимое, пока пересчет в полете
func (v *View[T]) Current() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.displayed
}

// Translating сообщает, идет ли пересчет
func (v *View[T]) Translating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.translating
}

// Wait блокируется до завершения всех запущенных пересчетов
func (v *View[T]) Wait() {
	v.wg.Wait()
}

// recomputeLocked запускает асинхронный перевод текущих записей.
// Вызывается под v.mu.
func (v *View[T]) recomputeLocked(ctx context.Context) {
	v.gen++
	gen := v.gen
	items := v.items
	lang := v.lang
	v.translating = true

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		result := Localize(ctx, v.svc, items, v.fields, lang, v.sourceLangOf)

		v.mu.Lock()
		if gen == v.gen {
			v.displayed = result.Items
			v.translating = false
		}
		v.mu.Unlock()
	}()
}
