// fetch — конкурентный fan-out по элементам страницы.
//
// Размер волны известен заранее (размер страницы, ограничен конфигом шлюза),
// поэтому результирующий буфер арендуется из общего sync.Pool, а не
// аллоцируется на каждый запрос. Дисциплина работы с буфером:
//   - заполняются строго индексы [0, n) — арендованный буфер не обнулён,
//     и читать за пределами заполненного нельзя;
//   - возврат буфера в пул гарантирован defer'ом на любом пути, включая
//     ошибку любой из операций;
//   - наружу всегда отдаётся копия: после возврата в пул буфер может быть
//     выдан другому запросу.
package fetch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pool — пул scratch-буферов для результатов fan-out'а.
// Безопасен для конкурентного checkout/return из разных запросов:
// каждый checkout получает независимый буфер, алиасинга живых выдач нет.
type Pool[T any] struct {
	pool    sync.Pool
	capHint int
}

// NewPool создаёт пул буферов с начальной ёмкостью capHint
// (обычно максимальный размер страницы).
func NewPool[T any](capHint int) *Pool[T] {
	if capHint <= 0 {
		capHint = 100
	}

	p := &Pool[T]{capHint: capHint}
	p.pool.New = func() any {
		buf := make([]T, 0, capHint)
		return &buf
	}

	return p
}

// checkout арендует буфер длиной не меньше n.
func (p *Pool[T]) checkout(n int) *[]T {
	buf := p.pool.Get().(*[]T)
	if cap(*buf) < n {
		*buf = make([]T, 0, n)
	}
	*buf = (*buf)[:n]

	return buf
}

// putBack возвращает буфер в пул. Содержимое не очищается:
// читающая сторона обязана ограничивать себя заполненными индексами.
func (p *Pool[T]) putBack(buf *[]T) {
	*buf = (*buf)[:0]
	p.pool.Put(buf)
}

// Collect выполняет fn конкурентно для каждого из n входов и возвращает
// результаты в порядке входов: result[i] всегда соответствует входу i.
//
// Семантика ожидания — wait-all с fail-fast: ошибка любой операции отменяет
// контекст остальных и возвращается как общая ошибка волны. Отмена входящего
// ctx прерывает все незавершённые вызовы.
func Collect[In, Out any](ctx context.Context, pool *Pool[Out], in []In, fn func(ctx context.Context, v In) (Out, error)) ([]Out, error) {
	const op = "fetch/Collect"

	n := len(in)
	if n == 0 {
		return nil, nil
	}

	buf := pool.checkout(n)
	defer pool.putBack(buf)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			v, err := fn(gctx, in[i])
			if err != nil {
				return fmt.Errorf("%s: item %d: %w", op, i, err)
			}

			(*buf)[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Копия: буфер уходит обратно в пул и будет переиспользован.
	out := make([]Out, n)
	copy(out, (*buf)[:n])

	return out, nil
}
