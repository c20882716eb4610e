package lock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"
)

var (
	// ErrLockTimeout возвращается, когда блокировку не удалось получить
	// за отведённое время
	ErrLockTimeout = errors.New("lock: acquisition timed out")

	// ErrLockFailed возвращается при ошибке соединения или запроса
	ErrLockFailed = errors.New("lock: acquisition failed")
)

// pollInterval: пауза между попытками pg_try_advisory_lock
const pollInterval = 200 * time.Millisecond

// PGLock: именованная распределённая блокировка на advisory-locks Postgres.
// Работает между процессами и машинами, разделяющими одну базу.
//
// Advisory-lock привязан к сессии, поэтому на всё время удержания выделяется
// отдельное соединение; Release снимает блокировку и возвращает соединение
// в пул.
type PGLock struct {
	db *sql.DB
}

// NewPGLock создает менеджер блокировок поверх пула соединений
func NewPGLock(db *sql.DB) *PGLock {
	return &PGLock{db: db}
}

// Acquire пытается получить блокировку с именем name, опрашивая
// pg_try_advisory_lock до истечения wait. Возвращает функцию освобождения,
// которую вызывающий обязан выполнить на всех путях выхода (defer).
func (l *PGLock) Acquire(ctx context.Context, name string, wait time.Duration) (release func(), err error) {
	key := hashKey(name)

	conn, err := l.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: get connection: %v", ErrLockFailed, err)
	}

	deadline := time.Now().Add(wait)

	for {
		var acquired bool
		if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", key).Scan(&acquired); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%w: try_advisory_lock: %v", ErrLockFailed, err)
		}

		if acquired {
			return func() {
				// Снимаем блокировку на том же соединении, на котором брали.
				// Фоновый контекст: освобождение должно пройти даже если
				// контекст запроса уже отменён.
				releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_, _ = conn.ExecContext(releaseCtx, "SELECT pg_advisory_unlock($1)", key)
				conn.Close()
			}, nil
		}

		if time.Now().After(deadline) {
			conn.Close()
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			conn.Close()
			return nil, fmt.Errorf("%w: %v", ErrLockFailed, ctx.Err())
		case <-time.After(pollInterval):
		}
	}
}

// hashKey переводит имя блокировки в 64-битный ключ advisory-lock
func hashKey(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64())
}
