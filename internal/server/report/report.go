package report

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	OpInsert = "insert"
	OpRead   = "read"
)

// Timing - время одного прохода хранилища по пачке записей.
type Timing struct {
	RunID   string        `json:"run_id"`
	Backend string        `json:"backend"`
	Op      string        `json:"op"`
	Kind    string        `json:"kind"`
	Records int           `json:"records"`
	Elapsed time.Duration `json:"elapsed"`
}

// Parts раскладывает длительность на минуты, секунды и миллисекунды.
func (t Timing) Parts() (minutes, seconds, millis int64) {
	total := t.Elapsed.Milliseconds()
	millis = total % 1000
	seconds = total / 1000
	minutes = seconds / 60
	seconds %= 60
	return
}

func (t Timing) String() string {
	m, s, ms := t.Parts()
	return fmt.Sprintf("Time taken for %s to %s %s data : %dm %ds %dms", t.Backend, t.Op, t.Kind, m, s, ms)
}

type Reporter interface {
	Report(ctx context.Context, t Timing) error
}

// Multi отправляет замер во все приемники, ошибка одного не мешает остальным.
type Multi []Reporter

func (m Multi) Report(ctx context.Context, t Timing) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(ctx, t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
