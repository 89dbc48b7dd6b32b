package bench

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nickzhog/storage-bench/internal/server/report"
	"github.com/nickzhog/storage-bench/internal/server/service"
	"github.com/nickzhog/storage-bench/pkg/history"
	"github.com/nickzhog/storage-bench/pkg/logging"
)

// Failure - хранилище, проход которого был прерван ошибкой.
type Failure struct {
	Backend string
	Op      string
	Kind    string
	Err     error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %s %s: %v", f.Backend, f.Op, f.Kind, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

type Result struct {
	RunID    string
	Timings  []report.Timing
	Failures []Failure
}

// Err объединяет ошибки всех хранилищ, nil если ошибок не было.
func (r Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// Summary - текстовый ответ: строка-итог и по строке на каждый замер.
func Summary(message string, results ...Result) string {
	var b strings.Builder
	b.WriteString(message)
	b.WriteString("\n")
	for _, res := range results {
		for _, t := range res.Timings {
			b.WriteString(t.String())
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Harness прогоняет пачку записей через каждое хранилище по очереди
// и замеряет время каждого прохода.
type Harness struct {
	backends []service.Storage
	reporter report.Reporter
	logger   *logging.Logger
	now      func() time.Time
	newRunID func() string
}

func New(backends []service.Storage, reporter report.Reporter, logger *logging.Logger) *Harness {
	return &Harness{
		backends: backends,
		reporter: reporter,
		logger:   logger,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
}

// WithClock подменяет часы, используется в тестах.
func (h *Harness) WithClock(now func() time.Time) *Harness {
	h.now = now
	return h
}

func (h *Harness) InsertDepth(ctx context.Context, records []history.DepthRecord) Result {
	return h.run(ctx, report.OpInsert, history.KindDepth, len(records), func(b service.Storage) error {
		for _, r := range records {
			if err := b.InsertDepth(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
}

func (h *Harness) InsertRunePool(ctx context.Context, records []history.RunePoolRecord) Result {
	return h.run(ctx, report.OpInsert, history.KindRunePool, len(records), func(b service.Storage) error {
		for _, r := range records {
			if err := b.InsertRunePool(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadAll читает оба вида записей из хранилищ, которые это умеют.
// Ошибка чтения одного вида пропускает оставшееся чтение этого хранилища.
func (h *Harness) ReadAll(ctx context.Context) Result {
	res := Result{RunID: h.newRunID()}
	logger := h.logger.GetLoggerWithField("run_id", res.RunID)
	logger.WithField("host", hostStats()).Tracef("read pass started")

	for _, b := range h.backends {
		reader, ok := b.(service.Reader)
		if !ok {
			logger.Tracef("%s does not support reads, skipped", b.Name())
			continue
		}

		reads := []struct {
			kind string
			read func() (int, error)
		}{
			{history.KindDepth, func() (int, error) {
				records, err := reader.ReadAllDepth(ctx)
				return len(records), err
			}},
			{history.KindRunePool, func() (int, error) {
				records, err := reader.ReadAllRunePool(ctx)
				return len(records), err
			}},
		}

		for _, r := range reads {
			start := h.now()
			n, err := r.read()
			if err != nil {
				h.fail(logger, &res, Failure{Backend: b.Name(), Op: report.OpRead, Kind: r.kind, Err: err})
				break
			}
			h.emit(ctx, logger, &res, report.Timing{
				RunID:   res.RunID,
				Backend: b.Name(),
				Op:      report.OpRead,
				Kind:    r.kind,
				Records: n,
				Elapsed: h.now().Sub(start),
			})
		}
	}

	return res
}

func (h *Harness) run(ctx context.Context, op, kind string, n int, pass func(service.Storage) error) Result {
	res := Result{RunID: h.newRunID()}
	logger := h.logger.GetLoggerWithField("run_id", res.RunID)
	logger.WithField("host", hostStats()).Tracef("%s %s pass started, %d records", op, kind, n)

	for _, b := range h.backends {
		start := h.now()
		if err := pass(b); err != nil {
			h.fail(logger, &res, Failure{Backend: b.Name(), Op: op, Kind: kind, Err: err})
			continue
		}
		h.emit(ctx, logger, &res, report.Timing{
			RunID:   res.RunID,
			Backend: b.Name(),
			Op:      op,
			Kind:    kind,
			Records: n,
			Elapsed: h.now().Sub(start),
		})
	}

	return res
}

func (h *Harness) fail(logger *logging.Logger, res *Result, f Failure) {
	logger.WithField("backend", f.Backend).Error(f.Error())
	res.Failures = append(res.Failures, f)
}

func (h *Harness) emit(ctx context.Context, logger *logging.Logger, res *Result, t report.Timing) {
	res.Timings = append(res.Timings, t)
	if h.reporter == nil {
		return
	}
	if err := h.reporter.Report(ctx, t); err != nil {
		logger.Errorf("report timing: %s", err.Error())
	}
}
