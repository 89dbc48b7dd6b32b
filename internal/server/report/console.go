package report

import (
	"context"

	"github.com/nickzhog/storage-bench/pkg/logging"
)

type Console struct {
	logger *logging.Logger
}

func NewConsole(logger *logging.Logger) *Console {
	return &Console{logger: logger}
}

func (c *Console) Report(ctx context.Context, t Timing) error {
	c.logger.
		WithField("run_id", t.RunID).
		WithField("backend", t.Backend).
		WithField("records", t.Records).
		Info(t.String())
	return nil
}
