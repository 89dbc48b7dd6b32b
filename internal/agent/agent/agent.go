package agent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nickzhog/storage-bench/internal/agent/config"
	"github.com/nickzhog/storage-bench/pkg/logging"
)

const (
	fetchPath = "/fetch-and-insert-data"
	readPath  = "/read-data"
)

// Caller - транспорт, через который агент запускает проходы на сервере.
type Caller interface {
	FetchAndInsert(ctx context.Context) (string, error)
	ReadAll(ctx context.Context) (string, error)
}

// Agent по расписанию запускает проходы на сервере.
type Agent struct {
	cfg    *config.Config
	caller Caller
	logger *logging.Logger
}

// NewAgent ходит на сервер по http.
func NewAgent(cfg *config.Config, logger *logging.Logger) *Agent {
	return NewAgentWithCaller(cfg, &httpCaller{cfg: cfg}, logger)
}

func NewAgentWithCaller(cfg *config.Config, caller Caller, logger *logging.Logger) *Agent {
	return &Agent{
		cfg:    cfg,
		caller: caller,
		logger: logger,
	}
}

// Run делает проход сразу и затем на каждый тик, пока не отменен ctx.
func (a *Agent) Run(ctx context.Context) {
	a.Pass(ctx)

	t := time.NewTicker(a.cfg.Settings.FetchInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.Pass(ctx)
		}
	}
}

// Pass - загрузка и вставка, затем чтение, если оно включено.
func (a *Agent) Pass(ctx context.Context) error {
	answer, err := a.caller.FetchAndInsert(ctx)
	if err != nil {
		a.logger.Errorf("fetch and insert: %s", err.Error())
		return err
	}
	a.logger.Tracef("fetch and insert: %s", answer)

	if !a.cfg.Settings.ReadAfter {
		return nil
	}

	answer, err = a.caller.ReadAll(ctx)
	if err != nil {
		a.logger.Errorf("read: %s", err.Error())
		return err
	}
	a.logger.Tracef("read: %s", answer)

	return nil
}

type httpCaller struct {
	cfg *config.Config
}

func (c *httpCaller) FetchAndInsert(ctx context.Context) (string, error) {
	answer, err := c.sendRequest(ctx, fetchPath)
	return string(answer), err
}

func (c *httpCaller) ReadAll(ctx context.Context) (string, error) {
	answer, err := c.sendRequest(ctx, readPath)
	return string(answer), err
}

func (c *httpCaller) sendRequest(ctx context.Context, path string) ([]byte, error) {
	url := c.cfg.Settings.Address
	if !strings.HasPrefix(url, "http") {
		url = "http://" + url
	}
	url = strings.TrimRight(url, "/") + path

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	answer, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return answer, fmt.Errorf("%s: status %d: %s", path, res.StatusCode, answer)
	}

	return answer, nil
}
