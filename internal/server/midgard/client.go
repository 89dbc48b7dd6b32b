package midgard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nickzhog/storage-bench/pkg/history"
	"github.com/nickzhog/storage-bench/pkg/logging"
)

type Config struct {
	BaseURL  string
	Pool     string
	Interval string
	Count    int
}

// Client забирает исторические данные из midgard.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *logging.Logger
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

func (c *Client) DepthURL() string {
	return c.url("/v2/history/depths/" + url.PathEscape(c.cfg.Pool))
}

func (c *Client) RunePoolURL() string {
	return c.url("/v2/history/runepool")
}

func (c *Client) url(path string) string {
	q := url.Values{}
	q.Set("interval", c.cfg.Interval)
	q.Set("count", strconv.Itoa(c.cfg.Count))
	return strings.TrimRight(c.cfg.BaseURL, "/") + path + "?" + q.Encode()
}

func (c *Client) FetchDepthHistory(ctx context.Context) (history.DepthHistory, error) {
	body, err := c.get(ctx, c.DepthURL())
	if err != nil {
		return history.DepthHistory{}, err
	}
	h, err := history.DecodeDepthHistory(body)
	if err != nil {
		return history.DepthHistory{}, fmt.Errorf("depth history: %w", err)
	}
	c.logger.Tracef("fetched %d depth intervals", len(h.Intervals))
	return h, nil
}

func (c *Client) FetchRunePoolHistory(ctx context.Context) (history.RunePoolHistory, error) {
	body, err := c.get(ctx, c.RunePoolURL())
	if err != nil {
		return history.RunePoolHistory{}, err
	}
	h, err := history.DecodeRunePoolHistory(body)
	if err != nil {
		return history.RunePoolHistory{}, fmt.Errorf("rune pool history: %w", err)
	}
	c.logger.Tracef("fetched %d rune pool intervals", len(h.Intervals))
	return h, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status %d: %s", u, res.StatusCode, body)
	}

	return body, nil
}
