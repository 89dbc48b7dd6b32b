package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nickzhog/storage-bench/internal/server/config"
	"github.com/nickzhog/storage-bench/internal/server/registry"
	"github.com/nickzhog/storage-bench/pkg/history"
	"github.com/nickzhog/storage-bench/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresSinks(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	cfg.Settings.Backends = []string{"memory", "pebble"}
	cfg.Settings.PebblePath = t.TempDir()
	cfg.Settings.MetricsFile = filepath.Join(t.TempDir(), "metrics.txt")
	cfg.Settings.RedisAddr = mr.Addr()
	cfg.Settings.RedisKey = "timings"

	a, err := New(ctx, cfg, logging.GetLogger())
	require.NoError(t, err)
	defer a.Close(ctx)

	_, err = a.Server.InsertRunePool(ctx, []history.RunePoolRecord{{StartTime: 1, EndTime: 2}})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Settings.MetricsFile)
	require.NoError(t, err)
	assert.Contains(string(data), "Time taken for memory to insert rune pool history data")
	assert.Contains(string(data), "Time taken for pebble to insert rune pool history data")

	items, err := mr.List("timings")
	require.NoError(t, err)
	assert.Len(items, 2)
}

func TestNew_BadBackend(t *testing.T) {
	cfg, err := config.Load(nil)
	require.NoError(t, err)
	cfg.Settings.Backends = []string{"memory", "cassandra"}

	_, err = NewWithFactories(context.Background(), cfg, registry.Factories(cfg, logging.GetLogger()), logging.GetLogger())
	assert.ErrorContains(t, err, `unknown backend "cassandra"`)
}
