package surreal

import (
	"context"
	"os"
	"testing"

	"github.com/nickzhog/storage-bench/internal/server/service"
	"github.com/nickzhog/storage-bench/pkg/history"
	"github.com/nickzhog/storage-bench/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_BadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "empty url", cfg: Config{User: "root", Pass: "root", Namespace: "ns", Database: "db"}},
		{name: "empty namespace", cfg: Config{URL: "ws://localhost:8000", User: "root", Pass: "root", Database: "db"}},
		{name: "empty database", cfg: Config{URL: "ws://localhost:8000", User: "root", Pass: "root", Namespace: "ns"}},
		{name: "no credentials", cfg: Config{URL: "ws://localhost:8000", Namespace: "ns", Database: "db"}},
		{name: "empty password", cfg: Config{URL: "ws://localhost:8000", User: "root", Namespace: "ns", Database: "db"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.cfg, logging.GetLogger())
			assert.ErrorIs(t, err, service.ErrConnection)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{URL: "ws://localhost:8000/rpc", User: "root", Pass: "root", Namespace: "ns", Database: "db"}
	assert.NoError(cfg.validate())

	cfg.User = ""
	assert.ErrorContains(cfg.validate(), "SURREAL_USER")
}

func TestRows(t *testing.T) {
	assert := assert.New(t)

	d := history.DepthRecord{StartTime: 1, EndTime: 2, AssetDepth: 3, RuneDepth: 4, AssetPrice: 5, AssetPriceUSD: 6,
		LiquidityUnits: 7, MembersCount: 8, SynthUnits: 9, SynthSupply: 10, Units: 11, Luvi: 12}
	assert.Equal(d, toDepthRow(d).record())

	p := history.RunePoolRecord{StartTime: 1, EndTime: 2, Count: 3, Units: 4}
	assert.Equal(p, toRunePoolRow(p).record())
}

// SURREAL_TEST_URL=ws://localhost:8000/rpc SURREAL_TEST_USER=root SURREAL_TEST_PASS=root
func TestIntegration(t *testing.T) {
	url := os.Getenv("SURREAL_TEST_URL")
	if url == "" {
		t.Skip("SURREAL_TEST_URL is not set")
	}

	assert := assert.New(t)
	ctx := context.Background()

	r, err := New(ctx, Config{
		URL:       url,
		User:      os.Getenv("SURREAL_TEST_USER"),
		Pass:      os.Getenv("SURREAL_TEST_PASS"),
		Namespace: "storage_bench_test",
		Database:  t.Name(),
	}, logging.GetLogger())
	require.NoError(t, err)
	defer r.Close(ctx)

	before, err := r.ReadAllRunePool(ctx)
	require.NoError(t, err)

	p := history.RunePoolRecord{StartTime: 1700000000, EndTime: 1700003600, Count: 3, Units: 4.5}
	require.NoError(t, r.InsertRunePool(ctx, p))

	after, err := r.ReadAllRunePool(ctx)
	assert.NoError(err)
	assert.Len(after, len(before)+1)
	assert.Contains(after, p)
}
