package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nickzhog/storage-bench/pkg/logging"
	"github.com/nickzhog/storage-bench/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiming_String(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{
			name:    "millis only",
			elapsed: 250 * time.Millisecond,
			want:    "Time taken for leveldb to insert depth history data : 0m 0s 250ms",
		},
		{
			name:    "minutes",
			elapsed: 2*time.Minute + 3*time.Second + 4*time.Millisecond + 999*time.Microsecond,
			want:    "Time taken for leveldb to insert depth history data : 2m 3s 4ms",
		},
		{
			name:    "zero",
			elapsed: 0,
			want:    "Time taken for leveldb to insert depth history data : 0m 0s 0ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timing := Timing{Backend: "leveldb", Op: OpInsert, Kind: "depth history", Elapsed: tt.elapsed}
			assert.Equal(t, tt.want, timing.String())
		})
	}
}

func TestFile_Appends(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "performance-metrics.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0644))

	f := NewFile(path)
	assert.NoError(f.Report(ctx, Timing{Backend: "pebble", Op: OpRead, Kind: "rune pool history", Elapsed: time.Second}))
	assert.NoError(f.Report(ctx, Timing{Backend: "mongodb", Op: OpInsert, Kind: "depth history", Elapsed: time.Minute}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal([]string{
		"previous run",
		"Time taken for pebble to read rune pool history data : 0m 1s 0ms",
		"Time taken for mongodb to insert depth history data : 1m 0s 0ms",
	}, lines)
}

func TestFile_BadPath(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "missing", "dir", "file.txt"))
	assert.Error(t, f.Report(context.Background(), Timing{}))
}

func TestRedis(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client, err := redis.NewClient(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()

	r := NewRedis(client, "")
	want := Timing{RunID: "run", Backend: "postgres", Op: OpInsert, Kind: "depth history", Records: 400, Elapsed: 1500 * time.Millisecond}
	assert.NoError(r.Report(ctx, want))

	got, err := r.Timings(ctx)
	assert.NoError(err)
	assert.Equal([]Timing{want}, got)

	n, err := client.LLen(ctx, DefaultRedisKey).Result()
	assert.NoError(err)
	assert.Equal(int64(1), n)
}

type failingReporter struct {
	calls int
}

func (f *failingReporter) Report(ctx context.Context, t Timing) error {
	f.calls++
	return errors.New("sink is down")
}

func TestMulti(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "metrics.txt")
	failing := &failingReporter{}

	m := Multi{failing, NewConsole(logging.GetLogger()), NewFile(path)}
	err := m.Report(context.Background(), Timing{Backend: "memory", Op: OpRead, Kind: "depth history"})
	assert.ErrorContains(err, "sink is down")
	assert.Equal(1, failing.calls)
	assert.FileExists(path)
}
