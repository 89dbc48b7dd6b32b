package mongo

import (
	"context"
	"os"
	"testing"

	"github.com/nickzhog/storage-bench/internal/server/service"
	"github.com/nickzhog/storage-bench/pkg/history"
	"github.com/nickzhog/storage-bench/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNew_BadConfig(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{name: "empty uri", uri: ""},
		{name: "wrong scheme", uri: "http://localhost:27017"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), Config{URI: tt.uri}, logging.GetLogger())
			assert.ErrorIs(t, err, service.ErrConnection)
		})
	}
}

func TestRecordDocument(t *testing.T) {
	assert := assert.New(t)

	data, err := bson.Marshal(history.RunePoolRecord{StartTime: 1, EndTime: 2, Count: 3, Units: 4})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(data, &doc))
	assert.Equal(bson.M{"start_time": 1.0, "end_time": 2.0, "count": 3.0, "units": 4.0}, doc)
}

// MONGO_TEST_URL=mongodb://localhost:27017
func TestIntegration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URL")
	if uri == "" {
		t.Skip("MONGO_TEST_URL is not set")
	}

	assert := assert.New(t)
	ctx := context.Background()

	r, err := New(ctx, Config{URI: uri, Database: "storage_bench_test"}, logging.GetLogger())
	require.NoError(t, err)
	defer r.Close(ctx)

	require.NoError(t, r.runePool.Drop(ctx))

	in := []history.RunePoolRecord{
		{StartTime: 1, EndTime: 2, Count: 3, Units: 4},
		{StartTime: 2, EndTime: 3, Count: 5, Units: 6.5},
	}
	for _, p := range in {
		require.NoError(t, r.InsertRunePool(ctx, p))
	}

	out, err := r.ReadAllRunePool(ctx)
	assert.NoError(err)
	assert.ElementsMatch(in, out)
}
