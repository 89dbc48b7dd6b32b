package grpcclient

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	benchgrpc "github.com/nickzhog/storage-bench/internal/server/grpc"
)

type fakeBench struct {
	calls   []string
	readErr error
}

func (f *fakeBench) FetchAndInsert(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error) {
	f.calls = append(f.calls, "fetch")
	return wrapperspb.String("inserted"), nil
}

func (f *fakeBench) ReadAll(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error) {
	f.calls = append(f.calls, "read")
	if f.readErr != nil {
		return nil, f.readErr
	}
	return wrapperspb.String("read"), nil
}

func newTestClient(t *testing.T, bench benchgrpc.BenchServer) *Client {
	lis := bufconn.Listen(1024 * 1024)
	s := grpc.NewServer()
	benchgrpc.RegisterBenchServer(s, bench)
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	c := NewClientConn(conn)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient_Calls(t *testing.T) {
	assert := assert.New(t)
	bench := &fakeBench{}
	c := newTestClient(t, bench)
	ctx := context.Background()

	answer, err := c.FetchAndInsert(ctx)
	assert.NoError(err)
	assert.Equal("inserted", answer)

	answer, err = c.ReadAll(ctx)
	assert.NoError(err)
	assert.Equal("read", answer)

	assert.Equal([]string{"fetch", "read"}, bench.calls)
}

func TestClient_ServerError(t *testing.T) {
	assert := assert.New(t)
	c := newTestClient(t, &fakeBench{readErr: status.Error(codes.Internal, "leveldb: read error")})

	answer, err := c.ReadAll(context.Background())
	assert.Empty(answer)
	assert.Equal(codes.Internal, status.Code(err))
}
