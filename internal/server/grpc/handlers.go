package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/nickzhog/storage-bench/internal/server/bench"
	"github.com/nickzhog/storage-bench/internal/server/server"
)

var _ BenchServer = (*benchServer)(nil)

type benchServer struct {
	srv *server.Server
}

func NewBenchServer(srv *server.Server) *benchServer {
	return &benchServer{srv: srv}
}

func (b *benchServer) FetchAndInsert(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error) {
	results, err := b.srv.FetchAndInsert(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.String(bench.Summary("Data fetched and inserted successfully", results...)), nil
}

func (b *benchServer) ReadAll(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error) {
	res, err := b.srv.ReadAll(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.String(bench.Summary("Data read successfully", res)), nil
}
