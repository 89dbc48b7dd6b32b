package grpcclient

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	benchgrpc "github.com/nickzhog/storage-bench/internal/server/grpc"
)

// Client вызывает проходы на сервере по gRPC.
type Client struct {
	conn *grpc.ClientConn
}

func NewClient(address string) (*Client, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return NewClientConn(conn), nil
}

func NewClientConn(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

func (c *Client) FetchAndInsert(ctx context.Context) (string, error) {
	return c.call(ctx, benchgrpc.FetchAndInsertMethod)
}

func (c *Client) ReadAll(ctx context.Context) (string, error) {
	return c.call(ctx, benchgrpc.ReadAllMethod)
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) call(ctx context.Context, method string) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, method, &emptypb.Empty{}, out); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}
