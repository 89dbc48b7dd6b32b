package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/nickzhog/storage-bench/internal/server/config"
	"github.com/nickzhog/storage-bench/internal/server/server"
)

func NewServer(srv *server.Server) *grpc.Server {
	gRPCsrv := grpc.NewServer(
		grpc.UnaryInterceptor(NewLogInterceptor(srv.Logger)),
	)
	RegisterBenchServer(gRPCsrv, NewBenchServer(srv))
	return gRPCsrv
}

// Serve слушает ADDRESS_GRPC до отмены ctx.
func Serve(ctx context.Context, srv *server.Server, cfg *config.Config) error {
	listen, err := net.Listen("tcp", cfg.Settings.AddressGRPC)
	if err != nil {
		return err
	}
	return ServeListener(ctx, srv, listen)
}

// ServeListener работает на готовом listener и по отмене ctx
// дожидается завершения начатых вызовов.
func ServeListener(ctx context.Context, srv *server.Server, listen net.Listener) error {
	gRPCsrv := NewServer(srv)

	errCh := make(chan error, 1)
	go func() {
		if err := gRPCsrv.Serve(listen); err != nil && err != grpc.ErrServerStopped {
			errCh <- err
		}
		close(errCh)
	}()

	srv.Logger.Tracef("grpc server started on %s", listen.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	gRPCsrv.GracefulStop()
	srv.Logger.Tracef("grpc server stopped")

	return nil
}
