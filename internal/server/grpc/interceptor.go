package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/nickzhog/storage-bench/pkg/logging"
)

// NewLogInterceptor пишет в лог метод, код ответа и длительность вызова.
func NewLogInterceptor(logger *logging.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler) (interface{}, error) {

		start := time.Now()
		resp, err := handler(ctx, req)

		logger.
			WithField("code", status.Code(err).String()).
			WithField("took", time.Since(start).String()).
			Tracef("grpc %s", info.FullMethod)

		return resp, err
	}
}
