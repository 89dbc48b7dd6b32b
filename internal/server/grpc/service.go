package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "storagebench.Bench"

const (
	FetchAndInsertMethod = "/" + ServiceName + "/FetchAndInsert"
	ReadAllMethod        = "/" + ServiceName + "/ReadAll"
)

// BenchServer запускает проходы бенчмарка. Ответ - тот же текст с замерами,
// что отдает http-ручка.
type BenchServer interface {
	FetchAndInsert(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error)
	ReadAll(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// ServiceDesc собран вручную: сообщения - стандартные Empty и StringValue.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BenchServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "FetchAndInsert",
			Handler:    fetchAndInsertHandler,
		},
		{
			MethodName: "ReadAll",
			Handler:    readAllHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storagebench",
}

func RegisterBenchServer(s grpc.ServiceRegistrar, srv BenchServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fetchAndInsertHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BenchServer).FetchAndInsert(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FetchAndInsertMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BenchServer).FetchAndInsert(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func readAllHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BenchServer).ReadAll(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ReadAllMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BenchServer).ReadAll(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
