package server

import (
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	pb "github.com/levalimpiev/post-interactions/api/post"
	"github.com/levalimpiev/post-interactions/internal/service"
)

// Options - параметры gRPC-сервера
type Options struct {
	MaxWorkers int
	RPCTimeout time.Duration
}

// New создает gRPC-сервер с сервисом постов, health-check и reflection.
// Сервис постов использует JSON-кодек без дескрипторов, поэтому reflection описывает только health.
func New(svc service.PostService, opts Options, logger *zap.Logger) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			UnaryRecovery(logger),
			UnaryLogging(logger),
			UnaryTimeout(opts.RPCTimeout),
			UnaryWorkerPool(int64(opts.MaxWorkers)),
		),
	)

	pb.RegisterPostServiceServer(grpcServer, NewPostServer(svc, logger))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Регистрируем reflection сервис на gRPC сервере (дескрипторы есть только у health)
	reflection.Register(grpcServer)

	return grpcServer
}
