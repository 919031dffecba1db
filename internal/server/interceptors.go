package server

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/levalimpiev/post-interactions/internal/metrics"
)

// UnaryRecovery перехватывает панику обработчика и возвращает codes.Internal вместо падения процесса
func UnaryRecovery(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				metrics.RPCRequests.WithLabelValues(info.FullMethod, codes.Internal.String()).Inc()
				logger.Error("паника при обработке gRPC запроса",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.Stack("stack"),
				)
				resp, err = nil, status.Error(codes.Internal, internalErrorMessage)
			}
		}()
		return handler(ctx, req)
	}
}

// UnaryLogging пишет в лог одну запись на вызов и обновляет метрики RPC
func UnaryLogging(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		duration := time.Since(start)
		code := status.Code(err)

		metrics.RPCRequests.WithLabelValues(info.FullMethod, code.String()).Inc()
		metrics.RPCDuration.WithLabelValues(info.FullMethod).Observe(duration.Seconds())

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", duration),
		}
		switch code {
		case codes.Internal, codes.Unknown, codes.DeadlineExceeded:
			logger.Error("gRPC запрос завершился ошибкой", fields...)
		default:
			logger.Info("gRPC запрос обработан", fields...)
		}
		return resp, err
	}
}

// UnaryTimeout ограничивает время обработки каждого вызова
func UnaryTimeout(timeout time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if timeout <= 0 {
			return handler(ctx, req)
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return handler(ctx, req)
	}
}

// UnaryWorkerPool допускает не более maxWorkers одновременно выполняющихся обработчиков.
// Остальные вызовы ждут свободного слота до истечения своего дедлайна.
func UnaryWorkerPool(maxWorkers int64) grpc.UnaryServerInterceptor {
	slots := semaphore.NewWeighted(maxWorkers)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if err := slots.Acquire(ctx, 1); err != nil {
			return nil, status.FromContextError(err).Err()
		}
		defer slots.Release(1)

		metrics.RPCInFlight.Inc()
		defer metrics.RPCInFlight.Dec()

		return handler(ctx, req)
	}
}
