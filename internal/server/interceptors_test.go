package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/post.PostService/GetPost"}

func TestUnaryTimeoutSetsDeadline(t *testing.T) {
	interceptor := UnaryTimeout(time.Second)

	_, err := interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 100*time.Millisecond)
		return nil, nil
	})
	require.NoError(t, err)
}

func TestUnaryWorkerPoolLimitsConcurrency(t *testing.T) {
	interceptor := UnaryWorkerPool(1)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		_, err := interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
			close(started)
			<-release
			return nil, nil
		})
		done <- err
	}()
	<-started

	// Слот занят, второй вызов дожидается своего дедлайна
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	called := false
	_, err := interceptor(ctx, nil, testInfo, func(ctx context.Context, req any) (any, error) {
		called = true
		return nil, nil
	})
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
	assert.False(t, called)

	close(release)
	require.NoError(t, <-done)

	// После освобождения слот снова доступен
	_, err = interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	assert.NoError(t, err)
}

func TestUnaryLoggingPassesThrough(t *testing.T) {
	interceptor := UnaryLogging(zaptest.NewLogger(t))
	handlerErr := status.Error(codes.NotFound, "пост не найден")

	resp, err := interceptor(context.Background(), "req", testInfo, func(ctx context.Context, req any) (any, error) {
		return "resp", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "resp", resp)

	_, err = interceptor(context.Background(), "req", testInfo, func(ctx context.Context, req any) (any, error) {
		return nil, handlerErr
	})
	assert.True(t, errors.Is(err, handlerErr))
}

func TestUnaryRecoveryConvertsPanic(t *testing.T) {
	interceptor := UnaryRecovery(zaptest.NewLogger(t))

	resp, err := interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
		var items []int
		return items[5], nil
	})
	assert.Nil(t, resp)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, internalErrorMessage, st.Message())

	resp, err = interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}
