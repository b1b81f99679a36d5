package logger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const metadataKeyRequestID = "x-request-id"

// UnaryServerInterceptor logs one line per unary call with a request id
// taken from metadata, or a fresh uuid when the caller sent none.
func UnaryServerInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()

		child := logger.With(
			zap.String("request_id", RequestIDFromMD(ctx)),
			zap.String("grpc_method", info.FullMethod),
		)

		resp, err := handler(ctx, req)

		child.Info("unary call completed",
			zap.String("grpc_code", status.Code(err).String()),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))

		return resp, err
	}
}

// RequestIDFromMD returns the caller's x-request-id or a new uuid.
func RequestIDFromMD(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		vals := md.Get(metadataKeyRequestID)
		if len(vals) > 0 && vals[0] != "" {
			return vals[0]
		}
	}
	return uuid.New().String()
}
