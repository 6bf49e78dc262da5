package grpc

import (
	"context"

	"boardcamp-backend/internal/logger"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

const requestIDMetadataKey = "x-request-id"

// contextWithRequestID tags ctx with the caller's request id, or a fresh one
// when the caller sent none.
func contextWithRequestID(ctx context.Context) context.Context {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(requestIDMetadataKey); len(ids) > 0 && ids[0] != "" {
			return logger.WithRequestID(ctx, ids[0])
		}
	}
	return logger.WithRequestID(ctx, uuid.NewString())
}
