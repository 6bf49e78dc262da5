// Package grpc serves the standard gRPC health protocol for the rental
// backend, driven by the database health job.
package grpc

import (
	"context"
	"runtime/debug"
	"time"

	"boardcamp-backend/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// ServiceName is the health service name reported for the rental API.
const ServiceName = "boardcamp.RentalAPI"

type Server struct {
	*grpc.Server
	health *health.Server
}

func NewServer() *Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(UnaryLoggingInterceptor),
		grpc.ChainStreamInterceptor(StreamLoggingInterceptor),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)

	srv := &Server{Server: s, health: hs}
	srv.SetServing(false)
	return srv
}

// SetServing reports the API and the overall server as serving or not.
func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// GracefulStop marks every service as not serving before draining.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.Server.GracefulStop()
}

func UnaryLoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	ctx = contextWithRequestID(ctx)
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			logger.FromContext(ctx).Error("Panic in gRPC handler", "method", info.FullMethod, "panic", rec, "stack", string(debug.Stack()))
			err = status.Error(codes.Internal, "internal error")
		}
		logger.FromContext(ctx).Debug("gRPC call", "method", info.FullMethod, "code", status.Code(err).String(), "duration_ms", time.Since(start).Milliseconds())
	}()
	return handler(ctx, req)
}

func StreamLoggingInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx := contextWithRequestID(ss.Context())
	start := time.Now()
	err := handler(srv, ss)
	logger.FromContext(ctx).Debug("gRPC stream closed", "method", info.FullMethod, "code", status.Code(err).String(), "duration_ms", time.Since(start).Milliseconds())
	return err
}
