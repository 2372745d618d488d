package server

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service key the catalog state is reported under.
const ServiceName = "formulafront.Game"

// Health serves the standard gRPC health protocol. The game service is
// SERVING while the installed catalog is current and NOT_SERVING after a
// failed reload.
type Health struct {
	srv *grpc.Server
	hs  *health.Server
}

func NewHealth() *Health {
	h := &Health{srv: grpc.NewServer(), hs: health.NewServer()}
	healthpb.RegisterHealthServer(h.srv, h.hs)
	reflection.Register(h.srv)
	h.hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

// SetServing flips both the game service and the overall server status.
func (h *Health) SetServing(ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	h.hs.SetServingStatus(ServiceName, st)
	h.hs.SetServingStatus("", st)
}

// Serve blocks until lis fails or the server stops.
func (h *Health) Serve(lis net.Listener) error { return h.srv.Serve(lis) }

// Shutdown drains in-flight calls, forcing a stop once ctx is done.
func (h *Health) Shutdown(ctx context.Context) {
	h.hs.Shutdown()
	done := make(chan struct{})
	go func() {
		h.srv.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		h.srv.Stop()
	}
}
