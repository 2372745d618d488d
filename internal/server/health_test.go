package server

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func dialHealth(t *testing.T, h *Health) healthpb.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	go func() { _ = h.Serve(lis) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		h.Shutdown(ctx)
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func status(t *testing.T, c healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := c.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		t.Fatalf("check %q: %v", service, err)
	}
	return resp.GetStatus()
}

func TestHealthTracksCatalogState(t *testing.T) {
	h := NewHealth()
	c := dialHealth(t, h)

	if got := status(t, c, ServiceName); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("before catalog: %v", got)
	}
	h.SetServing(true)
	if got := status(t, c, ServiceName); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("after catalog: %v", got)
	}
	if got := status(t, c, ""); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("overall: %v", got)
	}
	h.SetServing(false)
	if got := status(t, c, ServiceName); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("after failed reload: %v", got)
	}
}
