package hgrpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the name probes pass to grpc.health.v1.Health/Check.
const ServiceName = "country.v1.CountryLookup"

type HealthHandler struct {
	srv *health.Server
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{srv: health.NewServer()}
}

// Register attaches the health service and reflection to s. Both the overall
// status ("") and ServiceName start as NOT_SERVING.
func (h *HealthHandler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.srv)
	reflection.Register(s)
	h.SetServing(false)
}

func (h *HealthHandler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.srv.SetServingStatus("", status)
	h.srv.SetServingStatus(ServiceName, status)
}

// Shutdown flips every service to NOT_SERVING and ignores later updates.
func (h *HealthHandler) Shutdown() {
	h.srv.Shutdown()
}
