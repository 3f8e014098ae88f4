// Command sonda asks a pizzeria gRPC health endpoint whether it is serving.
// It exits 0 when it is and 1 otherwise, which makes it usable as a
// container health check.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taldoflemis/pizza-time/pacchetto"
	"google.golang.org/grpc"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()
	retcode := 0
	defer func() {
		os.Exit(retcode)
	}()

	settings, err := LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", slog.Any("err", err))
		retcode = 1
		return
	}

	conn, err := pacchetto.CreateGRPCClient(ctx, settings.GRPCClient)
	if err != nil {
		retcode = 1
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(settings.GRPCClient.TimeoutInSeconds)*time.Second)
	defer cancel()

	if err := probe(ctx, conn, settings.Service); err != nil {
		slog.ErrorContext(ctx, "pizzeria is not serving",
			slog.String("address", settings.GRPCClient.Address),
			slog.Any("err", err),
		)
		retcode = 1
		return
	}

	slog.InfoContext(ctx, "pizzeria is serving", slog.String("address", settings.GRPCClient.Address))
}

func probe(ctx context.Context, conn grpc.ClientConnInterface, service string) error {
	client := healthgrpc.NewHealthClient(conn)
	resp, err := client.Check(ctx, &healthgrpc.HealthCheckRequest{Service: service})
	if err != nil {
		return err
	}
	if resp.GetStatus() != healthgrpc.HealthCheckResponse_SERVING {
		return &notServingError{status: resp.GetStatus()}
	}
	return nil
}

type notServingError struct {
	status healthgrpc.HealthCheckResponse_ServingStatus
}

func (e *notServingError) Error() string {
	return "health status " + e.status.String()
}
