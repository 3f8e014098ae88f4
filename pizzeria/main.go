package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "net/http/pprof"

	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/taldoflemis/pizza-time/order"
	"github.com/taldoflemis/pizza-time/pacchetto"
	"github.com/taldoflemis/pizza-time/pacchetto/telemetry"
	"github.com/taldoflemis/pizza-time/pizza"
	_ "github.com/taldoflemis/pizza-time/pizzeria/docs"
	"google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// @title		Pizzeria
// @version		1.0
// @description	Takes pizza orders, prices them and streams checkouts live.
// @host		localhost:8080
// @BasePath	/
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

	slog.InfoContext(ctx, "Launching pizzeria")

	slog.InfoContext(ctx, "Loading config")
	settings, err := LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", slog.Any("err", err))
		retcode = 1
		return
	}

	slog.InfoContext(ctx, "Setting up opentelemetry")
	otelShutdown, err := telemetry.SetupOTelSDK(ctx, settings.App, settings.OpenTelemetry)
	if err != nil {
		slog.Error("failed to setup telemetry", slog.Any("err", err))
		retcode = 1
		return
	}

	defer func() {
		err = errors.Join(err, otelShutdown(context.Background()))
		if err != nil {
			slog.ErrorContext(
				ctx,
				"failed to shutdown opentelemetry providers",
				slog.Any("err", err),
			)
			retcode = 1
		}
	}()

	var (
		nc             *nats.Conn
		orderPubSubber OrderPubSubber
		checks         []healthgo.Config
	)
	if settings.Nats.Enabled {
		slog.InfoContext(ctx, "Connecting to NATS server")
		nc, err = settings.Nats.GetNatsClient()
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect to NATS server", slog.Any("err", err))
			retcode = 1
			return
		}
		defer nc.Close()

		orderPubSubber = NewNATSOrderPubSubber(nc, settings.Nats.Subject, settings.Live.BufferSize)
		checks = append(checks, healthgo.Config{
			Name: "nats",
			Check: func(ctx context.Context) error {
				if !nc.IsConnected() {
					return errors.New("NATS connection is not active")
				}
				return nil
			},
		})
	} else {
		slog.InfoContext(ctx, "NATS disabled, keeping live orders in process")
		orderPubSubber = NewGoChannelOrderPubSubber(settings.Live.BufferSize)
	}

	slog.InfoContext(ctx, "Setting up health checker")
	healthChecker, err := healthgo.New(
		healthgo.WithComponent(healthgo.Component{
			Name:    settings.App.Name,
			Version: settings.App.Version,
		}),
		healthgo.WithChecks(checks...),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create health checker", slog.Any("err", err))
		retcode = 1
		return
	}

	orders, err := order.NewService(
		pizza.DefaultPriceList(),
		order.WithCheckoutPublisher(checkoutPublisher{pubsub: orderPubSubber}),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create order service", slog.Any("err", err))
		retcode = 1
		return
	}

	errChan := make(chan error, 2)
	server := echo.New()

	NewMainHandler(server, settings, orders, order.NewCounter(), orderPubSubber, healthChecker)
	server.GET("/swagger/*", echoSwagger.WrapHandler)
	pprof.Register(server)

	slog.InfoContext(ctx, "Creating gRPC health server")
	grpcServer := pacchetto.CreateGRPCServer()
	healthcheck := health.NewServer()
	healthgrpc.RegisterHealthServer(grpcServer, healthcheck)
	if settings.GRPCServer.EnableReflection {
		reflection.Register(grpcServer)
	}

	go func() {
		// asynchronously inspect dependencies and toggle serving status as needed
		sleepDuration := time.Duration(settings.GRPCServer.AsyncHealthIntervalInSeconds) * time.Second
		system := ""

		for {
			status := healthpb.HealthCheckResponse_SERVING
			if nc != nil && !nc.IsConnected() {
				status = healthpb.HealthCheckResponse_NOT_SERVING
			}
			healthcheck.SetServingStatus(system, status)

			select {
			case <-ctx.Done():
				return
			case <-time.After(sleepDuration):
			}
		}
	}()

	lis, err := net.Listen("tcp", net.JoinHostPort(settings.GRPCServer.Host, strconv.Itoa(settings.GRPCServer.Port)))
	if err != nil {
		slog.ErrorContext(ctx, "failed to listen", slog.Any("err", err))
		retcode = 1
		return
	}

	go func() {
		slog.InfoContext(ctx, "Starting gRPC server", slog.Any("addr", lis.Addr()))
		if err := grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	go func() {
		slog.InfoContext(ctx, "listening for requests", slog.String("ip", settings.HTTP.IP), slog.String("port", settings.HTTP.Port))
		errChan <- server.Start(net.JoinHostPort(settings.HTTP.IP, settings.HTTP.Port))
	}()

	select {
	case err = <-errChan:
		slog.ErrorContext(ctx, "error when running server", slog.Any("err", err))
		retcode = 1
		grpcServer.Stop()
		return
	case <-ctx.Done():
		// Wait for first Signal arrives
	}

	healthcheck.Shutdown()
	grpcServer.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown gracefully the server", slog.Any("err", err))
	}
}
