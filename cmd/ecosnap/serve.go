package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/KirkDiggler/ecosnap-api/internal/errors"
	"github.com/KirkDiggler/ecosnap-api/internal/repositories/collection"
)

// CollectionService is the health service name tracking storage
const CollectionService = "ecosnap.Collection"

const (
	gracefulStopTimeout = 30 * time.Second
	storageProbeEvery   = 30 * time.Second
)

var grpcPortFlag int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gRPC health server",
	Long: `Serve loads the player's collection and reports gRPC health. The
collection service stays SERVING while storage is reachable.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&grpcPortFlag, "port", 0, "gRPC server port (env ECOSNAP_GRPC_PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			slog.Info("Received shutdown signal, gracefully stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	return withApp(ctx, func(a *app) error {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to listen")
		}

		srv := newGRPCServer(slog.Default())

		healthServer := health.NewServer()
		grpc_health_v1.RegisterHealthServer(srv, healthServer)
		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
		healthServer.SetServingStatus(CollectionService, grpc_health_v1.HealthCheckResponse_SERVING)

		reflection.Register(srv)

		go probeStorage(ctx, a, healthServer)

		errChan := make(chan error, 1)
		go func() {
			slog.Info("gRPC server starting", "port", cfg.GRPCPort, "player_id", cfg.PlayerID, "storage", cfg.Storage)
			if err := srv.Serve(lis); err != nil {
				errChan <- errors.Wrap(err, "failed to serve")
			}
		}()

		select {
		case <-ctx.Done():
			healthServer.Shutdown()
			stopServer(srv)
			return nil
		case err := <-errChan:
			return err
		}
	})
}

func newGRPCServer(logger *slog.Logger) *grpc.Server {
	logFunc := interceptorLogger(logger)
	recoveryOpt := grpc_recovery.WithRecoveryHandler(func(p any) error {
		slog.Error("Recovered from panic", "panic", p)
		return errors.ToGRPCError(errors.Internalf("internal error: %v", p))
	})

	return grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logFunc),
			grpc_recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logFunc),
			grpc_recovery.StreamServerInterceptor(recoveryOpt),
		),
	)
}

func stopServer(srv *grpc.Server) {
	slog.Info("Shutting down gRPC server")

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-time.After(gracefulStopTimeout):
		slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		slog.Info("Server stopped gracefully")
	}
}

// probeStorage flips the collection service to NOT_SERVING while the
// repository cannot be read
func probeStorage(ctx context.Context, a *app, healthServer *health.Server) {
	ticker := time.NewTicker(storageProbeEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			healthServer.SetServingStatus(CollectionService, storageStatus(ctx, a.repo, a.cfg.PlayerID))
		}
	}
}

func storageStatus(ctx context.Context, repo collection.Repository, playerID string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	_, err := repo.Load(ctx, collection.LoadInput{PlayerID: playerID})
	if err != nil && !errors.IsNotFound(err) {
		slog.Warn("Collection storage probe failed", "player_id", playerID, "error", err)
		return grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	return grpc_health_v1.HealthCheckResponse_SERVING
}

func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}
