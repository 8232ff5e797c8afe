package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/KirkDiggler/ecosnap-api/internal/errors"
)

var (
	healthServerAddr string
	healthTimeout    time.Duration
	healthService    string
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check a running ecosnap server",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().StringVar(&healthServerAddr, "server", "localhost:50051", "gRPC server address")
	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 5*time.Second, "request timeout")
	healthCmd.Flags().StringVar(&healthService, "service", CollectionService, "service to check; empty checks the server")
}

func runHealth(cmd *cobra.Command, _ []string) error {
	conn, err := grpc.NewClient(healthServerAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to connect to server")
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{
		Service: healthService,
	})
	if err != nil {
		return errors.FromGRPCError(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.GetStatus().String())
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return errors.Unavailable("server is not serving")
	}
	return nil
}
