package main

import (
	"context"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/KirkDiggler/ecosnap-api/internal/errors"
	"github.com/KirkDiggler/ecosnap-api/internal/repositories/collection"
	collectionmock "github.com/KirkDiggler/ecosnap-api/internal/repositories/collection/mock"
)

type ServeTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *collectionmock.MockRepository
	ctx      context.Context
}

func (s *ServeTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = collectionmock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()
}

func (s *ServeTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServeTestSuite) TestStorageStatus() {
	s.Run("loaded collection is serving", func() {
		s.mockRepo.EXPECT().
			Load(s.ctx, collection.LoadInput{PlayerID: "p1"}).
			Return(&collection.LoadOutput{Document: collection.NewDocument()}, nil)

		s.Equal(grpc_health_v1.HealthCheckResponse_SERVING, storageStatus(s.ctx, s.mockRepo, "p1"))
	})

	s.Run("missing collection is serving", func() {
		s.mockRepo.EXPECT().
			Load(s.ctx, collection.LoadInput{PlayerID: "p1"}).
			Return(nil, errors.NotFound("collection not found"))

		s.Equal(grpc_health_v1.HealthCheckResponse_SERVING, storageStatus(s.ctx, s.mockRepo, "p1"))
	})

	s.Run("storage failure is not serving", func() {
		s.mockRepo.EXPECT().
			Load(s.ctx, collection.LoadInput{PlayerID: "p1"}).
			Return(nil, errors.Unavailable("connection refused"))

		s.Equal(grpc_health_v1.HealthCheckResponse_NOT_SERVING, storageStatus(s.ctx, s.mockRepo, "p1"))
	})
}

func (s *ServeTestSuite) TestHealthOverGRPC() {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)

	srv := newGRPCServer(slog.Default())
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus(CollectionService, grpc_health_v1.HealthCheckResponse_SERVING)

	go func() {
		_ = srv.Serve(lis)
	}()
	defer srv.Stop()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()

	client := grpc_health_v1.NewHealthClient(conn)

	resp, err := client.Check(s.ctx, &grpc_health_v1.HealthCheckRequest{Service: CollectionService})
	s.Require().NoError(err)
	s.Equal(grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())

	healthServer.SetServingStatus(CollectionService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	resp, err = client.Check(s.ctx, &grpc_health_v1.HealthCheckRequest{Service: CollectionService})
	s.Require().NoError(err)
	s.Equal(grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	_, err = client.Check(s.ctx, &grpc_health_v1.HealthCheckRequest{Service: "unknown"})
	s.True(errors.IsNotFound(errors.FromGRPCError(err)))
}

func TestServeTestSuite(t *testing.T) {
	suite.Run(t, new(ServeTestSuite))
}
