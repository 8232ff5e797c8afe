package collection_test

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
	"github.com/KirkDiggler/ecosnap-api/internal/repositories/collection"
	collectionmock "github.com/KirkDiggler/ecosnap-api/internal/repositories/collection/mock"
)

type AsyncWriterTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *collectionmock.MockRepository
	ctx      context.Context
}

func TestAsyncWriterSuite(t *testing.T) {
	suite.Run(t, new(AsyncWriterTestSuite))
}

func (s *AsyncWriterTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = collectionmock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()
}

func (s *AsyncWriterTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func docWithParty(ids ...entities.SpeciesID) *collection.Document {
	doc := collection.NewDocument()
	doc.Party = ids
	return doc
}

func (s *AsyncWriterTestSuite) TestConfigValidation() {
	s.Run("nil config", func() {
		_, err := collection.NewAsyncWriter(nil)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("missing fields", func() {
		_, err := collection.NewAsyncWriter(&collection.WriterConfig{QueueSize: -1})
		s.Require().Error(err)
		s.Contains(err.Error(), "Repository")
		s.Contains(err.Error(), "PlayerID")
		s.Contains(err.Error(), "QueueSize")
	})
}

func (s *AsyncWriterTestSuite) TestWritesInOrderAndDrainsOnClose() {
	repo := collection.NewInMemory()
	writer, err := collection.NewAsyncWriter(&collection.WriterConfig{
		Repository: repo,
		PlayerID:   testPlayerID,
	})
	s.Require().NoError(err)

	writer.Persist(docWithParty("a"))
	writer.Persist(docWithParty("a", "b"))
	writer.Persist(docWithParty("a", "b", "c"))

	s.Require().NoError(writer.Close(s.ctx))

	out, err := repo.Load(s.ctx, collection.LoadInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Equal([]entities.SpeciesID{"a", "b", "c"}, out.Document.Party)
}

func (s *AsyncWriterTestSuite) TestFailedSaveDoesNotStopWriter() {
	var saved []*collection.Document
	gomock.InOrder(
		s.mockRepo.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			Return(nil, stderrors.New("connection refused")),
		s.mockRepo.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input collection.SaveInput) (*collection.SaveOutput, error) {
				saved = append(saved, input.Document)
				return &collection.SaveOutput{}, nil
			}),
	)

	writer, err := collection.NewAsyncWriter(&collection.WriterConfig{
		Repository: s.mockRepo,
		PlayerID:   testPlayerID,
	})
	s.Require().NoError(err)

	writer.Persist(docWithParty("a"))
	writer.Persist(docWithParty("b"))
	s.Require().NoError(writer.Close(s.ctx))

	s.Require().Len(saved, 1)
	s.Equal([]entities.SpeciesID{"b"}, saved[0].Party)
}

func (s *AsyncWriterTestSuite) TestFullQueueKeepsNewestSnapshot() {
	started := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	var saved [][]entities.SpeciesID
	first := true

	s.mockRepo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input collection.SaveInput) (*collection.SaveOutput, error) {
			mu.Lock()
			saved = append(saved, input.Document.Party)
			wasFirst := first
			first = false
			mu.Unlock()

			if wasFirst {
				close(started)
				<-release
			}
			return &collection.SaveOutput{}, nil
		}).
		Times(2)

	writer, err := collection.NewAsyncWriter(&collection.WriterConfig{
		Repository: s.mockRepo,
		PlayerID:   testPlayerID,
		QueueSize:  1,
	})
	s.Require().NoError(err)

	writer.Persist(docWithParty("first"))
	<-started

	writer.Persist(docWithParty("second"))
	writer.Persist(docWithParty("third"))
	writer.Persist(docWithParty("fourth"))
	close(release)

	s.Require().NoError(writer.Close(s.ctx))

	mu.Lock()
	defer mu.Unlock()
	s.Equal([][]entities.SpeciesID{{"first"}, {"fourth"}}, saved)
}

func (s *AsyncWriterTestSuite) TestPersistAfterCloseIsIgnored() {
	writer, err := collection.NewAsyncWriter(&collection.WriterConfig{
		Repository: s.mockRepo,
		PlayerID:   testPlayerID,
	})
	s.Require().NoError(err)
	s.Require().NoError(writer.Close(s.ctx))

	// No Save expectation: a call would fail the controller
	writer.Persist(docWithParty("late"))
	s.Require().NoError(writer.Close(s.ctx))
}

func (s *AsyncWriterTestSuite) TestCloseHonorsDeadline() {
	release := make(chan struct{})
	defer close(release)

	s.mockRepo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ collection.SaveInput) (*collection.SaveOutput, error) {
			<-release
			return &collection.SaveOutput{}, nil
		})

	writer, err := collection.NewAsyncWriter(&collection.WriterConfig{
		Repository: s.mockRepo,
		PlayerID:   testPlayerID,
	})
	s.Require().NoError(err)

	writer.Persist(docWithParty("slow"))

	ctx, cancel := context.WithTimeout(s.ctx, 20*time.Millisecond)
	defer cancel()

	err = writer.Close(ctx)
	s.Require().Error(err)
	s.Equal(errors.CodeDeadlineExceeded, errors.GetCode(err))
}
