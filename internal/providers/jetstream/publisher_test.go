package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsgo "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memearena/arena/internal/adapter"
	"github.com/memearena/arena/internal/broadcast"
	"github.com/memearena/arena/internal/domain"
	"github.com/memearena/arena/internal/logger"
	"github.com/memearena/arena/internal/mocks"
	"github.com/memearena/arena/internal/providers/jetstream"
)

type testPublisherMocks struct {
	ctrl      *gomock.Controller
	natsJS    *mocks.MockNatsJetStream
	conn      *mocks.MockNatsConn
	js        *mocks.MockJetStream
	clock     *mocks.MockClock
	publisher broadcast.Broadcaster
}

var testPublishTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// setupTestPublisher wires a publisher to mocked NATS seams
func setupTestPublisher(t *testing.T, cfg jetstream.Config) *testPublisherMocks {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{Debug: true})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	tm := &testPublisherMocks{
		ctrl:   ctrl,
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
		clock:  mocks.NewMockClock(ctrl),
	}

	tm.clock.EXPECT().Now().Return(testPublishTime).AnyTimes()
	tm.natsJS.EXPECT().
		Connect(cfg.URL, gomock.Any()).
		Return(tm.conn, tm.js, nil)

	tm.publisher, err = jetstream.NewPublisher(cfg, tm.natsJS, adapter.NewJSON(), tm.clock)
	require.NoError(t, err)

	return tm
}

func tearDownTestPublisher(tm *testPublisherMocks) {
	tm.ctrl.Finish()
}

func TestNewPublisher_ConnectFailure(t *testing.T) {
	err := logger.Initialize(logger.Config{Debug: true})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(nil, nil, errors.New("connection refused"))

	_, err = jetstream.NewPublisher(jetstream.Config{URL: "nats://localhost:4222"},
		natsJS, adapter.NewJSON(), mocks.NewMockClock(ctrl))
	assert.Error(t, err)
}

func TestPublisher_Publish(t *testing.T) {
	tm := setupTestPublisher(t, jetstream.Config{
		URL:           "nats://localhost:4222",
		SubjectPrefix: "arena",
	})
	defer tearDownTestPublisher(tm)

	session := map[string]interface{}{"id": float64(42)}

	tm.js.EXPECT().
		Publish(gomock.Any(), "arena.new-session", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...natsgo.PublishOpt) (*natsgo.PubAck, error) {
			var event domain.ArenaEvent
			require.NoError(t, json.Unmarshal(data, &event))
			assert.NotEmpty(t, event.EventID)
			assert.Equal(t, domain.EventNewSession, event.Type)
			assert.Equal(t, testPublishTime, event.Timestamp.UTC())
			assert.Equal(t, session, event.Data)
			return &natsgo.PubAck{}, nil
		})

	err := tm.publisher.Publish(context.Background(), domain.EventNewSession, session)
	assert.NoError(t, err)
}

func TestPublisher_DefaultSubjectPrefix(t *testing.T) {
	tm := setupTestPublisher(t, jetstream.Config{URL: "nats://localhost:4222"})
	defer tearDownTestPublisher(tm)

	tm.js.EXPECT().
		Publish(gomock.Any(), "arena.meme-vote-update", gomock.Any()).
		Return(&natsgo.PubAck{}, nil)

	err := tm.publisher.Publish(context.Background(), domain.EventMemeVoteUpdate, nil)
	assert.NoError(t, err)
}

func TestPublisher_PublishFailure(t *testing.T) {
	tm := setupTestPublisher(t, jetstream.Config{
		URL:           "nats://localhost:4222",
		SubjectPrefix: "arena",
	})
	defer tearDownTestPublisher(tm)

	tm.js.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("no responders"))

	err := tm.publisher.Publish(context.Background(), domain.EventNewMeme, nil)
	assert.Error(t, err)
}

func TestPublisher_Close(t *testing.T) {
	tm := setupTestPublisher(t, jetstream.Config{
		URL:           "nats://localhost:4222",
		SubjectPrefix: "arena",
	})
	defer tearDownTestPublisher(tm)

	tm.conn.EXPECT().Close()

	tm.publisher.Close()
}
