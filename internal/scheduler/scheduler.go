package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/memearena/arena/internal/adapter"
)

// Header names used on signed callback requests
const (
	HeaderSignature = "X-Arena-Signature"
	HeaderTimestamp = "X-Arena-Timestamp"
	HeaderID        = "X-Arena-Callback-ID"
)

// CallbackPayload is the body delivered back to the arena when a schedule fires
type CallbackPayload struct {
	// CallbackID is a unique identifier for this schedule (ULID for time-sortable uniqueness)
	CallbackID string `json:"callback_id"`
	// Action is the transition the callback drives (e.g., "voting-end")
	Action string `json:"action"`
	// SessionID is the arena session the callback targets
	SessionID uint64 `json:"session_id"`
}

// ScheduleRequest asks the external scheduler to deliver a callback after Delay
type ScheduleRequest struct {
	CallbackURL string
	Action      string
	SessionID   uint64
	Delay       time.Duration
}

// ScheduleResult reports when the callback will fire
type ScheduleResult struct {
	CallbackID  string
	ScheduledAt time.Time
}

// Scheduler schedules one-shot HTTP callbacks through a durable external
// service. Delivery is at-least-once; callback handlers must be idempotent.
//
//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler.go -package=mocks -mock_names=Scheduler=MockScheduler
type Scheduler interface {
	Schedule(ctx context.Context, req ScheduleRequest) (*ScheduleResult, error)
}

type httpScheduler struct {
	endpoint   string
	secret     string
	httpClient adapter.HTTPClient
	jsonUtil   adapter.JSON
	clock      adapter.Clock
}

// NewHTTPScheduler creates a scheduler that registers callbacks with an external
// scheduling service over HTTP
func NewHTTPScheduler(
	endpoint string,
	secret string,
	httpClient adapter.HTTPClient,
	jsonUtil adapter.JSON,
	clock adapter.Clock,
) Scheduler {
	return &httpScheduler{
		endpoint:   endpoint,
		secret:     secret,
		httpClient: httpClient,
		jsonUtil:   jsonUtil,
		clock:      clock,
	}
}

// scheduleServiceRequest is the wire format the scheduling service accepts
type scheduleServiceRequest struct {
	CallbackURL  string          `json:"callback_url"`
	Payload      CallbackPayload `json:"payload"`
	DelaySeconds int64           `json:"delay_seconds"`
	Signature    string          `json:"signature"`
	Timestamp    int64           `json:"timestamp"`
}

type scheduleServiceResponse struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

// Schedule registers a one-shot callback. The payload is signed so the callback
// handler can authenticate the delivery when it comes back.
func (s *httpScheduler) Schedule(ctx context.Context, req ScheduleRequest) (*ScheduleResult, error) {
	now := s.clock.Now()
	callbackID := ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()

	payload := CallbackPayload{
		CallbackID: callbackID,
		Action:     req.Action,
		SessionID:  req.SessionID,
	}

	payloadBody, err := s.jsonUtil.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal callback payload: %w", err)
	}

	timestamp := now.Unix()
	body, err := s.jsonUtil.Marshal(scheduleServiceRequest{
		CallbackURL:  req.CallbackURL,
		Payload:      payload,
		DelaySeconds: int64(req.Delay / time.Second),
		Signature:    SignPayload(s.secret, timestamp, callbackID, payloadBody),
		Timestamp:    timestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schedule request: %w", err)
	}

	respBody, err := s.httpClient.Post(ctx, s.endpoint, "application/json", bytes.NewReader(body), map[string]string{
		HeaderID:        callbackID,
		HeaderTimestamp: strconv.FormatInt(timestamp, 10),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule callback: %w", err)
	}

	var resp scheduleServiceResponse
	if err := s.jsonUtil.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode schedule response: %w", err)
	}

	scheduledAt := resp.ScheduledAt
	if scheduledAt.IsZero() {
		scheduledAt = now.Add(req.Delay)
	}

	return &ScheduleResult{
		CallbackID:  callbackID,
		ScheduledAt: scheduledAt,
	}, nil
}
