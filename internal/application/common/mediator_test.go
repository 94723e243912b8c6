package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingQuery struct{ Name string }

type pingHandler struct{ calls int }

func (h *pingHandler) Handle(ctx context.Context, request Request) (Response, error) {
	h.calls++
	q := request.(*pingQuery)
	if q.Name == "" {
		return nil, errors.New("name required")
	}
	return "pong " + q.Name, nil
}

func TestMediator_SendDispatchesByType(t *testing.T) {
	// Arrange
	m := NewMediator()
	handler := &pingHandler{}
	require.NoError(t, RegisterHandler[*pingQuery](m, handler))

	// Act
	resp, err := m.Send(context.Background(), &pingQuery{Name: "KTEB"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong KTEB", resp)
	assert.Equal(t, 1, handler.calls)
}

func TestMediator_RegisterRejectsDuplicatesAndNil(t *testing.T) {
	m := NewMediator()
	require.NoError(t, RegisterHandler[*pingQuery](m, &pingHandler{}))

	assert.Error(t, RegisterHandler[*pingQuery](m, &pingHandler{}))
	assert.Error(t, m.Register(nil, &pingHandler{}))
	assert.Error(t, m.Register(reflect.TypeOf(""), nil))
}

func TestMediator_SendUnknownRequest(t *testing.T) {
	m := NewMediator()

	_, err := m.Send(context.Background(), &pingQuery{})
	assert.ErrorIs(t, err, ErrNoHandler)
	assert.ErrorContains(t, err, "*common.pingQuery")

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	// Arrange
	m := NewMediator()
	require.NoError(t, RegisterHandler[*pingQuery](m, &pingHandler{}))

	var order []string
	trace := func(name string) Middleware {
		return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
			order = append(order, name+">")
			resp, err := next(ctx, request)
			order = append(order, "<"+name)
			return resp, err
		}
	}
	m.Use(trace("outer"))
	m.Use(trace("inner"))

	// Act
	_, err := m.Send(context.Background(), &pingQuery{Name: "x"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer>", "inner>", "<inner", "<outer"}, order)
}

func TestLoggingMiddleware_LogsFailures(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := WithRequestID(WithLogger(context.Background(), logger), "req-7")

	m := NewMediator()
	m.Use(LoggingMiddleware)
	require.NoError(t, RegisterHandler[*pingQuery](m, &pingHandler{}))

	// Act
	_, okErr := m.Send(ctx, &pingQuery{Name: "x"})
	_, failErr := m.Send(ctx, &pingQuery{})

	// Assert
	require.NoError(t, okErr)
	require.Error(t, failErr)
	assert.Contains(t, buf.String(), "request handled")
	assert.Contains(t, buf.String(), "request failed")
	assert.Contains(t, buf.String(), "*common.pingQuery")
	assert.Contains(t, buf.String(), "request_id=req-7")
}

func TestLoggerFromContext_DefaultsToDiscard(t *testing.T) {
	assert.NotNil(t, LoggerFromContext(context.Background()))
	assert.Empty(t, RequestIDFromContext(context.Background()))
}
