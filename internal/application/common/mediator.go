package common

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// Request is a command or query; its dynamic type selects the handler
type Request interface{}

type Response interface{}

// RequestHandler handles one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware wraps every dispatch; call next to continue the chain
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// ErrNoHandler is returned by Send for request types nobody registered
var ErrNoHandler = errors.New("no handler registered")

// Mediator decouples the CLI and HTTP adapters from the application handlers
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Register(requestType reflect.Type, handler RequestHandler) error
	Use(middleware Middleware)
}

// mediator is safe for concurrent Send; Register and Use are meant for startup
type mediator struct {
	mu          sync.RWMutex
	handlers    map[reflect.Type]RequestHandler
	middlewares []Middleware
}

func NewMediator() Mediator {
	return &mediator{handlers: make(map[reflect.Type]RequestHandler)}
}

func (m *mediator) Register(requestType reflect.Type, handler RequestHandler) error {
	switch {
	case requestType == nil:
		return errors.New("request type cannot be nil")
	case handler == nil:
		return fmt.Errorf("nil handler for %s", requestType)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.handlers[requestType]; taken {
		return fmt.Errorf("handler already registered for type %s", requestType)
	}
	m.handlers[requestType] = handler
	return nil
}

// Use appends a middleware; the first registered runs outermost
func (m *mediator) Use(middleware Middleware) {
	m.mu.Lock()
	m.middlewares = append(m.middlewares, middleware)
	m.mu.Unlock()
}

func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, errors.New("request cannot be nil")
	}

	m.mu.RLock()
	handler, ok := m.handlers[reflect.TypeOf(request)]
	chain := m.middlewares
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w for type %T", ErrNoHandler, request)
	}

	return wrap(handler.Handle, chain)(ctx, request)
}

func wrap(h HandlerFunc, chain []Middleware) HandlerFunc {
	for i := len(chain) - 1; i >= 0; i-- {
		mw, next := chain[i], h
		h = func(ctx context.Context, req Request) (Response, error) {
			return mw(ctx, req, next)
		}
	}
	return h
}

// RegisterHandler registers handler for the request type T
func RegisterHandler[T Request](m Mediator, handler RequestHandler) error {
	return m.Register(reflect.TypeOf((*T)(nil)).Elem(), handler)
}

// LoggingMiddleware logs each request with its duration and outcome. Failures
// log at warn, successes at debug.
func LoggingMiddleware(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
	start := time.Now()
	resp, err := next(ctx, request)

	attrs := []any{"request", fmt.Sprintf("%T", request), "duration_ms", time.Since(start).Milliseconds()}
	if id := RequestIDFromContext(ctx); id != "" {
		attrs = append(attrs, "request_id", id)
	}
	logger := LoggerFromContext(ctx)
	if err != nil {
		logger.Warn("request failed", append(attrs, "error", err)...)
		return resp, err
	}
	logger.Debug("request handled", attrs...)
	return resp, nil
}
