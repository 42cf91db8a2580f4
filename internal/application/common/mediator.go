package common

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// Request is a maintenance command or query. Handlers are keyed by the
// request's concrete type, so requests are always passed as pointers to
// their command/query structs.
type Request interface{}

// Response is whatever the handler produced for its request.
type Response interface{}

// RequestHandler processes one request type.
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// Mediator routes commands and queries to the single handler wired for
// their type. The CLI and the daemon both talk to the campaign through it,
// so handlers never reach into each other directly.
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Register(requestType reflect.Type, handler RequestHandler) error
}

type mediator struct {
	mu       sync.RWMutex
	handlers map[reflect.Type]RequestHandler
}

// NewMediator creates an empty dispatch table. Wiring happens once at
// startup; dispatch may come from the tick loop and the CLI concurrently.
func NewMediator() Mediator {
	return &mediator{handlers: make(map[reflect.Type]RequestHandler)}
}

func (m *mediator) Register(requestType reflect.Type, handler RequestHandler) error {
	if requestType == nil {
		return fmt.Errorf("cannot wire a handler without a request type")
	}
	if handler == nil {
		return fmt.Errorf("cannot wire a nil handler for %s", requestType)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.handlers[requestType]; taken {
		return fmt.Errorf("request type %s is already wired", requestType)
	}
	m.handlers[requestType] = handler
	return nil
}

func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, fmt.Errorf("cannot dispatch a nil request")
	}

	requestType := reflect.TypeOf(request)
	m.mu.RLock()
	handler, wired := m.handlers[requestType]
	m.mu.RUnlock()
	if !wired {
		return nil, fmt.Errorf("no handler wired for request type %s", requestType)
	}
	return handler.Handle(ctx, request)
}

// RegisterHandler wires a handler using the request's type parameter, so
// startup wiring reads as one line per command.
func RegisterHandler[T Request](m Mediator, handler RequestHandler) error {
	var zero T
	return m.Register(reflect.TypeOf(zero), handler)
}
