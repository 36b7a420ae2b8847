// Package records implements the create, read, update and delete operations
// for properties, lease agreements and maintenance requests on top of a
// types.Store.
package records

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/estate/pkg/types"
)

// Entity names used in logs and metrics.
const (
	EntityProperty    = "property"
	EntityLease       = "lease_agreement"
	EntityMaintenance = "maintenance_request"
)

// Operation names used in logs and metrics.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpGetAll = "get_all"
	OpList   = "list"
	OpGet    = "get"
)

// Recorder observes finished operations. *metrics.Recorder satisfies it.
type Recorder interface {
	Observe(entity, op string, took time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) Observe(string, string, time.Duration, error) {}

// Service runs every operation under one lock, so each operation sees and
// leaves the tables and the id counter in a consistent state.
type Service struct {
	mu    sync.Mutex
	store types.Store
	clock types.Clock
	log   logrus.FieldLogger
	rec   Recorder
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the source of created_at timestamps.
func WithClock(c types.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithLogger sets the logger operations report to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) { s.log = l }
}

// WithRecorder sets the operation metrics sink.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.rec = r }
}

// New returns a Service over an attached store.
func New(store types.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		clock: types.SystemClock{},
		log:   logrus.StandardLogger(),
		rec:   nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// now returns the created_at value for a record built at this instant.
func (s *Service) now() uint64 {
	return types.Timestamp(s.clock.Now())
}

// finish logs and records the outcome of one operation and returns err.
func (s *Service) finish(ctx context.Context, entity, op string, id *uint64, start time.Time, err error) error {
	s.rec.Observe(entity, op, time.Since(start), err)

	entry := s.entry(ctx).WithFields(logrus.Fields{"entity": entity, "op": op})
	if id != nil {
		entry = entry.WithField("id", *id)
	}
	switch {
	case err == nil:
		entry.Debug("operation ok")
	case isTyped(err):
		entry.WithError(err).Warn("operation rejected")
	default:
		entry.WithError(err).Error("operation failed")
	}
	return err
}

// entry returns the service logger tagged with the request id in ctx.
func (s *Service) entry(ctx context.Context) logrus.FieldLogger {
	if rid, ok := RequestID(ctx); ok {
		return s.log.WithField("request_id", rid)
	}
	return s.log
}

func isTyped(err error) bool {
	var e *types.Error
	return errors.As(err, &e)
}

type requestIDKey struct{}

// WithRequestID returns a context carrying the caller's request id, which
// operations attach to their log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID extracts the id stored by WithRequestID.
func RequestID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}
