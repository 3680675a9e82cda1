package demo

import (
	"context"
	"math"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// EchoServer is a reference EchoHandler: it records the last message
// seen by Say (so tests and the CLI can assert on it) and echoes n back
// from Ping.
type EchoServer struct {
	mu       deadlock.Mutex
	lastSaid string
	logger   *logrus.Entry
}

// NewEchoServer returns an EchoServer. logger may be nil.
func NewEchoServer(logger *logrus.Entry) *EchoServer {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &EchoServer{logger: logger}
}

func (s *EchoServer) Say(ctx context.Context, msg string) {
	s.mu.Lock()
	s.lastSaid = msg
	s.mu.Unlock()
	s.logger.WithField("msg", msg).Debug("Echo.Say")
}

// LastSaid returns the most recent message passed to Say.
func (s *EchoServer) LastSaid() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaid
}

func (s *EchoServer) Ping(ctx context.Context, n int32) int32 {
	return n
}

// CounterServer is a reference CounterHandler holding a running total
// that refuses to overflow int32.
type CounterServer struct {
	mu     deadlock.Mutex
	total  int32
	logger *logrus.Entry
}

// NewCounterServer returns a CounterServer starting at zero. logger may
// be nil.
func NewCounterServer(logger *logrus.Entry) *CounterServer {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &CounterServer{logger: logger}
}

func (s *CounterServer) Incr(ctx context.Context, by int32) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := int64(s.total) + int64(by)
	if sum > math.MaxInt32 || sum < math.MinInt32 {
		s.logger.WithField("by", by).Warn("Counter.Incr would overflow")
		return 0, ErrOverflow
	}
	s.total = int32(sum)
	return s.total, nil
}

// Total returns the current running total.
func (s *CounterServer) Total() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}
