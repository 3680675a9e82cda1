package transport

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pwzxxm-student/birpc/endpoint"
)

// EndpointFactory builds and configures a fresh Endpoint for a newly
// accepted connection — typically registering one or more handlers via
// endpoint.RegisterHandler. Mirrors teacher TCPNetwork.NewLocalNode's
// per-node gorpc.Server wiring, generalized to one Endpoint per
// connection rather than one gorpc server per process.
type EndpointFactory func() *endpoint.Endpoint

// Listener accepts TCP connections and spawns one Endpoint/Conn pair per
// connection, each served on its own goroutine.
type Listener struct {
	ln      net.Listener
	factory EndpointFactory
	logger  *logrus.Entry
}

// Listen starts listening on addr and returns a Listener ready to Serve.
func Listen(addr string, factory EndpointFactory, logger *logrus.Entry) (*Listener, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: listening on %s", addr)
	}
	return &Listener{ln: ln, factory: factory, logger: logger}, nil
}

// Addr returns the listener's bound address.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Close stops accepting new connections.
func (l *Listener) Close() error {
	return l.ln.Close()
}

// Serve accepts connections until ctx is done or Close is called,
// running each connection's Conn.Serve on its own goroutine.
func (l *Listener) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = l.ln.Close()
	}()

	for {
		nc, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, "transport: accept")
		}
		ep := l.factory()
		conn := NewConn(nc, ep, l.logger)
		go func() {
			if err := conn.Serve(ctx); err != nil {
				l.logger.WithError(err).WithField("remote", nc.RemoteAddr()).Warn("transport: connection closed")
			}
		}()
	}
}

// Dial connects to addr, wires ep as the connection's Endpoint, and
// starts the read loop on a new goroutine. It returns the Conn so the
// caller can Send/Close explicitly; ep's proxies are usable as soon as
// Dial returns.
func Dial(ctx context.Context, addr string, ep *endpoint.Endpoint, logger *logrus.Entry) (*Conn, error) {
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: dialing %s", addr)
	}
	conn := NewConn(nc, ep, logger)
	go func() {
		if err := conn.Serve(ctx); err != nil {
			conn.logger.WithError(err).Warn("transport: connection closed")
		}
	}()
	return conn, nil
}
