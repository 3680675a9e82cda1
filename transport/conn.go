package transport

import (
	"context"
	"io"
	"net"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pwzxxm-student/birpc/endpoint"
)

// Conn pairs a net.Conn with an Endpoint: it frames outbound messages
// (wired as the Endpoint's OnDataOut) and deframes inbound ones, handing
// each whole message to Endpoint.ReceiveData in order, matching
// spec.md §5's "Transport expectations" (in-order, whole-message
// delivery).
type Conn struct {
	nc     net.Conn
	ep     *endpoint.Endpoint
	logger *logrus.Entry

	closeOnce sync.Once
	closeErr  error
}

// NewConn wraps nc, wires ep's outbound byte sink to it, and returns the
// pair. Call Serve to start the inbound read loop.
func NewConn(nc net.Conn, ep *endpoint.Endpoint, logger *logrus.Entry) *Conn {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	c := &Conn{nc: nc, ep: ep, logger: logger}
	ep.SetOnDataOut(func(buf []byte) {
		if err := c.Send(buf); err != nil {
			c.logger.WithError(err).Warn("transport: failed to send outbound message")
		}
	})
	return c
}

// Send frames and writes one message. Safe to call concurrently with
// Serve's read loop; not safe to call concurrently with itself.
func (c *Conn) Send(msg []byte) error {
	prefix, err := encodeLengthPrefix(len(msg), false)
	if err != nil {
		return err
	}
	if _, err := c.nc.Write(prefix[:]); err != nil {
		return errors.Wrap(err, "transport: writing length prefix")
	}
	if _, err := c.nc.Write(msg); err != nil {
		return errors.Wrap(err, "transport: writing message body")
	}
	return nil
}

// Serve runs the inbound read loop until the connection closes or ctx is
// done, deframing each message and handing it to the bound Endpoint.
// ReceiveData errors are logged and do not terminate the loop — a single
// malformed frame should not take down the whole connection — except
// io.EOF / closed-connection errors from the transport itself, which end
// Serve.
func (c *Conn) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var prefix [lengthPrefixLen]byte
		if _, err := io.ReadFull(c.nc, prefix[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "transport: reading length prefix")
		}
		n, closeConn := decodeLengthPrefix(prefix)

		buf := make([]byte, n)
		if _, err := io.ReadFull(c.nc, buf); err != nil {
			return errors.Wrap(err, "transport: reading message body")
		}

		if err := c.ep.ReceiveData(buf, 0, len(buf), ctx); err != nil {
			c.logger.WithError(err).Warn("transport: dispatch failed")
		}

		if closeConn {
			return c.Close()
		}
	}
}

// Close closes the underlying connection. Safe to call more than once.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.nc.Close()
	})
	return c.closeErr
}
