package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/pwzxxm-student/birpc/demo"
	"github.com/pwzxxm-student/birpc/endpoint"
)

func TestLengthPrefixRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 255, 65535, maxPrefixedLen} {
		for _, closeConn := range []bool{false, true} {
			b, err := encodeLengthPrefix(n, closeConn)
			if err != nil {
				t.Fatalf("encode(%d, %v): %v", n, closeConn, err)
			}
			gotN, gotClose := decodeLengthPrefix(b)
			if gotN != n || gotClose != closeConn {
				t.Fatalf("decode(encode(%d, %v)) = (%d, %v)", n, closeConn, gotN, gotClose)
			}
		}
	}
}

func TestEncodeLengthPrefixTooLong(t *testing.T) {
	if _, err := encodeLengthPrefix(maxPrefixedLen+1, false); err == nil {
		t.Fatal("expected ErrMessageTooLong")
	}
}

func TestConnSendServeOverPipe(t *testing.T) {
	reg, err := demo.NewRegistry()
	if err != nil {
		t.Fatal(err)
	}

	clientNC, serverNC := net.Pipe()

	serverEp := endpoint.New(reg, nil)
	echoServer := demo.NewEchoServer(nil)
	if err := serverEp.RegisterHandler(demo.BindEcho(echoServer)); err != nil {
		t.Fatal(err)
	}

	clientEp := endpoint.New(reg, nil)

	serverConn := NewConn(serverNC, serverEp, nil)
	clientConn := NewConn(clientNC, clientEp, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go serverConn.Serve(ctx)
	go clientConn.Serve(ctx)

	proxy := demo.NewEchoProxy(clientEp)
	if err := proxy.Say("over the wire"); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for echoServer.LastSaid() != "over the wire" && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := echoServer.LastSaid(); got != "over the wire" {
		t.Fatalf("LastSaid() = %q, want %q", got, "over the wire")
	}

	f, err := proxy.Ping(7)
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan struct{})
	var result int32
	f.OnComplete(func(v int32) {
		result = v
		close(done)
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Ping response")
	}
	if result != 7 {
		t.Fatalf("Ping(7) -> %d, want 7", result)
	}

	clientConn.Close()
	serverConn.Close()
}

func TestListenDialEndToEnd(t *testing.T) {
	reg, err := demo.NewRegistry()
	if err != nil {
		t.Fatal(err)
	}

	counterServer := demo.NewCounterServer(nil)
	ln, err := Listen("127.0.0.1:0", func() *endpoint.Endpoint {
		ep := endpoint.New(reg, nil)
		if err := ep.RegisterHandler(demo.BindCounter(counterServer)); err != nil {
			t.Error(err)
		}
		return ep
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ln.Serve(ctx)

	clientEp := endpoint.New(reg, nil)
	conn, err := Dial(ctx, ln.Addr().String(), clientEp, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	proxy := demo.NewCounterProxy(clientEp)
	f, err := proxy.Incr(3)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	var result int32
	var resultErr error
	f.OnResult(func(v int32, err error) {
		result, resultErr = v, err
		close(done)
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Incr response")
	}
	if resultErr != nil || result != 3 {
		t.Fatalf("Incr(3) -> %d, %v", result, resultErr)
	}
}
