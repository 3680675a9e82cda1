package demo

import (
	"math"
	"testing"

	"github.com/pwzxxm-student/birpc/endpoint"
)

// wirePair connects two endpoints back to back: each side's outbound
// bytes are fed synchronously into the other side's ReceiveData, as if
// they were joined by an in-memory pipe with no latency.
func wirePair(t *testing.T, client, server *endpoint.Endpoint) {
	t.Helper()
	client.SetOnDataOut(func(buf []byte) {
		cp := append([]byte(nil), buf...)
		if err := server.ReceiveData(cp, 0, len(cp), nil); err != nil {
			t.Errorf("server dispatch: %v", err)
		}
	})
	server.SetOnDataOut(func(buf []byte) {
		cp := append([]byte(nil), buf...)
		if err := client.ReceiveData(cp, 0, len(cp), nil); err != nil {
			t.Errorf("client dispatch: %v", err)
		}
	})
}

func TestEchoSayAndPing(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	client := endpoint.New(reg, nil)
	server := endpoint.New(reg, nil)

	echoServer := NewEchoServer(nil)
	if err := server.RegisterHandler(BindEcho(echoServer)); err != nil {
		t.Fatal(err)
	}
	wirePair(t, client, server)

	proxy := NewEchoProxy(client)
	if err := proxy.Say("hello"); err != nil {
		t.Fatal(err)
	}
	if got := echoServer.LastSaid(); got != "hello" {
		t.Fatalf("LastSaid() = %q, want hello", got)
	}

	f, err := proxy.Ping(99)
	if err != nil {
		t.Fatal(err)
	}
	if !f.IsComplete() {
		t.Fatal("expected Ping's future to complete synchronously over the wired pair")
	}
	v, err := f.Result()
	if err != nil || v != 99 {
		t.Fatalf("Result() = %d, %v", v, err)
	}
}

func TestCounterIncrSuccessAndOverflow(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	client := endpoint.New(reg, nil)
	server := endpoint.New(reg, nil)

	counterServer := NewCounterServer(nil)
	if err := server.RegisterHandler(BindCounter(counterServer)); err != nil {
		t.Fatal(err)
	}
	wirePair(t, client, server)

	proxy := NewCounterProxy(client)

	f1, err := proxy.Incr(10)
	if err != nil {
		t.Fatal(err)
	}
	v, err := f1.Result()
	if err != nil || v != 10 {
		t.Fatalf("first Incr: Result() = %d, %v", v, err)
	}

	f2, err := proxy.Incr(5)
	if err != nil {
		t.Fatal(err)
	}
	v, err = f2.Result()
	if err != nil || v != 15 {
		t.Fatalf("second Incr: Result() = %d, %v", v, err)
	}

	f3, err := proxy.Incr(math.MaxInt32)
	if err != nil {
		t.Fatal(err)
	}
	if !f3.IsError() {
		t.Fatal("expected overflowing Incr to complete as an error")
	}
	if _, err := f3.Result(); err == nil {
		t.Fatal("expected a non-nil error from Result() after overflow")
	}
	if got := counterServer.Total(); got != 15 {
		t.Fatalf("Total() after failed Incr = %d, want unchanged 15", got)
	}
}
