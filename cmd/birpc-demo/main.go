// Command birpc-demo exercises the framework end to end over the TCP
// transport: "serve" hosts the Echo and Counter handlers, "call" dials a
// peer and issues one Echo.Ping through the Echo proxy. Structured the way teacher main.go
// builds its urfave/cli command tree.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	figure "github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/pwzxxm-student/birpc/demo"
	"github.com/pwzxxm-student/birpc/endpoint"
	"github.com/pwzxxm-student/birpc/rpcconfig"
	"github.com/pwzxxm-student/birpc/transport"
)

func main() {
	app := &cli.App{
		Name:  "birpc-demo",
		Usage: "demo server/client for the birpc RPC core",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "host the Echo and Counter handlers",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: "c", Usage: "address book config path", Required: true},
				},
				Action: func(c *cli.Context) error {
					return runServe(c.Path("c"))
				},
			},
			{
				Name:  "call",
				Usage: "dial a peer and issue one Echo.Ping call",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: "c", Usage: "address book config path", Required: true},
					&cli.StringFlag{Name: "peer", Usage: "peer name from the address book", Required: true},
					&cli.Int64Flag{Name: "n", Usage: "value to ping", Value: 1},
				},
				Action: func(c *cli.Context) error {
					return runCall(c.Path("c"), c.String("peer"), int32(c.Int64("n")))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func runServe(configPath string) error {
	cfg, err := rpcconfig.Load(configPath)
	if err != nil {
		return err
	}

	reg, err := demo.NewRegistry()
	if err != nil {
		return err
	}

	logger := logrus.NewEntry(logrus.StandardLogger())

	ln, err := transport.Listen(cfg.ListenAddr, func() *endpoint.Endpoint {
		ep := endpoint.New(reg, logger)
		if err := ep.RegisterHandler(demo.BindEcho(demo.NewEchoServer(logger))); err != nil {
			logger.WithError(err).Error("failed to register Echo handler")
		}
		if err := ep.RegisterHandler(demo.BindCounter(demo.NewCounterServer(logger))); err != nil {
			logger.WithError(err).Error("failed to register Counter handler")
		}
		return ep
	}, logger)
	if err != nil {
		return err
	}
	defer ln.Close()

	figure.NewFigure("birpc", "", true).Print()
	fmt.Printf("listening on %s\n", color.CyanString(ln.Addr().String()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return ln.Serve(ctx)
}

func runCall(configPath, peerName string, n int32) error {
	cfg, err := rpcconfig.Load(configPath)
	if err != nil {
		return err
	}
	addr, ok := cfg.Peers[peerName]
	if !ok {
		return errors.Errorf("no peer named %q in %s", peerName, configPath)
	}

	reg, err := demo.NewRegistry()
	if err != nil {
		return err
	}
	logger := logrus.NewEntry(logrus.StandardLogger())
	ep := endpoint.New(reg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	conn, err := transport.Dial(ctx, addr, ep, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	proxy := demo.NewEchoProxy(ep)
	f, err := proxy.Ping(n)
	if err != nil {
		return err
	}
	done := make(chan struct{})
	f.OnComplete(func(v int32) {
		fmt.Println(color.GreenString("Echo.Ping(%d) -> %d", n, v))
		close(done)
	})
	select {
	case <-done:
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "birpc-demo: waiting for Echo.Ping response")
	}
	return nil
}
