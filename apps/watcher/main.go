// Command watcher tails the progress-event stream of a running inspection
// server and logs each event. Useful when exercising the tools from another
// terminal or from CI.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erlanggapratamaP/elang-mcp-server/apps/watcher/internal/stream"
	"github.com/erlanggapratamaP/elang-mcp-server/pkg/logging"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "inspection server base URL")
	showPings := flag.Bool("pings", false, "also log keep-alive pings")
	flag.Parse()

	slog := logging.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := stream.NewClient(*server, slog)
	slog.Info("watching inspection events", "server", *server)

	err := client.Subscribe(ctx, func(ev stream.Event) {
		if ev.Name == "ping" && !*showPings {
			return
		}
		slog.Info("event", "kind", ev.Name, "data", ev.Data)
	})
	if err != nil && ctx.Err() == nil {
		slog.Error("event stream failed", "error", err)
		os.Exit(1)
	}
	slog.Info("event stream closed")
}
