package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/receipt-points/internal/points"
	"github.com/zombor/receipt-points/internal/receipt"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("receipt-points")
	var (
		port            = fs.IntLong("port", 8080, "HTTP server port")
		dbPath          = fs.StringLong("db", "", "BoltDB file path (empty keeps receipts in memory)")
		logLevel        = fs.StringLong("log-level", "info", "Log level: debug, info, warn or error")
		shutdownTimeout = fs.DurationLong("shutdown-timeout", 10*time.Second, "Time allowed for in-flight requests on shutdown")
		_               = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_POINTS"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid log level %q\n", *logLevel)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	db, err := openDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	receiptService := receipt.NewService(db, points.Calculator{})
	server := receipt.NewServer(receiptService)

	addr := fmt.Sprintf(":%d", *port)
	if err := server.Listen(addr); err != nil {
		slog.Error("Server error", "error", err)
		db.Close()
		os.Exit(1)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve()
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			slog.Error("Server error", "error", err)
			db.Close()
			os.Exit(1)
		}
	case <-sigChan:
		slog.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), *shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Shutdown error", "error", err)
		}
	}
}

// openDB returns a BoltDB when path is set and an in-memory DB otherwise
func openDB(path string) (receipt.DB, error) {
	if path == "" {
		slog.Info("Using in-memory receipt store")
		return receipt.NewMemoryDB(), nil
	}
	slog.Info("Opening receipt database", "path", path)
	return receipt.NewBoltDB(path)
}
