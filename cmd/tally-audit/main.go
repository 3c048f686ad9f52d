// tally-audit tails the expense event stream and logs every mutation,
// giving an out-of-process audit trail of ledger changes.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tally/internal/config"
	"tally/internal/events"
	applog "tally/internal/log"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		applog.New("audit", applog.ParseLevel("info")).Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := applog.New("tally-audit", applog.ParseLevel(cfg.LogLevel))
	applog.SetDefault(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit consumer")
		os.Exit(1)
	}

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Audit consumer started", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)

	err = client.Consume(ctx, func(ev *events.ExpenseEvent) error {
		logger.Info("Expense event",
			"event_id", ev.EventID,
			"kind", ev.Kind,
			"expense_id", ev.ExpenseID,
			"timestamp", ev.Timestamp)
		return nil
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("Consumer stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("Audit consumer stopped gracefully")
}
