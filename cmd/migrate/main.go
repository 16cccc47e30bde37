package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/0101Programmer/orderManagementSystem/internal/storage/postgres"
)

const (
	defaultTimeout = 30 * time.Second
	envPostgresDSN = "OMS_POSTGRES_DSN"
)

var errUsage = errors.New("usage")

// migrationStore — операции Store, которые нужны утилите.
type migrationStore interface {
	MigrateUp(ctx context.Context, steps int) error
	MigrateDown(ctx context.Context, steps int) error
	MigrationStatus(ctx context.Context) (int64, int, error)
}

type options struct {
	direction string
	steps     int
	dsn       string
}

func parseArgs(args []string, lookup func(string) (string, bool)) (options, error) {
	var opts options

	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.direction, "direction", "up", "migration direction: up|down|status")
	fs.IntVar(&opts.steps, "steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")
	fs.StringVar(&opts.dsn, "dsn", "", "PostgreSQL DSN (fallback: "+envPostgresDSN+")")
	if err := fs.Parse(args); err != nil {
		return options{}, fmt.Errorf("%w: %v", errUsage, err)
	}

	opts.direction = strings.ToLower(strings.TrimSpace(opts.direction))
	switch opts.direction {
	case "up", "down", "status":
	default:
		return options{}, fmt.Errorf("%w: unsupported direction %q (use up|down|status)", errUsage, opts.direction)
	}
	if opts.steps < 0 {
		return options{}, fmt.Errorf("%w: steps must be >= 0", errUsage)
	}

	opts.dsn = strings.TrimSpace(opts.dsn)
	if opts.dsn == "" {
		if v, ok := lookup(envPostgresDSN); ok {
			opts.dsn = strings.TrimSpace(v)
		}
	}
	if opts.dsn == "" {
		return options{}, fmt.Errorf("%w: %s (or -dsn) is required", errUsage, envPostgresDSN)
	}

	return opts, nil
}

// migrate выполняет выбранное направление и печатает итоговый статус схемы.
func migrate(ctx context.Context, store migrationStore, opts options, out io.Writer) error {
	switch opts.direction {
	case "up":
		if err := store.MigrateUp(ctx, opts.steps); err != nil {
			return fmt.Errorf("migrate up failed: %w", err)
		}
	case "down":
		steps := opts.steps
		if steps <= 0 {
			steps = 1
		}
		if err := store.MigrateDown(ctx, steps); err != nil {
			return fmt.Errorf("migrate down failed: %w", err)
		}
	}

	version, count, err := store.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("migration status failed: %w", err)
	}

	label := "migration status"
	if opts.direction != "status" {
		label = "migrate " + opts.direction + " ok"
	}
	_, err = fmt.Fprintf(out, "%s: version=%d applied=%d\n", label, version, count)
	return err
}

func run(ctx context.Context, args []string, lookup func(string) (string, bool), out io.Writer) error {
	opts, err := parseArgs(args, lookup)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, opts.dsn)
	if err != nil {
		return fmt.Errorf("open postgres store: %w", err)
	}
	defer store.Close()

	return migrate(ctx, store, opts, out)
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := run(context.Background(), os.Args[1:], os.LookupEnv, os.Stdout); err != nil {
		log.WithError(err).Error("migrate failed")
		os.Exit(1)
	}
}
