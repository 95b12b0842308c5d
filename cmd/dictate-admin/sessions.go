package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dictate-io/dictate/internal/bootstrap"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPattern = "session:*"

type clearSessionsOptions struct {
	Yes    bool
	DryRun bool
}

type clearSessionsStats struct {
	total   int
	deleted int
}

func runClearSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearSessionsFlags(args)
	if err != nil {
		return err
	}

	if !opts.DryRun {
		if confirmErr := confirmAction(opts.Yes, "delete all login sessions", "every logged-in user"); confirmErr != nil {
			return confirmErr
		}
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	redisClient, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	stats, err := deleteSessionKeys(ctx, redisClient, opts.DryRun)
	if err != nil {
		return err
	}

	if stats.total == 0 {
		return writeln(os.Stdout, "No sessions found in Redis")
	}
	if opts.DryRun {
		return writef(os.Stdout, "Dry-run: would delete %d sessions\n", stats.total)
	}
	return writef(os.Stdout, "Deleted %d/%d sessions\n", stats.deleted, stats.total)
}

func parseClearSessionsFlags(args []string) (clearSessionsOptions, error) {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts clearSessionsOptions
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Count sessions without deleting them")

	if err := fs.Parse(args); err != nil {
		return clearSessionsOptions{}, err
	}
	return opts, nil
}

func deleteSessionKeys(ctx context.Context, client redis.UniversalClient, dryRun bool) (clearSessionsStats, error) {
	var (
		stats  clearSessionsStats
		cursor uint64
	)

	for {
		keys, next, err := client.Scan(ctx, cursor, sessionKeyPattern, 500).Result()
		if err != nil {
			return stats, fmt.Errorf("scan sessions: %w", err)
		}

		stats.total += len(keys)
		if !dryRun && len(keys) > 0 {
			deleted, delErr := client.Del(ctx, keys...).Result()
			if delErr != nil && !errors.Is(delErr, redis.Nil) {
				return stats, fmt.Errorf("delete sessions: %w", delErr)
			}
			stats.deleted += int(deleted)
		}

		cursor = next
		if cursor == 0 {
			return stats, nil
		}
	}
}
