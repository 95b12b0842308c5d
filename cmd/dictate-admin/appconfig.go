package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dictate-io/dictate/internal/data"
	"github.com/dictate-io/dictate/internal/domain/model"
)

const defaultConfigTimeout = time.Minute

type configSetOptions struct {
	File string
	Yes  bool
}

func runConfigGet(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("config-get", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultConfigTimeout, func(ctx context.Context, db *sql.DB) error {
		raw, updatedAt, err := data.NewAppConfigRepo(db).Fetch(ctx)
		if err != nil {
			return fmt.Errorf("fetch app config: %w", err)
		}

		if updatedAt.IsZero() {
			return writeln(os.Stdout, "No config document stored; guards see an empty config.")
		}

		var pretty bytes.Buffer
		if indentErr := json.Indent(&pretty, raw, "", "  "); indentErr != nil {
			return fmt.Errorf("format config document: %w", indentErr)
		}
		if writeErr := writef(os.Stdout, "%s\n", pretty.String()); writeErr != nil {
			return fmt.Errorf("print config document: %w", writeErr)
		}
		return writef(os.Stdout, "\nLast updated: %s\n", updatedAt.Format(time.RFC3339))
	})
}

func runConfigSet(cmdCtx *commandContext, args []string) error {
	opts, err := parseConfigSetFlags(args)
	if err != nil {
		return err
	}

	raw, err := readConfigDocument(opts.File)
	if err != nil {
		return err
	}

	// Parse up front so a malformed document is rejected with a useful
	// message instead of a database error.
	cfg, err := model.ParseRemoteConfig(raw)
	if err != nil {
		return fmt.Errorf("invalid config document: %w", err)
	}

	target := fmt.Sprintf(
		"database %q on %s:%d",
		cmdCtx.Config.Postgres.Name,
		cmdCtx.Config.Postgres.Host,
		cmdCtx.Config.Postgres.Port,
	)
	if confirmErr := confirmAction(opts.Yes, "replace the application config", target); confirmErr != nil {
		return confirmErr
	}

	return withDatabase(cmdCtx, defaultConfigTimeout, func(ctx context.Context, db *sql.DB) error {
		if setErr := data.NewAppConfigRepo(db).Set(ctx, raw); setErr != nil {
			return fmt.Errorf("set app config: %w", setErr)
		}

		cmdCtx.Logger.Info("app config replaced",
			"pages", len(cfg.Pages),
			"logged_out_redirect", cfg.LoggedOutRedirectURL != "")
		return nil
	})
}

func parseConfigSetFlags(args []string) (configSetOptions, error) {
	fs := flag.NewFlagSet("config-set", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts configSetOptions
	fs.StringVar(&opts.File, "file", "", "Path to the JSON config document (\"-\" or empty reads stdin)")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return configSetOptions{}, err
	}
	return opts, nil
}

func readConfigDocument(file string) ([]byte, error) {
	if file == "" || file == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read config from stdin: %w", err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return raw, nil
}
