package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnana997/thememig/pkg/batch"
	"github.com/gnana997/thememig/pkg/mcp"
	"github.com/gnana997/thememig/pkg/rules"
	"github.com/gnana997/thememig/pkg/util"
)

// runMigration implements `thememig run [--dry-run] [--root DIR] [--config FILE]`.
//
// Exit status is 0 on completion whether or not any file needed changes;
// per-file errors are reported in the summary and never abort the run.
func runMigration(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "report intended changes, write nothing")
	root := fs.String("root", "", "directory tree to migrate")
	configPath := fs.String("config", defaultConfigPath, "project config path")
	fs.Parse(args)

	driver, _ := buildDriver(*configPath, *root, *dryRun)

	stats, err := driver.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(stats.Summary())
}

// runWatch implements `thememig watch [--root DIR] [--config FILE]`.
func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	root := fs.String("root", "", "directory tree to watch")
	configPath := fs.String("config", defaultConfigPath, "project config path")
	fs.Parse(args)

	driver, logger := buildDriver(*configPath, *root, false)

	// Bring the tree up to date before watching for increments.
	if _, err := driver.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "initial migration failed: %v\n", err)
		os.Exit(1)
	}

	watcher, err := batch.NewWatcher(driver, batch.DefaultWatchOptions(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create watcher: %v\n", err)
		os.Exit(1)
	}
	if err := watcher.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start watcher: %v\n", err)
		os.Exit(1)
	}
	defer watcher.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

// runServe implements `thememig serve`.
func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "project config path")
	fs.Parse(args)

	cfg, err := loadProjectConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := util.NewLogger(*newLogger(cfg))

	srv := mcp.NewServer(rules.Rules(), rules.TriageChecks(), logger)
	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// buildDriver loads config, constructs the logger, and wires the driver
// over the full rule catalog. Exits on configuration errors.
func buildDriver(configPath, rootFlag string, dryRun bool) (*batch.Driver, *slog.Logger) {
	cfg, err := loadProjectConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := util.NewLogger(*newLogger(cfg))

	dc := driverConfig(cfg, rootFlag, dryRun)
	if dc.Root == "" {
		fmt.Fprintln(os.Stderr, "no root configured: pass --root or set root in "+defaultConfigPath)
		os.Exit(1)
	}

	driver, err := batch.NewDriver(dc, rules.Rules(), rules.TriageChecks(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	return driver, logger
}
