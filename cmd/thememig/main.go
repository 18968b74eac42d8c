package main

import (
	"fmt"
	"os"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "run":
		runMigration(os.Args[2:])
	case "watch":
		runWatch(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "version":
		fmt.Printf("thememig %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: thememig <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run        Migrate raw widget constructions to themed components")
	fmt.Println("  watch      Keep migrating as files change")
	fmt.Println("  serve      Start MCP server exposing preview and triage tools")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Run flags:")
	fmt.Println("  --root      Directory tree to migrate (default from .thememig.yaml)")
	fmt.Println("  --config    Project config path (default .thememig.yaml)")
	fmt.Println("  --dry-run   Report intended changes without writing anything")
}
