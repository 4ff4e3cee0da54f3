// Command ariadne-resolve is the process wrapper around the resolution
// core: it loads project configuration (internal/resolveconfig), builds a
// Coordinator from a tree of pre-built SemanticIndex sidecar files, and
// exposes the result three ways — a one-shot query, a live file watcher, or
// an MCP server over stdio. Modeled on the teacher's cmd/lci, which plays
// the same role of gluing a urfave/cli App onto the library packages below
// it; this command never parses source itself, since that is an external
// collaborator's concern (spec.md §13 Non-goals).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/CRJFisher/ariadne/internal/coordinator"
	"github.com/CRJFisher/ariadne/internal/mcpserver"
	"github.com/CRJFisher/ariadne/internal/resolveconfig"
	"github.com/CRJFisher/ariadne/internal/types"
	"github.com/CRJFisher/ariadne/internal/version"
	"github.com/CRJFisher/ariadne/internal/watch"
	"github.com/CRJFisher/ariadne/pkg/pathutil"
)

var rootFlag = &cli.StringFlag{
	Name:  "root",
	Value: ".",
	Usage: "project root to load configuration and sidecar indexes from",
}

func main() {
	app := &cli.App{
		Name:    "ariadne-resolve",
		Usage:   "cross-file symbol resolution over pre-indexed JavaScript, TypeScript, Python, and Rust",
		Version: version.Version,
		Flags:   []cli.Flag{rootFlag},
		Commands: []*cli.Command{
			indexCommand,
			queryCommand,
			watchCommand,
			serveMCPCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ariadne-resolve: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*resolveconfig.Config, error) {
	root := c.String("root")
	cfg, err := resolveconfig.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

var indexCommand = &cli.Command{
	Name:  "index",
	Usage: "scan the project root for *.semindex.json sidecar files and report what was loaded",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		_, loaded, err := buildCoordinator(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("indexed %d file(s) under %s\n", loaded, cfg.Project.Root)
		return nil
	},
}

var watchCommand = &cli.Command{
	Name:  "watch",
	Usage: "load sidecar indexes, then keep the coordinator up to date as files change",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		coord, loaded, err := buildCoordinator(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("indexed %d file(s) under %s, watching for changes\n", loaded, cfg.Project.Root)

		w, err := watch.New(cfg, &coordIndexer{coord: coord})
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		return w.Stop()
	},
}

var serveMCPCommand = &cli.Command{
	Name:  "serve-mcp",
	Usage: "load sidecar indexes and serve the resolve query surface over MCP stdio",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		coord, _, err := buildCoordinator(cfg)
		if err != nil {
			return err
		}

		srv := mcpserver.New(coord, "ariadne-resolve", version.Version)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			cancel()
		}()

		return srv.Run(ctx)
	},
}

var queryCommand = &cli.Command{
	Name:  "query",
	Usage: "run a single read-only query against the project's sidecar indexes",
	Subcommands: []*cli.Command{
		{
			Name:      "resolve-name",
			Usage:     "resolve a name visible at a scope",
			ArgsUsage: "<scope-id> <name>",
			Action: func(c *cli.Context) error {
				coord, _, err := coordinatorFromArgs(c)
				if err != nil {
					return err
				}
				if c.Args().Len() < 2 {
					return cli.Exit("usage: query resolve-name <scope-id> <name>", 1)
				}
				sym, ok := coord.ResolveName(types.ScopeID(c.Args().Get(0)), c.Args().Get(1))
				if !ok {
					suggestions := coord.SuggestNames(types.ScopeID(c.Args().Get(0)), c.Args().Get(1))
					return printJSON(map[string]interface{}{"resolved": false, "suggestions": suggestions})
				}
				return printJSON(map[string]interface{}{"resolved": true, "symbol_id": sym})
			},
		},
		{
			Name:      "get-file-calls",
			Usage:     "list every call reference recorded for a file",
			ArgsUsage: "<file>",
			Action: func(c *cli.Context) error {
				coord, _, err := coordinatorFromArgs(c)
				if err != nil {
					return err
				}
				if c.Args().Len() < 1 {
					return cli.Exit("usage: query get-file-calls <file>", 1)
				}
				return printJSON(coord.GetFileCalls(types.FilePath(c.Args().Get(0))))
			},
		},
		{
			Name:      "get-calls-by-caller-scope",
			Usage:     "list every call reference whose enclosing function scope matches",
			ArgsUsage: "<scope-id>",
			Action: func(c *cli.Context) error {
				coord, _, err := coordinatorFromArgs(c)
				if err != nil {
					return err
				}
				if c.Args().Len() < 1 {
					return cli.Exit("usage: query get-calls-by-caller-scope <scope-id>", 1)
				}
				return printJSON(coord.GetCallsByCallerScope(types.ScopeID(c.Args().Get(0))))
			},
		},
		{
			Name:  "get-all-referenced-symbols",
			Usage: "list every symbol that is the resolved target of at least one call",
			Action: func(c *cli.Context) error {
				coord, _, err := coordinatorFromArgs(c)
				if err != nil {
					return err
				}
				referenced := coord.GetAllReferencedSymbols()
				symbols := make([]types.SymbolID, 0, len(referenced))
				for sym := range referenced {
					symbols = append(symbols, sym)
				}
				return printJSON(symbols)
			},
		},
		{
			Name:      "get-definition",
			Usage:     "look up a symbol's definition by id",
			ArgsUsage: "<symbol-id>",
			Action: func(c *cli.Context) error {
				coord, cfg, err := coordinatorFromArgs(c)
				if err != nil {
					return err
				}
				if c.Args().Len() < 1 {
					return cli.Exit("usage: query get-definition <symbol-id>", 1)
				}
				def, ok := coord.GetDefinition(types.SymbolID(c.Args().Get(0)))
				if !ok {
					return printJSON(map[string]interface{}{"found": false})
				}
				display := *def
				display.Location.FilePath = types.FilePath(pathutil.ToRelative(string(def.Location.FilePath), cfg.Project.Root))
				return printJSON(map[string]interface{}{"found": true, "definition": display})
			},
		},
		{
			Name:      "resolve-export-chain",
			Usage:     "resolve a named/default/namespace import back to its defining symbol",
			ArgsUsage: "<file> <name> <named|default|namespace>",
			Action: func(c *cli.Context) error {
				coord, _, err := coordinatorFromArgs(c)
				if err != nil {
					return err
				}
				if c.Args().Len() < 3 {
					return cli.Exit("usage: query resolve-export-chain <file> <name> <kind>", 1)
				}
				var kind types.ImportKind
				switch c.Args().Get(2) {
				case "named":
					kind = types.ImportNamed
				case "default":
					kind = types.ImportDefault
				case "namespace":
					kind = types.ImportNamespace
				default:
					return cli.Exit(fmt.Sprintf("unknown import kind %q", c.Args().Get(2)), 1)
				}
				sym, err := coord.ResolveExportChain(types.FilePath(c.Args().Get(0)), c.Args().Get(1), kind)
				if err != nil {
					return err
				}
				if sym == "" {
					return printJSON(map[string]interface{}{"cycle": true})
				}
				return printJSON(map[string]interface{}{"symbol_id": sym})
			},
		},
	},
}

func coordinatorFromArgs(c *cli.Context) (*coordinator.Coordinator, *resolveconfig.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	coord, _, err := buildCoordinator(cfg)
	if err != nil {
		return nil, nil, err
	}
	return coord, cfg, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
