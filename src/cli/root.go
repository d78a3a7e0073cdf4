// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joswr1ght/sslmate-mcp/src/internal/helper/posix"
	"github.com/joswr1ght/sslmate-mcp/src/logger"
	mcpserver "github.com/joswr1ght/sslmate-mcp/src/mcp-server"
)

// serverOptions holds the flag values shared by the root command and its
// subcommands.
type serverOptions struct {
	apiKey     string
	configFile string
	port       int
	logLevel   string
	logFile    string
	daemon     bool
	pidFile    string
}

// defaultPIDFile is where the daemonized server records its process ID
// unless --pid-file overrides it.
func defaultPIDFile() string {
	return filepath.Join(os.TempDir(), posix.GetExecutableName()+".pid")
}

// Execute runs the root command and returns any execution error. The caller
// decides the process exit code.
func Execute(ctx context.Context, version string, log *logger.CLILogger) error {
	return newRootCmd(version, log).ExecuteContext(ctx)
}

// newRootCmd builds the command tree: the root command runs the MCP server
// on stdio, with search and stop as supporting subcommands.
func newRootCmd(version string, log *logger.CLILogger) *cobra.Command {
	opts := &serverOptions{}

	rootCmd := &cobra.Command{
		Use:     "sslmate-mcp",
		Short:   "SSLMate certificate transparency MCP server",
		Long: "MCP server exposing SSLMate Certificate Transparency search " +
			"to LLM clients over newline-delimited JSON-RPC on stdio.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), opts, version, log)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "SSLMate API key (overrides SSLMATE_API_KEY)")
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log verbosity: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&opts.pidFile, "pid-file", defaultPIDFile(), "PID file used by --daemon and stop")

	rootCmd.Flags().IntVarP(&opts.port, "port", "p", 0, "listening port override (reserved for non-stdio transports)")
	rootCmd.Flags().StringVar(&opts.logFile, "log-file", "", "append diagnostics to FILE instead of stderr")
	rootCmd.Flags().BoolVarP(&opts.daemon, "daemon", "d", false, "run the server as a detached background process")

	rootCmd.AddCommand(newSearchCmd(opts, log))
	rootCmd.AddCommand(newStopCmd(opts, log))

	return rootCmd
}

// loadConfig layers the command-line flags on top of the file and
// environment configuration.
func (o *serverOptions) loadConfig() (*mcpserver.Config, error) {
	config, err := mcpserver.LoadConfig(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.apiKey != "" {
		config.API.Key = o.apiKey
	}
	if o.port > 0 {
		config.Server.Port = o.port
	}
	if o.logLevel != "" {
		config.Log.Level = o.logLevel
	}
	if o.logFile != "" {
		config.Log.File = o.logFile
	}
	return config, nil
}

// runServer starts the MCP server in the foreground, or re-executes the
// binary in the background when --daemon is set.
func runServer(ctx context.Context, opts *serverOptions, version string, log *logger.CLILogger) error {
	config, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if opts.daemon {
		pid, err := posix.Daemonize(opts.pidFile, stripDaemonFlag(os.Args[1:]))
		if err != nil {
			return fmt.Errorf("failed to daemonize: %w", err)
		}
		log.Printf("server started in background (pid %d, pid file %s)", pid, opts.pidFile)
		return nil
	}

	// Diagnostics must never reach stdout: that stream carries only
	// JSON-RPC response frames.
	var diagWriter io.Writer = os.Stderr
	if config.Log.File != "" {
		f, err := os.OpenFile(config.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			// Best effort: an unwritable log file falls back to stderr.
			log.Warnf("cannot open log file %s, logging to stderr: %v", config.Log.File, err)
		} else {
			defer f.Close()
			diagWriter = f
		}
	}

	mcpLog := logger.NewMCPLogger(diagWriter, false)
	mcpLog.SetLevel(logger.ParseLevel(config.Log.Level))

	server, err := mcpserver.NewServerBuilder().
		WithConfig(config).
		WithLogger(mcpLog).
		WithVersion(version).
		Build()
	if err != nil {
		return err
	}

	return server.Run(ctx)
}

// stripDaemonFlag removes the daemon flag from args so the re-executed
// child runs in the foreground instead of forking again.
func stripDaemonFlag(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case arg == "--daemon" || arg == "-d":
		case strings.HasPrefix(arg, "--daemon="):
		default:
			out = append(out, arg)
		}
	}
	return out
}
