// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"github.com/spf13/cobra"

	"github.com/joswr1ght/sslmate-mcp/src/internal/helper/posix"
	"github.com/joswr1ght/sslmate-mcp/src/logger"
)

// newStopCmd builds the stop subcommand, which terminates a server that was
// started with --daemon.
func newStopCmd(opts *serverOptions, log *logger.CLILogger) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop a daemonized server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := posix.StopDaemon(opts.pidFile); err != nil {
				return err
			}
			log.Printf("server stopped (pid file %s)", opts.pidFile)
			return nil
		},
	}
}
