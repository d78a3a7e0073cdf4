// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/joswr1ght/sslmate-mcp/src/logger"
	"github.com/joswr1ght/sslmate-mcp/src/sslmate"
)

// newSearchCmd builds the search subcommand: a direct certificate
// transparency query from the terminal, without going through MCP.
func newSearchCmd(opts *serverOptions, log *logger.CLILogger) *cobra.Command {
	var (
		limit             int
		includeExpired    bool
		includeSubdomains bool
		jsonOutput        bool
	)

	searchCmd := &cobra.Command{
		Use:   "search DOMAIN",
		Short: "Search certificate transparency logs for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if err := config.Validate(); err != nil {
				return err
			}

			client := sslmate.New(config.API.Key, sslmate.Options{
				BaseURL: config.API.BaseURL,
				Timeout: time.Duration(config.API.Timeout) * time.Second,
			})
			defer client.Close()

			records, err := client.Search(cmd.Context(), args[0], limit, includeExpired, includeSubdomains)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return err
				}
				log.Println(string(data))
				return nil
			}

			log.Printf("Found %d certificates for %s", len(records), args[0])
			log.Println(renderCertificateTable(records))
			return nil
		},
	}

	searchCmd.Flags().IntVarP(&limit, "limit", "n", 100, "maximum number of certificates to return")
	searchCmd.Flags().BoolVar(&includeExpired, "include-expired", false, "include expired certificates")
	searchCmd.Flags().BoolVar(&includeSubdomains, "include-subdomains", false, "include subdomain certificates")
	searchCmd.Flags().BoolVar(&jsonOutput, "json", false, "output raw JSON instead of a table")

	return searchCmd
}

// renderCertificateTable renders certificate records as a markdown table.
func renderCertificateTable(records []sslmate.CertificateRecord) string {
	if len(records) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Common Name", "Issuer", "Not Before", "Not After", "Status"})

	var rows [][]string
	for i, record := range records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			record.CommonName,
			record.Issuer,
			record.NotBefore,
			record.NotAfter,
			string(record.Status),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}
