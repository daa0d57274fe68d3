package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cinedex/internal/api"
	"cinedex/internal/client"
	"cinedex/internal/language"
	"cinedex/internal/preflight"
)

func newPingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that cinedexd answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				msg, err := c.Hello(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, api.Message{Message: msg})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", msg, c.BaseURL())
				return nil
			})
		},
	}
}

type statusReport struct {
	Checks []preflight.Result `json:"checks"`
	Server *api.Status        `json:"server,omitempty"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Run preflight checks and show server details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			report := statusReport{Checks: preflight.RunAll(cmd.Context(), cfg)}
			if c, err := ctx.newClient(); err == nil {
				if status, err := c.Status(cmd.Context()); err == nil {
					report.Server = &status
				}
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range preflightLines(report.Checks, colorize) {
				fmt.Fprintln(out, line)
			}
			if report.Server == nil {
				return nil
			}
			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Server", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range serverLines(*report.Server, cfg.TMDB.Language, colorize) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func serverLines(status api.Status, lang string, colorize bool) []string {
	mediaKind := statusOK
	mediaDetail := "enabled (" + language.DisplayName(lang) + ")"
	if !status.Media {
		mediaKind = statusWarn
		mediaDetail = "disabled (no TMDB key)"
	}
	started := "-"
	if !status.StartedAt.IsZero() {
		started = status.StartedAt.Local().Format(time.RFC3339)
	}
	return []string{
		renderStatusLine("Version", statusInfo, status.Version, colorize),
		renderStatusLine("Backend", statusInfo, fmt.Sprintf("%s (%s)", status.Backend, status.DataPath), colorize),
		renderStatusLine("Productions", statusInfo, fmt.Sprintf("%d", status.Count), colorize),
		renderStatusLine("Started", statusInfo, started, colorize),
		renderStatusLine("Media search", mediaKind, mediaDetail, colorize),
	}
}
