package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinedex/internal/client"
)

func newMediaCommand(ctx *commandContext) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "media QUERY",
		Short: "Search TMDB movies and series through cinedexd",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if language == "" {
				language = ctx.language()
			}
			return ctx.withClient(func(api *client.Client) error {
				results, err := api.SearchMedia(cmd.Context(), query, language)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, results)
				}
				if len(results) == 0 {
					warnf(cmd.ErrOrStderr(), "Warning: %s", client.WarningNoMatches)
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), renderMediaResults(results))
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "TMDB language tag (defaults to tmdb.language)")
	return cmd
}
