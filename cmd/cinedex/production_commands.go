package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinedex/internal/client"
	"cinedex/internal/production"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var filter production.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search and page through productions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.Limit <= 0 {
				filter.Limit = ctx.pageSize()
			}
			return ctx.withClient(func(api *client.Client) error {
				page, err := api.Search(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, page)
				}
				out := cmd.OutOrStdout()
				if len(page.Productions) == 0 {
					fmt.Fprintln(out, "No productions found")
					if page.Total > 0 {
						fmt.Fprintf(out, "Page %d is past the last page (%d)\n", page.Page, page.TotalPages)
					}
					return nil
				}
				fmt.Fprint(out, renderProductions(page.Productions))
				fmt.Fprintln(out)
				pager := client.PagerFor(page)
				fmt.Fprintf(out, "Page %d of %d (%d productions)\n", page.Page, pager.Pages(), page.Total)
				if pager.Pages() > 1 {
					fmt.Fprintln(out, pager.String())
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "Match title, genre, type or year")
	cmd.Flags().StringVarP(&filter.Type, "type", "t", "", "Only filme or serie")
	cmd.Flags().IntVarP(&filter.Page, "page", "p", production.DefaultPage, "Page number")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "l", 0, "Page size (defaults to client.page_size)")
	return cmd
}

func newAllCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "List every production",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(api *client.Client) error {
				items, err := api.ListAll(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, items)
				}
				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintln(out, "Catalog is empty")
					return nil
				}
				fmt.Fprint(out, renderProductions(items))
				fmt.Fprintln(out)
				return nil
			})
		},
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var fields productionFlags
	var autofill bool
	var pick int
	var language string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a production",
		Long: "Add a production from flags. With --autofill the title is looked up on TMDB:\n" +
			"a single match fills the form, several matches prompt for a choice (or use --pick).\n" +
			"Explicit flags other than --title override auto-filled values.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("title") {
				return errors.New("--title is required")
			}
			if language == "" {
				language = ctx.language()
			}
			return ctx.withClient(func(api *client.Client) error {
				form := client.NewForm(api)
				filled := false
				if autofill {
					ok, err := runAutoFill(cmd, ctx, form, api, fields.title, language, pick)
					if err != nil {
						return err
					}
					filled = ok
				}
				p := form.Fields()
				if err := fields.apply(cmd, &p, filled); err != nil {
					return err
				}
				form.Set(p)

				created, err := form.Submit(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, created)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added production %d: %s\n", created.ID, created.Title)
				return nil
			})
		},
	}

	fields.bind(cmd)
	cmd.Flags().BoolVar(&autofill, "autofill", false, "Fill fields from a TMDB search on --title")
	cmd.Flags().IntVar(&pick, "pick", 0, "Choose this match (1-based) when auto-fill finds several")
	cmd.Flags().StringVar(&language, "language", "", "TMDB language (defaults to tmdb.language)")
	return cmd
}

// runAutoFill drives the form's auto-fill and reports whether it was filled.
// Warnings are printed and leave the form as it was.
func runAutoFill(cmd *cobra.Command, ctx *commandContext, form *client.Form, searcher client.MediaSearcher, title, language string, pick int) (bool, error) {
	res, err := form.AutoFill(cmd.Context(), searcher, title, language)
	if err != nil {
		return false, fmt.Errorf("auto-fill: %w", err)
	}
	if res.Warning != "" {
		warnf(cmd.ErrOrStderr(), "Warning: %s", res.Warning)
		return false, nil
	}
	if res.Filled {
		return true, nil
	}

	choice := pick
	if choice == 0 {
		if ctx.JSONMode() {
			return false, fmt.Errorf("auto-fill found %d matches; pass --pick", len(res.Candidates))
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d matches for %q:\n", len(res.Candidates), title)
		fmt.Fprint(out, renderMediaResults(res.Candidates))
		fmt.Fprintln(out)
		choice, err = promptChoice(cmd.InOrStdin(), out, len(res.Candidates))
		if err != nil {
			return false, err
		}
	}
	if err := form.Choose(choice - 1); err != nil {
		return false, err
	}
	return true, nil
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var fields productionFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a production",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !fields.anyChanged(cmd) {
				return errors.New("nothing to change; pass at least one field flag")
			}
			return ctx.withClient(func(api *client.Client) error {
				form := client.NewForm(api)
				if err := form.BeginEdit(cmd.Context(), id); err != nil {
					if errors.Is(err, client.ErrNotFound) {
						return fmt.Errorf("production %d not found", id)
					}
					return err
				}
				p := form.Fields()
				if err := fields.apply(cmd, &p, false); err != nil {
					return err
				}
				form.Set(p)

				updated, err := form.Submit(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, updated)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated production %d: %s\n", updated.ID, updated.Title)
				return nil
			})
		},
	}

	fields.bind(cmd)
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a production",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !yes {
				ok, err := confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete production %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Aborted")
					return nil
				}
			}
			return ctx.withClient(func(api *client.Client) error {
				msg, err := api.Delete(cmd.Context(), id)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, map[string]any{"id": id, "message": msg})
				}
				fmt.Fprintln(out, strings.TrimSpace(msg))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
