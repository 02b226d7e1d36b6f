package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/matt-steen/date-ideas/pkg/config"
	"github.com/matt-steen/date-ideas/pkg/controller"
	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/matt-steen/date-ideas/pkg/notify"
	"github.com/matt-steen/date-ideas/pkg/state"
	"github.com/matt-steen/date-ideas/pkg/status"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	opts := options{}

	root := &cobra.Command{
		Use:          "date-ideas",
		Short:        "Keep track of food and place ideas and where you've been",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			queue := notify.NewQueue()

			a, err := setup(cmd.Context(), opts, queue)
			if err != nil {
				return err
			}
			defer a.close()

			c, err := controller.NewController(cmd.Context(), a.store, queue, a.cfg.Refresh)
			if err != nil {
				return err
			}

			return c.Go()
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "dotenv file to load settings from")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides "+config.EnvLogLevel+")")

	root.AddCommand(newMigrateCmd(&opts), newSyncCmd(&opts), newListCmd(&opts))

	return root
}

// runBatch loads everything, runs op and prints the notifications it produced.
func runBatch(cmd *cobra.Command, opts *options, op func(a *app) (int, error)) error {
	a, err := setup(cmd.Context(), *opts, notify.Printer{W: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.Refresh(cmd.Context()); err != nil {
		return err
	}

	_, err = op(a)

	return err
}

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Move legacy single locations into a \"Main\" location branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, opts, func(a *app) (int, error) {
				return a.store.MigrateLegacyLocations(cmd.Context())
			})
		},
	}
}

func newSyncCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Copy visits recorded on items into their single location branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, opts, func(a *app) (int, error) {
				return a.store.SyncSingleBranches(cmd.Context())
			})
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	var (
		category string
		order    string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the ideas of one category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := model.Category(category)
			if !cat.Valid() {
				return fmt.Errorf("unknown category %q", category)
			}

			o, err := status.ParseOrder(order)
			if err != nil {
				return err
			}

			a, err := setup(cmd.Context(), *opts, notify.Printer{W: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.Refresh(cmd.Context()); err != nil {
				return err
			}

			rows := a.store.Rows(cat, o)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")

				return enc.Encode(rows)
			}

			return printRows(cmd.OutOrStdout(), a.store, rows)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryFood), "category to list (food or place)")
	cmd.Flags().StringVarP(&order, "sort", "s", status.Custom.String(), "sort order: custom, name, visited or date")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print rows as JSON")

	return cmd
}

func printRows(w io.Writer, store *state.Store, rows []status.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "NAME\tTYPE\tSTATUS\tVISITED\tLOCATIONS")

	for _, row := range rows {
		visited := "-"
		if row.Summary.Date != nil {
			visited = row.Summary.Date.Format("2006-01-02")
		}

		locations := row.Item.Location
		if len(row.Branches) > 0 {
			locations = fmt.Sprintf("%d", len(row.Branches))
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			row.Item.Name, store.TypeName(row.Item.TypeID), row.Summary.Label(), visited, locations)
	}

	return tw.Flush()
}
