package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/sitegen/internal/buildinfo"
	"github.com/dmitrijs2005/sitegen/internal/client/client"
	"github.com/dmitrijs2005/sitegen/internal/client/config"
	"github.com/dmitrijs2005/sitegen/internal/client/services"
	"github.com/dmitrijs2005/sitegen/internal/logging"
	"github.com/spf13/cobra"
)

// newAppFn is a test seam for NewApp.
var newAppFn = NewApp

// NewRootCommand builds the command tree. Config flags are expected to be
// split off the command line before cobra sees it (see config.FlagNames).
func NewRootCommand(cfg *config.Config, logger logging.Logger) *cobra.Command {
	withApp := func(run func(ctx context.Context, app *App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			app, err := newAppFn(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close(context.Background())
			return run(cmd.Context(), app, args)
		}
	}

	root := &cobra.Command{
		Use:   "sitegen",
		Short: "Generate websites from a text description",
		Long: "Terminal client for the site generation service. Without a subcommand " +
			"it starts an interactive session: log in, watch your energy balance, " +
			"describe a site and get its markup.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: withApp(func(ctx context.Context, app *App, _ []string) error {
			return app.Run(ctx)
		}),
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Print the user of the saved session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, app *App, _ []string) error {
			u, ok := app.store.Current()
			if !ok {
				return services.ErrNotLoggedIn
			}
			out := root.OutOrStdout()
			fmt.Fprintf(out, "ID:      %d\n", u.ID)
			fmt.Fprintf(out, "Email:   %s\n", u.Email)
			fmt.Fprintf(out, "Energy:  %d\n", u.EnergyBalance)
			fmt.Fprintf(out, "Admin:   %t\n", u.IsAdmin)
			if at, ok, err := app.store.SavedAt(ctx); err != nil {
				logger.Warn(ctx, "session timestamp unavailable", "error", err)
			} else if ok {
				fmt.Fprintf(out, "Saved:   %s\n", at.Local().Format(time.DateTime))
			}
			return nil
		}),
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, app *App, _ []string) error {
			return app.Logout(ctx)
		}),
	}

	generate := &cobra.Command{
		Use:   "generate <description...>",
		Short: "Generate a site for the saved session and export it",
		Long: "Generate a site from the description given as arguments, spending " +
			"energy of the saved session's user, and write the markup to the " +
			"configured export directory.",
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(func(ctx context.Context, app *App, args []string) error {
			if err := app.Generate(ctx, strings.Join(args, " ")); err != nil {
				return err
			}
			return app.Export(ctx, "")
		}),
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Remove all locally stored data, including the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := client.InitDatabase(cmd.Context(), cfg.SessionDBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := client.ResetLocalData(cmd.Context(), db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d local entries\n", n)
			return nil
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}

	root.AddCommand(whoami, logout, generate, reset, version)
	return root
}
