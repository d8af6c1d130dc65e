package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bookstore/config"
	"github.com/shashiranjanraj/bookstore/internal/kernel"
	"github.com/shashiranjanraj/bookstore/internal/server"
	"github.com/shashiranjanraj/bookstore/pkg/database"
	"github.com/shashiranjanraj/bookstore/pkg/migration"
)

var migrateOnServe bool

// bookstore serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateOnServe {
			if err := bootDB(); err != nil {
				return err
			}
			if err := migration.New(database.DB).Output(cmd.OutOrStdout()).Run(); err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return server.Start(ctx)
	},
}

// bookstore route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		k, err := kernel.NewHTTPKernel(nil)
		if err != nil {
			return err
		}
		defer k.Close()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range k.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnServe, "migrate", false, "run pending migrations before serving")
}
