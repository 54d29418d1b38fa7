package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"modsoc/internal/interfaces/cli/migrate"
	"modsoc/internal/interfaces/cli/piazza"
	"modsoc/internal/shared/errors"
	"modsoc/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "modsoc",
		Short:        "ModSoc - Piazza identity tools",
		Long:         `ModSoc resolves imported Piazza user records to central identities and anonymizes their content.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		migrate.NewCommand(),
		piazza.NewCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			},
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(errors.ExitCode(err))
	}
}
