package piazza

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "piazza",
		Short: "Piazza identity passes and lookups",
		Long: `Resolve imported Piazza user records to central identities, remove duplicate
records, anonymize content and look records up.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newMigrateUsersCommand(),
		newDedupeCommand(),
		newOverwriteCommand(),
		newResyncCommand(),
		newLookupCommand(),
		newCountCommand(),
		newCentralIDCommand(),
	)

	return cmd
}

// withRuntime wires the service for one subcommand run.
func withRuntime(cmd *cobra.Command, fn func(rt *runtime) error) error {
	rt, err := initRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()
	return fn(rt)
}

// optionalDataset returns the --dataset value, nil when the flag was not given.
func optionalDataset(cmd *cobra.Command, value uint) *uint {
	if !cmd.Flags().Changed("dataset") {
		return nil
	}
	return &value
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}

func newMigrateUsersCommand() *cobra.Command {
	var dataset uint
	cmd := &cobra.Command{
		Use:   "migrate-users",
		Short: "Link every Piazza user record to a central user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				resp, err := rt.service.MigrateRawContent(cmd.Context(), dataset)
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), resp)
			})
		},
	}
	cmd.Flags().UintVar(&dataset, "dataset", 0, "Dataset the records are tagged with (required)")
	_ = cmd.MarkFlagRequired("dataset")
	return cmd
}

func newDedupeCommand() *cobra.Command {
	var dataset uint
	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Keep one record per Piazza ID and dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				resp, err := rt.service.RemoveDuplicateUsers(cmd.Context(), optionalDataset(cmd, dataset))
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), resp)
			})
		},
	}
	cmd.Flags().UintVar(&dataset, "dataset", 0, "Restrict the pass to one dataset")
	return cmd
}

func newOverwriteCommand() *cobra.Command {
	var dataset uint
	cmd := &cobra.Command{
		Use:   "overwrite",
		Short: "Anonymize records and their content",
		Long: `Discard the Piazza ID of every record and rewrite the record and its content with
the linked central user's scrubbed profile. This cannot be undone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				resp, err := rt.service.OverwriteUserData(cmd.Context(), optionalDataset(cmd, dataset))
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), resp)
			})
		},
	}
	cmd.Flags().UintVar(&dataset, "dataset", 0, "Restrict the pass to one dataset")
	return cmd
}

func newResyncCommand() *cobra.Command {
	var id uint
	cmd := &cobra.Command{
		Use:   "resync",
		Short: "Refresh one record and its content from its central user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				return rt.service.Resync(cmd.Context(), id)
			})
		},
	}
	cmd.Flags().UintVar(&id, "id", 0, "Record ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newLookupCommand() *cobra.Command {
	var (
		id       uint
		piazzaID string
		name     string
	)
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Print one Piazza user record",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				ctx := cmd.Context()
				var (
					resp any
					err  error
				)
				switch {
				case cmd.Flags().Changed("id"):
					resp, err = rt.service.GetByID(ctx, id)
				case cmd.Flags().Changed("piazza-id"):
					resp, err = rt.service.GetByPiazzaID(ctx, piazzaID)
				default:
					resp, err = rt.service.GetByName(ctx, name)
				}
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), resp)
			})
		},
	}
	cmd.Flags().UintVar(&id, "id", 0, "Record ID")
	cmd.Flags().StringVar(&piazzaID, "piazza-id", "", "Piazza user ID")
	cmd.Flags().StringVar(&name, "name", "", "Exact display name")
	cmd.MarkFlagsMutuallyExclusive("id", "piazza-id", "name")
	cmd.MarkFlagsOneRequired("id", "piazza-id", "name")
	return cmd
}

func newCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count all Piazza user records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				count, err := rt.service.CountAllUsers(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), count)
				return nil
			})
		},
	}
}

func newCentralIDCommand() *cobra.Command {
	var (
		piazzaID string
		recordID uint
	)
	cmd := &cobra.Command{
		Use:   "central-id",
		Short: "Print the central user a record is linked to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				ctx := cmd.Context()
				if cmd.Flags().Changed("record-id") {
					resp, err := rt.service.GetCentralUserIDByRecordID(ctx, recordID)
					if err != nil {
						return err
					}
					return printYAML(cmd.OutOrStdout(), resp)
				}
				resp, err := rt.service.GetCentralUserIDByPiazzaID(ctx, piazzaID)
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), resp)
			})
		},
	}
	cmd.Flags().StringVar(&piazzaID, "piazza-id", "", "Piazza user ID")
	cmd.Flags().UintVar(&recordID, "record-id", 0, "Record ID")
	cmd.MarkFlagsMutuallyExclusive("piazza-id", "record-id")
	cmd.MarkFlagsOneRequired("piazza-id", "record-id")
	return cmd
}
