package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write user configuration",
	Long: `Read and write the user identity recorded in commits.
Supported keys: user.name, user.email.`,
}

var configGetCmd = &cobra.Command{
	Use:          "get <key>",
	Short:        "Print a configuration value",
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:          "set <key> <value>",
	Short:        "Set a configuration value",
	SilenceUsage: true,
	Args:         exactArgs(2),
	RunE:         runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:          "list",
	Short:        "Print all configuration values",
	SilenceUsage: true,
	Args:         exactArgs(0),
	RunE:         runConfigList,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	value, err := repo.GetConfig(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	if err := repo.SetConfig(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigList(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	entries, err := repo.ConfigList()
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", e.Key, e.Value)
	}
	return nil
}
