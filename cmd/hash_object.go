package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/kvcs/internal/objects"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <filepath>",
	Short: "Compute the object hash of a file and optionally store it",
	Long: `Compute the object hash (SHA-256) of a file's content.
Optionally write the content into the object store.

Examples:
  # Compute hash without storing
  kvcs hash-object myfile.txt

  # Compute hash and store in .kvcs/objects
  kvcs hash-object -w myfile.txt`,
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runHashObject,
}

var writeFlag bool

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	hashObjectCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the object into the object store")
}

// runHashObject computes the blob hash and optionally stores it.
func runHashObject(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	blob := objects.NewBlob(content)

	if writeFlag {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		if err := repo.Store().Store(blob); err != nil {
			return fmt.Errorf("failed to store object: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), blob.Hash())
	return nil
}
