package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ravikin/dno-stats/pkg/profile"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dnostats",
	Short: "Extract statistics from Diplomacy is Not an Option save files",
	Long: `dnostats reads the game's binary save files and emits structured
JSON statistics: mission header, kill counts, session times, resource
ledgers, achievements, and wave history.

Save files use an opaque object-graph serialization; extraction is
best-effort and per-record, so a partially readable save still yields
everything that could be recovered.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("data-root", "d", "", "Path to DNOPersistentData (auto-detected when empty)")
}

// resolveDataRoot applies the --data-root flag or falls back to the known
// game install locations.
func resolveDataRoot(cmd *cobra.Command) (string, error) {
	root, _ := cmd.Flags().GetString("data-root")
	if root == "" {
		detected, ok := profile.DetectDataRoot()
		if !ok {
			return "", fmt.Errorf("could not auto-detect DNOPersistentData directory, use --data-root")
		}
		root = detected
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", root)
	}
	return root, nil
}
