package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Ravikin/dno-stats/pkg/report"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a human-readable table of save statistics",
	Long: `Walk the data root like scan does, but print one table row per save
instead of the full JSON document.

Example:
  dnostats summary --profile Alice`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveDataRoot(cmd)
		if err != nil {
			return err
		}

		opts := scanOptions{}
		opts.profileFilter, _ = cmd.Flags().GetString("profile")
		opts.saveFilter, _ = cmd.Flags().GetString("save")

		output, err := runScan(root, opts)
		if err != nil {
			return err
		}
		return printSummary(output)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().String("profile", "", "Summarize only this profile")
	summaryCmd.Flags().String("save", "", "Summarize only saves whose name contains this substring")
}

// printSummary renders one row per save.
func printSummary(output *report.Output) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "PROFILE\tSAVE\tDIFFICULTY\tKILLS\tGAME TIME\tWAVES\tERRORS")
	for _, prof := range output.Profiles {
		profileName := prof.Name
		if prof.IsActive {
			profileName += " (active)"
		}
		for _, save := range prof.Saves {
			difficulty := "-"
			if save.Header != nil {
				difficulty = save.Header.DifficultyName
			}
			kills := "-"
			if save.Statistics.EnemiesKilled != nil {
				kills = fmt.Sprintf("%d", *save.Statistics.EnemiesKilled)
			}
			gameTime := "-"
			if save.Statistics.SessionTime != nil {
				gameTime = save.Statistics.SessionTime.GameFormatted
			}
			waves := "-"
			if save.Statistics.Waves != nil {
				waves = fmt.Sprintf("%d (%d destroyed)", save.Statistics.Waves.Total, save.Statistics.Waves.Destroyed)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
				profileName, save.FileName, difficulty, kills, gameTime, waves, len(save.Errors))
		}
	}
	return nil
}
