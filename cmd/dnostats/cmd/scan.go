package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ravikin/dno-stats/pkg/cache"
	"github.com/Ravikin/dno-stats/pkg/profile"
	"github.com/Ravikin/dno-stats/pkg/report"
)

// scanOptions narrows which profiles and saves a walk covers.
type scanOptions struct {
	profileFilter   string
	saveFilter      string
	buildMissionMap bool
	cacheDir        string
}

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Walk the save directory tree and emit extracted statistics as JSON",
	Long: `Walk every profile under the data root, extract statistics from each
save file, and emit one JSON document covering all of them.

Examples:
  dnostats scan --pretty
  dnostats scan --profile Alice --save "mission start"
  dnostats scan --build-mission-map --output stats.json
  dnostats scan --cache-dir ~/.cache/dnostats`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveDataRoot(cmd)
		if err != nil {
			return err
		}

		opts := scanOptions{}
		opts.profileFilter, _ = cmd.Flags().GetString("profile")
		opts.saveFilter, _ = cmd.Flags().GetString("save")
		opts.buildMissionMap, _ = cmd.Flags().GetBool("build-mission-map")
		opts.cacheDir, _ = cmd.Flags().GetString("cache-dir")

		output, err := runScan(root, opts)
		if err != nil {
			return err
		}

		pretty, _ := cmd.Flags().GetBool("pretty")
		var data []byte
		if pretty {
			data, err = json.MarshalIndent(output, "", "  ")
		} else {
			data, err = json.Marshal(output)
		}
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		data = append(data, '\n')

		if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().String("profile", "", "Extract only this profile")
	scanCmd.Flags().String("save", "", "Extract only saves whose name contains this substring")
	scanCmd.Flags().StringP("output", "o", "", "Write JSON to file (default: stdout)")
	scanCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	scanCmd.Flags().Bool("build-mission-map", false, "Auto-build missionId -> name mapping from mission-start saves")
	scanCmd.Flags().String("cache-dir", "", "Reuse extraction results for unchanged saves from this cache")
}

// runScan performs one full walk and returns the assembled envelope.
func runScan(root string, opts scanOptions) (*report.Output, error) {
	scanner := profile.NewScanner(root)

	var missionMap map[int32]string
	if opts.buildMissionMap {
		var err error
		missionMap, err = profile.BuildMissionMap(scanner)
		if err != nil {
			return nil, fmt.Errorf("failed to build mission map: %w", err)
		}
	}

	var store *cache.Store
	if opts.cacheDir != "" {
		var err error
		store, err = cache.Open(opts.cacheDir)
		if err != nil {
			return nil, err
		}
		defer store.Close()
	}

	profileNames, err := scanner.Profiles()
	if err != nil {
		return nil, err
	}
	if opts.profileFilter != "" {
		if !containsString(profileNames, opts.profileFilter) {
			return nil, fmt.Errorf("profile %q not found, available: %s", opts.profileFilter, strings.Join(profileNames, ", "))
		}
		profileNames = []string{opts.profileFilter}
	}

	active, err := scanner.ActiveProfile()
	if err != nil {
		return nil, err
	}

	var profiles []report.Profile
	for _, name := range profileNames {
		saves, err := scanner.SaveFiles(name)
		if err != nil {
			return nil, err
		}

		entries := make([]report.SaveEntry, 0, len(saves))
		for _, save := range saves {
			if opts.saveFilter != "" && !strings.Contains(save.Name, opts.saveFilter) {
				continue
			}
			relPath, err := filepath.Rel(root, save.Path)
			if err != nil {
				relPath = save.Path
			}

			var key []byte
			if store != nil {
				key = cache.Key(save.Path, save.Size, save.ModTime.UnixNano())
				if entry, ok := store.Get(key); ok {
					entries = append(entries, *entry)
					continue
				}
			}
			entry := report.SaveEntryFor(save, relPath, missionMap)
			if store != nil {
				if err := store.Put(key, &entry); err != nil {
					fmt.Fprintf(os.Stderr, "warning: cache write failed for %s: %v\n", save.Name, err)
				}
			}
			entries = append(entries, entry)
		}

		profiles = append(profiles, report.Profile{
			Name:        name,
			IsActive:    name == active,
			ProfileData: scanner.ProfileData(name),
			Saves:       entries,
		})
	}

	output := report.New(profiles, missionMap)
	return &output, nil
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
