package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Ravikin/dno-stats/pkg/api"
	"github.com/Ravikin/dno-stats/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP extraction API",
	Long: `Run an HTTP server that accepts save file uploads and responds with
extracted statistics in the same JSON shape the scan command emits.

Example:
  dnostats serve --port 9200 --api-key secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			loaded, err := config.LoadConfig(path)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.APIKey, _ = cmd.Flags().GetString("api-key")
		}

		return api.StartServer(api.ServerConfig{
			Bind:   cfg.Bind,
			Port:   cfg.Port,
			APIKey: cfg.APIKey,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config", "", "Path to a YAML config file")
	serveCmd.Flags().String("bind", "127.0.0.1", "Bind address")
	serveCmd.Flags().Int("port", 8080, "Listen port")
	serveCmd.Flags().String("api-key", "", "Require this X-API-Key header (empty disables auth)")
}
