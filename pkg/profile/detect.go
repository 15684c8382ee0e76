package profile

import (
	"os"
	"path/filepath"
)

// DetectDataRoot probes the known install locations for the game's
// DNOPersistentData directory and returns the first one that exists.
func DetectDataRoot() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	candidates := []string{
		// Steam Proton
		filepath.Join(home, ".local/share/Steam/steamapps/compatdata/1272320/pfx/drive_c/users/steamuser/AppData/LocalLow/Door 407/Diplomacy is Not an Option/DNOPersistentData"),
		// native Linux
		filepath.Join(home, ".config/unity3d/Door 407/Diplomacy is Not an Option/DNOPersistentData"),
		// Windows
		filepath.Join(home, "AppData/LocalLow/Door 407/Diplomacy is Not an Option/DNOPersistentData"),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
