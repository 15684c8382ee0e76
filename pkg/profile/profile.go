// Package profile walks a DNOPersistentData directory tree: profile
// directories, their metadata, and the save files inside them.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Scanner discovers profiles and save files under a data root.
type Scanner struct {
	DataRoot string
}

// SaveFile is one discovered save with its optional header companion.
type SaveFile struct {
	Path    string
	DatPath string // "" when no .dat companion exists
	Name    string
	Size    int64
	ModTime time.Time
}

// ProfileData is the subset of profileData.json the report carries through.
// The fields are opaque to the extractor and passed along verbatim.
type ProfileData struct {
	Version               json.RawMessage `json:"version"`
	CompletedMissionsData json.RawMessage `json:"completedMissionsData"`
	CampaignProfiles      json.RawMessage `json:"campaignProfiles"`
}

// NewScanner creates a scanner rooted at dataRoot.
func NewScanner(dataRoot string) *Scanner {
	return &Scanner{DataRoot: dataRoot}
}

// Profiles returns the profile directory names under the data root, sorted.
func (s *Scanner) Profiles() ([]string, error) {
	entries, err := os.ReadDir(s.DataRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read data root: %w", err)
	}
	var profiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			profiles = append(profiles, entry.Name())
		}
	}
	sort.Strings(profiles)
	return profiles, nil
}

// ActiveProfile reads the active profile name from the "profile" file,
// stripping a UTF-8 BOM if present. Returns "" when the file does not exist.
func (s *Scanner) ActiveProfile() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.DataRoot, "profile"))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	name := strings.TrimPrefix(string(data), "\ufeff")
	return strings.TrimSpace(name), nil
}

// ProfileData loads profileData.json for a profile. Returns nil without error
// when the file does not exist or does not parse; profile metadata is
// optional.
func (s *Scanner) ProfileData(profileName string) *ProfileData {
	data, err := os.ReadFile(filepath.Join(s.DataRoot, profileName, "profileData.json"))
	if err != nil {
		return nil
	}
	var pd ProfileData
	if err := json.Unmarshal(data, &pd); err != nil {
		return nil
	}
	if pd.CompletedMissionsData == nil {
		pd.CompletedMissionsData = json.RawMessage("[]")
	}
	if pd.CampaignProfiles == nil {
		pd.CampaignProfiles = json.RawMessage("[]")
	}
	return &pd
}

// SaveFiles discovers the save files for a profile: regular files that are
// neither .dat headers nor .json metadata, directly in the profile directory
// or one subdirectory level down (the game nests some saves under UUID
// directories). Results are sorted by file name.
func (s *Scanner) SaveFiles(profileName string) ([]SaveFile, error) {
	profileDir := filepath.Join(s.DataRoot, profileName)
	entries, err := os.ReadDir(profileDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile dir: %w", err)
	}

	var saves []SaveFile
	appendSave := func(dir string, entry os.DirEntry) {
		name := entry.Name()
		if strings.HasSuffix(name, ".dat") || strings.HasSuffix(name, ".json") {
			return
		}
		info, err := entry.Info()
		if err != nil {
			return
		}
		path := filepath.Join(dir, name)
		save := SaveFile{
			Path:    path,
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		if datPath := path + ".dat"; fileExists(datPath) {
			save.DatPath = datPath
		}
		saves = append(saves, save)
	}

	for _, entry := range entries {
		if entry.Type().IsRegular() {
			appendSave(profileDir, entry)
			continue
		}
		if !entry.IsDir() {
			continue
		}
		subDir := filepath.Join(profileDir, entry.Name())
		subEntries, err := os.ReadDir(subDir)
		if err != nil {
			continue
		}
		for _, subEntry := range subEntries {
			if subEntry.Type().IsRegular() {
				appendSave(subDir, subEntry)
			}
		}
	}

	sort.Slice(saves, func(i, j int) bool { return saves[i].Name < saves[j].Name })
	return saves, nil
}

// Read loads the save payload and its header companion. The two reads run
// concurrently; the caller gets both buffers only once both have completed. A
// missing .dat companion yields a nil header buffer, not an error.
func (f SaveFile) Read() (save, header []byte, err error) {
	type readResult struct {
		data []byte
		err  error
	}
	headerCh := make(chan readResult, 1)
	go func() {
		if f.DatPath == "" {
			headerCh <- readResult{}
			return
		}
		data, err := os.ReadFile(f.DatPath)
		if os.IsNotExist(err) {
			err = nil
		}
		headerCh <- readResult{data: data, err: err}
	}()

	save, err = os.ReadFile(f.Path)
	headerRes := <-headerCh
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read save file: %w", err)
	}
	if headerRes.err != nil {
		return nil, nil, fmt.Errorf("failed to read header file: %w", headerRes.err)
	}
	return save, headerRes.data, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
