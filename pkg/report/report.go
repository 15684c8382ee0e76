// Package report assembles the JSON envelope consumed by the HTML report
// renderer and the HTTP surface. The field layout is a compatibility contract;
// fields are added, never renamed.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Ravikin/dno-stats/pkg/extract"
	"github.com/Ravikin/dno-stats/pkg/profile"
)

// ExtractorVersion is reported in every envelope.
const ExtractorVersion = "1.0.0"

const timeLayout = "2006-01-02T15:04:05Z"

// Output is the top-level envelope.
type Output struct {
	ExtractorVersion string            `json:"extractorVersion"`
	ExtractedAt      string            `json:"extractedAt"`
	MissionMap       map[string]string `json:"missionMap,omitempty"`
	Profiles         []Profile         `json:"profiles"`
}

// Profile is one profile directory's worth of results.
type Profile struct {
	Name        string               `json:"name"`
	IsActive    bool                 `json:"isActive"`
	ProfileData *profile.ProfileData `json:"profileData,omitempty"`
	Saves       []SaveEntry          `json:"saves"`
}

// SaveEntry is the extraction result for a single save file.
type SaveEntry struct {
	FileName     string          `json:"fileName"`
	FilePath     string          `json:"filePath,omitempty"`
	FileSize     int64           `json:"fileSize"`
	LastModified string          `json:"lastModified"`
	Header       *extract.Header `json:"header,omitempty"`
	Statistics   extract.Stats   `json:"statistics"`
	Errors       []string        `json:"errors,omitempty"`
}

// New wraps per-profile results in the versioned envelope, stamped with the
// current UTC time at second precision.
func New(profiles []Profile, missionMap map[int32]string) Output {
	out := Output{
		ExtractorVersion: ExtractorVersion,
		ExtractedAt:      time.Now().UTC().Format(timeLayout),
		Profiles:         profiles,
	}
	if len(missionMap) > 0 {
		out.MissionMap = make(map[string]string, len(missionMap))
		for id, name := range missionMap {
			out.MissionMap[strconv.Itoa(int(id))] = name
		}
	}
	return out
}

// SaveEntryFor reads and extracts one save file into its report entry.
// Read failures become the entry's error list; extraction itself never fails
// outright.
func SaveEntryFor(f profile.SaveFile, relPath string, missionMap map[int32]string) SaveEntry {
	entry := SaveEntry{
		FileName:     f.Name,
		FilePath:     relPath,
		FileSize:     f.Size,
		LastModified: f.ModTime.UTC().Format(timeLayout),
	}
	save, header, err := f.Read()
	if err != nil {
		entry.Errors = []string{fmt.Sprintf("read failed: %v", err)}
		return entry
	}
	result := extract.Extract(save, header, missionMap)
	entry.Header = result.Header
	entry.Statistics = result.Stats
	entry.Errors = result.Errors
	return entry
}
