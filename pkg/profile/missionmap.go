package profile

import (
	"os"
	"strings"

	"github.com/Ravikin/dno-stats/pkg/extract"
)

// Save-name suffixes whose prefix is a clean mission name. Only these saves
// feed the mission map; quick-saves and autosaves carry user-chosen names.
var missionNameSuffixes = []string{", mission start", ", faction choice"}

// BuildMissionMap correlates mission ids with mission names by decoding the
// header of every mission-start save and taking the save's cleaned file name.
// The first name seen for an id wins.
func BuildMissionMap(s *Scanner) (map[int32]string, error) {
	profiles, err := s.Profiles()
	if err != nil {
		return nil, err
	}

	missionMap := make(map[int32]string)
	for _, profileName := range profiles {
		saves, err := s.SaveFiles(profileName)
		if err != nil {
			continue
		}
		for _, save := range saves {
			missionName, ok := cleanMissionName(save.Name)
			if !ok || save.DatPath == "" {
				continue
			}
			dat, err := os.ReadFile(save.DatPath)
			if err != nil {
				continue
			}
			header, err := extract.DecodeHeader(dat, nil)
			if err != nil {
				continue
			}
			if _, seen := missionMap[header.MissionID]; !seen {
				missionMap[header.MissionID] = missionName
			}
		}
	}
	return missionMap, nil
}

func cleanMissionName(fileName string) (string, bool) {
	for _, suffix := range missionNameSuffixes {
		if strings.HasSuffix(fileName, suffix) {
			return strings.TrimSuffix(fileName, suffix), true
		}
	}
	return "", false
}
