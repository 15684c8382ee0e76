package extract

import (
	"errors"
	"fmt"
	"math"

	"github.com/Ravikin/dno-stats/pkg/binfmt"
	"github.com/Ravikin/dno-stats/pkg/scan"
)

// Expected field schemas, in wire order, per record type. Field order is part
// of the match: the scanner rejects a candidate whose first member name
// differs.
var (
	headerFields = []string{
		"saveVersion", "missionId", "difficultyId", "profileData",
		"specialHeaderValue", "customMapName", "completedCampaignLinks",
	}
	sessionTimeFields = []string{
		"nightIntensity", "elapsedTime", "elapsedTimeUnscaled",
		"previousFrameElapsedTime", "timeSpeed", "lastTimeSpeed", "dirty",
	}
	resourceFields = []string{
		"foodByFarms", "foodByFishers", "foodByBerrypickers", "wood",
		"treesCutted", "treesPlanted", "stone", "iron",
		"woodConsuming", "ironConsuming",
	}
	undeadResourceFields = []string{
		"zombiesByBurial", "zombiesByCorpses", "deathMetal", "spirit", "bones",
	}
	achievementFields = []string{
		"gatheredGold", "lastGold", "siegeMachineWasTrained",
		"powerUndeadUnitsWasTrained", "portsDestroyed",
		"marketPartsDestroyed", "trainedUnitTypes",
	}
	waveFields = []string{
		"referenceId", "waveId", "mapped", "fullySpawned", "waveDestroyed", "major",
	}
)

var difficultyNames = map[int32]string{
	0: "Easy-Peasy Lemon Squeezy",
	1: "Almost a Walk in the Park",
	2: "Challenge Accepted",
	3: "Ultra-Hardcore",
	4: "Pure Insanity",
}

var errNoHeaderData = errors.New("no header data")

// DifficultyName maps a difficulty id to its in-game label.
func DifficultyName(id int32) string {
	if name, ok := difficultyNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", id)
}

// DecodeHeader extracts the profile header from a save's companion header
// buffer. The record exists under two spellings depending on game version.
// missionNames may be nil; when it maps the decoded mission id, the mapped
// name is attached.
func DecodeHeader(dat []byte, missionNames map[int32]string) (*Header, error) {
	if len(dat) == 0 {
		return nil, errNoHeaderData
	}
	def := scan.FindClassDef(dat, "ProfileSaveHeader", headerFields, 0)
	if def == nil {
		def = scan.FindClassDef(dat, "UI.ProfileSaveHeader", headerFields, 0)
	}
	if def == nil {
		return nil, &RecordNotFoundError{Type: "ProfileSaveHeader"}
	}

	offset := def.DataOffset
	saveVersion, offset, err := binfmt.ReadInt32(dat, offset)
	if err != nil {
		return nil, err
	}
	missionID, offset, err := binfmt.ReadInt32(dat, offset)
	if err != nil {
		return nil, err
	}
	difficultyID, _, err := binfmt.ReadInt32(dat, offset)
	if err != nil {
		return nil, err
	}

	h := &Header{
		SaveVersion:    saveVersion,
		MissionID:      missionID,
		DifficultyID:   difficultyID,
		DifficultyName: DifficultyName(difficultyID),
	}
	if name, ok := missionNames[missionID]; ok {
		h.MissionIDName = &name
	}
	return h, nil
}

// decodeKilledEnemies extracts the running kill counter, a single int32.
func decodeKilledEnemies(data []byte) (*int32, error) {
	def := scan.FindClassDef(data, "KilledEnemiesCounterSingleton", []string{"value"}, 0)
	if def == nil {
		return nil, &RecordNotFoundError{Type: "KilledEnemiesCounterSingleton"}
	}
	value, _, err := binfmt.ReadInt32(data, def.DataOffset)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// decodeSessionTime extracts elapsed scaled and unscaled session time. The
// record declares seven fields but only the two elapsed-time floats are
// consumed, after skipping the leading night-intensity float.
func decodeSessionTime(data []byte) (*SessionTime, error) {
	def := scan.FindClassDef(data, "CurrentSessionTimeSingleton", sessionTimeFields, 0)
	if def == nil {
		return nil, &RecordNotFoundError{Type: "CurrentSessionTimeSingleton"}
	}

	offset := def.DataOffset + 4 // skip nightIntensity
	elapsed, offset, err := binfmt.ReadFloat32(data, offset)
	if err != nil {
		return nil, err
	}
	unscaled, _, err := binfmt.ReadFloat32(data, offset)
	if err != nil {
		return nil, err
	}

	game := float64(elapsed)
	real := float64(unscaled)
	return &SessionTime{
		GameSeconds:   math.Round(game*10) / 10,
		RealSeconds:   math.Round(real*10) / 10,
		GameFormatted: FormatDuration(game),
		RealFormatted: FormatDuration(real),
	}, nil
}

// decodeLedger extracts a resource statistics record: a current-day snapshot
// of int32 fields and, when the definition's object id resolved, an optional
// back-referenced last-day snapshot with the identical layout.
func decodeLedger(data []byte, className string, fields []string) (*Ledger, error) {
	def := scan.FindClassDef(data, className, fields, 0)
	if def == nil {
		return nil, &RecordNotFoundError{Type: className}
	}

	current, offset, err := readInt32Fields(data, def.DataOffset, fields)
	if err != nil {
		return nil, err
	}
	ledger := &Ledger{CurrentDay: current}

	if def.ObjectID != 0 {
		if refOffset := scan.FindBackRef(data, def.ObjectID, offset); refOffset >= 0 {
			if last, _, err := readInt32Fields(data, refOffset, fields); err == nil {
				ledger.LastDay = last
			}
		}
	}
	return ledger, nil
}

func readInt32Fields(data []byte, offset int, fields []string) (map[string]int32, int, error) {
	out := make(map[string]int32, len(fields))
	for _, name := range fields {
		value, next, err := binfmt.ReadInt32(data, offset)
		if err != nil {
			return nil, 0, err
		}
		out[name] = value
		offset = next
	}
	return out, offset, nil
}

// decodeAchievements extracts the achievement counters. Decoding stops at the
// first field without a primitive wire tag: the trailing trainedUnitTypes
// field is a collection and out of scope for this extractor.
func decodeAchievements(data []byte) (map[string]interface{}, error) {
	def := scan.FindClassDef(data, "AchievementsSaveData", achievementFields, 0)
	if def == nil {
		return nil, &RecordNotFoundError{Type: "AchievementsSaveData"}
	}

	out := make(map[string]interface{})
	offset := def.DataOffset
	for i, name := range def.FieldNames {
		if def.Tags[i] != scan.TagPrimitive {
			break
		}
		value, next, err := binfmt.ReadPrimitive(data, offset, def.PrimTypes[i])
		if err != nil {
			return nil, err
		}
		out[name] = value
		offset = next
	}
	return out, nil
}

// decodeWaves extracts every wave record: one full definition plus an
// open-ended run of back-references to its object id. A save with no wave
// record at all yields (nil, nil) rather than a zero summary; absence of wave
// data is normal for early-game saves.
func decodeWaves(data []byte) (*WaveSummary, error) {
	def := scan.FindClassDef(data, "WaveHolderSaveData", waveFields, 0)
	if def == nil {
		return nil, nil
	}

	var waves []map[string]interface{}
	if wave := readWaveFields(data, def.DataOffset, def); wave != nil {
		waves = append(waves, wave)
	}
	if def.ObjectID != 0 {
		for _, offset := range scan.FindAllBackRefs(data, def.ObjectID, def.DataOffset) {
			if wave := readWaveFields(data, offset, def); wave != nil {
				waves = append(waves, wave)
			}
		}
	}
	if len(waves) == 0 {
		return nil, nil
	}

	summary := &WaveSummary{Total: len(waves), Details: waves}
	for _, wave := range waves {
		if destroyed, _ := wave["waveDestroyed"].(bool); destroyed {
			summary.Destroyed++
		}
		if major, _ := wave["major"].(bool); major {
			summary.MajorWaves++
		}
	}
	return summary, nil
}

// readWaveFields decodes one wave instance at offset, stopping at the first
// non-primitive field like the achievements decoder does. Returns nil when
// nothing decodes.
func readWaveFields(data []byte, offset int, def *scan.ClassDef) map[string]interface{} {
	wave := make(map[string]interface{})
	for i, name := range def.FieldNames {
		if def.Tags[i] != scan.TagPrimitive {
			break
		}
		value, next, err := binfmt.ReadPrimitive(data, offset, def.PrimTypes[i])
		if err != nil {
			return nil
		}
		wave[name] = value
		offset = next
	}
	if len(wave) == 0 {
		return nil
	}
	return wave
}

// FormatDuration renders seconds as H:MM:SS, hours unpadded, floor-truncated
// to whole seconds.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
