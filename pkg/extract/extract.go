// Package extract turns raw save-file bytes into structured game statistics.
// Each record decoder is a pure function over an immutable buffer; decoders
// run independently and a failure in one never blocks the others.
package extract

import (
	"errors"
	"fmt"
)

// Extract runs every record decoder against the two input buffers: the header
// decoder against headerData, everything else against saveData. Decoder
// failures are isolated into Result.Errors; the returned record is always a
// best-effort partial.
func Extract(saveData, headerData []byte, missionNames map[int32]string) Result {
	var res Result

	record := func(key string, err error) {
		if err == nil {
			return
		}
		var notFound *RecordNotFoundError
		if errors.As(err, &notFound) {
			res.Errors = append(res.Errors, notFound.Error())
			return
		}
		res.Errors = append(res.Errors, fmt.Sprintf("error extracting %s: %v", key, err))
	}

	header, err := DecodeHeader(headerData, missionNames)
	res.Header = header
	record("header", err)

	killed, err := decodeKilledEnemies(saveData)
	res.Stats.EnemiesKilled = killed
	record("enemiesKilled", err)

	sessionTime, err := decodeSessionTime(saveData)
	res.Stats.SessionTime = sessionTime
	record("sessionTime", err)

	resources, err := decodeLedger(saveData, "ResourcesStatisticContainer", resourceFields)
	res.Stats.Resources = resources
	record("resources", err)

	// Undead resources only exist for undead-faction saves; absence is not
	// worth an error entry.
	undead, err := decodeLedger(saveData, "UndeadResourcesStatisticContainer", undeadResourceFields)
	res.Stats.UndeadResources = undead
	var notFound *RecordNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		record("undeadResources", err)
	}

	achievements, err := decodeAchievements(saveData)
	res.Stats.Achievements = achievements
	record("achievements", err)

	waves, err := decodeWaves(saveData)
	res.Stats.Waves = waves
	record("waves", err)

	return res
}
