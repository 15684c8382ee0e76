package extract

import (
	"strings"
	"testing"

	"github.com/Ravikin/dno-stats/internal/savegen"
	"github.com/Ravikin/dno-stats/pkg/binfmt"
	"github.com/Ravikin/dno-stats/pkg/scan"
)

func primInt32Fields(names []string) []savegen.Field {
	fields := make([]savegen.Field, len(names))
	for i, name := range names {
		fields[i] = savegen.Field{Name: name, Tag: scan.TagPrimitive, PrimType: binfmt.PrimInt32}
	}
	return fields
}

func TestExtract_EnemiesKilledInNoise(t *testing.T) {
	// The kill counter embedded in unrelated data must decode; nothing else
	// should, and every absent record must leave a tagged error behind.
	buf := savegen.Noise(250, 0xBEEF)
	buf = savegen.ClassDef(buf, 3, "KilledEnemiesCounterSingleton",
		primInt32Fields([]string{"value"}), savegen.Int32s(1234))
	buf = append(buf, savegen.Noise(250, 0xF00D)...)

	res := Extract(buf, nil, nil)

	if res.Stats.EnemiesKilled == nil {
		t.Fatalf("enemies killed not extracted, errors: %v", res.Errors)
	}
	if *res.Stats.EnemiesKilled != 1234 {
		t.Errorf("enemies killed: got %d, want 1234", *res.Stats.EnemiesKilled)
	}
	if res.Stats.Waves != nil {
		t.Error("waves should be absent")
	}
	if res.Stats.UndeadResources != nil {
		t.Error("undead resources should be absent")
	}

	joined := strings.Join(res.Errors, "\n")
	for _, want := range []string{
		"CurrentSessionTimeSingleton not found",
		"ResourcesStatisticContainer not found",
		"AchievementsSaveData not found",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("errors missing %q, got: %v", want, res.Errors)
		}
	}
	// Undead resources and waves are legitimately absent; no error entry.
	if strings.Contains(joined, "UndeadResourcesStatisticContainer") {
		t.Errorf("undead absence should not be an error: %v", res.Errors)
	}
	if strings.Contains(joined, "WaveHolderSaveData") {
		t.Errorf("wave absence should not be an error: %v", res.Errors)
	}
}

func TestExtract_ResourcesWithLastDay(t *testing.T) {
	fields := primInt32Fields(resourceFields)
	current := savegen.Int32s(100, 110, 120, 130, 140, 150, 160, 170, 180, 190)
	last := savegen.Int32s(90, 91, 92, 93, 94, 95, 96, 97, 98, 99)

	buf := savegen.Junk(50)
	buf = savegen.ClassDef(buf, 7, "ResourcesStatisticContainer", fields, current)
	buf = savegen.BackRef(buf, 42, 7, last)
	buf = append(buf, savegen.Junk(30)...)

	res := Extract(buf, nil, nil)

	ledger := res.Stats.Resources
	if ledger == nil {
		t.Fatalf("resources not extracted, errors: %v", res.Errors)
	}
	if got := ledger.CurrentDay["wood"]; got != 130 {
		t.Errorf("currentDay.wood: got %d, want 130", got)
	}
	if got := ledger.CurrentDay["ironConsuming"]; got != 190 {
		t.Errorf("currentDay.ironConsuming: got %d, want 190", got)
	}
	if ledger.LastDay == nil {
		t.Fatal("lastDay snapshot not extracted")
	}
	if got := ledger.LastDay["foodByFarms"]; got != 90 {
		t.Errorf("lastDay.foodByFarms: got %d, want 90", got)
	}
	if got := ledger.LastDay["ironConsuming"]; got != 99 {
		t.Errorf("lastDay.ironConsuming: got %d, want 99", got)
	}
}

func TestExtract_UndeadResources(t *testing.T) {
	fields := primInt32Fields(undeadResourceFields)
	buf := savegen.Junk(20)
	buf = savegen.ClassDef(buf, 4, "UndeadResourcesStatisticContainer", fields,
		savegen.Int32s(5, 10, 15, 20, 25))

	res := Extract(buf, nil, nil)
	ledger := res.Stats.UndeadResources
	if ledger == nil {
		t.Fatalf("undead resources not extracted, errors: %v", res.Errors)
	}
	if got := ledger.CurrentDay["deathMetal"]; got != 15 {
		t.Errorf("deathMetal: got %d, want 15", got)
	}
	if ledger.LastDay != nil {
		t.Error("lastDay should be absent without a back-reference")
	}
}

func TestDecodeSessionTime(t *testing.T) {
	fields := []savegen.Field{
		{Name: "nightIntensity", Tag: scan.TagPrimitive, PrimType: binfmt.PrimSingle},
		{Name: "elapsedTime", Tag: scan.TagPrimitive, PrimType: binfmt.PrimSingle},
		{Name: "elapsedTimeUnscaled", Tag: scan.TagPrimitive, PrimType: binfmt.PrimSingle},
		{Name: "previousFrameElapsedTime", Tag: scan.TagPrimitive, PrimType: binfmt.PrimSingle},
		{Name: "timeSpeed", Tag: scan.TagPrimitive, PrimType: binfmt.PrimSingle},
		{Name: "lastTimeSpeed", Tag: scan.TagPrimitive, PrimType: binfmt.PrimSingle},
		{Name: "dirty", Tag: scan.TagPrimitive, PrimType: binfmt.PrimBoolean},
	}
	values := savegen.Float32s(0.5, 125.4, 3661.0, 0.1, 1.0, 2.0)
	values = append(values, 0x01)

	buf := savegen.ClassDef(savegen.Junk(25), 8, "CurrentSessionTimeSingleton", fields, values)

	res := Extract(buf, nil, nil)
	st := res.Stats.SessionTime
	if st == nil {
		t.Fatalf("session time not extracted, errors: %v", res.Errors)
	}
	if st.GameSeconds != 125.4 {
		t.Errorf("gameSeconds: got %v, want 125.4", st.GameSeconds)
	}
	if st.RealSeconds != 3661.0 {
		t.Errorf("realSeconds: got %v, want 3661.0", st.RealSeconds)
	}
	if st.GameFormatted != "0:02:05" {
		t.Errorf("gameFormatted: got %q, want \"0:02:05\"", st.GameFormatted)
	}
	if st.RealFormatted != "1:01:01" {
		t.Errorf("realFormatted: got %q, want \"1:01:01\"", st.RealFormatted)
	}
}

func TestFormatDuration(t *testing.T) {
	testCases := []struct {
		seconds float64
		want    string
	}{
		{seconds: 0, want: "0:00:00"},
		{seconds: 59.9, want: "0:00:59"},
		{seconds: 125.4, want: "0:02:05"},
		{seconds: 3661.0, want: "1:01:01"},
		{seconds: 36000, want: "10:00:00"},
	}
	for _, tc := range testCases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%v): got %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestDecodeAchievements_StopsAtNonPrimitive(t *testing.T) {
	fields := []savegen.Field{
		{Name: "gatheredGold", Tag: scan.TagPrimitive, PrimType: binfmt.PrimInt32},
		{Name: "lastGold", Tag: scan.TagPrimitive, PrimType: binfmt.PrimInt32},
		{Name: "siegeMachineWasTrained", Tag: scan.TagPrimitive, PrimType: binfmt.PrimBoolean},
		{Name: "powerUndeadUnitsWasTrained", Tag: scan.TagPrimitive, PrimType: binfmt.PrimBoolean},
		{Name: "portsDestroyed", Tag: scan.TagPrimitive, PrimType: binfmt.PrimInt32},
		{Name: "marketPartsDestroyed", Tag: scan.TagPrimitive, PrimType: binfmt.PrimInt32},
		{Name: "trainedUnitTypes", Tag: scan.TagSystemClass, TypeName: "System.Collections.Generic.HashSet"},
	}
	values := savegen.Int32s(5000, 4000)
	values = append(values, 0x01, 0x00)
	values = append(values, savegen.Int32s(3, 2)...)

	buf := savegen.ClassDef(savegen.Junk(30), 12, "AchievementsSaveData", fields, values)

	res := Extract(buf, nil, nil)
	ach := res.Stats.Achievements
	if ach == nil {
		t.Fatalf("achievements not extracted, errors: %v", res.Errors)
	}
	if len(ach) != 6 {
		t.Errorf("decoded field count: got %d, want 6 (stop before trainedUnitTypes)", len(ach))
	}
	if _, present := ach["trainedUnitTypes"]; present {
		t.Error("trainedUnitTypes must not be decoded")
	}
	if got := ach["gatheredGold"]; got != int32(5000) {
		t.Errorf("gatheredGold: got %v, want 5000", got)
	}
	if got := ach["siegeMachineWasTrained"]; got != true {
		t.Errorf("siegeMachineWasTrained: got %v, want true", got)
	}
	if got := ach["powerUndeadUnitsWasTrained"]; got != false {
		t.Errorf("powerUndeadUnitsWasTrained: got %v, want false", got)
	}
}

func waveValues(referenceID, waveID int32, mapped, fullySpawned, destroyed, major bool) []byte {
	values := savegen.Int32s(referenceID, waveID)
	for _, b := range []bool{mapped, fullySpawned, destroyed, major} {
		if b {
			values = append(values, 0x01)
		} else {
			values = append(values, 0x00)
		}
	}
	return values
}

func waveFieldDefs() []savegen.Field {
	return []savegen.Field{
		{Name: "referenceId", Tag: scan.TagPrimitive, PrimType: binfmt.PrimInt32},
		{Name: "waveId", Tag: scan.TagPrimitive, PrimType: binfmt.PrimInt32},
		{Name: "mapped", Tag: scan.TagPrimitive, PrimType: binfmt.PrimBoolean},
		{Name: "fullySpawned", Tag: scan.TagPrimitive, PrimType: binfmt.PrimBoolean},
		{Name: "waveDestroyed", Tag: scan.TagPrimitive, PrimType: binfmt.PrimBoolean},
		{Name: "major", Tag: scan.TagPrimitive, PrimType: binfmt.PrimBoolean},
	}
}

func TestExtract_Waves(t *testing.T) {
	buf := savegen.Junk(40)
	buf = savegen.ClassDef(buf, 7, "WaveHolderSaveData", waveFieldDefs(),
		waveValues(7, 0, true, true, true, false))
	buf = savegen.BackRef(buf, 8, 7, waveValues(8, 2, true, true, true, true))
	buf = savegen.BackRef(buf, 9, 7, waveValues(9, 3, true, false, false, false))

	res := Extract(buf, nil, nil)
	waves := res.Stats.Waves
	if waves == nil {
		t.Fatalf("waves not extracted, errors: %v", res.Errors)
	}
	if waves.Total != 3 {
		t.Errorf("total: got %d, want 3", waves.Total)
	}
	if waves.Destroyed != 2 {
		t.Errorf("destroyed: got %d, want 2", waves.Destroyed)
	}
	if waves.MajorWaves != 1 {
		t.Errorf("majorWaves: got %d, want 1", waves.MajorWaves)
	}
	if len(waves.Details) != 3 {
		t.Fatalf("details: got %d entries, want 3", len(waves.Details))
	}
	if got := waves.Details[1]["waveId"]; got != int32(2) {
		t.Errorf("details order broken: second waveId got %v, want 2", got)
	}
}

func TestExtract_NoWaveData(t *testing.T) {
	// Absence of wave records must report "no data" (nil), never a summary
	// with total = 0.
	res := Extract(savegen.Junk(300), nil, nil)
	if res.Stats.Waves != nil {
		t.Errorf("waves: got %+v, want nil", res.Stats.Waves)
	}
}

func TestDecodeHeader(t *testing.T) {
	headerDefs := []savegen.Field{
		{Name: "saveVersion", Tag: scan.TagPrimitive, PrimType: binfmt.PrimInt32},
		{Name: "missionId", Tag: scan.TagPrimitive, PrimType: binfmt.PrimInt32},
		{Name: "difficultyId", Tag: scan.TagPrimitive, PrimType: binfmt.PrimInt32},
		{Name: "profileData", Tag: scan.TagClass, TypeName: "ProfileData"},
		{Name: "specialHeaderValue", Tag: scan.TagPrimitive, PrimType: binfmt.PrimInt32},
		{Name: "customMapName", Tag: scan.TagString},
		{Name: "completedCampaignLinks", Tag: scan.TagSystemClass, TypeName: "System.Collections.Generic.List"},
	}
	dat := savegen.ClassDef(savegen.Junk(35), 2, "UI.ProfileSaveHeader", headerDefs,
		savegen.Int32s(9, 3, 2))

	missionNames := map[int32]string{3: "Green Valley"}
	header, err := DecodeHeader(dat, missionNames)
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	if header.SaveVersion != 9 {
		t.Errorf("saveVersion: got %d, want 9", header.SaveVersion)
	}
	if header.MissionID != 3 {
		t.Errorf("missionId: got %d, want 3", header.MissionID)
	}
	if header.MissionIDName == nil || *header.MissionIDName != "Green Valley" {
		t.Errorf("missionIdName: got %v, want Green Valley", header.MissionIDName)
	}
	if header.DifficultyID != 2 {
		t.Errorf("difficultyId: got %d, want 2", header.DifficultyID)
	}
	if header.DifficultyName != "Challenge Accepted" {
		t.Errorf("difficultyName: got %q", header.DifficultyName)
	}
}

func TestDecodeHeader_NoData(t *testing.T) {
	if _, err := DecodeHeader(nil, nil); err == nil {
		t.Error("expected an error for an empty header buffer")
	}
}

func TestDifficultyName_Unknown(t *testing.T) {
	testCases := []struct {
		id   int32
		want string
	}{
		{id: 0, want: "Easy-Peasy Lemon Squeezy"},
		{id: 4, want: "Pure Insanity"},
		{id: 5, want: "Unknown(5)"},
		{id: -1, want: "Unknown(-1)"},
		{id: 99, want: "Unknown(99)"},
	}
	for _, tc := range testCases {
		if got := DifficultyName(tc.id); got != tc.want {
			t.Errorf("DifficultyName(%d): got %q, want %q", tc.id, got, tc.want)
		}
	}
}
