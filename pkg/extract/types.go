package extract

// Header holds the decoded fields of a save's profile header record.
type Header struct {
	SaveVersion    int32   `json:"saveVersion"`
	MissionID      int32   `json:"missionId"`
	MissionIDName  *string `json:"missionIdName"`
	DifficultyID   int32   `json:"difficultyId"`
	DifficultyName string  `json:"difficultyName"`
}

// SessionTime holds in-game and wall-clock elapsed time for one session.
type SessionTime struct {
	GameSeconds   float64 `json:"gameSeconds"`
	RealSeconds   float64 `json:"realSeconds"`
	GameFormatted string  `json:"gameFormatted"`
	RealFormatted string  `json:"realFormatted"`
}

// Ledger holds one or two snapshots of a resource statistics record. LastDay
// is present only when the record's back-referenced second instance decoded.
type Ledger struct {
	CurrentDay map[string]int32 `json:"currentDay"`
	LastDay    map[string]int32 `json:"lastDay,omitempty"`
}

// WaveSummary aggregates every wave record found in a save.
type WaveSummary struct {
	Total      int                      `json:"total"`
	Destroyed  int                      `json:"destroyed"`
	MajorWaves int                      `json:"majorWaves"`
	Details    []map[string]interface{} `json:"details"`
}

// Stats is the per-save extraction result. Sub-records are nil when their
// backing record was not present in the stream.
type Stats struct {
	EnemiesKilled   *int32                 `json:"enemiesKilled,omitempty"`
	SessionTime     *SessionTime           `json:"sessionTime,omitempty"`
	Resources       *Ledger                `json:"resources,omitempty"`
	UndeadResources *Ledger                `json:"undeadResources,omitempty"`
	Achievements    map[string]interface{} `json:"achievements,omitempty"`
	Waves           *WaveSummary           `json:"waves,omitempty"`
}

// Result is the outcome of one extraction: a best-effort partial record plus
// the list of what could not be recovered. Decoder failures never abort the
// extraction as a whole.
type Result struct {
	Header *Header
	Stats  Stats
	Errors []string
}

// RecordNotFoundError reports that a record type never matched in the stream.
type RecordNotFoundError struct {
	Type string
}

func (e *RecordNotFoundError) Error() string {
	return e.Type + " not found"
}
