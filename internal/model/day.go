package model

import "fmt"

// DaySchemaVersion is the current on-disk schema version for DayRecord.
// Older versions are upgraded in memory by the migrate package.
const DaySchemaVersion = 3

// PrimaryDoseCount is the number of doses tracked for the primary medication.
const PrimaryDoseCount = 3

// DoseEntry records whether a single medication dose was taken.
type DoseEntry struct {
	Taken   bool   `json:"taken"`
	TakenAt *int64 `json:"taken_at,omitempty"`
}

// MultiDose is a medication taken in several doses over the day.
type MultiDose struct {
	Doses []DoseEntry `json:"doses"`
}

// WaterEntry is one logged drink.
type WaterEntry struct {
	AmountML  int   `json:"amount_ml"`
	Timestamp int64 `json:"timestamp"`
}

// WorkoutSession is a workout fact supplied by an external importer.
type WorkoutSession struct {
	ID        string `json:"id"`
	Kind      string `json:"kind,omitempty"`
	Minutes   int    `json:"minutes"`
	StartedAt int64  `json:"started_at,omitempty"`
}

// DayRecord holds everything tracked for one calendar date. Exactly one
// record exists per date key; an absent key means "never logged".
type DayRecord struct {
	Key           string `json:"key"`
	SchemaVersion int    `json:"schema_version"`

	PrimaryMed   MultiDose            `json:"primary_med"`
	SecondaryMed DoseEntry            `json:"secondary_med"`
	CustomMeds   map[string]DoseEntry `json:"custom_meds,omitempty"`

	LunchEaten   bool   `json:"lunch_eaten"`
	LunchAt      *int64 `json:"lunch_at,omitempty"`
	LunchNote    string `json:"lunch_note,omitempty"`
	SmoothieDone bool   `json:"smoothie_done"`
	SmoothieAt   *int64 `json:"smoothie_at,omitempty"`
	SmoothieNote string `json:"smoothie_note,omitempty"`
	SnackEaten   bool   `json:"snack_eaten"`
	SnackNote    string `json:"snack_note,omitempty"`

	WaterML  int          `json:"water_ml"`
	WaterLog []WaterEntry `json:"water_log,omitempty"`

	WorkoutMinutes  *int             `json:"workout_minutes,omitempty"`
	WorkoutSessions []WorkoutSession `json:"workout_sessions,omitempty"`
	WalkDone        bool             `json:"walk_done"`
	StepsCount      *int             `json:"steps_count,omitempty"`

	WeightKG       *float64 `json:"weight_kg,omitempty"`
	WeightLoggedAt *int64   `json:"weight_logged_at,omitempty"`

	Bedtime  string `json:"bedtime,omitempty"`   // "HH:MM"
	WakeTime string `json:"wake_time,omitempty"` // "HH:MM"

	SentimentMorning *int `json:"sentiment_morning,omitempty"` // 1-5
	SentimentMidday  *int `json:"sentiment_midday,omitempty"`
	SentimentEvening *int `json:"sentiment_evening,omitempty"`
}

// SetKey sets the database key for this day record.
func (d *DayRecord) SetKey(key string) {
	d.Key = key
}

// GetKey returns the database key for this day record.
func (d *DayRecord) GetKey() string {
	return d.Key
}

// GenerateDayKey generates a database key for a day record.
func GenerateDayKey(dateKey string) string {
	return fmt.Sprintf("%s:%s", PrefixDay, dateKey)
}

// GenerateSyncMetaKey generates a database key for a day's sync metadata.
func GenerateSyncMetaKey(dateKey string) string {
	return fmt.Sprintf("%s:%s", PrefixSyncMeta, dateKey)
}

// NewEmptyDay returns a day record with every tracked field at its
// unset default.
func NewEmptyDay() *DayRecord {
	return &DayRecord{
		SchemaVersion: DaySchemaVersion,
		PrimaryMed: MultiDose{
			Doses: make([]DoseEntry, PrimaryDoseCount),
		},
		CustomMeds: map[string]DoseEntry{},
		WaterLog:   []WaterEntry{},
	}
}

// IsEmpty reports whether no user-entered data exists for the day. It is
// consulted before every push and pull so that a blank record never
// overwrites a populated one, in either direction. Total: a zero-value
// record is empty.
func (d *DayRecord) IsEmpty() bool {
	if d == nil {
		return true
	}
	for _, dose := range d.PrimaryMed.Doses {
		if dose.Taken {
			return false
		}
	}
	if d.SecondaryMed.Taken {
		return false
	}
	if len(d.CustomMeds) > 0 {
		return false
	}
	if d.LunchEaten || d.LunchNote != "" {
		return false
	}
	if d.SmoothieDone || d.SmoothieNote != "" {
		return false
	}
	if d.SnackEaten || d.SnackNote != "" {
		return false
	}
	if d.WaterML != 0 {
		return false
	}
	if d.WorkoutMinutes != nil || len(d.WorkoutSessions) > 0 {
		return false
	}
	if d.WalkDone || d.StepsCount != nil {
		return false
	}
	if d.WeightKG != nil {
		return false
	}
	if d.Bedtime != "" || d.WakeTime != "" {
		return false
	}
	if d.SentimentMorning != nil || d.SentimentMidday != nil || d.SentimentEvening != nil {
		return false
	}
	return true
}

// MergeDefaults fills fields that older stored records lack so callers
// never see nil collections or a short dose list.
func (d *DayRecord) MergeDefaults() {
	if d.PrimaryMed.Doses == nil {
		d.PrimaryMed.Doses = make([]DoseEntry, PrimaryDoseCount)
	}
	for len(d.PrimaryMed.Doses) < PrimaryDoseCount {
		d.PrimaryMed.Doses = append(d.PrimaryMed.Doses, DoseEntry{})
	}
	if d.CustomMeds == nil {
		d.CustomMeds = map[string]DoseEntry{}
	}
	if d.WaterLog == nil {
		d.WaterLog = []WaterEntry{}
	}
}
