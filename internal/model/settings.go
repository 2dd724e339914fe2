package model

// SettingsSchemaVersion is the current on-disk schema version for Settings.
const SettingsSchemaVersion = 2

// CustomMed is a user-defined medication tracked alongside the built-in ones.
type CustomMed struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Time        string `json:"time"` // "HH:MM"
	PillsPerDay int    `json:"pills_per_day"`
	Supply      int    `json:"supply"`
}

// Settings holds user preferences (singleton). The reminder scheduler
// reads these; this core only persists and migrates them.
type Settings struct {
	Key           string `json:"key"`
	SchemaVersion int    `json:"schema_version"`

	RemindersEnabled bool `json:"reminders_enabled"`
	WeekdayOnly      bool `json:"weekday_only"`

	WaterGoalML          int    `json:"water_goal_ml"`
	WaterIntervalMinutes int    `json:"water_interval_minutes"`
	WaterStartTime       string `json:"water_start_time"`
	WaterEndTime         string `json:"water_end_time"`

	LunchReminderTime string `json:"lunch_reminder_time"`

	MedRemindersEnabled bool     `json:"med_reminders_enabled"`
	PrimaryMedTimes     []string `json:"primary_med_times"`
	SecondaryMedTime    string   `json:"secondary_med_time"`
	PrimaryMedSupply    int      `json:"primary_med_supply"`
	SecondaryMedSupply  int      `json:"secondary_med_supply"`

	CustomMeds []CustomMed `json:"custom_meds,omitempty"`
}

// SetKey sets the database key for these settings.
func (s *Settings) SetKey(key string) {
	s.Key = key
}

// GetKey returns the database key for these settings.
func (s *Settings) GetKey() string {
	return s.Key
}

// DefaultSettings returns the canonical settings defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Key:                  KeySettings,
		SchemaVersion:        SettingsSchemaVersion,
		RemindersEnabled:     true,
		WeekdayOnly:          true,
		WaterGoalML:          2000,
		WaterIntervalMinutes: 120,
		WaterStartTime:       "09:30",
		WaterEndTime:         "18:30",
		LunchReminderTime:    "12:30",
		MedRemindersEnabled:  true,
		PrimaryMedTimes:      []string{"07:00", "12:30", "15:30"},
		SecondaryMedTime:     "07:30",
		CustomMeds:           []CustomMed{},
	}
}

// MergeDefaults fills fields that older stored settings lack.
func (s *Settings) MergeDefaults() {
	defaults := DefaultSettings()
	if s.WaterGoalML == 0 {
		s.WaterGoalML = defaults.WaterGoalML
	}
	if s.WaterIntervalMinutes == 0 {
		s.WaterIntervalMinutes = defaults.WaterIntervalMinutes
	}
	if s.WaterStartTime == "" {
		s.WaterStartTime = defaults.WaterStartTime
	}
	if s.WaterEndTime == "" {
		s.WaterEndTime = defaults.WaterEndTime
	}
	if s.LunchReminderTime == "" {
		s.LunchReminderTime = defaults.LunchReminderTime
	}
	if len(s.PrimaryMedTimes) == 0 {
		s.PrimaryMedTimes = append([]string(nil), defaults.PrimaryMedTimes...)
	}
	if s.SecondaryMedTime == "" {
		s.SecondaryMedTime = defaults.SecondaryMedTime
	}
	if s.CustomMeds == nil {
		s.CustomMeds = []CustomMed{}
	}
}
