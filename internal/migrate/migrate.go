// Package migrate upgrades persisted records written by older versions
// of the client to the current shape.
//
// Every record carries a schema_version field. Upgrades run as an
// ordered chain of pure steps, one per version, each total: unknown or
// absent data falls back to the canonical defaults and nothing ever
// runs in the downgrade direction. Records written before versioning
// existed decode as version 0.
package migrate

import (
	"encoding/json"

	"github.com/mwhitford/daybook/internal/errors"
	"github.com/mwhitford/daybook/internal/model"
)

// dayStep upgrades a raw day document by exactly one schema version.
type dayStep func(doc map[string]any) map[string]any

// daySteps[n] upgrades version n to n+1.
var daySteps = []dayStep{
	dayV0toV1,
	dayV1toV2,
	dayV2toV3,
}

// Day decodes a stored day blob, upgrading legacy shapes to the current
// schema and merging absent fields from the defaults. A blob that cannot
// be interpreted at all yields a fresh empty record and a ShapeError;
// callers treat such a record as empty rather than failing.
func Day(key string, raw []byte) (*model.DayRecord, error) {
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.NewEmptyDay(), errors.NewShapeError(key, err)
	}

	for v := docVersion(doc); v < model.DaySchemaVersion && v < len(daySteps); v++ {
		doc = daySteps[v](doc)
		doc["schema_version"] = v + 1
	}

	rec := model.NewEmptyDay()
	// Round-trip through JSON so the upgraded document lands in the
	// typed record; stray legacy keys are dropped here.
	upgraded, err := json.Marshal(doc)
	if err != nil {
		return model.NewEmptyDay(), errors.NewShapeError(key, err)
	}
	if err := json.Unmarshal(upgraded, rec); err != nil {
		return model.NewEmptyDay(), errors.NewShapeError(key, err)
	}

	rec.SchemaVersion = model.DaySchemaVersion
	rec.MergeDefaults()
	return rec, nil
}

// docVersion reads schema_version from a raw document, defaulting to 0
// for pre-versioning records.
func docVersion(doc map[string]any) int {
	v, ok := doc["schema_version"].(float64)
	if !ok || v < 0 {
		return 0
	}
	return int(v)
}

// dayV0toV1 replaces the flat named medication slots with the dose-list
// shape. Version 0 stored three fixed booleans plus a single flag for
// the secondary medication.
func dayV0toV1(doc map[string]any) map[string]any {
	if _, ok := doc["primary_med"]; ok {
		return doc
	}

	doses := make([]any, 0, model.PrimaryDoseCount)
	for _, slot := range []string{"med_morning_taken", "med_midday_taken", "med_afternoon_taken"} {
		taken, _ := doc[slot].(bool)
		doses = append(doses, map[string]any{"taken": taken})
		delete(doc, slot)
	}
	doc["primary_med"] = map[string]any{"doses": doses}

	taken, _ := doc["second_med_taken"].(bool)
	delete(doc, "second_med_taken")
	doc["secondary_med"] = map[string]any{"taken": taken}

	return doc
}

// dayV1toV2 replaces the boolean workout flag with a minutes value. A
// legacy "done" workout becomes the old fixed session length.
func dayV1toV2(doc map[string]any) map[string]any {
	done, ok := doc["workout_done"].(bool)
	delete(doc, "workout_done")
	if !ok || !done {
		return doc
	}
	if _, present := doc["workout_minutes"]; !present {
		doc["workout_minutes"] = 30
	}
	return doc
}

// dayV2toV3 introduces the list fields added for imported workout
// sessions, the water log, and custom medications.
func dayV2toV3(doc map[string]any) map[string]any {
	if _, ok := doc["workout_sessions"]; !ok {
		doc["workout_sessions"] = []any{}
	}
	if _, ok := doc["water_log"]; !ok {
		doc["water_log"] = []any{}
	}
	if _, ok := doc["custom_meds"]; !ok {
		doc["custom_meds"] = map[string]any{}
	}
	return doc
}

// Settings decodes stored settings, upgrading legacy shapes and filling
// gaps from the defaults. Undecodable blobs yield the defaults and a
// ShapeError.
func Settings(raw []byte) (*model.Settings, error) {
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.DefaultSettings(), errors.NewShapeError(model.KeySettings, err)
	}

	if docVersion(doc) < model.SettingsSchemaVersion {
		doc = settingsV1toV2(doc)
		doc["schema_version"] = model.SettingsSchemaVersion
	}

	s := &model.Settings{}
	upgraded, err := json.Marshal(doc)
	if err != nil {
		return model.DefaultSettings(), errors.NewShapeError(model.KeySettings, err)
	}
	if err := json.Unmarshal(upgraded, s); err != nil {
		return model.DefaultSettings(), errors.NewShapeError(model.KeySettings, err)
	}

	s.Key = model.KeySettings
	s.SchemaVersion = model.SettingsSchemaVersion
	s.MergeDefaults()
	return s, nil
}

// settingsV1toV2 replaces the nested med_times object with the flat
// primary/secondary fields.
func settingsV1toV2(doc map[string]any) map[string]any {
	times, ok := doc["med_times"].(map[string]any)
	if !ok {
		return doc
	}
	delete(doc, "med_times")

	if primary, ok := times["primary"].([]any); ok {
		if _, present := doc["primary_med_times"]; !present {
			doc["primary_med_times"] = primary
		}
	}
	if secondary, ok := times["secondary"].(string); ok {
		if _, present := doc["secondary_med_time"]; !present {
			doc["secondary_med_time"] = secondary
		}
	}
	return doc
}
