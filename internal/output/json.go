package output

import (
	"time"

	"github.com/mwhitford/daybook/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// DayResponse represents a day record in JSON output.
type DayResponse struct {
	Date   string           `json:"date"`
	Empty  bool             `json:"empty"`
	Record *model.DayRecord `json:"record"`
}

// SyncResponse represents the sync command output in JSON.
type SyncResponse struct {
	Status string   `json:"status"`
	Pushed int      `json:"pushed"`
	Pulled int      `json:"pulled"`
	Errors []string `json:"errors,omitempty"`
}

// BootstrapResponse represents a pending first-sync decision in JSON.
type BootstrapResponse struct {
	Status string `json:"status"`
	State  string `json:"state"`
}

// StatusResponse represents the status command output in JSON.
type StatusResponse struct {
	Database   string `json:"database"`
	DaysLogged int    `json:"days_logged"`
	SignedIn   bool   `json:"signed_in"`
	Account    string `json:"account,omitempty"`
	LastSync   string `json:"last_sync,omitempty"`
	DeviceID   string `json:"device_id"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PrintDay outputs a day record in JSON format.
func (j *JSONFormatter) PrintDay(dateKey string, rec *model.DayRecord) error {
	return j.JSON(DayResponse{
		Date:   dateKey,
		Empty:  rec.IsEmpty(),
		Record: rec,
	})
}

// PrintSync outputs a sync result in JSON format.
func (j *JSONFormatter) PrintSync(pushed, pulled int, errs []string) error {
	status := "ok"
	if len(errs) > 0 {
		status = "partial"
	}
	return j.JSON(SyncResponse{
		Status: status,
		Pushed: pushed,
		Pulled: pulled,
		Errors: errs,
	})
}

// PrintBootstrap outputs a pending bootstrap decision in JSON format.
func (j *JSONFormatter) PrintBootstrap(state string) error {
	return j.JSON(BootstrapResponse{
		Status: "decision_required",
		State:  state,
	})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, message string) error {
	return j.JSON(ErrorResponse{
		Status:  status,
		Error:   errMsg,
		Message: message,
	})
}

// NewStatusResponse builds a StatusResponse.
func NewStatusResponse(database string, daysLogged int, account, deviceID string, lastSyncMillis int64) *StatusResponse {
	resp := &StatusResponse{
		Database:   database,
		DaysLogged: daysLogged,
		SignedIn:   account != "",
		Account:    account,
		DeviceID:   deviceID,
	}
	if lastSyncMillis > 0 {
		resp.LastSync = time.UnixMilli(lastSyncMillis).Format(time.RFC3339)
	}
	return resp
}
