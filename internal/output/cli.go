package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwhitford/daybook/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorAccent  = lipgloss.Color("#3B82F6") // Blue

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	styleValue = lipgloss.NewStyle().
			Bold(true)

	styleNote = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMuted)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	if c.IsColorEnabled() {
		c.Println(styleTitle.Render(text))
	} else {
		c.Println(text)
	}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	if c.IsColorEnabled() {
		c.Println(styleWarning.Render("⚠ " + text))
	} else {
		c.Println("⚠ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// Label formats a section label.
func (c *CLIFormatter) Label(text string) string {
	if c.IsColorEnabled() {
		return styleLabel.Render(text)
	}
	return text
}

// Value formats an emphasized value.
func (c *CLIFormatter) Value(text string) string {
	if c.IsColorEnabled() {
		return styleValue.Render(text)
	}
	return text
}

// Note formats a note.
func (c *CLIFormatter) Note(text string) string {
	if c.IsColorEnabled() {
		return styleNote.Render(text)
	}
	return text
}

// Mark renders a done/not-done marker.
func (c *CLIFormatter) Mark(done bool) string {
	if done {
		if c.IsColorEnabled() {
			return styleSuccess.Render("✓")
		}
		return "✓"
	}
	if c.IsColorEnabled() {
		return styleMuted.Render("○")
	}
	return "○"
}

// doseMarks renders one marker per dose.
func (c *CLIFormatter) doseMarks(doses []model.DoseEntry) string {
	marks := make([]string, len(doses))
	for i, d := range doses {
		marks[i] = c.Mark(d.Taken)
	}
	return strings.Join(marks, " ")
}

// PrintDay prints the full view of one day record.
func (c *CLIFormatter) PrintDay(dateKey string, rec *model.DayRecord, settings *model.Settings) {
	c.Title("Daybook " + dateKey)
	c.Println()

	// Meds
	medLine := fmt.Sprintf("primary %s   secondary %s",
		c.doseMarks(rec.PrimaryMed.Doses), c.Mark(rec.SecondaryMed.Taken))
	if len(rec.CustomMeds) > 0 {
		names := make([]string, 0, len(rec.CustomMeds))
		for name := range rec.CustomMeds {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			medLine += fmt.Sprintf("   %s %s", name, c.Mark(rec.CustomMeds[name].Taken))
		}
	}
	c.Printf("%s   %s\n", c.Label("Meds "), medLine)

	// Meals
	lunch := c.Mark(rec.LunchEaten)
	if rec.LunchEaten && rec.LunchAt != nil {
		lunch += " " + FormatTimeOnly(time.UnixMilli(*rec.LunchAt))
	}
	if rec.LunchNote != "" {
		lunch += " " + c.Note("("+rec.LunchNote+")")
	}
	snack := c.Mark(rec.SnackEaten)
	if rec.SnackNote != "" {
		snack += " " + c.Note("("+rec.SnackNote+")")
	}
	c.Printf("%s   lunch %s   smoothie %s   snack %s\n",
		c.Label("Meals"), lunch, c.Mark(rec.SmoothieDone), snack)

	// Water
	water := fmt.Sprintf("%dml", rec.WaterML)
	if settings != nil && settings.WaterGoalML > 0 {
		water = fmt.Sprintf("%s / %dml", c.Value(water), settings.WaterGoalML)
	} else {
		water = c.Value(water)
	}
	c.Printf("%s   %s\n", c.Label("Water"), water)

	// Movement
	workout := c.Mark(false)
	if rec.WorkoutMinutes != nil && *rec.WorkoutMinutes > 0 {
		workout = c.Value(FormatMinutes(*rec.WorkoutMinutes))
	}
	move := fmt.Sprintf("workout %s   walk %s", workout, c.Mark(rec.WalkDone))
	if rec.StepsCount != nil {
		move += fmt.Sprintf("   steps %s", c.Value(fmt.Sprintf("%d", *rec.StepsCount)))
	}
	c.Printf("%s   %s\n", c.Label("Move "), move)

	// Body
	body := []string{}
	if rec.WeightKG != nil {
		body = append(body, fmt.Sprintf("weight %s", c.Value(fmt.Sprintf("%.1fkg", *rec.WeightKG))))
	}
	if rec.Bedtime != "" || rec.WakeTime != "" {
		body = append(body, fmt.Sprintf("sleep %s to %s",
			orDash(rec.Bedtime), orDash(rec.WakeTime)))
	}
	if len(body) > 0 {
		c.Printf("%s   %s\n", c.Label("Body "), strings.Join(body, "   "))
	}

	// Mood
	if rec.SentimentMorning != nil || rec.SentimentMidday != nil || rec.SentimentEvening != nil {
		c.Printf("%s   morning %s   midday %s   evening %s\n", c.Label("Mood "),
			sentimentString(rec.SentimentMorning),
			sentimentString(rec.SentimentMidday),
			sentimentString(rec.SentimentEvening))
	}

	if rec.IsEmpty() {
		c.Println()
		c.Muted("Nothing logged yet. Use 'daybook log' to add entries.")
	}
}

// PrintSyncResult prints the outcome of a sync cycle.
func (c *CLIFormatter) PrintSyncResult(pushed, pulled int, errs []string) {
	if len(errs) == 0 {
		c.Success(fmt.Sprintf("Synced: %d pushed, %d pulled", pushed, pulled))
		return
	}

	c.Warning(fmt.Sprintf("Sync finished with %d error(s): %d pushed, %d pulled",
		len(errs), pushed, pulled))
	for _, e := range errs {
		c.Muted("  " + e)
	}
}

// PrintBootstrapPrompt explains a pending first-sync decision.
func (c *CLIFormatter) PrintBootstrapPrompt(state string) {
	switch state {
	case "upload":
		c.Warning("This device has data your account does not.")
		c.Muted("Run 'daybook sync --upload' to copy it to your account,")
		c.Muted("or 'daybook sync --dismiss' to keep this device local-only.")
	case "download":
		c.Warning("Your account has data this device does not.")
		c.Muted("Run 'daybook sync --download' to copy it to this device,")
		c.Muted("or 'daybook sync --dismiss' to keep this device local-only.")
	case "merge":
		c.Warning("Both this device and your account hold data.")
		c.Muted("Run 'daybook sync --merge' to combine them (newest entry wins),")
		c.Muted("or 'daybook sync --dismiss' to keep this device local-only.")
	}
}

// PrintNotSignedIn prints guidance when no account is configured.
func (c *CLIFormatter) PrintNotSignedIn() {
	c.Muted("No account configured; data stays on this device.")
	c.Muted("Set DAYBOOK_ACCOUNT, DAYBOOK_TOKEN, and DAYBOOK_REMOTE_URL to enable sync.")
}

func orDash(s string) string {
	if s == "" {
		return "--:--"
	}
	return s
}

func sentimentString(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d/5", *v)
}
