package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/daybook/internal/model"
)

// =============================================================================
// Formatter Tests
// =============================================================================

func TestNewFormatter(t *testing.T) {
	f := NewFormatter()
	assert.NotNil(t, f)
	assert.Equal(t, FormatCLI, f.Format)
	assert.Equal(t, ColorAuto, f.ColorMode)
}

func TestFormatterIsColorEnabled(t *testing.T) {
	t.Run("color_always", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways}
		assert.True(t, f.IsColorEnabled())
	})

	t.Run("color_never", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorNever}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("color_auto_non_terminal", func(t *testing.T) {
		var buf bytes.Buffer
		f := &Formatter{
			Writer:    &buf,
			ColorMode: ColorAuto,
		}
		// Buffer is not a terminal
		assert.False(t, f.IsColorEnabled())
	})
}

func TestFormatterPrint(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Print("hello")
	assert.Equal(t, "hello", buf.String())
}

func TestFormatterPrintln(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Println("hello")
	assert.Equal(t, "hello\n", buf.String())
}

func TestFormatterPrintf(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Printf("hello %s", "world")
	assert.Equal(t, "hello world", buf.String())
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	data := map[string]string{"key": "value"}
	err := f.JSON(data)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"key": "value"`)
}

// =============================================================================
// Formatting Helper Tests
// =============================================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m 30s"},
		{5 * time.Minute, "5m"},
		{60 * time.Minute, "1h"},
		{90 * time.Minute, "1h 30m"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.duration))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
}

func TestFormatAgo(t *testing.T) {
	assert.Equal(t, "just now", FormatAgo(time.Now()))
	assert.Equal(t, "5m ago", FormatAgo(time.Now().Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", FormatAgo(time.Now().Add(-3*time.Hour)))
	assert.Equal(t, "4d ago", FormatAgo(time.Now().Add(-4*24*time.Hour)))
}

func TestFormatTimeOnly(t *testing.T) {
	tm := time.Date(2026, 1, 15, 14, 30, 45, 0, time.Local)
	result := FormatTimeOnly(tm)
	assert.Equal(t, "14:30", result)
}

// =============================================================================
// CLIFormatter Tests
// =============================================================================

func newTestCLI() (*CLIFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf, ColorMode: ColorNever}
	return NewCLIFormatter(f), &buf
}

func TestCLIFormatterMessages(t *testing.T) {
	cli, buf := newTestCLI()

	cli.Title("My Title")
	cli.Success("Operation completed")
	cli.Warning("Be careful")
	cli.Error("Something failed")
	cli.Muted("Subtle text")

	out := buf.String()
	assert.Contains(t, out, "My Title")
	assert.Contains(t, out, "✓ Operation completed")
	assert.Contains(t, out, "⚠ Be careful")
	assert.Contains(t, out, "✗ Something failed")
	assert.Contains(t, out, "Subtle text")
}

func TestCLIFormatterMark(t *testing.T) {
	cli, _ := newTestCLI()
	assert.Equal(t, "✓", cli.Mark(true))
	assert.Equal(t, "○", cli.Mark(false))
}

func TestCLIFormatterPrintDayEmpty(t *testing.T) {
	cli, buf := newTestCLI()

	cli.PrintDay("2026-09-01", model.NewEmptyDay(), model.DefaultSettings())
	out := buf.String()

	assert.Contains(t, out, "Daybook 2026-09-01")
	assert.Contains(t, out, "0ml / 2000ml")
	assert.Contains(t, out, "Nothing logged yet")
}

func TestCLIFormatterPrintDayPopulated(t *testing.T) {
	cli, buf := newTestCLI()

	rec := model.NewEmptyDay()
	rec.PrimaryMed.Doses[0].Taken = true
	rec.LunchEaten = true
	rec.LunchNote = "leftover pasta"
	rec.WaterML = 1500
	minutes := 45
	rec.WorkoutMinutes = &minutes
	steps := 8000
	rec.StepsCount = &steps
	weight := 81.5
	rec.WeightKG = &weight
	rec.Bedtime = "23:30"
	rec.WakeTime = "07:10"
	mood := 4
	rec.SentimentMorning = &mood
	rec.CustomMeds["vitamin-d"] = model.DoseEntry{Taken: true}

	cli.PrintDay("2026-09-01", rec, model.DefaultSettings())
	out := buf.String()

	assert.Contains(t, out, "1500ml / 2000ml")
	assert.Contains(t, out, "leftover pasta")
	assert.Contains(t, out, "45m")
	assert.Contains(t, out, "8000")
	assert.Contains(t, out, "81.5kg")
	assert.Contains(t, out, "23:30 to 07:10")
	assert.Contains(t, out, "morning 4/5")
	assert.Contains(t, out, "vitamin-d ✓")
	assert.NotContains(t, out, "Nothing logged yet")
}

func TestCLIFormatterPrintSyncResult(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		cli, buf := newTestCLI()
		cli.PrintSyncResult(2, 1, nil)
		assert.Contains(t, buf.String(), "✓ Synced: 2 pushed, 1 pulled")
	})

	t.Run("with_errors", func(t *testing.T) {
		cli, buf := newTestCLI()
		cli.PrintSyncResult(1, 0, []string{"upsert failed"})
		out := buf.String()
		assert.Contains(t, out, "⚠ Sync finished with 1 error(s)")
		assert.Contains(t, out, "upsert failed")
	})
}

func TestCLIFormatterPrintBootstrapPrompt(t *testing.T) {
	for _, state := range []string{"upload", "download", "merge"} {
		t.Run(state, func(t *testing.T) {
			cli, buf := newTestCLI()
			cli.PrintBootstrapPrompt(state)
			assert.Contains(t, buf.String(), "--"+state)
			assert.Contains(t, buf.String(), "--dismiss")
		})
	}
}

// =============================================================================
// JSONFormatter Tests
// =============================================================================

func TestJSONFormatterPrintDay(t *testing.T) {
	var buf bytes.Buffer
	jf := NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatJSON})

	rec := model.NewEmptyDay()
	rec.WaterML = 500
	require.NoError(t, jf.PrintDay("2026-09-01", rec))

	out := buf.String()
	assert.Contains(t, out, `"date": "2026-09-01"`)
	assert.Contains(t, out, `"empty": false`)
	assert.Contains(t, out, `"water_ml": 500`)
}

func TestJSONFormatterPrintSync(t *testing.T) {
	var buf bytes.Buffer
	jf := NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatJSON})

	require.NoError(t, jf.PrintSync(2, 3, nil))
	assert.Contains(t, buf.String(), `"status": "ok"`)
	assert.Contains(t, buf.String(), `"pushed": 2`)

	buf.Reset()
	require.NoError(t, jf.PrintSync(1, 0, []string{"boom"}))
	assert.Contains(t, buf.String(), `"status": "partial"`)
	assert.Contains(t, buf.String(), `"boom"`)
}

func TestNewStatusResponse(t *testing.T) {
	resp := NewStatusResponse("/tmp/db", 12, "acct-1", "dev-1", time.Now().UnixMilli())
	assert.True(t, resp.SignedIn)
	assert.Equal(t, 12, resp.DaysLogged)
	assert.NotEmpty(t, resp.LastSync)

	resp = NewStatusResponse("/tmp/db", 0, "", "dev-1", 0)
	assert.False(t, resp.SignedIn)
	assert.Empty(t, resp.LastSync)
}
