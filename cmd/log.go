package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhitford/daybook/internal/dates"
	"github.com/mwhitford/daybook/internal/errors"
	"github.com/mwhitford/daybook/internal/model"
	"github.com/mwhitford/daybook/internal/parser"
	"github.com/mwhitford/daybook/internal/runtime"
	"github.com/mwhitford/daybook/internal/validate"
)

// flagLogDate picks the date being logged against; defaults to today.
var flagLogDate string

// logCmd represents the log command group.
var logCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"l"},
	Short:   "Log an entry for a day",
	Long: `Record a habit or health entry. Entries go to today unless --date
says otherwise.

Examples:
  daybook log water 500ml
  daybook log med 2
  daybook log lunch leftover curry
  daybook log sleep 23:30 07:10
  daybook log weight 82.5 --date yesterday`,
}

func init() {
	logCmd.PersistentFlags().StringVar(&flagLogDate, "date", "",
		"Date to log against (e.g. today, yesterday, 2026-08-14)")

	logCmd.AddCommand(logWaterCmd)
	logCmd.AddCommand(logMedCmd)
	logCmd.AddCommand(logLunchCmd)
	logCmd.AddCommand(logSmoothieCmd)
	logCmd.AddCommand(logSnackCmd)
	logCmd.AddCommand(logWalkCmd)
	logCmd.AddCommand(logStepsCmd)
	logCmd.AddCommand(logWorkoutCmd)
	logCmd.AddCommand(logWeightCmd)
	logCmd.AddCommand(logSleepCmd)
	logCmd.AddCommand(logMoodCmd)

	rootCmd.AddCommand(logCmd)
}

// resolveLogDate parses the --date flag into a date key.
func resolveLogDate() (string, error) {
	res := parser.ParseDate(flagLogDate)
	if res.Error != nil {
		return "", res.Error.(*parser.InputError).ToUserError()
	}
	return res.Key, nil
}

// mutateDay loads a day record, applies fn, persists the result and
// marks the date as touched this session so sync prefers it.
func mutateDay(dateKey string, fn func(rec *model.DayRecord) error) (*model.DayRecord, error) {
	rec, err := ctx.DayRepo.Get(dateKey)
	if err != nil {
		return nil, err
	}
	if err := fn(rec); err != nil {
		return nil, err
	}
	if err := ctx.DayRepo.Put(dateKey, rec); err != nil {
		return nil, runtime.WrapDiskFullError(err, "save day")
	}
	ctx.Engine.MarkModified(dateKey)
	return rec, nil
}

// stampIfToday returns the current time in millis when logging against
// today. Backfilled days keep their times unset.
func stampIfToday(dateKey string) *int64 {
	if dateKey != dates.Today() {
		return nil
	}
	ms := time.Now().UnixMilli()
	return &ms
}

// printLogResult acknowledges a log entry: the full day in JSON mode, a
// one-line confirmation otherwise.
func printLogResult(dateKey string, rec *model.DayRecord, msg string) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDay(dateKey, rec)
	}
	ctx.CLIFormatter().Success(msg)
	return nil
}

// ==================== Water ====================

var logWaterCmd = &cobra.Command{
	Use:   "water [amount]",
	Short: "Log a drink of water",
	Long: `Add water intake. Amounts accept ml, litres and glasses; a bare
number is millilitres. With no amount one glass (250ml) is logged.

Examples:
  daybook log water
  daybook log water 500
  daybook log water 1.5l
  daybook log water 2 glasses`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey, err := resolveLogDate()
		if err != nil {
			return err
		}

		input := "1 glass"
		if len(args) > 0 {
			input = strings.Join(args, " ")
		}
		ml, ok := parser.ParseWaterML(input)
		if !ok {
			return parser.NewWaterError(input).ToUserError()
		}
		if err := validate.WaterML(ml); err != nil {
			return err
		}

		rec, err := mutateDay(dateKey, func(rec *model.DayRecord) error {
			rec.WaterML += ml
			rec.WaterLog = append(rec.WaterLog, model.WaterEntry{
				AmountML:  ml,
				Timestamp: time.Now().UnixMilli(),
			})
			return nil
		})
		if err != nil {
			return err
		}
		return printLogResult(dateKey, rec,
			fmt.Sprintf("Water +%dml (%dml total)", ml, rec.WaterML))
	},
}

// ==================== Medication ====================

var logMedCmd = &cobra.Command{
	Use:   "med [dose|secondary|name]",
	Short: "Mark a medication dose as taken",
	Long: `Mark a dose taken. With no argument the next untaken primary dose
is marked. A number picks a primary dose slot, "secondary" marks the
secondary medication, and anything else names a custom medication.

Examples:
  daybook log med
  daybook log med 2
  daybook log med secondary
  daybook log med magnesium`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey, err := resolveLogDate()
		if err != nil {
			return err
		}

		target := ""
		if len(args) > 0 {
			target = args[0]
		}

		var msg string
		rec, err := mutateDay(dateKey, func(rec *model.DayRecord) error {
			taken := model.DoseEntry{Taken: true, TakenAt: stampIfToday(dateKey)}

			if target == "" {
				for i, d := range rec.PrimaryMed.Doses {
					if !d.Taken {
						rec.PrimaryMed.Doses[i] = taken
						msg = fmt.Sprintf("Primary dose %d taken", i+1)
						return nil
					}
				}
				return errors.NewUserError("all primary doses already taken",
					"Use 'daybook log med secondary' or name a custom medication")
			}

			if idx, convErr := strconv.Atoi(target); convErr == nil {
				if err := validate.DoseIndex(idx, model.PrimaryDoseCount); err != nil {
					return err
				}
				rec.PrimaryMed.Doses[idx-1] = taken
				msg = fmt.Sprintf("Primary dose %d taken", idx)
				return nil
			}

			if target == "secondary" {
				rec.SecondaryMed = taken
				msg = "Secondary medication taken"
				return nil
			}

			name := validate.SanitizeMedName(target)
			if err := validate.MedName(name); err != nil {
				return err
			}
			if rec.CustomMeds == nil {
				rec.CustomMeds = map[string]model.DoseEntry{}
			}
			rec.CustomMeds[name] = taken
			msg = fmt.Sprintf("%s taken", name)
			return nil
		})
		if err != nil {
			return err
		}
		return printLogResult(dateKey, rec, msg)
	},
}

// ==================== Meals ====================

var logLunchCmd = &cobra.Command{
	Use:   "lunch [note...]",
	Short: "Mark lunch as eaten",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogMeal("lunch", args)
	},
}

var logSmoothieCmd = &cobra.Command{
	Use:   "smoothie [note...]",
	Short: "Mark the daily smoothie as done",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogMeal("smoothie", args)
	},
}

var logSnackCmd = &cobra.Command{
	Use:   "snack [note...]",
	Short: "Log a snack",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogMeal("snack", args)
	},
}

func runLogMeal(meal string, args []string) error {
	dateKey, err := resolveLogDate()
	if err != nil {
		return err
	}

	note := validate.SanitizeNote(strings.Join(args, " "))
	if err := validate.Note(note); err != nil {
		return err
	}

	rec, err := mutateDay(dateKey, func(rec *model.DayRecord) error {
		switch meal {
		case "lunch":
			rec.LunchEaten = true
			rec.LunchAt = stampIfToday(dateKey)
			if note != "" {
				rec.LunchNote = note
			}
		case "smoothie":
			rec.SmoothieDone = true
			rec.SmoothieAt = stampIfToday(dateKey)
			if note != "" {
				rec.SmoothieNote = note
			}
		case "snack":
			rec.SnackEaten = true
			if note != "" {
				rec.SnackNote = note
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return printLogResult(dateKey, rec, strings.ToUpper(meal[:1])+meal[1:]+" logged")
}

// ==================== Movement ====================

var logWalkCmd = &cobra.Command{
	Use:   "walk",
	Short: "Mark the daily walk as done",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey, err := resolveLogDate()
		if err != nil {
			return err
		}
		rec, err := mutateDay(dateKey, func(rec *model.DayRecord) error {
			rec.WalkDone = true
			return nil
		})
		if err != nil {
			return err
		}
		return printLogResult(dateKey, rec, "Walk logged")
	},
}

var logStepsCmd = &cobra.Command{
	Use:   "steps <count>",
	Short: "Log the day's step count",
	Long: `Record a step count. Accepts plain numbers, comma grouping and a
"k" suffix (12k = 12000). The count replaces any earlier value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey, err := resolveLogDate()
		if err != nil {
			return err
		}

		count, ok := parser.ParseSteps(args[0])
		if !ok {
			return errors.NewUserErrorWithField("steps", args[0],
				"not a step count", "Try a number like 8500 or 12k")
		}
		if err := validate.Steps(count); err != nil {
			return err
		}

		rec, err := mutateDay(dateKey, func(rec *model.DayRecord) error {
			rec.StepsCount = &count
			return nil
		})
		if err != nil {
			return err
		}
		return printLogResult(dateKey, rec, fmt.Sprintf("Steps: %d", count))
	},
}

var logWorkoutCmd = &cobra.Command{
	Use:   "workout <duration>",
	Short: "Log a workout",
	Long: `Record workout time. Bare numbers are minutes; durations like 1.5h
or "1 hour 15 minutes" also work. Time adds to any earlier workout.

Examples:
  daybook log workout 45
  daybook log workout 1.5h`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey, err := resolveLogDate()
		if err != nil {
			return err
		}

		input := strings.Join(args, " ")
		dur := parser.ParseDuration(input)
		if !dur.Valid {
			return parser.NewDurationError(input).ToUserError()
		}
		minutes := dur.Minutes()
		if err := validate.WorkoutMinutes(minutes); err != nil {
			return err
		}

		var total int
		rec, err := mutateDay(dateKey, func(rec *model.DayRecord) error {
			total = minutes
			if rec.WorkoutMinutes != nil {
				total += *rec.WorkoutMinutes
			}
			rec.WorkoutMinutes = &total
			return nil
		})
		if err != nil {
			return err
		}
		return printLogResult(dateKey, rec,
			fmt.Sprintf("Workout +%dm (%dm total)", minutes, total))
	},
}

// ==================== Body ====================

var logWeightCmd = &cobra.Command{
	Use:   "weight <value>",
	Short: "Log the day's weight",
	Long: `Record weight. Bare numbers are kilograms; lb converts. The value
replaces any earlier measurement for the day.

Examples:
  daybook log weight 82.5
  daybook log weight 180lb`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey, err := resolveLogDate()
		if err != nil {
			return err
		}

		kg, ok := parser.ParseWeightKG(args[0])
		if !ok {
			return parser.NewWeightError(args[0]).ToUserError()
		}
		if err := validate.WeightKG(kg); err != nil {
			return err
		}

		rec, err := mutateDay(dateKey, func(rec *model.DayRecord) error {
			rec.WeightKG = &kg
			rec.WeightLoggedAt = stampIfToday(dateKey)
			return nil
		})
		if err != nil {
			return err
		}
		return printLogResult(dateKey, rec, fmt.Sprintf("Weight: %.1fkg", kg))
	},
}

var logSleepCmd = &cobra.Command{
	Use:   "sleep <bedtime> <waketime>",
	Short: "Log last night's sleep window",
	Long: `Record when you went to bed and woke up, as HH:MM clock times.

Examples:
  daybook log sleep 23:30 07:10`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey, err := resolveLogDate()
		if err != nil {
			return err
		}

		if err := validate.ClockTime("bedtime", args[0]); err != nil {
			return err
		}
		if err := validate.ClockTime("waketime", args[1]); err != nil {
			return err
		}

		rec, err := mutateDay(dateKey, func(rec *model.DayRecord) error {
			rec.Bedtime = args[0]
			rec.WakeTime = args[1]
			return nil
		})
		if err != nil {
			return err
		}
		return printLogResult(dateKey, rec,
			fmt.Sprintf("Sleep: %s to %s", args[0], args[1]))
	},
}

// ==================== Mood ====================

var logMoodCmd = &cobra.Command{
	Use:   "mood [slot] <rating>",
	Short: "Log how you feel, 1 to 5",
	Long: `Record a mood rating from 1 (rough) to 5 (great). The slot is
morning, midday or evening; without one the current time of day picks it.

Examples:
  daybook log mood 4
  daybook log mood evening 2`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey, err := resolveLogDate()
		if err != nil {
			return err
		}

		slot := moodSlotNow()
		ratingArg := args[0]
		if len(args) == 2 {
			slot = args[0]
			ratingArg = args[1]
		}

		rating, convErr := strconv.Atoi(ratingArg)
		if convErr != nil {
			return errors.NewUserErrorWithField("mood", ratingArg,
				"not a rating", "Use a number from 1 to 5")
		}
		if err := validate.Sentiment(rating); err != nil {
			return err
		}

		rec, err := mutateDay(dateKey, func(rec *model.DayRecord) error {
			switch slot {
			case "morning":
				rec.SentimentMorning = &rating
			case "midday":
				rec.SentimentMidday = &rating
			case "evening":
				rec.SentimentEvening = &rating
			default:
				return errors.NewUserErrorWithField("slot", slot,
					"unknown mood slot", "Use morning, midday or evening")
			}
			return nil
		})
		if err != nil {
			return err
		}
		return printLogResult(dateKey, rec,
			fmt.Sprintf("Mood (%s): %d/5", slot, rating))
	},
}

// moodSlotNow picks the mood slot for the current wall-clock hour.
func moodSlotNow() string {
	switch h := time.Now().Hour(); {
	case h < 12:
		return "morning"
	case h < 17:
		return "midday"
	default:
		return "evening"
	}
}
