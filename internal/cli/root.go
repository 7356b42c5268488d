// Package cli wires flags, config and holiday data into a calendar engine
// and hands it to the plain or interactive front end.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lululau/minical/internal/calendar"
	"github.com/lululau/minical/internal/config"
	"github.com/lululau/minical/internal/dateutil"
	"github.com/lululau/minical/internal/holidays"
	"github.com/lululau/minical/internal/render"
	"github.com/lululau/minical/internal/tui"
)

type options struct {
	configPath    string
	date          string
	minDates      []string
	disabled      []string
	holidaysPath  string
	hideOffMonths bool
	lunar         bool
	plain         bool
	noColor       bool
	exitOnSelect  bool
	debug         bool
	logFile       string
}

// app carries what tests need to replace.
type app struct {
	now    func() time.Time
	client *http.Client
}

// NewRootCmd builds the minical command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{now: time.Now, client: http.DefaultClient})
}

func newRootCmd(a *app) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "minical [year] [month]",
		Short: "Pick a date from a month calendar in the terminal",
		Long: `minical shows a month calendar and prints the chosen date.

  minical            current month
  minical 9          September of this year
  minical 2012 12    December 2012`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (default: user config dir/minical/config.yaml)")
	f.StringVarP(&opts.date, "date", "d", "", "initially selected date (YYYY-MM-DD)")
	f.StringSliceVar(&opts.minDates, "min-date", nil, "minimum date(s), informational")
	f.StringSliceVarP(&opts.disabled, "disable", "x", nil, "dates that cannot be picked (repeatable)")
	f.StringVar(&opts.holidaysPath, "holidays", "", "holidays JSON file whose days off are disabled")
	f.BoolVar(&opts.hideOffMonths, "hide-off-months", false, "leave days of adjacent months blank")
	f.BoolVarP(&opts.lunar, "lunar", "L", false, "show lunar calendar labels")
	f.BoolVarP(&opts.plain, "plain", "n", false, "render once and exit (non-interactive)")
	f.BoolVarP(&opts.noColor, "no-color", "N", false, "disable all color output")
	f.BoolVar(&opts.exitOnSelect, "once", false, "exit as soon as a date is selected")
	f.BoolVar(&opts.debug, "debug", false, "enable debug logging (to --log-file when interactive)")
	f.StringVar(&opts.logFile, "log-file", filepath.Join(os.TempDir(), "minical.log"), "debug log file for interactive sessions")

	cmd.AddCommand(newHolidaysCmd(a))
	return cmd
}

func (a *app) run(cmd *cobra.Command, opts *options, args []string) error {
	logger, closeLog, err := newLogger(cmd.ErrOrStderr(), opts)
	if err != nil {
		return err
	}
	defer closeLog()

	file, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	mergeFlags(cmd, opts, &file)

	cfg, err := file.Calendar()
	if err != nil {
		return err
	}
	if cfg.InitialDate.IsZero() && len(args) > 0 {
		cfg.InitialDate, err = parseMonthArgs(args, a.now())
		if err != nil {
			return err
		}
	}
	days, err := holidayDates(file.HolidaysFile, a.now(), logger)
	if err != nil {
		return err
	}
	cfg.DisabledDates = append(cfg.DisabledDates, days...)

	if file.NoColor {
		render.SetNoColor(true)
	}

	var chosen *time.Time
	engine := calendar.New(cfg,
		calendar.WithNow(a.now),
		calendar.WithLogger(logger),
		calendar.WithSelectionHandler(func(d time.Time) { chosen = &d }),
	)

	if opts.plain {
		return render.RunPlain(render.PlainOptions{
			Writer: cmd.OutOrStdout(),
			Engine: engine,
			Lunar:  file.Lunar,
		})
	}

	if err := tui.Run(engine, tui.Options{Lunar: file.Lunar, ExitOnSelect: opts.exitOnSelect}); err != nil {
		return err
	}
	if chosen != nil {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), dateutil.Format(*chosen))
	}
	return err
}

// newLogger logs to w, except for interactive debug sessions: the alt screen
// owns the terminal there, so records go to opts.logFile instead.
func newLogger(w io.Writer, opts *options) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	closeLog := func() error { return nil }
	if opts.debug {
		level = slog.LevelDebug
		if !opts.plain {
			f, err := tea.LogToFile(opts.logFile, "minical")
			if err != nil {
				return nil, nil, fmt.Errorf("failed to open log file: %w", err)
			}
			w, closeLog = f, f.Close
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeLog, nil
}

func loadConfig(path string) (config.File, error) {
	if path != "" {
		return config.Load(path)
	}
	def, err := config.DefaultPath()
	if err != nil {
		return config.File{}, nil
	}
	return config.LoadOptional(def)
}

// mergeFlags lets explicitly set flags win over the config file.
func mergeFlags(cmd *cobra.Command, opts *options, file *config.File) {
	changed := cmd.Flags().Changed
	if changed("date") {
		file.Date = opts.date
	}
	if changed("min-date") {
		file.MinDate = opts.minDates
	}
	if changed("disable") {
		file.DisabledDates = append(file.DisabledDates, opts.disabled...)
	}
	if changed("holidays") {
		file.HolidaysFile = opts.holidaysPath
	}
	if changed("hide-off-months") {
		file.HideOffMonths = opts.hideOffMonths
	}
	if changed("lunar") {
		file.Lunar = opts.lunar
	}
	if changed("no-color") {
		file.NoColor = opts.noColor
	}
}

// holidayDates loads the explicit holidays file, or the cached download when
// it is fresh. A stale or missing cache is not an error.
func holidayDates(path string, now time.Time, logger *slog.Logger) ([]time.Time, error) {
	if path == "" {
		cachePath, err := holidays.CachePath()
		if err != nil {
			return nil, nil
		}
		valid, err := holidays.CacheValid(cachePath, now)
		if err != nil || !valid {
			logger.Debug("holiday cache unavailable", "component", "cli", "path", cachePath, "err", err)
			return nil, nil
		}
		path = cachePath
	}
	set, err := holidays.Load(path)
	if err != nil {
		return nil, err
	}
	if years, err := set.Years(); err == nil {
		logger.Debug("holidays loaded", "component", "cli", "path", path, "from", years.Min, "to", years.Max)
	}
	return set.DisabledDates(), nil
}

var errTooManyArgs = errors.New("too many arguments, see --help")

// parseMonthArgs reads [year] [month] or a lone [month|year] into the first
// day of that month.
func parseMonthArgs(args []string, now time.Time) (time.Time, error) {
	year, month := now.Year(), now.Month()
	switch len(args) {
	case 0:
	case 1:
		n, err := parseNumber(args[0], "month/year")
		if err != nil {
			return time.Time{}, err
		}
		if n >= 1 && n <= 12 {
			month = time.Month(n)
		} else {
			year, month = n, time.January
		}
	case 2:
		y, err := parseNumber(args[0], "year")
		if err != nil {
			return time.Time{}, err
		}
		m, err := parseNumber(args[1], "month")
		if err != nil {
			return time.Time{}, err
		}
		if m < 1 || m > 12 {
			return time.Time{}, fmt.Errorf("month must be between 1 and 12 (got %d)", m)
		}
		year, month = y, time.Month(m)
	default:
		return time.Time{}, errTooManyArgs
	}
	return dateutil.Date(year, month, 1), nil
}

func parseNumber(value string, field string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as %s", value, field)
	}
	return n, nil
}
