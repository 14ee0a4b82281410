// Command ls-almanac computes Sun and Moon observations for a site:
// positions, distances, lunar phase and rise/transit/set times with
// twilight. It runs as a one-shot JSON computation, an HTTP service or
// a terminal dashboard.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/config"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/server"
	"github.com/litescript/ls-almanac/internal/ui"
	"github.com/litescript/ls-almanac/internal/version"
)

type options struct {
	Config    string `short:"c" long:"config" description:"Path to YAML config file" value-name:"<file>"`
	LogLevel  string `long:"log-level" description:"Log level (debug, info, warn, error)"`
	LogPretty bool   `long:"log-pretty" description:"Human-readable log output"`
	Version   bool   `short:"v" long:"version" description:"Show the program version"`

	Compute computeCommand `command:"compute"`
	Serve   serveCommand   `command:"serve"`
	Tui     tuiCommand     `command:"tui"`
}

var opts options

// loadConfig resolves the configuration: file (if any) over defaults,
// CLI log level over both.
func loadConfig() (config.Config, error) {
	path := opts.Config
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home + "/.config/ls-almanac/config.yaml"
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	return cfg, nil
}

// siteOptions are the observer flags shared by compute and tui.
type siteOptions struct {
	Lat  *float64 `long:"lat" description:"Observer latitude in degrees (north positive)"`
	Lon  *float64 `long:"lon" description:"Observer longitude in degrees (east positive)"`
	Zone *int     `long:"zone" description:"UTC offset in whole hours"`
}

// location merges the flags over the configured site.
func (s siteOptions) location(cfg config.Config) almanac.Location {
	loc := almanac.Location{
		Latitude:  cfg.Site.Latitude,
		Longitude: cfg.Site.Longitude,
		Zone:      cfg.Site.Zone,
	}
	if s.Lat != nil {
		loc.Latitude = *s.Lat
	}
	if s.Lon != nil {
		loc.Longitude = *s.Lon
	}
	if s.Zone != nil {
		loc.Zone = *s.Zone
	}
	return loc
}

type computeCommand struct {
	siteOptions
	Date   string   `short:"d" long:"date" description:"Civil date YYYY-MM-DD (default: today at the site)" value-name:"<date>"`
	Time   string   `short:"t" long:"time" description:"Civil time HH:MM:SS (default: 00:00:00, or now when date is omitted)" value-name:"<time>"`
	DeltaT *float64 `long:"delta-t" description:"UTC to dynamical time correction in seconds"`
	Indent bool     `long:"indent" description:"Indent the JSON output"`
}

func (c *computeCommand) Execute(_ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logging.Setup(logging.ParseLevel(cfg.LogLevel), opts.LogPretty)

	loc := c.location(cfg)
	deltaT := cfg.DeltaT
	if c.DeltaT != nil {
		deltaT = *c.DeltaT
	}

	date, err := c.date(loc)
	if err != nil {
		return err
	}

	obs, err := almanac.Compute(date, loc, deltaT)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if c.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(obs)
}

// date resolves the date/time flags; both absent means "now at the site".
func (c *computeCommand) date(loc almanac.Location) (almanac.Date, error) {
	var date almanac.Date
	if c.Date == "" {
		t := time.Now().UTC().Add(time.Duration(loc.Zone) * time.Hour)
		date = almanac.Date{
			Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
			Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
		}
	} else {
		d, err := time.Parse("2006-01-02", c.Date)
		if err != nil {
			return date, fmt.Errorf("invalid --date, expected YYYY-MM-DD: %w", err)
		}
		date = almanac.Date{Year: d.Year(), Month: int(d.Month()), Day: d.Day()}
	}
	if c.Time != "" {
		clock, err := time.Parse("15:04:05", c.Time)
		if err != nil {
			return date, fmt.Errorf("invalid --time, expected HH:MM:SS: %w", err)
		}
		date.Hour, date.Minute, date.Second = clock.Hour(), clock.Minute(), clock.Second()
	}
	return date, nil
}

type serveCommand struct {
	Listen string `short:"l" long:"listen" description:"Listen address (overrides config)" value-name:"<addr>"`
}

func (c *serveCommand) Execute(_ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logging.Setup(logging.ParseLevel(cfg.LogLevel), opts.LogPretty)
	if c.Listen != "" {
		cfg.Listen = c.Listen
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	srv := server.New(cfg)
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Listen).Msg("serving observation API")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.HTTPServer().Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type tuiCommand struct {
	siteOptions
	LogOutputFile string `long:"log-output-file" description:"Write logs to a file (otherwise logs are dropped)" value-name:"<file>"`
}

func (c *tuiCommand) Execute(_ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Keep log lines off the alternate screen.
	var logWriter io.Writer = io.Discard
	if c.LogOutputFile != "" {
		file, err := os.OpenFile(c.LogOutputFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log output file: %w", err)
		}
		defer file.Close()
		logWriter = file
	}
	logging.SetupWriter(logging.ParseLevel(cfg.LogLevel), logWriter)

	model := ui.New(cfg.Site.Name, c.location(cfg), cfg.DeltaT)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true

	_, err := parser.Parse()
	if flags.WroteHelp(err) {
		os.Exit(0)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "fatal error:\n > %s\n", err.Error())
		os.Exit(1)
	}

	if opts.Version {
		fmt.Println(version.Version)
		return
	}

	// No subcommand given: run a default compute for now at the
	// configured site.
	if parser.Active == nil {
		cmd := computeCommand{}
		if err := cmd.Execute(nil); err != nil {
			fmt.Fprintf(os.Stderr, "exited with error:\n > %s\n", err.Error())
			os.Exit(1)
		}
	}
}
