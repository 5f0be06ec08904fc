package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/drilldown-menu/internal/app"
	"github.com/atomicstack/drilldown-menu/internal/drilldown"
	"github.com/atomicstack/drilldown-menu/internal/menu"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Dump    bool
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envMenuFile     = "DRILLDOWN_MENU_FILE"
	envMenu         = "DRILLDOWN_MENU_SELECTOR"
	envPosition     = "DRILLDOWN_MENU_POSITION"
	envActive       = "DRILLDOWN_MENU_ACTIVE"
	envNavClass     = "DRILLDOWN_MENU_NAV_CLASS"
	envToggleClass  = "DRILLDOWN_MENU_TOGGLE_CLASS"
	envSubMenuClass = "DRILLDOWN_MENU_SUBMENU_CLASS"
	envActiveClass  = "DRILLDOWN_MENU_ACTIVE_CLASS"
	envSearch       = "DRILLDOWN_MENU_SEARCH"
	envSearchDelay  = "DRILLDOWN_MENU_SEARCH_DELAY"
	envWatch        = "DRILLDOWN_MENU_WATCH"
	envMouse        = "DRILLDOWN_MENU_MOUSE"
	envWidth        = "DRILLDOWN_MENU_WIDTH"
	envHeight       = "DRILLDOWN_MENU_HEIGHT"
	envShowFooter   = "DRILLDOWN_MENU_FOOTER"
	envTrace        = "DRILLDOWN_MENU_TRACE"
	envLogFile      = "DRILLDOWN_MENU_LOG_FILE"
)

// ErrNoMenuFile is returned by Validate when no menu document was given.
var ErrNoMenuFile = errors.New("no menu file given (use -menu-file or " + envMenuFile + ")")

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. A single
// positional argument is accepted as the menu file.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	def := drilldown.Defaults()

	fs := flag.NewFlagSet("drilldown-menu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menuFile := fs.String("menu-file", envOrDefault(env, envMenuFile, ""), "path to the YAML menu document")
	selector := fs.String("menu", envOrDefault(env, envMenu, def.Menu), "container selector (.class, #id or id)")
	position := fs.String("position", envOrDefault(env, envPosition, def.Position), "edge the menu is anchored to (left or right)")
	active := fs.Bool("active", envOrBool(env, envActive, false), "open the menu immediately")
	navClass := fs.String("nav-class", envOrDefault(env, envNavClass, def.NavClass), "class token of the menu container")
	toggleClass := fs.String("toggle-class", envOrDefault(env, envToggleClass, def.ToggleClass), "class token of the toggle control")
	subMenuClass := fs.String("submenu-class", envOrDefault(env, envSubMenuClass, def.SubMenuClass), "class token of submenu levels")
	activeClass := fs.String("active-class", envOrDefault(env, envActiveClass, def.ActiveClass), "class token applied while the menu is open")
	search := fs.Bool("search", envOrBool(env, envSearch, false), "enable the / search field")
	searchDelay := fs.Duration("search-delay", envOrDuration(env, envSearchDelay, def.SearchDelay), "delay before focus moves into the search field")
	watch := fs.Bool("watch", envOrBool(env, envWatch, false), "reload the menu when the file changes")
	mouse := fs.Bool("mouse", envOrBool(env, envMouse, true), "enable mouse clicks")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	dump := fs.Bool("dump", false, "print the resolved menu tree and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		*menuFile = rest[0]
	default:
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(rest[1:], " "))
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *searchDelay < 0 {
		return Config{}, fmt.Errorf("search-delay must be >= 0 (got %s)", *searchDelay)
	}

	cfg := Config{
		App: app.Config{
			MenuFile: *menuFile,
			Menu: drilldown.Options{
				Active:       *active,
				Menu:         *selector,
				Position:     *position,
				NavClass:     *navClass,
				ToggleClass:  *toggleClass,
				SubMenuClass: *subMenuClass,
				ActiveClass:  *activeClass,
				SearchDelay:  *searchDelay,
			},
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			Search:     *search,
			Watch:      *watch,
			Mouse:      *mouse,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Dump: *dump,
		Flags: map[string]string{
			"menuFile":    *menuFile,
			"menu":        *selector,
			"position":    *position,
			"active":      strconv.FormatBool(*active),
			"search":      strconv.FormatBool(*search),
			"searchDelay": searchDelay.String(),
			"watch":       strconv.FormatBool(*watch),
			"mouse":       strconv.FormatBool(*mouse),
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
			"dump":        strconv.FormatBool(*dump),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.MenuFile) == "" {
		return ErrNoMenuFile
	}
	return menu.ValidatePosition(cfg.App.Menu.Position)
}
