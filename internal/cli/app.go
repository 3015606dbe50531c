package cli

import (
	"os"

	"golang.org/x/term"

	"github.com/rshade/idelinux/internal/config"
	"github.com/rshade/idelinux/internal/discovery"
	"github.com/rshade/idelinux/internal/family"
	"github.com/rshade/idelinux/internal/launch"
	"github.com/rshade/idelinux/internal/logging"
)

// app is the state shared by the commands of one invocation.
type app struct {
	env        discovery.Env
	spawner    launch.Spawner
	isTerminal func() bool

	cfg       *config.Config
	cfgPath   string
	logResult *logging.Result
}

// Option customizes the root command; tests use it to isolate the
// environment.
type Option func(*app)

// WithEnv sets the environment discovery probes.
func WithEnv(env discovery.Env) Option {
	return func(a *app) { a.env = env }
}

// WithSpawner sets the process spawner used by open.
func WithSpawner(s launch.Spawner) Option {
	return func(a *app) { a.spawner = s }
}

// WithTerminal overrides terminal detection for interactive commands.
func WithTerminal(isTerminal func() bool) Option {
	return func(a *app) { a.isTerminal = isTerminal }
}

func newApp(opts ...Option) *app {
	a := &app{
		env:        discovery.SystemEnv(),
		spawner:    launch.ExecSpawner{},
		isTerminal: func() bool { return isTerminal(os.Stdin) && isTerminal(os.Stdout) },
		cfg:        config.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// discoverer returns a discoverer limited to the configured families.
func (a *app) discoverer() (*discovery.Discoverer, error) {
	return a.discovererFor(a.cfg)
}

// discovererFor returns a discoverer limited to cfg's families.
func (a *app) discovererFor(cfg *config.Config) (*discovery.Discoverer, error) {
	families, err := family.Default().Subset(cfg.FamilyIDs())
	if err != nil {
		return nil, err
	}
	return discovery.New(a.env, families), nil
}
