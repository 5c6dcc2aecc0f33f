package stack

import (
	"strings"

	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/rileyhilliard/stackctl/internal/logger"
)

// Mode is a deployment mode.
type Mode string

const (
	Dev  Mode = "dev"
	Prod Mode = "prod"
)

// Modes lists the supported modes in display order.
var Modes = []Mode{Dev, Prod}

// Target is the resolved context for one invocation. It is a value type and
// is never modified after Resolve returns it.
type Target struct {
	Mode       Mode
	ConfigPath string
	Namespace  string
}

// ParseMode normalizes a mode token. Anything that is not a production token
// maps to Dev; ok is false when the token was not recognized at all.
func ParseMode(token string) (mode Mode, ok bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "prod", "production":
		return Prod, true
	case "", "dev", "development":
		return Dev, true
	default:
		return Dev, false
	}
}

// Selector resolves mode tokens to targets.
type Selector struct {
	targets map[Mode]Target
	log     logger.Logger
}

// NewSelector builds a selector from the project config.
func NewSelector(cfg *config.Config, log logger.Logger) *Selector {
	if log == nil {
		log = logger.Noop()
	}
	s := &Selector{targets: make(map[Mode]Target, len(Modes)), log: log}
	for _, m := range Modes {
		file, ns := cfg.FileAndNamespace(string(m))
		s.targets[m] = Target{Mode: m, ConfigPath: file, Namespace: ns}
	}
	return s
}

// Resolve returns the target for a mode token. It never fails: unrecognized
// tokens fall back to development, with a warning so a mistyped "prdo" does
// not go unnoticed.
func (s *Selector) Resolve(token string) Target {
	mode, ok := ParseMode(token)
	if !ok {
		s.log.Warn("unknown mode %q, using %s", token, Dev)
	}
	return s.targets[mode]
}
