package doctor

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/rileyhilliard/stackctl/internal/errors"
)

// EnvFileCheck notes whether the local override file is present.
type EnvFileCheck struct {
	Path string
}

func (c *EnvFileCheck) Name() string     { return "env_file" }
func (c *EnvFileCheck) Category() string { return CategoryEnvironment }

func (c *EnvFileCheck) Run(_ context.Context) CheckResult {
	if _, err := os.Stat(c.Path); err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("No %s, using the process environment only", c.Path),
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Override file: %s", c.Path),
	}
}

// CredentialsCheck warns when the database credentials are missing.
// Only backup, restore and mongo-shell need them.
type CredentialsCheck struct {
	Settings *config.Settings
}

func (c *CredentialsCheck) Name() string     { return "credentials" }
func (c *CredentialsCheck) Category() string { return CategoryEnvironment }

func (c *CredentialsCheck) Run(_ context.Context) CheckResult {
	if _, ok := c.Settings.Credentials(); !ok {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "MONGO_USERNAME / MONGO_PASSWORD not set",
			Suggestion: "backup, restore and mongo-shell need them; add both to .env",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Database credentials set",
	}
}

// GatewayPortCheck reports the port health probes will use.
type GatewayPortCheck struct {
	Settings *config.Settings
}

func (c *GatewayPortCheck) Name() string     { return "gateway_port" }
func (c *GatewayPortCheck) Category() string { return CategoryEnvironment }

func (c *GatewayPortCheck) Run(_ context.Context) CheckResult {
	port, err := c.Settings.Port()
	if err != nil {
		res := CheckResult{Name: c.Name(), Status: StatusFail, Message: err.Error()}
		var cfgErr *errors.Error
		if stderrors.As(err, &cfgErr) {
			res.Message = cfgErr.Message
			res.Suggestion = cfgErr.Suggestion
		}
		return res
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Gateway port: %d", port),
	}
}
