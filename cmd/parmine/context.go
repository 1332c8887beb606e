package main

import (
	"log/slog"

	"parmine/internal/config"
	"parmine/internal/logging"
)

// commandContext lazily loads configuration and the logger once per CLI
// invocation and shares them across commands.
type commandContext struct {
	configFlag *string

	cfg          *config.Config
	resolvedPath string
	logger       *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, resolved, _, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.resolvedPath = resolved
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		LogDir: cfg.Paths.LogDir,
	})
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}
