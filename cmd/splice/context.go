package main

import (
	"log/slog"
	"strings"
	"sync"

	"splice/internal/config"
	"splice/internal/logging"
	"splice/internal/project"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
	log        *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.log = logger
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() *slog.Logger {
	if _, err := c.ensureConfig(); err != nil || c.log == nil {
		return logging.NewNop()
	}
	return c.log
}

// runContext resolves the project context shared by generate and show.
func (c *commandContext) runContext(projectName, identifier, scriptType string) (project.Context, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return project.Context{}, err
	}
	normalized := project.NormalizeScriptType(scriptType)
	return project.NewContext(cfg.Paths.OutputDir, projectName, identifier, normalized), nil
}
