// ABOUTME: Shared state of a CLI invocation: configuration and the API client
// ABOUTME: Configuration is loaded once, on first use, and the --api-url flag overrides the file

package main

import (
	"strings"
	"sync"

	"yomu-news-api/pkg/cliconfig"
	"yomu-news-api/pkg/client"
)

type commandContext struct {
	configFlag *string
	apiURLFlag *string

	configOnce sync.Once
	config     *cliconfig.Config
	configErr  error
}

func newCommandContext(configFlag, apiURLFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		apiURLFlag: apiURLFlag,
	}
}

func (c *commandContext) ensureConfig() (*cliconfig.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := cliconfig.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.apiURLFlag != nil {
			if override := strings.TrimRight(strings.TrimSpace(*c.apiURLFlag), "/"); override != "" {
				cfg.APIURL = override
				if err := cfg.Validate(); err != nil {
					c.configErr = err
					return
				}
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) client() (*client.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return client.New(cfg.APIURL), nil
}
