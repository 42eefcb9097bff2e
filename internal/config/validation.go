package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.RenderTimeout <= 0 {
		return fmt.Errorf("render timeout must be > 0")
	}
	if c.MaxRecords <= 0 {
		return fmt.Errorf("max records must be > 0")
	}
	if !strings.HasPrefix(c.TargetURL, "http://") && !strings.HasPrefix(c.TargetURL, "https://") {
		return fmt.Errorf("target url must start with http:// or https://")
	}
	if len(c.Selectors.Containers) == 0 {
		return fmt.Errorf("selector set needs at least one container selector")
	}
	return nil
}
