package config

import "fmt"

// validLogLevels are the zerolog level names the config accepts.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks structural validity of the configuration.
func (c *Config) Validate() error {
	if c.Reader.Margin < 0 {
		return fmt.Errorf("reader.margin must be >= 0, got %d", c.Reader.Margin)
	}
	if c.Reader.TabWidth < 1 || c.Reader.TabWidth > 16 {
		return fmt.Errorf("reader.tab_width must be 1..16, got %d", c.Reader.TabWidth)
	}
	if c.Reader.SearchMode != "" && c.Reader.SearchMode != "substring" && c.Reader.SearchMode != "fuzzy" {
		return fmt.Errorf("reader.search_mode must be substring or fuzzy, got %q", c.Reader.SearchMode)
	}
	if c.Reader.HistoryLimit < 0 {
		return fmt.Errorf("reader.history_limit must be >= 0, got %d", c.Reader.HistoryLimit)
	}
	if c.Log.Level != "" && !validLogLevels[c.Log.Level] {
		return fmt.Errorf("log.level %q is not one of trace, debug, info, warn, error", c.Log.Level)
	}
	for _, pattern := range c.Library.Include {
		if pattern == "" {
			return fmt.Errorf("library.include contains an empty pattern")
		}
	}
	return nil
}
