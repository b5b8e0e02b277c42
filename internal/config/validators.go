package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// build validates values and assembles the Config. Every rejected value is
// replaced by its default and recorded as a warning.
func build(values map[string]string) Config {
	def := defaults()
	var warnings []string
	warn := func(key, value, reason string) {
		warnings = append(warnings, fmt.Sprintf("invalid %s value %q: %s, using default: %s", key, value, reason, def[key]))
	}

	positiveInt := func(key string) int {
		n, err := strconv.Atoi(strings.TrimSpace(values[key]))
		if err != nil || n <= 0 {
			warn(key, values[key], "must be a positive integer")
			n, _ = strconv.Atoi(def[key])
		}
		return n
	}
	positiveFloat := func(key string) float64 {
		f, err := strconv.ParseFloat(strings.TrimSpace(values[key]), 64)
		if err != nil || f <= 0 {
			warn(key, values[key], "must be a positive number")
			f, _ = strconv.ParseFloat(def[key], 64)
		}
		return f
	}
	boolean := func(key string) bool {
		switch strings.ToLower(strings.TrimSpace(values[key])) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
		warn(key, values[key], "must be one of: 1, true, yes, on, 0, false, no, off")
		b, _ := strconv.ParseBool(def[key])
		return b
	}
	duration := func(key string) time.Duration {
		d, err := time.ParseDuration(strings.TrimSpace(values[key]))
		if err != nil || d < 0 {
			warn(key, values[key], "must be a non-negative duration")
			d, _ = time.ParseDuration(def[key])
		}
		return d
	}
	enum := func(key string, allowed ...string) string {
		v := strings.ToLower(strings.TrimSpace(values[key]))
		for _, a := range allowed {
			if v == a {
				return v
			}
		}
		warn(key, values[key], "must be one of: "+strings.Join(allowed, ", "))
		return def[key]
	}
	link := func(key string) string {
		v := strings.TrimSpace(values[key])
		u, err := url.Parse(v)
		if v == "" || err != nil {
			warn(key, values[key], "must be a URL or path")
			return def[key]
		}
		return u.String()
	}

	return Config{
		FeedURL:          link("feed_url"),
		FallbackURL:      link("fallback_url"),
		PageSize:         positiveInt("page_size"),
		PlaceholderImage: link("placeholder_image"),
		HeaderThreshold:  positiveInt("header_threshold"),
		LogLevel:         enum("log_level", "debug", "info", "warn", "error"),
		LogFile:          strings.TrimSpace(values["log_file"]),
		MCP: MCP{
			Port:               strings.TrimSpace(values["mcp_port"]),
			AllowedOrigins:     parseCSV(values["mcp_allowed_origins"]),
			Stateless:          boolean("mcp_stateless"),
			EnableAdmin:        boolean("mcp_enable_admin"),
			APIKey:             strings.TrimSpace(values["mcp_api_key"]),
			RPS:                positiveFloat("mcp_rps"),
			Burst:              positiveInt("mcp_burst"),
			SessionTimeout:     duration("mcp_session_timeout"),
			CacheClearInterval: duration("mcp_cache_clear_interval"),
		},
		Warnings: warnings,
	}
}

func parseCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
