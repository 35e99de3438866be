package profile

import (
	"fmt"
	"net/url"
)

var validAPIs = map[string]bool{
	"rest":   true,
	"xmlrpc": true,
}

var validStatuses = map[string]bool{
	"":        true,
	"publish": true,
	"draft":   true,
	"private": true,
}

var validComments = map[string]bool{
	"":       true,
	"open":   true,
	"closed": true,
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	if len(cfg.Profiles) == 0 {
		return fmt.Errorf("config: at least one profile is required")
	}

	seen := make(map[string]bool)
	for i := range cfg.Profiles {
		p := &cfg.Profiles[i]

		if p.Name == "" {
			return fmt.Errorf("config: profile %d: 'name' is required", i+1)
		}
		if seen[p.Name] {
			return fmt.Errorf("config: duplicate profile name %q", p.Name)
		}
		seen[p.Name] = true

		if p.Endpoint == "" {
			return fmt.Errorf("config: profile %q: 'endpoint' is required", p.Name)
		}
		u, err := url.Parse(p.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: profile %q: endpoint %q is not an absolute URL", p.Name, p.Endpoint)
		}

		if p.API == "" {
			p.API = "rest"
		}
		if !validAPIs[p.API] {
			return fmt.Errorf("config: profile %q: unknown api %q (must be rest or xmlrpc)", p.Name, p.API)
		}

		if !validStatuses[p.DefaultStatus] {
			return fmt.Errorf("config: profile %q: unknown default-status %q", p.Name, p.DefaultStatus)
		}
		if p.DefaultStatus == "" {
			p.DefaultStatus = "publish"
		}

		if !validComments[p.DefaultComments] {
			return fmt.Errorf("config: profile %q: unknown default-comments %q", p.Name, p.DefaultComments)
		}
		if p.DefaultComments == "" {
			p.DefaultComments = "open"
		}

		if p.DefaultPostType == "" {
			p.DefaultPostType = "post"
		}
	}

	if cfg.DefaultProfile == "" {
		cfg.DefaultProfile = cfg.Profiles[0].Name
	}
	if !seen[cfg.DefaultProfile] {
		return fmt.Errorf("config: default-profile %q does not match any profile", cfg.DefaultProfile)
	}

	return nil
}
