package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is one named remote-target configuration.
type Profile struct {
	Name     string `yaml:"name"`
	Endpoint string `yaml:"endpoint"`
	API      string `yaml:"api"` // rest or xmlrpc
	Username string `yaml:"username"`

	DefaultPostType string `yaml:"default-post-type"`
	DefaultStatus   string `yaml:"default-status"`
	DefaultComments string `yaml:"default-comments"`

	RequireLogin      bool `yaml:"require-login"`
	ReplaceMediaLinks bool `yaml:"replace-media-links"`

	// LastCategories remembers the most recent category selection for
	// this profile, always as names.
	LastCategories []string `yaml:"last-categories,omitempty"`
}

// Config is the .owp/config.yaml file: all profiles plus which one is
// active by default.
type Config struct {
	DefaultProfile string    `yaml:"default-profile"`
	Profiles       []Profile `yaml:"profiles"`
}

// Load reads and validates a profile config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config atomically, so remembered selections survive a
// crash mid-write.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0644)
}

// Get looks up a profile by name. An empty name selects the default
// profile.
func (c *Config) Get(name string) (*Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("profile %q not found", name)
}
