package node

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type NetworkKind string

const (
	NetworkEthereum NetworkKind = "ethereum"
	NetworkStarkNet NetworkKind = "starknet"
)

type NetworkConfig struct {
	Kind        NetworkKind `toml:"kind"`
	ProviderURL string      `toml:"provider_url"`
}

// Config is the on-disk configuration file: a map from network name to its
// kind and provider url.
type Config struct {
	Networks map[string]NetworkConfig `toml:"networks"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	for name, network := range config.Networks {
		if network.Kind != NetworkEthereum && network.Kind != NetworkStarkNet {
			return nil, fmt.Errorf("network %s: unknown kind %q", name, network.Kind)
		}
		if network.ProviderURL == "" {
			return nil, fmt.Errorf("network %s: provider_url is required", name)
		}
	}
	return &config, nil
}

// Network looks up a configured network by name.
func (c *Config) Network(name string) (NetworkConfig, error) {
	network, ok := c.Networks[name]
	if !ok {
		return NetworkConfig{}, fmt.Errorf("network not found: %s", name)
	}
	return network, nil
}
