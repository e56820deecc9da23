// Package chain assembles an allocator chain from a declarative Config.
package chain

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pavanmanishd/alloc"
)

// Backend names accepted in Config.Backend.
const (
	BackendLinear  = "linear"
	BackendNull    = "null"
	BackendMalloc  = "malloc"
	BackendChunked = "chunked"
)

// Region names accepted in Config.Region.
const (
	RegionHeap = "heap"
	RegionMmap = "mmap"
)

var (
	// ErrUnknownBackend indicates an unsupported Config.Backend.
	ErrUnknownBackend = errors.New("chain: unknown backend")

	// ErrUnknownRegion indicates an unsupported Config.Region.
	ErrUnknownRegion = errors.New("chain: unknown region")

	// ErrBadSize indicates a missing or negative size.
	ErrBadSize = errors.New("chain: bad size")

	// ErrBadAlign indicates an alignment that is not a power of two.
	ErrBadAlign = errors.New("chain: alignment must be a power of two")
)

// Config describes an allocator chain: a backend, optionally wrapped in an
// alignment decorator, boxed in an alloc.Dynamic.
type Config struct {
	Backend   string `yaml:"backend" json:"backend"`
	Size      int    `yaml:"size" json:"size"`             // linear: bytes in the region
	Region    string `yaml:"region" json:"region"`         // linear: heap or mmap
	ChunkSize int    `yaml:"chunk_size" json:"chunk_size"` // chunked: bytes per chunk, 0 for default
	Align     uint   `yaml:"align" json:"align"`           // 0 for no alignment decorator
}

// Default returns a 64 KiB heap-backed linear chain.
func Default() Config {
	return Config{Backend: BackendLinear, Size: 64 * 1024, Region: RegionHeap}
}

// Load reads a YAML config file. Fields missing from the file keep the
// values from Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("chain: read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML config and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("chain: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate normalizes names to lower case and checks the fields the chosen
// backend uses.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.Region = strings.ToLower(strings.TrimSpace(c.Region))
	if c.Region == "" {
		c.Region = RegionHeap
	}

	switch c.Backend {
	case BackendLinear:
		if c.Size < 0 {
			return fmt.Errorf("%w: %d", ErrBadSize, c.Size)
		}
		if c.Region != RegionHeap && c.Region != RegionMmap {
			return fmt.Errorf("%w: %q", ErrUnknownRegion, c.Region)
		}
	case BackendChunked:
		if c.ChunkSize < 0 {
			return fmt.Errorf("%w: chunk size %d", ErrBadSize, c.ChunkSize)
		}
	case BackendNull, BackendMalloc:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}

	if c.Align != 0 && c.Align&(c.Align-1) != 0 {
		return fmt.Errorf("%w: %d", ErrBadAlign, c.Align)
	}
	if c.Backend == BackendMalloc && uintptr(c.Align) > alloc.MallocMaxAlign {
		return fmt.Errorf("%w: %d exceeds malloc maximum %d", ErrBadAlign, c.Align, alloc.MallocMaxAlign)
	}
	return nil
}
