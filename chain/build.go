package chain

import (
	"errors"

	"github.com/pavanmanishd/alloc"
	"github.com/pavanmanishd/alloc/internal/region"
)

// Build assembles the chain described by cfg and boxes it. The returned
// cleanup closes the box and releases any region the chain was built on;
// call it once nothing allocated from the chain is in use.
func Build(cfg Config) (*alloc.Dynamic, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	release := func() error { return nil }
	var box *alloc.Dynamic
	switch cfg.Backend {
	case BackendLinear:
		buf, unmap, err := linearRegion(cfg)
		if err != nil {
			return nil, nil, err
		}
		release = unmap
		box = decorate(cfg, alloc.NewLinear(buf))
	case BackendNull:
		box = decorate(cfg, alloc.Null{})
	case BackendMalloc:
		box = decorate(cfg, alloc.NewMalloc())
	case BackendChunked:
		box = decorate(cfg, alloc.NewChunked(alloc.NewMalloc(), uintptr(cfg.ChunkSize)))
	}

	cleanup := func() error {
		return errors.Join(box.Close(), release())
	}
	return box, cleanup, nil
}

func linearRegion(cfg Config) ([]byte, func() error, error) {
	if cfg.Region == RegionMmap {
		return region.Map(cfg.Size)
	}
	return make([]byte, cfg.Size), func() error { return nil }, nil
}

// decorate boxes a, wrapped in an alignment decorator when cfg asks for one.
func decorate[A alloc.Allocator](cfg Config, a A) *alloc.Dynamic {
	if cfg.Align == 0 {
		return alloc.Make(a)
	}
	return alloc.Make(alloc.NewAligned(uintptr(cfg.Align), a))
}
