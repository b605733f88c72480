package plugin

import (
	"context"
	"os"

	"git.home.luguber.info/inful/faviconbuilder/internal/storage"
)

// Host is the build the plugin runs inside.
type Host interface {
	// ReadSource returns the bytes of the source image at path.
	ReadSource(ctx context.Context, path string) ([]byte, error)
	// Assets is where generated assets are emitted, relative to the output root.
	Assets() storage.Store
}

// DiskHost reads sources from the local file system and emits into a store.
type DiskHost struct {
	assets storage.Store
}

// NewDiskHost returns a host emitting into assets.
func NewDiskHost(assets storage.Store) *DiskHost {
	return &DiskHost{assets: assets}
}

// ReadSource implements Host.
func (h *DiskHost) ReadSource(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// #nosec G304 -- the source path comes from the build configuration
	return os.ReadFile(path)
}

// Assets implements Host.
func (h *DiskHost) Assets() storage.Store { return h.assets }
