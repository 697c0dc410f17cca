package sandbox

import (
	"github.com/docker/docker/api/types/mount"
)

// projectMount returns a read-only bind mount of the project root at /workspace.
// Tools never get write access to the host checkout.
func projectMount(path string) mount.Mount {
	return mount.Mount{
		Type:     mount.TypeBind,
		Source:   path,
		Target:   "/workspace",
		ReadOnly: true,
	}
}

// tmpMount returns a configuration for an ephemeral /tmp directory.
// Compilers and test runners need somewhere writable for caches.
func tmpMount() mount.Mount {
	return mount.Mount{
		Type:   mount.TypeTmpfs,
		Target: "/tmp",
	}
}
