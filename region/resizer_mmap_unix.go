//go:build unix

package region

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MmapResizer backs a moveable region with a memory-mapped file, growing it
// by unmapping, truncating the file to the new size, and remapping. This
// mirrors the unmap/truncate/remap cycle a memory-mapped file needs on
// every growth, since the kernel will not extend a mapping in place.
type MmapResizer struct {
	f *os.File
}

// NewMmapResizer opens path (creating it if absent) for use as a moveable
// region's backing store.
func NewMmapResizer(path string) (*MmapResizer, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("region: open backing file: %w", err)
	}
	return &MmapResizer{f: f}, nil
}

// Map truncates the backing file to size and returns a fresh mapping.
func (m *MmapResizer) Map(size uint32) ([]byte, error) {
	if err := m.f.Truncate(int64(size)); err != nil {
		return nil, fmt.Errorf("region: truncate backing file: %w", err)
	}
	data, err := unix.Mmap(int(m.f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("region: mmap: %w", err)
	}
	return data, nil
}

// Resize implements Resizer by unmapping the current view, growing the
// underlying file, and remapping it. The kernel already preserves the
// first oldSize bytes across the truncate, so no explicit copy is needed.
func (m *MmapResizer) Resize(data *[]byte, oldSize, newSize uint32) error {
	if newSize <= oldSize {
		return nil
	}
	if *data != nil {
		if err := unix.Munmap(*data); err != nil {
			return fmt.Errorf("region: munmap: %w", err)
		}
	}
	next, err := m.Map(newSize)
	if err != nil {
		return err
	}
	*data = next
	return nil
}

// Close unmaps the current view (if any) and closes the backing file.
func (m *MmapResizer) Close(data []byte) error {
	if data != nil {
		if err := unix.Munmap(data); err != nil {
			return err
		}
	}
	return m.f.Close()
}
