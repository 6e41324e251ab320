package types

import "fmt"

// KiloBytes is a uint64 wrapper representing a memory size in kilobytes,
// the unit the kernel reports in /proc status and smaps files.
//
// Display conversion is binary (÷1024): 1 MB = 1024 KB. This is the one
// documented conversion factor for the whole module; do not mix in ÷1000.
type KiloBytes uint64

// MB returns the size in megabytes (1024 base).
func (k KiloBytes) MB() float64 { return float64(k) / 1024 }

// GB returns the size in gigabytes (1024 base).
func (k KiloBytes) GB() float64 { return float64(k) / (1024 * 1024) }

// String returns a human-readable string with automatic unit (KB, MB, GB).
func (k KiloBytes) String() string {
	switch {
	case k >= 1<<20:
		return fmt.Sprintf("%.2f GB", k.GB())
	case k >= 1<<10:
		return fmt.Sprintf("%.2f MB", k.MB())
	default:
		return fmt.Sprintf("%d KB", uint64(k))
	}
}
