package alloc

// Config controls how the allocator grows a moveable region once its free
// list and small-block tier can no longer satisfy a request. The small
// block size classes themselves are not configurable: the specification
// hard-codes them (see internal/wire.SmallBlockSizes).
type Config struct {
	// GrowthFactor is the multiplier applied to the region's current
	// full_size when it must grow. 2.0 doubles it, matching the classic
	// amortized-growth argument for a resizable array.
	GrowthFactor float64

	// MinGrowth is the smallest number of bytes a single Grow call will
	// add, regardless of GrowthFactor. This keeps early growth of a small
	// region from thrashing the resizer in tiny increments.
	MinGrowth uint32

	// SmallBlocksEnabled routes allocations at or below the largest small
	// block size class through the bitmap tier instead of the free list.
	SmallBlocksEnabled bool
}

// Preset growth policies, in the teacher's spirit of naming a handful of
// sensible configurations rather than asking every caller to tune every
// field.
var (
	// ConfigDefault doubles on growth with a modest floor; the right
	// choice for most long-lived buffers.
	ConfigDefault = Config{GrowthFactor: 2.0, MinGrowth: 4 << 10, SmallBlocksEnabled: true}

	// ConfigFrugal grows by half again rather than doubling, trading more
	// frequent relocation for a tighter memory footprint.
	ConfigFrugal = Config{GrowthFactor: 1.5, MinGrowth: 1 << 10, SmallBlocksEnabled: true}

	// ConfigLargeMessages disables the small-block tier entirely, useful
	// for buffers that only ever hold a handful of large payloads where
	// the bitmap bookkeeping would be pure overhead.
	ConfigLargeMessages = Config{GrowthFactor: 2.0, MinGrowth: 64 << 10, SmallBlocksEnabled: false}
)

// DefaultConfig is the Config to pass to New when the caller has no reason
// to deviate.
var DefaultConfig = ConfigDefault
