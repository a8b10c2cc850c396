package immerse

import "time"

// FrameStats holds the counters of one Pipeline.Frame call.
type FrameStats struct {
	Mode      RenderMode
	Widgets   int // records in the snapshot
	Gated     int // rejected by ShouldRender
	Skipped   int // dropped for invalid geometry
	Emitted   int // render items produced
	CacheHits int
	// Elapsed is only measured in debug mode.
	Elapsed time.Duration
}

// debugLog writes per-frame stats at debug level.
func (p *Pipeline) debugLog(stats FrameStats) {
	if !p.debug {
		return
	}
	Logger().Debug("frame",
		"mode", stats.Mode.String(),
		"widgets", stats.Widgets,
		"gated", stats.Gated,
		"skipped", stats.Skipped,
		"emitted", stats.Emitted,
		"cache_hits", stats.CacheHits,
		"elapsed", stats.Elapsed)
}
