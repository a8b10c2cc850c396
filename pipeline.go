package immerse

import "time"

// RenderItem is what the pipeline hands to a renderer for one widget that
// passed the visibility gate.
type RenderItem struct {
	WidgetID string
	Kind     WidgetKind
	Color    Color

	// Pose is the widget's center in viewer space and SizeMeters its extent.
	Pose       Pose3D
	SizeMeters Vec2
	// Clip is the visible region in the 3D presentation, against the mode's
	// viewing volume.
	Clip ClipRegion

	// Rect is the widget's canvas rect and CanvasClip its visible region in
	// the 2D presentation, against the canvas (or camera) frame.
	Rect       Rect
	CanvasClip ClipRegion
}

// resolveKey captures every input a RenderItem is derived from. A cached item
// is reused only when the key is unchanged.
type resolveKey struct {
	rect      Rect
	kind      WidgetKind
	color     Color
	frame     CanvasFrame
	mode      RenderMode
	volume    ViewingVolume
	container Rect
}

type cacheEntry struct {
	key  resolveKey
	item RenderItem
	err  error
	seen uint64
}

// Pipeline turns widget store snapshots into per-frame render items:
// gate by mode, project into the viewing volume, and clip for both the 2D
// and the 3D presentation.
//
// A Pipeline is driven by a single render loop and is not safe for concurrent
// use. The functions it calls (Project, ShouldRender, Clip) are.
type Pipeline struct {
	store   WidgetStore
	frames  FrameProvider
	modes   ModeSource
	mapper  Mapper
	volumes VolumeSet

	forceRender bool
	camera      *Camera
	debug       bool

	cache   map[string]*cacheEntry
	items   []RenderItem
	frameNo uint64
	stats   FrameStats
}

// NewPipeline creates a pipeline reading from the given collaborators. The
// mode is read from modes on every frame; the pipeline never changes it.
func NewPipeline(store WidgetStore, frames FrameProvider, modes ModeSource, cfg Config) *Pipeline {
	return &Pipeline{
		store:       store,
		frames:      frames,
		modes:       modes,
		mapper:      cfg.Mapper(),
		volumes:     cfg.Volumes,
		forceRender: cfg.ForceRender,
		debug:       cfg.Debug,
		cache:       make(map[string]*cacheEntry),
	}
}

// SetForceRender sets the override passed to ShouldRender.
func (p *Pipeline) SetForceRender(force bool) {
	p.forceRender = force
}

// ForceRender returns the current override.
func (p *Pipeline) ForceRender() bool {
	return p.forceRender
}

// SetCamera attaches a canvas camera. When set, the 2D container is the
// camera's visible bounds intersected with the canvas. Pass nil to clip
// against the whole canvas.
func (p *Pipeline) SetCamera(cam *Camera) {
	p.camera = cam
}

// SetDebugMode enables or disables per-frame stats logging at debug level.
func (p *Pipeline) SetDebugMode(enabled bool) {
	p.debug = enabled
}

// Volumes returns the volume set in use.
func (p *Pipeline) Volumes() VolumeSet {
	return p.volumes
}

// Stats returns the counters of the most recent Frame call.
func (p *Pipeline) Stats() FrameStats {
	return p.stats
}

// Frame computes the render items for the current store snapshot, canvas
// frame and mode. Widgets with invalid geometry are skipped for this frame.
// The returned slice is reused by the next call and MUST NOT be retained.
func (p *Pipeline) Frame() []RenderItem {
	var t0 time.Time
	if p.debug {
		t0 = time.Now()
	}

	mode := p.modes.Mode()
	frame := p.frames.CanvasFrame()
	vol := p.volumes.For(mode)
	container := containerFor(frame, p.camera)

	p.frameNo++
	p.items = p.items[:0]
	stats := FrameStats{Mode: mode}

	for _, w := range p.store.Snapshot() {
		stats.Widgets++
		if !ShouldRender(w, mode, p.forceRender) {
			stats.Gated++
			continue
		}
		item, hit, err := p.resolve(w, resolveKey{
			rect:      w.Rect(),
			kind:      w.Kind,
			color:     w.Color,
			frame:     frame,
			mode:      mode,
			volume:    vol,
			container: container,
		})
		if hit {
			stats.CacheHits++
		}
		if err != nil {
			stats.Skipped++
			if !hit {
				Logger().Warn("skip widget", "widget", w.ID, "mode", mode.String(), "err", err)
			}
			continue
		}
		p.items = append(p.items, item)
	}

	for id, e := range p.cache {
		if e.seen != p.frameNo {
			delete(p.cache, id)
		}
	}

	stats.Emitted = len(p.items)
	if p.debug {
		stats.Elapsed = time.Since(t0)
		p.debugLog(stats)
	}
	p.stats = stats
	return p.items
}

// resolve returns the cached item for w when its inputs are unchanged, or
// computes and caches a fresh one. hit reports a cache hit.
func (p *Pipeline) resolve(w WidgetRecord, key resolveKey) (item RenderItem, hit bool, err error) {
	if e, ok := p.cache[w.ID]; ok && e.key == key {
		e.seen = p.frameNo
		return e.item, true, e.err
	}
	item, err = p.compute(w, key.frame, key.volume, key.container)
	p.cache[w.ID] = &cacheEntry{key: key, item: item, err: err, seen: p.frameNo}
	return item, false, err
}

func (p *Pipeline) compute(w WidgetRecord, frame CanvasFrame, vol ViewingVolume, container Rect) (RenderItem, error) {
	pose, err := p.mapper.Project(w, frame, vol)
	if err != nil {
		return RenderItem{}, err
	}
	size := p.mapper.SizeMeters(w)
	spatialClip, err := Clip(WorldRect(pose, size), vol.Bounds())
	if err != nil {
		return RenderItem{}, err
	}
	canvasClip, err := Clip(w.Rect(), container)
	if err != nil {
		return RenderItem{}, err
	}
	return RenderItem{
		WidgetID:   w.ID,
		Kind:       w.Kind,
		Color:      w.Color,
		Pose:       pose,
		SizeMeters: size,
		Clip:       spatialClip,
		Rect:       w.Rect(),
		CanvasClip: canvasClip,
	}, nil
}
