// Package immerse projects widgets authored on a flat 2D canvas into a 3D
// scene for desktop previews and immersive VR/AR sessions, built on
// [Ebitengine].
//
// The package is organized around four pieces that a host wires together:
//
//   - the coordinate mapper ([Mapper.Project]) turns a widget's canvas rect
//     into a [Pose3D] inside a [ViewingVolume];
//   - the visibility gate ([ShouldRender]) decides per widget and mode
//     whether the spatial layer draws it;
//   - the clip resolver ([Clip]) expresses the visible part of a widget as
//     fractional insets, for both the canvas and the volume;
//   - the mode machine ([ModeMachine]) owns the desktop, preview3D, vr and
//     ar modes and the immersive session lifecycle.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window showing the
// canvas beside a front view of the 3D presentation:
//
//	store := immerse.NewMemoryStore()
//	_ = store.Put(immerse.NewWidget("title", 100, 80, 400, 120))
//	modes := immerse.NewModeMachine(immerse.NewSimulatedXR(immerse.ModeVR))
//	v := immerse.NewViewer(store, immerse.NewStaticFrame(1920, 1080), modes, immerse.DefaultConfig())
//	immerse.Run(v, immerse.RunConfig{Title: "Preview", Width: 1280, Height: 720})
//
// Hosts with their own renderer use [Pipeline] directly and consume the
// [RenderItem] slice returned by [Pipeline.Frame] every frame.
//
// # Modes
//
// Modes only change through the [ModeMachine]:
//
//	desktop -> preview3D -> {vr, ar} -> desktop
//
// Immersive requests go through an [XRProvider]. Requests that the device
// cannot satisfy fail with [ErrUnsupportedSession] and leave the mode where
// it was.
//
// # Configuration
//
// [LoadConfig] reads TOML on top of [DefaultConfig]. Logging goes through
// log/slog; see [SetLogger].
//
// ECS integration lives in immerse/ecs (via a [Donburi] adapter).
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package immerse
