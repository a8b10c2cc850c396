package ecs

import (
	"context"
	"errors"
	"testing"

	"github.com/phanxgames/immerse"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
	if got := store.Snapshot(); len(got) != 0 {
		t.Errorf("empty store snapshot len = %d, want 0", len(got))
	}
}

func TestDonburiStore_ImplementsWidgetStore(t *testing.T) {
	var store immerse.WidgetStore = NewDonburiStore(donburi.NewWorld())
	_ = store // compile-time interface check
}

func TestDonburiStore_PutKeepsInsertionOrder(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	for _, id := range []string{"c", "a", "b"} {
		if err := store.Put(immerse.NewWidget(id, 0, 0, 10, 10)); err != nil {
			t.Fatalf("Put(%q): %v", id, err)
		}
	}
	snap := store.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot len = %d, want 3", len(snap))
	}
	for i, want := range []string{"c", "a", "b"} {
		if snap[i].ID != want {
			t.Errorf("snap[%d].ID = %q, want %q", i, snap[i].ID, want)
		}
	}
}

func TestDonburiStore_PutUpdatesInPlace(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	_ = store.Put(immerse.NewWidget("a", 0, 0, 10, 10))
	_ = store.Put(immerse.NewWidget("b", 0, 0, 10, 10))

	moved := immerse.NewWidget("a", 50, 60, 10, 10)
	if err := store.Put(moved); err != nil {
		t.Fatal(err)
	}
	if world.Len() != 2 {
		t.Errorf("world entities = %d, want 2", world.Len())
	}
	snap := store.Snapshot()
	if snap[0].ID != "a" || snap[0].X != 50 || snap[0].Y != 60 {
		t.Errorf("snap[0] = %+v, want a at (50,60)", snap[0])
	}
}

func TestDonburiStore_PutRejectsInvalid(t *testing.T) {
	store := NewDonburiStore(donburi.NewWorld())
	err := store.Put(immerse.NewWidget("", 0, 0, 10, 10))
	if !errors.Is(err, immerse.ErrInvalidWidget) {
		t.Errorf("err = %v, want ErrInvalidWidget", err)
	}
	err = store.Put(immerse.NewWidget("neg", 0, 0, -1, 10))
	if !errors.Is(err, immerse.ErrInvalidWidget) {
		t.Errorf("err = %v, want ErrInvalidWidget", err)
	}
}

func TestDonburiStore_Remove(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	_ = store.Put(immerse.NewWidget("a", 0, 0, 10, 10))

	e, ok := store.Entity("a")
	if !ok {
		t.Fatal("Entity(a) not found")
	}
	if err := store.Remove("a"); err != nil {
		t.Fatal(err)
	}
	if world.Valid(e) {
		t.Error("entity should be removed from the world")
	}
	if _, ok := store.Entity("a"); ok {
		t.Error("Entity(a) should be gone")
	}
	if err := store.Remove("a"); !errors.Is(err, immerse.ErrUnknownWidget) {
		t.Errorf("second Remove err = %v, want ErrUnknownWidget", err)
	}
}

func TestDonburiStore_FeedsPipeline(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	_ = store.Put(immerse.NewWidget("center", 960, 540, 0, 0))
	hidden := immerse.NewWidget("hidden", 0, 0, 10, 10)
	hidden.Visibility = immerse.VisibilityHidden
	_ = store.Put(hidden)

	modes := immerse.NewModeMachine(nil)
	if err := modes.EnterPreview(); err != nil {
		t.Fatal(err)
	}
	p := immerse.NewPipeline(store, immerse.NewStaticFrame(1920, 1080), modes, immerse.DefaultConfig())
	items := p.Frame()
	if len(items) != 1 || items[0].WidgetID != "center" {
		t.Fatalf("items = %+v, want only center", items)
	}
	if items[0].Pose.X != 0 {
		t.Errorf("center pose X = %v, want 0", items[0].Pose.X)
	}
}

func TestBridgeModeChanges(t *testing.T) {
	world := donburi.NewWorld()
	modes := immerse.NewModeMachine(immerse.NewSimulatedXR(immerse.ModeVR))
	BridgeModeChanges(world, modes)

	var received []immerse.ModeChange
	ModeChangeEventType.Subscribe(world, func(w donburi.World, c immerse.ModeChange) {
		received = append(received, c)
	})

	if err := modes.EnterPreview(); err != nil {
		t.Fatal(err)
	}
	if err := modes.RequestImmersive(context.Background(), immerse.ModeVR); err != nil {
		t.Fatal(err)
	}
	modes.EndSession(immerse.EndUser)

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before processing, want 0", len(received))
	}
	events.ProcessAllEvents(world)

	want := []immerse.ModeChange{
		{From: immerse.ModeDesktop, To: immerse.ModePreview3D, Reason: immerse.EndUser},
		{From: immerse.ModePreview3D, To: immerse.ModeVR, Reason: immerse.EndUser},
		{From: immerse.ModeVR, To: immerse.ModeDesktop, Reason: immerse.EndUser},
	}
	if len(received) != len(want) {
		t.Fatalf("received %d events, want %d: %+v", len(received), len(want), received)
	}
	for i := range want {
		if received[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, received[i], want[i])
		}
	}
}
