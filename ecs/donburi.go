package ecs

import (
	"fmt"
	"sort"

	"github.com/phanxgames/immerse"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// WidgetData is the component stored on each widget entity.
type WidgetData struct {
	Record immerse.WidgetRecord
	// Order is the insertion sequence used to keep snapshots stable.
	Order uint64
}

// Widget is the Donburi component type carrying WidgetData.
var Widget = donburi.NewComponentType[WidgetData]()

// ModeChangeEventType is the Donburi event type for immerse mode changes.
var ModeChangeEventType = events.NewEventType[immerse.ModeChange]()

// DonburiStore is an immerse.WidgetStore backed by a Donburi world. Like the
// world itself it is not safe for concurrent use.
type DonburiStore struct {
	world donburi.World
	query *donburi.Query
	index map[string]donburi.Entity
	next  uint64
}

// NewDonburiStore creates a store that keeps widgets in world.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{
		world: world,
		query: donburi.NewQuery(filter.Contains(Widget)),
		index: make(map[string]donburi.Entity),
	}
}

// Put validates r and creates its entity, or updates the existing entity for
// the same ID in place.
func (s *DonburiStore) Put(r immerse.WidgetRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if e, ok := s.index[r.ID]; ok && s.world.Valid(e) {
		Widget.Get(s.world.Entry(e)).Record = r
		return nil
	}
	e := s.world.Create(Widget)
	Widget.SetValue(s.world.Entry(e), WidgetData{Record: r, Order: s.next})
	s.next++
	s.index[r.ID] = e
	return nil
}

// Remove deletes the widget's entity.
func (s *DonburiStore) Remove(id string) error {
	e, ok := s.index[id]
	if !ok {
		return fmt.Errorf("remove %q: %w", id, immerse.ErrUnknownWidget)
	}
	delete(s.index, id)
	if s.world.Valid(e) {
		s.world.Remove(e)
	}
	return nil
}

// Entity returns the entity holding the widget with the given ID.
func (s *DonburiStore) Entity(id string) (donburi.Entity, bool) {
	e, ok := s.index[id]
	if !ok || !s.world.Valid(e) {
		return donburi.Null, false
	}
	return e, true
}

// Snapshot implements immerse.WidgetStore. Records are returned in insertion
// order.
func (s *DonburiStore) Snapshot() []immerse.WidgetRecord {
	var data []WidgetData
	s.query.Each(s.world, func(entry *donburi.Entry) {
		data = append(data, *Widget.Get(entry))
	})
	sort.Slice(data, func(i, j int) bool { return data[i].Order < data[j].Order })
	out := make([]immerse.WidgetRecord, len(data))
	for i := range data {
		out[i] = data[i].Record
	}
	return out
}

// BridgeModeChanges publishes every mode change of m to
// ModeChangeEventType in world. Events are queued; process them with
// ModeChangeEventType.ProcessEvents or events.ProcessAllEvents. Mode changes
// caused by an externally terminated session are published from the
// machine's watcher goroutine, so callers sharing the world across
// goroutines must synchronize.
func BridgeModeChanges(world donburi.World, m *immerse.ModeMachine) {
	m.OnChange(func(c immerse.ModeChange) {
		ModeChangeEventType.Publish(world, c)
	})
}
