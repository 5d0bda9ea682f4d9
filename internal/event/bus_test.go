package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusPublishRunsHandlersInOrder(t *testing.T) {
	b := NewBus()
	var got []string
	b.Subscribe(Kill, func() { got = append(got, "first") })
	b.Subscribe(Kill, func() { got = append(got, "second") })
	b.Subscribe(Death, func() { got = append(got, "death") })
	b.Subscribe(Kill, func() { got = append(got, "third") })

	b.Publish(Kill)

	assert.Equal(t, []string{"first", "second", "third"}, got)
	assert.Equal(t, 3, b.Subscribers(Kill))
	assert.Equal(t, 1, b.Subscribers(Death))
}

func TestBusPublishWithoutSubscribersIsNoop(t *testing.T) {
	b := NewBus()
	assert.NotPanics(t, func() { b.Publish(Assist) })
	assert.NotPanics(t, func() { b.Publish(Name(99)) })
	assert.Zero(t, b.Subscribers(Name(-1)))
}

func TestBusHandlerPanicPropagates(t *testing.T) {
	b := NewBus()
	ranAfter := false
	b.Subscribe(GameLeave, func() { panic("sound handler broke") })
	b.Subscribe(GameLeave, func() { ranAfter = true })

	assert.PanicsWithValue(t, "sound handler broke", func() { b.Publish(GameLeave) })
	assert.False(t, ranAfter, "handlers after a panicking one must not run")
}

func TestBusSubscribeRejectsBadInput(t *testing.T) {
	b := NewBus()
	assert.Panics(t, func() { b.Subscribe(numNames, func() {}) })
	assert.Panics(t, func() { b.Subscribe(Kill, nil) })
}

func TestBusInstancesAreIndependent(t *testing.T) {
	a, b := NewBus(), NewBus()
	count := 0
	a.Subscribe(GameJoin, func() { count++ })

	b.Publish(GameJoin)
	assert.Zero(t, count)
	a.Publish(GameJoin)
	assert.Equal(t, 1, count)
}

func TestNameStrings(t *testing.T) {
	tests := []struct {
		name Name
		want string
	}{
		{GameJoin, "onGameJoin"},
		{GameLeave, "onGameLeave"},
		{Kill, "onKill"},
		{Death, "onDeath"},
		{Assist, "onAssist"},
		{CreepKilled, "onCreepKilled"},
		{Name(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.name.String())
	}
}

func TestNamesAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range Names() {
		s := n.String()
		assert.NotEqual(t, "unknown", s)
		assert.False(t, seen[s], s)
		seen[s] = true
	}
	assert.Len(t, Names(), 6)
}
