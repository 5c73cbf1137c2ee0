package mas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_Defaults(t *testing.T) {
	coord := NewCoordinator("COORD_01")

	assert.Equal(t, RoleCoordinator, coord.Role())
	assert.Equal(t, Point{X: 5, Y: 5}, coord.Position())
	assert.Equal(t, DefaultChargingStations, coord.Stations())
	assert.Equal(t, DefaultChargingStations, coord.FreeStations())
	assert.Empty(t, coord.PendingOrders())
}

func TestCoordinator_CustomStations(t *testing.T) {
	coord := NewCoordinator("COORD_01", WithChargingStations(1))

	assert.Equal(t, 1, coord.Stations())
	assert.Equal(t, 1, coord.FreeStations())
}

func TestCoordinator_QueuesWithoutIdleTransport(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Add(NewCoordinator("COORD_01")))
	require.NoError(t, sys.Add(NewPicker("PICKER_01", Point{})))
	rc, emit := newTestRunContext(0)

	order := DefaultOrders()[0]
	require.NoError(t, sys.ProcessOrder(rc, order))
	require.NoError(t, sys.Tick(rc))

	coord := sys.Coordinator()
	require.Len(t, coord.PendingOrders(), 1)
	assert.Equal(t, "ORD_001", coord.PendingOrders()[0].ID)

	events := drainEvents(emit)
	require.Len(t, events, 2)
	assert.Equal(t, "queuing ORD_001: no idle picker and transport available", events[1].Text())

	// the picker never heard about it
	p, _ := sys.Participant("PICKER_01")
	assert.Zero(t, p.Metrics().MessagesReceived)
}

func TestCoordinator_QueuesWhileWorkersBusy(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Add(NewCoordinator("COORD_01")))
	picker := NewPicker("PICKER_01", Point{})
	transport := NewTransport("TRANSPORT_01", Point{})
	require.NoError(t, sys.Add(picker))
	require.NoError(t, sys.Add(transport))
	picker.SetState(StateCharging)
	rc, _ := newTestRunContext(0)

	require.NoError(t, sys.ProcessOrder(rc, DefaultOrders()[1]))
	require.NoError(t, sys.Tick(rc))

	require.Len(t, sys.Coordinator().PendingOrders(), 1)
	assert.Zero(t, picker.Metrics().TasksCompleted)
}

func TestCoordinator_AllocatesFirstIdlePair(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Add(NewCoordinator("COORD_01")))
	busy := NewPicker("PICKER_01", Point{})
	busy.SetState(StateWorking)
	idle := NewPicker("PICKER_02", Point{})
	require.NoError(t, sys.Add(busy))
	require.NoError(t, sys.Add(idle))
	require.NoError(t, sys.Add(NewTransport("TRANSPORT_01", Point{})))
	rc, _ := newTestRunContext(0)

	require.NoError(t, sys.ProcessOrder(rc, DefaultOrders()[0]))
	require.NoError(t, sys.Tick(rc))

	assert.Zero(t, busy.Metrics().MessagesReceived)
	assert.Equal(t, 1, idle.Metrics().TasksCompleted)
	assert.Empty(t, sys.Coordinator().PendingOrders())
}

func TestPicker_RejectsOverCapacity(t *testing.T) {
	sys := NewSystem()
	picker := NewPicker("PICKER_01", Point{})
	require.NoError(t, sys.Add(picker))
	rc, emit := newTestRunContext(0)

	items := make([]string, PickerCapacity+1)
	for i := range items {
		items[i] = "item"
	}
	require.NoError(t, sys.Route(rc, NewMessage("COORD_01", "PICKER_01", MsgPickRequest, map[string]any{
		"order_id": "ORD_BIG",
		"items":    items,
		"location": Point{X: 3, Y: 3},
	})))
	require.NoError(t, sys.Tick(rc))

	assert.Zero(t, picker.Load())
	assert.Zero(t, picker.Metrics().TasksCompleted)
	assert.Equal(t, StateIdle, picker.State())
	assert.Equal(t, FullBattery, picker.Battery())

	events := drainEvents(emit)
	require.Len(t, events, 2)
	assert.Equal(t, "cannot pick for ORD_BIG: busy or capacity exceeded", events[1].Text())
}

func TestPicker_LoadAccumulatesAcrossOrders(t *testing.T) {
	sys := NewSystem()
	picker := NewPicker("PICKER_01", Point{})
	require.NoError(t, sys.Add(picker))
	rc, _ := newTestRunContext(0)

	send := func(orderID string, n int) {
		items := make([]string, n)
		for i := range items {
			items[i] = "item"
		}
		require.NoError(t, sys.Route(rc, NewMessage("COORD_01", "PICKER_01", MsgPickRequest, map[string]any{
			"order_id": orderID,
			"items":    items,
			"location": Point{X: 1, Y: 1},
		})))
		require.NoError(t, sys.Tick(rc))
	}

	send("ORD_A", 6)
	assert.Equal(t, 6, picker.Load())

	send("ORD_B", 4)
	assert.Equal(t, 10, picker.Load())
	assert.Equal(t, 2, picker.Metrics().TasksCompleted)

	// carrying ten of ten: one more item does not fit
	send("ORD_C", 1)
	assert.Equal(t, 10, picker.Load())
	assert.Equal(t, 2, picker.Metrics().TasksCompleted)
}

func TestTransport_RejectsOverCapacity(t *testing.T) {
	sys := NewSystem()
	transport := NewTransport("TRANSPORT_01", Point{})
	require.NoError(t, sys.Add(transport))
	rc, emit := newTestRunContext(0)

	require.NoError(t, sys.Route(rc, NewMessage("COORD_01", "TRANSPORT_01", MsgTransportRequest, map[string]any{
		"order_id":          "ORD_BIG",
		"pickup_location":   Point{X: 1, Y: 1},
		"delivery_location": Point{X: 9, Y: 9},
		"item_count":        TransportCapacity + 1,
	})))
	require.NoError(t, sys.Tick(rc))

	assert.Zero(t, transport.Load())
	assert.Zero(t, transport.Metrics().TasksCompleted)
	assert.Equal(t, FullBattery, transport.Battery())

	events := drainEvents(emit)
	require.Len(t, events, 2)
	assert.Equal(t, "cannot transport for ORD_BIG: busy or capacity exceeded", events[1].Text())
}

func TestTransport_DeliversAndUnloads(t *testing.T) {
	sys := NewSystem()
	transport := NewTransport("TRANSPORT_01", Point{X: 0, Y: 0})
	require.NoError(t, sys.Add(transport))
	rc, _ := newTestRunContext(0)

	require.NoError(t, sys.Route(rc, NewMessage("COORD_01", "TRANSPORT_01", MsgTransportRequest, map[string]any{
		"order_id":          "ORD_001",
		"pickup_location":   Point{X: 2, Y: 2},
		"delivery_location": Point{X: 8, Y: 8},
		"item_count":        3,
	})))
	require.NoError(t, sys.Tick(rc))

	assert.Equal(t, Point{X: 8, Y: 8}, transport.Position())
	assert.Zero(t, transport.Load())
	assert.Equal(t, StateIdle, transport.State())
	assert.Equal(t, FullBattery-4, transport.Battery())
	assert.Equal(t, 1, transport.Metrics().TasksCompleted)
}

func TestPicker_CollaborationOnlyWhenIdle(t *testing.T) {
	sys := NewSystem()
	idle := NewPicker("PICKER_01", Point{})
	busy := NewPicker("PICKER_02", Point{})
	busy.SetState(StateWorking)
	require.NoError(t, sys.Add(idle))
	require.NoError(t, sys.Add(busy))
	rc, _ := newTestRunContext(0)

	require.NoError(t, sys.Route(rc, NewMessage("TRANSPORT_01", Broadcast, MsgCollaborationRequest, nil)))
	require.NoError(t, sys.Tick(rc))

	assert.Equal(t, 1, idle.Metrics().Collaborations)
	assert.Zero(t, busy.Metrics().Collaborations)
}
