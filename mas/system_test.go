package mas

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_AddRejectsDuplicateID(t *testing.T) {
	sys := NewSystem()

	require.NoError(t, sys.Add(NewPicker("PICKER_01", Point{})))
	err := sys.Add(NewPicker("PICKER_01", Point{X: 1, Y: 1}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "participant PICKER_01 already registered")
}

func TestSystem_RouteDirect(t *testing.T) {
	sys := NewSystem()
	picker := NewPicker("PICKER_01", Point{})
	transport := NewTransport("TRANSPORT_01", Point{})
	require.NoError(t, sys.Add(picker))
	require.NoError(t, sys.Add(transport))
	rc, _ := newTestRunContext(0)

	msg := NewMessage("PICKER_01", "TRANSPORT_01", MsgPickupReady, nil)
	require.NoError(t, sys.Route(rc, msg))

	assert.Empty(t, picker.TakeInbox())
	delivered := transport.TakeInbox()
	require.Len(t, delivered, 1)
	assert.Equal(t, MsgPickupReady, delivered[0].Type)

	assert.Equal(t, 1, sys.Metrics().TotalMessages)
	require.Len(t, sys.MessageLog(), 1)
	assert.Equal(t, msg.ID, sys.MessageLog()[0].ID)
}

func TestSystem_RouteBroadcastSkipsSender(t *testing.T) {
	sys := NewSystem()
	p1 := NewPicker("PICKER_01", Point{})
	p2 := NewPicker("PICKER_02", Point{})
	tr := NewTransport("TRANSPORT_01", Point{})
	require.NoError(t, sys.Add(p1))
	require.NoError(t, sys.Add(p2))
	require.NoError(t, sys.Add(tr))
	rc, _ := newTestRunContext(0)

	require.NoError(t, sys.Route(rc, NewMessage("PICKER_01", Broadcast, MsgCollaborationRequest, nil)))

	assert.Empty(t, p1.TakeInbox())
	assert.Len(t, p2.TakeInbox(), 1)
	assert.Len(t, tr.TakeInbox(), 1)
}

func TestSystem_RouteUnknownReceiver(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Add(NewPicker("PICKER_01", Point{})))
	rc, _ := newTestRunContext(0)

	err := sys.Route(rc, NewMessage("PICKER_01", "GHOST", MsgPickupReady, nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown receiver GHOST")
}

func TestSystem_ProcessOrderRequiresCoordinator(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Add(NewPicker("PICKER_01", Point{})))
	rc, _ := newTestRunContext(0)

	err := sys.ProcessOrder(rc, DefaultOrders()[0])

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no coordinator registered")
}

func TestSystem_OrderFulfillmentFlow(t *testing.T) {
	sys := NewDefaultWarehouse(WithSeed(42))
	rc, emit := newTestRunContext(0)

	require.NoError(t, sys.ProcessOrder(rc, DefaultOrders()[0]))
	require.NoError(t, sys.Tick(rc))

	// order request plus the coordinator's pick and transport requests
	assert.Equal(t, 3, sys.Metrics().TotalMessages)
	assert.Equal(t, 1, sys.Metrics().OrdersProcessed)
	assert.Equal(t, 1, sys.Metrics().Ticks)

	picker, ok := sys.Participant("PICKER_01")
	require.True(t, ok)
	assert.Equal(t, StateIdle, picker.State())
	assert.Equal(t, 95, picker.Battery(), "one move and three picked items")
	assert.Equal(t, 1, picker.Metrics().TasksCompleted)
	assert.Equal(t, 3, picker.(*Picker).Load())

	transport, ok := sys.Participant("TRANSPORT_01")
	require.True(t, ok)
	assert.Equal(t, 96, transport.Battery(), "two moves")
	assert.Equal(t, 1, transport.Metrics().TasksCompleted)
	assert.Zero(t, transport.(*Transport).Load())

	// the second picker and transport stayed out of it
	idlePicker, _ := sys.Participant("PICKER_02")
	assert.Equal(t, FullBattery, idlePicker.Battery())
	assert.Zero(t, idlePicker.Metrics().MessagesReceived)

	coord := sys.Coordinator()
	require.NotNil(t, coord)
	assert.Equal(t, 2, coord.Metrics().MessagesSent)
	assert.Equal(t, 1, coord.Metrics().MessagesReceived)

	events := drainEvents(emit)
	require.Len(t, events, 6)
	assert.Equal(t, "new order received: ORD_001 (3 items, high priority)", events[0].Text())
	assert.Equal(t, SystemAuthor, events[0].Author)
	assert.Equal(t, "assigned ORD_001 to PICKER_01 and TRANSPORT_01", events[1].Text())
	assert.Equal(t, "COORD_01", events[1].Author)
	assert.Contains(t, events[2].Text(), "pick request for ORD_001: 3 items")
	assert.Contains(t, events[3].Text(), "picked 3 items")
	assert.Equal(t, "transport request for ORD_001: 3 items", events[4].Text())
	assert.Contains(t, events[5].Text(), "delivered 3 items")
}

func TestSystem_SecondOrderReusesFirstIdleWorkers(t *testing.T) {
	sys := NewDefaultWarehouse(WithSeed(7))
	rc, _ := newTestRunContext(0)

	orders := DefaultOrders()
	for _, order := range orders[:2] {
		require.NoError(t, sys.ProcessOrder(rc, order))
		require.NoError(t, sys.Tick(rc))
	}

	// PICKER_01 returns to idle after each pick, so it wins both orders
	// and its load accumulates
	picker, _ := sys.Participant("PICKER_01")
	assert.Equal(t, 2, picker.Metrics().TasksCompleted)
	assert.Equal(t, 5, picker.(*Picker).Load())

	other, _ := sys.Participant("PICKER_02")
	assert.Zero(t, other.Metrics().TasksCompleted)
}

func TestSystem_ChargingStationContention(t *testing.T) {
	sys := NewSystem()
	require.NoError(t, sys.Add(NewCoordinator("COORD_01")))
	pickers := make([]*Picker, 4)
	for i := range pickers {
		pickers[i] = NewPicker(fmt.Sprintf("PICKER_%02d", i+1), Point{X: i, Y: 0})
		require.NoError(t, sys.Add(pickers[i]))
	}
	rc, emit := newTestRunContext(0)

	// everyone under the charging threshold at once
	for _, p := range pickers {
		p.Drain(rc, 75)
		require.Equal(t, 25, p.Battery())
	}

	require.NoError(t, sys.Tick(rc))

	// three stations, four claimants: grants go in request order
	for _, p := range pickers[:3] {
		assert.Equal(t, FullBattery, p.Battery())
		assert.Equal(t, StateCharging, p.State())
	}
	assert.Equal(t, 25, pickers[3].Battery())
	assert.Equal(t, StateWaiting, pickers[3].State())
	assert.Zero(t, sys.Coordinator().FreeStations())

	events := drainEvents(emit)
	require.Len(t, events, 5)
	assert.Equal(t, "4 agents need charging, competing for 3 free stations", events[0].Text())
	assert.Equal(t, "allocated charging station to PICKER_01", events[1].Text())
	assert.Equal(t, "no charging stations available, PICKER_04 waits", events[4].Text())

	// each request went through the router
	assert.Equal(t, 4, sys.Metrics().TotalMessages)
	assert.Equal(t, 1, pickers[3].Metrics().MessagesSent)
}

func TestSystem_NoChargingCompetitionWhenHealthy(t *testing.T) {
	sys := NewDefaultWarehouse()
	rc, emit := newTestRunContext(0)

	require.NoError(t, sys.Tick(rc))

	assert.Empty(t, drainEvents(emit))
	assert.Zero(t, sys.Metrics().TotalMessages)
}

func TestSystem_BroadcastCollaboration(t *testing.T) {
	sys := NewDefaultWarehouse()
	rc, _ := newTestRunContext(0)

	require.NoError(t, sys.Route(rc, NewMessage(SystemAuthor, Broadcast, MsgCollaborationRequest, nil)))
	require.NoError(t, sys.Tick(rc))

	// idle pickers accept, transports and the coordinator ignore
	p1, _ := sys.Participant("PICKER_01")
	p2, _ := sys.Participant("PICKER_02")
	tr, _ := sys.Participant("TRANSPORT_01")
	assert.Equal(t, 1, p1.Metrics().Collaborations)
	assert.Equal(t, 1, p2.Metrics().Collaborations)
	assert.Zero(t, tr.Metrics().Collaborations)
}
