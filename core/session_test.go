package core

import (
	"testing"
	"time"
)

func TestSession_StateOperations(t *testing.T) {
	s := NewSession("session1")

	if _, ok := s.GetState("missing"); ok {
		t.Error("Expected missing key to report absence")
	}

	s.SetState("location", "A")
	v, ok := s.GetState("location")
	if !ok || v.(string) != "A" {
		t.Errorf("SetState/GetState round trip failed: %v", v)
	}

	s.ApplyStateDelta(map[string]any{"location": "B", "steps": 4})
	if v, _ := s.GetState("location"); v.(string) != "B" {
		t.Error("ApplyStateDelta should overwrite existing keys")
	}
	if v, _ := s.GetState("steps"); v.(int) != 4 {
		t.Error("ApplyStateDelta should add new keys")
	}
}

func TestSession_UpdatedTimestamp(t *testing.T) {
	s := NewSession("session1")
	before := s.Updated
	time.Sleep(time.Millisecond)

	s.SetState("k", "v")
	if !s.Updated.After(before) {
		t.Error("SetState should advance Updated")
	}

	mid := s.Updated
	time.Sleep(time.Millisecond)
	s.AddEvent(NewMessageEvent("agent1", "hi"))
	if !s.Updated.After(mid) {
		t.Error("AddEvent should advance Updated")
	}
}

func TestSession_GetEventsDefensiveCopy(t *testing.T) {
	s := NewSession("session1")
	s.AddEvent(NewMessageEvent("agent1", "original"))

	events := s.GetEvents()
	events[0].Author = "tampered"

	if s.GetEvents()[0].Author != "agent1" {
		t.Error("External mutation reached the session's event history")
	}
}

func TestSession_GetConversationHistory(t *testing.T) {
	s := NewSession("session1")
	s.AddEvent(NewUserMessageEvent("run1", "clean the rooms"))
	s.AddEvent(NewMessageEvent("vacuum", "on it"))

	partial := true
	frag := NewMessageEvent("vacuum", "partial chun")
	frag.Partial = &partial
	s.AddEvent(frag)

	// Events without content are skipped.
	s.AddEvent(NewEvent("run1", "engine"))

	system := NewEvent("run1", "engine")
	system.Content = &Content{Role: "system", Parts: []Part{TextPart{Text: "internal"}}}
	s.AddEvent(system)

	history := s.GetConversationHistory()
	if len(history) != 2 {
		t.Fatalf("Expected 2 conversational events, got %d", len(history))
	}
	if history[0].Content.Role != "user" || history[1].Content.Role != "agent" {
		t.Errorf("Unexpected history roles: %s, %s", history[0].Content.Role, history[1].Content.Role)
	}
}

func TestSession_ActionHistory(t *testing.T) {
	s := NewSession("session1")
	s.AddEvent(NewActionEvent("vacuum", NewAction("Suck"), "dirt at A"))
	s.AddEvent(NewMessageEvent("vacuum", "moving"))
	s.AddEvent(NewStepEvent("vacuum",
		NewPercept("A", map[string]any{"dirty": false}),
		NewAction("MoveRight").WithTarget("B"), ""))

	actions := s.ActionHistory()
	if len(actions) != 2 {
		t.Fatalf("Expected 2 actions, got %d", len(actions))
	}
	if actions[0].Name != "Suck" || actions[1].Name != "MoveRight" {
		t.Errorf("Unexpected action sequence: %+v", actions)
	}
}

func TestSession_CloneIsolation(t *testing.T) {
	s := NewSession("session1")
	s.SetState("battery", 80)
	s.Metadata["scenario"] = "warehouse"
	s.AddEvent(NewMessageEvent("picker_1", "picking"))

	clone := s.Clone()
	clone.SetState("battery", 20)
	clone.Metadata["scenario"] = "mutated"
	clone.AddEvent(NewMessageEvent("picker_1", "extra"))

	if v, _ := s.GetState("battery"); v.(int) != 80 {
		t.Error("Clone state mutation leaked into the original")
	}
	if s.Metadata["scenario"] != "warehouse" {
		t.Error("Clone metadata mutation leaked into the original")
	}
	if len(s.GetEvents()) != 1 {
		t.Error("Clone event append leaked into the original")
	}
	if clone.ID != s.ID || len(clone.GetEvents()) != 2 {
		t.Errorf("Clone incomplete: %+v", clone)
	}
}
