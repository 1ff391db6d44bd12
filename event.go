// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"strings"
	"sync"
)

// EventType is the type of a user gesture.
//
type EventType int

// Gesture types.
//
const (
	ClickOutput EventType = iota
	ClickInput
	SecondaryClickOutput
	SecondaryClickInput
	ClickGate
	// PointerMove moves the free end of a held wire. Target is ignored.
	PointerMove
)

var eventNames = [...]string{
	ClickOutput:          "ClickOutput",
	ClickInput:           "ClickInput",
	SecondaryClickOutput: "SecondaryClickOutput",
	SecondaryClickInput:  "SecondaryClickInput",
	ClickGate:            "ClickGate",
	PointerMove:          "PointerMove",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "Unknown"
	}
	return eventNames[t]
}

// ParseEventType returns the event type with the given name, ignoring case.
//
func ParseEventType(name string) (EventType, bool) {
	for t, n := range eventNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return EventType(t), true
		}
	}
	return 0, false
}

// An Event is a discrete user gesture on an element.
//
type Event struct {
	Type   EventType
	Target ID
	Pos    Point // world position of the pointer, if known
}

func (ev Event) String() string {
	return ev.Type.String() + "(" + ev.Target.String() + ")"
}

// EventQueue is an ordered queue of events. Any goroutine may Push events;
// a single consumer drains them.
//
type EventQueue struct {
	mu sync.Mutex
	q  []Event
}

// Push appends events to the queue.
//
func (q *EventQueue) Push(evs ...Event) {
	q.mu.Lock()
	q.q = append(q.q, evs...)
	q.mu.Unlock()
}

// Len returns the number of pending events.
//
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.q)
}

// Drain removes and returns all pending events in the order they were pushed.
//
func (q *EventQueue) Drain() []Event {
	q.mu.Lock()
	evs := q.q
	q.q = nil
	q.mu.Unlock()
	return evs
}
