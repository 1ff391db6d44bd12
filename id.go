// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import "strconv"

// ID identifies an element in an Arena. IDs are never reused.
//
type ID uint64

// NoID is the zero ID. It is never issued and stands for "no element", for
// instance the destination of a held wire.
//
const NoID ID = 0

func (id ID) String() string {
	if id == NoID {
		return "none"
	}
	return "#" + strconv.FormatUint(uint64(id), 10)
}

// IDAllocator issues IDs from a monotonically increasing counter.
//
type IDAllocator struct {
	next ID
}

// NewIDAllocator returns an allocator whose first ID is 1.
//
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

// Next returns a fresh ID.
//
func (a *IDAllocator) Next() ID {
	if a.next == NoID {
		a.next = 1
	}
	id := a.next
	a.next++
	return id
}

// Peek returns the ID the next call to Next will return.
//
func (a *IDAllocator) Peek() ID {
	if a.next == NoID {
		return 1
	}
	return a.next
}
