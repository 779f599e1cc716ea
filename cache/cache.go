// Package cache provides bounded least-recently-used caches.
package cache

import (
	"iter"
	"math"
)

// Entry represents a key-value pair in the cache.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

type boundedNode[K comparable, V any] struct {
	prev *boundedNode[K, V]
	next *boundedNode[K, V]
	Entry[K, V]
}

// BoundedCache is an in-memory cache with a fixed upper bound on the number of entries.
// Entries are kept in a doubly linked list ordered by access, where the tail is the most recently used node.
// When the cache is full, inserting a new key evicts the least recently used node (the head of the list).
//
// BoundedCache is not safe for concurrent use. See [LockedCache].
type BoundedCache[K comparable, V any] struct {
	nodeByKey map[K]*boundedNode[K, V]
	capacity  int

	// head is the least recently used node.
	head *boundedNode[K, V]
	// tail is the most recently used node.
	tail *boundedNode[K, V]
}

// NewBoundedCache returns a new bounded cache with the given capacity.
// If capacity is not positive, the cache is effectively unbounded.
func NewBoundedCache[K comparable, V any](capacity int) *BoundedCache[K, V] {
	if capacity <= 0 {
		capacity = math.MaxInt
	}
	return &BoundedCache[K, V]{
		nodeByKey: make(map[K]*boundedNode[K, V]),
		capacity:  capacity,
	}
}

// Len returns the number of entries in the cache.
func (c *BoundedCache[K, V]) Len() int {
	return len(c.nodeByKey)
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *BoundedCache[K, V]) Capacity() int {
	return c.capacity
}

// Contains returns whether the cache contains the given key.
// Unlike Get, it does not update the access order.
func (c *BoundedCache[K, V]) Contains(key K) bool {
	_, ok := c.nodeByKey[key]
	return ok
}

// Get returns the value associated with key and marks it as most recently used.
func (c *BoundedCache[K, V]) Get(key K) (value V, ok bool) {
	node, ok := c.nodeByKey[key]
	if !ok {
		return value, false
	}
	c.moveToTail(node)
	return node.Value, true
}

// Set inserts or updates the value associated with key and marks it as most recently used.
func (c *BoundedCache[K, V]) Set(key K, value V) {
	if node, ok := c.nodeByKey[key]; ok {
		node.Value = value
		c.moveToTail(node)
		return
	}

	if len(c.nodeByKey) == c.capacity {
		c.remove(c.head)
	}

	node := &boundedNode[K, V]{
		prev:  c.tail,
		Entry: Entry[K, V]{Key: key, Value: value},
	}
	c.nodeByKey[key] = node
	if c.tail != nil {
		c.tail.next = node
	} else {
		c.head = node
	}
	c.tail = node
}

// Remove deletes the value associated with key and returns whether the key was found.
func (c *BoundedCache[K, V]) Remove(key K) bool {
	node, ok := c.nodeByKey[key]
	if !ok {
		return false
	}
	c.remove(node)
	return true
}

// Clear removes all entries from the cache.
func (c *BoundedCache[K, V]) Clear() {
	clear(c.nodeByKey)
	c.head = nil
	c.tail = nil
}

// All returns an iterator over all entries in the cache,
// from the least recently used to the most recently used.
func (c *BoundedCache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for node := c.head; node != nil; node = node.next {
			if !yield(node.Key, node.Value) {
				return
			}
		}
	}
}

func (c *BoundedCache[K, V]) moveToTail(node *boundedNode[K, V]) {
	if node.next == nil {
		return
	}

	node.next.prev = node.prev
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		c.head = node.next
	}

	node.prev = c.tail
	node.next = nil
	c.tail.next = node
	c.tail = node
}

func (c *BoundedCache[K, V]) remove(node *boundedNode[K, V]) {
	delete(c.nodeByKey, node.Key)

	if node.prev != nil {
		node.prev.next = node.next
	} else {
		c.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		c.tail = node.prev
	}
}
