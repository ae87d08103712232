// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefixtree builds and walks the frequency-sorted binary tree used
// by the huffman package. Nodes live in a single flat arena and reference
// each other by index rather than by pointer, matching the i16 arena layout
// that the wire format serializes directly (see huffman's wire format docs).
package prefixtree

import "container/heap"

// Null is the arena index used in place of a nil child or parent pointer.
const Null int16 = -1

// Node is one arena slot. Code is meaningful only when the node is a leaf
// (Left == Null && Right == Null); Dir is meaningful for every non-root node
// and records which child of Parent this node is.
type Node struct {
	Code   byte
	Left   int16
	Right  int16
	Parent int16
	Dir    uint8
}

// Tree is an arena of Nodes. By construction the last element is always the
// root.
type Tree struct {
	Nodes []Node
}

// Root returns the arena index of the root node, or Null if the tree is
// empty.
func (t *Tree) Root() int16 {
	if len(t.Nodes) == 0 {
		return Null
	}
	return int16(len(t.Nodes) - 1)
}

// IsLeaf reports whether the node at idx has no children.
func (t *Tree) IsLeaf(idx int16) bool {
	n := t.Nodes[idx]
	return n.Left == Null && n.Right == Null
}

// slot pairs an arena index with the aggregate occurrence count behind it;
// used only while building the tree.
type slot struct {
	node  int16
	count int
}

type slotHeap []slot

func (h slotHeap) Len() int            { return len(h) }
func (h slotHeap) Less(i, j int) bool  { return h[i].count < h[j].count }
func (h slotHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *slotHeap) Push(x interface{}) { *h = append(*h, x.(slot)) }
func (h *slotHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Build constructs a tree from per-byte occurrence counts. It repeatedly
// merges the two least-frequent remaining entries into a new internal node
// until one entry — the root — remains. The entry popped first in a given
// step (the lower count) becomes the Dir=1 child; the second becomes Dir=0.
//
// A single distinct byte is a degenerate case: the merge loop never runs, so
// the lone leaf would need a zero-bit code, which a bit-exhaustion-driven
// decoder can never terminate on. Following the same fix RFC 1951 applies to
// a one-symbol dynamic Huffman block, Build synthesizes an unused sibling
// leaf so the real symbol still costs exactly one bit.
func Build(counts *[256]int) (*Tree, [256]int16) {
	var t Tree
	var leafOf [256]int16
	for i := range leafOf {
		leafOf[i] = Null
	}

	h := &slotHeap{}
	for b := 0; b < 256; b++ {
		if counts[b] > 0 {
			t.Nodes = append(t.Nodes, Node{Code: byte(b), Left: Null, Right: Null, Parent: Null})
			idx := int16(len(t.Nodes) - 1)
			leafOf[b] = idx
			*h = append(*h, slot{node: idx, count: counts[b]})
		}
	}
	heap.Init(h)

	if h.Len() == 0 {
		return &t, leafOf
	}
	if h.Len() == 1 {
		only := (*h)[0]
		t.Nodes = append(t.Nodes, Node{Code: t.Nodes[only.node].Code, Left: Null, Right: Null, Parent: Null})
		dummy := int16(len(t.Nodes) - 1)
		t.Nodes = append(t.Nodes, Node{Left: Null, Right: Null, Parent: Null})
		parent := int16(len(t.Nodes) - 1)

		t.Nodes[only.node].Parent, t.Nodes[only.node].Dir = parent, 1
		t.Nodes[dummy].Parent, t.Nodes[dummy].Dir = parent, 0
		t.Nodes[parent].Right = only.node
		t.Nodes[parent].Left = dummy
		return &t, leafOf
	}

	for h.Len() > 1 {
		a := heap.Pop(h).(slot) // popped first: the Dir=1 child
		b := heap.Pop(h).(slot) // popped second: the Dir=0 child

		t.Nodes = append(t.Nodes, Node{Left: Null, Right: Null, Parent: Null})
		parent := int16(len(t.Nodes) - 1)

		t.Nodes[a.node].Parent, t.Nodes[a.node].Dir = parent, 1
		t.Nodes[b.node].Parent, t.Nodes[b.node].Dir = parent, 0
		t.Nodes[parent].Right = a.node
		t.Nodes[parent].Left = b.node

		heap.Push(h, slot{node: parent, count: a.count + b.count})
	}
	return &t, leafOf
}

// CodeBits returns the bit sequence for the leaf at idx, in root-first
// emission order: the order a writer packs into the bit stream, and the
// order a reader's root-to-leaf walk consumes.
func (t *Tree) CodeBits(idx int16) []uint8 {
	var bits []uint8
	for cur := idx; cur != t.Root(); {
		n := t.Nodes[cur]
		bits = append(bits, n.Dir)
		cur = n.Parent
	}
	for i, j := 0, len(bits)-1; i < j; i, j = i+1, j-1 {
		bits[i], bits[j] = bits[j], bits[i]
	}
	return bits
}
