/*
 * topology.go, part of gorxn.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goChem is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package chem

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

//Node is an atom seen as a gonum graph node. Its ID is the atom key.
type Node struct {
	Key int
}

func (N Node) ID() int64 {
	return int64(N.Key)
}

//Edge is a bond seen as a gonum graph edge.
type Edge struct {
	F, T Node
	Bond
}

func (E Edge) From() graph.Node {
	return E.F
}

func (E Edge) To() graph.Node {
	return E.T
}

//ReversedEdge returns the same bond with the ends swapped. Bonds are not directional.
func (E Edge) ReversedEdge() graph.Edge {
	return Edge{F: E.T, T: E.F, Bond: E.Bond}
}

//Weight is the bond order.
func (E Edge) Weight() float64 {
	return E.Order
}

//Topology implements the gonum graph.Undirected and graph.Weighted interfaces
//over a *Graph. Bonds in the skip set are invisible.
type Topology struct {
	g    *Graph
	skip map[BondKey]bool
}

//NewTopology returns a gonum view of g without the skip bonds.
func NewTopology(g *Graph, skip ...BondKey) *Topology {
	T := &Topology{g: g}
	if len(skip) > 0 {
		T.skip = make(map[BondKey]bool, len(skip))
		for _, k := range skip {
			T.skip[NewBondKey(k[0], k[1])] = true
		}
	}
	return T
}

func (T *Topology) Node(id int64) graph.Node {
	if !T.g.HasAtom(int(id)) {
		return nil
	}
	return Node{int(id)}
}

//Nodes returns the atoms in ascending key order.
func (T *Topology) Nodes() graph.Nodes {
	n := make([]graph.Node, 0, T.g.Len())
	for _, k := range T.g.keys {
		n = append(n, Node{k})
	}
	return iterator.NewOrderedNodes(n)
}

func (T *Topology) From(id int64) graph.Nodes {
	k := int(id)
	ret := make([]graph.Node, 0, len(T.g.nbrs[k]))
	for _, n := range T.g.nbrs[k] {
		if T.skip[NewBondKey(k, n)] {
			continue
		}
		ret = append(ret, Node{n})
	}
	if len(ret) == 0 {
		return graph.Empty
	}
	return iterator.NewOrderedNodes(ret)
}

func (T *Topology) HasEdgeBetween(id1, id2 int64) bool {
	return T.edge(id1, id2) != nil
}

func (T *Topology) edge(id1, id2 int64) *Edge {
	k := NewBondKey(int(id1), int(id2))
	if T.skip[k] {
		return nil
	}
	b, ok := T.g.bonds[k]
	if !ok {
		return nil
	}
	return &Edge{F: Node{int(id1)}, T: Node{int(id2)}, Bond: b}
}

func (T *Topology) Edge(id1, id2 int64) graph.Edge {
	e := T.edge(id1, id2)
	if e == nil {
		return nil
	}
	return *e
}

func (T *Topology) EdgeBetween(id1, id2 int64) graph.Edge {
	return T.Edge(id1, id2)
}

func (T *Topology) WeightedEdge(id1, id2 int64) graph.WeightedEdge {
	e := T.edge(id1, id2)
	if e == nil {
		return nil
	}
	return *e
}

func (T *Topology) WeightedEdgeBetween(id1, id2 int64) graph.WeightedEdge {
	return T.WeightedEdge(id1, id2)
}

func (T *Topology) Weight(id1, id2 int64) (w float64, ok bool) {
	if id1 == id2 {
		return 0.0, true
	}
	e := T.edge(id1, id2)
	if e == nil {
		return 0, false
	}
	return e.Weight(), true
}

//Components returns the connected components of the graph, each one sorted,
//ordered by their smallest key.
func (g *Graph) Components() [][]int {
	cc := topo.ConnectedComponents(NewTopology(g))
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		keys := make([]int, 0, len(c))
		for _, n := range c {
			keys = append(keys, int(n.ID()))
		}
		sort.Ints(keys)
		ret = append(ret, keys)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

//ComponentGraphs returns the subgraph of each connected component.
func (g *Graph) ComponentGraphs() []*Graph {
	cc := g.Components()
	ret := make([]*Graph, len(cc))
	for i, c := range cc {
		ret[i] = g.Subgraph(c)
	}
	return ret
}

//Connected returns true if there is a path between a and b that does
//not go through any of the skip bonds.
func (g *Graph) Connected(a, b int, skip ...BondKey) bool {
	if !g.HasAtom(a) || !g.HasAtom(b) {
		return false
	}
	return topo.PathExistsIn(NewTopology(g, skip...), Node{a}, Node{b})
}

//RingSize returns the size of the smallest ring containing the bond k,
//or 0 if the bond is not in a ring.
func (g *Graph) RingSize(k BondKey) int {
	if _, ok := g.bonds[k]; !ok {
		return 0
	}
	T := NewTopology(g, k)
	var bf traverse.BreadthFirst
	depth := -1
	bf.Walk(T, Node{k[0]}, func(n graph.Node, d int) bool {
		if int(n.ID()) == k[1] {
			depth = d
			return true
		}
		return false
	})
	if depth < 0 {
		return 0
	}
	return depth + 1
}
