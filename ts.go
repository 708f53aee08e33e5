/*
 * ts.go, part of gorxn.
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

import "sort"

//TS graphs are graphs where forming bonds have order FormingOrder and breaking
//bonds have order BreakingOrder. Their parities are given in the frame of the TS
//graph itself and are converted when the graph is projected onto either side or
//reversed.

//IsTS returns true if g has forming or breaking bonds.
func IsTS(g *Graph) bool {
	for _, b := range g.bonds {
		if b.Class() != Normal {
			return true
		}
	}
	return false
}

func (g *Graph) bondKeysOfClass(c BondClass) []BondKey {
	var r []BondKey
	for _, k := range g.BondKeys() {
		if g.bonds[k].Class() == c {
			r = append(r, k)
		}
	}
	return r
}

//FormingKeys returns the keys of the forming bonds, sorted.
func FormingKeys(ts *Graph) []BondKey { return ts.bondKeysOfClass(Forming) }

//BreakingKeys returns the keys of the breaking bonds, sorted.
func BreakingKeys(ts *Graph) []BondKey { return ts.bondKeysOfClass(Breaking) }

//ReactingAtoms returns the atoms involved in forming or breaking bonds, sorted.
func ReactingAtoms(ts *Graph) []int {
	seen := make(map[int]bool)
	var r []int
	for _, k := range ts.BondKeys() {
		if ts.bonds[k].Class() == Normal {
			continue
		}
		for _, a := range k {
			if !seen[a] {
				seen[a] = true
				r = append(r, a)
			}
		}
	}
	sort.Ints(r)
	return r
}

//sideGraph returns the stereo-free graph obtained by dropping the bonds of class
//drop and turning the other TS bonds into single bonds. Bond orders are then set to
//the highest order over the dominant resonances.
func sideGraph(ts *Graph, drop BondClass) *Graph {
	at := make(map[int]Atom, len(ts.atoms))
	for k, a := range ts.atoms {
		a.Parity = NoParity
		at[k] = a
	}
	bo := make(map[BondKey]Bond, len(ts.bonds))
	for k, b := range ts.bonds {
		c := b.Class()
		if c == drop {
			continue
		}
		if c != Normal {
			b.Order = 1
		}
		bo[k] = Bond{Order: b.Order}
	}
	s := newGraph(at, bo)
	orders := make(map[BondKey]float64, len(bo))
	for k, o := range ResonanceBondOrders(s) {
		orders[k] = float64(o[len(o)-1])
	}
	return s.WithBondOrders(orders)
}

func sideWithStereo(ts *Graph, drop BondClass) *Graph {
	s := sideGraph(ts, drop)
	if !ts.HasStereo() {
		return s
	}
	return transferStereo(ts, stereoSites(ts), s, stereoSites(s))
}

//ReactantGraph returns the reactant side of a TS graph: forming bonds are dropped and
//breaking bonds become single bonds. Parities are converted to the frame of the
//reactant graph. For a graph without TS bonds it returns g with resonance bond orders.
func ReactantGraph(ts *Graph) *Graph {
	return sideWithStereo(ts, Forming)
}

//ProductGraph returns the product side of a TS graph: breaking bonds are dropped and
//forming bonds become single bonds.
func ProductGraph(ts *Graph) *Graph {
	return sideWithStereo(ts, Breaking)
}

//ReverseTS swaps forming and breaking bonds and converts the parities to the frame
//of the reversed graph. At an SN2 center the entering and leaving substituents
//exchange places, which inverts the parity.
func ReverseTS(ts *Graph) *Graph {
	orders := make(map[BondKey]float64)
	for k, b := range ts.bonds {
		switch b.Class() {
		case Forming:
			orders[k] = BreakingOrder
		case Breaking:
			orders[k] = FormingOrder
		}
	}
	rv := ts.WithoutStereo().WithBondOrders(orders)
	if !ts.HasStereo() {
		return rv
	}
	return transferStereo(ts, stereoSites(ts), rv, stereoSites(rv))
}
