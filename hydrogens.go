/*
 * hydrogens.go, part of gorxn.
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

//removableH returns true if the atom k is a hydrogen that can be folded into
//the hydrogen count of its neighbor without losing information: a neutral H
//without parity or implicit hydrogens, bonded only to a non-H atom through a
//normal bond.
func (g *Graph) removableH(k int) bool {
	a := g.atoms[k]
	if a.Symbol != "H" || a.Charge != 0 || a.Parity.IsSet() || a.Hydrogens != 0 {
		return false
	}
	n := g.nbrs[k]
	if len(n) != 1 {
		return false
	}
	if g.atoms[n[0]].Symbol == "H" {
		return false
	}
	return g.bonds[NewBondKey(k, n[0])].Class() == Normal
}

//Explicit returns a graph where every implicit hydrogen is an atom. The new atoms
//get keys after the current maximum key, assigned in ascending parent key order.
func Explicit(g *Graph) *Graph {
	next := g.MaxKey() + 1
	at := g.atomsCopy()
	bo := g.bondsCopy()
	for _, k := range g.keys {
		a := at[k]
		for i := 0; i < a.Hydrogens; i++ {
			at[next] = Atom{Symbol: "H"}
			bo[NewBondKey(k, next)] = Bond{Order: 1}
			next++
		}
		a.Hydrogens = 0
		at[k] = a
	}
	return newGraph(at, bo)
}

//Implicit returns a graph where every removable hydrogen is folded into
//the hydrogen count of its parent atom.
func Implicit(g *Graph) *Graph {
	at := g.atomsCopy()
	bo := g.bondsCopy()
	for _, k := range g.keys {
		if !g.removableH(k) {
			continue
		}
		p := g.nbrs[k][0]
		a := at[p]
		a.Hydrogens++
		at[p] = a
		delete(at, k)
		delete(bo, NewBondKey(k, p))
	}
	return newGraph(at, bo)
}

//ExplicitHydrogens returns the keys of the explicit hydrogens bonded to k, sorted.
func (g *Graph) ExplicitHydrogens(k int) []int {
	var r []int
	for _, n := range g.nbrs[k] {
		if g.atoms[n].Symbol == "H" {
			r = append(r, n)
		}
	}
	sort.Ints(r)
	return r
}

//HydrogenCount returns the total number of hydrogens on atom k, implicit and explicit.
func (g *Graph) HydrogenCount(k int) int {
	return g.atoms[k].Hydrogens + len(g.ExplicitHydrogens(k))
}
