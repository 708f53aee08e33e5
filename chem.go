/*
 * chem.go, part of gorxn.
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

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chem

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

/**Note: A *Graph is never modified after it is built. Every function that "changes" a
 * graph returns a new one, so graphs can be shared freely between goroutines and
 * kept as map values.**/

//Parity is the stereo parity of an atom or a bond. The zero value means that
//no parity is assigned.
type Parity int8

const (
	NoParity Parity = iota
	ParityFalse
	ParityTrue
)

//ParityOf returns ParityTrue or ParityFalse.
func ParityOf(b bool) Parity {
	if b {
		return ParityTrue
	}
	return ParityFalse
}

func (p Parity) IsSet() bool { return p != NoParity }

func (p Parity) Bool() bool { return p == ParityTrue }

//Flip returns the opposite parity. NoParity stays NoParity.
func (p Parity) Flip() Parity {
	switch p {
	case ParityTrue:
		return ParityFalse
	case ParityFalse:
		return ParityTrue
	}
	return NoParity
}

//Xor flips p if b is true.
func (p Parity) Xor(b bool) Parity {
	if b {
		return p.Flip()
	}
	return p
}

func (p Parity) String() string {
	switch p {
	case ParityTrue:
		return "true"
	case ParityFalse:
		return "false"
	}
	return "null"
}

//ImplicitH stands for an implicit hydrogen in substituent lists.
const ImplicitH = -1

//Atom is an atom in a graph. Hydrogens is the number of implicit hydrogens.
type Atom struct {
	Symbol    string
	Hydrogens int
	Charge    int
	Parity    Parity
}

//BondKey identifies a bond by its two atom keys, the smaller one first.
type BondKey [2]int

//NewBondKey returns the key of the bond between a and b.
func NewBondKey(a, b int) BondKey {
	if a > b {
		a, b = b, a
	}
	return BondKey{a, b}
}

//Has returns true if a is one of the ends of the bond.
func (k BondKey) Has(a int) bool { return k[0] == a || k[1] == a }

//Other returns the end of the bond that is not a. Panics if a is not in the bond.
func (k BondKey) Other(a int) int {
	switch a {
	case k[0]:
		return k[1]
	case k[1]:
		return k[0]
	}
	panic(fmt.Sprintf("Trying to cross a bond: atom %d is not in bond %v", a, k)) //programming error
}

//Less sorts bond keys lexicographically.
func (k BondKey) Less(o BondKey) bool {
	if k[0] != o[0] {
		return k[0] < o[0]
	}
	return k[1] < o[1]
}

func (k BondKey) String() string { return fmt.Sprintf("%d-%d", k[0], k[1]) }

//Transition-state bond orders.
const (
	FormingOrder  = 0.1
	BreakingOrder = 0.9
	AromaticOrder = 1.5
)

//BondClass tells normal bonds from the forming and breaking bonds of a TS graph.
//The numeric values are part of the canonical code.
type BondClass int

const (
	Normal BondClass = iota
	Forming
	Breaking
)

const ordertol = 1e-6

//BondClassOf classifies a bond order.
func BondClassOf(order float64) BondClass {
	switch {
	case math.Abs(order-FormingOrder) < ordertol:
		return Forming
	case math.Abs(order-BreakingOrder) < ordertol:
		return Breaking
	}
	return Normal
}

//Bond is a bond in a graph.
type Bond struct {
	Order  float64
	Parity Parity
}

func (b Bond) Class() BondClass { return BondClassOf(b.Order) }

//Graph is an immutable molecular graph. It can also be a TS graph,
//where forming and breaking bonds are tagged by their orders.
type Graph struct {
	atoms map[int]Atom
	bonds map[BondKey]Bond
	nbrs  map[int][]int //sorted
	keys  []int         //sorted
}

//NewGraph builds a graph from copies of the given maps. Bond keys are normalized.
//It returns a structural error for self bonds and for bonds to missing atoms.
func NewGraph(atoms map[int]Atom, bonds map[BondKey]Bond) (*Graph, error) {
	at := make(map[int]Atom, len(atoms))
	for k, a := range atoms {
		at[k] = a
	}
	bo := make(map[BondKey]Bond, len(bonds))
	for k, b := range bonds {
		if k[0] == k[1] {
			return nil, structuralError("NewGraph", "self bond on atom %d", k[0])
		}
		if _, ok := at[k[0]]; !ok {
			return nil, structuralError("NewGraph", "bond %v refers to missing atom %d", k, k[0])
		}
		if _, ok := at[k[1]]; !ok {
			return nil, structuralError("NewGraph", "bond %v refers to missing atom %d", k, k[1])
		}
		bo[NewBondKey(k[0], k[1])] = b
	}
	return newGraph(at, bo), nil
}

//newGraph takes ownership of the maps, which must already be consistent.
func newGraph(atoms map[int]Atom, bonds map[BondKey]Bond) *Graph {
	g := &Graph{atoms: atoms, bonds: bonds}
	g.nbrs = make(map[int][]int, len(atoms))
	g.keys = make([]int, 0, len(atoms))
	for k := range atoms {
		g.keys = append(g.keys, k)
	}
	sort.Ints(g.keys)
	for k := range bonds {
		g.nbrs[k[0]] = append(g.nbrs[k[0]], k[1])
		g.nbrs[k[1]] = append(g.nbrs[k[1]], k[0])
	}
	for _, n := range g.nbrs {
		sort.Ints(n)
	}
	return g
}

//copies of the internal maps, for building modified graphs.
func (g *Graph) atomsCopy() map[int]Atom {
	r := make(map[int]Atom, len(g.atoms))
	for k, a := range g.atoms {
		r[k] = a
	}
	return r
}

func (g *Graph) bondsCopy() map[BondKey]Bond {
	r := make(map[BondKey]Bond, len(g.bonds))
	for k, b := range g.bonds {
		r[k] = b
	}
	return r
}

//Queries

//Len returns the number of atoms in the graph.
func (g *Graph) Len() int { return len(g.atoms) }

//NBonds returns the number of bonds in the graph.
func (g *Graph) NBonds() int { return len(g.bonds) }

//Keys returns the atom keys in ascending order.
func (g *Graph) Keys() []int {
	r := make([]int, len(g.keys))
	copy(r, g.keys)
	return r
}

//MaxKey returns the largest atom key, or -1 for an empty graph.
func (g *Graph) MaxKey() int {
	if len(g.keys) == 0 {
		return -1
	}
	return g.keys[len(g.keys)-1]
}

func (g *Graph) Atom(k int) (Atom, bool) {
	a, ok := g.atoms[k]
	return a, ok
}

func (g *Graph) HasAtom(k int) bool {
	_, ok := g.atoms[k]
	return ok
}

//Bond returns the bond between a and b, in any order.
func (g *Graph) Bond(a, b int) (Bond, bool) {
	bo, ok := g.bonds[NewBondKey(a, b)]
	return bo, ok
}

//BondKeys returns the bond keys, sorted.
func (g *Graph) BondKeys() []BondKey {
	r := make([]BondKey, 0, len(g.bonds))
	for k := range g.bonds {
		r = append(r, k)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Less(r[j]) })
	return r
}

//Neighbors returns the keys of the atoms bonded to k, sorted.
func (g *Graph) Neighbors(k int) []int {
	n := g.nbrs[k]
	r := make([]int, len(n))
	copy(r, n)
	return r
}

//Degree is the number of explicit neighbors of k.
func (g *Graph) Degree(k int) int { return len(g.nbrs[k]) }

//Atoms returns a copy of the atom map.
func (g *Graph) Atoms() map[int]Atom { return g.atomsCopy() }

//Bonds returns a copy of the bond map.
func (g *Graph) Bonds() map[BondKey]Bond { return g.bondsCopy() }

//Charge returns the sum of the formal charges.
func (g *Graph) Charge() int {
	c := 0
	for _, a := range g.atoms {
		c += a.Charge
	}
	return c
}

//Formula returns the element counts, implicit hydrogens included.
func (g *Graph) Formula() map[string]int {
	f := make(map[string]int)
	for _, a := range g.atoms {
		f[a.Symbol]++
		if a.Hydrogens > 0 {
			f["H"] += a.Hydrogens
		}
	}
	return f
}

//Mass returns the sum of the atomic masses, implicit hydrogens included.
func (g *Graph) Mass() float64 {
	var m float64
	for s, n := range g.Formula() {
		m += symbolMass[s] * float64(n)
	}
	return m
}

//Equal returns true if both graphs have the same keys, atoms and bonds.
func (g *Graph) Equal(o *Graph) bool {
	if len(g.atoms) != len(o.atoms) || len(g.bonds) != len(o.bonds) {
		return false
	}
	for k, a := range g.atoms {
		if b, ok := o.atoms[k]; !ok || a != b {
			return false
		}
	}
	for k, a := range g.bonds {
		b, ok := o.bonds[k]
		if !ok || a.Parity != b.Parity || math.Abs(a.Order-b.Order) > ordertol {
			return false
		}
	}
	return true
}

//HasStereo returns true if any atom or bond carries a parity.
func (g *Graph) HasStereo() bool {
	for _, a := range g.atoms {
		if a.Parity.IsSet() {
			return true
		}
	}
	for _, b := range g.bonds {
		if b.Parity.IsSet() {
			return true
		}
	}
	return false
}

func (g *Graph) String() string {
	var sb strings.Builder
	sb.WriteString("atoms:\n")
	for _, k := range g.keys {
		a := g.atoms[k]
		fmt.Fprintf(&sb, "  %d: %s H%d", k, a.Symbol, a.Hydrogens)
		if a.Charge != 0 {
			fmt.Fprintf(&sb, " %+d", a.Charge)
		}
		if a.Parity.IsSet() {
			fmt.Fprintf(&sb, " %s", a.Parity)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("bonds:\n")
	for _, k := range g.BondKeys() {
		b := g.bonds[k]
		fmt.Fprintf(&sb, "  %s: %g", k, b.Order)
		if b.Parity.IsSet() {
			fmt.Fprintf(&sb, " %s", b.Parity)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

//Edits. All of them return a new graph.

//AddAtom returns a graph with the atom a added with key k.
func (g *Graph) AddAtom(k int, a Atom) (*Graph, error) {
	if _, ok := g.atoms[k]; ok {
		return nil, structuralError("AddAtom", "key %d already in use", k)
	}
	at := g.atomsCopy()
	at[k] = a
	return newGraph(at, g.bondsCopy()), nil
}

//RemoveAtoms returns a graph without the given atoms and their bonds.
func (g *Graph) RemoveAtoms(keys ...int) *Graph {
	rm := make(map[int]bool, len(keys))
	for _, k := range keys {
		rm[k] = true
	}
	at := make(map[int]Atom, len(g.atoms))
	for k, a := range g.atoms {
		if !rm[k] {
			at[k] = a
		}
	}
	bo := make(map[BondKey]Bond, len(g.bonds))
	for k, b := range g.bonds {
		if !rm[k[0]] && !rm[k[1]] {
			bo[k] = b
		}
	}
	return newGraph(at, bo)
}

//AddBonds returns a graph with the given bonds added, or replaced if they exist.
func (g *Graph) AddBonds(bonds map[BondKey]Bond) (*Graph, error) {
	bo := g.bondsCopy()
	for k, b := range bonds {
		if k[0] == k[1] {
			return nil, structuralError("AddBonds", "self bond on atom %d", k[0])
		}
		if !g.HasAtom(k[0]) || !g.HasAtom(k[1]) {
			return nil, structuralError("AddBonds", "bond %v refers to a missing atom", k)
		}
		bo[NewBondKey(k[0], k[1])] = b
	}
	return newGraph(g.atomsCopy(), bo), nil
}

//RemoveBonds returns a graph without the given bonds. Missing bonds are ignored.
func (g *Graph) RemoveBonds(keys ...BondKey) *Graph {
	bo := g.bondsCopy()
	for _, k := range keys {
		delete(bo, NewBondKey(k[0], k[1]))
	}
	return newGraph(g.atomsCopy(), bo)
}

//WithAtomParity returns a graph where atom k has parity p. Missing atoms are ignored.
func (g *Graph) WithAtomParity(k int, p Parity) *Graph {
	return g.WithAtomParities(map[int]Parity{k: p})
}

//WithAtomParities sets several atom parities at once.
func (g *Graph) WithAtomParities(pars map[int]Parity) *Graph {
	at := g.atomsCopy()
	for k, p := range pars {
		if a, ok := at[k]; ok {
			a.Parity = p
			at[k] = a
		}
	}
	return newGraph(at, g.bondsCopy())
}

//WithBondParity returns a graph where bond k has parity p. Missing bonds are ignored.
func (g *Graph) WithBondParity(k BondKey, p Parity) *Graph {
	return g.WithBondParities(map[BondKey]Parity{k: p})
}

//WithBondParities sets several bond parities at once.
func (g *Graph) WithBondParities(pars map[BondKey]Parity) *Graph {
	bo := g.bondsCopy()
	for k, p := range pars {
		k = NewBondKey(k[0], k[1])
		if b, ok := bo[k]; ok {
			b.Parity = p
			bo[k] = b
		}
	}
	return newGraph(g.atomsCopy(), bo)
}

//WithBondOrder returns a graph where bond k has order o. Missing bonds are ignored.
func (g *Graph) WithBondOrder(k BondKey, o float64) *Graph {
	return g.WithBondOrders(map[BondKey]float64{k: o})
}

//WithBondOrders sets several bond orders at once.
func (g *Graph) WithBondOrders(orders map[BondKey]float64) *Graph {
	bo := g.bondsCopy()
	for k, o := range orders {
		k = NewBondKey(k[0], k[1])
		if b, ok := bo[k]; ok {
			b.Order = o
			bo[k] = b
		}
	}
	return newGraph(g.atomsCopy(), bo)
}

//WithoutStereo returns a graph with all the parities removed.
func (g *Graph) WithoutStereo() *Graph {
	at := make(map[int]Atom, len(g.atoms))
	for k, a := range g.atoms {
		a.Parity = NoParity
		at[k] = a
	}
	bo := make(map[BondKey]Bond, len(g.bonds))
	for k, b := range g.bonds {
		b.Parity = NoParity
		bo[k] = b
	}
	return newGraph(at, bo)
}

//WithoutCharges returns a graph where every formal charge is zero.
func (g *Graph) WithoutCharges() *Graph {
	at := make(map[int]Atom, len(g.atoms))
	for k, a := range g.atoms {
		a.Charge = 0
		at[k] = a
	}
	return newGraph(at, g.bondsCopy())
}

//Structure

//Subgraph returns the graph induced by keys. Keys not in g are ignored.
func (g *Graph) Subgraph(keys []int) *Graph {
	in := make(map[int]bool, len(keys))
	at := make(map[int]Atom, len(keys))
	for _, k := range keys {
		if a, ok := g.atoms[k]; ok {
			in[k] = true
			at[k] = a
		}
	}
	bo := make(map[BondKey]Bond)
	for k, b := range g.bonds {
		if in[k[0]] && in[k[1]] {
			bo[k] = b
		}
	}
	return newGraph(at, bo)
}

//Relabel returns a graph where each key k is replaced by m[k]. Keys missing from
//m are kept. It returns a structural error if two atoms end up with the same key.
func (g *Graph) Relabel(m map[int]int) (*Graph, error) {
	nk := func(k int) int {
		if n, ok := m[k]; ok {
			return n
		}
		return k
	}
	at := make(map[int]Atom, len(g.atoms))
	for k, a := range g.atoms {
		n := nk(k)
		if _, ok := at[n]; ok {
			return nil, structuralError("Relabel", "relabeling is not injective at key %d", n)
		}
		at[n] = a
	}
	bo := make(map[BondKey]Bond, len(g.bonds))
	for k, b := range g.bonds {
		bo[NewBondKey(nk(k[0]), nk(k[1]))] = b
	}
	return newGraph(at, bo), nil
}

//mustRelabel is Relabel for maps known to be injective.
func (g *Graph) mustRelabel(m map[int]int) *Graph {
	r, err := g.Relabel(m)
	if err != nil {
		panic(err.Error()) //programming error
	}
	return r
}

//Shift adds offset to every key.
func (g *Graph) Shift(offset int) *Graph {
	m := make(map[int]int, len(g.atoms))
	for k := range g.atoms {
		m[k] = k + offset
	}
	return g.mustRelabel(m)
}

//Contiguous relabels g so that its keys are 0..n-1, keeping their order.
//It also returns the new key of each old key.
func (g *Graph) Contiguous() (*Graph, map[int]int) {
	m := make(map[int]int, len(g.keys))
	for i, k := range g.keys {
		m[k] = i
	}
	return g.mustRelabel(m), m
}

//Union returns a graph with the atoms and bonds of both graphs. The key sets
//must be disjoint.
func (g *Graph) Union(o *Graph) (*Graph, error) {
	at := g.atomsCopy()
	for k, a := range o.atoms {
		if _, ok := at[k]; ok {
			return nil, structuralError("Union", "key %d present in both graphs", k)
		}
		at[k] = a
	}
	bo := g.bondsCopy()
	for k, b := range o.bonds {
		bo[k] = b
	}
	return newGraph(at, bo), nil
}

//UnionAll joins several graphs with disjoint keys.
func UnionAll(gs ...*Graph) (*Graph, error) {
	r := newGraph(map[int]Atom{}, map[BondKey]Bond{})
	var err error
	for _, g := range gs {
		r, err = r.Union(g)
		if err != nil {
			return nil, errDecorate(err, "UnionAll")
		}
	}
	return r, nil
}

//Hypervalencies returns, for each atom whose bond count (explicit neighbors
//plus implicit hydrogens) exceeds its charge-adjusted valence, the excess.
func (g *Graph) Hypervalencies() map[int]int {
	r := make(map[int]int)
	for k, a := range g.atoms {
		if _, ok := symbolValence[a.Symbol]; !ok {
			continue
		}
		ex := len(g.nbrs[k]) + a.Hydrogens - Valence(a.Symbol, a.Charge)
		if ex > 0 {
			r[k] = ex
		}
	}
	return r
}
