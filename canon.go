/*
 * canon.go, part of gorxn.
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
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
)

//Code is the canonical code of a graph. Two graphs are isomorphic (with or
//without stereo, depending on how the codes were computed) iff their codes are equal.
type Code []int

//Compare orders codes lexicographically, a prefix before the longer code.
func (c Code) Compare(o Code) int {
	return compareInts(c, o)
}

func (c Code) Equal(o Code) bool {
	return compareInts(c, o) == 0
}

//Hash returns the xxhash64 digest of the code.
func (c Code) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range c {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		d.Write(buf[:])
	}
	return d.Sum64()
}

func compareInts(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

//elementOrdinal is the atomic number for known symbols. Unknown symbols get
//distinct values above every atomic number.
func elementOrdinal(s string) int {
	if z, ok := symbolZ[s]; ok {
		return z
	}
	o := 1
	for i := 0; i < len(s) && i < 6; i++ {
		o = o<<8 | int(s[i])
	}
	return o
}

type arc struct {
	to    int
	class BondClass
}

//folded is a graph with its removable hydrogens folded into hydrogen counts,
//indexed 0..n-1 over the remaining ("heavy") atoms in key order.
type folded struct {
	g      *Graph
	heavy  []int
	idx    map[int]int
	hcount []int
	adj    [][]arc
	hs     [][]int //keys of the hydrogens folded into each heavy atom, sorted
}

func fold(g *Graph) *folded {
	f := &folded{g: g, idx: make(map[int]int, len(g.atoms))}
	for _, k := range g.keys {
		if !g.removableH(k) {
			f.idx[k] = len(f.heavy)
			f.heavy = append(f.heavy, k)
		}
	}
	n := len(f.heavy)
	f.hcount = make([]int, n)
	f.adj = make([][]arc, n)
	f.hs = make([][]int, n)
	for i, k := range f.heavy {
		f.hcount[i] = g.atoms[k].Hydrogens
	}
	for _, k := range g.keys {
		if _, ok := f.idx[k]; ok {
			continue
		}
		p := f.idx[g.nbrs[k][0]]
		f.hcount[p]++
		f.hs[p] = append(f.hs[p], k)
	}
	for _, bk := range g.BondKeys() {
		i, ok1 := f.idx[bk[0]]
		j, ok2 := f.idx[bk[1]]
		if !ok1 || !ok2 {
			continue
		}
		c := g.bonds[bk].Class()
		f.adj[i] = append(f.adj[i], arc{j, c})
		f.adj[j] = append(f.adj[j], arc{i, c})
	}
	return f
}

//denseRank maps each key to the number of distinct keys smaller than it.
func denseRank(keys [][]int) []int {
	n := len(keys)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return compareInts(keys[order[i]], keys[order[j]]) < 0 })
	r := make([]int, n)
	c := 0
	for i, o := range order {
		if i > 0 && compareInts(keys[order[i-1]], keys[o]) != 0 {
			c++
		}
		r[o] = c
	}
	return r
}

func countClasses(cls []int) int {
	seen := make(map[int]bool, len(cls))
	for _, c := range cls {
		seen[c] = true
	}
	return len(seen)
}

//refine splits classes by the sorted (bond class, neighbor class) pairs of their
//members until the number of classes stops changing.
func (f *folded) refine(cls []int) []int {
	count := countClasses(cls)
	keys := make([][]int, len(cls))
	for {
		for i := range cls {
			ps := make([][2]int, len(f.adj[i]))
			for j, a := range f.adj[i] {
				ps[j] = [2]int{int(a.class), cls[a.to]}
			}
			sort.Slice(ps, func(x, y int) bool {
				if ps[x][0] != ps[y][0] {
					return ps[x][0] < ps[y][0]
				}
				return ps[x][1] < ps[y][1]
			})
			key := make([]int, 0, 1+2*len(ps))
			key = append(key, cls[i])
			for _, p := range ps {
				key = append(key, p[0], p[1])
			}
			keys[i] = key
		}
		cls = denseRank(keys)
		nc := countClasses(cls)
		if nc == count {
			return cls
		}
		count = nc
	}
}

//classes returns the equitable partition of the heavy atoms. The class numbers
//are the stereo priorities.
func (f *folded) classes() []int {
	keys := make([][]int, len(f.heavy))
	for i, k := range f.heavy {
		a := f.g.atoms[k]
		keys[i] = []int{elementOrdinal(a.Symbol), len(f.adj[i]), a.Charge, f.hcount[i]}
	}
	return f.refine(denseRank(keys))
}

//code builds the canonical code for a discrete ranking of the heavy atoms.
func (f *folded) code(rank []int, stereo bool) Code {
	n := len(f.heavy)
	inv := make([]int, n)
	for i, r := range rank {
		inv[r] = i
	}
	c := make(Code, 0, 1+4*n)
	c = append(c, n)
	for r := 0; r < n; r++ {
		i := inv[r]
		a := f.g.atoms[f.heavy[i]]
		c = append(c, elementOrdinal(a.Symbol), a.Charge, f.hcount[i])
	}
	var bl [][]int
	for i := range f.adj {
		for _, a := range f.adj[i] {
			if i < a.to {
				bl = append(bl, rankedPair(rank[i], rank[a.to], int(a.class)))
			}
		}
	}
	c = appendSorted(c, bl)
	if !stereo {
		return c
	}
	var ap [][]int
	for i, k := range f.heavy {
		if p := f.g.atoms[k].Parity; p.IsSet() {
			ap = append(ap, []int{rank[i], parityBit(p)})
		}
	}
	c = appendSorted(c, ap)
	var bp [][]int
	for bk, b := range f.g.bonds {
		if !b.Parity.IsSet() {
			continue
		}
		i, ok1 := f.idx[bk[0]]
		j, ok2 := f.idx[bk[1]]
		if !ok1 || !ok2 {
			continue
		}
		bp = append(bp, rankedPair(rank[i], rank[j], parityBit(b.Parity)))
	}
	return appendSorted(c, bp)
}

func rankedPair(a, b, v int) []int {
	if a > b {
		a, b = b, a
	}
	return []int{a, b, v}
}

func parityBit(p Parity) int {
	if p == ParityTrue {
		return 1
	}
	return 0
}

func appendSorted(c Code, items [][]int) Code {
	sort.Slice(items, func(i, j int) bool { return compareInts(items[i], items[j]) < 0 })
	c = append(c, len(items))
	for _, it := range items {
		c = append(c, it...)
	}
	return c
}

//search individualizes the members of the first non-singleton class, one at a time,
//refines, and recurses, keeping the leaf with the smallest code. Ties go to the
//smallest sequence of keys in rank order.
func (f *folded) search(stereo bool) ([]int, Code) {
	var best []int
	var bestCode Code
	var bestSeq []int
	n := len(f.heavy)
	var rec func(cls []int)
	rec = func(cls []int) {
		counts := make(map[int]int, n)
		for _, c := range cls {
			counts[c]++
		}
		cell := -1
		for c, m := range counts {
			if m > 1 && (cell < 0 || c < cell) {
				cell = c
			}
		}
		if cell < 0 {
			code := f.code(cls, stereo)
			seq := make([]int, n)
			for i, r := range cls {
				seq[r] = f.heavy[i]
			}
			cmp := 1
			if best != nil {
				cmp = code.Compare(bestCode)
				if cmp == 0 {
					cmp = compareInts(seq, bestSeq)
				}
			}
			if best == nil || cmp < 0 {
				best, bestCode, bestSeq = append([]int(nil), cls...), code, seq
			}
			return
		}
		for m, c := range cls {
			if c != cell {
				continue
			}
			c2 := make([]int, n)
			for i, v := range cls {
				c2[i] = 2 * v
				if v == cell && i != m {
					c2[i]++
				}
			}
			keys := make([][]int, n)
			for i, v := range c2 {
				keys[i] = []int{v}
			}
			rec(f.refine(denseRank(keys)))
		}
	}
	rec(f.classes())
	if best == nil { //empty graph
		return []int{}, f.code([]int{}, stereo)
	}
	return best, bestCode
}

//fullRanks extends the heavy-atom ranks to the folded hydrogens, which are
//ranked after every heavy atom by (parent rank, key).
func (f *folded) fullRanks(rank []int) map[int]int {
	n := len(f.heavy)
	r := make(map[int]int, f.g.Len())
	type hk struct{ pr, key int }
	var hl []hk
	for i, k := range f.heavy {
		r[k] = rank[i]
		for _, h := range f.hs[i] {
			hl = append(hl, hk{rank[i], h})
		}
	}
	sort.Slice(hl, func(i, j int) bool {
		if hl[i].pr != hl[j].pr {
			return hl[i].pr < hl[j].pr
		}
		return hl[i].key < hl[j].key
	})
	for i, h := range hl {
		r[h.key] = n + i
	}
	return r
}

//Canonical returns the canonical rank of every atom of g, and the canonical code.
//Ranks run from 0 to g.Len()-1. If stereo is false, parities are ignored.
func Canonical(g *Graph, stereo bool) (map[int]int, Code) {
	f := fold(g)
	rank, code := f.search(stereo)
	return f.fullRanks(rank), code
}

//CanonicalRanks returns the stereo-aware canonical rank of every atom of g.
func CanonicalRanks(g *Graph) map[int]int {
	r, _ := Canonical(g, true)
	return r
}

//CanonicalCode returns the canonical code of g.
func CanonicalCode(g *Graph, stereo bool) Code {
	_, c := Canonical(g, stereo)
	return c
}

//Canonicalize relabels g so that every key is its canonical rank.
func Canonicalize(g *Graph) *Graph {
	return g.mustRelabel(CanonicalRanks(g))
}

//Priorities returns the stereo priority of every atom that is not a removable
//hydrogen. Removable and implicit hydrogens have priority -1, below everything else.
func Priorities(g *Graph) map[int]int {
	f := fold(g)
	cls := f.classes()
	r := make(map[int]int, len(f.heavy))
	for i, k := range f.heavy {
		r[k] = cls[i]
	}
	return r
}

//SymmetryClasses returns a class for every atom such that atoms with the same class
//are equivalent under the (stereo-free) refinement. Folded hydrogens get a class
//derived from the class of their parent.
func SymmetryClasses(g *Graph) map[int]int {
	f := fold(g)
	cls := f.classes()
	n := len(f.heavy)
	r := make(map[int]int, g.Len())
	for i, k := range f.heavy {
		r[k] = cls[i]
		for _, h := range f.hs[i] {
			r[h] = n + cls[i]
		}
	}
	return r
}

//Isomorphism returns a map from the keys of a to the keys of b that preserves
//atoms and bonds (and parities, if stereo is true), or false if there is none.
func Isomorphism(a, b *Graph, stereo bool) (map[int]int, bool) {
	ra, ca := Canonical(a, stereo)
	rb, cb := Canonical(b, stereo)
	if !ca.Equal(cb) || len(ra) != len(rb) {
		return nil, false
	}
	inv := make(map[int]int, len(rb))
	for k, r := range rb {
		inv[r] = k
	}
	m := make(map[int]int, len(ra))
	for k, r := range ra {
		m[k] = inv[r]
	}
	return m, true
}

//pri is a priority lookup where anything not ranked (implicit or removable
//hydrogens, ImplicitH) is -1.
type pri map[int]int

func (p pri) of(k int) int {
	if v, ok := p[k]; ok {
		return v
	}
	return -1
}
