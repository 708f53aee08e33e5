/*
 * stereo.go, part of gorxn.
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
	"math"
	"sort"

	"go.uber.org/zap"
)

//substituents returns the neighbors of k followed by one ImplicitH per implicit hydrogen.
func (g *Graph) substituents(k int) []int {
	n := g.nbrs[k]
	s := make([]int, 0, len(n)+g.atoms[k].Hydrogens)
	s = append(s, n...)
	for i := 0; i < g.atoms[k].Hydrogens; i++ {
		s = append(s, ImplicitH)
	}
	return s
}

func without(s []int, x int) []int {
	r := make([]int, 0, len(s))
	for _, v := range s {
		if v != x {
			r = append(r, v)
		}
	}
	return r
}

func distinctPriorities(p func(int) int, s []int) bool {
	seen := make(map[int]bool, len(s))
	for _, v := range s {
		pv := p(v)
		if seen[pv] {
			return false
		}
		seen[pv] = true
	}
	return true
}

//sortByPriority returns a copy of s sorted by ascending priority.
func sortByPriority(s []int, p func(int) int) []int {
	r := append([]int(nil), s...)
	sort.SliceStable(r, func(i, j int) bool { return p(r[i]) < p(r[j]) })
	return r
}

//maxPriority returns the first member of s with the highest priority.
func maxPriority(s []int, p func(int) int) int {
	m := s[0]
	for _, v := range s[1:] {
		if p(v) > p(m) {
			m = v
		}
	}
	return m
}

//permOdd returns true if b is an odd permutation of a.
func permOdd(a, b []int) bool {
	pos := make(map[int]int, len(a))
	for i, v := range a {
		pos[v] = i
	}
	idx := make([]int, len(b))
	for i, v := range b {
		idx[i] = pos[v]
	}
	inv := 0
	for i := range idx {
		for j := i + 1; j < len(idx); j++ {
			if idx[i] > idx[j] {
				inv++
			}
		}
	}
	return inv%2 == 1
}

//sites holds the stereo sites of a graph with their frames: the substituents
//that define the parity of each atom, and the outer substituents at each end
//of each bond.
type sites struct {
	atoms map[int][]int
	bonds map[BondKey][2][]int
	pri   pri
}

//bondSitesOf returns the bond sites of a graph without forming or breaking bonds.
func bondSitesOf(g *Graph, p pri) map[BondKey][2][]int {
	out := make(map[BondKey][2][]int)
	orders := ResonanceBondOrders(g)
	for _, bk := range g.BondKeys() {
		u, v := bk[0], bk[1]
		if g.removableH(u) || g.removableH(v) || g.bonds[bk].Class() != Normal {
			continue
		}
		if o := orders[bk]; o[len(o)-1] != 2 {
			continue
		}
		su := without(g.substituents(u), v)
		sv := without(g.substituents(v), u)
		if len(su) != 2 || len(sv) != 2 {
			continue
		}
		if !distinctPriorities(p.of, su) || !distinctPriorities(p.of, sv) {
			continue
		}
		if r := g.RingSize(bk); r > 0 && r < 8 {
			continue
		}
		out[bk] = [2][]int{su, sv}
	}
	return out
}

//stereoSites finds the atom and bond stereo sites of g, which may be a TS graph.
//Besides four-substituent atoms, a TS atom with five substituents, one forming
//and one breaking bond, is a site whose frame excludes the forming partner.
//Bond sites are taken from the reactant side and, if absent there, from the
//product side.
func stereoSites(g *Graph) *sites {
	s := &sites{atoms: make(map[int][]int), bonds: make(map[BondKey][2][]int), pri: pri(Priorities(g))}
	for _, k := range g.keys {
		if g.removableH(k) {
			continue
		}
		subs := g.substituents(k)
		var frm, brk []int
		for _, n := range g.nbrs[k] {
			switch g.bonds[NewBondKey(k, n)].Class() {
			case Forming:
				frm = append(frm, n)
			case Breaking:
				brk = append(brk, n)
			}
		}
		var fr []int
		switch {
		case len(subs) == 4:
			fr = subs
		case len(subs) == 5 && len(frm) == 1 && len(brk) == 1:
			fr = without(subs, frm[0])
		default:
			continue
		}
		if distinctPriorities(s.pri.of, fr) {
			s.atoms[k] = fr
		}
	}
	drops := []BondClass{Forming}
	if IsTS(g) {
		drops = append(drops, Breaking)
	}
	for _, drop := range drops {
		sg := sideGraph(g, drop)
		for bk, ends := range bondSitesOf(sg, pri(Priorities(sg))) {
			if _, ok := s.bonds[bk]; ok {
				continue
			}
			if !distinctPriorities(s.pri.of, ends[0]) || !distinctPriorities(s.pri.of, ends[1]) {
				continue
			}
			s.bonds[bk] = ends
		}
	}
	return s
}

//StereoSites returns the keys of the atoms and bonds of g that can carry a parity, sorted.
func StereoSites(g *Graph) ([]int, []BondKey) {
	s := stereoSites(g)
	ak := make([]int, 0, len(s.atoms))
	for k := range s.atoms {
		ak = append(ak, k)
	}
	sort.Ints(ak)
	bk := make([]BondKey, 0, len(s.bonds))
	for k := range s.bonds {
		bk = append(bk, k)
	}
	sort.Slice(bk, func(i, j int) bool { return bk[i].Less(bk[j]) })
	return ak, bk
}

//SubstituentOrder returns the substituents of atom k sorted by ascending priority,
//which is the order in which a geometry has to realize its parity. It returns
//ErrStereoInconsistency if k is not a stereo site.
func SubstituentOrder(g *Graph, k int) ([]int, error) {
	s := stereoSites(g)
	fr, ok := s.atoms[k]
	if !ok {
		return nil, stereoError("SubstituentOrder", "atom %d has no distinguishable substituents", k)
	}
	return sortByPriority(fr, s.pri.of), nil
}

//Frame conversions

//replaceSeq maps seq onto the set target. Equal sets leave seq unchanged. Sets that
//differ by exactly one member give seq with that member replaced, and replaced=true.
func replaceSeq(seq, target []int) (out []int, replaced, ok bool) {
	inS := make(map[int]bool, len(seq))
	inT := make(map[int]bool, len(target))
	for _, v := range seq {
		inS[v] = true
	}
	for _, v := range target {
		inT[v] = true
	}
	var a, b []int
	for v := range inS {
		if !inT[v] {
			a = append(a, v)
		}
	}
	for v := range inT {
		if !inS[v] {
			b = append(b, v)
		}
	}
	switch {
	case len(a) == 0 && len(b) == 0:
		return append([]int(nil), seq...), false, true
	case len(a) == 1 && len(b) == 1 && len(seq) == len(target):
		out = make([]int, len(seq))
		for i, v := range seq {
			out[i] = v
			if v == a[0] {
				out[i] = b[0]
			}
		}
		return out, true, true
	}
	return nil, false, false
}

//convertAtomParity converts an atom parity given for the substituents seq, in ascending
//priority, to the frame of target ordered by p. An exchanged substituent takes the
//place of the leaving one and inverts the parity.
func convertAtomParity(par Parity, seq, target []int, p func(int) int) (Parity, bool) {
	nw, rep, ok := replaceSeq(seq, target)
	if !ok || !distinctPriorities(p, target) {
		return NoParity, false
	}
	order := sortByPriority(target, p)
	return par.Xor(rep != permOdd(nw, order)), true
}

//convertBondEnd tells whether the parity of a bond flips at one end when its reference
//substituent changes from fromMax (a member of from) to the highest priority member
//of target. An exchanged substituent keeps the slot of the leaving one.
func convertBondEnd(fromMax int, from, target []int, p func(int) int) (flip, ok bool) {
	nw, _, ok := replaceSeq(from, target)
	if !ok {
		return false, false
	}
	for i, v := range from {
		if v == fromMax {
			return nw[i] != maxPriority(target, p), true
		}
	}
	return false, false
}

func convertBondParity(par Parity, from [2][]int, fp func(int) int, to [2][]int, tp func(int) int) (Parity, bool) {
	fu, ok1 := convertBondEnd(maxPriority(from[0], fp), from[0], to[0], tp)
	fv, ok2 := convertBondEnd(maxPriority(from[1], fp), from[1], to[1], tp)
	if !ok1 || !ok2 {
		return NoParity, false
	}
	return par.Xor(fu != fv), true
}

//transferStereo sets on dst the parities of src, converted from the frames of src
//to the frames of dst. Sites missing in dst, or whose frames cannot be matched, are
//left without parity.
func transferStereo(src *Graph, ss *sites, dst *Graph, ds *sites) *Graph {
	apar := make(map[int]Parity)
	for k, fr := range ss.atoms {
		p := src.atoms[k].Parity
		target, ok := ds.atoms[k]
		if !p.IsSet() || !ok {
			continue
		}
		if np, ok := convertAtomParity(p, sortByPriority(fr, ss.pri.of), target, ds.pri.of); ok {
			apar[k] = np
		}
	}
	bpar := make(map[BondKey]Parity)
	for bk, ends := range ss.bonds {
		p := src.bonds[bk].Parity
		target, ok := ds.bonds[bk]
		if !p.IsSet() || !ok {
			continue
		}
		if np, ok := convertBondParity(p, ends, ss.pri.of, target, ds.pri.of); ok {
			bpar[bk] = np
		}
	}
	if len(apar) == 0 && len(bpar) == 0 {
		return dst
	}
	return dst.WithAtomParities(apar).WithBondParities(bpar)
}

//Geometry

//StereoFromGeometry returns g with the parity of every stereo site read from the
//coordinates. Atom i of the geometry is atom key i of g. The sites must be explicit:
//a site with an implicit hydrogen in its frame gives ErrStereoInconsistency.
func StereoFromGeometry(g *Graph, G *Geometry) (*Graph, error) {
	g0 := g.WithoutStereo()
	s := stereoSites(g0)
	inGeo := func(k int) bool { return k >= 0 && k < G.Len() }
	apar := make(map[int]Parity, len(s.atoms))
	for k, fr := range s.atoms {
		o := sortByPriority(fr, s.pri.of)
		for _, v := range o {
			if !inGeo(v) {
				return nil, stereoError("StereoFromGeometry", "atom %d: substituent %d has no coordinates", k, v)
			}
		}
		apar[k] = ParityOf(G.signedVolume([4]int{o[0], o[1], o[2], o[3]}) > 0)
	}
	bpar := make(map[BondKey]Parity, len(s.bonds))
	for bk, ends := range s.bonds {
		a := maxPriority(ends[0], s.pri.of)
		b := maxPriority(ends[1], s.pri.of)
		if !inGeo(a) || !inGeo(b) || !inGeo(bk[0]) || !inGeo(bk[1]) {
			return nil, stereoError("StereoFromGeometry", "bond %v: missing coordinates", bk)
		}
		bpar[bk] = ParityOf(math.Cos(G.DihedralAngle(a, bk[0], bk[1], b)) < 0)
	}
	return g0.WithAtomParities(apar).WithBondParities(bpar), nil
}

//Frames

func keyPriority(k int) int { return k }

//toggleLocal converts parities between the canonical frame (substituents ordered by
//priority) and the local frame (substituents ordered by key, implicit hydrogens first).
//The conversion is its own inverse.
func toggleLocal(g *Graph) *Graph {
	if !g.HasStereo() {
		return g
	}
	s := stereoSites(g)
	apar := make(map[int]Parity)
	for k, fr := range s.atoms {
		p := g.atoms[k].Parity
		if !p.IsSet() {
			continue
		}
		apar[k] = p.Xor(permOdd(sortByPriority(fr, s.pri.of), sortByPriority(fr, keyPriority)))
	}
	bpar := make(map[BondKey]Parity)
	for bk, ends := range s.bonds {
		p := g.bonds[bk].Parity
		if !p.IsSet() {
			continue
		}
		fu := maxPriority(ends[0], s.pri.of) != maxPriority(ends[0], keyPriority)
		fv := maxPriority(ends[1], s.pri.of) != maxPriority(ends[1], keyPriority)
		bpar[bk] = p.Xor(fu != fv)
	}
	return g.WithAtomParities(apar).WithBondParities(bpar)
}

//ToLocal converts the parities of g from the canonical frame to the local frame,
//where substituents are ordered by key with implicit hydrogens first.
func ToLocal(g *Graph) *Graph { return toggleLocal(g) }

//FromLocal converts the parities of g from the local frame back to the canonical frame.
func FromLocal(g *Graph) *Graph { return toggleLocal(g) }

//Invert returns the mirror image of g: every atom parity is flipped.
//Bond parities do not change under reflection.
func Invert(g *Graph) *Graph {
	apar := make(map[int]Parity)
	for k, a := range g.atoms {
		if a.Parity.IsSet() {
			apar[k] = a.Parity.Flip()
		}
	}
	return g.WithAtomParities(apar)
}

//invalidStereo returns the atoms and bonds of g that carry a parity but are not sites.
func invalidStereo(g *Graph) ([]int, []BondKey) {
	if !g.HasStereo() {
		return nil, nil
	}
	s := stereoSites(g)
	var ak []int
	for _, k := range g.keys {
		if _, ok := s.atoms[k]; g.atoms[k].Parity.IsSet() && !ok {
			ak = append(ak, k)
		}
	}
	var bk []BondKey
	for _, k := range g.BondKeys() {
		if _, ok := s.bonds[k]; g.bonds[k].Parity.IsSet() && !ok {
			bk = append(bk, k)
		}
	}
	return ak, bk
}

//DropInvalidStereo removes the parities stored on atoms and bonds that are not stereo
//sites, logging a warning for each. It returns the repaired graph and the number of
//parities dropped.
func DropInvalidStereo(g *Graph) (*Graph, int) {
	ak, bk := invalidStereo(g)
	if len(ak) == 0 && len(bk) == 0 {
		return g, 0
	}
	apar := make(map[int]Parity, len(ak))
	for _, k := range ak {
		logger.Warn("dropping parity on an atom that is not a stereo site", zap.Int("atom", k))
		apar[k] = NoParity
	}
	bpar := make(map[BondKey]Parity, len(bk))
	for _, k := range bk {
		logger.Warn("dropping parity on a bond that is not a stereo site", zap.Stringer("bond", k))
		bpar[k] = NoParity
	}
	return g.WithAtomParities(apar).WithBondParities(bpar), len(ak) + len(bk)
}

//CheckStereo returns ErrStereoInconsistency if g has a parity on something that
//is not a stereo site.
func CheckStereo(g *Graph) error {
	ak, bk := invalidStereo(g)
	if len(ak) > 0 {
		return stereoError("CheckStereo", "atom %d has a parity but is not a stereo site", ak[0])
	}
	if len(bk) > 0 {
		return stereoError("CheckStereo", "bond %v has a parity but is not a stereo site", bk[0])
	}
	return nil
}
