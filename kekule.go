/*
 * kekule.go, part of gorxn.
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
)

//maxResonances caps the number of dominant resonances kept per graph.
const maxResonances = 256

//unsaturations returns, for each atom, how many bonds it lacks to reach its valence.
//Every explicit neighbor counts as one bond, whatever the stored order.
func unsaturations(g *Graph) map[int]int {
	r := make(map[int]int, len(g.atoms))
	for k, a := range g.atoms {
		u := Valence(a.Symbol, a.Charge) - len(g.nbrs[k]) - a.Hydrogens
		if u < 0 {
			u = 0
		}
		r[k] = u
	}
	return r
}

//saturation holds the dominant resonances of a graph: the assignments of extra
//(pi) bond orders that pair the largest number of unsaturated valences.
type saturation struct {
	unsat map[int]int
	bonds []BondKey //bonds between unsaturated atoms, sorted
	best  int       //number of pi bonds in a dominant resonance
	asgs  [][]int   //extra order of each bond in s.bonds, one slice per resonance
}

func saturate(g *Graph) *saturation {
	s := &saturation{unsat: unsaturations(g), best: -1}
	for _, k := range g.BondKeys() {
		if s.unsat[k[0]] > 0 && s.unsat[k[1]] > 0 {
			s.bonds = append(s.bonds, k)
		}
	}
	rem := make(map[int]int, len(s.unsat))
	remtot := 0
	for k, u := range s.unsat {
		rem[k] = u
		remtot += u
	}
	cur := make([]int, len(s.bonds))
	var dfs func(i, tot int)
	dfs = func(i, tot int) {
		if tot+remtot/2 < s.best {
			return
		}
		if i == len(s.bonds) {
			if tot > s.best {
				s.best = tot
				s.asgs = [][]int{append([]int(nil), cur...)}
			} else if tot == s.best && len(s.asgs) < maxResonances {
				s.asgs = append(s.asgs, append([]int(nil), cur...))
			}
			return
		}
		a, b := s.bonds[i][0], s.bonds[i][1]
		e := 2
		if rem[a] < e {
			e = rem[a]
		}
		if rem[b] < e {
			e = rem[b]
		}
		for ; e >= 0; e-- {
			rem[a] -= e
			rem[b] -= e
			remtot -= 2 * e
			cur[i] = e
			dfs(i+1, tot+e)
			rem[a] += e
			rem[b] += e
			remtot += 2 * e
		}
		cur[i] = 0
	}
	dfs(0, 0)
	return s
}

//ResonanceBondOrders returns, for each bond, the sorted set of orders it takes over
//the dominant resonances of g.
func ResonanceBondOrders(g *Graph) map[BondKey][]int {
	s := saturate(g)
	idx := make(map[BondKey]int, len(s.bonds))
	for i, k := range s.bonds {
		idx[k] = i
	}
	r := make(map[BondKey][]int, len(g.bonds))
	for k := range g.bonds {
		i, ok := idx[k]
		if !ok {
			r[k] = []int{1}
			continue
		}
		seen := make(map[int]bool, 3)
		var ords []int
		for _, a := range s.asgs {
			o := 1 + a[i]
			if !seen[o] {
				seen[o] = true
				ords = append(ords, o)
			}
		}
		sort.Ints(ords)
		r[k] = ords
	}
	return r
}

//KekuleBondOrders returns the integer orders of one dominant resonance of g.
//The choice is deterministic.
func KekuleBondOrders(g *Graph) map[BondKey]int {
	s := saturate(g)
	r := make(map[BondKey]int, len(g.bonds))
	for k := range g.bonds {
		r[k] = 1
	}
	if len(s.asgs) > 0 {
		for i, k := range s.bonds {
			r[k] += s.asgs[0][i]
		}
	}
	return r
}

//UnpairedElectrons returns the number of valences left unpaired in a dominant resonance.
func UnpairedElectrons(g *Graph) int {
	s := saturate(g)
	tot := 0
	for _, u := range s.unsat {
		tot += u
	}
	best := s.best
	if best < 0 {
		best = 0
	}
	return tot - 2*best
}

//RadicalAtoms returns the atoms that keep an unpaired valence in at least one
//dominant resonance, sorted.
func RadicalAtoms(g *Graph) []int {
	s := saturate(g)
	rad := make(map[int]bool)
	for _, a := range s.asgs {
		left := make(map[int]int, len(s.unsat))
		for k, u := range s.unsat {
			left[k] = u
		}
		for i, k := range s.bonds {
			left[k[0]] -= a[i]
			left[k[1]] -= a[i]
		}
		for k, u := range left {
			if u > 0 {
				rad[k] = true
			}
		}
	}
	r := make([]int, 0, len(rad))
	for k := range rad {
		r = append(r, k)
	}
	sort.Ints(r)
	return r
}

//Kekulize resolves aromatic bonds (order 1.5) into alternating single and double
//bonds. A graph without aromatic bonds is returned unchanged. It returns a structural
//error if no alternation exists.
func Kekulize(g *Graph) (*Graph, error) {
	arom := make(map[BondKey]bool)
	for k, b := range g.bonds {
		if math.Abs(b.Order-AromaticOrder) < ordertol {
			arom[k] = true
		}
	}
	if len(arom) == 0 {
		return g, nil
	}
	//how many double bonds each aromatic atom still needs (0 or 1)
	need := make(map[int]int)
	for k := range arom {
		for _, a := range k {
			if _, ok := need[a]; ok {
				continue
			}
			at := g.atoms[a]
			used := at.Hydrogens
			for _, n := range g.nbrs[a] {
				bk := NewBondKey(a, n)
				if arom[bk] || g.bonds[bk].Class() != Normal {
					used++
					continue
				}
				used += int(math.Round(g.bonds[bk].Order))
			}
			n := Valence(at.Symbol, at.Charge) - used
			if n < 0 || n > 1 {
				return nil, structuralError("Kekulize", "aromatic atom %d (%s) cannot take an alternating bond", a, at.Symbol)
			}
			need[a] = n
		}
	}
	atoms := make([]int, 0, len(need))
	for a, n := range need {
		if n == 1 {
			atoms = append(atoms, a)
		}
	}
	sort.Ints(atoms)
	matched := make(map[int]int, len(atoms))
	var match func(i int) bool
	match = func(i int) bool {
		for i < len(atoms) {
			if _, ok := matched[atoms[i]]; !ok {
				break
			}
			i++
		}
		if i == len(atoms) {
			return true
		}
		a := atoms[i]
		for _, n := range g.nbrs[a] {
			if !arom[NewBondKey(a, n)] || need[n] != 1 {
				continue
			}
			if _, ok := matched[n]; ok {
				continue
			}
			matched[a], matched[n] = n, a
			if match(i + 1) {
				return true
			}
			delete(matched, a)
			delete(matched, n)
		}
		return false
	}
	if !match(0) {
		return nil, structuralError("Kekulize", "no alternating assignment for the aromatic bonds")
	}
	orders := make(map[BondKey]float64, len(arom))
	for k := range arom {
		orders[k] = 1
		if m, ok := matched[k[0]]; ok && m == k[1] {
			orders[k] = 2
		}
	}
	return g.WithBondOrders(orders), nil
}
