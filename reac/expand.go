/*
 * expand.go, part of gorxn.
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

package reac

import (
	"gonum.org/v1/gonum/stat/combin"

	chem "github.com/rmera/gorxn"
)

//ExpandStereo returns every stereo realization of r, one per distinct assignment
//of parities to the stereo sites of its TS, sorted by TS code. If enant is false,
//of each pair of mirror images only the canonical enantiomer is kept.
func ExpandStereo(r *Reaction, enant bool) []*Reaction {
	return expand(r, enant, nil, nil)
}

//ExpandStereoFor is ExpandStereo restricted to the realizations whose reactant and
//product graphs match rcts and prds, in order, including their stereo.
func ExpandStereoFor(r *Reaction, enant bool, rcts, prds []*chem.Graph) []*Reaction {
	if len(rcts) != len(r.ReactantKeys) || len(prds) != len(r.ProductKeys) {
		return nil
	}
	return expand(r, enant, rcts, prds)
}

func expand(r *Reaction, enant bool, rcts, prds []*chem.Graph) []*Reaction {
	ts := r.TS.WithoutStereo()
	ak, bk := chem.StereoSites(ts)
	n := len(ak) + len(bk)
	var rcodes, pcodes []chem.Code
	if rcts != nil {
		rcodes = stereoCodes(rcts)
		pcodes = stereoCodes(prds)
	}
	set := newTSSet(true)
	for _, bits := range parityChoices(n) {
		apar := make(map[int]chem.Parity, len(ak))
		for i, k := range ak {
			apar[k] = chem.ParityOf(bits[i] == 1)
		}
		bpar := make(map[chem.BondKey]chem.Parity, len(bk))
		for i, k := range bk {
			bpar[k] = chem.ParityOf(bits[len(ak)+i] == 1)
		}
		x := r.withTS(ts.WithAtomParities(apar).WithBondParities(bpar))
		if rcodes != nil && !(matchCodes(x.ReactantGraphs(), rcodes) && matchCodes(x.ProductGraphs(), pcodes)) {
			continue
		}
		set.add(x.TS, x)
	}
	if enant {
		return set.reactions()
	}
	var ret []*Reaction
	for _, it := range set.reactions() {
		c := chem.CanonicalCode(it.TS, true)
		mc := chem.CanonicalCode(chem.Invert(it.TS), true)
		if c.Compare(mc) <= 0 || !set.has(mc) {
			ret = append(ret, it)
		}
	}
	return ret
}

//parityChoices returns the 2^n assignments of 0 and 1 to n sites.
func parityChoices(n int) [][]int {
	if n == 0 {
		return [][]int{nil}
	}
	lens := make([]int, n)
	for i := range lens {
		lens[i] = 2
	}
	return combin.Cartesian(lens)
}

func stereoCodes(gs []*chem.Graph) []chem.Code {
	ret := make([]chem.Code, len(gs))
	for i, g := range gs {
		ret[i] = chem.CanonicalCode(neutral(chem.Explicit(g)), true)
	}
	return ret
}

func matchCodes(gs []*chem.Graph, codes []chem.Code) bool {
	if len(gs) != len(codes) {
		return false
	}
	for i, g := range gs {
		if !chem.CanonicalCode(neutral(g), true).Equal(codes[i]) {
			return false
		}
	}
	return true
}

//neutral returns g without formal charges, its parities moved to the frame of
//the uncharged graph.
func neutral(g *chem.Graph) *chem.Graph {
	for _, k := range g.Keys() {
		if a, _ := g.Atom(k); a.Charge != 0 {
			return chem.FromLocal(chem.ToLocal(g).WithoutCharges())
		}
	}
	return g
}

//Mirror returns the mirror image of r: every TS atom parity is flipped.
//Structures are dropped, since their coordinates no longer match.
func Mirror(r *Reaction) *Reaction {
	m := r.withTS(chem.Invert(r.TS))
	m.Structures = nil
	return m
}

//IsCanonicalEnantiomer is true if r sorts before its mirror image, or is its own mirror image.
func IsCanonicalEnantiomer(r *Reaction) bool {
	return chem.CanonicalCode(r.TS, true).Compare(chem.CanonicalCode(chem.Invert(r.TS), true)) <= 0
}

//CanonicalEnantiomer returns r if it is the canonical enantiomer, and its mirror image otherwise.
func CanonicalEnantiomer(r *Reaction) *Reaction {
	if IsCanonicalEnantiomer(r) {
		return r
	}
	return Mirror(r)
}
