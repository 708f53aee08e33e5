/*
 * find.go, part of gorxn.
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
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/combin"

	chem "github.com/rmera/gorxn"
)

//Options controls the search performed by Find.
type Options struct {
	//MaxBondChanges is the largest number of forming plus breaking bonds tried.
	MaxBondChanges int
}

//DefaultOptions returns the options used when Find gets nil.
func DefaultOptions() *Options {
	return &Options{MaxBondChanges: 3}
}

//Find returns the elementary reactions that turn the reactants into the products
//with the fewest bond changes, up to opts.MaxBondChanges. The result is sorted by
//TS code. No mapping is not an error: Find then returns an empty slice.
//If any input graph carries stereo, only the realizations compatible with it are
//returned.
func Find(rcts, prds []*chem.Graph, opts *Options) ([]*Reaction, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	stereo := false
	for _, g := range append(append([]*chem.Graph(nil), rcts...), prds...) {
		if g == nil {
			return nil, chem.NewError(chem.ErrStructural, "Find", "nil graph")
		}
		if err := chem.CheckStereo(g); err != nil {
			return nil, errDecorate(err, "Find")
		}
		stereo = stereo || g.HasStereo()
	}
	rxns, err := find(rcts, prds, opts.MaxBondChanges)
	if err != nil {
		return nil, errDecorate(err, "Find")
	}
	if len(rxns) == 0 {
		logger.Debug("no reaction found", zap.Int("reactants", len(rcts)), zap.Int("products", len(prds)))
	}
	if !stereo {
		return rxns, nil
	}
	set := newTSSet(true)
	for _, r := range rxns {
		for _, x := range ExpandStereoFor(r, true, rcts, prds) {
			set.add(x.TS, x)
		}
	}
	return set.reactions(), nil
}

//combine makes each graph explicit and stereo-free, and joins them with
//contiguous keys in input order. It returns the keys of each input.
func combine(gs []*chem.Graph) (*chem.Graph, [][]int, error) {
	parts := make([]*chem.Graph, 0, len(gs))
	groups := make([][]int, 0, len(gs))
	off := 0
	for _, g := range gs {
		e, _ := chem.Explicit(g.WithoutStereo()).Contiguous()
		e = e.Shift(off)
		parts = append(parts, e)
		groups = append(groups, e.Keys())
		off += e.Len()
	}
	u, err := chem.UnionAll(parts...)
	if err != nil {
		return nil, nil, errDecorate(err, "combine")
	}
	return u, groups, nil
}

func sameFormula(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for s, n := range a {
		if b[s] != n {
			return false
		}
	}
	return true
}

//tsSet collects TS graphs, without repetitions, by canonical code.
type tsSet struct {
	stereo bool
	hash   map[uint64][]int
	items  []tsItem
}

type tsItem struct {
	code chem.Code
	ts   *chem.Graph
	r    *Reaction
}

func newTSSet(stereo bool) *tsSet {
	return &tsSet{stereo: stereo, hash: make(map[uint64][]int)}
}

//add inserts ts unless an equivalent graph is already there, and returns true if it did.
func (s *tsSet) add(ts *chem.Graph, r *Reaction) bool {
	c := chem.CanonicalCode(ts, s.stereo)
	if s.has(c) {
		return false
	}
	h := c.Hash()
	s.hash[h] = append(s.hash[h], len(s.items))
	s.items = append(s.items, tsItem{code: c, ts: ts, r: r})
	return true
}

func (s *tsSet) has(c chem.Code) bool {
	for _, i := range s.hash[c.Hash()] {
		if s.items[i].code.Equal(c) {
			return true
		}
	}
	return false
}

func (s *tsSet) sort() {
	sort.SliceStable(s.items, func(i, j int) bool { return s.items[i].code.Compare(s.items[j].code) < 0 })
	s.hash = make(map[uint64][]int, len(s.items))
	for i, it := range s.items {
		h := it.code.Hash()
		s.hash[h] = append(s.hash[h], i)
	}
}

func (s *tsSet) reactions() []*Reaction {
	s.sort()
	ret := make([]*Reaction, 0, len(s.items))
	for _, it := range s.items {
		ret = append(ret, it.r)
	}
	return ret
}

//prodHit is a set of product bonds whose removal gives a graph with a given code.
type prodHit struct {
	bonds []chem.BondKey
	ranks map[int]int
	code  chem.Code
}

//find is the stereo-free search.
func find(rcts, prds []*chem.Graph, maxChanges int) ([]*Reaction, error) {
	R, rgroups, err := combine(rcts)
	if err != nil {
		return nil, err
	}
	P, _, err := combine(prds)
	if err != nil {
		return nil, err
	}
	if !sameFormula(R.Formula(), P.Formula()) || R.Charge() != P.Charge() {
		return nil, nil
	}
	//codes are compared without charges, so that charge-separated structures
	//match their neutral forms
	Rn, Pn := R.WithoutCharges(), P.WithoutCharges()
	rb := Rn.BondKeys()
	pb := Pn.BondKeys()
	pcode := chem.CanonicalCode(Pn, false)
	for level := 0; level <= maxChanges; level++ {
		set := newTSSet(false)
		for nb := 0; nb <= level; nb++ {
			nf := level - nb
			if nb > len(rb) || nf > len(pb) {
				continue
			}
			index := make(map[uint64][]prodHit)
			for _, F := range combin.Combinations(len(pb), nf) {
				fb := pick(pb, F)
				rk, c := chem.Canonical(Pn.RemoveBonds(fb...), false)
				index[c.Hash()] = append(index[c.Hash()], prodHit{bonds: fb, ranks: rk, code: c})
			}
			for _, B := range combin.Combinations(len(rb), nb) {
				bb := pick(rb, B)
				for _, ts := range matchBreaking(R, Rn, bb, index, pcode) {
					set.add(ts, nil)
				}
			}
		}
		if len(set.items) == 0 {
			continue
		}
		set.sort()
		ret := make([]*Reaction, 0, len(set.items))
		for _, it := range set.items {
			pgroups, err := productGroups(it.ts, prds)
			if err != nil {
				return nil, err
			}
			r := &Reaction{
				Class:        classify(it.ts, rgroups, pgroups),
				TS:           it.ts,
				ReactantKeys: copyGroups(rgroups),
				ProductKeys:  pgroups,
			}
			r.setFlags()
			ret = append(ret, r)
		}
		return ret, nil
	}
	return nil, nil
}

func pick(keys []chem.BondKey, idx []int) []chem.BondKey {
	r := make([]chem.BondKey, len(idx))
	for i, j := range idx {
		r[i] = keys[j]
	}
	return r
}

//matchBreaking returns the TS graphs in which the bonds bb of R break and some
//set of new bonds forms, giving a graph with code pcode. Rn is R without charges.
func matchBreaking(R, Rn *chem.Graph, bb []chem.BondKey, index map[uint64][]prodHit, pcode chem.Code) []*chem.Graph {
	Gr := Rn.RemoveBonds(bb...)
	rk, c := chem.Canonical(Gr, false)
	var hits []prodHit
	for _, h := range index[c.Hash()] {
		if h.code.Equal(c) {
			hits = append(hits, h)
		}
	}
	if len(hits) == 0 {
		return nil
	}
	inv := make(map[int]int, len(rk))
	for k, r := range rk {
		inv[r] = k
	}
	sym := chem.SymmetryClasses(Gr)
	members := make(map[int][]int)
	for k, s := range sym {
		members[s] = append(members[s], k)
	}
	for _, m := range members {
		sort.Ints(m)
	}
	breaking := make(map[chem.BondKey]bool, len(bb))
	for _, k := range bb {
		breaking[k] = true
	}
	var ret []*chem.Graph
	for _, h := range hits {
		opts := make([][]chem.BondKey, 0, len(h.bonds))
		for _, f := range h.bonds {
			u, v := inv[h.ranks[f[0]]], inv[h.ranks[f[1]]]
			cand := formingCandidates(Gr, breaking, members[sym[u]], members[sym[v]])
			if len(cand) == 0 {
				opts = nil
				break
			}
			opts = append(opts, cand)
		}
		if opts == nil && len(h.bonds) > 0 {
			continue
		}
		for _, combo := range choices(opts) {
			if ts := tryForming(R, Gr, bb, combo, pcode); ts != nil {
				ret = append(ret, ts)
			}
		}
	}
	return ret
}

//formingCandidates returns the unbonded pairs between the atoms in us and vs,
//leaving out the bonds that break.
func formingCandidates(g *chem.Graph, breaking map[chem.BondKey]bool, us, vs []int) []chem.BondKey {
	seen := make(map[chem.BondKey]bool)
	var ret []chem.BondKey
	for _, u := range us {
		for _, v := range vs {
			if u == v {
				continue
			}
			k := chem.NewBondKey(u, v)
			if _, ok := g.Bond(u, v); ok || breaking[k] || seen[k] {
				continue
			}
			seen[k] = true
			ret = append(ret, k)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Less(ret[j]) })
	return ret
}

//choices returns every way of picking one bond from each option list.
func choices(opts [][]chem.BondKey) [][]chem.BondKey {
	if len(opts) == 0 {
		return [][]chem.BondKey{nil}
	}
	lens := make([]int, len(opts))
	for i, o := range opts {
		lens[i] = len(o)
	}
	idx := combin.Cartesian(lens)
	ret := make([][]chem.BondKey, 0, len(idx))
	for _, c := range idx {
		combo := make([]chem.BondKey, len(c))
		for i, j := range c {
			combo[i] = opts[i][j]
		}
		ret = append(ret, combo)
	}
	return ret
}

//tryForming adds the bonds in combo to Gr and, if the result has code pcode,
//returns the TS graph over R, which keeps the reactant charges.
func tryForming(R, Gr *chem.Graph, bb, combo []chem.BondKey, pcode chem.Code) *chem.Graph {
	add := make(map[chem.BondKey]chem.Bond, len(combo))
	for _, k := range combo {
		if _, ok := add[k]; ok {
			return nil
		}
		add[k] = chem.Bond{Order: 1}
	}
	Gp, err := Gr.AddBonds(add)
	if err != nil || !chem.CanonicalCode(Gp, false).Equal(pcode) {
		return nil
	}
	orders := make(map[chem.BondKey]float64, len(bb))
	for _, k := range bb {
		orders[k] = chem.BreakingOrder
	}
	for k := range add {
		add[k] = chem.Bond{Order: chem.FormingOrder}
	}
	ts, err := R.WithBondOrders(orders).AddBonds(add)
	if err != nil {
		return nil
	}
	return ts
}

//productGroups matches each input product, in order, to a component of the
//product side of ts, and returns the TS keys of its atoms.
func productGroups(ts *chem.Graph, prds []*chem.Graph) ([][]int, error) {
	side := chem.ProductGraph(ts.WithoutStereo()).WithoutCharges()
	comps := side.Components()
	used := make([]bool, len(comps))
	codes := make([]chem.Code, len(comps))
	ranks := make([]map[int]int, len(comps))
	for i, c := range comps {
		ranks[i], codes[i] = chem.Canonical(side.Subgraph(c), false)
	}
	groups := make([][]int, 0, len(prds))
	for n, p := range prds {
		pe, _ := chem.Explicit(p.WithoutStereo().WithoutCharges()).Contiguous()
		rp, cp := chem.Canonical(pe, false)
		found := false
		for i := range comps {
			if used[i] || !codes[i].Equal(cp) {
				continue
			}
			inv := make(map[int]int, len(ranks[i]))
			for k, r := range ranks[i] {
				inv[r] = k
			}
			grp := make([]int, 0, pe.Len())
			for _, k := range pe.Keys() {
				grp = append(grp, inv[rp[k]])
			}
			groups = append(groups, grp)
			used[i] = true
			found = true
			break
		}
		if !found {
			return nil, chem.NewError(chem.ErrStructural, "productGroups", "product %d matches no component of the TS product side", n)
		}
	}
	return groups, nil
}
