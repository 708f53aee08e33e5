/*
 * reaction.go, part of gorxn.
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
	"strings"

	chem "github.com/rmera/gorxn"
)

//Reaction is an elementary reaction: a TS graph and the atoms of the TS that
//belong to each reactant and each product. Position j of ReactantKeys[i] is the
//TS key of atom j of the i-th reactant, and likewise for products.
type Reaction struct {
	Class        Class
	Spin         Spin
	RadRad       bool //both reactants are radicals
	ISC          bool //the reaction needs an intersystem crossing
	TS           *chem.Graph
	ReactantKeys [][]int
	ProductKeys  [][]int
	Structures   *Structures
}

//New returns a reaction of class cls with the given TS graph and key groups.
//The spin and the radical-radical and intersystem-crossing flags are computed
//from the graph. The groups are copied.
func New(cls Class, ts *chem.Graph, rkeys, pkeys [][]int) (*Reaction, error) {
	r := &Reaction{Class: cls, TS: ts, ReactantKeys: copyGroups(rkeys), ProductKeys: copyGroups(pkeys)}
	if err := r.Validate(); err != nil {
		return nil, errDecorate(err, "New")
	}
	r.setFlags()
	return r, nil
}

//Validate checks that the key groups on each side are disjoint and together
//cover exactly the TS keys.
func (r *Reaction) Validate() error {
	if r.TS == nil {
		return chem.NewError(chem.ErrStructural, "Validate", "reaction without a TS graph")
	}
	if !r.Class.valid() {
		return chem.NewError(nil, "Validate", "invalid reaction class %d", int(r.Class))
	}
	for _, side := range []struct {
		name   string
		groups [][]int
	}{{"reactant", r.ReactantKeys}, {"product", r.ProductKeys}} {
		seen := make(map[int]bool, r.TS.Len())
		for _, g := range side.groups {
			for _, k := range g {
				if !r.TS.HasAtom(k) {
					return chem.NewError(chem.ErrStructural, "Validate", "%s key %d is not in the TS graph", side.name, k)
				}
				if seen[k] {
					return chem.NewError(chem.ErrStructural, "Validate", "%s key %d appears twice", side.name, k)
				}
				seen[k] = true
			}
		}
		if len(seen) != r.TS.Len() {
			return chem.NewError(chem.ErrStructural, "Validate", "%s keys cover %d of %d TS atoms", side.name, len(seen), r.TS.Len())
		}
	}
	return nil
}

//Copy returns a copy of r that shares the (immutable) graphs and structures.
func (r *Reaction) Copy() *Reaction {
	c := *r
	c.ReactantKeys = copyGroups(r.ReactantKeys)
	c.ProductKeys = copyGroups(r.ProductKeys)
	return &c
}

//withTS returns a copy of r with a different TS graph over the same keys.
//Structures are kept, since the atoms do not change.
func (r *Reaction) withTS(ts *chem.Graph) *Reaction {
	c := r.Copy()
	c.TS = ts
	return c
}

//Equal returns true if both reactions have the same class, TS graph and key groups.
func (r *Reaction) Equal(o *Reaction) bool {
	if r.Class != o.Class || !r.TS.Equal(o.TS) {
		return false
	}
	return equalGroups(r.ReactantKeys, o.ReactantKeys) && equalGroups(r.ProductKeys, o.ProductKeys)
}

//ReactantGraphs returns one graph per reactant, keyed by position in its group,
//with parities in the frame of the reactant.
func (r *Reaction) ReactantGraphs() []*chem.Graph {
	return sideGraphs(chem.ReactantGraph(r.TS), r.ReactantKeys)
}

//ProductGraphs returns one graph per product, keyed by position in its group.
func (r *Reaction) ProductGraphs() []*chem.Graph {
	return sideGraphs(chem.ProductGraph(r.TS), r.ProductKeys)
}

func sideGraphs(side *chem.Graph, groups [][]int) []*chem.Graph {
	ret := make([]*chem.Graph, 0, len(groups))
	for _, grp := range groups {
		m := make(map[int]int, len(grp))
		for i, k := range grp {
			m[k] = i
		}
		g, err := side.Subgraph(grp).Relabel(m)
		if err != nil {
			panic(err.Error()) //groups were validated
		}
		ret = append(ret, g)
	}
	return ret
}

//setFlags recomputes Spin, RadRad and ISC from the TS graph.
func (r *Reaction) setFlags() {
	ts := r.TS.WithoutStereo()
	rg := chem.ReactantGraph(ts)
	pg := chem.ProductGraph(ts)
	r.RadRad = false
	if len(r.ReactantKeys) == 2 {
		r.RadRad = true
		for _, grp := range r.ReactantKeys {
			if chem.UnpairedElectrons(rg.Subgraph(grp)) == 0 {
				r.RadRad = false
			}
		}
	}
	rlo, rhi := multiplicities(chem.UnpairedElectrons(rg))
	plo, phi := multiplicities(chem.UnpairedElectrons(pg))
	r.ISC = rhi < plo || phi < rlo
	r.Spin = UnspecifiedSpin
	if r.needsSpin() {
		r.Spin = LowSpin
	}
}

//needsSpin is true if r can follow more than one spin surface.
func (r *Reaction) needsSpin() bool {
	return r.Class.RequiresSpinDesignation() && r.RadRad && !r.ISC
}

//WithSpin returns a copy of r on the spin surface s. Only reactions that need a
//spin designation take LowSpin or HighSpin, and only those that do not take
//UnspecifiedSpin.
func (r *Reaction) WithSpin(s Spin) (*Reaction, error) {
	if (s == UnspecifiedSpin) == r.needsSpin() || s < UnspecifiedSpin || s > HighSpin {
		return nil, chem.NewError(nil, "WithSpin", "%s reaction cannot be %s", r.Description(), s)
	}
	c := r.Copy()
	c.Spin = s
	return c, nil
}

//SpinSurfaces returns r on each spin surface it can follow: the low- and
//high-spin versions if it needs a spin designation, and r alone otherwise.
func SpinSurfaces(r *Reaction) []*Reaction {
	if !r.needsSpin() {
		return []*Reaction{r}
	}
	lo := r.Copy()
	lo.Spin = LowSpin
	hi := r.Copy()
	hi.Spin = HighSpin
	return []*Reaction{lo, hi}
}

//Barrierless is true for radical-radical reactions that do not follow the
//high-spin surface.
func (r *Reaction) Barrierless() bool { return r.RadRad && r.Spin != HighSpin }

//Description returns the class of r preceded by its qualifiers, as in
//"radical-radical low-spin addition".
func (r *Reaction) Description() string {
	var parts []string
	if r.RadRad {
		parts = append(parts, "radical-radical")
	}
	if r.ISC {
		parts = append(parts, "intersystem-crossing")
	}
	if r.Spin != UnspecifiedSpin {
		parts = append(parts, r.Spin.String())
	}
	parts = append(parts, r.Class.String())
	return strings.Join(parts, " ")
}

//multiplicities returns the lowest and highest spin multiplicity for n unpaired electrons.
func multiplicities(n int) (int, int) {
	return n%2 + 1, n + 1
}

func copyGroups(g [][]int) [][]int {
	if g == nil {
		return nil
	}
	r := make([][]int, len(g))
	for i, v := range g {
		r[i] = append([]int(nil), v...)
	}
	return r
}

func equalGroups(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
