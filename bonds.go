/*
 * bonds.go, part of gorxn.
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
	"fmt"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

//GeometryOptions holds the tunable constants for reading graphs out of geometries.
//Distances are in Angstrom, angles in degrees.
type GeometryOptions struct {
	BondTolerance   float64 //added to the sum of covalent radii
	TooClose        float64 //shorter contacts are not bonds
	LinearTolerance float64 //deviation from 180 degrees for linear atoms
	FormingDistFrac float64 //relative distance window for forming-bond candidates
}

//DefaultGeometryOptions returns the default constants.
func DefaultGeometryOptions() GeometryOptions {
	return GeometryOptions{
		BondTolerance:   bondtol,
		TooClose:        tooclose,
		LinearTolerance: 5.0,
		FormingDistFrac: 0.2,
	}
}

//GraphFromGeometry assigns bonds based on a simple distance criterion, similar
//to that described in DOI:10.1186/1758-2946-3-33. Atoms with more neighbors than
//their valence lose their longest bonds. All bonds are single and the graph has
//no stereo. Dummy atoms ("X") are never bonded. A nil opt means the defaults.
func GraphFromGeometry(G *Geometry, opt *GeometryOptions) (*Graph, error) {
	o := DefaultGeometryOptions()
	if opt != nil {
		o = *opt
	}
	tot := G.Len()
	atoms := make(map[int]Atom, tot)
	bonds := make(map[BondKey]Bond)
	for i := 0; i < tot; i++ {
		atoms[i] = Atom{Symbol: G.Symbol(i)}
	}
	for i := 0; i < tot; i++ {
		s1 := G.Symbol(i)
		if s1 == "X" {
			continue
		}
		cov1, ok := symbolCovrad[s1]
		if !ok {
			err := new(CError)
			err.msg = fmt.Sprintf("Couldn't find the covalent radii  for %s %d", s1, i)
			err.kind = ErrStructural
			err.Decorate("GraphFromGeometry")
			return nil, err
		}
		for j := i + 1; j < tot; j++ {
			s2 := G.Symbol(j)
			if s2 == "X" {
				continue
			}
			cov2, ok := symbolCovrad[s2]
			if !ok {
				return nil, structuralError("GraphFromGeometry", "Couldn't find the covalent radii  for %s %d", s2, j)
			}
			d := G.Distance(i, j)
			if d < cov1+cov2+o.BondTolerance && d > o.TooClose {
				bonds[BondKey{i, j}] = Bond{Order: 1}
			}
		}
	}
	g := newGraph(atoms, bonds)
	return fixHypervalent(g, G), nil
}

//fixHypervalent removes, for each atom in key order, the longest bonds beyond its
//maximum number of neighbors.
func fixHypervalent(g *Graph, G *Geometry) *Graph {
	bonds := g.bondsCopy()
	nbrs := make(map[int][]int, len(g.nbrs))
	for k, n := range g.nbrs {
		nbrs[k] = append([]int(nil), n...)
	}
	changed := false
	for _, k := range g.keys {
		max := maxBonds(g.atoms[k].Symbol)
		n := nbrs[k]
		if max == 0 || len(n) <= max {
			continue
		}
		sortByDistance(G, k, n)
		for _, m := range n[max:] {
			delete(bonds, NewBondKey(k, m))
			nbrs[m] = without(nbrs[m], k)
		}
		nbrs[k] = n[:max]
		changed = true
	}
	if !changed {
		return g
	}
	return newGraph(g.atomsCopy(), bonds)
}

//StereoGraphFromGeometry perceives the connectivity of G and then reads the
//parity of every stereo site from the coordinates.
func StereoGraphFromGeometry(G *Geometry, opt *GeometryOptions) (*Graph, error) {
	g, err := GraphFromGeometry(G, opt)
	if err != nil {
		return nil, errDecorate(err, "StereoGraphFromGeometry")
	}
	g, err = StereoFromGeometry(g, G)
	return g, errDecorate(err, "StereoGraphFromGeometry")
}
