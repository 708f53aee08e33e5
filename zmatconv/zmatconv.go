/*
 * zmatconv.go, part of gorxn.
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

//Package zmatconv relates the atoms of a cartesian geometry to those of a
//z-matrix built from it. A z-matrix needs a dummy atom next to each linear
//atom, since angles of 180 degrees leave dihedrals undefined, and it may list
//the atoms in a different order than the geometry.
package zmatconv

import (
	"fmt"
	"sort"

	chem "github.com/rmera/gorxn"
	v3 "github.com/rmera/gorxn/v3"
)

//DummyDist is the distance, in Angstrom, between a dummy atom and its parent.
const DummyDist = chem.DummyDist

//DummySymbol is the symbol of dummy atoms in geometries.
const DummySymbol = "X"

//Dummy describes a dummy atom by geometry keys: the linear atom it is placed next
//to, and the atom that, with the parent, defines the line. Direction is -1 if
//the parent has no such neighbor.
type Dummy struct {
	Parent    int
	Direction int
}

//ZmatConv is a bijection between the real atoms of a geometry, keyed 0..n-1 like
//the atoms of its graph, and the real atoms of a z-matrix. The z-matrix frame is
//the one with dummy atoms and reordering: Apply gives a geometry in that frame,
//dummies included. A ZmatConv is not modified after it is built.
type ZmatConv struct {
	geo     []int         //z-matrix key -> geometry key, -1 for dummies
	zmat    []int         //geometry key -> z-matrix key
	dummies map[int]Dummy //z-matrix key of each dummy
}

//New returns the conversion for a geometry with count atoms where each dummy
//follows its parent in the z-matrix order, and the real atoms keep their order.
func New(count int, dummies []Dummy) (*ZmatConv, error) {
	after := make(map[int]Dummy, len(dummies))
	for _, d := range dummies {
		if d.Parent < 0 || d.Parent >= count {
			return nil, chem.NewError(chem.ErrStructural, "New", "dummy parent %d out of range", d.Parent)
		}
		if d.Direction >= count || d.Direction == d.Parent {
			return nil, chem.NewError(chem.ErrStructural, "New", "invalid direction atom %d for parent %d", d.Direction, d.Parent)
		}
		if _, ok := after[d.Parent]; ok {
			return nil, chem.NewError(chem.ErrStructural, "New", "atom %d has two dummies", d.Parent)
		}
		after[d.Parent] = d
	}
	z := &ZmatConv{
		geo:     make([]int, 0, count+len(dummies)),
		zmat:    make([]int, count),
		dummies: make(map[int]Dummy, len(dummies)),
	}
	for i := 0; i < count; i++ {
		z.zmat[i] = len(z.geo)
		z.geo = append(z.geo, i)
		if d, ok := after[i]; ok {
			z.dummies[len(z.geo)] = d
			z.geo = append(z.geo, -1)
		}
	}
	return z, nil
}

//Reorder returns the conversion where the z-matrix keys of z are rearranged so
//that order[i] is the old key of the atom now at key i.
func (z *ZmatConv) Reorder(order []int) (*ZmatConv, error) {
	if len(order) != len(z.geo) {
		return nil, chem.NewError(chem.ErrStructural, "Reorder", "order has %d keys, want %d", len(order), len(z.geo))
	}
	seen := make([]bool, len(order))
	r := &ZmatConv{
		geo:     make([]int, len(order)),
		zmat:    make([]int, len(z.zmat)),
		dummies: make(map[int]Dummy, len(z.dummies)),
	}
	for i, old := range order {
		if old < 0 || old >= len(order) || seen[old] {
			return nil, chem.NewError(chem.ErrStructural, "Reorder", "order is not a permutation")
		}
		seen[old] = true
		r.geo[i] = z.geo[old]
		if g := z.geo[old]; g >= 0 {
			r.zmat[g] = i
		} else {
			r.dummies[i] = z.dummies[old]
		}
	}
	return r, nil
}

//Count returns the number of z-matrix atoms, dummies included.
func (z *ZmatConv) Count() int { return len(z.geo) }

//Real returns the number of real atoms.
func (z *ZmatConv) Real() int { return len(z.zmat) }

//IsDummy is true if the z-matrix key k is a dummy atom.
func (z *ZmatConv) IsDummy(k int) bool {
	_, ok := z.dummies[k]
	return ok
}

//GeoKey returns the geometry key of the z-matrix key k, or false for dummies
//and keys out of range.
func (z *ZmatConv) GeoKey(k int) (int, bool) {
	if k < 0 || k >= len(z.geo) || z.geo[k] < 0 {
		return -1, false
	}
	return z.geo[k], true
}

//ZmatKey returns the z-matrix key of the geometry key k, or false if out of range.
func (z *ZmatConv) ZmatKey(k int) (int, bool) {
	if k < 0 || k >= len(z.zmat) {
		return -1, false
	}
	return z.zmat[k], true
}

//DummyKeys returns the z-matrix keys of the dummies, in ascending order.
func (z *ZmatConv) DummyKeys() []int {
	r := make([]int, 0, len(z.dummies))
	for k := range z.dummies {
		r = append(r, k)
	}
	sort.Ints(r)
	return r
}

//Dummies returns the dummy atoms, keyed by their z-matrix keys.
func (z *ZmatConv) Dummies() map[int]Dummy {
	r := make(map[int]Dummy, len(z.dummies))
	for k, d := range z.dummies {
		r[k] = d
	}
	return r
}

//ApplyKeys maps geometry keys to z-matrix keys.
func (z *ZmatConv) ApplyKeys(keys []int) ([]int, error) {
	r := make([]int, len(keys))
	for i, k := range keys {
		zk, ok := z.ZmatKey(k)
		if !ok {
			return nil, chem.NewError(chem.ErrStructural, "ApplyKeys", "geometry key %d out of range", k)
		}
		r[i] = zk
	}
	return r, nil
}

//UndoKeys maps z-matrix keys back to geometry keys, leaving dummies out.
func (z *ZmatConv) UndoKeys(keys []int) []int {
	r := make([]int, 0, len(keys))
	for _, k := range keys {
		if g, ok := z.GeoKey(k); ok {
			r = append(r, g)
		}
	}
	return r
}

//Apply inserts the dummy atoms into G, DummyDist away from their parents along a
//direction perpendicular to the parent-direction line, and puts the atoms in
//z-matrix order.
func (z *ZmatConv) Apply(G *chem.Geometry) (*chem.Geometry, error) {
	if G.Len() != z.Real() {
		return nil, chem.NewError(chem.ErrStructural, "Apply", "geometry has %d atoms, want %d", G.Len(), z.Real())
	}
	ext := G
	pos := make(map[int]int, len(z.dummies)) //z-matrix key -> index in ext
	for _, k := range z.DummyKeys() {
		pos[k] = ext.Len()
		ext = ext.Insert(DummySymbol, dummyPosition(G, z.dummies[k]))
	}
	order := make([]int, len(z.geo))
	for k, g := range z.geo {
		if g < 0 {
			order[k] = pos[k]
			continue
		}
		order[k] = g
	}
	return ext.Subset(order)
}

//Undo removes the dummy atoms of G, which must be in z-matrix order, and puts the
//real atoms back in geometry order.
func (z *ZmatConv) Undo(G *chem.Geometry) (*chem.Geometry, error) {
	if G.Len() != z.Count() {
		return nil, chem.NewError(chem.ErrStructural, "Undo", "geometry has %d atoms, want %d", G.Len(), z.Count())
	}
	return G.Subset(z.zmat)
}

func dummyPosition(G *chem.Geometry, d Dummy) []float64 {
	p := v3.Zeros(1)
	p.SetRow(0, G.Position(d.Parent))
	line := v3.Zeros(1)
	if d.Direction >= 0 {
		q := v3.Zeros(1)
		q.SetRow(0, G.Position(d.Direction))
		line.SubVec(q, p)
	} else {
		line.Set(0, 2, 1)
	}
	perp := v3.Zeros(1)
	perp.Perpendicular(line)
	perp.Dense.Scale(DummyDist, perp.Dense)
	pos := v3.Zeros(1)
	pos.AddVec(p, perp)
	return pos.RawRowView(0)
}

//Insert builds the conversion that puts a dummy next to each linear atom and
//applies it to G. directions gives, for each linear atom, the atom that defines
//its line. Linear atoms missing from it get a fixed direction.
func Insert(G *chem.Geometry, linear []int, directions map[int]int) (*chem.Geometry, *ZmatConv, error) {
	ds := make([]Dummy, 0, len(linear))
	for _, k := range linear {
		dir, ok := directions[k]
		if !ok {
			dir = -1
		}
		ds = append(ds, Dummy{Parent: k, Direction: dir})
	}
	z, err := New(G.Len(), ds)
	if err != nil {
		return nil, nil, chem.ErrDecorate(err, "Insert")
	}
	ZG, err := z.Apply(G)
	if err != nil {
		return nil, nil, chem.ErrDecorate(err, "Insert")
	}
	return ZG, z, nil
}

//LinearDummies returns the dummies needed by the linear atoms of the graph g with
//geometry G, each one oriented along the bond to its lowest-keyed neighbor.
//tol is the linearity tolerance, in degrees.
func LinearDummies(g *chem.Graph, G *chem.Geometry, tol float64) []Dummy {
	lin := chem.LinearAtoms(g, G, tol)
	ds := make([]Dummy, 0, len(lin))
	for _, k := range lin {
		d := Dummy{Parent: k, Direction: -1}
		if n := g.Neighbors(k); len(n) > 0 {
			d.Direction = n[0]
		}
		ds = append(ds, d)
	}
	return ds
}

//String returns the z-matrix keys of the geometry atoms and the dummy parents.
func (z *ZmatConv) String() string {
	s := fmt.Sprintf("zmat keys: %v", z.zmat)
	for _, k := range z.DummyKeys() {
		s += fmt.Sprintf(" dummy %d: parent %d", k, z.dummies[k].Parent)
	}
	return s
}
