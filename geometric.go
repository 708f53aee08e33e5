/*
 * geometric.go, part of gorxn.
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
	"math"
	"sort"

	"github.com/rmera/gorxn/v3"
	"gonum.org/v1/gonum/floats"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Geometry is a set of atoms with cartesian coordinates, in Angstrom.
//Atom i of the geometry is atom key i of the matching graph.
type Geometry struct {
	symbols []string
	coords  *v3.Matrix
}

//NewGeometry builds a geometry from symbols and Angstrom coordinates, which are copied.
func NewGeometry(symbols []string, coords *v3.Matrix) (*Geometry, error) {
	if coords.NVecs() != len(symbols) {
		return nil, structuralError("NewGeometry", "%d symbols for %d coordinates", len(symbols), coords.NVecs())
	}
	c := v3.Zeros(len(symbols))
	if len(symbols) > 0 {
		c.Copy(coords.Dense)
	}
	s := make([]string, len(symbols))
	copy(s, symbols)
	return &Geometry{symbols: s, coords: c}, nil
}

//GeometryFromSlice builds a geometry from symbols and a flat slice of
//coordinates (x1,y1,z1,x2...), multiplied by scale.
func GeometryFromSlice(symbols []string, data []float64, scale float64) (*Geometry, error) {
	d := make([]float64, len(data))
	floats.ScaleTo(d, scale, data)
	c, err := v3.NewMatrix(d)
	if err != nil {
		return nil, newError(ErrStructural, "GeometryFromSlice", "%s", err.Error())
	}
	return NewGeometry(symbols, c)
}

//GeometryFromBohr builds a geometry from coordinates in Bohr.
func GeometryFromBohr(symbols []string, data []float64) (*Geometry, error) {
	G, err := GeometryFromSlice(symbols, data, Bohr2A)
	return G, errDecorate(err, "GeometryFromBohr")
}

func (G *Geometry) Len() int { return len(G.symbols) }

func (G *Geometry) Symbol(i int) string { return G.symbols[i] }

//Symbols returns a copy of the symbols.
func (G *Geometry) Symbols() []string {
	s := make([]string, len(G.symbols))
	copy(s, G.symbols)
	return s
}

//Position returns a copy of the coordinates of atom i.
func (G *Geometry) Position(i int) []float64 {
	return append([]float64(nil), G.coords.RawRowView(i)...)
}

//Coords returns a copy of the coordinate matrix.
func (G *Geometry) Coords() *v3.Matrix {
	c := v3.Zeros(G.Len())
	if G.Len() > 0 {
		c.Copy(G.coords.Dense)
	}
	return c
}

//vec returns a view of the coordinates of atom i. It must not be modified.
func (G *Geometry) vec(i int) *v3.Matrix {
	return G.coords.VecView(i)
}

//Distance between atoms i and j.
func (G *Geometry) Distance(i, j int) float64 {
	return floats.Distance(G.coords.RawRowView(i), G.coords.RawRowView(j), 2)
}

//CentralAngle returns the angle i-j-k, in radians.
func (G *Geometry) CentralAngle(i, j, k int) float64 {
	a := v3.Zeros(1)
	b := v3.Zeros(1)
	a.Sub(G.vec(i), G.vec(j))
	b.Sub(G.vec(k), G.vec(j))
	return Angle(a, b)
}

//DihedralAngle returns the dihedral i-j-k-l, in radians.
func (G *Geometry) DihedralAngle(i, j, k, l int) float64 {
	return Dihedral(G.vec(i), G.vec(j), G.vec(k), G.vec(l))
}

//Insert returns a geometry with a new atom appended.
func (G *Geometry) Insert(symbol string, pos []float64) *Geometry {
	n := G.Len()
	c := v3.Zeros(n + 1)
	for i := 0; i < n; i++ {
		c.SetRow(i, G.coords.RawRowView(i))
	}
	c.SetRow(n, pos)
	return &Geometry{symbols: append(G.Symbols(), symbol), coords: c}
}

//Subset returns the geometry formed by the atoms idx, in that order.
func (G *Geometry) Subset(idx []int) (*Geometry, error) {
	s := make([]string, len(idx))
	for i, v := range idx {
		if v < 0 || v >= G.Len() {
			return nil, structuralError("Subset", "index %d out of range", v)
		}
		s[i] = G.symbols[v]
	}
	c := v3.Zeros(len(idx))
	if len(idx) > 0 {
		c.SomeVecs(G.coords, idx)
	}
	return &Geometry{symbols: s, coords: c}, nil
}

//Angle takes 2 vectors and calculate the angle in radians between them
//It does not check for correctness or return errors!
func Angle(v1, v2 *v3.Matrix) float64 {
	normproduct := v1.Norm() * v2.Norm()
	dotprod := v1.Dot(v2)
	argument := dotprod / normproduct
	//Take care of floating point math errors
	if argument > 1 {
		argument = 1
	} else if argument < -1 {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

//Dihedral calculate the dihedral between the points a, b, c, d, where the first plane
//is defined by abc and the second by bcd.
func Dihedral(a, b, c, d *v3.Matrix) float64 {
	all := []*v3.Matrix{a, b, c, d}
	for number, point := range all {
		if point == nil {
			panic(fmt.Sprintf("Vector %d is nil", number))
		}
		pr, pc := point.Dims()
		if pr != 1 || pc != 3 {
			panic(fmt.Sprintf("Vector %d has invalid shape", number))
		}
	}
	//bma=b minus a
	bma := v3.Zeros(1)
	cmb := v3.Zeros(1)
	dmc := v3.Zeros(1)
	bmascaled := v3.Zeros(1)
	bma.Sub(b, a)
	cmb.Sub(c, b)
	dmc.Sub(d, c)
	bmascaled.Scale(cmb.Norm(), bma)
	first := bmascaled.Dot(cross(cmb, dmc))
	v1 := cross(bma, cmb)
	v2 := cross(cmb, dmc)
	second := v1.Dot(v2)
	return math.Atan2(first, second)
}

func cross(a, b *v3.Matrix) *v3.Matrix {
	c := v3.Zeros(1)
	c.Cross(a, b)
	return c
}

//signedVolume returns det[x1-x0, x2-x0, x3-x0] for the atoms idx.
func (G *Geometry) signedVolume(idx [4]int) float64 {
	m := v3.Zeros(3)
	for i := 1; i < 4; i++ {
		m.VecView(i-1).Sub(G.vec(idx[i]), G.vec(idx[0]))
	}
	return v3.Det3(m)
}

//LinearAtoms returns the atoms of g that have two neighbors at an angle within tol
//degrees of 180, sorted.
func LinearAtoms(g *Graph, G *Geometry, tol float64) []int {
	var lin []int
	for _, k := range g.keys {
		n := g.nbrs[k]
		if len(n) < 2 || k >= G.Len() {
			continue
		}
	pairs:
		for i := 0; i < len(n); i++ {
			for j := i + 1; j < len(n); j++ {
				ang := G.CentralAngle(n[i], k, n[j]) * Rad2Deg
				if math.Abs(ang-180.0) < tol {
					lin = append(lin, k)
					break pairs
				}
			}
		}
	}
	return lin
}

//ClosestUnbondedAtoms returns the atoms that are not bonded to k (nor, if
//exclSecond, bonded to a neighbor of k) and lie within (1+distFrac) times the
//distance of the closest such atom, with their distances. Dummy atoms are ignored.
//Atoms in incl are always candidates.
func ClosestUnbondedAtoms(g *Graph, G *Geometry, k int, distFrac float64, exclSecond bool, incl ...int) map[int]float64 {
	excl := map[int]bool{k: true}
	for _, n := range g.nbrs[k] {
		excl[n] = true
		if exclSecond {
			for _, n2 := range g.nbrs[n] {
				excl[n2] = true
			}
		}
	}
	for _, i := range incl {
		excl[i] = false
	}
	excl[k] = true
	dists := make(map[int]float64)
	mind := math.Inf(1)
	for _, i := range g.keys {
		if excl[i] || i >= G.Len() || g.atoms[i].Symbol == "X" {
			continue
		}
		d := G.Distance(k, i)
		dists[i] = d
		mind = math.Min(mind, d)
	}
	thresh := mind * (1 + distFrac)
	for i, d := range dists {
		if d > thresh {
			delete(dists, i)
		}
	}
	return dists
}

//CouldBeFormingBond returns true if a and b are each among the closest unbonded
//atoms of the other.
func CouldBeFormingBond(g *Graph, G *Geometry, a, b int, distFrac float64) bool {
	da := ClosestUnbondedAtoms(g, G, a, distFrac, true, b)
	db := ClosestUnbondedAtoms(g, G, b, distFrac, true, a)
	_, ok1 := da[b]
	_, ok2 := db[a]
	return ok1 && ok2
}

//sortByDistance sorts the atoms in keys by their distance to k, closest first.
func sortByDistance(G *Geometry, k int, keys []int) {
	sort.SliceStable(keys, func(i, j int) bool { return G.Distance(k, keys[i]) < G.Distance(k, keys[j]) })
}
