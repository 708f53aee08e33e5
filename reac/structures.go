/*
 * structures.go, part of gorxn.
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
	chem "github.com/rmera/gorxn"
	"github.com/rmera/gorxn/zmatconv"
)

//Structure is a set of coordinates for the atoms of a TS, reactant or product.
//*chem.Geometry is one; z-matrix types from other packages can be others.
type Structure interface {
	Len() int
}

//Structure kinds.
const (
	KindGeometry = "geom"
	KindZmatrix  = "zmat"
)

//Structures holds coordinates for a reaction. Atom j of Reactants[i] is atom
//ReactantKeys[i][j] of the reaction, and the TS structure is keyed like the TS
//graph. If the conversions are set, the structures are z-matrices (or geometries
//in z-matrix order) with dummy atoms, and the conversions relate them to the
//graph keys.
type Structures struct {
	Kind          string
	TS            Structure
	Reactants     []Structure
	Products      []Structure
	TSConv        *zmatconv.ZmatConv
	ReactantConvs []*zmatconv.ZmatConv
	ProductConvs  []*zmatconv.ZmatConv
}

func (s *Structures) reversed() *Structures {
	return &Structures{
		Kind:          s.Kind,
		TS:            s.TS,
		Reactants:     s.Products,
		Products:      s.Reactants,
		TSConv:        s.TSConv,
		ReactantConvs: s.ProductConvs,
		ProductConvs:  s.ReactantConvs,
	}
}

//WithStructures returns a copy of r with the structures s attached. It checks
//that every structure has as many atoms as the graph it belongs to.
func WithStructures(r *Reaction, s *Structures) (*Reaction, error) {
	if s == nil {
		return WithoutStructures(r), nil
	}
	if s.Kind != KindGeometry && s.Kind != KindZmatrix {
		return nil, chem.NewError(nil, "WithStructures", "unknown structure kind %q", s.Kind)
	}
	if err := checkStructure("TS", s.TS, s.TSConv, r.TS.Len()); err != nil {
		return nil, err
	}
	for _, side := range []struct {
		name   string
		sts    []Structure
		convs  []*zmatconv.ZmatConv
		groups [][]int
	}{
		{"reactant", s.Reactants, s.ReactantConvs, r.ReactantKeys},
		{"product", s.Products, s.ProductConvs, r.ProductKeys},
	} {
		if len(side.sts) != len(side.groups) {
			return nil, chem.NewError(chem.ErrStructural, "WithStructures", "%d %s structures for %d %ss", len(side.sts), side.name, len(side.groups), side.name)
		}
		if side.convs != nil && len(side.convs) != len(side.groups) {
			return nil, chem.NewError(chem.ErrStructural, "WithStructures", "%d %s conversions for %d %ss", len(side.convs), side.name, len(side.groups), side.name)
		}
		for i, st := range side.sts {
			var conv *zmatconv.ZmatConv
			if side.convs != nil {
				conv = side.convs[i]
			}
			if err := checkStructure(side.name, st, conv, len(side.groups[i])); err != nil {
				return nil, err
			}
		}
	}
	c := r.Copy()
	c.Structures = s
	return c, nil
}

//WithoutStructures returns a copy of r without structures.
func WithoutStructures(r *Reaction) *Reaction {
	c := r.Copy()
	c.Structures = nil
	return c
}

//checkStructure verifies that st has n real atoms, plus the dummies of conv if it is set.
func checkStructure(name string, st Structure, conv *zmatconv.ZmatConv, n int) error {
	if st == nil {
		return chem.NewError(chem.ErrStructural, "WithStructures", "missing %s structure", name)
	}
	want := n
	if conv != nil {
		if conv.Real() != n {
			return chem.NewError(chem.ErrStructural, "WithStructures", "%s conversion has %d real atoms, want %d", name, conv.Real(), n)
		}
		want = conv.Count()
	}
	if st.Len() != want {
		return chem.NewError(chem.ErrStructural, "WithStructures", "%s structure has %d atoms, want %d", name, st.Len(), want)
	}
	return nil
}

//Geometries returns the TS, reactant and product geometries of r in graph key
//order, without dummy atoms. It returns false if r has no structures, or if they
//are not geometries.
func (r *Reaction) Geometries() (ts *chem.Geometry, rcts, prds []*chem.Geometry, ok bool) {
	s := r.Structures
	if s == nil || s.Kind != KindGeometry {
		return nil, nil, nil, false
	}
	undo := func(st Structure, conv *zmatconv.ZmatConv) (*chem.Geometry, bool) {
		G, ok := st.(*chem.Geometry)
		if !ok {
			return nil, false
		}
		if conv == nil {
			return G, true
		}
		U, err := conv.Undo(G)
		return U, err == nil
	}
	if ts, ok = undo(s.TS, s.TSConv); !ok {
		return nil, nil, nil, false
	}
	for i, st := range s.Reactants {
		var conv *zmatconv.ZmatConv
		if s.ReactantConvs != nil {
			conv = s.ReactantConvs[i]
		}
		G, ok := undo(st, conv)
		if !ok {
			return nil, nil, nil, false
		}
		rcts = append(rcts, G)
	}
	for i, st := range s.Products {
		var conv *zmatconv.ZmatConv
		if s.ProductConvs != nil {
			conv = s.ProductConvs[i]
		}
		G, ok := undo(st, conv)
		if !ok {
			return nil, nil, nil, false
		}
		prds = append(prds, G)
	}
	return ts, rcts, prds, true
}
