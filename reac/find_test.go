/*
 * find_test.go, part of gorxn.
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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/gorxn"
	"github.com/rmera/gorxn/smiles"
)

func graphs(smis ...string) []*chem.Graph {
	r := make([]*chem.Graph, len(smis))
	for i, s := range smis {
		r[i] = smiles.MustParse(s)
	}
	return r
}

func find1(t *testing.T, rcts, prds []string) []*Reaction {
	t.Helper()
	rs, err := Find(graphs(rcts...), graphs(prds...), nil)
	require.NoError(t, err)
	require.NotEmpty(t, rs, "%v -> %v", rcts, prds)
	return rs
}

func seq(a, b int) []int {
	var r []int
	for i := a; i < b; i++ {
		r = append(r, i)
	}
	return r
}

func TestFindAbstraction(t *testing.T) {
	rs := find1(t, []string{"CCO", "C#[C]"}, []string{"CC[O]", "C#C"})
	require.Len(t, rs, 1)
	r := rs[0]
	assert.Equal(t, HydrogenAbstraction, r.Class)
	assert.Equal(t, [][]int{seq(0, 9), {9, 10, 11}}, r.ReactantKeys)
	assert.Equal(t, [][]int{seq(0, 8), {9, 10, 11, 8}}, r.ProductKeys)
	assert.Equal(t, []chem.BondKey{{8, 10}}, chem.FormingKeys(r.TS))
	assert.Equal(t, []chem.BondKey{{2, 8}}, chem.BreakingKeys(r.TS))
	assert.False(t, r.RadRad)
	assert.Equal(t, UnspecifiedSpin, r.Spin)
	require.NoError(t, r.Validate())
}

func TestFindAddition(t *testing.T) {
	rs := find1(t, []string{"FC=CF", "[OH]"}, []string{"F[CH]C(O)F"})
	require.Len(t, rs, 1)
	r := rs[0]
	assert.Equal(t, Addition, r.Class)
	assert.Equal(t, []chem.BondKey{{1, 6}}, chem.FormingKeys(r.TS))
	assert.Empty(t, chem.BreakingKeys(r.TS))
	assert.Equal(t, [][]int{{3, 2, 1, 6, 0, 5, 4, 7}}, r.ProductKeys)
	//the side graphs are the inputs
	prd := chem.Explicit(smiles.MustParse("F[CH]C(O)F"))
	assert.True(t, chem.CanonicalCode(r.ProductGraphs()[0], false).Equal(chem.CanonicalCode(prd, false)))
}

func TestFindClasses(t *testing.T) {
	cases := []struct {
		rcts, prds []string
		class      Class
	}{
		{[]string{"CCO"}, []string{"OCC"}, Trivial},
		{[]string{"CCC[CH2]"}, []string{"CC[CH]C"}, HydrogenMigration},
		{[]string{"CCCO[O]"}, []string{"[CH2]CCOO"}, HydrogenMigration},
		{[]string{"CC"}, []string{"[CH3]", "[CH3]"}, HomolyticScission},
		{[]string{"[CH2]CC"}, []string{"C=C", "[CH3]"}, BetaScission},
		{[]string{"C=C", "[CH3]"}, []string{"[CH2]CC"}, Addition},
		{[]string{"CC(Cl)CC", "[F]"}, []string{"CC(F)CC", "[Cl]"}, Substitution},
		{[]string{"CCCCO[O]"}, []string{"CCC=C", "O[O]"}, Elimination},
		{[]string{"CCC=O", "N(=O)O"}, []string{"CCCON(=O)=O"}, Insertion},
		{[]string{"[CH2]CCCOO"}, []string{"C1CCCO1", "[OH]"}, RingFormingScission},
		{[]string{"N#N", "[O]"}, []string{"[N-]=[N+]=O"}, Addition},
	}
	for _, c := range cases {
		rs := find1(t, c.rcts, c.prds)
		for _, r := range rs {
			assert.Equal(t, c.class, r.Class, "%v -> %v", c.rcts, c.prds)
			require.NoError(t, r.Validate())
		}
	}
}

func TestFindRadicalPair(t *testing.T) {
	rs := find1(t, []string{"[CH3]", "[OH]"}, []string{"[CH2]", "O"})
	r := rs[0]
	assert.Equal(t, HydrogenAbstraction, r.Class)
	assert.True(t, r.RadRad)
	assert.False(t, r.ISC)
	assert.Equal(t, LowSpin, r.Spin)
}

func TestSpinSurfaces(t *testing.T) {
	r := find1(t, []string{"[CH3]", "[OH]"}, []string{"[CH2]", "O"})[0]
	assert.Equal(t, "radical-radical low-spin hydrogen abstraction", r.Description())
	assert.True(t, r.Barrierless())
	ss := SpinSurfaces(r)
	require.Len(t, ss, 2)
	assert.Equal(t, LowSpin, ss[0].Spin)
	assert.Equal(t, HighSpin, ss[1].Spin)
	assert.Equal(t, "radical-radical high-spin hydrogen abstraction", ss[1].Description())
	assert.False(t, ss[1].Barrierless())
	hi, err := r.WithSpin(HighSpin)
	require.NoError(t, err)
	assert.Equal(t, HighSpin, hi.Spin)
	assert.Equal(t, LowSpin, r.Spin)
	_, err = r.WithSpin(UnspecifiedSpin)
	assert.Error(t, err)

	c := find1(t, []string{"CCO", "C#[C]"}, []string{"CC[O]", "C#C"})[0]
	assert.Equal(t, "hydrogen abstraction", c.Description())
	assert.False(t, c.Barrierless())
	assert.Len(t, SpinSurfaces(c), 1)
	_, err = c.WithSpin(HighSpin)
	assert.Error(t, err)
}

func TestFindNoMapping(t *testing.T) {
	rs, err := Find(graphs("CCO"), graphs("CC"), nil)
	require.NoError(t, err)
	assert.Empty(t, rs)
	//too many bond changes for the ceiling
	rs, err = Find(graphs("C1CCCCC1"), graphs("C=C", "C=C", "C=C"), &Options{MaxBondChanges: 1})
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestFindBadStereo(t *testing.T) {
	g := smiles.MustParse("CCO").WithAtomParity(0, chem.ParityTrue)
	_, err := Find([]*chem.Graph{g}, graphs("OCC"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, chem.ErrStereoInconsistency))
}

func TestReverse(Te *testing.T) {
	cases := [][2][]string{
		{{"FC=CF", "[OH]"}, {"F[CH]C(O)F"}},
		{{"CCOC(C)CC", "[OH]"}, {"C[CH]OC(C)CC", "O"}},
		{{"CC(Cl)CC", "[F]"}, {"CC(F)CC", "[Cl]"}},
		{{"CCCO[O]"}, {"[CH2]CCOO"}},
		{{"CCC[CH2]"}, {"CC[CH]C"}},
		{{"CCO", "C#[C]"}, {"CC[O]", "C#C"}},
		{{"[CH2]CC"}, {"C=C", "[CH3]"}},
		{{"CCCCO[O]"}, {"CCC=C", "O[O]"}},
		{{"CCC=O", "N(=O)O"}, {"CCCON(=O)=O"}},
	}
	for _, c := range cases {
		r := find1(Te, c[0], c[1])[0]
		for _, s := range ExpandStereo(r, true) {
			rv := chem.ReverseTS(s.TS)
			if !chem.ReverseTS(rv).Equal(s.TS) {
				Te.Errorf("%v: ReverseTS is not an involution", c[0])
			}
			if !chem.ProductGraph(s.TS).Equal(chem.ReactantGraph(rv)) {
				Te.Errorf("%v: product side does not match the reactant side of the reverse", c[0])
			}
			back, err := Reverse(s)
			if err != nil {
				Te.Fatal(err)
			}
			again, err := Reverse(back)
			if err != nil {
				Te.Fatal(err)
			}
			if !again.Equal(s) {
				Te.Errorf("%v: Reverse is not an involution", c[0])
			}
		}
	}
}

func TestFindChargeSeparated(t *testing.T) {
	rs := find1(t, []string{"N#N", "[O]"}, []string{"[N-]=[N+]=O"})
	require.Len(t, rs, 1)
	r := rs[0]
	assert.Equal(t, Addition, r.Class)
	fk := chem.FormingKeys(r.TS)
	require.Len(t, fk, 1)
	assert.True(t, fk[0].Has(2))
	assert.Equal(t, [][]int{{0, 1}, {2}}, r.ReactantKeys)
	require.NoError(t, r.Validate())
	//the TS keeps the charges of the reactants
	assert.Equal(t, 0, r.TS.Charge())
	for _, k := range r.TS.Keys() {
		a, _ := r.TS.Atom(k)
		assert.Equal(t, 0, a.Charge)
	}
	//the total charge is still conserved
	rs, err := Find(graphs("N#N", "[O]"), graphs("[N-]=[N+]=[O+]"), nil)
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestReverseUndefined(t *testing.T) {
	r := find1(t, []string{"CC"}, []string{"[CH3]", "[CH3]"})[0]
	_, err := Reverse(r)
	assert.True(t, errors.Is(err, ErrReversalUndefined))
}

func readGraph(t *testing.T, name string, stereo bool) *chem.Graph {
	t.Helper()
	G, err := chem.XYZFileRead(name)
	require.NoError(t, err)
	var g *chem.Graph
	if stereo {
		g, err = chem.StereoGraphFromGeometry(G, nil)
	} else {
		g, err = chem.GraphFromGeometry(G, nil)
	}
	require.NoError(t, err)
	return g
}

//A ring-opening beta scission of a bicyclic radical with two stereocenters.
func TestFindC5H7O(t *testing.T) {
	gR := readGraph(t, "../test/c5h7o_r.xyz", true)
	gP1 := readGraph(t, "../test/c5h7o_p1.xyz", true)
	gP2, err := chem.NewGraph(map[int]chem.Atom{0: {Symbol: "H"}}, nil)
	require.NoError(t, err)

	free, err := Find([]*chem.Graph{gR.WithoutStereo()}, []*chem.Graph{gP1.WithoutStereo(), gP2}, nil)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, BetaScission, free[0].Class)

	rs, err := Find([]*chem.Graph{gR}, []*chem.Graph{gP1, gP2}, nil)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	rg := rs[0].ReactantGraphs()[0]
	assert.True(t, chem.CanonicalCode(rg, true).Equal(chem.CanonicalCode(gR, true)))

	//the reactant is meso, so the mirror-image product is reached as well
	rs, err = Find([]*chem.Graph{gR}, []*chem.Graph{chem.Invert(gP1), gP2}, nil)
	require.NoError(t, err)
	assert.Len(t, rs, 1)
}
