/*
 * text_test.go, part of gorxn.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/gorxn"
)

//written by an older program: the atom parity is only in the backward TS.
const legacyAddition = `
    reaction class: addition
    forward TS atoms:
        1: {symbol: F, implicit_hydrogen_valence: 0, stereo_parity: null}
        2: {symbol: C, implicit_hydrogen_valence: 0, stereo_parity: null}
        3: {symbol: C, implicit_hydrogen_valence: 0, stereo_parity: null}
        4: {symbol: F, implicit_hydrogen_valence: 0, stereo_parity: null}
        5: {symbol: H, implicit_hydrogen_valence: 0, stereo_parity: null}
        6: {symbol: H, implicit_hydrogen_valence: 0, stereo_parity: null}
        7: {symbol: O, implicit_hydrogen_valence: 0, stereo_parity: null}
        8: {symbol: H, implicit_hydrogen_valence: 0, stereo_parity: null}
    forward TS bonds:
        1-2: {order: 1, stereo_parity: null}
        2-3: {order: 1, stereo_parity: true}
        2-5: {order: 1, stereo_parity: null}
        2-7: {order: 0.1, stereo_parity: null}
        3-4: {order: 1, stereo_parity: null}
        3-6: {order: 1, stereo_parity: null}
        7-8: {order: 1, stereo_parity: null}
    reactants keys:
    - [1, 2, 3, 4, 5, 6]
    - [7, 8]
    backward TS atoms:
        1: {symbol: F, implicit_hydrogen_valence: 0, stereo_parity: null}
        2: {symbol: C, implicit_hydrogen_valence: 0, stereo_parity: null}
        3: {symbol: H, implicit_hydrogen_valence: 0, stereo_parity: null}
        4: {symbol: C, implicit_hydrogen_valence: 0, stereo_parity: false}
        5: {symbol: H, implicit_hydrogen_valence: 0, stereo_parity: null}
        6: {symbol: O, implicit_hydrogen_valence: 0, stereo_parity: null}
        7: {symbol: F, implicit_hydrogen_valence: 0, stereo_parity: null}
        8: {symbol: H, implicit_hydrogen_valence: 0, stereo_parity: null}
    backward TS bonds:
        1-2: {order: 1, stereo_parity: null}
        2-3: {order: 1, stereo_parity: null}
        2-4: {order: 1, stereo_parity: null}
        4-5: {order: 1, stereo_parity: null}
        4-6: {order: 0.9, stereo_parity: null}
        4-7: {order: 1, stereo_parity: null}
        6-8: {order: 1, stereo_parity: null}
    products keys:
    - [1, 2, 3, 4, 5, 6, 7, 8]
`

func TestFromStringLegacy(t *testing.T) {
	r, err := FromString(legacyAddition)
	require.NoError(t, err)
	assert.Equal(t, Addition, r.Class)
	assert.Equal(t, [][]int{{0, 1, 2, 3, 4, 5}, {6, 7}}, r.ReactantKeys)
	assert.Equal(t, [][]int{{3, 2, 5, 1, 4, 6, 0, 7}}, r.ProductKeys)
	b, ok := r.TS.Bond(1, 2)
	require.True(t, ok)
	assert.Equal(t, chem.ParityTrue, b.Parity)
	//both TS frames order the substituents of the carbon H < C < O < F
	a, _ := r.TS.Atom(1)
	assert.Equal(t, chem.ParityFalse, a.Parity)
	f, ok := r.TS.Bond(1, 6)
	require.True(t, ok)
	assert.InDelta(t, chem.FormingOrder, f.Order, 1e-9)
	require.NoError(t, chem.CheckStereo(r.TS))

	//after the merge, the text has both parities and reads back to the same reaction
	s := r.String()
	r2, err := FromString(s)
	require.NoError(t, err)
	assert.True(t, r2.TS.Equal(r.TS))
	assert.Equal(t, s, r2.String())
}

func TestStringRoundTrip(t *testing.T) {
	cases := [][2][]string{
		{{"FC=CF", "[OH]"}, {"F[CH]C(O)F"}},
		{{"CCOC(C)CC", "[OH]"}, {"C[CH]OC(C)CC", "O"}},
		{{"CCO", "C#[C]"}, {"CC[O]", "C#C"}},
	}
	for _, c := range cases {
		r := find1(t, c[0], c[1])[0]
		for _, x := range ExpandStereo(r, true) {
			s := x.String()
			y, err := FromString(s)
			require.NoError(t, err, s)
			assert.Equal(t, x.Class, y.Class)
			assert.True(t, y.TS.Equal(x.TS), s)
			assert.Equal(t, x.ReactantKeys, y.ReactantKeys)
			assert.Equal(t, s, y.String())
			for i, g := range y.ProductGraphs() {
				assert.True(t, chem.CanonicalCode(g, true).Equal(chem.CanonicalCode(x.ProductGraphs()[i], true)))
			}
		}
	}
}

func TestStringLayout(t *testing.T) {
	r := find1(t, []string{"FC=CF", "[OH]"}, []string{"F[CH]C(O)F"})[0]
	s := r.String()
	assert.True(t, strings.HasPrefix(s, "reaction class: addition\nforward TS atoms:\n    1: {symbol: F, implicit_hydrogen_valence: 0, stereo_parity: null}\n"))
	assert.Contains(t, s, "    2-7: {order: 0.1, stereo_parity: null}\n")
	assert.Contains(t, s, "reactants keys:\n- [1, 2, 3, 4, 5, 6]\n- [7, 8]\n")
	assert.True(t, strings.HasSuffix(s, "products keys:\n- [1, 2, 3, 4, 5, 6, 7, 8]\n"))
	assert.NotContains(t, s, "charge")
}

func TestStringCharge(t *testing.T) {
	g, err := chem.NewGraph(map[int]chem.Atom{
		0: {Symbol: "N", Hydrogens: 4, Charge: 1},
	}, nil)
	require.NoError(t, err)
	var b strings.Builder
	writeGraph(&b, "forward TS", g)
	assert.Equal(t, "forward TS atoms:\n    1: {symbol: N, implicit_hydrogen_valence: 4, charge: 1, stereo_parity: null}\nforward TS bonds:\n", b.String())
}

func TestFromStringErrors(t *testing.T) {
	_, err := FromString("reaction class: combustion\n")
	assert.Error(t, err)
	_, err = FromString("reaction class: [unclosed\n")
	assert.Error(t, err)
	bad := strings.Replace(legacyAddition, "4-6: {order: 0.9", "4-6: {order: 1", 1)
	_, err = FromString(bad)
	assert.ErrorIs(t, err, chem.ErrStructural)
}

func TestDedent(t *testing.T) {
	assert.Equal(t, "a:\n  b\n\nc", dedent("  a:\n    b\n\n  c"))
	assert.Equal(t, "a\nb", dedent("a\nb"))
}
