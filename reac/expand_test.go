/*
 * expand_test.go, part of gorxn.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/gorxn"
)

func TestExpandStereo(t *testing.T) {
	cases := []struct {
		rcts, prds          []string
		full, restricted    int
		filtFull, filtRestr int
	}{
		{[]string{"FC=CF", "[OH]"}, []string{"F[CH]C(O)F"}, 4, 2, 1, 1},
		{[]string{"CCOCC", "[OH]"}, []string{"C[CH]OCC", "O"}, 2, 1, 2, 1},
		{[]string{"CCOC(C)CC", "[OH]"}, []string{"C[CH]OC(C)CC", "O"}, 4, 2, 2, 2},
	}
	for _, c := range cases {
		r := find1(t, c.rcts, c.prds)[0]
		full := ExpandStereo(r, true)
		require.Len(t, full, c.full, "%v", c.rcts)
		assert.Len(t, ExpandStereo(r, false), c.restricted, "%v", c.rcts)
		free := chem.CanonicalCode(r.TS, false)
		for _, x := range full {
			assert.Equal(t, r.Class, x.Class)
			assert.True(t, chem.CanonicalCode(x.TS, false).Equal(free))
			require.NoError(t, chem.CheckStereo(x.TS))
			rg, pg := x.ReactantGraphs(), x.ProductGraphs()
			assert.Len(t, ExpandStereoFor(r, true, rg, pg), c.filtFull, "%v", c.rcts)
			assert.Len(t, ExpandStereoFor(r, false, rg, pg), c.filtRestr, "%v", c.rcts)
		}
	}
}

func TestEnantiomers(t *testing.T) {
	r := find1(t, []string{"CCOC(C)CC", "[OH]"}, []string{"C[CH]OC(C)CC", "O"})[0]
	canon := 0
	for _, x := range ExpandStereo(r, true) {
		m := Mirror(x)
		assert.True(t, Mirror(m).TS.Equal(x.TS))
		if IsCanonicalEnantiomer(x) {
			canon++
		}
		c := CanonicalEnantiomer(x)
		assert.True(t, IsCanonicalEnantiomer(c))
		assert.True(t, chem.CanonicalCode(CanonicalEnantiomer(c).TS, true).Equal(chem.CanonicalCode(c.TS, true)))
	}
	assert.Equal(t, 2, canon)
}

func TestExpandFilterMismatch(t *testing.T) {
	r := find1(t, []string{"FC=CF", "[OH]"}, []string{"F[CH]C(O)F"})[0]
	assert.Empty(t, ExpandStereoFor(r, true, graphs("FC=CF"), graphs("F[CH]C(O)F")))
}
