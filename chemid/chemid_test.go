/*
 * chemid_test.go, part of gorxn.
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

package chemid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/gorxn"
	"github.com/rmera/gorxn/smiles"
)

//fixed is an Encoder that always returns the same identifier.
type fixed struct {
	id    string
	order []int
	err   error
	got   *chem.Graph
}

func (f *fixed) Encode(g *chem.Graph) (string, []int, error) {
	f.got = g
	return f.id, f.order, f.err
}

const butene = "InChI=1S/C4H8/c1-3-4-2/h3-4H,1-2H3"

func but2ene(p chem.Parity) *chem.Graph {
	return smiles.MustParse("CC=CC").WithBondParity(chem.NewBondKey(1, 2), p)
}

func flip(b byte) byte {
	if b == '+' {
		return '-'
	}
	return '+'
}

func TestIdentifyBondLayer(t *testing.T) {
	enc := &fixed{id: butene, order: []int{0, 3, 1, 2}}
	g := but2ene(chem.ParityTrue)
	id, err := Identify(enc, g)
	require.NoError(t, err)
	require.Len(t, id, len(butene)+len("/b4-3+"))
	assert.Equal(t, butene+"/b4-3", id[:len(id)-1])
	assert.Equal(t, 12, enc.got.Len())

	sgn := id[len(id)-1]
	other, err := Identify(enc, but2ene(chem.ParityFalse))
	require.NoError(t, err)
	assert.Equal(t, flip(sgn), other[len(other)-1])

	//a wrong layer is corrected, a right one is kept
	enc.id = butene + "/b4-3" + string(flip(sgn))
	fixedID, err := Identify(enc, g)
	require.NoError(t, err)
	assert.Equal(t, id, fixedID)
	enc.id = id
	same, err := Identify(enc, g)
	require.NoError(t, err)
	assert.Equal(t, id, same)
}

func TestIdentifyAtomLayer(t *testing.T) {
	base := "InChI=1S/C4H10O/c1-3-4(2)5/h4-5H,3H2,1-2H3"
	enc := &fixed{id: base, order: []int{0, 4, 3, 1, 2}}
	g := smiles.MustParse("CC(O)CC").WithAtomParity(1, chem.ParityTrue)
	require.NoError(t, chem.CheckStereo(g))
	id, err := Identify(enc, g)
	require.NoError(t, err)
	assert.Equal(t, base+"/t4", id[:len(id)-1])
	other, err := Identify(enc, g.WithAtomParity(1, chem.ParityFalse))
	require.NoError(t, err)
	assert.Equal(t, flip(id[len(id)-1]), other[len(other)-1])
}

func TestIdentifyFallback(t *testing.T) {
	//the encoder did not number one of the substituents of the double bond
	enc := &fixed{id: butene + "/b3-2+", order: []int{3, 1, 2}}
	id, err := Identify(enc, but2ene(chem.ParityFalse))
	require.NoError(t, err)
	assert.Equal(t, enc.id, id)
}

func TestIdentifyDropsSpuriousStereo(t *testing.T) {
	base := "InChI=1S/C4H10O/c1-3-4(2)5/h4-5H,3H2,1-2H3"
	enc := &fixed{id: base + "/t4-/m0/s1", order: []int{0, 4, 3, 1, 2}}
	id, err := Identify(enc, smiles.MustParse("CC(O)CC"))
	require.NoError(t, err)
	assert.Equal(t, base, id)
}

func TestIdentifyErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Identify(&fixed{err: boom}, smiles.MustParse("C"))
	assert.ErrorIs(t, err, boom)
	_, err = Identify(&fixed{id: "InChI=1S/CH4/h1H4", order: []int{7}}, smiles.MustParse("C"))
	assert.ErrorIs(t, err, chem.ErrStructural)
	_, err = Identify(&fixed{id: "InChI=1S/CH4/h1H4", order: []int{0, 0}}, smiles.MustParse("C"))
	assert.ErrorIs(t, err, chem.ErrStructural)
	_, err = Identify(&fixed{id: "", order: []int{0}}, smiles.MustParse("C"))
	var cerr *chem.CError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, []string{"ParseLayers", "Identify"}, cerr.Decorate(""))
}

func TestLayers(t *testing.T) {
	id := "InChI=1S/C4H10O/c1-3-4(2)5/h4-5H,3H2,1-2H3/t4-/m0/s1"
	prefix, layers, err := ParseLayers(id)
	require.NoError(t, err)
	assert.Equal(t, "InChI=1S", prefix)
	require.Len(t, layers, 6)
	assert.Equal(t, Layer{Text: "C4H10O"}, layers[0])
	assert.Equal(t, Layer{Key: 'h', Text: "4-5H,3H2,1-2H3"}, layers[2])
	assert.Equal(t, id, JoinLayers(prefix, layers))

	txt, ok := Get(layers, 't')
	assert.True(t, ok)
	assert.Equal(t, "4-", txt)
	with := Set(layers, 'b', "3-2+")
	assert.Equal(t, "InChI=1S/C4H10O/c1-3-4(2)5/h4-5H,3H2,1-2H3/b3-2+/t4-/m0/s1", JoinLayers(prefix, with))
	assert.Equal(t, "InChI=1S/C4H10O/c1-3-4(2)5/h4-5H,3H2,1-2H3/m0/s1", JoinLayers(prefix, Set(layers, 't', "")))
	assert.Equal(t, layers, Set(layers, 'x', ""))

	_, _, err = ParseLayers("")
	assert.Error(t, err)
}

func TestParseAuxOrder(t *testing.T) {
	order, err := ParseAuxOrder("AuxInfo=1/1/N:4,1,2,3/E:(1,2)(3,4)/rA:4nCCCC")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 1, 2}, order)
	order, err = ParseAuxOrder("AuxInfo=1/0/N:1;2,3")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order)
	_, err = ParseAuxOrder("AuxInfo=1/0/E:1")
	assert.Error(t, err)
	_, err = ParseAuxOrder("AuxInfo=1/0/N:0,1")
	assert.Error(t, err)
}
