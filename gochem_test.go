/*
 * gochem_test.go, part of gorxn.
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
	"bytes"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"
)

func hcn(Te *testing.T) *Geometry {
	G, err := GeometryFromSlice([]string{"H", "C", "N"}, []float64{0, 0, -1.07, 0, 0, 0, 0, 0, 1.16}, 1)
	if err != nil {
		Te.Fatal(err)
	}
	return G
}

func TestXYZIO(Te *testing.T) {
	G := hcn(Te)
	var buf bytes.Buffer
	if err := XYZWrite(&buf, G, "hydrogen cyanide"); err != nil {
		Te.Fatal(err)
	}
	fmt.Print(buf.String())
	G2, comment, err := XYZRead(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if comment != "hydrogen cyanide" {
		Te.Errorf("wrong comment %q", comment)
	}
	if G2.Len() != 3 {
		Te.Fatalf("read %d atoms, expected 3", G2.Len())
	}
	for i := 0; i < G.Len(); i++ {
		if G.Symbol(i) != G2.Symbol(i) {
			Te.Errorf("atom %d: symbol %s, expected %s", i, G2.Symbol(i), G.Symbol(i))
		}
		p, p2 := G.Position(i), G2.Position(i)
		for j := range p {
			if math.Abs(p[j]-p2[j]) > 1e-6 {
				Te.Errorf("atom %d: position %v, expected %v", i, p2, p)
			}
		}
	}
	name := filepath.Join(Te.TempDir(), "hcn.xyz")
	if err := XYZFileWrite(name, G2, ""); err != nil {
		Te.Fatal(err)
	}
	G3, err := XYZFileRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	if G3.Len() != 3 || G3.Distance(1, 2) < 1.159 || G3.Distance(1, 2) > 1.161 {
		Te.Errorf("file round trip changed the geometry: %v", G3.Coords())
	}
}

func TestXYZErrors(Te *testing.T) {
	bad := []string{
		"",
		"three\n\nH 0 0 0\n",
		"2\ncomment\nH 0 0 0\n",
		"1\ncomment\nH 0 0\n",
		"1\ncomment\nH 0 zero 0\n",
	}
	for _, s := range bad {
		_, _, err := XYZRead(bytes.NewBufferString(s))
		if err == nil {
			Te.Errorf("no error for %q", s)
			continue
		}
		if !errors.Is(err, ErrStructural) {
			Te.Errorf("error for %q is not structural: %v", s, err)
		}
	}
	if _, err := XYZFileRead("test/does_not_exist.xyz"); err == nil {
		Te.Error("no error for a missing file")
	}
}

func TestGraphFromGeometry(Te *testing.T) {
	g, err := GraphFromGeometry(hcn(Te), nil)
	if err != nil {
		Te.Fatal(err)
	}
	if g.NBonds() != 2 {
		Te.Errorf("%d bonds, expected 2\n%s", g.NBonds(), g)
	}
	if _, ok := g.Bond(0, 2); ok {
		Te.Error("H and N should not be bonded")
	}
	lin := LinearAtoms(g, hcn(Te), 5)
	if len(lin) != 1 || lin[0] != 1 {
		Te.Errorf("linear atoms %v, expected [1]", lin)
	}
	//a bent H-C-N is not linear
	bent, _ := GeometryFromSlice([]string{"H", "C", "N"}, []float64{0, 1.07, 0, 0, 0, 0, 0, 0, 1.16}, 1)
	if lin := LinearAtoms(g, bent, 5); len(lin) != 0 {
		Te.Errorf("linear atoms %v in a bent molecule", lin)
	}
	unknown, _ := GeometryFromSlice([]string{"C", "Xx"}, []float64{0, 0, 0, 0, 0, 1.5}, 1)
	if _, err := GraphFromGeometry(unknown, nil); !errors.Is(err, ErrStructural) {
		Te.Errorf("expected a structural error, got %v", err)
	}
	dummy, _ := GeometryFromSlice([]string{"C", "X"}, []float64{0, 0, 0, 0, 0, 1.0}, 1)
	g, err = GraphFromGeometry(dummy, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if g.NBonds() != 0 {
		Te.Error("dummy atoms must not be bonded")
	}
}

//H2 with two oxygens on its axis. Only the H-O pair at 1.76 A is a candidate
//forming bond.
func TestFormingBond(Te *testing.T) {
	G, err := GeometryFromSlice([]string{"H", "H", "O", "O"}, []float64{0, 0, 0, 0.74, 0, 0, 2.5, 0, 0, 6.0, 0, 0}, 1)
	if err != nil {
		Te.Fatal(err)
	}
	g, err := GraphFromGeometry(G, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if g.NBonds() != 1 {
		Te.Fatalf("%d bonds, expected 1\n%s", g.NBonds(), g)
	}
	c := ClosestUnbondedAtoms(g, G, 1, 0.2, true)
	if len(c) != 1 || math.Abs(c[2]-1.76) > 1e-9 {
		Te.Errorf("closest unbonded atoms of 1: %v", c)
	}
	if !CouldBeFormingBond(g, G, 1, 2, 0.2) {
		Te.Error("1-2 should be a forming bond candidate")
	}
	if CouldBeFormingBond(g, G, 0, 2, 0.2) {
		Te.Error("0-2 should not be a forming bond candidate")
	}
}

//The radical reactant of a ring-opening beta scission has two stereocenters.
func TestStereoFromGeometry(Te *testing.T) {
	G, err := XYZFileRead("test/c5h7o_r.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	g, err := StereoGraphFromGeometry(G, nil)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(g)
	f := g.Formula()
	if f["C"] != 5 || f["H"] != 7 || f["O"] != 1 {
		Te.Errorf("wrong formula %v", f)
	}
	for k, want := range map[int]Parity{1: ParityTrue, 6: ParityFalse} {
		a, _ := g.Atom(k)
		if a.Parity != want {
			Te.Errorf("atom %d: parity %s, expected %s", k, a.Parity, want)
		}
	}
	if err := CheckStereo(g); err != nil {
		Te.Error(err)
	}
	inv := Invert(g)
	if a, _ := inv.Atom(1); a.Parity != ParityFalse {
		Te.Errorf("inverted atom 1 has parity %s", a.Parity)
	}

	G, err = XYZFileRead("test/c5h7o_p1.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	p, err := StereoGraphFromGeometry(G, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if a, _ := p.Atom(1); a.Parity != ParityFalse {
		Te.Errorf("product atom 1: parity %s, expected false", a.Parity)
	}
	//folding the hydrogens keeps the configuration
	im := Implicit(g)
	if !CanonicalCode(im, true).Equal(CanonicalCode(g, true)) {
		Te.Error("implicit hydrogens changed the stereo code")
	}
}
