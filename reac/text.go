/*
 * text.go, part of gorxn.
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
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	chem "github.com/rmera/gorxn"
)

type textAtom struct {
	Symbol    string `yaml:"symbol"`
	Hydrogens int    `yaml:"implicit_hydrogen_valence"`
	Charge    int    `yaml:"charge"`
	Parity    *bool  `yaml:"stereo_parity"`
}

type textBond struct {
	Order  float64 `yaml:"order"`
	Parity *bool   `yaml:"stereo_parity"`
}

type textReaction struct {
	Class     string              `yaml:"reaction class"`
	FwdAtoms  map[int]textAtom    `yaml:"forward TS atoms"`
	FwdBonds  map[string]textBond `yaml:"forward TS bonds"`
	Reactants [][]int             `yaml:"reactants keys"`
	BwdAtoms  map[int]textAtom    `yaml:"backward TS atoms"`
	BwdBonds  map[string]textBond `yaml:"backward TS bonds"`
	Products  [][]int             `yaml:"products keys"`
}

//String returns the text form of r. Keys are 1-based. The backward TS is the
//reversed TS numbered by position in the concatenated product groups.
func (r *Reaction) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "reaction class: %s\n", r.Class)
	writeGraph(&b, "forward TS", r.TS)
	b.WriteString("reactants keys:\n")
	for _, g := range r.ReactantKeys {
		writeGroup(&b, g)
	}
	pos := make(map[int]int, r.TS.Len())
	var pgroups [][]int
	for _, g := range r.ProductKeys {
		grp := make([]int, len(g))
		for j, k := range g {
			grp[j] = len(pos)
			pos[k] = len(pos)
		}
		pgroups = append(pgroups, grp)
	}
	bwd, err := chem.ReverseTS(r.TS).Relabel(pos)
	if err != nil {
		panic(err.Error()) //an invalid reaction
	}
	writeGraph(&b, "backward TS", bwd)
	b.WriteString("products keys:\n")
	for _, g := range pgroups {
		writeGroup(&b, g)
	}
	return b.String()
}

func writeGraph(b *strings.Builder, name string, g *chem.Graph) {
	fmt.Fprintf(b, "%s atoms:\n", name)
	for _, k := range g.Keys() {
		a, _ := g.Atom(k)
		charge := ""
		if a.Charge != 0 {
			charge = fmt.Sprintf(" charge: %d,", a.Charge)
		}
		fmt.Fprintf(b, "    %d: {symbol: %s, implicit_hydrogen_valence: %d,%s stereo_parity: %s}\n", k+1, a.Symbol, a.Hydrogens, charge, a.Parity)
	}
	fmt.Fprintf(b, "%s bonds:\n", name)
	for _, k := range g.BondKeys() {
		bo, _ := g.Bond(k[0], k[1])
		fmt.Fprintf(b, "    %d-%d: {order: %s, stereo_parity: %s}\n", k[0]+1, k[1]+1, strconv.FormatFloat(bo.Order, 'g', -1, 64), bo.Parity)
	}
}

func writeGroup(b *strings.Builder, g []int) {
	s := make([]string, len(g))
	for i, k := range g {
		s[i] = strconv.Itoa(k + 1)
	}
	fmt.Fprintf(b, "- [%s]\n", strings.Join(s, ", "))
}

//FromString parses a reaction written by String, or by the older programs that
//used the same layout. Parities stored on atoms or bonds that are not stereo sites
//are dropped with a warning. Parities found only in the backward TS are carried
//over to the forward TS. The spin and the other flags are computed from the graph.
func FromString(s string) (*Reaction, error) {
	var t textReaction
	if err := yaml.Unmarshal([]byte(dedent(s)), &t); err != nil {
		return nil, chem.NewError(nil, "FromString", "%s", err.Error())
	}
	cls, err := ParseClass(t.Class)
	if err != nil {
		return nil, errDecorate(err, "FromString")
	}
	fwd, err := textGraph(t.FwdAtoms, t.FwdBonds)
	if err != nil {
		return nil, errDecorate(err, "FromString")
	}
	bwd, err := textGraph(t.BwdAtoms, t.BwdBonds)
	if err != nil {
		return nil, errDecorate(err, "FromString")
	}
	if n, m := fwd.Len(), bwd.Len(); n != m {
		return nil, chem.NewError(chem.ErrStructural, "FromString", "forward TS has %d atoms, backward TS has %d", n, m)
	}
	fwd, nf := chem.DropInvalidStereo(fwd)
	bwd, nb := chem.DropInvalidStereo(bwd)
	if nf+nb > 0 {
		logger.Warn("parsed reaction had parities on non-stereo sites", zap.Int("forward", nf), zap.Int("backward", nb))
	}
	rv := chem.ReverseTS(fwd)
	iso, ok := chem.Isomorphism(bwd, rv, false)
	if !ok {
		return nil, chem.NewError(chem.ErrStructural, "FromString", "backward TS is not the reverse of the forward TS")
	}
	merged := mergeParities(rv, bwd, iso)
	ts := chem.ReverseTS(merged)
	if siso, ok := chem.Isomorphism(bwd, merged, true); ok {
		iso = siso
	}
	rkeys := shiftGroups(t.Reactants, -1)
	var pkeys [][]int
	for _, g := range shiftGroups(t.Products, -1) {
		grp := make([]int, len(g))
		for j, k := range g {
			m, ok := iso[k]
			if !ok {
				return nil, chem.NewError(chem.ErrStructural, "FromString", "product key %d is not in the backward TS", k+1)
			}
			grp[j] = m
		}
		pkeys = append(pkeys, grp)
	}
	r, err := New(cls, ts, rkeys, pkeys)
	return r, errDecorate(err, "FromString")
}

//mergeParities copies to dst the parities of src that dst lacks. iso maps the keys
//of src to those of dst.
func mergeParities(dst, src *chem.Graph, iso map[int]int) *chem.Graph {
	apar := make(map[int]chem.Parity)
	for _, k := range src.Keys() {
		a, _ := src.Atom(k)
		d, _ := dst.Atom(iso[k])
		if a.Parity.IsSet() && !d.Parity.IsSet() {
			apar[iso[k]] = a.Parity
		}
	}
	bpar := make(map[chem.BondKey]chem.Parity)
	for _, k := range src.BondKeys() {
		b, _ := src.Bond(k[0], k[1])
		dk := chem.NewBondKey(iso[k[0]], iso[k[1]])
		d, _ := dst.Bond(dk[0], dk[1])
		if b.Parity.IsSet() && !d.Parity.IsSet() {
			bpar[dk] = b.Parity
		}
	}
	return dst.WithAtomParities(apar).WithBondParities(bpar)
}

//textGraph builds a graph with 0-based keys from the 1-based text blocks.
func textGraph(atoms map[int]textAtom, bonds map[string]textBond) (*chem.Graph, error) {
	at := make(map[int]chem.Atom, len(atoms))
	for k, a := range atoms {
		at[k-1] = chem.Atom{Symbol: a.Symbol, Hydrogens: a.Hydrogens, Charge: a.Charge, Parity: textParity(a.Parity)}
	}
	bo := make(map[chem.BondKey]chem.Bond, len(bonds))
	for s, b := range bonds {
		k, err := parseBondKey(s)
		if err != nil {
			return nil, err
		}
		bo[k] = chem.Bond{Order: b.Order, Parity: textParity(b.Parity)}
	}
	return chem.NewGraph(at, bo)
}

func textParity(p *bool) chem.Parity {
	if p == nil {
		return chem.NoParity
	}
	return chem.ParityOf(*p)
}

func parseBondKey(s string) (chem.BondKey, error) {
	f := strings.Split(strings.TrimSpace(s), "-")
	if len(f) != 2 {
		return chem.BondKey{}, chem.NewError(chem.ErrStructural, "parseBondKey", "bad bond key %q", s)
	}
	a, err1 := strconv.Atoi(f[0])
	b, err2 := strconv.Atoi(f[1])
	if err1 != nil || err2 != nil {
		return chem.BondKey{}, chem.NewError(chem.ErrStructural, "parseBondKey", "bad bond key %q", s)
	}
	return chem.NewBondKey(a-1, b-1), nil
}

func shiftGroups(g [][]int, d int) [][]int {
	r := make([][]int, len(g))
	for i, v := range g {
		r[i] = make([]int, len(v))
		for j, k := range v {
			r[i][j] = k + d
		}
	}
	return r
}

//dedent removes the indentation common to all non-blank lines.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	ind := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if ind < 0 || n < ind {
			ind = n
		}
	}
	if ind <= 0 {
		return s
	}
	for i, l := range lines {
		if len(l) >= ind {
			lines[i] = l[ind:]
		} else {
			lines[i] = strings.TrimLeft(l, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
