/*
 * smiles.go, part of gorxn.
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

//Package smiles reads a subset of SMILES into molecular graphs. It understands
//organic-subset and bracket atoms, charges and hydrogen counts in brackets,
//branches, ring closures, the bond symbols - = # : and aromatic lowercase atoms,
//which give 1.5 bonds. Directional bonds and chirality marks are skipped, so the
//graphs carry no stereo. Atom keys follow the order of the atoms in the string.
package smiles

import (
	"fmt"
	"math"
	"strconv"
	"unicode"

	chem "github.com/rmera/gorxn"
)

var organic = map[string]bool{"B": true, "C": true, "N": true, "O": true, "P": true, "S": true, "F": true, "Cl": true, "Br": true, "I": true}

var aromatic = map[string]string{"b": "B", "c": "C", "n": "N", "o": "O", "p": "P", "s": "S"}

//Error is returned for strings that cannot be read.
type Error struct {
	Pos int
	Msg string
}

func (e Error) Error() string {
	return fmt.Sprintf("smiles: position %d: %s", e.Pos, e.Msg)
}

type ring struct {
	atom  int
	order float64
}

type parser struct {
	s      string
	i      int
	atoms  map[int]chem.Atom
	arom   map[int]bool
	implic map[int]bool //hydrogen count to be derived from the valence
	bonds  map[chem.BondKey]chem.Bond
	stack  []int
	prev   int
	order  float64 //0 means "not given"
	rings  map[int]ring
	next   int
}

//Parse reads s and returns its graph.
func Parse(s string) (*chem.Graph, error) {
	p := &parser{s: s, atoms: map[int]chem.Atom{}, arom: map[int]bool{}, implic: map[int]bool{},
		bonds: map[chem.BondKey]chem.Bond{}, prev: -1, rings: map[int]ring{}}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.graph()
}

//MustParse is like Parse but panics on error. It is meant for literals in tests.
func MustParse(s string) *chem.Graph {
	g, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return g
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return Error{p.i, fmt.Sprintf(format, args...)}
}

func (p *parser) parse() error {
	for p.i < len(p.s) {
		c := p.s[p.i]
		switch {
		case c == '(':
			if p.prev < 0 {
				return p.errorf("branch without an atom")
			}
			p.stack = append(p.stack, p.prev)
			p.i++
		case c == ')':
			if len(p.stack) == 0 {
				return p.errorf("unbalanced ')'")
			}
			p.prev = p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			p.i++
		case c == '.':
			p.prev = -1
			p.i++
		case c == '-' || c == '=' || c == '#' || c == ':':
			p.order = map[byte]float64{'-': 1, '=': 2, '#': 3, ':': chem.AromaticOrder}[c]
			p.i++
		case c == '/' || c == '\\':
			p.i++
		case c == '%' || unicode.IsDigit(rune(c)):
			if err := p.ringClosure(); err != nil {
				return err
			}
		case c == '[':
			if err := p.bracket(); err != nil {
				return err
			}
		default:
			if err := p.organicAtom(); err != nil {
				return err
			}
		}
	}
	if len(p.rings) > 0 {
		return p.errorf("unclosed ring")
	}
	if len(p.stack) > 0 {
		return p.errorf("unclosed branch")
	}
	return nil
}

func (p *parser) bondOrder(a, b int) float64 {
	if p.order != 0 {
		return p.order
	}
	if p.arom[a] && p.arom[b] {
		return chem.AromaticOrder
	}
	return 1
}

func (p *parser) addAtom(a chem.Atom, arom, implicit bool) {
	k := p.next
	p.next++
	p.atoms[k] = a
	p.arom[k] = arom
	p.implic[k] = implicit
	if p.prev >= 0 {
		p.bonds[chem.NewBondKey(p.prev, k)] = chem.Bond{Order: p.bondOrder(p.prev, k)}
	}
	p.order = 0
	p.prev = k
}

func (p *parser) organicAtom() error {
	if p.i+1 < len(p.s) {
		if two := p.s[p.i : p.i+2]; two == "Cl" || two == "Br" {
			p.i += 2
			p.addAtom(chem.Atom{Symbol: two}, false, true)
			return nil
		}
	}
	c := string(p.s[p.i])
	if organic[c] {
		p.i++
		p.addAtom(chem.Atom{Symbol: c}, false, true)
		return nil
	}
	if sym, ok := aromatic[c]; ok {
		p.i++
		p.addAtom(chem.Atom{Symbol: sym}, true, true)
		return nil
	}
	return p.errorf("unexpected character %q", c)
}

func (p *parser) bracket() error {
	end := p.i + 1
	for end < len(p.s) && p.s[end] != ']' {
		end++
	}
	if end == len(p.s) {
		return p.errorf("unclosed bracket")
	}
	body := p.s[p.i+1 : end]
	j := 0
	for j < len(body) && unicode.IsDigit(rune(body[j])) { //isotope
		j++
	}
	if j == len(body) {
		return p.errorf("bracket without an element")
	}
	var sym string
	arom := false
	switch {
	case unicode.IsUpper(rune(body[j])):
		sym = body[j : j+1]
		if j+1 < len(body) && unicode.IsLower(rune(body[j+1])) {
			sym = body[j : j+2]
		}
	default:
		s, ok := aromatic[body[j:j+1]]
		if !ok {
			return p.errorf("bad element in %q", body)
		}
		sym, arom = s, true
	}
	j += len(sym)
	for j < len(body) && body[j] == '@' {
		j++
	}
	a := chem.Atom{Symbol: sym}
	if j < len(body) && body[j] == 'H' {
		j++
		a.Hydrogens = 1
		if j < len(body) && unicode.IsDigit(rune(body[j])) {
			a.Hydrogens = int(body[j] - '0')
			j++
		}
	}
	if j < len(body) && (body[j] == '+' || body[j] == '-') {
		sign := 1
		if body[j] == '-' {
			sign = -1
		}
		ch := body[j]
		j++
		n := 1
		switch {
		case j < len(body) && unicode.IsDigit(rune(body[j])):
			n = int(body[j] - '0')
			j++
		default:
			for j < len(body) && body[j] == ch {
				n++
				j++
			}
		}
		a.Charge = sign * n
	}
	if j != len(body) {
		return p.errorf("cannot read bracket atom %q", body)
	}
	p.i = end + 1
	p.addAtom(a, arom, false)
	return nil
}

func (p *parser) ringClosure() error {
	if p.prev < 0 {
		return p.errorf("ring closure without an atom")
	}
	var d int
	if p.s[p.i] == '%' {
		if p.i+2 >= len(p.s) {
			return p.errorf("bad ring number")
		}
		n, err := strconv.Atoi(p.s[p.i+1 : p.i+3])
		if err != nil {
			return p.errorf("bad ring number")
		}
		d = n
		p.i += 3
	} else {
		d = int(p.s[p.i] - '0')
		p.i++
	}
	if r, ok := p.rings[d]; ok {
		delete(p.rings, d)
		if r.atom == p.prev {
			return p.errorf("ring %d closes on itself", d)
		}
		o := math.Max(p.order, r.order)
		if o == 0 {
			o = p.bondOrder(r.atom, p.prev)
		}
		p.bonds[chem.NewBondKey(r.atom, p.prev)] = chem.Bond{Order: o}
	} else {
		p.rings[d] = ring{p.prev, p.order}
	}
	p.order = 0
	return nil
}

//graph fills in the hydrogen counts of the organic-subset atoms from their valences.
func (p *parser) graph() (*chem.Graph, error) {
	for k, a := range p.atoms {
		if !p.implic[k] {
			continue
		}
		used := 0.0
		for bk, b := range p.bonds {
			if bk.Has(k) {
				if b.Order == chem.AromaticOrder {
					used++
				} else {
					used += b.Order
				}
			}
		}
		if p.arom[k] {
			used++
		}
		h := chem.Valence(a.Symbol, 0) - int(math.Round(used))
		if h < 0 {
			h = 0
		}
		a.Hydrogens = h
		p.atoms[k] = a
	}
	return chem.NewGraph(p.atoms, p.bonds)
}
