/*
 * class.go, part of gorxn.
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
	"strconv"
	"strings"

	chem "github.com/rmera/gorxn"
)

//Class is the kind of elementary reaction a TS graph describes.
type Class int

const (
	Trivial Class = iota
	HydrogenMigration
	BetaScission
	HomolyticScission
	RingFormingScission
	Elimination
	HydrogenAbstraction
	Addition
	Insertion
	DoubleInsertion
	Substitution
	Unclassified
	nclasses
)

//ErrReversalUndefined is returned when reversing a reaction whose class has no reverse.
var ErrReversalUndefined = errors.New("reversal undefined")

type classInfo struct {
	name        string
	reverse     Class //nclasses if there is none
	bimolecular bool
	spin        bool //requires a spin designation
	wells       bool //has van der Waals wells on the entrance or exit channel
}

var classes = [...]classInfo{
	Trivial:             {"trivial", Trivial, false, false, false},
	HydrogenMigration:   {"hydrogen migration", HydrogenMigration, false, false, false},
	BetaScission:        {"beta scission", Addition, false, false, false},
	HomolyticScission:   {"homolytic scission", nclasses, false, false, false},
	RingFormingScission: {"ring forming scission", nclasses, false, false, false},
	Elimination:         {"elimination", Insertion, false, false, false},
	HydrogenAbstraction: {"hydrogen abstraction", HydrogenAbstraction, true, true, true},
	Addition:            {"addition", BetaScission, true, true, false},
	Insertion:           {"insertion", Elimination, true, false, false},
	DoubleInsertion:     {"double insertion", nclasses, true, false, false},
	Substitution:        {"substitution", Substitution, true, false, true},
	Unclassified:        {"unclassified", nclasses, false, false, false},
}

func init() {
	if err := checkClasses(); err != nil {
		panic(err)
	}
}

//checkClasses verifies that every class has a name and that the reverse
//table is an involution.
func checkClasses() error {
	if len(classes) != int(nclasses) {
		return chem.NewError(nil, "checkClasses", "reac: class table has %d entries, want %d", len(classes), nclasses)
	}
	seen := make(map[string]bool, len(classes))
	for c, info := range classes {
		if info.name == "" || seen[info.name] {
			return chem.NewError(nil, "checkClasses", "reac: class %d has a missing or repeated name", c)
		}
		seen[info.name] = true
		if info.reverse == nclasses {
			continue
		}
		if classes[info.reverse].reverse != Class(c) {
			return chem.NewError(nil, "checkClasses", "reac: reverse of %q is not an involution", info.name)
		}
	}
	return nil
}

func (c Class) valid() bool { return c >= 0 && c < nclasses }

//String returns the name used in the reaction text format.
func (c Class) String() string {
	if !c.valid() {
		return "Class(" + strconv.Itoa(int(c)) + ")"
	}
	return classes[c].name
}

//Reverse returns the class of the reverse reaction.
func (c Class) Reverse() (Class, error) {
	if !c.valid() || classes[c].reverse == nclasses {
		return Unclassified, chem.NewError(ErrReversalUndefined, "Reverse", "%s", c)
	}
	return classes[c].reverse, nil
}

//Bimolecular is true for the classes with two reactants.
func (c Class) Bimolecular() bool { return c.valid() && classes[c].bimolecular }

//RequiresSpinDesignation is true for the classes whose rate depends on which
//spin surface the reaction follows.
func (c Class) RequiresSpinDesignation() bool { return c.valid() && classes[c].spin }

//RequiresWellDescription is true for the classes that are properly described
//only with the van der Waals wells of their entrance or exit channels.
func (c Class) RequiresWellDescription() bool { return c.valid() && classes[c].wells }

//ParseClass returns the class with the given name. Underscores are read as spaces.
func ParseClass(name string) (Class, error) {
	for c, info := range classes {
		if info.name == name || info.name == strings.ReplaceAll(name, "_", " ") {
			return Class(c), nil
		}
	}
	return Unclassified, chem.NewError(nil, "ParseClass", "reac: unknown reaction class %q", name)
}

//Spin is the spin surface of a reaction.
type Spin int

const (
	UnspecifiedSpin Spin = iota
	LowSpin
	HighSpin
)

func (s Spin) String() string {
	switch s {
	case LowSpin:
		return "low-spin"
	case HighSpin:
		return "high-spin"
	}
	return "unspecified"
}
