/*
 * classify.go, part of gorxn.
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

import chem "github.com/rmera/gorxn"

//classify assigns a class to a stereo-free TS from its bond changes and the
//number of reactants and products.
func classify(ts *chem.Graph, rkeys, pkeys [][]int) Class {
	nr, np := len(rkeys), len(pkeys)
	fk := chem.FormingKeys(ts)
	bk := chem.BreakingKeys(ts)
	nf, nb := len(fk), len(bk)
	if nf == 0 && nb == 0 {
		return Trivial
	}
	if nf == 1 && nb == 1 {
		if a, ok := sharedAtom(fk[0], bk[0]); ok {
			at, _ := ts.Atom(a)
			isH := at.Symbol == "H"
			switch {
			case isH && nr == 1 && np == 1:
				return HydrogenMigration
			case isH && nr == 2 && np == 2:
				return HydrogenAbstraction
			case !isH && nr == 2 && np == 2:
				return Substitution
			}
		}
		if nr == 1 && np == 2 && closesRing(ts, fk[0]) {
			return RingFormingScission
		}
	}
	if nf == 0 && nb == 1 {
		switch {
		case nr == 1 && np == 2:
			s := ts.WithoutStereo()
			if chem.UnpairedElectrons(chem.ProductGraph(s))-chem.UnpairedElectrons(chem.ReactantGraph(s)) == 2 {
				return HomolyticScission
			}
			return BetaScission
		case nr == 1 && np == 1:
			return BetaScission
		}
	}
	switch {
	case nf == 1 && nb == 0 && np == 1 && (nr == 1 || nr == 2):
		return Addition
	case nr == 1 && np == 2 && nf == 1 && nb == 2:
		return Elimination
	case nr == 2 && np == 1 && nf == 2 && nb == 1:
		return Insertion
	case nr == 2 && np == 1 && nf == 2 && nb == 2:
		return DoubleInsertion
	}
	return Unclassified
}

func sharedAtom(a, b chem.BondKey) (int, bool) {
	for _, k := range a {
		if b.Has(k) {
			return k, true
		}
	}
	return 0, false
}

//closesRing is true if the ends of the forming bond f are still connected in the
//product graph once f itself is left out.
func closesRing(ts *chem.Graph, f chem.BondKey) bool {
	p := chem.ProductGraph(ts.WithoutStereo())
	return p.Connected(f[0], f[1], f)
}
