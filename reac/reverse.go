/*
 * reverse.go, part of gorxn.
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

//Reverse returns the reverse of r: forming and breaking bonds swap, reactants
//and products swap, and the class is mapped to its reverse. It returns an error
//wrapping ErrReversalUndefined for classes without a reverse.
func Reverse(r *Reaction) (*Reaction, error) {
	cls, err := r.Class.Reverse()
	if err != nil {
		return nil, errDecorate(err, "Reverse")
	}
	rev := &Reaction{
		Class:        cls,
		TS:           chem.ReverseTS(r.TS),
		ReactantKeys: copyGroups(r.ProductKeys),
		ProductKeys:  copyGroups(r.ReactantKeys),
	}
	if r.Structures != nil {
		rev.Structures = r.Structures.reversed()
	}
	rev.setFlags()
	if r.Spin == HighSpin && rev.Spin == LowSpin {
		rev.Spin = HighSpin
	}
	return rev, nil
}
