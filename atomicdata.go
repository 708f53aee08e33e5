/*
 * atomicdata.go, part of gorxn.
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

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Cr": 51.996,
	"Si": 28.08,
	"Be": 9.012,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
	"B":  10.81,
	"X":  0.0,
}

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
//Note that just common "bio-elements" are present
var symbolCovrad = map[string]float64{
	"H":  0.4,  // 0.31 I altered this one. Since H always has only one bond, it doesn't matter if I set a longer radius, the extra bonds will get eliminated later.
	"C":  0.76, //the sp3 radius
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Se": 1.2,
	"K":  2.03,
	"Ca": 1.76,
	"Mg": 1.41,
	"Cl": 1.02,
	"Na": 1.66,
	"Cu": 1.32,
	"Zn": 1.22,
	"Co": 1.5,  // hs
	"Fe": 1.52, //hs
	"Mn": 1.61, //hs
	"Cr": 1.39,
	"Si": 1.11,
	"Be": 0.96,
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
	"B":  0.84,
	"X":  0.0,
}

//Atomic numbers. "X" is the dummy atom used in z-matrix frames.
var symbolZ = map[string]int{
	"X":  0,
	"H":  1,
	"He": 2,
	"Li": 3,
	"Be": 4,
	"B":  5,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Ne": 10,
	"Na": 11,
	"Mg": 12,
	"Al": 13,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"Ar": 18,
	"K":  19,
	"Ca": 20,
	"Cr": 24,
	"Mn": 25,
	"Fe": 26,
	"Co": 27,
	"Cu": 29,
	"Zn": 30,
	"Se": 34,
	"Br": 35,
	"I":  53,
}

//Neutral valences used to saturate atoms with bonds. A symbol
//missing from this map is never considered unsaturated.
var symbolValence = map[string]int{
	"H":  1,
	"B":  3,
	"C":  4,
	"N":  3,
	"O":  2,
	"F":  1,
	"Si": 4,
	"P":  3,
	"S":  2,
	"Cl": 1,
	"Se": 2,
	"Br": 1,
	"I":  1,
}

//AtomicNumber returns the atomic number for the symbol, or -1 if the symbol is unknown.
func AtomicNumber(symbol string) int {
	z, ok := symbolZ[symbol]
	if !ok {
		return -1
	}
	return z
}

//Valence returns the number of bonds an atom with the given symbol and
//formal charge forms when saturated. Electron-poor elements (H, B, C, Si)
//lose one bond per unit of charge of either sign, the others gain one bond
//per unit of positive charge.
func Valence(symbol string, charge int) int {
	v, ok := symbolValence[symbol]
	if !ok {
		return 0
	}
	switch symbol {
	case "H", "B", "C", "Si":
		if charge < 0 {
			charge = -charge
		}
		v -= charge
	default:
		v += charge
	}
	if v < 0 {
		return 0
	}
	return v
}

//maxBonds is the number of neighbors an atom can keep after distance-based
//perception. 0 means that the atom is not checked.
func maxBonds(symbol string) int {
	switch symbol {
	case "P", "S", "Se": //these can be hypervalent
		return 0
	}
	return symbolValence[symbol]
}
