/*
 * doc.go, part of gorxn.
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

//Package reac finds and manipulates elementary reactions.
//
//A reaction is a TS graph, where forming and breaking bonds have the orders
//chem.FormingOrder and chem.BreakingOrder, together with the TS keys of the atoms
//of each reactant and each product. Find maps reactant graphs onto product graphs
//with the fewest bond changes and classifies the result. ExpandStereo enumerates
//the stereo realizations of a reaction, and Reverse turns it around. Reactions
//are written and read in a YAML-based text format by String and FromString.
//
//Reactions are values: no function in this package modifies its arguments.
package reac
