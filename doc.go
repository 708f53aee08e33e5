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

/*Package chem is the core package of gorxn. It provides molecular graphs and the
chemistry needed to compare them, plus a small geometry layer for reading graphs
from cartesian coordinates.



	**gorxn chem Capabilities**


    Immutable molecular graphs (Graph) with implicit hydrogens, charges and
	stereo parities on atoms and double bonds. Every edit returns a new graph.

    Transition-state graphs, where forming and breaking bonds are tagged by their
	orders. The reactant and product sides, and the reversed TS, can be projected
	out of a TS graph with their stereo converted to the new frame.

    Canonical ranking and canonical codes, with or without stereo, by refinement
	and individualization. Codes give graph isomorphism, symmetry classes and the
	priorities used to define parities.

    Stereo site perception, parities from coordinates, and conversion between the
	canonical frame and the local (key-ordered) frame used by external encoders.

    Kekulization, dominant resonances, radical sites and unpaired electrons.

    Explicit/implicit hydrogen conversion.

    Bond perception from geometries (covalent radii plus a tolerance), linear
	atoms, candidate forming bonds, and reading/writing XYZ files.

    Connected components, paths and ring sizes, through a gonum graph view
	of the molecule (Topology).


Coordinates are kept in v3.Matrix values, where each row is one point in space.

Reactions are handled in the reac package, identifiers in chemid and
z-matrix conversions in zmatconv.*/
package chem
