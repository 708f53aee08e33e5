/*
 * files.go, part of gorxn.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/gorxn/v3"
)

//XYZRead reads a geometry in xyz format from r. Coordinates are in Angstrom.
//It returns the geometry and the comment line.
func XYZRead(r io.Reader) (*Geometry, string, error) {
	xyz := bufio.NewReader(r)
	line, err := xyz.ReadString('\n')
	if err != nil && line == "" {
		return nil, "", structuralError("XYZRead", "Ill formatted XYZ file: empty")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms < 0 {
		return nil, "", structuralError("XYZRead", "Ill formatted XYZ file: bad atom count %q", strings.TrimSpace(line))
	}
	comment, err := xyz.ReadString('\n')
	if err != nil && natoms > 0 {
		return nil, "", structuralError("XYZRead", "Ill formatted XYZ file: missing comment line")
	}
	symbols := make([]string, natoms)
	coords := make([]float64, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err = xyz.ReadString('\n')
		if err != nil && (err != io.EOF || strings.TrimSpace(line) == "") {
			return nil, "", structuralError("XYZRead", "expected %d atoms, found %d", natoms, i)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, "", structuralError("XYZRead", "Line number %d ill formed", i+3)
		}
		symbols[i] = fields[0]
		for j := 0; j < 3; j++ {
			coords[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, "", structuralError("XYZRead", "Line number %d: %s", i+3, err.Error())
			}
		}
	}
	c, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, "", structuralError("XYZRead", "%s", err.Error())
	}
	G, err := NewGeometry(symbols, c)
	if err != nil {
		return nil, "", errDecorate(err, "XYZRead")
	}
	return G, strings.TrimRight(comment, "\r\n"), nil
}

//XYZFileRead reads an xyz file.
func XYZFileRead(xyzname string) (*Geometry, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, err
	}
	defer xyzfile.Close()
	G, _, err := XYZRead(xyzfile)
	return G, errDecorate(err, "XYZFileRead")
}

//XYZWrite writes G in xyz format to w, with the given comment line.
func XYZWrite(w io.Writer, G Geometer, comment string) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "%-4d\n", G.Len())
	fmt.Fprintf(out, "%s\n", strings.ReplaceAll(comment, "\n", " "))
	for i := 0; i < G.Len(); i++ {
		c := G.Position(i)
		_, err := fmt.Fprintf(out, "%-2s  %12.6f%12.6f%12.6f \n", G.Symbol(i), c[0], c[1], c[2])
		if err != nil {
			return err
		}
	}
	return out.Flush()
}

//XYZFileWrite writes G to an xyz file with name xyzname, which is
//created or overwritten.
func XYZFileWrite(xyzname string, G Geometer, comment string) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return err
	}
	if err = XYZWrite(out, G, comment); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
