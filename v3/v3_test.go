/*
 * v3_test.go, part of gorxn.
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

package v3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeo(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Error(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("expected 3 vectors, got %d", A.NVecs())
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Error("a view should share storage with its matrix")
	}
	_, err = NewMatrix([]float64{1, 2})
	if err == nil {
		Te.Error("a slice not divisible by 3 should be rejected")
	}
	if _, ok := err.(Error); !ok {
		Te.Error("expected a v3 error")
	}
}

func TestSomeVecs(t *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	require.NoError(t, err)
	B := Zeros(3)
	B.SomeVecs(A, []int{1, 3, 5})
	assert.Equal(t, []float64{4, 5, 6}, B.RawRowView(0))
	assert.Equal(t, []float64{16, 17, 18}, B.RawRowView(2))
	assert.Panics(t, func() { B.SomeVecs(A, []int{1, 6, 2}) })
	C := Zeros(2)
	assert.Panics(t, func() { C.SomeVecs(A, []int{1, 3, 5}) })
}

func TestVecArithmetic(t *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	row, err := NewMatrix([]float64{10, 20, 30})
	require.NoError(t, err)
	B := Zeros(2)
	B.AddVec(A, row)
	assert.Equal(t, []float64{14, 25, 36}, B.RawRowView(1))
	//in place, receiver and operand the same
	B.SubVec(B, row)
	assert.Equal(t, A.RawRowView(1), B.RawRowView(1))
	assert.Panics(t, func() { Zeros(3).AddVec(A, row) })
}

func TestCrossDotUnit(t *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	assert.Equal(t, []float64{0, 0, 1}, z.RawRowView(0))
	assert.Equal(t, 0.0, x.Dot(y))

	row, _ := NewMatrix([]float64{2, 2, 1})
	assert.InDelta(t, 3.0, row.Norm(), 1e-12)
	row.Unit(row)
	assert.InDelta(t, 1.0, row.Norm(), 1e-12)

	p := Zeros(1)
	p.Perpendicular(row)
	assert.InDelta(t, 0.0, p.Dot(row), 1e-12)
	assert.InDelta(t, 1.0, p.Norm(), 1e-12)
}

func TestDet3(t *testing.T) {
	A, _ := NewMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	assert.Equal(t, 1.0, Det3(A))
	S, _ := NewMatrix([]float64{0, 1, 0, 1, 0, 0, 0, 0, 1})
	assert.Equal(t, -1.0, Det3(S))
	B, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	assert.Panics(t, func() { Det3(B) })
}
