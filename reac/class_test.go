/*
 * class_test.go, part of gorxn.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassTable(t *testing.T) {
	require.NoError(t, checkClasses())
	for c := Trivial; c < nclasses; c++ {
		p, err := ParseClass(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, p)
	}
	dc, err := ParseClass("double_insertion")
	require.NoError(t, err)
	assert.Equal(t, DoubleInsertion, dc)
	_, err = ParseClass("combustion")
	assert.Error(t, err)
}

func TestClassReverse(t *testing.T) {
	cases := []struct {
		c, rev Class
	}{
		{Trivial, Trivial},
		{HydrogenMigration, HydrogenMigration},
		{BetaScission, Addition},
		{Addition, BetaScission},
		{Elimination, Insertion},
		{Insertion, Elimination},
		{HydrogenAbstraction, HydrogenAbstraction},
		{Substitution, Substitution},
	}
	for _, c := range cases {
		rev, err := c.c.Reverse()
		require.NoError(t, err, c.c.String())
		assert.Equal(t, c.rev, rev, c.c.String())
	}
	for _, c := range []Class{HomolyticScission, RingFormingScission, DoubleInsertion, Unclassified} {
		_, err := c.Reverse()
		assert.True(t, errors.Is(err, ErrReversalUndefined), c.String())
	}
}

func TestClassProperties(t *testing.T) {
	bi := map[Class]bool{HydrogenAbstraction: true, Addition: true, Insertion: true, DoubleInsertion: true, Substitution: true}
	spin := map[Class]bool{HydrogenAbstraction: true, Addition: true}
	wells := map[Class]bool{HydrogenAbstraction: true, Substitution: true}
	for c := Trivial; c < nclasses; c++ {
		assert.Equal(t, bi[c], c.Bimolecular(), c.String())
		assert.Equal(t, spin[c], c.RequiresSpinDesignation(), c.String())
		assert.Equal(t, wells[c], c.RequiresWellDescription(), c.String())
	}
	assert.False(t, nclasses.RequiresWellDescription())
	assert.Equal(t, "Class(12)", nclasses.String())
	assert.Equal(t, "low-spin", LowSpin.String())
	assert.Equal(t, "high-spin", HighSpin.String())
	assert.Equal(t, "unspecified", UnspecifiedSpin.String())
}
