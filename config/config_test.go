/*
 * config_test.go, part of gorxn.
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

package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 3, c.Mapper.MaxBondChanges)
	assert.Equal(t, 0.45, c.Geometry.BondTolerance)
	assert.Equal(t, 0.63, c.Geometry.TooClose)
	assert.Equal(t, 5.0, c.Geometry.LinearTolerance)
	assert.Equal(t, 0.2, c.Geometry.FormingDistFrac)
	require.NoError(t, c.Validate())
}

func TestLoad(t *testing.T) {
	doc := `
[mapper]
max_bond_changes = 2

[geometry]
too_close = 0.5
`
	c, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Mapper.MaxBondChanges)
	assert.Equal(t, 0.5, c.Geometry.TooClose)
	//untouched keys keep their defaults
	assert.Equal(t, 0.45, c.Geometry.BondTolerance)
	assert.Equal(t, 0.2, c.Geometry.FormingDistFrac)

	assert.Equal(t, 2, c.MapperOptions().MaxBondChanges)
	p := c.PerceptionOptions()
	assert.Equal(t, 0.5, p.TooClose)
	assert.Equal(t, 5.0, p.LinearTolerance)
}

func TestLoadEmpty(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		invalid bool
	}{
		{"negative changes", "[mapper]\nmax_bond_changes = -1\n", true},
		{"zero tolerance", "[geometry]\nbond_tolerance = 0.0\n", true},
		{"fraction too large", "[geometry]\nforming_dist_frac = 1.5\n", true},
		{"unknown key", "[mapper]\nmax_changes = 2\n", true},
		{"malformed", "[mapper\nmax_bond_changes = 2\n", false},
		{"wrong type", "[mapper]\nmax_bond_changes = \"two\"\n", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Load(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Nil(t, c)
			assert.Equal(t, tc.invalid, errors.Is(err, ErrInvalid))
		})
	}
}

func TestWriteLoad(t *testing.T) {
	c := Default()
	c.Mapper.MaxBondChanges = 4
	c.Geometry.LinearTolerance = 2.5
	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))
	assert.Contains(t, buf.String(), "max_bond_changes = 4")
	d, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, c, d)
}
