/*
 * config.go, part of gorxn.
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

//Package config reads the tunable constants of gorxn from TOML documents.
package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	chem "github.com/rmera/gorxn"
	"github.com/rmera/gorxn/reac"
)

//ErrInvalid is wrapped by every error Load returns for values out of range.
var ErrInvalid = errors.New("invalid configuration")

//Mapper holds the settings for the reaction search.
type Mapper struct {
	MaxBondChanges int `toml:"max_bond_changes"`
}

//Geometry holds the settings for perceiving graphs from coordinates.
//Distances in Angstrom, angles in degrees.
type Geometry struct {
	BondTolerance   float64 `toml:"bond_tolerance"`
	TooClose        float64 `toml:"too_close"`
	LinearTolerance float64 `toml:"linear_tolerance"`
	FormingDistFrac float64 `toml:"forming_dist_frac"`
}

//Config is the whole document.
type Config struct {
	Mapper   Mapper   `toml:"mapper"`
	Geometry Geometry `toml:"geometry"`
}

//Default returns the configuration used when no document is given.
func Default() *Config {
	g := chem.DefaultGeometryOptions()
	return &Config{
		Mapper: Mapper{MaxBondChanges: reac.DefaultOptions().MaxBondChanges},
		Geometry: Geometry{
			BondTolerance:   g.BondTolerance,
			TooClose:        g.TooClose,
			LinearTolerance: g.LinearTolerance,
			FormingDistFrac: g.FormingDistFrac,
		},
	}
}

//Load reads a TOML document from r on top of the defaults.
//Keys not in the document keep their default values, unknown keys are an error.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("config: %w: %s", ErrInvalid, serr.String())
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

//Validate checks that every value is in range.
func (c *Config) Validate() error {
	if c.Mapper.MaxBondChanges < 0 {
		return fmt.Errorf("config: %w: max_bond_changes must not be negative, got %d", ErrInvalid, c.Mapper.MaxBondChanges)
	}
	g := c.Geometry
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"bond_tolerance", g.BondTolerance},
		{"too_close", g.TooClose},
		{"linear_tolerance", g.LinearTolerance},
	} {
		if v.val <= 0 {
			return fmt.Errorf("config: %w: %s must be positive, got %g", ErrInvalid, v.name, v.val)
		}
	}
	if g.FormingDistFrac < 0 || g.FormingDistFrac >= 1 {
		return fmt.Errorf("config: %w: forming_dist_frac must be in [0,1), got %g", ErrInvalid, g.FormingDistFrac)
	}
	return nil
}

//Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	b, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	_, err = w.Write(b)
	return err
}

//MapperOptions returns the options for reac.Find.
func (c *Config) MapperOptions() *reac.Options {
	return &reac.Options{MaxBondChanges: c.Mapper.MaxBondChanges}
}

//PerceptionOptions returns the options for the geometry-based graph functions of chem.
func (c *Config) PerceptionOptions() *chem.GeometryOptions {
	return &chem.GeometryOptions{
		BondTolerance:   c.Geometry.BondTolerance,
		TooClose:        c.Geometry.TooClose,
		LinearTolerance: c.Geometry.LinearTolerance,
		FormingDistFrac: c.Geometry.FormingDistFrac,
	}
}
