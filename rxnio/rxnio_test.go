/*
 * rxnio_test.go, part of gorxn.
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

package rxnio

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/gorxn"
	"github.com/rmera/gorxn/reac"
	"github.com/rmera/gorxn/smiles"
)

func reactions(t *testing.T) []*reac.Reaction {
	t.Helper()
	var ret []*reac.Reaction
	for _, c := range []struct{ rcts, prds []string }{
		{[]string{"CC"}, []string{"[CH3]", "[CH3]"}},
		{[]string{"[CH3]", "[OH]"}, []string{"[CH2]", "O"}},
		{[]string{"CCC[CH2]"}, []string{"CC[CH]C"}},
	} {
		var rcts, prds []*chem.Graph
		for _, s := range c.rcts {
			rcts = append(rcts, smiles.MustParse(s))
		}
		for _, s := range c.prds {
			prds = append(prds, smiles.MustParse(s))
		}
		rs, err := reac.Find(rcts, prds, nil)
		require.NoError(t, err)
		require.NotEmpty(t, rs)
		ret = append(ret, rs...)
	}
	return ret
}

//raw compresses text as is, to build broken archives.
func raw(t *testing.T, text string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = io.WriteString(enc, text)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	return &buf
}

func TestRoundTrip(t *testing.T) {
	rs := reactions(t)
	var buf bytes.Buffer
	W, err := NewWriter(&buf, map[string]string{"source": "test", "level": "none"}, 3)
	require.NoError(t, err)
	for _, r := range rs {
		require.NoError(t, W.Write(r))
	}
	assert.Equal(t, len(rs), W.Len())
	require.NoError(t, W.Close())
	require.NoError(t, W.Close())
	assert.Error(t, W.Write(rs[0]))

	R, err := NewReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"source": "test", "level": "none"}, R.Header())
	got, err := ReadAll(R)
	require.NoError(t, err)
	require.Len(t, got, len(rs))
	for i := range rs {
		assert.Equal(t, rs[i].String(), got[i].String())
		assert.Equal(t, rs[i].Class, got[i].Class)
		assert.Equal(t, rs[i].RadRad, got[i].RadRad)
	}
	assert.False(t, R.Readable())
	_, err = R.Next()
	assert.Equal(t, io.EOF, err)
}

func TestFile(t *testing.T) {
	rs := reactions(t)
	name := filepath.Join(t.TempDir(), "rxns.zst")
	W, err := Create(name, nil, 0)
	require.NoError(t, err)
	for _, r := range rs {
		require.NoError(t, W.Write(r))
	}
	require.NoError(t, W.Close())

	R, err := Open(name)
	require.NoError(t, err)
	assert.Empty(t, R.Header())
	s, err := R.NextString()
	require.NoError(t, err)
	assert.Equal(t, rs[0].String(), s)
	require.NoError(t, R.Close())
	require.NoError(t, R.Close())
}

func TestEmpty(t *testing.T) {
	var buf bytes.Buffer
	W, err := NewWriter(&buf, nil, 0)
	require.NoError(t, err)
	require.NoError(t, W.Close())
	R, err := NewReader(&buf)
	require.NoError(t, err)
	got, err := ReadAll(R)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestErrors(t *testing.T) {
	_, err := NewWriter(io.Discard, map[string]string{"a=b": "c"}, 0)
	assert.Error(t, err)
	_, err = NewWriter(io.Discard, map[string]string{"a": "b\nc"}, 0)
	assert.Error(t, err)

	W, err := NewWriter(io.Discard, nil, 0)
	require.NoError(t, err)
	assert.Error(t, W.Write(nil))
	require.NoError(t, W.Close())

	_, err = NewReader(raw(t, "** 9\n"))
	assert.Error(t, err)
	_, err = NewReader(raw(t, "no header\n"))
	assert.Error(t, err)
	_, err = NewReader(raw(t, "source=x\n"))
	assert.Error(t, err)
	_, err = NewReader(bytes.NewBufferString("not zstd at all"))
	assert.Error(t, err)

	R, err := NewReader(raw(t, "** 1\nreaction class: addition\n"))
	require.NoError(t, err)
	_, err = R.NextString()
	require.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
	var rerr *Error
	assert.ErrorAs(t, err, &rerr)

	R, err = NewReader(raw(t, "** 1\nnot: [a reaction\n*\n"))
	require.NoError(t, err)
	_, err = R.Next()
	assert.Error(t, err)
	assert.NotEqual(t, io.EOF, err)

	_, err = Open(filepath.Join(t.TempDir(), "missing.zst"))
	assert.Error(t, err)
}
