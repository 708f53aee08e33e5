/*
 * rxnio.go, part of gorxn.
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

//Package rxnio reads and writes zstd-compressed archives of reactions.
//
//An archive is a sequence of text lines: optional "key=value" header lines,
//a "** n" line, and then one record per reaction. A record is the text form
//of the reaction (see reac.Reaction.String) followed by a line holding a single "*".
package rxnio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	chem "github.com/rmera/gorxn"
	"github.com/rmera/gorxn/reac"
)

const (
	endHeader = "**"
	endRecord = "*"
	//Version is the archive format version written in the "** n" line.
	Version = 1
)

var logger = zap.NewNop()

//SetLogger sets the logger for the package. A nil l means no logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

//Writer writes reactions to an archive.
type Writer struct {
	f         io.Closer //only set when the Writer owns the file
	h         *zstd.Encoder
	name      string
	count     int
	writeable bool
}

//NewWriter returns a Writer over w. The header, if not nil, is written in
//key order. Keys must not contain '=' or newlines. level is a zstd level (1 to 22);
//0 means the best compression.
func NewWriter(w io.Writer, header map[string]string, level int) (*Writer, error) {
	elevel := zstd.SpeedBestCompression
	if level > 0 {
		elevel = zstd.EncoderLevelFromZstd(level)
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(elevel))
	if err != nil {
		return nil, &Error{"can't start the compressor: " + err.Error(), "", []string{"NewWriter"}}
	}
	W := &Writer{h: enc, writeable: true}
	keys := make([]string, 0, len(header))
	for k := range header {
		if k == "" || strings.ContainsAny(k, "=\n") || strings.Contains(header[k], "\n") {
			enc.Close()
			return nil, &Error{fmt.Sprintf("invalid header entry %q", k), "", []string{"NewWriter"}}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, header[k])
	}
	fmt.Fprintf(&b, "%s %d\n", endHeader, Version)
	if _, err := io.WriteString(enc, b.String()); err != nil {
		enc.Close()
		return nil, &Error{"can't write header: " + err.Error(), "", []string{"NewWriter"}}
	}
	return W, nil
}

//Create creates the file name and returns a Writer over it. Closing the
//Writer closes the file.
func Create(name string, header map[string]string, level int) (*Writer, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	W, err := NewWriter(f, header, level)
	if err != nil {
		f.Close()
		return nil, errDecorate(err, "Create")
	}
	W.f = f
	W.name = name
	return W, nil
}

//Write appends r to the archive.
func (W *Writer) Write(r *reac.Reaction) error {
	if !W.writeable {
		return &Error{"writer closed", W.name, []string{"Write"}}
	}
	if r == nil {
		return &Error{"nil reaction", W.name, []string{"Write"}}
	}
	if _, err := io.WriteString(W.h, r.String()+endRecord+"\n"); err != nil {
		return &Error{err.Error(), W.name, []string{"Write"}}
	}
	W.count++
	return nil
}

//Len returns the number of reactions written so far.
func (W *Writer) Len() int {
	return W.count
}

//Close flushes the archive. It is safe to call more than once.
func (W *Writer) Close() error {
	if W == nil || !W.writeable {
		return nil
	}
	W.writeable = false
	err := W.h.Close()
	if W.f != nil {
		if ferr := W.f.Close(); err == nil {
			err = ferr
		}
	}
	if err != nil {
		return &Error{err.Error(), W.name, []string{"Close"}}
	}
	return nil
}

//Reader reads reactions from an archive.
type Reader struct {
	f        io.Closer
	z        *zstd.Decoder
	h        *bufio.Reader
	name     string
	header   map[string]string
	record   int
	readable bool
}

//NewReader returns a Reader over r, with the header already read.
func NewReader(r io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, &Error{"can't start the decompressor: " + err.Error(), "", []string{"NewReader"}}
	}
	R := &Reader{z: dec, h: bufio.NewReader(dec), header: make(map[string]string)}
	for {
		str, err := R.h.ReadString('\n')
		if err != nil {
			dec.Close()
			return nil, &Error{"can't read header: " + err.Error(), "", []string{"NewReader"}}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, endHeader) {
			fields := strings.Fields(str)
			if len(fields) != 2 {
				dec.Close()
				return nil, &Error{fmt.Sprintf("malformed header end %q", str), "", []string{"NewReader"}}
			}
			v, err := strconv.Atoi(fields[1])
			if err != nil || v < 1 || v > Version {
				dec.Close()
				return nil, &Error{fmt.Sprintf("unsupported archive version %q", fields[1]), "", []string{"NewReader"}}
			}
			break
		}
		k, v, ok := strings.Cut(str, "=")
		if !ok {
			dec.Close()
			return nil, &Error{fmt.Sprintf("malformed header line %q", str), "", []string{"NewReader"}}
		}
		R.header[k] = v
	}
	R.readable = true
	return R, nil
}

//Open opens the archive in the file name. Closing the Reader closes the file.
func Open(name string) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	R, err := NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		var e *Error
		if errors.As(err, &e) {
			e.filename = name
			e.Decorate("Open")
			return nil, e
		}
		return nil, err
	}
	R.f = f
	R.name = name
	return R, nil
}

//Header returns the header entries of the archive.
func (R *Reader) Header() map[string]string {
	return R.header
}

//Readable returns true if Next can still be called.
func (R *Reader) Readable() bool {
	return R.readable
}

//NextString returns the text of the next record. At the end of the archive it
//closes the Reader and returns io.EOF.
func (R *Reader) NextString() (string, error) {
	if !R.readable {
		return "", io.EOF
	}
	var b strings.Builder
	first := true
	for {
		str, err := R.h.ReadString('\n')
		if err == io.EOF && first && str == "" {
			R.Close()
			return "", io.EOF
		}
		if err != nil {
			return "", &Error{fmt.Sprintf("record %d is truncated: %s", R.record+1, err), R.name, []string{"NextString"}}
		}
		first = false
		if strings.TrimSuffix(str, "\n") == endRecord {
			break
		}
		b.WriteString(str)
	}
	R.record++
	return b.String(), nil
}

//Next parses and returns the next reaction. At the end of the archive
//it closes the Reader and returns io.EOF.
func (R *Reader) Next() (*reac.Reaction, error) {
	s, err := R.NextString()
	if err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errDecorate(err, "Next")
	}
	r, err := reac.FromString(s)
	if err != nil {
		logger.Debug("unparsable record", zap.String("archive", R.name), zap.Int("record", R.record))
		return nil, &Error{fmt.Sprintf("record %d: %s", R.record, err), R.name, []string{"Next"}}
	}
	return r, nil
}

//Close releases the decompressor, and the file if the Reader owns it.
func (R *Reader) Close() error {
	if R == nil || R.z == nil {
		return nil
	}
	R.readable = false
	R.z.Close()
	R.z = nil
	if R.f != nil {
		return R.f.Close()
	}
	return nil
}

//ReadAll returns every reaction left in R and closes it.
func ReadAll(R *Reader) ([]*reac.Reaction, error) {
	var ret []*reac.Reaction
	for {
		r, err := R.Next()
		if err == io.EOF {
			return ret, nil
		}
		if err != nil {
			R.Close()
			return ret, errDecorate(err, "ReadAll")
		}
		ret = append(ret, r)
	}
}

//Error is the error type of the package. It fulfills chem.Error.
type Error struct {
	message  string
	filename string //empty when the archive is not a named file
	deco     []string
}

func (err Error) Error() string {
	if err.filename == "" {
		return "rxnio: " + err.message
	}
	return fmt.Sprintf("rxnio file %s: %s", err.filename, err.message)
}

//Decorate adds new information to the error.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the archive file associated to the error.
func (err Error) FileName() string { return err.filename }

var _ chem.Error = &Error{}

func errDecorate(err error, caller string) error {
	if e, ok := err.(chem.Error); ok {
		e.Decorate(caller)
		return e
	}
	return err
}
