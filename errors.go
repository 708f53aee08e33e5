/*
 * errors.go, part of gorxn.
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
	"errors"
	"fmt"
)

//Sentinels for errors.Is. Every CError unwraps to one of them, or to nothing.
var (
	//ErrStructural is a malformed graph: dangling or self bonds, key collisions,
	//atoms that cannot be kekulized.
	ErrStructural = errors.New("structural error")

	//ErrStereoInconsistency is a parity stored on something that is not a stereo site,
	//or a site whose substituents cannot be ordered.
	ErrStereoInconsistency = errors.New("stereo inconsistency")
)

//CError is the error type of this package. It keeps the names of the functions
//it went through, so the path to the failure can be printed.
type CError struct {
	msg  string
	deco []string
	kind error
}

func (err CError) Error() string { return err.msg }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Unwrap returns the sentinel describing the kind of error, if any.
func (err CError) Unwrap() error { return err.kind }

func newError(kind error, caller, format string, args ...interface{}) *CError {
	msg := fmt.Sprintf(format, args...)
	if kind != nil {
		msg = kind.Error() + ": " + msg
	}
	return &CError{msg: msg, deco: []string{caller}, kind: kind}
}

func structuralError(caller, format string, args ...interface{}) error {
	return newError(ErrStructural, caller, format, args...)
}

func stereoError(caller, format string, args ...interface{}) error {
	return newError(ErrStereoInconsistency, caller, format, args...)
}

//errDecorate adds the caller's name to err if err implements Error,
//and returns err unchanged otherwise.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

//NewError returns a CError of the given kind with caller as its first decoration.
//kind may be nil.
func NewError(kind error, caller, format string, args ...interface{}) *CError {
	return newError(kind, caller, format, args...)
}

//ErrDecorate is errDecorate for callers outside this package.
func ErrDecorate(err error, caller string) error { return errDecorate(err, caller) }
