/*
 * errors.go, part of pqr.
 *
 * Copyright 2024 The apbs-pdb2pqr developers
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
 */

package pqr

import "fmt"

//Error is the interface implemented by the errors of every package in this
//module. The Decorate method adds information while the error travels up the
//call stack, without changing its type. Each call returns the current
//decoration trail; passing an empty string only reads it back. Every element
//of the trail should be a function name, optionally followed by extra info
//as in "FunctionName: extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

//CError is the concrete error of the pqr package.
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return err.msg }

func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errorf builds a *CError the fmt way.
func errorf(format string, args ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, args...)}
}

//errDecorate asserts that err implements Error, decorates it with the
//caller's name and returns it. Calling it with an error from outside the
//module is a programming mistake and panics.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
