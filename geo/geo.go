/*
 * geo.go, part of pqr.
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

//Package geo holds the cartesian geometry used by the structure-preparation
//stages: vector arithmetic on 3D points, bond/dihedral measurements,
//rotations about arbitrary axes and rigid-body superposition. Angles are
//radians unless stated otherwise.
package geo

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	Deg2Rad = math.Pi / 180.0
	Rad2Deg = 180.0 / math.Pi
)

//Vec is a point or direction in 3D space.
type Vec [3]float64

func Add(a, b Vec) Vec {
	return Vec{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func Sub(a, b Vec) Vec {
	return Vec{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func Scale(a Vec, f float64) Vec {
	return Vec{a[0] * f, a[1] * f, a[2] * f}
}

func Dot(a, b Vec) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Cross(a, b Vec) Vec {
	return Vec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func Norm(a Vec) float64 {
	return math.Sqrt(Dot(a, a))
}

//Unit returns a scaled to unit length. A zero vector is returned unchanged
//rather than filled with NaNs, so callers must not rely on the result being
//normalized without checking the input.
func Unit(a Vec) Vec {
	n := Norm(a)
	if n == 0 {
		return a
	}
	return Scale(a, 1/n)
}

func Dist(a, b Vec) float64 {
	return Norm(Sub(a, b))
}

//Angle returns the angle a-b-c, at vertex b.
func Angle(a, b, c Vec) float64 {
	v1 := Unit(Sub(a, b))
	v2 := Unit(Sub(c, b))
	d := Dot(v1, v2)
	//clamp against roundoff before the acos
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}

//Dihedral returns the torsion angle defined by a-b-c-d, in radians, in
//(-pi,pi], with the IUPAC sign convention.
func Dihedral(a, b, c, d Vec) float64 {
	b1 := Sub(b, a)
	b2 := Sub(c, b)
	b3 := Sub(d, c)
	n1 := Cross(b1, b2)
	n2 := Cross(b2, b3)
	m := Cross(n1, Unit(b2))
	x := Dot(n1, n2)
	y := Dot(m, n2)
	return math.Atan2(y, x)
}

//Rotator returns the 3x3 rotation matrix about the given axis (need not be
//normalized) by angle, built with the Rodrigues formula.
func Rotator(axis Vec, angle float64) *mat.Dense {
	u := Unit(axis)
	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c
	return mat.NewDense(3, 3, []float64{
		c + u[0]*u[0]*t, u[0]*u[1]*t - u[2]*s, u[0]*u[2]*t + u[1]*s,
		u[1]*u[0]*t + u[2]*s, c + u[1]*u[1]*t, u[1]*u[2]*t - u[0]*s,
		u[2]*u[0]*t - u[1]*s, u[2]*u[1]*t + u[0]*s, c + u[2]*u[2]*t,
	})
}

//RotateAbout rotates each point about the axis running from p1 to p2 by
//angle, returning the rotated points in a new slice. The original points are
//not touched.
func RotateAbout(points []Vec, p1, p2 Vec, angle float64) []Vec {
	if len(points) == 0 {
		return nil
	}
	rot := Rotator(Sub(p2, p1), angle)
	m := mat.NewDense(len(points), 3, nil)
	for i, p := range points {
		q := Sub(p, p1)
		m.SetRow(i, q[:])
	}
	var out mat.Dense
	out.Mul(m, rot.T())
	ret := make([]Vec, len(points))
	for i := range ret {
		row := out.RawRowView(i)
		ret[i] = Add(Vec{row[0], row[1], row[2]}, p1)
	}
	return ret
}

//PlaceInternal returns the cartesian position of a point given three
//reference positions and internal coordinates: the distance to c, the angle
//(radians) at c against b, and the torsion a-b-c-new (radians). This is the
//usual internal-to-cartesian construction used to rebuild atoms from
//idealized geometry.
func PlaceInternal(a, b, c Vec, dist, angle, torsion float64) Vec {
	bc := Unit(Sub(c, b))
	n := Unit(Cross(Sub(b, a), bc))
	m := Cross(n, bc)
	//spherical components in the local frame
	d2 := Vec{
		-dist * math.Cos(angle),
		dist * math.Sin(angle) * math.Cos(torsion),
		-dist * math.Sin(angle) * math.Sin(torsion),
	}
	x := Add(Add(Scale(bc, d2[0]), Scale(m, d2[1])), Scale(n, d2[2]))
	return Add(c, x)
}

//Centroid returns the geometric center of the points. Panics on an empty
//slice, which is always a programming error here.
func Centroid(points []Vec) Vec {
	if len(points) == 0 {
		panic("geo: centroid of no points")
	}
	var c Vec
	for _, p := range points {
		c = Add(c, p)
	}
	return Scale(c, 1/float64(len(points)))
}

//Superpose computes the rigid transform (rotation R, translation t) that
//best maps mobile onto target in the least-squares sense, via the
//SVD/Kabsch construction. Both slices must have the same length, at least 3.
//The transform of a point p is R*(p-mobileCentroid)+targetCentroid+t with
//t==0; use Transform to apply it.
func Superpose(mobile, target []Vec) (*mat.Dense, Vec, Vec, error) {
	if len(mobile) != len(target) || len(mobile) < 3 {
		return nil, Vec{}, Vec{}, &Error{"superposition needs two equal sets of at least 3 points", []string{"Superpose"}}
	}
	cm := Centroid(mobile)
	ct := Centroid(target)
	//covariance matrix H = sum (m-cm)^T (t-ct)
	h := mat.NewDense(3, 3, nil)
	for i := range mobile {
		p := Sub(mobile[i], cm)
		q := Sub(target[i], ct)
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				h.Set(r, c, h.At(r, c)+p[r]*q[c])
			}
		}
	}
	var svd mat.SVD
	if ok := svd.Factorize(h, mat.SVDFull); !ok {
		return nil, Vec{}, Vec{}, &Error{"SVD of the covariance matrix failed", []string{"Superpose"}}
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	var r mat.Dense
	r.Mul(&v, u.T())
	//fix a possible reflection
	if mat.Det(&r) < 0 {
		for i := 0; i < 3; i++ {
			v.Set(i, 2, -v.At(i, 2))
		}
		r.Mul(&v, u.T())
	}
	ret := mat.DenseCopyOf(&r)
	return ret, cm, ct, nil
}

//Transform applies a superposition transform to p.
func Transform(p Vec, rot *mat.Dense, mobileCent, targetCent Vec) Vec {
	q := Sub(p, mobileCent)
	var out Vec
	for i := 0; i < 3; i++ {
		out[i] = rot.At(i, 0)*q[0] + rot.At(i, 1)*q[1] + rot.At(i, 2)*q[2]
	}
	return Add(out, targetCent)
}

//Error is the geo package error. It implements the decoration scheme shared
//by all packages of this module.
type Error struct {
	message string
	deco    []string
}

func (err *Error) Error() string { return err.message }

//Decorate adds dec to the error's decoration trail and returns the trail.
//An empty dec only reads the trail back.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
