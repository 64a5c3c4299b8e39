// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package turb

import (
	"math"

	"github.com/cpmech/cflow/geom"
)

// wallGrid buckets wall-face centroids into a uniform 3D grid so
// WallDistance only scans the handful of points near each cell, instead of
// every wall face in the mesh — the nearest-neighbor structure spec.md
// §4.5 calls a "KD-tree". No retrieved repo queries gosl/gm.Bins for a
// nearest neighbor (every call site only Init/Appends it to place points
// for plotting, never searches it), so this bucket grid is hand-rolled
// rather than built on an unverified Bins query method — see DESIGN.md.
type wallGrid struct {
	xmin     [3]float64
	cellSize [3]float64
	ndiv     [3]int
	buckets  map[[3]int][]geom.Vec3
}

func newWallGrid(pts []geom.Vec3) *wallGrid {
	xmin := [3]float64{pts[0].X, pts[0].Y, pts[0].Z}
	xmax := xmin
	for _, p := range pts {
		xmin[0], xmax[0] = math.Min(xmin[0], p.X), math.Max(xmax[0], p.X)
		xmin[1], xmax[1] = math.Min(xmin[1], p.Y), math.Max(xmax[1], p.Y)
		xmin[2], xmax[2] = math.Min(xmin[2], p.Z), math.Max(xmax[2], p.Z)
	}
	nd := bestDiv(len(pts))
	g := &wallGrid{xmin: xmin, ndiv: [3]int{nd, nd, nd}, buckets: make(map[[3]int][]geom.Vec3)}
	const margin = 1e-9
	for d := 0; d < 3; d++ {
		span := xmax[d] - xmin[d] + margin
		g.cellSize[d] = span / float64(nd)
		if g.cellSize[d] <= 0 {
			g.cellSize[d] = 1
		}
	}
	for _, p := range pts {
		g.buckets[g.cellOf(p)] = append(g.buckets[g.cellOf(p)], p)
	}
	return g
}

func (g *wallGrid) cellOf(p geom.Vec3) [3]int {
	ix := int((p.X - g.xmin[0]) / g.cellSize[0])
	iy := int((p.Y - g.xmin[1]) / g.cellSize[1])
	iz := int((p.Z - g.xmin[2]) / g.cellSize[2])
	return [3]int{clampDiv(ix, g.ndiv[0]), clampDiv(iy, g.ndiv[1]), clampDiv(iz, g.ndiv[2])}
}

func clampDiv(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// nearest expands outward ring-by-ring from x's own bucket until a ring
// yields at least one candidate, then returns the closest among every point
// examined so far (a ring further out could still hold a closer point near
// a bucket's diagonal, so one extra ring past first contact is scanned).
func (g *wallGrid) nearest(x geom.Vec3) float64 {
	base := g.cellOf(x)
	best := math.Inf(1)
	foundAtRing := -1
	for ring := 0; ring <= g.ndiv[0]+g.ndiv[1]+g.ndiv[2]; ring++ {
		if foundAtRing >= 0 && ring > foundAtRing+1 {
			break
		}
		any := false
		for dx := -ring; dx <= ring; dx++ {
			for dy := -ring; dy <= ring; dy++ {
				for dz := -ring; dz <= ring; dz++ {
					if abs3(dx, dy, dz) != ring {
						continue
					}
					key := [3]int{base[0] + dx, base[1] + dy, base[2] + dz}
					pts, ok := g.buckets[key]
					if !ok {
						continue
					}
					any = true
					for _, p := range pts {
						if d := x.Sub(p).Norm(); d < best {
							best = d
						}
					}
				}
			}
		}
		if any && foundAtRing < 0 {
			foundAtRing = ring
		}
	}
	return best
}

func abs3(dx, dy, dz int) int {
	m := absInt(dx)
	if v := absInt(dy); v > m {
		m = v
	}
	if v := absInt(dz); v > m {
		m = v
	}
	return m
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func bestDiv(n int) int {
	d := int(math.Cbrt(float64(n)))
	if d < 1 {
		d = 1
	}
	return d
}

// WallDistance precomputes, once per grid, the distance from every interior
// cell center to the nearest viscous-wall face centroid (spec.md §4.5).
func WallDistance(cellCenters []geom.Vec3, wallFaceCentroids []geom.Vec3) []float64 {
	dist := make([]float64, len(cellCenters))
	if len(wallFaceCentroids) == 0 {
		for i := range dist {
			dist[i] = math.Inf(1)
		}
		return dist
	}
	grid := newWallGrid(wallFaceCentroids)
	for i, c := range cellCenters {
		dist[i] = grid.nearest(c)
	}
	return dist
}
