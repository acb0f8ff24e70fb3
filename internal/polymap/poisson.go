package polymap

import (
	"math"
	"math/rand"
)

const poissonMaxTries = 30

// poissonSample generates Poisson-disk-distributed points inside
// [0,width) x [0,height) using Bridson's algorithm. Points are at least
// minDist apart. The sampler is deterministic for a given rng state.
func poissonSample(rng *rand.Rand, width, height, minDist float64) []Point {
	if minDist <= 0 || width <= 0 || height <= 0 {
		return nil
	}

	// A background grid with cell size r/sqrt(2) holds at most one point
	// per cell, so neighborhood checks only need a 5x5 window.
	cellSize := minDist / math.Sqrt2
	gridW := int(math.Ceil(width / cellSize))
	gridH := int(math.Ceil(height / cellSize))

	grid := make([]int, gridW*gridH)
	for i := range grid {
		grid[i] = -1
	}

	points := make([]Point, 0, gridW*gridH/4)
	active := make([]int, 0, 128)

	toGrid := func(p Point) (int, int) {
		gx := int(p.X / cellSize)
		gy := int(p.Y / cellSize)
		if gx < 0 {
			gx = 0
		}
		if gx >= gridW {
			gx = gridW - 1
		}
		if gy < 0 {
			gy = 0
		}
		if gy >= gridH {
			gy = gridH - 1
		}
		return gx, gy
	}

	isValid := func(p Point) bool {
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			return false
		}
		gx, gy := toGrid(p)
		r2 := minDist * minDist
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				nx, ny := gx+dx, gy+dy
				if nx < 0 || nx >= gridW || ny < 0 || ny >= gridH {
					continue
				}
				idx := grid[ny*gridW+nx]
				if idx != -1 {
					ddx := points[idx].X - p.X
					ddy := points[idx].Y - p.Y
					if ddx*ddx+ddy*ddy < r2 {
						return false
					}
				}
			}
		}
		return true
	}

	insert := func(p Point) {
		idx := len(points)
		points = append(points, p)
		active = append(active, idx)
		gx, gy := toGrid(p)
		grid[gy*gridW+gx] = idx
	}

	insert(Point{X: rng.Float64() * width, Y: rng.Float64() * height})

	for len(active) > 0 {
		ai := rng.Intn(len(active))
		p := points[active[ai]]

		found := false
		for k := 0; k < poissonMaxTries; k++ {
			// Candidate in the annulus [r, 2r] around p.
			angle := rng.Float64() * 2 * math.Pi
			dist := minDist + rng.Float64()*minDist
			candidate := Point{
				X: p.X + dist*math.Cos(angle),
				Y: p.Y + dist*math.Sin(angle),
			}
			if isValid(candidate) {
				insert(candidate)
				found = true
				break
			}
		}

		if !found {
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}

	return points
}
