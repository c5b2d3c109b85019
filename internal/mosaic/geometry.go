package mosaic

import "math"

// Point is a pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// SectorOrigin returns the top-left pixel of the sector at (col, row).
func SectorOrigin(col, row, sectorSize int) Point {
	return Point{X: col * sectorSize, Y: row * sectorSize}
}

// SectorCenter returns the center of the sector at (col, row). The half size
// is floor(sectorSize/2), so even sizes place the center on the pixel just
// right of and below the true midpoint.
func SectorCenter(col, row, sectorSize int) Point {
	origin := SectorOrigin(col, row, sectorSize)
	half := sectorSize / 2
	return Point{X: origin.X + half, Y: origin.Y + half}
}

// GridSize returns the number of complete sectors along each axis.
func GridSize(width, height, sectorSize int) (cols, rows int) {
	if sectorSize < 1 {
		return 0, 0
	}
	return width / sectorSize, height / sectorSize
}
