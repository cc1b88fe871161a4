package hex

// Grid metrics shared by the grid and its renderers.
const (
	OuterRadius   = 10.0
	OuterToInner  = 0.866025404 // sqrt(3)/2
	InnerRadius   = OuterRadius * OuterToInner
	ElevationStep = 3.0

	ChunkSizeX = 5
	ChunkSizeZ = 5

	// MaxRoadElevationDifference is the steepest edge a road may cross.
	MaxRoadElevationDifference = 1
)

// Vec3 is a grid-local world position. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by k.
func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Position returns the world position of the centre of the cell at the given
// offset column and row, at elevation zero.
func Position(col, row int) Vec3 {
	return Vec3{
		X: (float64(col) + float64(row)*0.5 - float64(row/2)) * (InnerRadius * 2),
		Z: float64(row) * (OuterRadius * 1.5),
	}
}
