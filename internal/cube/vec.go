package cube

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec is an integer grid vector. Positions live in {-1,0,1}^3 and
// orientations are axis-aligned unit vectors (or zero for an unused slot).
type Vec struct {
	X, Y, Z int
}

// Face directions.
var (
	Up    = Vec{0, 1, 0}
	Down  = Vec{0, -1, 0}
	Right = Vec{1, 0, 0}
	Left  = Vec{-1, 0, 0}
	Front = Vec{0, 0, 1}
	Back  = Vec{0, 0, -1}
)

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Neg returns -v.
func (v Vec) Neg() Vec {
	return Vec{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec) Dot(o Vec) int {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// IsZero reports whether v is the zero vector.
func (v Vec) IsZero() bool {
	return v == Vec{}
}

// IsUnit reports whether v is one of the six axis-aligned unit vectors.
func (v Vec) IsUnit() bool {
	return abs(v.X)+abs(v.Y)+abs(v.Z) == 1 && v.Dot(v) == 1
}

// GL converts v to a float vector for matrix math.
func (v Vec) GL() mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Round snaps a float vector back onto the integer grid. Rotations go
// through float32 matrices, so every transformed vector passes through here.
func Round(f mgl32.Vec3) Vec {
	return Vec{
		X: int(math.Round(float64(f[0]))),
		Y: int(math.Round(float64(f[1]))),
		Z: int(math.Round(float64(f[2]))),
	}
}

func (v Vec) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
