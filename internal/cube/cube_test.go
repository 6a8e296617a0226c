package cube

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

// turn rotates the cubies selected by sel about axis. It stands in for the
// move engine, which lives in a package that imports this one.
func turn(c *Cube, axis Vec, degrees float32, sel func(*Cubie) bool) {
	m := mgl32.HomogRotate3D(mgl32.DegToRad(degrees), axis.GL())
	for _, cb := range c.Find(sel) {
		cb.Transform(m)
	}
}

func onFace(dir Vec) func(*Cubie) bool {
	return func(cb *Cubie) bool { return cb.ColorToward(dir) != None }
}

func all(*Cubie) bool { return true }

func TestNewCubeIsSolved(t *testing.T) {
	c := New()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
		t.Log(c.String())
	}
	require.NoError(t, c.Validate())

	for i := range c.Cubies {
		cb := &c.Cubies[i]
		ok, err := c.IsInPlace(cb, true)
		require.NoError(t, err)
		if !ok {
			t.Errorf("cubie %v should be in place on a new cube", cb)
		}
	}
}

func TestNewCubeLayout(t *testing.T) {
	c := New()

	counts := map[Kind]int{}
	for i := range c.Cubies {
		require.Equal(t, i, c.Cubies[i].ID)
		counts[c.Cubies[i].Kind]++
	}
	require.Equal(t, 8, counts[Corner])
	require.Equal(t, 12, counts[Edge])
	require.Equal(t, 6, counts[Center])

	first := c.Cubies[0]
	require.Equal(t, Vec{-1, 1, 1}, first.Pos)
	require.Equal(t, [3]Color{Blue, Yellow, Red}, first.Colors)

	last := c.Cubies[NumCubies-1]
	require.Equal(t, Vec{1, -1, -1}, last.Pos)
	require.Equal(t, [3]Color{Green, White, Orange}, last.Colors)
}

func TestSolvedColors(t *testing.T) {
	c := New()
	for _, f := range Faces {
		color, err := f.CenterColor(c)
		require.NoError(t, err)
		require.Equal(t, SolvedColor(f.Direction), color, "face %v", f)
		require.Len(t, f.Cubies(c), 9, "face %v", f)
	}
}

func TestCubeAt(t *testing.T) {
	c := New()

	cb, err := c.CubeAt(Vec{1, -1, 1})
	require.NoError(t, err)
	require.Equal(t, Corner, cb.Kind)
	require.ElementsMatch(t, []Color{Green, White, Red}, cb.StickerColors())

	_, err = c.CubeAt(Vec{})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = c.CubeAt(Vec{2, 0, 0})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestByID(t *testing.T) {
	c := New()
	turn(c, Up, -90, onFace(Up))

	for id := 0; id < NumCubies; id++ {
		cb, err := c.ByID(id)
		require.NoError(t, err)
		require.Equal(t, id, cb.ID)
	}

	_, err := c.ByID(NumCubies)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLayer(t *testing.T) {
	c := New()

	sizes := map[int]int{LayerOne: 9, LayerTwo: 8, LayerThree: 9}
	for id, want := range sizes {
		layer, err := c.Layer(id)
		require.NoError(t, err)
		require.Len(t, layer, want)
		for _, cb := range layer {
			require.Equal(t, id, cb.Pos.Y)
		}

		solved, err := c.LayerIsSolved(id)
		require.NoError(t, err)
		require.True(t, solved, "layer %d", id)
	}

	_, err := c.Layer(2)
	require.ErrorIs(t, err, ErrInvalidLayer)
	_, err = c.LayerIsSolved(-2)
	require.ErrorIs(t, err, ErrInvalidLayer)
}

func TestLayerIsSolved_TopTwist(t *testing.T) {
	c := New()
	turn(c, Up, -90, onFace(Up))

	require.False(t, c.IsSolved())

	bottom, err := c.LayerIsSolved(LayerOne)
	require.NoError(t, err)
	middle, err := c.LayerIsSolved(LayerTwo)
	require.NoError(t, err)
	top, err := c.LayerIsSolved(LayerThree)
	require.NoError(t, err)

	require.True(t, bottom)
	require.True(t, middle)
	require.False(t, top)
}

func TestLayerIsSolved_SliceTwist(t *testing.T) {
	c := New()
	turn(c, Up, -90, func(cb *Cubie) bool { return cb.Pos.Y == 0 })

	// The middle slice carries the side centers with it, so the outer
	// layers disagree with the centers they now face.
	require.False(t, c.IsSolved())
	for _, id := range []int{LayerOne, LayerTwo, LayerThree} {
		ok, err := c.LayerIsSolved(id)
		require.NoError(t, err)
		if id == LayerTwo {
			require.True(t, ok)
		} else {
			require.False(t, ok, "layer %d", id)
		}
	}
}

func TestCenter(t *testing.T) {
	c := New()
	for _, color := range Palette {
		center, err := c.Center(color)
		require.NoError(t, err)
		require.Equal(t, Center, center.Kind)
		require.Equal(t, SolvedColor(center.Pos), color)
	}

	_, err := c.Center(None)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEdgesAndCornersAround(t *testing.T) {
	c := New()
	blue, err := c.Center(Blue)
	require.NoError(t, err)

	edges, err := c.EdgesAround(blue)
	require.NoError(t, err)
	require.Len(t, edges, 4)
	for _, e := range edges {
		require.Equal(t, Edge, e.Kind)
		require.Equal(t, -1, e.Pos.X)
		require.True(t, e.Has(Blue))
	}

	corners, err := c.CornersAround(blue)
	require.NoError(t, err)
	require.Len(t, corners, 4)
	for _, cb := range corners {
		require.Equal(t, Left, cb.DirectionOf(Blue))
	}

	edge, err := c.CubeAt(Vec{0, 1, 1})
	require.NoError(t, err)
	_, err = c.EdgesAround(edge)
	require.ErrorIs(t, err, ErrNotCenter)
	_, err = c.CornersAround(edge)
	require.ErrorIs(t, err, ErrNotCenter)
}

func TestEdgesOfAndCornersOf(t *testing.T) {
	c := New()
	for _, color := range Palette {
		require.Len(t, c.EdgesOf(color), 4, "color %v", color)
		require.Len(t, c.CornersOf(color), 4, "color %v", color)
	}
}

func TestFindBy(t *testing.T) {
	c := New()

	cb, err := c.FindBy(Green, Yellow, Red)
	require.NoError(t, err)
	require.Equal(t, Vec{1, 1, 1}, cb.Pos)

	// Color identity survives a turn.
	turn(c, Right, -90, onFace(Right))
	moved, err := c.FindBy(Red, Green, Yellow)
	require.NoError(t, err)
	require.Equal(t, cb.ID, moved.ID)
	require.Equal(t, Vec{1, 1, -1}, moved.Pos)
	require.Equal(t, Up, moved.DirectionOf(Red))

	center, err := c.FindBy(White)
	require.NoError(t, err)
	require.Equal(t, Center, center.Kind)

	_, err = c.FindBy(White, Yellow)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = c.FindBy()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStickers(t *testing.T) {
	c := New()
	turn(c, Front, -90, onFace(Front))
	turn(c, Up, 90, onFace(Up))

	counts := c.Stickers()
	require.Len(t, counts, 6)
	for _, color := range Palette {
		require.Equal(t, 9, counts[color], "color %v", color)
	}
}

func TestWholeCubeSpinStaysSolved(t *testing.T) {
	c := New()
	turn(c, Up, -90, all)

	require.True(t, c.IsSolved())
	require.NoError(t, c.Validate())

	// The right face came to the front.
	color, err := FrontFace.CenterColor(c)
	require.NoError(t, err)
	require.Equal(t, Green, color)

	for i := range c.Cubies {
		require.True(t, c.InPlace(&c.Cubies[i], true))
	}
}

func TestIsInPlace_Twist(t *testing.T) {
	c := New()
	turn(c, Right, -90, onFace(Right))

	cb, err := c.CubeAt(Vec{1, -1, 1})
	require.NoError(t, err)
	strict, err := c.IsInPlace(cb, true)
	require.NoError(t, err)
	require.False(t, strict)

	center, err := c.CubeAt(Right)
	require.NoError(t, err)
	require.True(t, c.InPlace(center, true))
}

func TestValidate(t *testing.T) {
	c := New()
	c.Cubies[3].Pos = c.Cubies[4].Pos
	require.ErrorIs(t, c.Validate(), ErrCorruptState)

	c = New()
	c.Cubies[0].Orient[0] = Vec{1, 1, 0}
	require.ErrorIs(t, c.Validate(), ErrCorruptState)

	c = New()
	c.Cubies[0].Colors[0] = None
	require.ErrorIs(t, c.Validate(), ErrCorruptState)

	c = New()
	c.Cubies[5].ID = 7
	require.ErrorIs(t, c.Validate(), ErrCorruptState)
}

func TestValidateGeometry(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(c *Cube)
	}{
		{"corner in an edge slot", func(c *Cube) {
			c.Cubies[0].Pos, c.Cubies[1].Pos = c.Cubies[1].Pos, c.Cubies[0].Pos
		}},
		{"parallel stickers", func(c *Cube) {
			c.Cubies[0].Orient[1] = c.Cubies[0].Orient[0]
		}},
		{"sticker facing inward", func(c *Cube) {
			c.Cubies[0].Orient[0] = Right
		}},
		{"edge sticker along its zero axis", func(c *Cube) {
			c.Cubies[1].Orient[1] = Left
		}},
		{"position off the grid", func(c *Cube) {
			c.Cubies[4].Pos = Vec{0, 0, 2}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.corrupt(c)
			require.ErrorIs(t, c.Validate(), ErrCorruptState)

			data, err := c.MarshalBinary()
			require.NoError(t, err)
			var out Cube
			require.ErrorIs(t, out.UnmarshalBinary(data), ErrCorruptState)
		})
	}
}

func TestValidateAfterMoves(t *testing.T) {
	c := New()
	turn(c, Right, -90, onFace(Right))
	turn(c, Up, 90, onFace(Up))
	turn(c, Front, -90, onFace(Front))
	turn(c, Up, -90, all)
	require.NoError(t, c.Validate())
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	clone := c.Clone()
	turn(clone, Up, -90, onFace(Up))

	require.True(t, c.IsSolved())
	require.False(t, clone.IsSolved())
	require.False(t, c.Equal(clone))
}

func TestString(t *testing.T) {
	c := New()
	s := c.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	require.Len(t, lines, 9)
	require.Equal(t, "      Y Y Y ", lines[0])
	require.Equal(t, "B B B R R R G G G O O O ", lines[3])
	require.Equal(t, "      W W W ", lines[8])

	turn(c, Front, -90, onFace(Front))
	grid := c.Facelets(Up)
	require.Equal(t, [3]Color{Blue, Blue, Blue}, grid[2])
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := New()
	turn(c, Right, -90, onFace(Right))
	turn(c, Up, 90, onFace(Up))
	turn(c, Front, -90, onFace(Front))

	path := filepath.Join(t.TempDir(), DefaultStateFile)
	require.NoError(t, c.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.EqualValues(t, StateSize, info.Size())

	loaded, err := Load(path)
	require.NoError(t, err)
	if !loaded.Equal(c) {
		t.Error("loaded cube differs from saved cube")
		t.Log(c.String())
		t.Log(loaded.String())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.rubiks"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestUnmarshalBinary_Corrupt(t *testing.T) {
	data, err := New().MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, StateSize)

	var c Cube
	require.ErrorIs(t, c.UnmarshalBinary(data[:len(data)-1]), ErrCorruptState)

	bad := append([]byte(nil), data...)
	bad[RecordSize-1] = 42 // last color of the first cubie
	require.ErrorIs(t, c.UnmarshalBinary(bad), ErrCorruptState)

	bad = append([]byte(nil), data...)
	bad[2] = 0 // first cubie onto the x=0 column
	bad[RecordSize+2] = 0
	require.ErrorIs(t, c.UnmarshalBinary(bad), ErrCorruptState)

	require.NoError(t, c.UnmarshalBinary(data))
	require.True(t, c.IsSolved())
}
