package cube

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// DefaultStateFile is the well-known file the cube state is saved to.
const DefaultStateFile = "cube.rubiks"

// record is the fixed on-disk layout of one cubie. The file is a flat
// array of NumCubies records with no header; changing this struct
// invalidates old saves.
type record struct {
	ID     uint8
	Kind   uint8
	Pos    [3]int8
	Orient [3][3]int8
	Colors [3]uint8
}

// RecordSize is the encoded size of one cubie record in bytes.
var RecordSize = binary.Size(record{})

// StateSize is the encoded size of a whole cube in bytes.
var StateSize = RecordSize * NumCubies

func toRecord(cb *Cubie) record {
	r := record{
		ID:   uint8(cb.ID),
		Kind: uint8(cb.Kind),
		Pos:  [3]int8{int8(cb.Pos.X), int8(cb.Pos.Y), int8(cb.Pos.Z)},
	}
	for i := 0; i < 3; i++ {
		o := cb.Orient[i]
		r.Orient[i] = [3]int8{int8(o.X), int8(o.Y), int8(o.Z)}
		r.Colors[i] = uint8(cb.Colors[i])
	}
	return r
}

func fromRecord(r record) Cubie {
	cb := Cubie{
		ID:   int(r.ID),
		Kind: Kind(r.Kind),
		Pos:  Vec{int(r.Pos[0]), int(r.Pos[1]), int(r.Pos[2])},
	}
	for i := 0; i < 3; i++ {
		o := r.Orient[i]
		cb.Orient[i] = Vec{int(o[0]), int(o[1]), int(o[2])}
		cb.Colors[i] = Color(r.Colors[i])
	}
	return cb
}

// MarshalBinary encodes the cube as NumCubies fixed-size little-endian
// records.
func (c *Cube) MarshalBinary() ([]byte, error) {
	var records [NumCubies]record
	for i := range c.Cubies {
		records[i] = toRecord(&c.Cubies[i])
	}

	var buf bytes.Buffer
	buf.Grow(StateSize)
	if err := binary.Write(&buf, binary.LittleEndian, records); err != nil {
		return nil, fmt.Errorf("failed to encode cube state: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a blob written by MarshalBinary. The cube is left
// untouched if the blob is malformed.
func (c *Cube) UnmarshalBinary(data []byte) error {
	if len(data) != StateSize {
		return fmt.Errorf("%w: blob is %d bytes, want %d", ErrCorruptState, len(data), StateSize)
	}

	var records [NumCubies]record
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &records); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	var decoded Cube
	for i, r := range records {
		if Kind(r.Kind) > Center {
			return fmt.Errorf("%w: cubie %d has kind %d", ErrCorruptState, r.ID, r.Kind)
		}
		for _, col := range r.Colors {
			if Color(col) > Blue {
				return fmt.Errorf("%w: cubie %d has color %d", ErrCorruptState, r.ID, col)
			}
		}
		decoded.Cubies[i] = fromRecord(r)
	}
	if err := decoded.Validate(); err != nil {
		return err
	}

	*c = decoded
	return nil
}

// Save writes the cube state to path.
func (c *Cube) Save(path string) error {
	data, err := c.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write cube state %s: %w", path, err)
	}
	return nil
}

// Load reads a cube state from path.
func Load(path string) (*Cube, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read cube state %s: %w", path, err)
	}
	c := &Cube{}
	if err := c.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("unable to load cube state %s: %w", path, err)
	}
	return c, nil
}
