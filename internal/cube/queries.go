package cube

// IsSolved returns true if every face shows a single color.
func (c *Cube) IsSolved() bool {
	for _, f := range Faces {
		if !f.IsSolved(c) {
			return false
		}
	}
	return true
}

// LayerIsSolved reports whether the layer with the given id is solved: on
// each side face the layer's cubies show that face's center color, and for
// the top and bottom layers the whole Up or Down face is uniform too.
//
// The three layers are solved together exactly when IsSolved holds.
func (c *Cube) LayerIsSolved(id int) (bool, error) {
	layer, err := c.Layer(id)
	if err != nil {
		return false, err
	}

	for _, f := range Sides {
		color, err := f.CenterColor(c)
		if err != nil {
			return false, err
		}
		for _, cb := range layer {
			if f.Contains(cb) && cb.ColorToward(f.Direction) != color {
				return false, nil
			}
		}
	}

	switch id {
	case LayerOne:
		return DownFace.IsSolved(c), nil
	case LayerThree:
		return UpFace.IsSolved(c), nil
	default:
		return true, nil
	}
}

// IsInPlace reports whether cb sits where it belongs relative to the
// centers.
//
// Strict: every sticker matches the center of the face it points at.
// Non-strict: only side faces are considered, and every non-polar color of
// the cubie must be the center color of one of the side faces it touches.
// A corner twisted in its own slot is in place non-strictly but not
// strictly.
func (c *Cube) IsInPlace(cb *Cubie, strict bool) (bool, error) {
	if cb.Kind == Center {
		return true, nil
	}

	if strict {
		for i, color := range cb.Colors {
			if color == None {
				continue
			}
			f, ok := FaceFor(cb.Orient[i])
			if !ok {
				return false, ErrCorruptState
			}
			want, err := f.CenterColor(c)
			if err != nil {
				return false, err
			}
			if want != color {
				return false, nil
			}
		}
		return true, nil
	}

	var centers []Color
	for _, dir := range cb.Faces() {
		f, ok := FaceFor(dir)
		if !ok {
			return false, ErrCorruptState
		}
		if !f.IsSide() {
			continue
		}
		color, err := f.CenterColor(c)
		if err != nil {
			return false, err
		}
		centers = append(centers, color)
	}

	for _, color := range cb.StickerColors() {
		if color.Polar() {
			continue
		}
		if !containsColor(centers, color) {
			return false, nil
		}
	}
	return true, nil
}

// InPlace is IsInPlace for callers that hold a valid cube; query errors
// count as "not in place".
func (c *Cube) InPlace(cb *Cubie, strict bool) bool {
	ok, err := c.IsInPlace(cb, strict)
	return err == nil && ok
}

func containsColor(colors []Color, color Color) bool {
	for _, c := range colors {
		if c == color {
			return true
		}
	}
	return false
}
