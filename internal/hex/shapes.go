package hex

// Disk returns every offset within radius, center included.
func Disk(radius int) []Delta {
	if radius < 0 {
		return nil
	}
	out := make([]Delta, 0, 1+3*radius*(radius+1))
	for q := -radius; q <= radius; q++ {
		r1 := max(-radius, -q-radius)
		r2 := min(radius, -q+radius)
		for r := r1; r <= r2; r++ {
			out = append(out, Delta{DX: q, DY: r})
		}
	}
	return out
}

// Ring returns the offsets at exactly radius. Ring(0) is the center.
func Ring(radius int) []Delta {
	if radius < 0 {
		return nil
	}
	if radius == 0 {
		return []Delta{{}}
	}
	out := make([]Delta, 0, 6*radius)
	cur := Delta{DX: -radius, DY: radius}
	for _, dir := range Directions {
		step := dir.Vec()
		for i := 0; i < radius; i++ {
			out = append(out, cur)
			cur = cur.Add(step)
		}
	}
	return out
}

// Line returns length offsets stepping away from the origin along dir,
// starting one step out.
func Line(dir Direction, length int) []Delta {
	out := make([]Delta, 0, max(length, 0))
	for k := 1; k <= length; k++ {
		out = append(out, dir.Vec().Scale(k))
	}
	return out
}

// Cone returns the wedge of offsets fanning out from the origin along dir.
// At distance k the wedge holds the ring-k cells within k/2 of k*dir.
func Cone(dir Direction, length int) []Delta {
	var out []Delta
	for k := 1; k <= length; k++ {
		axis := dir.Vec().Scale(k)
		for _, d := range Ring(k) {
			if d.Add(axis.Invert()).Norm() <= k/2 {
				out = append(out, d)
			}
		}
	}
	return out
}
