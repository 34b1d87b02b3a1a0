package sticker

// Region is one 8-connected component of a mask: its label, pixel area,
// and inclusive bounding box.
type Region struct {
	Label int32
	Area  int
	MinX  int
	MaxX  int
	MinY  int
	MaxY  int
}

// Components labels the 8-connected regions of m. It returns a row-major
// label map (0 = background, 1..N = component IDs) and one Region per
// component. Labels follow row-major discovery order, so the numbering is
// reproducible for a given mask. An empty mask yields no regions.
func Components(m Mask) ([]int32, []Region) {
	labels := make([]int32, m.W*m.H)
	var regions []Region

	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}

	queue := make([]int, 0, 1024)
	next := int32(1)

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			idx := y*m.W + x
			if m.Bits[idx] == 0 || labels[idx] != 0 {
				continue
			}

			// BFS from this pixel
			queue = queue[:0]
			queue = append(queue, idx)
			labels[idx] = next
			reg := Region{Label: next, MinX: x, MaxX: x, MinY: y, MaxY: y}

			for len(queue) > 0 {
				curr := queue[0]
				queue = queue[1:]
				reg.Area++

				cy := curr / m.W
				cx := curr % m.W
				if cx < reg.MinX {
					reg.MinX = cx
				}
				if cx > reg.MaxX {
					reg.MaxX = cx
				}
				if cy < reg.MinY {
					reg.MinY = cy
				}
				if cy > reg.MaxY {
					reg.MaxY = cy
				}

				for d := 0; d < 8; d++ {
					nx := cx + dx[d]
					ny := cy + dy[d]
					if nx < 0 || nx >= m.W || ny < 0 || ny >= m.H {
						continue
					}
					ni := ny*m.W + nx
					if m.Bits[ni] != 0 && labels[ni] == 0 {
						labels[ni] = next
						queue = append(queue, ni)
					}
				}
			}

			regions = append(regions, reg)
			next++
		}
	}

	return labels, regions
}

// Largest returns the region with the most pixels. Area ties keep the
// region discovered first. ok is false when regions is empty.
func Largest(regions []Region) (Region, bool) {
	if len(regions) == 0 {
		return Region{}, false
	}
	best := regions[0]
	for _, r := range regions[1:] {
		if r.Area > best.Area {
			best = r
		}
	}
	return best, true
}
