package tui

// Braille dot bits for a 2x4 micro-pixel cell, indexed [row][column].
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleBuf is a micro-pixel raster where every pixel remembers which
// region (by drawing position) covers it; -1 is background.
type brailleBuf struct {
	w, h   int // in cells
	mw, mh int // in micro-pixels
	owner  []int32
}

func newBrailleBuf(w, h int) *brailleBuf {
	b := &brailleBuf{w: w, h: h, mw: w * 2, mh: h * 4}
	b.owner = make([]int32, b.mw*b.mh)
	for i := range b.owner {
		b.owner[i] = -1
	}
	return b
}

func (b *brailleBuf) at(mx, my int) int32 {
	if mx < 0 || my < 0 || mx >= b.mw || my >= b.mh {
		return -1
	}
	return b.owner[my*b.mw+mx]
}

// fillSpan marks micro-pixels x0..x1 inclusive on row my as region id.
func (b *brailleBuf) fillSpan(my, x0, x1 int, id int32) {
	if my < 0 || my >= b.mh {
		return
	}
	x0 = max(0, x0)
	x1 = min(b.mw-1, x1)
	row := b.owner[my*b.mw:]
	for x := x0; x <= x1; x++ {
		row[x] = id
	}
}

// edge reports a pixel that touches a different region. Borders with the
// background stay filled so coastlines keep their shape.
func (b *brailleBuf) edge(mx, my int) bool {
	id := b.at(mx, my)
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		n := b.at(mx+d[0], my+d[1])
		if n >= 0 && n != id {
			return true
		}
	}
	return false
}

// cell returns the braille mask of a cell and the region drawing most of its
// dots, -1 when the cell is empty.
func (b *brailleBuf) cell(cx, cy int) (uint8, int32) {
	var mask uint8
	var ids [8]int32
	var counts [8]int
	n := 0
	for ry := 0; ry < 4; ry++ {
		for rx := 0; rx < 2; rx++ {
			mx, my := cx*2+rx, cy*4+ry
			id := b.at(mx, my)
			if id < 0 || b.edge(mx, my) {
				continue
			}
			mask |= brailleBits[ry][rx]
			k := 0
			for k < n && ids[k] != id {
				k++
			}
			if k == n {
				ids[n] = id
				n++
			}
			counts[k]++
		}
	}
	if n == 0 {
		return 0, -1
	}
	best := 0
	for k := 1; k < n; k++ {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return mask, ids[best]
}

func brailleRune(mask uint8) rune {
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}
