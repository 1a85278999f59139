package ppu

// RGB is a 24-bit color as emitted by the NES's 64-entry hardware
// palette.
type RGB [3]uint8

// SYSTEM_PALETTE is the fixed NES color palette (PALETTE_64), indexed
// by the 6-bit values a Frame's palette bytes carry.
var SYSTEM_PALETTE = [64]RGB{
	{0x80, 0x80, 0x80}, {0x00, 0x3D, 0xA6}, {0x00, 0x12, 0xB0}, {0x44, 0x00, 0x96}, {0xA1, 0x00, 0x5E},
	{0xC7, 0x00, 0x28}, {0xBA, 0x06, 0x00}, {0x8C, 0x17, 0x00}, {0x5C, 0x2F, 0x00}, {0x10, 0x45, 0x00},
	{0x05, 0x4A, 0x00}, {0x00, 0x47, 0x2E}, {0x00, 0x41, 0x66}, {0x00, 0x00, 0x00}, {0x05, 0x05, 0x05},
	{0x05, 0x05, 0x05}, {0xC7, 0xC7, 0xC7}, {0x00, 0x77, 0xFF}, {0x21, 0x55, 0xFF}, {0x82, 0x37, 0xFA},
	{0xEB, 0x2F, 0xB5}, {0xFF, 0x29, 0x50}, {0xFF, 0x22, 0x00}, {0xD6, 0x32, 0x00}, {0xC4, 0x62, 0x00},
	{0x35, 0x80, 0x00}, {0x05, 0x8F, 0x00}, {0x00, 0x8A, 0x55}, {0x00, 0x99, 0xCC}, {0x21, 0x21, 0x21},
	{0x09, 0x09, 0x09}, {0x09, 0x09, 0x09}, {0xFF, 0xFF, 0xFF}, {0x0F, 0xD7, 0xFF}, {0x69, 0xA2, 0xFF},
	{0xD4, 0x80, 0xFF}, {0xFF, 0x45, 0xF3}, {0xFF, 0x61, 0x8B}, {0xFF, 0x88, 0x33}, {0xFF, 0x9C, 0x12},
	{0xFA, 0xBC, 0x20}, {0x9F, 0xE3, 0x0E}, {0x2B, 0xF0, 0x35}, {0x0C, 0xF0, 0xA4}, {0x05, 0xFB, 0xFF},
	{0x5E, 0x5E, 0x5E}, {0x0D, 0x0D, 0x0D}, {0x0D, 0x0D, 0x0D}, {0xFF, 0xFF, 0xFF}, {0xA6, 0xFC, 0xFF},
	{0xB3, 0xEC, 0xFF}, {0xDA, 0xAB, 0xEB}, {0xFF, 0xA8, 0xF9}, {0xFF, 0xAB, 0xB3}, {0xFF, 0xD2, 0xB0},
	{0xFF, 0xEF, 0xA6}, {0xFF, 0xF7, 0x9C}, {0xD7, 0xE8, 0x95}, {0xA6, 0xED, 0xAF}, {0xA2, 0xF2, 0xDA},
	{0x99, 0xFF, 0xFC}, {0xDD, 0xDD, 0xDD}, {0x11, 0x11, 0x11}, {0x11, 0x11, 0x11},
}

// Render turns a Frame snapshot into a row-major 256x240 RGB grid,
// compositing sprites over the background and honoring flip and
// low-priority bits.
func Render(f *Frame) [NES_RES_HEIGHT][NES_RES_WIDTH]RGB {
	var img [NES_RES_HEIGHT][NES_RES_WIDTH]RGB
	var bgIdx [NES_RES_HEIGHT][NES_RES_WIDTH]uint8

	for ty, row := range f.Background {
		for tx, tile := range row {
			for j := 0; j < 8; j++ {
				y := ty*8 + j
				if y >= NES_RES_HEIGHT {
					continue
				}
				for i := 0; i < 8; i++ {
					x := tx*8 + i
					if x >= NES_RES_WIDTH {
						continue
					}
					p := tile.Pixels[j][i]
					bgIdx[y][x] = p
					img[y][x] = SYSTEM_PALETTE[f.Palette[uint16(tile.PaletteID)*4+uint16(p)]&63]
				}
			}
		}
	}

	for _, s := range f.Sprites {
		base := 0x10 + uint16(s.PaletteID)*4
		for j := 0; j < 8; j++ {
			y := int(s.Y) + j
			if y < 0 || y >= NES_RES_HEIGHT {
				continue
			}
			sj := j
			if s.FlipV {
				sj = 7 - j
			}
			for i := 0; i < 8; i++ {
				x := int(s.X) + i
				if x < 0 || x >= NES_RES_WIDTH {
					continue
				}
				si := i
				if s.FlipH {
					si = 7 - i
				}
				p := s.Pixels[sj][si]
				if p == 0 {
					continue
				}
				if s.LowPriority && bgIdx[y][x] != 0 {
					continue
				}
				img[y][x] = SYSTEM_PALETTE[f.Palette[base+uint16(p)]&63]
			}
		}
	}

	return img
}
