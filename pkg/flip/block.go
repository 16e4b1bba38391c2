package flip

// Per-block vertical flips for the BC1 to BC5 families. Each function
// mirrors the four pixel rows of one 4x4 block in place.

// bc1Block flips an 8-byte color block. Bytes 4..7 hold one byte of
// 2-bit indices per pixel row.
func bc1Block(b []byte) {
	b[4], b[7] = b[7], b[4]
	b[5], b[6] = b[6], b[5]
}

// bc2Block flips a 16-byte block: an explicit 4-bit alpha bitmap of two
// bytes per row, followed by a BC1 color block.
func bc2Block(b []byte) {
	b[0], b[6] = b[6], b[0]
	b[1], b[7] = b[7], b[1]
	b[2], b[4] = b[4], b[2]
	b[3], b[5] = b[5], b[3]
	bc1Block(b[8:16])
}

// bc4Block flips an 8-byte interpolated channel block. Bytes 2..7 hold
// 48 bits of 3-bit indices, 12 bits per row.
func bc4Block(b []byte) {
	line01 := uint32(b[2]) | uint32(b[3])<<8 | uint32(b[4])<<16
	line23 := uint32(b[5]) | uint32(b[6])<<8 | uint32(b[7])<<16

	line10 := (line01&0x000fff)<<12 | (line01&0xfff000)>>12
	line32 := (line23&0x000fff)<<12 | (line23&0xfff000)>>12

	b[2] = byte(line32)
	b[3] = byte(line32 >> 8)
	b[4] = byte(line32 >> 16)
	b[5] = byte(line10)
	b[6] = byte(line10 >> 8)
	b[7] = byte(line10 >> 16)
}

// bc3Block flips a 16-byte block: a BC4 alpha block followed by a BC1
// color block.
func bc3Block(b []byte) {
	bc4Block(b[0:8])
	bc1Block(b[8:16])
}

// bc5Block flips a 16-byte block holding two independent BC4 blocks.
func bc5Block(b []byte) {
	bc4Block(b[0:8])
	bc4Block(b[8:16])
}
