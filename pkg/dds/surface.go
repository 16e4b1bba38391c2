package dds

import "fmt"

// SurfaceKind identifies what a surface represents. The values match the
// OpenGL texture targets so a renderer can use them directly.
type SurfaceKind uint32

const (
	KindTexture1D        SurfaceKind = 0x0DE0
	KindTexture2D        SurfaceKind = 0x0DE1
	KindTexture3D        SurfaceKind = 0x806F
	KindCubemapPositiveX SurfaceKind = 0x8515
	KindCubemapNegativeX SurfaceKind = 0x8516
	KindCubemapPositiveY SurfaceKind = 0x8517
	KindCubemapNegativeY SurfaceKind = 0x8518
	KindCubemapPositiveZ SurfaceKind = 0x8519
	KindCubemapNegativeZ SurfaceKind = 0x851A
)

func (k SurfaceKind) String() string {
	switch k {
	case KindTexture1D:
		return "1D"
	case KindTexture2D:
		return "2D"
	case KindTexture3D:
		return "3D"
	case KindCubemapPositiveX:
		return "+X"
	case KindCubemapNegativeX:
		return "-X"
	case KindCubemapPositiveY:
		return "+Y"
	case KindCubemapNegativeY:
		return "-Y"
	case KindCubemapPositiveZ:
		return "+Z"
	case KindCubemapNegativeZ:
		return "-Z"
	}
	return fmt.Sprintf("SurfaceKind(0x%04x)", uint32(k))
}

// IsCubeFace reports whether k is one of the six cube-map faces.
func (k SurfaceKind) IsCubeFace() bool {
	return k >= KindCubemapPositiveX && k <= KindCubemapNegativeZ
}

// cubeFaces lists the faces in on-disk order with their capability bits.
var cubeFaces = []struct {
	bit  Caps2
	kind SurfaceKind
}{
	{Caps2CubemapPositiveX, KindCubemapPositiveX},
	{Caps2CubemapNegativeX, KindCubemapNegativeX},
	{Caps2CubemapPositiveY, KindCubemapPositiveY},
	{Caps2CubemapNegativeY, KindCubemapNegativeY},
	{Caps2CubemapPositiveZ, KindCubemapPositiveZ},
	{Caps2CubemapNegativeZ, KindCubemapNegativeZ},
}

// Surface is one decoded image plane.
type Surface struct {
	Kind   SurfaceKind
	Level  int // mip level, 0 is the base
	Width  int
	Height int
	Depth  int // slices held in Data; 1 unless Kind is KindTexture3D
	Data   []byte
}

func (s *Surface) String() string {
	if s.Kind == KindTexture3D {
		return fmt.Sprintf("%s level %d: %dx%dx%d, %d bytes", s.Kind, s.Level, s.Width, s.Height, s.Depth, len(s.Data))
	}
	return fmt.Sprintf("%s level %d: %dx%d, %d bytes", s.Kind, s.Level, s.Width, s.Height, len(s.Data))
}

// Texture is one array element: its surfaces in on-disk order, face by
// face and mip level by mip level within a face.
type Texture struct {
	Surfaces []*Surface
}

// Size returns the total bytes held by the texture's surfaces.
func (t *Texture) Size() int {
	n := 0
	for _, s := range t.Surfaces {
		n += len(s.Data)
	}
	return n
}

// ByKind returns the surfaces of one kind, such as the mip chain of a
// single cube-map face, in level order.
func (t *Texture) ByKind(kind SurfaceKind) []*Surface {
	var out []*Surface
	for _, s := range t.Surfaces {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
