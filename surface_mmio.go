package vramcon

import "unsafe"

// DefaultBase is where the display hardware decodes the character grid.
const DefaultBase uintptr = 1024

// MapSurface returns a surface over the Size bytes of video memory starting
// at base. The region must be mapped and writable for the life of the
// process; it is only meaningful on the target machine.
func MapSurface(base uintptr) *Surface {
	region := unsafe.Slice((*byte)(unsafe.Pointer(base)), Size)
	return newSurfaceFrom(region)
}
