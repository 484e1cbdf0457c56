// Package imaging loads raster images, turns them upright, and applies a
// bounded set of geometric and compositing transforms before re-encoding.
//
// The Image type is the entry point. It owns one PixelBuffer, remembers the
// format detected at load (GIF, PNG or JPEG) and the source path, and exposes
// Resize, Crop, Thumb, AddImage, AddText, Filter, Clone and Save.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with the origin at the
// top-left corner. X increases rightward and Y increases downward. Every
// buffer has its origin at (0,0).
//
// # Transparency
//
// Buffers are non-premultiplied RGBA. Palette transparency is converted to
// alpha at decode time. Transforms allocate transparent canvases, so alpha
// survives every operation and is written out by the PNG encoder. JPEG has no
// alpha: transparent regions are flattened against an opaque background
// (white by default) only when encoding.
//
// # Geometry
//
//   - Resize: aspect-preserving shrink to fit a bounding box, dominant
//     axis first, then the other axis.
//   - Crop: pure pixel copy of a window clamped to the image.
//   - Thumb: cover-fit. A centered window with the target aspect ratio is
//     cut from the source (optionally displaced) and resampled to the exact
//     target size.
//
// Resampling uses area averaging (box filter).
//
// # Compositing
//
// AddImage and AddText place content using an Anchor, a (vertical,
// horizontal) pair. Offsets are not clamped: content hanging off the edge is
// clipped silently.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. An Image is not: callers
// sharing one must serialize access. Package-level functions are stateless
// and can be called concurrently on different buffers.
//
// # Error Handling
//
// Errors wrap one of ErrNotFound, ErrUnsupportedFormat, ErrInvalidArgument or
// ErrUnknownFilter. Missing or unreadable orientation metadata is not an
// error; the image is used as decoded.
package imaging
