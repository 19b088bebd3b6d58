// Package imaging provides the image primitives used by the zone renamer.
//
// It decodes source images, crops zones out of them, fits a preview of an
// image onto a canvas and renders the zone overlay on top of that preview.
// All operations work with standard Go image.Image values and use a
// coordinate system where (0,0) is the top-left corner, X increases
// rightward and Y increases downward.
//
// # Coordinate System
//
// For regions, (x1,y1) is inclusive (top-left) and (x2,y2) is exclusive
// (bottom-right). Regions are relative to the image origin even when the
// decoded image's bounds do not start at (0,0).
//
// # Orientation
//
// Images are decoded with EXIF auto-orientation, so a portrait photo stored
// sideways is previewed, zoned and cropped upright. Preview and batch use the
// same decoder and therefore agree on pixel coordinates.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Decode failures are reported as *DecodeError so callers can tell an
// unreadable source apart from later pipeline failures. Crops never fail: a
// zone that lies partly or fully outside the image is clamped to the image
// and may produce an empty image.
package imaging
