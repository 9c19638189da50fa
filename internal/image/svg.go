package image

// SVGRasterizer converts an SVG document to PNG bytes. No implementation
// is bundled here: raster decoding and SVG-to-PNG conversion are out of
// the rendering core's scope (spec.md §1). Callers that need SVG support
// inject one; internal/resource reports SVG payloads it can't rasterize
// itself via ErrNeedsRasterization.
type SVGRasterizer interface {
	RasterizePNG(svg []byte) (png []byte, err error)
}
