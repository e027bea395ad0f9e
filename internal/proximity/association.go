package proximity

// Association is one emitted SNP/marker function class row, before a primary
// key is assigned by the writer.
type Association struct {
	SNPKey        int64
	MarkerKey     int64
	FxnKey        int
	CoordCacheKey int64
	Distance      int64 // bp, 0 for overlay and within-coordinates rows
	Direction     Direction
}
