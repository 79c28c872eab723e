package nms

// defaultBackend serves package level selections
var defaultBackend = NewSequential()

// Select runs greedy Non-Maximum Suppression over the boxes on the
// sequential backend and returns the indices of the surviving boxes in
// priority order.  It is the plain entry point for callers that do not
// need to choose a backend, see Backend.Select for the scores and Params
// contract.
func Select(boxes []Box, scores []float32, p Params) ([]int32, error) {
	return defaultBackend.Select(boxes, scores, p)
}
