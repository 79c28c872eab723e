/*
go-nms implements greedy Non-Maximum Suppression (NMS) over axis aligned
bounding boxes.  Given the boxes produced by an object detector, and optionally
their confidence scores, it selects the subset of boxes whose pairwise overlap
stays below a configurable IoU threshold, preferring higher scored boxes.

Selection runs on one of two interchangeable backends, a single threaded
sequential implementation and a data parallel implementation backed by a
worker pool.  Both backends produce identical selections for the same inputs,
callers choose one explicitly.

See example code and usage in the examples subdirectory.
*/
package nms
