// Package track keeps a fixed-capacity table of color regions and follows
// them from frame to frame.
//
// Each call to Tracker.Update runs two phases over one frame:
//
//  1. Every active slot is re-measured by growing a rectangle from its
//     previous center. Slots whose new rectangle is rejected are freed.
//  2. The frame is scanned on a Step-sized grid, top to bottom and left to
//     right, for pixels of the primary color. Each hit is grown into a
//     rectangle and, unless rejected, stored in the lowest free slot.
//     Scanning stops once every slot is occupied.
//
// A rectangle is rejected when its width or height is below MinSize, above
// MaxSize (when MaxSize is set), or when it lies within another active
// slot's rectangle grown by Step, or the other way round.
//
// # Identity
//
// An object's ID is the index of its slot. It stays the same only while the
// object re-validates on every frame. After a loss the slot is freed and a
// later reappearance takes whichever slot is lowest and free.
//
// # Thread Safety
//
// A Tracker is single-owner state. Update, Reset and Reconfigure must not
// be called concurrently.
package track
