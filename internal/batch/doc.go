// Package batch runs the zone-based rename over a list of source images.
//
// For every source file, in order, the Processor decodes the image, runs OCR
// on each zone, derives a filename stem from the recognized text, resolves a
// collision-free destination path and copies the file there. Source files are
// never moved, modified or deleted.
//
// # Failure Isolation
//
// A failure while handling one file is recorded as a *FileError tagged with
// its Kind (decode, ocr, filesystem or unexpected), counted, logged, and the
// batch moves on to the next file. Only three things stop a run:
//
//   - a missing precondition, checked before any file is touched
//     (*PreconditionError)
//   - the destination directory being unavailable, before or during the run
//     (ErrDestinationUnavailable)
//   - cancellation of the context, checked between files
//
// # Concurrency
//
// A run is strictly sequential: one file, one zone, one OCR call at a time.
// A Processor accepts a single run at a time and rejects overlapping calls
// with ErrBusy. Copies create their destination exclusively, so a file that
// appears between the collision check and the copy is never overwritten;
// the name is resolved again instead.
package batch
