// Package naming turns recognized zone text into collision-free filenames.
//
// The pipeline for one source file is:
//
//  1. Sanitize each zone's OCR text (optional, see Options.CleanText)
//  2. DeriveStem joins the non-empty fragments with "_" or falls back to
//     "no_text_found_<i>", optionally prefixes a 3-digit counter, replaces
//     reserved filename characters and truncates to MaxStemLength characters
//  3. Resolve picks the first free "<stem>.<ext>", "<stem>_1.<ext>", ... in
//     the destination directory
//
// Lengths are counted in characters (runes), not bytes.
package naming
