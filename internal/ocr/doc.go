// Package ocr is the optical character recognition boundary of the renamer.
//
// Everything upstream of this package sees OCR as a single operation,
// Recognizer.Recognize: a cropped raster region goes in and the recognized
// text comes out. The production implementation wraps the Tesseract engine
// via gosseract/v2.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Languages
//
// The default language is English ("eng"). Several languages may be combined
// with '+', e.g. "eng+deu", exactly as on the tesseract command line.
//
// # Pre-processing
//
// Zones on scanned documents are often small and low contrast. With
// Tesseract.Preprocess enabled the crop is converted to grayscale, its
// contrast is raised and crops shorter than MinTextHeight pixels are
// upscaled before recognition.
//
// # Error Handling
//
// Engine failures (initialization, unsupported language, unreadable pixel
// data) are returned as *EngineError. An empty crop is not an error: it is
// recognized as the empty string without calling the engine.
package ocr
