// Package formats provides parsers for 3D model file formats.
//
// Parsers are lenient: a line that cannot be understood is skipped and
// reported as a *LineError on the parse result, so one bad line never costs
// the rest of the file.
package formats
