// Package genrecords generates synthetic customer datasets for demoing and
// load-testing the persona pipeline.
package genrecords

// Config holds configuration for dataset generation.
type Config struct {
	NumRecords  int     // number of customer rows to generate
	OutputFile  string  // destination CSV path
	MissingRate float64 // probability a generated cell is left blank
	Verbose     bool    // enable verbose logging
}
