// Package pipeline runs the full cape build: load the source description,
// resolve it against the gateware checkout, build the script arguments,
// scaffold the cape and hand it to Libero.
package pipeline
