// Package source parses and validates the YAML source list that describes the
// cape to generate. The list maps entry names to records; the single record
// whose type contains "custom-source" names the template cape, the new cape,
// where the Libero project goes, and the build options passed to the design
// script. Documents are checked against an embedded JSON Schema before any
// field is read.
package source
