// Package scaffold materializes a new cape by cloning a built-in template cape
// and renaming the template's identifier in every text file of the copy. It
// works on a billy.Filesystem rooted at the gateware cape storage directory,
// so callers can run it against the real tree (osfs) or in memory (memfs).
package scaffold
