// Package toolchain checks that the Microchip toolchain is reachable and runs
// the Libero design script for a scaffolded cape.
package toolchain
