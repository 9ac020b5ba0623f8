// Package hostinfo gathers the host facts living next to the interface
// addresses: the node name, the amount of physical memory and the number
// of CPUs the process may run on. Each one is a single, stateless call.
package hostinfo
