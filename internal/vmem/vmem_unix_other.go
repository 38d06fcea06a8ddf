//go:build unix && !linux

package vmem

const mapNoReserve = 0
