// Package serialport implements the ISP engine's transport over a serial
// port using go.bug.st/serial.
//
// The ISP protocol needs three things from the port beyond plain reads and
// writes: line-bounded reads, a read timeout that can be changed and fully
// disabled mid-session, and control of the DTR/RTS lines that pulse the
// target into its boot ROM. Port provides exactly that surface and satisfies
// isp.Transport.
package serialport
