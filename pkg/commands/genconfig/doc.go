// Package genconfig implements the config command, which prints or writes a
// configuration file with every default commented out.
package genconfig
