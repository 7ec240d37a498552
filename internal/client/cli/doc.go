// Package cli is the gymctl command-line client for the membership API.
//
// Commands: signup, signin, me, changepass, cancel, logout. Passed on the
// command line, a single command runs and the process exits; without one,
// an interactive prompt is started (type 'help').
package cli
