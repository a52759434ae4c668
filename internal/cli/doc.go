// Package cli turns command-line flags into an app.Config. It owns flag
// validation and the process exit codes for usage errors (code 2); help
// output exits cleanly.
package cli
