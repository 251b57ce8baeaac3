//go:build !unix

package process

import "os/exec"

// killProcessGroupOnCancel keeps the default cancel behavior, which kills
// only the direct child.
func killProcessGroupOnCancel(*exec.Cmd) {}
