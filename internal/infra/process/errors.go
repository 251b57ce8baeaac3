// Where: internal/infra/process/errors.go
// What: Shared error definitions for process runners.
// Why: Ensure consistent error wrapping without dynamic error creation.
package process

import "errors"

var (
	errCommandNameRequired = errors.New("command name is required")
	errDockerClientNil     = errors.New("docker client is nil")
	errImageRequired       = errors.New("docker image is required")
)
