// Where: internal/infra/process/docker_runner.go
// What: Docker SDK implementation of Runner.
// Why: Evaluate projects on hosts without a local .NET SDK by running the tool in an SDK image.
package process

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/google/uuid"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/poruru/projectctx/internal/logfields"
	"github.com/poruru/projectctx/internal/meta"
)

// DockerClient defines the subset of Docker SDK methods used by DockerRunner.
// This interface enables mocking the Docker client in tests.
type DockerClient interface {
	ImagePull(ctx context.Context, refStr string, options image.PullOptions) (io.ReadCloser, error)
	ContainerCreate(
		ctx context.Context,
		config *container.Config,
		hostConfig *container.HostConfig,
		networkingConfig *network.NetworkingConfig,
		platform *ocispec.Platform,
		containerName string,
	) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerWait(
		ctx context.Context,
		containerID string,
		condition container.WaitCondition,
	) (<-chan container.WaitResponse, <-chan error)
	ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error)
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
}

// NewDockerClient constructs a Docker SDK client using environment defaults.
func NewDockerClient() (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

// isNotFound is swapped in tests; the SDK helper inspects the error chain.
var isNotFound = client.IsErrNotFound

// DockerRunner runs commands inside a throwaway container. SharedDirs and the
// working directory are bind-mounted at their host paths.
type DockerRunner struct {
	Client DockerClient
	Image  string
	// User is passed to the container; empty means the current uid:gid so
	// files written to bind mounts stay owned by the caller.
	User   string
	Out    io.Writer
	ErrOut io.Writer
	Logger *slog.Logger
}

func (r DockerRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if r.Client == nil {
		return Result{}, errDockerClientNil
	}
	if strings.TrimSpace(r.Image) == "" {
		return Result{}, errImageRequired
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return Result{}, errCommandNameRequired
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	config := &container.Config{
		Image:      r.Image,
		Cmd:        cmd.Argv(),
		WorkingDir: cmd.Dir,
		Env:        append([]string{"DOTNET_CLI_HOME=/tmp", "DOTNET_NOLOGO=1"}, cmd.Env...),
		User:       r.user(),
		Labels:     map[string]string{meta.LabelPrefix + ".managed": "true"},
	}
	hostConfig := &container.HostConfig{Mounts: bindMounts(cmd)}
	name := meta.Slug + "-" + uuid.NewString()[:8]

	created, err := r.create(ctx, config, hostConfig, name, logger)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		// Use a fresh context so cancellation still cleans up.
		if err := r.Client.ContainerRemove(context.Background(), created.ID, container.RemoveOptions{Force: true}); err != nil {
			logger.Warn("remove container failed", slog.String("container", created.ID), logfields.Error(err))
		}
	}()

	if err := r.Client.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return Result{}, fmt.Errorf("start container: %w", err)
	}

	statusCh, errCh := r.Client.ContainerWait(ctx, created.ID, container.WaitConditionNotRunning)
	var exitCode int64
	select {
	case err := <-errCh:
		if err != nil {
			return Result{}, fmt.Errorf("wait container: %w", err)
		}
	case status := <-statusCh:
		if status.Error != nil && status.Error.Message != "" {
			return Result{}, fmt.Errorf("wait container: %s", status.Error.Message)
		}
		exitCode = status.StatusCode
	}

	logs, err := r.Client.ContainerLogs(ctx, created.ID, container.LogsOptions{ShowStdout: true, ShowStderr: true})
	if err != nil {
		return Result{}, fmt.Errorf("container logs: %w", err)
	}
	defer logs.Close()

	stdout := newLineBuffer(r.Out)
	stderr := newLineBuffer(r.ErrOut)
	if _, err := stdcopy.StdCopy(stdout, stderr, logs); err != nil {
		return Result{}, fmt.Errorf("read container logs: %w", err)
	}
	for _, buf := range []*lineBuffer{stdout, stderr} {
		if err := buf.TeeErr(); err != nil {
			logger.Warn("echo build output failed", logfields.Error(err))
		}
	}
	return Result{
		ExitCode: int(exitCode),
		Stdout:   stdout.Lines(),
		Stderr:   stderr.Lines(),
	}, nil
}

func (r DockerRunner) create(
	ctx context.Context,
	config *container.Config,
	hostConfig *container.HostConfig,
	name string,
	logger *slog.Logger,
) (container.CreateResponse, error) {
	created, err := r.Client.ContainerCreate(ctx, config, hostConfig, nil, nil, name)
	if err == nil {
		return created, nil
	}
	if !isNotFound(err) {
		return container.CreateResponse{}, fmt.Errorf("create container: %w", err)
	}

	logger.Info("pulling build image", logfields.Image(r.Image))
	reader, pullErr := r.Client.ImagePull(ctx, r.Image, image.PullOptions{})
	if pullErr != nil {
		return container.CreateResponse{}, fmt.Errorf("pull image %s: %w", r.Image, pullErr)
	}
	// The pull only completes once the progress stream is drained.
	_, copyErr := io.Copy(io.Discard, reader)
	_ = reader.Close()
	if copyErr != nil {
		return container.CreateResponse{}, fmt.Errorf("pull image %s: %w", r.Image, copyErr)
	}

	created, err = r.Client.ContainerCreate(ctx, config, hostConfig, nil, nil, name)
	if err != nil {
		return container.CreateResponse{}, fmt.Errorf("create container: %w", err)
	}
	return created, nil
}

func (r DockerRunner) user() string {
	if r.User != "" {
		return r.User
	}
	uid, gid := os.Getuid(), os.Getgid()
	if uid < 0 || gid < 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", uid, gid)
}

// bindMounts returns deduplicated, sorted bind mounts for the command's
// working directory and shared directories. Nested paths collapse into their
// outermost parent.
func bindMounts(cmd Command) []mount.Mount {
	candidates := make([]string, 0, len(cmd.SharedDirs)+1)
	if cmd.Dir != "" {
		candidates = append(candidates, cmd.Dir)
	}
	candidates = append(candidates, cmd.SharedDirs...)

	var dirs []string
	for _, dir := range candidates {
		trimmed := strings.TrimSpace(dir)
		if trimmed == "" {
			continue
		}
		abs, err := filepath.Abs(trimmed)
		if err != nil {
			continue
		}
		dirs = append(dirs, filepath.Clean(abs))
	}
	sort.Strings(dirs)

	var mounts []mount.Mount
	var last string
	for _, dir := range dirs {
		if last != "" && (dir == last || strings.HasPrefix(dir, last+string(filepath.Separator))) {
			continue
		}
		mounts = append(mounts, mount.Mount{Type: mount.TypeBind, Source: dir, Target: dir})
		last = dir
	}
	return mounts
}
