// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// WritePIDFile records pid at path, creating parent directories as needed.
//
// Parameters:
//   - path: Destination PID file path
//   - pid: Process ID to record
//
// Returns:
//   - error: Error if the directory or file cannot be written
func WritePIDFile(path string, pid int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create PID file directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// ReadPIDFile returns the process ID recorded at path.
//
// Returns:
//   - int: The recorded process ID
//   - error: Error if the file is missing or does not contain a valid PID
func ReadPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid PID file contents %q", strings.TrimSpace(string(data)))
	}
	return pid, nil
}

// RemovePIDFile deletes the PID file at path. A missing file is not an error,
// so RemovePIDFile is safe to call during cleanup regardless of prior state.
func RemovePIDFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// Daemonize re-executes the current binary as a detached background process
// and records the child PID at pidFile.
//
// The child runs in a new session with stdin, stdout, and stderr attached to
// the null device, since a backgrounded MCP server has no controlling
// terminal and must not inherit the parent's stdio.
//
// Parameters:
//   - pidFile: Path where the child PID is recorded
//   - args: Arguments for the child process (the daemon flag must already be stripped,
//     otherwise the child would fork again)
//
// Returns:
//   - int: PID of the started background process
//   - error: Error if the binary path cannot be resolved or the child fails to start
func Daemonize(pidFile string, args []string) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to resolve executable path: %w", err)
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	cmd := exec.Command(exe, args...)
	cmd.Stdin = devNull
	cmd.Stdout = devNull
	cmd.Stderr = devNull
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start background process: %w", err)
	}

	pid := cmd.Process.Pid
	if err := WritePIDFile(pidFile, pid); err != nil {
		// Best effort: don't leave an untracked daemon behind.
		_ = cmd.Process.Signal(syscall.SIGTERM)
		return 0, err
	}

	// Detach so the parent can exit without waiting on the child.
	_ = cmd.Process.Release()

	return pid, nil
}

// StopDaemon signals the process recorded at pidFile with SIGTERM and removes
// the PID file. A stale PID file (process already gone) is removed and
// reported as an error so the operator knows no process was stopped.
func StopDaemon(pidFile string) error {
	pid, err := ReadPIDFile(pidFile)
	if err != nil {
		return err
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		_ = RemovePIDFile(pidFile)
		return fmt.Errorf("process %d not found: %w", pid, err)
	}

	if err := proc.Signal(syscall.SIGTERM); err != nil {
		_ = RemovePIDFile(pidFile)
		return fmt.Errorf("failed to signal process %d: %w", pid, err)
	}

	return RemovePIDFile(pidFile)
}
