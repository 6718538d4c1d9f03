package assetripper

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"vtripper/internal/logging"
	"vtripper/internal/services"
)

// ExportVerb is the AssetRipper CLI verb that writes a Unity project.
const ExportVerb = "unityproject"

const (
	stderrTailLines = 20
	maxLineBytes    = 1024 * 1024
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// ExitError reports a decompiler process that ran but exited non-zero.
type ExitError struct {
	Code   int
	Stderr []string
}

func (e *ExitError) Error() string {
	if len(e.Stderr) == 0 {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return fmt.Sprintf("exit status %d: %s", e.Code, e.Stderr[len(e.Stderr)-1])
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger routes decompiler output to the given logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client wraps AssetRipper CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
	logger  *slog.Logger
}

// Result summarizes one export invocation.
type Result struct {
	Command  string
	Lines    int
	ExitCode int
	Duration time.Duration
}

// New constructs an AssetRipper client. A timeout of zero waits indefinitely.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("assetripper binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Args returns the argument vector for exporting gameDir into outputDir.
func Args(gameDir, outputDir string) []string {
	return []string{ExportVerb, gameDir, outputDir}
}

// DisplayCommand renders the invocation the way it would be typed in a shell,
// with the binary and both paths double quoted.
func DisplayCommand(binary, gameDir, outputDir string) string {
	return fmt.Sprintf("%q %s %q %q", binary, ExportVerb, gameDir, outputDir)
}

// Export runs the decompiler and waits for it to exit. Every non-empty output
// line is logged. A non-zero exit status is logged as a warning and is not
// an error. Failing to start the process, a timeout, or cancellation are
// errors.
func (c *Client) Export(ctx context.Context, gameDir, outputDir string) (Result, error) {
	if strings.TrimSpace(gameDir) == "" || strings.TrimSpace(outputDir) == "" {
		return Result{}, services.Wrap(services.ErrConfiguration, "assetripper", "export", "game and output directories are required", nil)
	}

	result := Result{Command: DisplayCommand(c.binary, gameDir, outputDir)}
	c.logger.Info("executing command", logging.String("command", result.Command))

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	err := c.exec.Run(runCtx, c.binary, Args(gameDir, outputDir), func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		result.Lines++
		c.logger.Info(line)
	})
	result.Duration = time.Since(start)

	if err == nil {
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return result, services.Wrap(services.ErrExternalTool, "assetripper", "export",
			fmt.Sprintf("timed out after %s", c.timeout), err)
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.Code
		attrs := []logging.Attr{
			logging.Int("exit_code", exitErr.Code),
			logging.Int("output_lines", result.Lines),
			logging.String(logging.FieldImpact, "exported project may be incomplete; later stages fail on missing files"),
			logging.String(logging.FieldErrorHint, "review the decompiler output above"),
		}
		if len(exitErr.Stderr) > 0 {
			attrs = append(attrs, logging.String("stderr_tail", strings.Join(exitErr.Stderr, " | ")))
		}
		logging.WarnWithContext(c.logger, "decompiler exited with non-zero status", "decompiler_exit_status", attrs...)
		return result, nil
	}

	return result, services.Wrap(services.ErrExternalTool, "assetripper", "export", "run "+c.binary, err)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var (
		wg      sync.WaitGroup
		scanErr error
		once    sync.Once
		tailMu  sync.Mutex
		tail    []string
	)

	scan := func(r io.Reader, emit func(string)) {
		defer wg.Done()
		if err := readLines(r, emit); err != nil {
			_ = cmd.Process.Kill()
			once.Do(func() {
				scanErr = err
			})
		}
	}

	var lineMu sync.Mutex
	forward := func(line string) {
		if onLine == nil {
			return
		}
		lineMu.Lock()
		defer lineMu.Unlock()
		onLine(line)
	}

	keepStderr := func(line string) {
		forward(line)
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		tailMu.Lock()
		defer tailMu.Unlock()
		tail = append(tail, line)
		if len(tail) > stderrTailLines {
			tail = tail[len(tail)-stderrTailLines:]
		}
	}

	wg.Add(2)
	go scan(stdout, forward)
	go scan(stderr, keepStderr)
	wg.Wait()

	if scanErr != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return &ExitError{Code: exitErr.ExitCode(), Stderr: tail}
		}
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}

// readLines emits each line of r without its line ending. Lines longer than
// maxLineBytes are truncated. r is always read to EOF so the child never
// blocks on a full pipe.
func readLines(r io.Reader, emit func(string)) error {
	reader := bufio.NewReaderSize(r, 64*1024)
	line := make([]byte, 0, 4096)
	for {
		chunk, err := reader.ReadSlice('\n')
		if room := maxLineBytes - len(line); room > 0 {
			line = append(line, chunk[:min(len(chunk), room)]...)
		}
		switch {
		case err == nil:
			emit(strings.TrimRight(string(line), "\r\n"))
			line = line[:0]
		case errors.Is(err, bufio.ErrBufferFull):
		case errors.Is(err, io.EOF):
			if len(line) > 0 {
				emit(strings.TrimRight(string(line), "\r\n"))
			}
			return nil
		default:
			_, _ = io.Copy(io.Discard, reader)
			return err
		}
	}
}
