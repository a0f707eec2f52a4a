package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// PagerThreshold is the number of rows above which a listing is paged.
const PagerThreshold = 5

// DefaultPager is used when neither the configuration nor $PAGER names one.
const DefaultPager = "less -R"

// PagerConfig controls paging.
type PagerConfig struct {
	// Command is the pager command line; $PAGER, then DefaultPager, when empty.
	Command  string
	Disabled bool
}

// PagerCommand returns the effective pager command line.
func (p PagerConfig) PagerCommand() string {
	if p.Command != "" {
		return p.Command
	}
	if env := os.Getenv("PAGER"); env != "" {
		return env
	}
	return DefaultPager
}

// ShouldPage reports whether rows rows of output go through the pager: only
// text mode on a terminal with more than PagerThreshold rows.
func (r *Renderer) ShouldPage(rows int, p PagerConfig) bool {
	return !p.Disabled && r.isTTY && r.EffectiveMode() == ModeText && rows > PagerThreshold
}

// Paged runs render against the pager when ShouldPage holds, and against the
// standard output otherwise. If the pager cannot be started the rendered
// output is written directly.
func (r *Renderer) Paged(rows int, p PagerConfig, render func(*Renderer)) error {
	if !r.ShouldPage(rows, p) {
		render(r)
		return nil
	}

	var buf bytes.Buffer
	render(r.withOutput(&buf))

	cmd := exec.Command("sh", "-c", p.PagerCommand())
	cmd.Stdin = &buf
	cmd.Stdout = r.out
	cmd.Stderr = r.errOut
	if err := cmd.Start(); err != nil {
		_, werr := io.Copy(r.out, &buf)
		return werr
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("pager %q failed: %w", p.PagerCommand(), err)
	}
	return nil
}

// withOutput returns a copy of r writing to out with the same styling.
func (r *Renderer) withOutput(out io.Writer) *Renderer {
	cp := *r
	cp.out = out
	return &cp
}
