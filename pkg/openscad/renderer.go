// Package openscad turns OpenSCAD sources into meshes by running the
// openscad binary and decoding the STL it writes.
package openscad

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/philipparndt/meshforge/pkg/stl"
)

// ErrNotInstalled is returned when the openscad binary cannot be found
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

var (
	useRegex     = regexp.MustCompile(`^\s*use\s*<([^>]+)>`)
	includeRegex = regexp.MustCompile(`^\s*include\s*<([^>]+)>`)
)

// Renderer runs openscad for files relative to a work directory
type Renderer struct {
	workDir string
	// Binary is the openscad executable, looked up in PATH
	Binary string
}

// NewRenderer creates a new OpenSCAD renderer
func NewRenderer(workDir string) *Renderer {
	return &Renderer{
		workDir: workDir,
		Binary:  "openscad",
	}
}

func (r *Renderer) abs(scadFile string) string {
	if filepath.IsAbs(scadFile) {
		return scadFile
	}
	return filepath.Join(r.workDir, scadFile)
}

// RenderToSTL renders an OpenSCAD file to an STL file
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	bin, err := exec.LookPath(r.Binary)
	if err != nil {
		return ErrNotInstalled
	}

	cmd := exec.CommandContext(ctx, bin, "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var msg strings.Builder
		fmt.Fprintf(&msg, "failed to render %s: %v", scadFile, err)
		if stderr.Len() > 0 {
			msg.WriteString("\nstderr: ")
			msg.WriteString(stderr.String())
		}
		if stdout.Len() > 0 {
			msg.WriteString("\nstdout: ")
			msg.WriteString(stdout.String())
		}
		return errors.New(msg.String())
	}
	return nil
}

// Load renders scadFile into a temporary STL and decodes it. It also
// returns the source files the model depends on.
func (r *Renderer) Load(ctx context.Context, scadFile string, opts stl.Options) (*stl.Solid, []string, error) {
	deps, err := r.ResolveDependencies(scadFile)
	if err != nil {
		return nil, nil, err
	}

	tmp, err := os.MkdirTemp("", "meshforge-scad-")
	if err != nil {
		return nil, deps, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	out := filepath.Join(tmp, strings.TrimSuffix(filepath.Base(scadFile), filepath.Ext(scadFile))+".stl")
	if err := r.RenderToSTL(ctx, scadFile, out); err != nil {
		return nil, deps, err
	}
	solid, err := stl.Load(out, opts)
	if err != nil {
		return nil, deps, err
	}
	return solid, deps, nil
}

// ResolveDependencies finds the file and all files it pulls in through
// use/include statements, as absolute paths.
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string
	if err := r.resolve(r.abs(scadFile), visited, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}

func (r *Renderer) resolve(scadFile string, visited map[string]bool, deps *[]string) error {
	if visited[scadFile] {
		return nil
	}
	visited[scadFile] = true
	*deps = append(*deps, scadFile)

	fileDeps, err := r.parseDependencies(scadFile)
	if err != nil {
		return err
	}
	for _, dep := range fileDeps {
		if err := r.resolve(dep, visited, deps); err != nil {
			return err
		}
	}
	return nil
}

// parseDependencies lists the use/include targets of a single file
func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	scanner := bufio.NewScanner(file)
	dir := filepath.Dir(scadFile)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		for _, re := range []*regexp.Regexp{useRegex, includeRegex} {
			if matches := re.FindStringSubmatch(line); len(matches) > 1 {
				deps = append(deps, r.resolveDepPath(matches[1], dir))
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolveDepPath resolves a dependency relative to the including file,
// falling back to the work directory.
func (r *Renderer) resolveDepPath(depPath, currentDir string) string {
	if strings.HasPrefix(depPath, "./") || strings.HasPrefix(depPath, "../") {
		return filepath.Clean(filepath.Join(currentDir, depPath))
	}
	abs := filepath.Join(currentDir, depPath)
	if _, err := os.Stat(abs); err == nil {
		return filepath.Clean(abs)
	}
	return filepath.Clean(filepath.Join(r.workDir, depPath))
}
