package deps

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"mkvsmith/internal/config"
	"mkvsmith/internal/services"
)

// Tool sources reported by Tool.Source.
const (
	SourcePath    = "path"
	SourceFlatpak = "flatpak"
	SourceCommon  = "common location"
)

const flatpakListTimeout = 5 * time.Second

// Tool is a resolved external binary. Argv holds the command prefix: a single
// executable path, or a "flatpak run --command=<name> <app>" sequence.
type Tool struct {
	Name       string
	Configured string
	Argv       []string
	Source     string
}

// Available reports whether the tool was resolved.
func (t Tool) Available() bool {
	return len(t.Argv) > 0
}

// Require returns an ErrToolNotFound-marked error when the tool is unavailable.
func (t Tool) Require() error {
	if t.Available() {
		return nil
	}
	return services.Wrap(services.ErrToolNotFound, "deps", "resolve "+t.Name, "binary "+t.Configured+" not found", nil)
}

// Command builds an exec.Cmd invoking the tool with args appended to its prefix.
func (t Tool) Command(ctx context.Context, args ...string) *exec.Cmd {
	argv := t.Args(args...)
	return exec.CommandContext(ctx, argv[0], argv[1:]...)
}

// Args returns the full argument vector including the tool prefix.
func (t Tool) Args(args ...string) []string {
	prefix := t.Argv
	if len(prefix) == 0 {
		prefix = []string{t.Configured}
	}
	out := make([]string, 0, len(prefix)+len(args))
	out = append(out, prefix...)
	return append(out, args...)
}

func (t Tool) String() string {
	if !t.Available() {
		return t.Configured
	}
	return strings.Join(t.Argv, " ")
}

// Toolchain bundles the three binaries mkvsmith orchestrates.
type Toolchain struct {
	FFprobe  Tool
	Mkvmerge Tool
	FFmpeg   Tool
}

// Resolver locates tools. The zero value uses exec.LookPath, the flatpak CLI,
// and the usual install directories.
type Resolver struct {
	LookPath     func(string) (string, error)
	ListFlatpaks func(context.Context) ([]string, error)
	CommonDirs   []string
	Flatpak      bool

	flatpakApps   []string
	flatpakLoaded bool
}

// NewResolver returns a Resolver honouring the tool configuration.
func NewResolver(tools config.Tools) *Resolver {
	return &Resolver{Flatpak: tools.FlatpakFallback}
}

// ResolveToolchain resolves all three configured tools.
func ResolveToolchain(ctx context.Context, tools config.Tools) Toolchain {
	r := NewResolver(tools)
	return Toolchain{
		FFprobe:  r.Resolve(ctx, "ffprobe", tools.FFprobe),
		Mkvmerge: r.Resolve(ctx, "mkvmerge", tools.Mkvmerge),
		FFmpeg:   r.Resolve(ctx, "ffmpeg", tools.FFmpeg),
	}
}

// Resolve locates a single tool: configured value through PATH, then flatpak
// applications, then common install directories.
func (r *Resolver) Resolve(ctx context.Context, name, configured string) Tool {
	configured = strings.TrimSpace(configured)
	if configured == "" {
		configured = name
	}
	tool := Tool{Name: name, Configured: configured}

	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if resolved, err := lookPath(configured); err == nil {
		tool.Argv = []string{resolved}
		tool.Source = SourcePath
		return tool
	}

	if r.Flatpak {
		if app := r.flatpakApp(ctx, name); app != "" {
			tool.Argv = []string{"flatpak", "run", "--command=" + name, app}
			tool.Source = SourceFlatpak
			return tool
		}
	}

	for _, dir := range r.commonDirs() {
		candidate := filepath.Join(dir, filepath.Base(configured))
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			tool.Argv = []string{candidate}
			tool.Source = SourceCommon
			return tool
		}
	}
	return tool
}

// flatpakApp returns the installed application that ships name, if any.
func (r *Resolver) flatpakApp(ctx context.Context, name string) string {
	if !r.flatpakLoaded {
		r.flatpakLoaded = true
		list := r.ListFlatpaks
		if list == nil {
			list = listFlatpakApps
		}
		if apps, err := list(ctx); err == nil {
			r.flatpakApps = apps
		}
	}
	var marker string
	switch name {
	case "ffmpeg", "ffprobe":
		marker = "ffmpeg"
	case "mkvmerge":
		marker = "mkvtoolnix"
	default:
		return ""
	}
	for _, app := range r.flatpakApps {
		if strings.Contains(strings.ToLower(app), marker) {
			return app
		}
	}
	return ""
}

func (r *Resolver) commonDirs() []string {
	if r.CommonDirs != nil {
		return r.CommonDirs
	}
	dirs := []string{"/usr/bin", "/usr/local/bin", "/snap/bin"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "bin"), filepath.Join(home, ".local", "bin"))
	}
	return dirs
}

func listFlatpakApps(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, flatpakListTimeout)
	defer cancel()
	output, err := exec.CommandContext(ctx, "flatpak", "list", "--app", "--columns=application").Output()
	if err != nil {
		return nil, err
	}
	var apps []string
	for _, line := range strings.Split(string(output), "\n") {
		if app := strings.TrimSpace(line); app != "" {
			apps = append(apps, app)
		}
	}
	return apps, nil
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
