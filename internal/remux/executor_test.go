package remux

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"mkvsmith/internal/deps"
	"mkvsmith/internal/logging"
	"mkvsmith/internal/media/tracks"
	"mkvsmith/internal/ops"
	"mkvsmith/internal/services"
)

// writeLastArg is a stand-in for ffmpeg: it writes its last argument.
const writeLastArg = `for last; do :; done
printf 'transcoded' > "$last"
`

// writeOutputFlag is a stand-in for mkvmerge: "-o PATH" comes first.
const writeOutputFlag = `printf 'muxed' > "$2"
`

func scriptTool(t *testing.T, name, body string) deps.Tool {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".sh")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return deps.Tool{Name: name, Configured: name, Argv: []string{"/bin/sh", path}, Source: deps.SourcePath}
}

func transcodePlan(t *testing.T, dir string) *Plan {
	t.Helper()
	src := touch(t, dir, "movie.mkv")
	return compile(t, tracks.List{videoTrack(0), audioTrack(1, "dts", true)}, ops.NewQueue(ops.TranscodeAudio{Index: 1, Codec: "ac3"}), []string{src}, src)
}

func assertNoTemps(t *testing.T, plan *Plan) {
	t.Helper()
	for _, temp := range plan.TempFiles() {
		if _, err := os.Stat(temp); !os.IsNotExist(err) {
			t.Fatalf("expected temp %s removed, stat err=%v", temp, err)
		}
	}
}

func TestExecuteReplacesOutputInPlace(t *testing.T) {
	dir := t.TempDir()
	plan := transcodePlan(t, dir)
	tc := deps.Toolchain{
		FFmpeg:   scriptTool(t, "ffmpeg", writeLastArg),
		Mkvmerge: scriptTool(t, "mkvmerge", writeOutputFlag),
	}

	require.NoError(t, NewExecutor(tc, logging.NewNop()).Execute(context.Background(), plan))

	data, err := os.ReadFile(plan.Mux.Output)
	require.NoError(t, err)
	require.Equal(t, "muxed", string(data))
	assertNoTemps(t, plan)
}

func TestExecuteMuxFailureKeepsSourceAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	plan := transcodePlan(t, dir)
	tc := deps.Toolchain{
		FFmpeg:   scriptTool(t, "ffmpeg", writeLastArg),
		Mkvmerge: scriptTool(t, "mkvmerge", "printf 'Error: The file could not be opened.' \nexit 2\n"),
	}

	err := NewExecutor(tc, logging.NewNop()).Execute(context.Background(), plan)
	require.ErrorIs(t, err, services.ErrExternalTool)

	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	require.Equal(t, "mkvmerge", execErr.Tool)
	require.Equal(t, 2, execErr.ExitCode)
	require.Contains(t, execErr.Diagnostic, "could not be opened")

	data, readErr := os.ReadFile(plan.Source)
	require.NoError(t, readErr)
	require.Equal(t, "data", string(data), "source must survive a failed mux")
	assertNoTemps(t, plan)
}

func TestExecuteTranscodeFailureSkipsMux(t *testing.T) {
	dir := t.TempDir()
	plan := transcodePlan(t, dir)
	marker := filepath.Join(dir, "mkvmerge-ran")
	tc := deps.Toolchain{
		FFmpeg:   scriptTool(t, "ffmpeg", "echo 'Unknown encoder' >&2\nexit 1\n"),
		Mkvmerge: scriptTool(t, "mkvmerge", "touch '"+marker+"'\n"),
	}

	err := NewExecutor(tc, logging.NewNop()).Execute(context.Background(), plan)
	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	require.Equal(t, "ffmpeg", execErr.Tool)
	require.Equal(t, 1, execErr.ExitCode)
	require.Contains(t, execErr.Diagnostic, "Unknown encoder")

	if _, statErr := os.Stat(marker); !os.IsNotExist(statErr) {
		t.Fatal("mkvmerge must not run after a failed transcode")
	}
	assertNoTemps(t, plan)
}

func TestExecuteRequiresMuxTool(t *testing.T) {
	dir := t.TempDir()
	src := touch(t, dir, "movie.mkv")
	plan := compile(t, tracks.List{videoTrack(0)}, nil, []string{src}, src)

	err := NewExecutor(deps.Toolchain{Mkvmerge: deps.Tool{Name: "mkvmerge", Configured: "mkvmerge"}}, logging.NewNop()).
		Execute(context.Background(), plan)
	require.ErrorIs(t, err, services.ErrToolNotFound)
}

func TestExecuteRequiresTranscoderForTranscodePass(t *testing.T) {
	dir := t.TempDir()
	plan := transcodePlan(t, dir)
	tc := deps.Toolchain{
		FFmpeg:   deps.Tool{Name: "ffmpeg", Configured: "ffmpeg"},
		Mkvmerge: scriptTool(t, "mkvmerge", writeOutputFlag),
	}
	err := NewExecutor(tc, logging.NewNop()).Execute(context.Background(), plan)
	require.ErrorIs(t, err, services.ErrToolNotFound)
}

func TestExecuteMissingStagedOutput(t *testing.T) {
	dir := t.TempDir()
	src := touch(t, dir, "movie.mkv")
	plan := compile(t, tracks.List{videoTrack(0)}, nil, []string{src}, filepath.Join(dir, "out.mkv"))
	tc := deps.Toolchain{Mkvmerge: scriptTool(t, "mkvmerge", "exit 0\n")}

	err := NewExecutor(tc, logging.NewNop()).Execute(context.Background(), plan)
	require.ErrorIs(t, err, services.ErrFileSystem)
	if _, statErr := os.Stat(plan.Mux.Output); !os.IsNotExist(statErr) {
		t.Fatal("output must not exist when mkvmerge produced nothing")
	}
}

func TestExecuteUsesToolPrefix(t *testing.T) {
	dir := t.TempDir()
	src := touch(t, dir, "movie.mkv")
	out := filepath.Join(dir, "out.mkv")
	plan := compile(t, tracks.List{videoTrack(0)}, nil, []string{src}, out)
	tc := deps.Toolchain{Mkvmerge: deps.Tool{
		Name:   "mkvmerge",
		Argv:   []string{"flatpak", "run", "--command=mkvmerge", "org.bunkus.mkvtoolnix-gui"},
		Source: deps.SourceFlatpak,
	}}

	var calls [][]string
	executor := NewExecutor(tc, logging.NewNop())
	executor.WithRunner(func(_ context.Context, argv []string) ([]byte, error) {
		calls = append(calls, argv)
		return nil, os.WriteFile(argv[len(argv)-4], []byte("muxed"), 0o644)
	})
	require.NoError(t, executor.Execute(context.Background(), plan))

	staging := filepath.Join(dir, ".out.mkvsmith-mux.mkv")
	want := [][]string{{"flatpak", "run", "--command=mkvmerge", "org.bunkus.mkvtoolnix-gui", "-o", staging, "-d", "0", src}}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Fatalf("runner calls mismatch (-want +got):\n%s", diff)
	}
	require.FileExists(t, out)

	cmds := plan.Commands(tc)
	require.Len(t, cmds, 1)
	require.True(t, strings.HasSuffix(strings.Join(cmds[0], " "), "-o "+out+" -d 0 "+src))
}

func TestExecuteLetsRunningToolFinishAfterCancel(t *testing.T) {
	dir := t.TempDir()
	src := touch(t, dir, "movie.mkv")
	out := filepath.Join(dir, "out.mkv")
	plan := compile(t, tracks.List{videoTrack(0)}, nil, []string{src}, out)
	tc := deps.Toolchain{Mkvmerge: scriptTool(t, "mkvmerge", writeOutputFlag)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var seen []error
	executor := NewExecutor(tc, logging.NewNop())
	executor.WithRunner(func(runCtx context.Context, argv []string) ([]byte, error) {
		seen = append(seen, runCtx.Err())
		return nil, os.WriteFile(argv[len(argv)-4], []byte("muxed"), 0o644)
	})
	require.NoError(t, executor.Execute(ctx, plan))
	require.Equal(t, []error{nil}, seen, "tool must not observe the cancelled context")
	require.FileExists(t, out)
}

type fakeAV1Encoder struct {
	err   error
	input string
}

func (f *fakeAV1Encoder) Encode(_ context.Context, inputPath, outputDir string) (string, error) {
	f.input = inputPath
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(outputDir, "encoded.mkv")
	return path, os.WriteFile(path, []byte("av1"), 0o644)
}

func conversion(t *testing.T, dir string, opts ConvertOptions) *Conversion {
	t.Helper()
	src := touch(t, dir, "movie.mp4")
	c := NewCompiler(&fakeSource{list: tracks.List{videoTrack(0), audioTrack(1, "aac", true)}}, "", logging.NewNop())
	conv, err := c.CompileConversion(context.Background(), src, filepath.Join(dir, "movie.mkv"), opts)
	require.NoError(t, err)
	return conv
}

func TestConvertWithFFmpeg(t *testing.T) {
	dir := t.TempDir()
	conv := conversion(t, dir, ConvertOptions{VideoCodec: "h264", CRF: 23, AudioCodec: "ac3"})
	tc := deps.Toolchain{FFmpeg: scriptTool(t, "ffmpeg", writeLastArg)}

	require.NoError(t, NewExecutor(tc, logging.NewNop()).Convert(context.Background(), conv))

	data, err := os.ReadFile(conv.Output)
	require.NoError(t, err)
	require.Equal(t, "transcoded", string(data))
	require.NoFileExists(t, stagingPath(conv.Output))
}

func TestConvertFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	conv := conversion(t, dir, ConvertOptions{VideoCodec: "vp9", CRF: 30})
	tc := deps.Toolchain{FFmpeg: scriptTool(t, "ffmpeg", "echo 'Unknown encoder libvpx-vp9' >&2\nexit 1\n")}

	err := NewExecutor(tc, logging.NewNop()).Convert(context.Background(), conv)
	require.ErrorIs(t, err, services.ErrExternalTool)
	require.NoFileExists(t, conv.Output)
}

func TestConvertWithDrapto(t *testing.T) {
	dir := t.TempDir()
	conv := conversion(t, dir, ConvertOptions{VideoCodec: "av1", CRF: 28, AV1Engine: EngineDrapto})
	enc := &fakeAV1Encoder{}
	executor := NewExecutor(deps.Toolchain{}, logging.NewNop())
	executor.WithAV1Encoder(enc)

	require.NoError(t, executor.Convert(context.Background(), conv))

	require.Equal(t, conv.Input, enc.input)
	data, err := os.ReadFile(conv.Output)
	require.NoError(t, err)
	require.Equal(t, "av1", string(data))
	leftovers, err := filepath.Glob(filepath.Join(dir, ".*"))
	require.NoError(t, err)
	require.Empty(t, leftovers, "work directory and staging file must be removed")
}

func TestConvertWithDraptoErrors(t *testing.T) {
	dir := t.TempDir()
	conv := conversion(t, dir, ConvertOptions{VideoCodec: "av1", CRF: 28, AV1Engine: EngineDrapto})

	err := NewExecutor(deps.Toolchain{}, logging.NewNop()).Convert(context.Background(), conv)
	require.ErrorIs(t, err, services.ErrToolNotFound)

	executor := NewExecutor(deps.Toolchain{}, logging.NewNop())
	executor.WithAV1Encoder(&fakeAV1Encoder{err: errors.New("svt-av1 crashed")})
	err = executor.Convert(context.Background(), conv)
	require.ErrorIs(t, err, services.ErrExternalTool)
	require.NoFileExists(t, conv.Output)
}
