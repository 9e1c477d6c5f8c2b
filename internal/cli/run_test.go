package cli_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxcribe/voxcribe/internal/cli"
	"github.com/voxcribe/voxcribe/internal/logging"
	"github.com/voxcribe/voxcribe/internal/report"
	"github.com/voxcribe/voxcribe/internal/transcribe"
	"github.com/voxcribe/voxcribe/internal/wave/wavetest"
)

var fixedClock = func() time.Time {
	return time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)
}

type stubBackend struct {
	text string
	err  error
}

func (s stubBackend) Name() string { return "Google API" }
func (s stubBackend) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return s.text, s.err
}

type stubConverter struct {
	out string
	err error
}

func (s stubConverter) Convert(ctx context.Context, srcPath string) (string, error) {
	return s.out, s.err
}

type stubPrompter struct {
	path     string
	save     bool
	savePath string
}

func (s stubPrompter) AskPath() (string, error)     { return s.path, nil }
func (s stubPrompter) ConfirmSave() (bool, error)   { return s.save, nil }
func (s stubPrompter) AskSavePath() (string, error) { return s.savePath, nil }

// noPrompter fails the test if any prompt fires.
type noPrompter struct{ t *testing.T }

func (n noPrompter) AskPath() (string, error) {
	n.t.Fatal("unexpected path prompt")
	return "", nil
}
func (n noPrompter) ConfirmSave() (bool, error) {
	n.t.Fatal("unexpected save prompt")
	return false, nil
}
func (n noPrompter) AskSavePath() (string, error) {
	n.t.Fatal("unexpected save path prompt")
	return "", nil
}

func newSession(fs afero.Fs, be transcribe.Backend, p cli.Prompter, out *bytes.Buffer) *cli.Session {
	logger := logging.NewTestLogger()
	return &cli.Session{
		FS:       fs,
		Logger:   logger,
		Stdout:   out,
		Convert:  stubConverter{err: errors.New("converter should not run")},
		Client:   transcribe.NewClient(be, logger),
		Prompter: p,
		Clock:    fixedClock,
	}
}

func TestRunMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	sess := newSession(fs, stubBackend{}, stubPrompter{path: "missing.wav"}, &out)

	require.NoError(t, sess.Run(context.Background()))
	assert.Contains(t, out.String(), "Error: File not found.")
	assert.NotContains(t, out.String(), "TRANSCRIPTION REPORT")
}

func TestRunSuccessDeclineSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	wavetest.Write(t, fs, "sample.wav", 16000, 1, 80000)
	var out bytes.Buffer
	sess := newSession(fs, stubBackend{text: "hello world"}, stubPrompter{path: "sample.wav"}, &out)

	require.NoError(t, sess.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Duration      : 5.0 seconds")
	assert.Contains(t, got, "Transcribed Text:\n\nhello world\n")
	assert.Contains(t, got, "File Name     : sample.wav")

	// Declined save writes nothing.
	exists, err := afero.Exists(fs, "output.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRunSaveWritesExactReport(t *testing.T) {
	fs := afero.NewMemMapFs()
	wavetest.Write(t, fs, "sample.wav", 16000, 1, 80000)
	var out bytes.Buffer
	p := stubPrompter{path: "sample.wav", save: true, savePath: "output.txt"}
	sess := newSession(fs, stubBackend{text: "hello world"}, p, &out)

	require.NoError(t, sess.Run(context.Background()))

	want := report.New("sample.wav", 5.0, fixedClock(), "hello world").Render()
	got, err := afero.ReadFile(fs, "output.txt")
	require.NoError(t, err)
	assert.Equal(t, want, string(got))

	// The confirmation line is plain text, no terminal styling.
	assert.Contains(t, out.String(), "Transcription saved to 'output.txt'\n")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestRunSavePathFlagSkipsPrompts(t *testing.T) {
	fs := afero.NewMemMapFs()
	wavetest.Write(t, fs, "sample.wav", 16000, 1, 16000)
	var out bytes.Buffer
	sess := newSession(fs, stubBackend{text: "ok"}, noPrompter{t: t}, &out)
	sess.InputPath = "sample.wav"
	sess.SavePath = "report.txt"

	require.NoError(t, sess.Run(context.Background()))
	exists, err := afero.Exists(fs, "report.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRunConversionFailureAborts(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "clip.mp3", []byte("mp3-bytes"), 0o644))
	var out bytes.Buffer
	sess := newSession(fs, stubBackend{text: "never"}, stubPrompter{path: "clip.mp3"}, &out)
	sess.Convert = stubConverter{err: errors.New("bad frame header")}

	require.NoError(t, sess.Run(context.Background()))
	assert.Contains(t, out.String(), "Error during conversion: bad frame header")
	assert.NotContains(t, out.String(), "TRANSCRIPTION REPORT")
}

func TestRunConversionRebindsPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "clip.mp3", []byte("mp3-bytes"), 0o644))
	wavetest.Write(t, fs, "clip.wav", 16000, 1, 16000)
	var out bytes.Buffer
	sess := newSession(fs, stubBackend{text: "converted fine"}, stubPrompter{path: "clip.mp3"}, &out)
	sess.Convert = stubConverter{out: "clip.wav"}

	require.NoError(t, sess.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Converting MP3 to WAV...")
	assert.Contains(t, got, "Conversion complete: clip.wav")
	assert.Contains(t, got, "File Name     : clip.wav")
	assert.Contains(t, got, "Duration      : 1.0 seconds")

	// Original stays on disk untouched.
	orig, err := afero.ReadFile(fs, "clip.mp3")
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(orig))
}

func TestRunDurationFailureIsNonFatal(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "noise.wav", []byte("not really a wav"), 0o644))
	var out bytes.Buffer
	sess := newSession(fs, stubBackend{text: "still transcribed"}, stubPrompter{path: "noise.wav"}, &out)

	require.NoError(t, sess.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Audio Duration: 0.0 seconds")
	assert.Contains(t, got, "Duration      : 0.0 seconds")
	assert.Contains(t, got, "Transcribed Text:\n\nstill transcribed\n")
}

func TestRunServiceUnreachableStillReports(t *testing.T) {
	fs := afero.NewMemMapFs()
	wavetest.Write(t, fs, "sample.wav", 16000, 1, 80000)
	var out bytes.Buffer
	be := stubBackend{err: &transcribe.RequestError{Cause: errors.New("connection refused")}}
	sess := newSession(fs, be, stubPrompter{path: "sample.wav"}, &out)

	require.NoError(t, sess.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Transcribed Text:\n\nError: Could not reach Google API: connection refused\n")
	assert.Contains(t, got, "Duration      : 5.0 seconds")
}

func TestRunSaveFailureReported(t *testing.T) {
	base := afero.NewMemMapFs()
	wavetest.Write(t, base, "sample.wav", 16000, 1, 16000)
	fs := afero.NewReadOnlyFs(base)
	var out bytes.Buffer
	p := stubPrompter{path: "sample.wav", save: true, savePath: "out.txt"}
	sess := newSession(fs, stubBackend{text: "ok"}, p, &out)

	require.NoError(t, sess.Run(context.Background()))
	assert.Contains(t, out.String(), "Error saving file:")
	assert.Contains(t, out.String(), "TRANSCRIPTION REPORT")
}

func TestRunEmptySavePathSkipsSilently(t *testing.T) {
	fs := afero.NewMemMapFs()
	wavetest.Write(t, fs, "sample.wav", 16000, 1, 16000)
	var out bytes.Buffer
	p := stubPrompter{path: "sample.wav", save: true, savePath: "   "}
	sess := newSession(fs, stubBackend{text: "ok"}, p, &out)

	require.NoError(t, sess.Run(context.Background()))
	assert.NotContains(t, out.String(), "Transcription saved to")
	assert.NotContains(t, out.String(), "Error saving file:")
}
