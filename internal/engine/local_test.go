package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/book-expert/glados-tts/internal/audio"
	"github.com/book-expert/glados-tts/internal/engine"
)

// stubRunnerScript behaves like the inference runner: it consumes the
// phonemes on stdin and writes two raw little-endian float32 samples
// (0.0 and 0.5) to the file named by --output.
const stubRunnerScript = `#!/bin/sh
out=""
while [ $# -gt 0 ]; do
	if [ "$1" = "--output" ]; then
		out="$2"
		shift
	fi
	shift
done
cat > /dev/null
printf '\000\000\000\000\000\000\000\077' > "$out"
`

func writeStubRunner(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "glados-infer")

	err := os.WriteFile(path, []byte(stubRunnerScript), 0o700)
	require.NoError(t, err)

	return path
}

func TestNewLocalSynthesizer_Validation(t *testing.T) {
	t.Parallel()

	log := testLogger(t)

	_, err := engine.NewLocalSynthesizer(coreConfigForTest(), "", log)
	assert.ErrorIs(t, err, engine.ErrBinaryEmpty)

	cfg := coreConfigForTest()
	cfg.ModelDir = ""

	_, err = engine.NewLocalSynthesizer(cfg, "glados-infer", log)
	assert.ErrorIs(t, err, engine.ErrModelDirEmpty)
}

func TestLocalSynthesizer_Synthesize(t *testing.T) {
	t.Parallel()

	binary := writeStubRunner(t)

	synth, err := engine.NewLocalSynthesizer(coreConfigForTest(), binary, testLogger(t))
	require.NoError(t, err)

	wavData, err := synth.Synthesize(t.Context(), "hɛloʊ.", synth.Config())
	require.NoError(t, err)

	buffer, err := audio.Decode(wavData)
	require.NoError(t, err)
	require.Len(t, buffer.Data, 2)

	assert.Equal(t, 0, buffer.Data[0])
	assert.Equal(t, 16383, buffer.Data[1], "0.5 scales to half of int16 full scale")
	assert.Equal(t, coreConfigForTest().SampleRate, buffer.Format.SampleRate)
}

func TestLocalSynthesizer_Synthesize_EmptyPhonemes(t *testing.T) {
	t.Parallel()

	synth, err := engine.NewLocalSynthesizer(
		coreConfigForTest(), writeStubRunner(t), testLogger(t),
	)
	require.NoError(t, err)

	_, err = synth.Synthesize(t.Context(), "", synth.Config())
	assert.ErrorIs(t, err, engine.ErrPhonemesEmpty)
}

func TestLocalSynthesizer_Synthesize_MissingBinary(t *testing.T) {
	t.Parallel()

	synth, err := engine.NewLocalSynthesizer(
		coreConfigForTest(),
		filepath.Join(t.TempDir(), "does-not-exist"),
		testLogger(t),
	)
	require.NoError(t, err)

	_, err = synth.Synthesize(t.Context(), "hɛloʊ.", synth.Config())
	assert.Error(t, err)
}
