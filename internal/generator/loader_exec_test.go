package generator

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/cargo-payload/internal/codec"
)

const loaderScript = "#!/bin/sh\necho ok\nexit 0\n"

// scriptWithLength pads loaderScript with trailing comment bytes until its
// length modulo 3 equals rem
func scriptWithLength(rem int) []byte {
	pad := (rem - len(loaderScript)%3 + 3) % 3
	return []byte(loaderScript + strings.Repeat("#", pad))
}

func TestRender_GoLoaderExtractsAndRuns(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("loader execs a POSIX shell script")
	}

	if testing.Short() {
		t.Skip("compiles generated loaders")
	}

	goTool, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not on PATH")
	}

	for rem := 0; rem < 3; rem++ {
		body := scriptWithLength(rem)
		require.Equal(t, rem, len(body)%3)

		t.Run(fmt.Sprintf("remainder %d", rem), func(t *testing.T) {
			dir := t.TempDir()
			extractPath := filepath.Join(dir, "extracted")

			out, err := Render(Input{
				Language:    Go,
				Source:      "echo ok\n",
				Payload:     codec.Encode(body),
				ExtractPath: extractPath,
			})
			require.NoError(t, err)

			mainFile := filepath.Join(dir, "main.go")
			require.NoError(t, os.WriteFile(mainFile, []byte(out), 0o644))

			loader := filepath.Join(dir, "loader")
			build := exec.Command(goTool, "build", "-o", loader, mainFile)
			build.Dir = dir
			output, err := build.CombinedOutput()
			require.NoError(t, err, string(output))

			stdout, err := exec.Command(loader).Output()
			require.NoError(t, err)
			assert.Equal(t, "ok\n", string(stdout))

			extracted, err := os.ReadFile(extractPath)
			require.NoError(t, err)
			assert.Equal(t, body, extracted)

			info, err := os.Stat(extractPath)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
		})
	}
}
