package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lthummus/elapsed/internal/db"
	"github.com/lthummus/elapsed/internal/mocks"
)

var testDir string

func TestMain(m *testing.M) {
	var err error
	testDir, err = os.MkdirTemp("", "elapsed-cmd-test")
	if err != nil {
		panic(err)
	}

	configFile := filepath.Join(testDir, "elapsed.yaml")
	err = os.WriteFile(configFile, []byte("history:\n    file: "+filepath.Join(testDir, "history.db")+"\n    limit: 10\n"), 0o600)
	if err != nil {
		panic(err)
	}
	os.Setenv("CONFIG_FILE_PATH", configFile)

	code := m.Run()
	os.RemoveAll(testDir)
	os.Exit(code)
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestFormatCommand(t *testing.T) {
	t.Run("argument", func(t *testing.T) {
		out, _, err := execute(t, "format", "3665s")
		require.NoError(t, err)
		assert.Equal(t, "1h 1m 5s\n", out)
	})

	t.Run("duration flag", func(t *testing.T) {
		out, _, err := execute(t, "format", "--duration", "500ms")
		require.NoError(t, err)
		assert.Equal(t, "0.500s\n", out)
	})

	t.Run("seconds and millis", func(t *testing.T) {
		out, _, err := execute(t, "format", "--seconds", "125", "--millis", "6")
		require.NoError(t, err)
		assert.Equal(t, "2m 5.006s\n", out)
	})

	t.Run("bare minutes", func(t *testing.T) {
		out, _, err := execute(t, "format", "-s", "60")
		require.NoError(t, err)
		assert.Equal(t, "1m\n", out)
	})

	t.Run("beyond time.Duration", func(t *testing.T) {
		out, _, err := execute(t, "format", "--seconds", "18446744073709551615")
		require.NoError(t, err)
		assert.Equal(t, "30500568904943w 0d 7h 0m 15s\n", out)
	})

	t.Run("table output", func(t *testing.T) {
		out, _, err := execute(t, "-o", "table", "format", "1h")
		require.NoError(t, err)
		assert.Contains(t, out, "Hours")
		assert.Contains(t, out, "1h 0m 0s")
	})

	t.Run("yaml output", func(t *testing.T) {
		out, _, err := execute(t, "-o", "yaml", "format", "90s")
		require.NoError(t, err)
		assert.Contains(t, out, "formatted: 1m 30s")
	})

	t.Run("negative", func(t *testing.T) {
		_, _, err := execute(t, "format", "--", "-5s")
		assert.ErrorIs(t, err, ErrNegativeDuration)
	})

	t.Run("nothing given", func(t *testing.T) {
		_, _, err := execute(t, "format")
		assert.ErrorIs(t, err, ErrNoDuration)
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := execute(t, "format", "soon")
		assert.Error(t, err)
	})

	t.Run("argument and flags", func(t *testing.T) {
		_, _, err := execute(t, "format", "-s", "5", "5s")
		assert.Error(t, err)
	})

	t.Run("mutually exclusive flags", func(t *testing.T) {
		_, _, err := execute(t, "format", "-d", "5s", "-s", "5")
		assert.Error(t, err)
	})
}

func TestRunAndHistoryCommands(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a posix shell")
	}

	_, _, err := execute(t, "history", "clear")
	require.NoError(t, err)

	t.Run("successful run is recorded", func(t *testing.T) {
		out, errOut, err := execute(t, "run", "sh", "-c", "echo hello")
		require.NoError(t, err)

		assert.Equal(t, "hello\n", out)
		assert.Regexp(t, `^sh -c "echo hello" took [0-9.]+s\n$`, errOut)
	})

	t.Run("failing run propagates exit code", func(t *testing.T) {
		_, errOut, err := execute(t, "run", "--", "sh", "-c", "exit 4")

		var exitErr *ExitCodeError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 4, exitErr.Code)
		assert.Contains(t, errOut, "took")
	})

	t.Run("no history", func(t *testing.T) {
		_, _, err := execute(t, "run", "--no-history", "true")
		require.NoError(t, err)
	})

	t.Run("child stderr stays on stderr", func(t *testing.T) {
		out, errOut, err := execute(t, "run", "--no-history", "sh", "-c", "echo to-stderr 1>&2")
		require.NoError(t, err)

		assert.Empty(t, out)
		assert.True(t, strings.HasPrefix(errOut, "to-stderr\n"))
		assert.Contains(t, errOut, "took")
	})

	t.Run("history lists newest first", func(t *testing.T) {
		out, _, err := execute(t, "history")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], `sh -c "exit 4" took `))
		assert.True(t, strings.HasPrefix(lines[1], `sh -c "echo hello" took `))
	})

	t.Run("history limit", func(t *testing.T) {
		out, _, err := execute(t, "history", "-n", "1")
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)
	})

	t.Run("history table", func(t *testing.T) {
		out, _, err := execute(t, "history", "-o", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "EXIT CODE")
	})

	t.Run("history show", func(t *testing.T) {
		database, err := openDB()
		require.NoError(t, err)
		runs, err := database.ListRuns(t.Context(), 1)
		require.NoError(t, err)
		require.NoError(t, database.Close())
		require.Len(t, runs, 1)

		out, _, err := execute(t, "history", "show", runs[0].ID)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, `sh -c "exit 4" took `))
	})

	t.Run("history show unknown", func(t *testing.T) {
		_, _, err := execute(t, "history", "show", "nope")
		assert.ErrorContains(t, err, "no run with id nope")
	})

	t.Run("history clear", func(t *testing.T) {
		out, _, err := execute(t, "history", "clear")
		require.NoError(t, err)
		assert.Equal(t, "deleted 2 runs\n", out)
	})
}

func TestRunWithBrokenHistory(t *testing.T) {
	original := openDB
	t.Cleanup(func() {
		openDB = original
	})

	t.Run("database cannot be opened", func(t *testing.T) {
		openDB = func() (db.DB, error) {
			return nil, errors.New("locked")
		}

		_, errOut, err := execute(t, "run", "true")
		require.NoError(t, err)
		assert.Contains(t, errOut, "true took")
	})

	t.Run("history listing fails", func(t *testing.T) {
		m := mocks.NewMockDB(t)
		m.On("ListRuns", mock.Anything, 10).Return(nil, errors.New("corrupt"))
		m.On("Close").Return(nil)
		openDB = func() (db.DB, error) {
			return m, nil
		}

		_, _, err := execute(t, "history")
		assert.ErrorContains(t, err, "corrupt")
	})
}

func TestConfigCommands(t *testing.T) {
	t.Run("validate", func(t *testing.T) {
		out, _, err := execute(t, "config", "validate")
		require.NoError(t, err)
		assert.Equal(t, "config ok\n", out)
	})

	t.Run("write", func(t *testing.T) {
		out, _, err := execute(t, "config", "write")
		require.NoError(t, err)
		assert.Equal(t, "wrote "+filepath.Join(testDir, "elapsed.yaml")+"\n", out)

		data, err := os.ReadFile(filepath.Join(testDir, "elapsed.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "history.db")
	})
}
