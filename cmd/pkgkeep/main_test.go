package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	rootCmd := newRootCmd()

	assert.Equal(t, "pkgkeep", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCmdHelp(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"--help"})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	err := rootCmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "init")
	assert.Contains(t, output, "install-apk")
	assert.Contains(t, output, "install-pip")
	assert.Contains(t, output, "list")
	assert.Contains(t, output, "env")
}

func TestUsageListsAllCommands(t *testing.T) {
	usage := newRootCmd().UsageString()

	for _, name := range []string{"init", "install-apk", "install-pip", "list", "env"} {
		assert.Contains(t, usage, name)
	}
}

func TestRootCmdVersion(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"--version"})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "pkgkeep version")
}

func TestUnknownCommand(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"frobnicate"})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)

	err := rootCmd.Execute()
	assert.Error(t, err)

	// A typo'd command gets the error plus full usage, so the caller can
	// see every valid command name without a second invocation.
	combined := out.String() + errOut.String()
	assert.Contains(t, combined, "unknown command")
	for _, name := range []string{"init", "install-apk", "install-pip", "list", "env"} {
		assert.Contains(t, combined, name)
	}
}

func TestInstallAPK_RequiresPackages(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"install-apk"})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)

	err := rootCmd.Execute()
	assert.Error(t, err, "install-apk with no packages is a user error")
	assert.Contains(t, out.String()+errOut.String(), "Usage:")
}

func TestInstallPip_RequiresPackages(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"install-pip"})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)

	err := rootCmd.Execute()
	assert.Error(t, err, "install-pip with no packages is a user error")
}

func TestEnvCmd(t *testing.T) {
	t.Setenv("PKGKEEP_ROOT", t.TempDir())

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"env"})

	// Export lines go to stdout via fmt, so only the exit path is
	// asserted here; the composition itself is covered in pkg/environ.
	err := rootCmd.Execute()
	require.NoError(t, err)
}
