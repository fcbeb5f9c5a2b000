//go:build windows

package ttyctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildWindowsCommandLineSimple(t *testing.T) {
	assert.Equal(t, `foo.exe bar baz`, buildWindowsCommandLine([]string{"foo.exe", "bar", "baz"}))
}

func TestBuildWindowsCommandLineQuotesSpaces(t *testing.T) {
	assert.Equal(t, `foo.exe "bar baz"`, buildWindowsCommandLine([]string{"foo.exe", "bar baz"}))
}

func TestBuildWindowsCommandLineEscapesEmbeddedQuote(t *testing.T) {
	got := buildWindowsCommandLine([]string{"foo.exe", `say "hi"`})
	assert.Equal(t, `foo.exe "say \"hi\""`, got)
}

func TestBuildWindowsCommandLineDoublesBackslashesBeforeQuote(t *testing.T) {
	got := buildWindowsCommandLine([]string{"foo.exe", `C:\path\"quoted"`})
	assert.Equal(t, `foo.exe "C:\path\\\"quoted\""`, got)
}

func TestBuildWindowsCommandLineTrailingBackslashesDoubled(t *testing.T) {
	got := buildWindowsCommandLine([]string{"foo.exe", `C:\dir with space\`})
	assert.Equal(t, `foo.exe "C:\dir with space\\"`, got)
}

func TestBuildWindowsCommandLineEmptyArgQuoted(t *testing.T) {
	got := buildWindowsCommandLine([]string{"foo.exe", ""})
	assert.Equal(t, `foo.exe ""`, got)
}

func TestBuildWindowsCommandLineLeavesBareBackslashesAlone(t *testing.T) {
	got := buildWindowsCommandLine([]string{"foo.exe", `C:\no\spaces\here`})
	assert.Equal(t, `foo.exe C:\no\spaces\here`, got)
}
