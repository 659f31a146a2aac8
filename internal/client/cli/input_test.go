package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText_ReadsAndTrimsLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "Enter something", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "Enter something")
	assert.Contains(t, out.String(), "> ")
}

func TestGetSimpleText_EOFAfterPartialLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("partial"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "Prompt", &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}

func TestGetSimpleText_EOFWithoutInput(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader(""))
	var out bytes.Buffer

	_, err := GetSimpleText(reader, "Prompt", &out)
	require.Error(t, err)
}

func TestGetPassword_UsesTerminalReader(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.Contains(t, out.String(), "Enter password")
}
