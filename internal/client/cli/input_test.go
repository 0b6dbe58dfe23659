package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  Lisbon \n"))

	got, err := GetSimpleText(r, "Destination", &out)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got)
	assert.Contains(t, out.String(), "Destination")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("Porto"))

	got, err := GetSimpleText(r, "Destination", &out)
	require.NoError(t, err)
	assert.Equal(t, "Porto", got)
}

func TestGetDate(t *testing.T) {
	var out bytes.Buffer

	got, err := GetDate(bufio.NewReader(strings.NewReader("2024-05-01\n")), "Start date", &out)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = GetDate(bufio.NewReader(strings.NewReader("\n")), "Start date", &out)
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "empty input means optional")

	_, err = GetDate(bufio.NewReader(strings.NewReader("01/05/2024\n")), "Start date", &out)
	assert.Error(t, err)
}

func TestGetAmount(t *testing.T) {
	var out bytes.Buffer

	got, err := GetAmount(bufio.NewReader(strings.NewReader("12.50\n")), "Amount", &out)
	require.NoError(t, err)
	assert.Equal(t, 12.5, got)

	got, err = GetAmount(bufio.NewReader(strings.NewReader("\n")), "Amount", &out)
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = GetAmount(bufio.NewReader(strings.NewReader("abc\n")), "Amount", &out)
	assert.Error(t, err)
}
