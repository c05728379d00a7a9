package calllogparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"southside/call-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCallLog = `Call ID,Call Time,Direction,Status,Ringing,Talking,From,To,Call Activity Details
C1,2025-11-28 09:15:00,Inbound Queue,Answered,00:00:12,00:03:45,0871234567,012345678,Inbound: 0871234567 → Sales Queue
C1,2025-11-28 09:15:12,Inbound,Answered,00:00:03,00:01:00,0871234567,012345678,Transferred
C2,2025-11-28 10:00:00,Inbound,Unanswered,00:00:30,00:00:00,0861112222,012345678,Inbound: Acme Builders → Sales Queue
C3,2025-11-28 11:00:00,Outbound,Answered,00:00:05,00:02:00,012345678,0879999999,Callback
Totals,,,,00:00:50,00:06:45,,,
`

func TestParseCleansRows(t *testing.T) {
	legs, err := Parse(strings.NewReader(sampleCallLog), nil)
	require.NoError(t, err)

	// Outbound row and Totals footer are gone.
	assert.Len(t, legs, 3)

	assert.Equal(t, "C1", legs[0].CallID)
	assert.Equal(t, 12, legs[0].RingingSec)
	assert.Equal(t, 225, legs[0].TalkingSec)
	assert.Equal(t, models.LegRetail, legs[0].Classification)

	assert.Equal(t, "C1", legs[1].CallID)
	assert.Equal(t, models.LegUnclassified, legs[1].Classification)

	assert.Equal(t, "C2", legs[2].CallID)
	assert.Equal(t, models.LegTrade, legs[2].Classification)
	assert.Equal(t, 30, legs[2].RingingSec)
	assert.Equal(t, 0, legs[2].TalkingSec)
}

func TestParseKeepsOnlyInboundDirections(t *testing.T) {
	legs, err := Parse(strings.NewReader(sampleCallLog), nil)
	require.NoError(t, err)

	for _, l := range legs {
		assert.True(t, InboundDirections[l.Direction], "unexpected direction %q", l.Direction)
	}
}

func TestParseFileWithLogger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CallLogLastWeek_1.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCallLog), 0600))

	legs, err := ParseFileWithLogger(path, nil)
	require.NoError(t, err)
	assert.Len(t, legs, 3)
}

func TestParseFileRejectsWrongFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "other.csv")
	content := "Caller ID,Call Time,Waiting Time\n0871234567,2025-11-28 09:15:00,00:00:30\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := ParseFileWithLogger(path, nil)
	assert.Error(t, err)
}

func TestValidateFormat(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.csv")
	require.NoError(t, os.WriteFile(valid, []byte(sampleCallLog), 0600))

	invalid := filepath.Join(dir, "invalid.csv")
	require.NoError(t, os.WriteFile(invalid, []byte("a,b,c\n1,2,3\n"), 0600))

	ok, err := ValidateFormat(valid)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = ValidateFormat(invalid)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = ValidateFormat(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
