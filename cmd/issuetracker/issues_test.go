package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
)

func TestPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	err := printIssues(&buf, []domain.Issue{
		{Title: "Flood", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), District: "Colombo", Province: "Western", CreatedBy: "alice"},
		{Title: "Legacy"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "REPORTER")
	assert.Contains(t, lines[1], "2024-05-01")
	assert.Contains(t, lines[1], "alice")
	assert.True(t, strings.HasPrefix(lines[2], "-"), "missing date prints a dash")
}

func TestRegionsCommand(t *testing.T) {
	var buf bytes.Buffer
	regionsCmd.SetOut(&buf)
	require.NoError(t, regionsCmd.RunE(regionsCmd, nil))

	assert.Contains(t, buf.String(), "Districts (25)")
	assert.Contains(t, buf.String(), "Nuwara Eliya")
	assert.Contains(t, buf.String(), "Provinces (8)")
}
