package tickets

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/wahlandcase/attuned.jirarelease/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func commits(messages ...string) []models.CommitInfo {
	var out []models.CommitInfo
	for i, m := range messages {
		out = append(out, models.NewCommitInfo(strings.Repeat(string(rune('a'+i)), 7), m))
	}
	return out
}

func TestExtractPrefixCollapsesCaseAndDuplicates(t *testing.T) {
	patterns := PrefixDerived([]string{"ABC"}).MustCompile()

	got := Extract(patterns, commits("fix ABC-12 and abc-7, ABC-12 again"), discardLogger())

	assert.Equal(t, []string{"ABC-12", "ABC-7"}, got)
}

func TestExtractPreservesFirstSeenOrderAcrossCommits(t *testing.T) {
	patterns := PrefixDerived([]string{"ABC", "XY"}).MustCompile()

	got := Extract(patterns, commits(
		"feat: XY-3 first",
		"fix: ABC-9 then XY-3",
		"chore: ABC-1",
	), discardLogger())

	assert.Equal(t, []string{"XY-3", "ABC-9", "ABC-1"}, got)
}

func TestExtractRequiresWordBoundaries(t *testing.T) {
	patterns := PrefixDerived([]string{"ABC"}).MustCompile()

	got := Extract(patterns, commits("XABC-1 ABC-2x ABC-3 (ABC-4)"), discardLogger())

	assert.Equal(t, []string{"ABC-3", "ABC-4"}, got)
}

func TestExtractEscapesPrefix(t *testing.T) {
	patterns := PrefixDerived([]string{"A.C"}).MustCompile()

	got := Extract(patterns, commits("ABC-1 A.C-2"), discardLogger())

	assert.Equal(t, []string{"A.C-2"}, got)
}

func TestExtractCustomPattern(t *testing.T) {
	patterns := CustomPattern(`(ops|infra)-[0-9]+`).MustCompile()

	got := Extract(patterns, commits("OPS-1 and infra-22, ABC-3"), discardLogger())

	assert.Equal(t, []string{"OPS-1", "INFRA-22"}, got)
}

func TestExtractNoMatchesIsEmpty(t *testing.T) {
	patterns := PrefixDerived([]string{"ABC"}).MustCompile()

	assert.Empty(t, Extract(patterns, commits("docs: nothing here"), discardLogger()))
	assert.Empty(t, Extract(patterns, nil, discardLogger()))
	assert.Nil(t, Extract(nil, commits("ABC-1"), discardLogger()))
}

func TestExtractLogsEachMatchWithCommit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	patterns := PrefixDerived([]string{"ABC"}).MustCompile()

	Extract(patterns, []models.CommitInfo{models.NewCommitInfo("1234567", "ABC-1 ABC-1")}, logger)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "found ticket"))
	assert.Contains(t, out, "ticket=ABC-1")
	assert.Contains(t, out, "commit=1234567")
}

func TestCompileErrors(t *testing.T) {
	_, err := CustomPattern(`(unclosed`).Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ticket pattern")

	_, err = CustomPattern("").Compile()
	require.Error(t, err)

	_, err = PrefixDerived(nil).Compile()
	require.Error(t, err)

	_, err = PrefixDerived([]string{"ABC", ""}).Compile()
	require.Error(t, err)
}

func TestPrefixDerivedCopiesInput(t *testing.T) {
	prefixes := []string{"ABC"}
	m := PrefixDerived(prefixes)
	prefixes[0] = "ZZZ"

	got := Extract(m.MustCompile(), commits("ABC-1 ZZZ-2"), discardLogger())

	assert.Equal(t, []string{"ABC-1"}, got)
	assert.False(t, m.IsCustom())
	assert.True(t, CustomPattern("x").IsCustom())
}
