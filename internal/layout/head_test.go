package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeHead(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("gateware\n"), 0644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "ci", Email: "ci@example.com", When: time.Unix(0, 0)},
	})
	require.NoError(t, err)

	got, err := DescribeHead(dir)
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, head.Name().Short()+"@"+hash.String()[:7], got)
	assert.False(t, strings.HasPrefix(got, "detached@"))
}

func TestDescribeHead_Errors(t *testing.T) {
	_, err := DescribeHead(t.TempDir())
	assert.Error(t, err, "not a repository")

	dir := t.TempDir()
	_, err = git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = DescribeHead(dir)
	assert.Error(t, err, "repository without commits has no HEAD")
}
