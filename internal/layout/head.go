package layout

import (
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// DescribeHead returns "<branch>@<short sha>" for the repository at root, or
// "detached@<short sha>" when HEAD is not a branch. Used for the run banner
// only; callers treat errors as "unknown".
func DescribeHead(root string) (string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return "", fmt.Errorf("opening repository %s: %w", root, err)
	}
	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("reading HEAD: %w", err)
	}

	name := "detached"
	if ref.Name().IsBranch() {
		name = ref.Name().Short()
	}
	return fmt.Sprintf("%s@%s", name, ref.Hash().String()[:7]), nil
}
