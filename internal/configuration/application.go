package configuration

import "github.com/desertwitch/davtree/internal/tree"

// AppConfiguration is the principal structure holding the application configuration.
type AppConfiguration struct {
	// Root is the real directory that is exposed as the virtual namespace.
	Root string

	// MinFree is the amount of bytes to keep free on the filesystem of Root.
	MinFree uint64

	// VerifyHash enables hash verification of copied file contents.
	VerifyHash bool

	// PreserveOwner enables copying of file ownership.
	PreserveOwner bool
}

// NewAppConfiguration returns a pointer to a new [AppConfiguration], which
// holds the defaults of a [tree.Tree] and no root.
func NewAppConfiguration() *AppConfiguration {
	defaults := tree.DefaultOptions()

	return &AppConfiguration{
		MinFree:       defaults.MinFree,
		VerifyHash:    defaults.VerifyHash,
		PreserveOwner: defaults.PreserveOwner,
	}
}

// TreeOptions returns the [tree.Options] of the [AppConfiguration].
func (c *AppConfiguration) TreeOptions() tree.Options {
	return tree.Options{
		MinFree:       c.MinFree,
		VerifyHash:    c.VerifyHash,
		PreserveOwner: c.PreserveOwner,
	}
}
