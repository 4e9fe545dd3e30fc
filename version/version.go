package version

import "fmt"

// Set at build time with -ldflags "-X skirmish/version.GitTag=...".
var GitCommit string
var GitTag string
var UserAgent string

func init() {
	tag := GitTag
	if tag == "" {
		tag = "dev"
	}
	UserAgent = fmt.Sprintf("skirmish/%s+%s", tag, GitCommit)
}
