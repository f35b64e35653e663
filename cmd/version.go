package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "matemagica", displayVersion(version))
	},
}

// displayVersion returns v in canonical semver form ("1.2" becomes
// "v1.2.0"). Anything that is not semver, such as "(devel)", is returned
// unchanged.
func displayVersion(v string) string {
	if v == "" {
		return "(devel)"
	}
	tagged := v
	if tagged[0] != 'v' {
		tagged = "v" + tagged
	}
	if !semver.IsValid(tagged) {
		return v
	}
	return semver.Canonical(tagged)
}
