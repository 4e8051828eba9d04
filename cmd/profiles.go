package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profilesFile string

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List extraction profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		set, err := loadProfiles(firstNonEmpty(profilesFile, cfg.Extract.ProfilesFile))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range set.Names() {
			p := set.Profiles[name]
			fmt.Fprintf(out, "%s\n  pattern:  %s\n  sentinel: %q\n", name, p.Pattern, p.Sentinel)
		}
		return nil
	},
}

func init() {
	profilesCmd.Flags().StringVar(&profilesFile, "profiles-file", "", "YAML file with extra extraction profiles")
	rootCmd.AddCommand(profilesCmd)
}
