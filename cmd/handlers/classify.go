package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"scout/internal/config"
)

// NewClassifyCmd creates the classify command for URL triage
func NewClassifyCmd() *cobra.Command {
	var (
		profile string
		title   string
	)

	cmd := &cobra.Command{
		Use:   "classify [url...]",
		Short: "Check whether URLs would be accepted as text sources",
		Long: `Classify runs one or more URLs through the source filter and reports
whether each would be scraped during research.

Examples:
  scout classify https://example.com/article
  scout classify --profile academic https://arxiv.org/abs/2401.00001
  scout classify --title "Video tutorial" https://example.com/page`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := buildURLFilter(config.Get(), profile)
			if err != nil {
				return err
			}

			for _, url := range args {
				verdict := "reject"
				if filter.IsTextURL(url, title) {
					verdict = "accept"
				}
				fmt.Printf("%-7s %s\n", verdict, url)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "Classification profile: general, academic")
	cmd.Flags().StringVar(&title, "title", "", "Result title to classify alongside the URL")

	return cmd
}
