package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

var (
	linkSource string
	linkOutput outputFlags
)

var linkCmd = &cobra.Command{
	Use:   "link FILE --links LINKS",
	Short: "Fill model URLs from a list of download links",
	Long: `Extracts every http(s) link from LINKS, matches each to a model entry by
file name, and fills in blank or broken URLs. LINKS may be any text, such as
a copied forum post, a saved web page (.html) or a markdown model card (.md).
Use "-" to read it from stdin.

The updated document is printed, or written with --out / --copy.`,
	Args: cobra.ExactArgs(1),
	RunE: runLink,
}

func init() {
	linkCmd.Flags().StringVarP(&linkSource, "links", "l", "", "file with download links, or - for stdin")
	_ = linkCmd.MarkFlagRequired("links")
	linkOutput.register(linkCmd)
	rootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	if err := requireEditor(); err != nil {
		return err
	}
	if args[0] == stdinArg && linkSource == stdinArg {
		return fmt.Errorf("%w: workflow and links cannot both come from stdin", domain.ErrInvalidInput)
	}
	if err := loadDocument(cmd, args[0]); err != nil {
		return err
	}

	links, err := readInput(cmd, linkSource)
	if err != nil {
		return err
	}
	if linkNormaliser != nil {
		links = linkNormaliser.Normalise(linkSource, links)
	}

	result, err := editorService.BulkMatch(links)
	if err != nil && !errors.Is(err, domain.ErrNoURLs) {
		return fmt.Errorf("link: %w", err)
	}
	if err != nil {
		cmd.PrintErrln("No valid URLs found")
	} else {
		cmd.PrintErrln(result.Message())
	}

	return linkOutput.writeOutput(cmd)
}
