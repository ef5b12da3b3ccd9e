package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "washrag",
	Short: "Bilingual document question answering service",
	Long: `washrag answers natural-language questions over a bilingual
(Bangla/English) document corpus. Documents are normalized, segmented into
language-tagged overlapping chunks and indexed in a vector store; questions
are answered with generated text citing the retrieved source chunks.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	settingDefaultConfig()
}
