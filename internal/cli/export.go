package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/mealwiz/internal/session"
)

var exportYAML bool

// sessionExport is the document written by export.
type sessionExport struct {
	Phase session.Phase    `json:"phase" yaml:"phase"`
	Slots session.Snapshot `json:"slots" yaml:"slots"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print every slot of the session",
	Long: `Print the decoded value of every set slot as JSON, or as YAML with --yaml.
Slots that are not set are omitted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, release, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer release()

		store := eng.Store()
		doc := sessionExport{
			Phase: store.Phase(),
			Slots: store.Snapshot(),
		}

		if !exportYAML {
			return outputJSON(cmd.OutOrStdout(), doc)
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportYAML, "yaml", false, "Output YAML instead of JSON")
}
