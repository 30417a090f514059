package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// Message prints a one-line result, as {"message": ...} with --json.
func (o *OutputOptions) Message(text string) error {
	if !o.JSON {
		_, _ = fmt.Fprintln(color.Output, text)
		return nil
	}
	return printJSON(map[string]string{"message": text})
}

// HandleError prints err as {"error": ...} with --json and swallows it, so
// scripts always read a document.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		return printJSON(map[string]string{"error": err.Error()})
	}
	return err
}

func printJSON(v map[string]string) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}
