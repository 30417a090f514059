// Package snake holds the interactive prompts used by the command line.
package snake

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/search"
)

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// SelectSchema asks the user to pick an entity.
func SelectSchema(cmd *cobra.Command, schemas []*record.Schema) (*record.Schema, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Title | bold }} {{ .Name | cyan }}",
		Inactive: "   {{ .Title }} {{ .Name | faint }}",
		Selected: "{{ .Title | bold }}",
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Entity",
		Items:     schemas,
		Templates: templates,
		Size:      10,
		Searcher:  schemaSearcher(schemas),
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}
	i, _, err := prompt.Run()
	if err != nil {
		return nil, err
	}
	return schemas[i], nil
}

func schemaSearcher(schemas []*record.Schema) func(input string, index int) bool {
	return func(input string, index int) bool {
		s := schemas[index]
		input = strings.ReplaceAll(input, " ", "")
		return search.Contains(strings.ReplaceAll(s.Title, " ", ""), input) ||
			search.Contains(s.Name, input)
	}
}

// Confirm asks a yes/no question. Answering no is not an error.
func Confirm(cmd *cobra.Command, label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
