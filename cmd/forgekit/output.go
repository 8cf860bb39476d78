package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"forgekit/pkg/constants"
)

// print 按 --output 输出结果到标准输出
func (a *app) print(cmd *cobra.Command, v any) error {
	return encode(cmd.OutOrStdout(), a.output, v)
}

func encode(w io.Writer, format string, v any) error {
	if format == constants.OutputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
