package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// readPayload decodes a JSON or YAML document into target. path "-" reads
// stdin; files ending in .yaml or .yml are parsed as YAML, anything else
// as JSON.
func readPayload(path string, stdin io.Reader, target any) error {
	if path == "" {
		return fmt.Errorf("a payload file is required (--file)")
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, target)
	default:
		err = json.Unmarshal(data, target)
	}
	if err != nil {
		return fmt.Errorf("decode payload %s: %w", path, err)
	}
	return nil
}

// readFile loads a file to upload and returns its base name with the content.
func readFile(path string) (string, []byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return filepath.Base(path), content, nil
}

// payloadCmd builds a command that reads a Req from --file before calling run.
func payloadCmd[Req any](use, short string, args cobra.PositionalArgs, run func(cmd *cobra.Command, args []string, body *Req) error) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := new(Req)
			if err := readPayload(file, cmd.InOrStdin(), body); err != nil {
				return err
			}
			return run(cmd, args, body)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file, - for stdin")
	return cmd
}
