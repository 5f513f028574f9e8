package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"clinic-medications/internal/adapters/export/excel"
	"clinic-medications/internal/domain/dosage"

	"github.com/spf13/cobra"
)

func renderCmd() *cobra.Command {
	var (
		xlsx bool
		out  string
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Build dosage tables from a JSON list of {medication, days, unit}",
		Long: `Reads a JSON array of {"medication": {...}, "days": 7, "unit": "日分"}
(from a file or stdin) and writes one dosage table per entry, in input order.
dosageTiming may be an array or a string holding a JSON array.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			if out == "" {
				return render(in, cmd.OutOrStdout(), xlsx)
			}
			return renderToFile(in, out, xlsx)
		},
	}
	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "write an xlsx workbook instead of JSON")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// renderToFile reporta también el error de Close: con xlsx es donde falla el
// volcado final al disco.
func renderToFile(in io.Reader, path string, xlsx bool) (err error) {
	f, err := createOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return render(in, f, xlsx)
}

func render(in io.Reader, w io.Writer, xlsx bool) error {
	var entries []dosage.Entry
	if err := json.NewDecoder(in).Decode(&entries); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	for i := range entries {
		if entries[i].Unit == "" {
			entries[i].Unit = dosage.DefaultDaysUnit
		}
	}

	layouts := dosage.BuildAll(entries)
	if xlsx {
		return excel.NewWriter().WriteLayouts(w, layouts)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(layouts)
}
