package main

import (
	"encoding/json"
	"io"
	"os"

	perr "riskscan/internal/platform/errors"
)

// writeJSON renders v as indented JSON to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "encode output")
	}
	b = append(b, '\n')
	if path == "" {
		_, err = w.Write(b)
		return perr.WrapIf(err, perr.ErrorCodeIO, "write output")
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write %s", path)
	}
	return nil
}
