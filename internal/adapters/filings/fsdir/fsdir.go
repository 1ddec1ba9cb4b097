// Package fsdir reads filings from the directory layout left by the downloader:
// <root>/<n>/ for n = 1, 2, ... with one or more *.txt documents and an optional metadata.json
package fsdir

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	perr "riskscan/internal/platform/errors"
	ptime "riskscan/internal/platform/time"
	"riskscan/internal/services/analyze/domain"
)

// MetadataFile sits next to the filing documents
const MetadataFile = "metadata.json"

// metadata is the sidecar written by the downloader; unknown fields are ignored
type metadata struct {
	FilingDate      string `json:"filing_date"`
	FormType        string `json:"form_type"`
	AccessionNumber string `json:"accession_number"`
}

// Source implements domain.FilingSource over a local directory
type Source struct {
	root string
}

// New returns a Source rooted at dir
func New(dir string) *Source { return &Source{root: dir} }

// Name satisfies domain.FilingSource
func (s *Source) Name() string { return s.root }

// List walks <root>/1, <root>/2, ... and stops at the first missing number.
// Numbered directories without a *.txt document are skipped
func (s *Source) List(ctx context.Context) ([]domain.FilingRef, error) {
	st, err := os.Stat(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, perr.WithField(perr.NotFoundf("filings directory %s not found", s.root), "filings")
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "stat %s", s.root)
	}
	if !st.IsDir() {
		return nil, perr.WithField(perr.InvalidArgf("%s is not a directory", s.root), "filings")
	}

	var refs []domain.FilingRef
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir := filepath.Join(s.root, strconv.Itoa(n))
		if _, err := os.Stat(dir); err != nil {
			break
		}
		doc, err := primaryDocument(dir)
		if err != nil {
			return nil, err
		}
		if doc == "" {
			continue
		}
		refs = append(refs, domain.FilingRef{Number: n, Path: doc})
	}
	return refs, nil
}

// Load reads the document and its metadata sidecar
func (s *Source) Load(_ context.Context, ref domain.FilingRef) (domain.Filing, error) {
	text, err := ReadFile(ref.Path)
	if err != nil {
		return domain.Filing{}, err
	}
	f := domain.Filing{FilingRef: ref, Text: text}

	md, ok, err := readMetadata(filepath.Join(filepath.Dir(ref.Path), MetadataFile))
	if err != nil {
		return domain.Filing{}, err
	}
	if !ok {
		return f, nil
	}
	f.RawDate = strings.TrimSpace(md.FilingDate)
	f.FormType = strings.TrimSpace(md.FormType)
	if f.ID == "" {
		f.ID = strings.TrimSpace(md.AccessionNumber)
	}
	if d, ok := ptime.ParseDate(f.RawDate); ok {
		f.FilingDate = &d
	}
	return f, nil
}

// ReadFile reads and decodes one document
func ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", perr.NotFoundf("document %s not found", path)
		}
		return "", perr.Wrapf(err, perr.ErrorCodeIO, "read %s", path)
	}
	text, _ := Decode(b)
	return text, nil
}

// ParseFilingDate parses a YYYY-MM-DD flag value; blank means absent
func ParseFilingDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, ok := ptime.ParseDate(s)
	if !ok {
		return nil, perr.WithField(perr.InvalidArgf("filing date %q is not YYYY-MM-DD", s), "filing_date")
	}
	return &d, nil
}

// primaryDocument returns the first *.txt in dir by name, or "" when there is none
func primaryDocument(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeIO, "list %s", dir)
	}
	if len(matches) == 0 {
		return "", nil
	}
	sort.Strings(matches)
	return matches[0], nil
}

func readMetadata(path string) (metadata, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return metadata{}, false, nil
		}
		return metadata{}, false, perr.Wrapf(err, perr.ErrorCodeIO, "read %s", path)
	}
	var md metadata
	if err := json.Unmarshal(b, &md); err != nil {
		return metadata{}, false, perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "decode %s", path), MetadataFile)
	}
	return md, true, nil
}

var _ domain.FilingSource = (*Source)(nil)
