package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/xerrors"

	"election-admin/encryption"
	"election-admin/models"
)

var ErrExport = xerrors.New("failed to export results")

// ExportError carries the underlying I/O failure of an export. It matches
// ErrExport with errors.Is.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export results to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

func (e *ExportError) Is(target error) bool { return target == ErrExport }

type ExportResult struct {
	Path   string
	Bytes  int
	Digest string
}

type ResultsWriter struct {
	cryptoService *encryption.CryptoService
}

func NewResultsWriter(cryptoService *encryption.CryptoService) *ResultsWriter {
	return &ResultsWriter{cryptoService: cryptoService}
}

// Write renders the two-section results format.
func (rw *ResultsWriter) Write(w io.Writer, report models.TallyReport) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Presidential Candidates:")
	for _, c := range report.Presidents {
		writeResultLine(bw, c)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Vice Presidential Candidates:")
	for _, c := range report.VicePresidents {
		writeResultLine(bw, c)
	}

	return bw.Flush()
}

func writeResultLine(w io.Writer, c models.CandidateView) {
	fmt.Fprintf(w, "Name: %s, Party: %s, Votes: %d\n", c.Name, c.Party, c.VoteCount)
}

// Export writes the report to a temporary sibling of path and renames it
// into place.
func (rw *ResultsWriter) Export(path string, report models.TallyReport) (*ExportResult, error) {
	var buf bytes.Buffer
	if err := rw.Write(&buf, report); err != nil {
		return nil, &ExportError{Path: path, Err: err}
	}

	if err := writeFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return nil, &ExportError{Path: path, Err: err}
	}

	return &ExportResult{
		Path:   path,
		Bytes:  buf.Len(),
		Digest: rw.cryptoService.Digest(buf.Bytes()),
	}, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return xerrors.Errorf("failed to create directory: %w", err)
		}
	}

	tempPath := path + ".tmp"
	f, err := os.OpenFile(tempPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return xerrors.Errorf("failed to create file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tempPath)
		return xerrors.Errorf("failed to write file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return xerrors.Errorf("failed to close file: %w", err)
	}

	// Atomic rename to ensure consistency
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return xerrors.Errorf("failed to save file: %w", err)
	}

	return nil
}
