package flat

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driven"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// Artifact file names within the data directory.
const (
	vectorFile   = "rag_index.bin"
	documentFile = "rag_docs.json"
)

// vectorMagic identifies the vector artifact format.
var vectorMagic = [4]byte{'H', 'Q', 'V', 'X'}

// vectorVersion is the current vector artifact version.
const vectorVersion uint32 = 1

// Store persists index generations as two paired artifacts: a binary
// vector file and a JSON document list. A generation is published by
// writing both to temporary paths and renaming them into place, so a
// concurrent Load sees either the old pair or the new pair.
type Store struct {
	dataDir string
}

// NewStore creates an index store rooted at dataDir.
// If dataDir is empty, defaults to ~/.hopequre/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".hopequre", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dataDir: dataDir}, nil
}

// persistedDocument is the on-disk document list entry.
type persistedDocument struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// Save atomically replaces the current generation.
func (s *Store) Save(_ context.Context, vectors [][]float32, docs []domain.Document) error {
	if len(vectors) != len(docs) {
		return fmt.Errorf("save index: %d vectors for %d documents: %w",
			len(vectors), len(docs), domain.ErrIndexSkew)
	}
	if len(vectors) == 0 {
		return fmt.Errorf("save index: %w", domain.ErrEmptyCorpus)
	}

	vecBytes, err := encodeVectors(vectors)
	if err != nil {
		return fmt.Errorf("encode vectors: %w", err)
	}

	persisted := make([]persistedDocument, len(docs))
	for i, d := range docs {
		persisted[i] = persistedDocument{Tag: string(d.Tag), Text: d.Text}
	}
	docBytes, err := json.Marshal(persisted)
	if err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}

	// Stage both artifacts first; publish only when both are on disk.
	vecTmp, err := writeTemp(s.dataDir, vectorFile, vecBytes)
	if err != nil {
		return fmt.Errorf("stage vector artifact: %w", err)
	}
	docTmp, err := writeTemp(s.dataDir, documentFile, docBytes)
	if err != nil {
		os.Remove(vecTmp)
		return fmt.Errorf("stage document artifact: %w", err)
	}

	if err := os.Rename(vecTmp, filepath.Join(s.dataDir, vectorFile)); err != nil {
		os.Remove(vecTmp)
		os.Remove(docTmp)
		return fmt.Errorf("publish vector artifact: %w", err)
	}
	if err := os.Rename(docTmp, filepath.Join(s.dataDir, documentFile)); err != nil {
		os.Remove(docTmp)
		return fmt.Errorf("publish document artifact: %w", err)
	}

	logger.Debug("Published index generation: %d documents, %d dims",
		len(docs), len(vectors[0]))
	return nil
}

// Load reads the current generation.
func (s *Store) Load(_ context.Context) (driven.VectorIndex, []domain.Document, error) {
	vecBytes, err := os.ReadFile(filepath.Join(s.dataDir, vectorFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("no vector artifact: %w", domain.ErrIndexUnavailable)
		}
		return nil, nil, fmt.Errorf("read vector artifact: %v: %w", err, domain.ErrIndexUnavailable)
	}

	docBytes, err := os.ReadFile(filepath.Join(s.dataDir, documentFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("no document artifact: %w", domain.ErrIndexUnavailable)
		}
		return nil, nil, fmt.Errorf("read document artifact: %v: %w", err, domain.ErrIndexUnavailable)
	}

	vectors, err := decodeVectors(vecBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("decode vector artifact: %v: %w", err, domain.ErrIndexUnavailable)
	}

	var persisted []persistedDocument
	if err := json.Unmarshal(docBytes, &persisted); err != nil {
		return nil, nil, fmt.Errorf("decode document artifact: %v: %w", err, domain.ErrIndexUnavailable)
	}

	if len(vectors) != len(persisted) {
		return nil, nil, fmt.Errorf("load index: %d vectors for %d documents: %w",
			len(vectors), len(persisted), domain.ErrIndexSkew)
	}

	docs := make([]domain.Document, len(persisted))
	for i, p := range persisted {
		docs[i] = domain.Document{Tag: domain.DocTag(p.Tag), Text: p.Text}
	}

	index, err := NewIndex(vectors)
	if err != nil {
		return nil, nil, fmt.Errorf("rebuild index from artifact: %v: %w", err, domain.ErrIndexUnavailable)
	}

	return index, docs, nil
}

// writeTemp writes data to a temporary file next to the target so the
// final rename stays on one filesystem.
func writeTemp(dir, target string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, target+".tmp-*")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// encodeVectors serialises vectors as magic, version, dims, count,
// then little-endian float32 rows.
func encodeVectors(vectors [][]float32) ([]byte, error) {
	dims := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dims {
			return nil, fmt.Errorf("vector %d has %d dims, want %d: %w",
				i, len(v), dims, domain.ErrDimensionMismatch)
		}
	}

	buf := make([]byte, 0, 16+len(vectors)*dims*4)
	buf = append(buf, vectorMagic[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, vectorVersion)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dims))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(vectors)))
	for _, v := range vectors {
		for _, f := range v {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf, nil
}

// decodeVectors reverses encodeVectors.
func decodeVectors(data []byte) ([][]float32, error) {
	if len(data) < 16 {
		return nil, errors.New("artifact truncated")
	}
	if [4]byte(data[:4]) != vectorMagic {
		return nil, errors.New("bad magic")
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != vectorVersion {
		return nil, fmt.Errorf("unsupported artifact version %d", v)
	}

	dims := int(binary.LittleEndian.Uint32(data[8:12]))
	count := int(binary.LittleEndian.Uint32(data[12:16]))
	if dims <= 0 || count <= 0 {
		return nil, errors.New("bad header")
	}

	body := data[16:]
	if len(body) != count*dims*4 {
		return nil, fmt.Errorf("artifact body is %d bytes, want %d", len(body), count*dims*4)
	}

	vectors := make([][]float32, count)
	for i := 0; i < count; i++ {
		row := make([]float32, dims)
		for j := 0; j < dims; j++ {
			off := (i*dims + j) * 4
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(body[off:]))
		}
		vectors[i] = row
	}
	return vectors, nil
}
