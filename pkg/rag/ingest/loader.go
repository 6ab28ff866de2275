package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"knagent-be/internal/entity"
	"knagent-be/pkg/utils"
)

var supportedExtensions = map[string]bool{".txt": true, ".md": true}

type Document struct {
	Path     string
	Text     string
	Metadata entity.ChunkMetadata
}

// LoadDocuments walks dir and reads every supported file. Other files are skipped.
// A document's source is its slash-separated path relative to dir, so files
// sharing a name in different folders never replace each other's chunks.
func LoadDocuments(dir string) ([]Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("data directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory %q is not a directory", dir)
	}

	var docs []Document
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("relative path of %s: %w", path, err)
		}
		meta := MetadataFor(path)
		meta.Source = filepath.ToSlash(rel)
		docs = append(docs, Document{
			Path:     path,
			Text:     string(content),
			Metadata: meta,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// Chunk splits a document into unembedded chunks that share its metadata.
func Chunk(doc Document, collection string, splitter *utils.RecursiveSplitter) []*entity.KnowledgeChunk {
	pieces := splitter.Split(doc.Text)
	chunks := make([]*entity.KnowledgeChunk, 0, len(pieces))
	for i, p := range pieces {
		chunks = append(chunks, &entity.KnowledgeChunk{
			Collection: collection,
			Text:       p,
			Metadata:   doc.Metadata,
			ChunkIndex: i,
		})
	}
	return chunks
}
