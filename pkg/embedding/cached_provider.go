package embedding

// VectorCache is satisfied by memory.EmbeddingCache.
type VectorCache interface {
	Get(key string) ([]float32, bool)
	Save(key string, vector []float32)
}

// CachedProvider memoizes query embeddings. Document embeddings bypass the cache
// because ingestion sees each chunk once.
type CachedProvider struct {
	inner EmbeddingProvider
	cache VectorCache
}

func NewCachedProvider(inner EmbeddingProvider, cache VectorCache) *CachedProvider {
	return &CachedProvider{inner: inner, cache: cache}
}

func (p *CachedProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	if taskType != TaskRetrievalQuery {
		return p.inner.Generate(text, taskType)
	}

	key := taskType + "\x00" + text
	if values, ok := p.cache.Get(key); ok {
		return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: values}}, nil
	}

	res, err := p.inner.Generate(text, taskType)
	if err != nil {
		return nil, err
	}
	p.cache.Save(key, res.Embedding.Values)
	return res, nil
}
