package openai

import (
	"context"
	"errors"
	"testing"
	"time"

	gopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"semscore/internal/domain"
)

// fakeEmbeddings returns fixed unit vectors per token so tests run without
// a network. Unknown tokens get a vector orthogonal to everything known.
type fakeEmbeddings struct {
	vectors  map[string][]float32
	batches  []int
	err      error
	fallback []float32
}

func (f *fakeEmbeddings) CreateEmbeddings(_ context.Context, conv gopenai.EmbeddingRequestConverter) (gopenai.EmbeddingResponse, error) {
	if f.err != nil {
		return gopenai.EmbeddingResponse{}, f.err
	}
	req := conv.Convert()
	inputs, ok := req.Input.([]string)
	if !ok {
		return gopenai.EmbeddingResponse{}, errors.New("unexpected input type")
	}
	f.batches = append(f.batches, len(inputs))
	resp := gopenai.EmbeddingResponse{}
	for _, in := range inputs {
		vec, ok := f.vectors[in]
		if !ok {
			vec = f.fallback
		}
		resp.Data = append(resp.Data, gopenai.Embedding{Embedding: vec})
	}
	return resp, nil
}

func newTestScorer(client embeddingClient, batch int, rescale bool) *Scorer {
	return &Scorer{client: client, model: "test-model", batch: batch, rescale: rescale}
}

func axisVectors(tokens ...string) map[string][]float32 {
	m := make(map[string][]float32, len(tokens))
	for i, tok := range tokens {
		vec := make([]float32, len(tokens)+1)
		vec[i] = 1
		m[tok] = vec
	}
	return m
}

func TestScorer_Score(t *testing.T) {
	ctx := context.Background()

	t.Run("Should score identical chunks at one", func(t *testing.T) {
		fake := &fakeEmbeddings{vectors: axisVectors("cat", "sat", "the"), fallback: []float32{0, 0, 0, 1}}
		s := newTestScorer(fake, 8, false)
		got, err := s.Score(ctx, []domain.ChunkPair{
			{Candidate: "the cat sat", Reference: "the cat sat"},
		})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got.Precision[0], 1e-6)
		assert.InDelta(t, 1.0, got.Recall[0], 1e-6)
		assert.InDelta(t, 1.0, got.F1[0], 1e-6)
	})
	t.Run("Should score orthogonal chunks at zero", func(t *testing.T) {
		fake := &fakeEmbeddings{vectors: axisVectors("alpha", "beta"), fallback: []float32{0, 0, 1}}
		s := newTestScorer(fake, 8, false)
		got, err := s.Score(ctx, []domain.ChunkPair{
			{Candidate: "alpha", Reference: "beta"},
		})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, got.Precision[0], 1e-6)
		assert.InDelta(t, 0.0, got.F1[0], 1e-6)
	})
	t.Run("Should micro-batch the vocabulary at the configured size", func(t *testing.T) {
		fake := &fakeEmbeddings{vectors: axisVectors("a", "b", "c", "d", "e"), fallback: []float32{0, 0, 0, 0, 0, 1}}
		s := newTestScorer(fake, 2, false)
		_, err := s.Score(ctx, []domain.ChunkPair{
			{Candidate: "a b c", Reference: "d e"},
		})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 2, 1}, fake.batches)
	})
	t.Run("Should wrap backend failures as scoring failures", func(t *testing.T) {
		fake := &fakeEmbeddings{err: errors.New("boom")}
		s := newTestScorer(fake, 8, false)
		_, err := s.Score(ctx, []domain.ChunkPair{{Candidate: "a", Reference: "b"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrScoringFailed)
	})
	t.Run("Should treat padded empty sides as misses", func(t *testing.T) {
		fake := &fakeEmbeddings{vectors: axisVectors("tail"), fallback: []float32{0, 1}}
		s := newTestScorer(fake, 8, false)
		got, err := s.Score(ctx, []domain.ChunkPair{
			{Candidate: "tail", Reference: ""},
			{Candidate: "", Reference: ""},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, got.F1[0])
		assert.Equal(t, 1.0, got.F1[1])
	})
	t.Run("Should spread scores when rescaling against the baseline", func(t *testing.T) {
		fake := &fakeEmbeddings{vectors: axisVectors("x", "y", "z"), fallback: []float32{0, 0, 0, 1}}
		s := newTestScorer(fake, 8, true)
		got, err := s.Score(ctx, []domain.ChunkPair{
			{Candidate: "x y", Reference: "x z"},
		})
		require.NoError(t, err)
		// Orthogonal axis vectors give a zero baseline, so rescaling is
		// the identity here; the point is it stays finite and ordered.
		assert.GreaterOrEqual(t, got.Precision[0], got.F1[0]-1e-9)
		assert.LessOrEqual(t, got.F1[0], 1.0)
	})
}

func TestNewScorer(t *testing.T) {
	t.Run("Should reject a non-positive batch size", func(t *testing.T) {
		_, err := NewScorer(Config{BatchSize: 0})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
	t.Run("Should report a missing API key as unavailable", func(t *testing.T) {
		t.Setenv("SEMSCORE_TEST_KEY", "")
		_, err := NewScorer(Config{BatchSize: 8, APIKeyEnv: "SEMSCORE_TEST_KEY"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrScoringUnavailable)
	})
	t.Run("Should build a scorer with a request timeout", func(t *testing.T) {
		t.Setenv("SEMSCORE_TEST_KEY", "sk-test")
		s, err := NewScorer(Config{
			BatchSize: 4,
			APIKeyEnv: "SEMSCORE_TEST_KEY",
			Timeout:   5 * time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, "openai", s.Name())
	})
	t.Run("Should default the model and key env", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		s, err := NewScorer(Config{BatchSize: 8})
		require.NoError(t, err)
		assert.Equal(t, string(gopenai.SmallEmbedding3), s.model)
	})
}
