// Package openai implements the embedding-backed scorer. It embeds the
// distinct tokens of the batch through an OpenAI-compatible embeddings
// API and derives precision/recall/F1 per pair by greedy token matching
// over cosine similarities.
package openai

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"os"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"semscore/internal/domain"
	"semscore/internal/scoring"
)

// embeddingClient is the slice of the OpenAI client the scorer needs.
type embeddingClient interface {
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// Config configures the embedding scorer. Lang is a hint recorded for
// reporting; the embeddings API infers language from the input itself.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Lang      string
	BatchSize int
	UseIDF    bool
	Rescale   bool
	Timeout   time.Duration
}

// Scorer scores chunk pairs with one atomic batched evaluation. A failure
// while talking to the backend invalidates the whole batch.
type Scorer struct {
	client  embeddingClient
	model   string
	lang    string
	batch   int
	useIDF  bool
	rescale bool
}

// NewScorer builds the scorer, reading the API key from the configured
// environment variable.
func NewScorer(cfg Config) (*Scorer, error) {
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: batch-size must be > 0, got %d", domain.ErrConfiguration, cfg.BatchSize)
	}
	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(keyEnv)
	if key == "" {
		return nil, fmt.Errorf("%w: missing API key in env %s", domain.ErrScoringUnavailable, keyEnv)
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	model := cfg.Model
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &Scorer{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		lang:    cfg.Lang,
		batch:   cfg.BatchSize,
		useIDF:  cfg.UseIDF,
		rescale: cfg.Rescale,
	}, nil
}

func (s *Scorer) Name() string { return "openai" }

// Score embeds every distinct token once, then computes greedy-matching
// scores per pair. Result index i corresponds to pairs[i].
func (s *Scorer) Score(ctx context.Context, pairs []domain.ChunkPair) (domain.ScoreVector, error) {
	candTokens := make([][]string, len(pairs))
	refTokens := make([][]string, len(pairs))
	vocab := make(map[string]struct{})
	for i, p := range pairs {
		candTokens[i] = scoring.Tokenize(p.Candidate)
		refTokens[i] = scoring.Tokenize(p.Reference)
		for _, t := range candTokens[i] {
			vocab[t] = struct{}{}
		}
		for _, t := range refTokens[i] {
			vocab[t] = struct{}{}
		}
	}

	// Stable token order keeps runs byte-for-byte reproducible.
	tokens := make([]string, 0, len(vocab))
	for t := range vocab {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)

	vectors, err := s.embedAll(ctx, tokens)
	if err != nil {
		return domain.ScoreVector{}, err
	}

	weight := scoring.Uniform
	if s.useIDF {
		idf := scoring.NewIDF(refTokens)
		weight = idf.Weight
	}

	baseline := 0.0
	if s.rescale {
		baseline = meanPairwiseSimilarity(tokens, vectors)
	}

	out := domain.ScoreVector{
		Precision: make([]float64, len(pairs)),
		Recall:    make([]float64, len(pairs)),
		F1:        make([]float64, len(pairs)),
	}
	for i := range pairs {
		p := greedyMatch(candTokens[i], refTokens[i], vectors, weight)
		r := greedyMatch(refTokens[i], candTokens[i], vectors, weight)
		f := harmonic(p, r)
		if s.rescale {
			p = rescale(p, baseline)
			r = rescale(r, baseline)
			f = rescale(f, baseline)
		}
		out.Precision[i] = p
		out.Recall[i] = r
		out.F1[i] = f
	}
	return out, nil
}

// embedAll fetches L2-normalized embeddings for all tokens, micro-batched
// at the configured batch size.
func (s *Scorer) embedAll(ctx context.Context, tokens []string) (map[string][]float64, error) {
	vectors := make(map[string][]float64, len(tokens))
	for start := 0; start < len(tokens); start += s.batch {
		end := min(start+s.batch, len(tokens))
		resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model: openai.EmbeddingModel(s.model),
			Input: tokens[start:end],
		})
		if err != nil {
			return nil, fmt.Errorf("%w: embeddings request: %v", domain.ErrScoringFailed, err)
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", domain.ErrScoringFailed, len(resp.Data), end-start)
		}
		for j, d := range resp.Data {
			vec := make([]float64, len(d.Embedding))
			for k, v := range d.Embedding {
				vec[k] = float64(v)
			}
			l2normalize(vec)
			vectors[tokens[start+j]] = vec
		}
	}
	return vectors, nil
}

// greedyMatch is the BERTScore-style directed score: each from-token
// contributes its best cosine similarity against the to-tokens, weighted
// and averaged. Two tokenless sides match perfectly; one tokenless side
// scores zero so alignment padding stays penalized.
func greedyMatch(from, to []string, vectors map[string][]float64, weight func(string) float64) float64 {
	if len(from) == 0 {
		if len(to) == 0 {
			return 1.0
		}
		return 0.0
	}
	if len(to) == 0 {
		return 0.0
	}
	sum := 0.0
	total := 0.0
	for _, ft := range from {
		best := math.Inf(-1)
		for _, tt := range to {
			if sim := dot(vectors[ft], vectors[tt]); sim > best {
				best = sim
			}
		}
		w := weight(ft)
		sum += w * best
		total += w
	}
	if total == 0 {
		return 0.0
	}
	return sum / total
}

// meanPairwiseSimilarity estimates the similarity floor of the batch's
// vocabulary: the average cosine similarity between distinct tokens. It
// caps the token count so the estimate stays linear-ish for huge batches.
func meanPairwiseSimilarity(tokens []string, vectors map[string][]float64) float64 {
	const sampleLimit = 200
	n := min(len(tokens), sampleLimit)
	if n < 2 {
		return 0.0
	}
	sum := 0.0
	count := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += dot(vectors[tokens[i]], vectors[tokens[j]])
			count++
		}
	}
	return sum / float64(count)
}

// rescale maps a raw score against the baseline similarity floor, the
// same shape as BERTScore's rescale_with_baseline.
func rescale(score, baseline float64) float64 {
	if baseline >= 1.0 {
		return score
	}
	return (score - baseline) / (1.0 - baseline)
}

func harmonic(p, r float64) float64 {
	if p+r == 0 {
		return 0.0
	}
	return 2 * p * r / (p + r)
}

func dot(a, b []float64) float64 {
	n := min(len(a), len(b))
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func l2normalize(v []float64) {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := 1.0 / math.Sqrt(sum)
	for i := range v {
		v[i] *= inv
	}
}
