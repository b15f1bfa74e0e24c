package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/similar/internal/core/domain"
)

// expandK saturates the within-document frequency in expansion weights.
const expandK = 1.0

type expandTerm struct {
	term   string
	weight float64
}

// Find returns the documents relevant to id at or above threshold.
//
// The query of a document is its expansion set: the terms that best tell
// it apart from the rest of the corpus when it is taken as the only
// relevant document. FTS5 retrieves every document holding one of those
// terms and each is weighted with BM25. Percentages scale each weight by
// the best weight and by the share of query terms the best hit contains,
// so only a document containing every query term at top weight scores 100.
func (x *Index) Find(ctx context.Context, id domain.DocumentID, threshold int) ([]domain.Match, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.closed {
		return nil, domain.ErrIndexClosed
	}

	stats, err := x.corpusStats(ctx)
	if err != nil {
		return nil, err
	}
	terms, err := x.expand(ctx, id, stats)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return []domain.Match{}, nil
	}

	hits, err := x.rank(ctx, terms, stats)
	if err != nil {
		return nil, err
	}
	return percentages(hits, len(terms), threshold), nil
}

// percentages converts ranked hits to scores and applies threshold.
func percentages(hits []hit, queryTerms, threshold int) []domain.Match {
	matches := make([]domain.Match, 0, len(hits))
	if len(hits) == 0 || hits[0].weight <= 0 {
		return matches
	}

	scale := float64(hits[0].matched) / float64(queryTerms) * 100 / hits[0].weight
	for _, h := range hits {
		pct := max(0, min(100, int(h.weight*scale+1e-9)))
		if pct >= threshold {
			matches = append(matches, domain.Match{Document: h.doc, Score: pct})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Document < matches[j].Document
	})
	return matches
}

type corpusStats struct {
	docs   int
	avgLen float64
}

func (x *Index) corpusStats(ctx context.Context) (corpusStats, error) {
	var s corpusStats
	if err := x.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(AVG(length), 0) FROM documents").Scan(&s.docs, &s.avgLen); err != nil {
		return s, fmt.Errorf("corpus stats: %w", err)
	}
	return s, nil
}

// expand returns the expansion set of id, best first.
func (x *Index) expand(ctx context.Context, id domain.DocumentID, stats corpusStats) ([]string, error) {
	var length int
	err := x.db.QueryRowContext(ctx, "SELECT length FROM documents WHERE id = ?", id).Scan(&length)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: document %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get document %d: %w", id, err)
	}
	if length == 0 || stats.avgLen == 0 {
		return nil, nil
	}

	rows, err := x.db.QueryContext(ctx, `
		SELECT p.term, p.wdf, (SELECT COUNT(*) FROM postings q WHERE q.term = p.term)
		FROM postings p
		WHERE p.doc = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query postings: %w", err)
	}
	defer rows.Close()

	var candidates []expandTerm
	for rows.Next() {
		var (
			term    string
			wdf, df int
		)
		if err := rows.Scan(&term, &wdf, &df); err != nil {
			return nil, fmt.Errorf("scan posting: %w", err)
		}
		if w := expandWeight(wdf, df, length, stats); w > 0 {
			candidates = append(candidates, expandTerm{term: term, weight: w})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].weight != candidates[j].weight {
			return candidates[i].weight > candidates[j].weight
		}
		return candidates[i].term < candidates[j].term
	})
	if len(candidates) > x.expandTerms {
		candidates = candidates[:x.expandTerms]
	}

	terms := make([]string, len(candidates))
	for i, c := range candidates {
		terms[i] = c.term
	}
	return terms, nil
}

// expandWeight is the Robertson/Sparck Jones relevance weight of a term
// for a relevant set made of one document (R = r = 1), multiplied by the
// saturated within-document frequency.
func expandWeight(wdf, df, length int, stats corpusStats) float64 {
	const r, bigR = 1.0, 1.0
	n, bigN := float64(df), float64(stats.docs)

	rsj := (r + 0.5) * (bigN - bigR - n + r + 0.5) / ((bigR - r + 0.5) * (n - r + 0.5))
	if rsj < 2 {
		rsj = rsj*0.5 + 1
	}

	lenNorm := float64(length) / stats.avgLen
	saturated := (expandK + 1) * float64(wdf) / (expandK*lenNorm + float64(wdf))
	return math.Log(rsj) * saturated
}

// BM25 parameters.
const (
	bm25K1         = 1.0
	bm25B          = 0.5
	bm25MinNormLen = 0.5
)

// idf is the BM25 inverse document frequency. Terms present in more than
// half the corpus keep a small positive weight instead of dropping to
// zero, so shared vocabulary still counts in small directories.
func idf(df int, stats corpusStats) float64 {
	tw := (float64(stats.docs) - float64(df) + 0.5) / (float64(df) + 0.5)
	if tw < 2 {
		tw = tw*0.5 + 1
	}
	return math.Log(tw)
}

type hit struct {
	doc     domain.DocumentID
	weight  float64
	matched int
}

// rank retrieves the documents matching any of terms through FTS5 and
// returns them weighted with BM25, best first.
func (x *Index) rank(ctx context.Context, terms []string, stats corpusStats) ([]hit, error) {
	args := make([]any, 0, len(terms)+1)
	args = append(args, orQuery(terms))
	for _, t := range terms {
		args = append(args, t)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(terms)), ",")

	rows, err := x.db.QueryContext(ctx, `
		SELECT p.doc, p.term, p.wdf, d.length
		FROM postings p
		JOIN documents d ON d.id = p.doc
		WHERE p.doc IN (SELECT rowid FROM terms WHERE terms MATCH ?)
		  AND p.term IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("match query: %w", err)
	}
	defer rows.Close()

	type posting struct {
		doc         domain.DocumentID
		wdf, length int
	}
	byTerm := make(map[string][]posting, len(terms))
	for rows.Next() {
		var (
			p    posting
			term string
		)
		if err := rows.Scan(&p.doc, &term, &p.wdf, &p.length); err != nil {
			return nil, fmt.Errorf("scan posting: %w", err)
		}
		byTerm[term] = append(byTerm[term], p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byDoc := make(map[domain.DocumentID]*hit)
	for _, postings := range byTerm {
		termWeight := idf(len(postings), stats)
		for _, p := range postings {
			h := byDoc[p.doc]
			if h == nil {
				h = &hit{doc: p.doc}
				byDoc[p.doc] = h
			}
			normLen := max(float64(p.length)/stats.avgLen, bm25MinNormLen)
			k := bm25K1 * ((1 - bm25B) + bm25B*normLen)
			h.weight += termWeight * (bm25K1 + 1) * float64(p.wdf) / (k + float64(p.wdf))
			h.matched++
		}
	}

	hits := make([]hit, 0, len(byDoc))
	for _, h := range byDoc {
		hits = append(hits, *h)
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].weight != hits[j].weight {
			return hits[i].weight > hits[j].weight
		}
		return hits[i].doc < hits[j].doc
	})
	return hits, nil
}

// orQuery builds an FTS5 query matching any of terms. Each term is quoted
// so FTS5 operators inside it are taken literally.
func orQuery(terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " OR ")
}
