package query

import (
	"sort"
	"strings"

	"github.com/mapforge/content-browser/model"
)

// ScoredAsset pairs an asset with its relevance score for one query.
type ScoredAsset struct {
	Asset model.Asset
	Score float64
}

// Filter returns the assets matching the query, ordered by descending
// relevance with ties broken by ascending case-insensitive display key. A
// blank or fully-unparseable query is treated as no filter and returns the
// input slice unchanged. The returned slice shares asset references with the
// input; assets are never copied or mutated.
func Filter(assets []model.Asset, queryStr string) []model.Asset {
	queryStr = strings.TrimSpace(queryStr)
	if queryStr == "" {
		return assets
	}
	tokens := Tokenize(queryStr)
	if len(tokens) == 0 {
		return assets
	}
	expr := Parse(tokens)
	if expr == nil {
		return assets
	}

	hits := rank(assets, expr)
	result := make([]model.Asset, len(hits))
	for i, hit := range hits {
		result[i] = hit.Asset
	}
	return result
}

// Rank is Filter with scores exposed, for callers that report per-hit
// relevance. A blank or unparseable query matches every asset with score
// zero, preserving input order.
func Rank(assets []model.Asset, queryStr string) []ScoredAsset {
	queryStr = strings.TrimSpace(queryStr)
	if queryStr != "" {
		if tokens := Tokenize(queryStr); len(tokens) > 0 {
			if expr := Parse(tokens); expr != nil {
				return rank(assets, expr)
			}
		}
	}
	all := make([]ScoredAsset, len(assets))
	for i, asset := range assets {
		all[i] = ScoredAsset{Asset: asset}
	}
	return all
}

// Matches reports whether a single asset satisfies the query. It tokenizes
// and parses per call; queries are short and call volume is UI-driven, so no
// caching is done.
func Matches(asset model.Asset, queryStr string) bool {
	queryStr = strings.TrimSpace(queryStr)
	if queryStr == "" {
		return true
	}
	tokens := Tokenize(queryStr)
	if len(tokens) == 0 {
		return true
	}
	expr := Parse(tokens)
	if expr == nil {
		return true
	}
	return Evaluate(expr, buildHaystack(asset))
}

// rank evaluates the parsed expression against every asset, scores the
// matches, and sorts them. Non-matches are dropped before scoring.
func rank(assets []model.Asset, expr Expr) []ScoredAsset {
	hits := make([]ScoredAsset, 0)
	for _, asset := range assets {
		if Evaluate(expr, buildHaystack(asset)) {
			hits = append(hits, ScoredAsset{Asset: asset})
		}
	}
	if len(hits) == 0 {
		return hits
	}
	for i := range hits {
		hits[i].Score = Score(hits[i].Asset, expr)
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return strings.ToLower(hits[i].Asset.DisplayKey()) < strings.ToLower(hits[j].Asset.DisplayKey())
	})
	return hits
}

// buildHaystack flattens an asset into the lowercased blob that term
// matching runs against. Field order and the synthesized "s{scale}x" /
// "{grid_width}x{grid_height}" fragments are load-bearing: assets without
// those fields historically contributed the literal text "sundefinedx" and
// "undefinedxundefined", and saved queries depend on that, so it is kept.
func buildHaystack(asset model.Asset) string {
	parts := []string{
		asset.FieldText("display_name"),
		asset.FieldText("filename"),
		asset.FieldText("path"),
		"s" + asset.RawFieldText("scale") + "x",
		asset.RawFieldText("grid_width") + "x" + asset.RawFieldText("grid_height"),
		asset.FieldText("size"),
		asset.FieldText("creature_type"),
		asset.FieldText("variant"),
		asset.FieldText("source"),
		asset.FieldText("tier"),
		asset.FieldText("color_variant"),
		asset.TagsText(),
	}
	return strings.ToLower(strings.Join(parts, " "))
}
