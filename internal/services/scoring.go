package services

import (
	"crypto/md5"
	"encoding/hex"
	"math"
	"sort"
	"strings"
)

// DeterministicScore computes the case-insensitive overlap of extracted vs
// required skills. It is the pure cross-check channel next to the generative
// evaluator and never calls out. Returns (0, nil) when required is empty.
func DeterministicScore(extracted, required []string) (float64, []string) {
	requiredSet := make(map[string]struct{}, len(required))
	for _, s := range required {
		requiredSet[strings.ToLower(s)] = struct{}{}
	}
	if len(requiredSet) == 0 {
		return 0, nil
	}

	extractedSet := make(map[string]struct{}, len(extracted))
	for _, s := range extracted {
		extractedSet[strings.ToLower(s)] = struct{}{}
	}

	var matched []string
	for s := range requiredSet {
		if _, ok := extractedSet[s]; ok {
			matched = append(matched, s)
		}
	}
	sort.Strings(matched)

	percentage := float64(len(matched)) / float64(len(requiredSet)) * 100
	return round2(percentage), matched
}

// ConfidenceScore derives confidence deterministically from the fit
// percentage: base 0.90, +0.05 above 80, -0.15 below 20, capped at 1.0.
func ConfidenceScore(matchPercentage float64) float64 {
	base := 0.90
	if matchPercentage > 80 {
		base += 0.05
	}
	if matchPercentage < 20 {
		base -= 0.15
	}
	return round2(math.Min(base, 1.0))
}

// ResumeEmbedding is a fixed-length numeric fingerprint of the resume text for
// downstream similarity use. It is content-derived, never produced by the
// generative service: the first 16 hex characters of the md5 digest, each
// mapped to its code point over 255.
func ResumeEmbedding(resumeText string) []float64 {
	sum := md5.Sum([]byte(resumeText))
	hexDigest := hex.EncodeToString(sum[:])[:16]

	out := make([]float64, 0, len(hexDigest))
	for _, c := range hexDigest {
		out = append(out, float64(c)/255.0)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
