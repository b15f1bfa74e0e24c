// Package similarity builds the similarity graph of a corpus and extracts
// its clusters.
//
// A directed edge A->B exists when B is among A's relevance matches at the
// configured threshold. Clusters are the strongly-connected components of
// that graph with at least two members: every file in a cluster is
// similar to some other member, and similarity leads back around to it.
//
// The package depends only on the driven.RelevanceQuery port, so it can be
// exercised with an in-memory provider.
package similarity
