// Package api exposes the graph over HTTP.
//
// Routes:
//
//	GET  /health
//	GET  /metrics
//	PUT  /v1/facts/{id}                  body {"dependents": [...]}
//	GET  /v1/facts/{id}/invalidation
//	GET  /v1/analysis/cycles
//	GET  /v1/analysis/communities
//	GET  /v1/analysis/pagerank?iterations=&damping=
//	GET  /v1/analysis/centrality
//	GET  /v1/analysis/stats
//	GET  /v1/analysis/similarity?a=&b=
//	GET  /v1/analysis/spanning-tree
//	GET  /v1/analysis/kcore?k=
//	GET  /v1/analysis/flow?source=&sink=
//
// Responses are JSON. Malformed input yields 400 with {"error": "..."}.
// Unknown facts are not errors; they produce empty results.
package api
