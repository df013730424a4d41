// Package skills derives the candidate's skill analysis: explicit skills from
// the structured resume, extra explicit skills proposed by the model, and
// implicit skills inferred from a fixed lookup table.
package skills

import "sort"

// implicitMap lists the practices a tool implies its users are familiar with
var implicitMap = map[string][]string{
	"pytorch":     {"autograd", "tensor ops", "gpu training"},
	"tensorflow":  {"graph execution", "model serving"},
	"sklearn":     {"model selection", "pipeline", "cross-validation"},
	"langchain":   {"prompt design", "tool calling", "retrieval"},
	"docker":      {"containerization", "image build", "runtime isolation"},
	"kubernetes":  {"orchestration", "scaling", "service mesh"},
	"mlflow":      {"experiment tracking", "model registry"},
	"airflow":     {"dag scheduling", "etl orchestration"},
	"redis":       {"caching", "pubsub", "kv store"},
	"postgres":    {"sql", "indexing", "query planning"},
	"rag":         {"vector search", "chunking", "embeddings"},
	"faiss":       {"ann search", "index types", "recall metrics"},
	"weaviate":    {"vector db", "schema", "hybrid search"},
	"opensearch":  {"fulltext", "bm25", "vector hybrid"},
	"onnx":        {"model export", "runtime"},
	"huggingface": {"transformers", "tokenizers", "datasets"},
}

// InferImplicit returns the deduplicated, sorted union of the mapped values of
// every explicit skill present in the table. Lookup is exact: callers pass
// normalized lowercase skills. It never returns nil.
func InferImplicit(explicit []string) []string {
	seen := make(map[string]struct{})
	for _, skill := range explicit {
		for _, implied := range implicitMap[skill] {
			seen[implied] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// MappedSkills returns the skills that have implicit mappings, sorted
func MappedSkills() []string {
	keys := make([]string, 0, len(implicitMap))
	for k := range implicitMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
