package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferImplicit(t *testing.T) {
	tests := []struct {
		name     string
		explicit []string
		want     []string
	}{
		{
			name:     "empty",
			explicit: nil,
			want:     []string{},
		},
		{
			name:     "unmapped",
			explicit: []string{"go", "rust"},
			want:     []string{},
		},
		{
			name:     "single mapping",
			explicit: []string{"docker"},
			want:     []string{"containerization", "image build", "runtime isolation"},
		},
		{
			name:     "union is deduplicated and sorted",
			explicit: []string{"redis", "postgres", "go", "redis"},
			want:     []string{"caching", "indexing", "kv store", "pubsub", "query planning", "sql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferImplicit(tt.explicit))
		})
	}
}

func TestInferImplicit_Deterministic(t *testing.T) {
	input := MappedSkills()
	first := InferImplicit(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, InferImplicit(input))
	}
}

func TestInferImplicit_EveryMappingReachable(t *testing.T) {
	keys := MappedSkills()
	assert.Len(t, keys, 16)
	for _, k := range keys {
		assert.NotEmpty(t, InferImplicit([]string{k}), k)
	}
}
