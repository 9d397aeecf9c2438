package validator_test

import (
	"testing"

	"github.com/aretw0/arbor/internal/testutils"
	"github.com/aretw0/arbor/internal/validator"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, validator.Validate(testutils.Sample().Build()))
	require.NoError(t, validator.Validate(domain.NewMindMap()))

	tests := []struct {
		name   string
		mutate func(m *domain.MindMap)
		want   string
	}{
		{
			name:   "Missing Root",
			mutate: func(m *domain.MindMap) { m.RootUUID = "ghost" },
			want:   "root node 'ghost' not found",
		},
		{
			name:   "Collapsed Root",
			mutate: func(m *domain.MindMap) { m.Nodes["root"].IsCollapsed = true },
			want:   "root 'root' is collapsed",
		},
		{
			name:   "Dangling Child",
			mutate: func(m *domain.MindMap) { m.Nodes["m2"].ChildNodeList = []string{"ghost"} },
			want:   "node 'm2' lists missing child 'ghost'",
		},
		{
			name:   "Parent Mismatch",
			mutate: func(m *domain.MindMap) { m.Nodes["s2"].ParentUUID = "m2" },
			want:   "child 's2' of 'uc1' points to parent 'm2'",
		},
		{
			name: "Orphan",
			mutate: func(m *domain.MindMap) {
				m.Nodes["orphan"] = &domain.Node{UUID: "orphan", ParentUUID: "m2", NodeType: domain.NodeTypeGeneral}
			},
			want: "node 'orphan' is unreachable from root",
		},
		{
			name:   "Missing Parent",
			mutate: func(m *domain.MindMap) { m.Nodes["lost"] = &domain.Node{UUID: "lost", ParentUUID: "nowhere"} },
			want:   "node 'lost' references missing parent 'nowhere'",
		},
		{
			name:   "Sort Number Drift",
			mutate: func(m *domain.MindMap) { m.Nodes["s3"].SortNumber = 9 },
			want:   "node 's3' has sortNumber 9 at position 4",
		},
		{
			name: "Cycle",
			mutate: func(m *domain.MindMap) {
				m.Nodes["r1"].ChildNodeList = []string{"uc1"}
			},
			want: "node 'uc1' is reachable more than once",
		},
		{
			name:   "Key Mismatch",
			mutate: func(m *domain.MindMap) { m.Nodes["m2"].UUID = "other" },
			want:   "node key 'm2' holds uuid 'other'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutils.Sample().Build()
			tt.mutate(m)
			err := validator.Validate(m)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
