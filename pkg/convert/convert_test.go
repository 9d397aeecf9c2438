package convert_test

import (
	"testing"

	"github.com/aretw0/arbor/internal/validator"
	"github.com/aretw0/arbor/pkg/convert"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawDoc() *schema.RawNode {
	return &schema.RawNode{
		UUID:     "root",
		Name:     "V2",
		NodeType: schema.RawRoot,
		ChildNodeList: []*schema.RawNode{
			{
				UUID:     "m1",
				Name:     "Import",
				NodeType: schema.RawModule,
				ChildNodeList: []*schema.RawNode{
					{
						UUID:          "c1",
						Name:          "Imports data",
						NodeType:      schema.RawUseCase,
						PriorityLevel: "0",
						ChildNodeList: []*schema.RawNode{
							{Name: "Logged in", NodeType: schema.RawPrecondition},
							{UUID: "s1", Name: "Open page", NodeType: schema.RawStep, SortNumber: 7},
						},
					},
				},
			},
			{UUID: "x", Name: "Notes", NodeType: "legacyNode"},
		},
	}
}

func TestToMindMap(t *testing.T) {
	m, err := convert.ToMindMap(rawDoc(), convert.WithIDGenerator(func() string { return "gen" }))
	require.NoError(t, err)
	require.NoError(t, validator.Validate(m))

	assert.Equal(t, "root", m.RootUUID)
	assert.Equal(t, 6, m.Len())
	assert.Equal(t, domain.NodeTypeDemand, m.Nodes["root"].NodeType)
	assert.Equal(t, domain.NodeTypeGeneral, m.Nodes["x"].NodeType)
	assert.Equal(t, domain.PriorityP0, m.Nodes["c1"].PriorityLevel)

	assert.Equal(t, []string{"gen", "s1"}, m.Nodes["c1"].ChildNodeList)
	assert.Equal(t, "c1", m.Nodes["gen"].ParentUUID)
	assert.Equal(t, 2, m.Nodes["s1"].SortNumber, "sortNumber mirrors list order")
	assert.False(t, m.Nodes["s1"].Measured())
}

func TestToMindMap_Invalid(t *testing.T) {
	doc := rawDoc()
	doc.ChildNodeList[1].UUID = "m1"

	_, err := convert.ToMindMap(doc)
	require.Error(t, err)
	assert.NotEmpty(t, schema.ValidationErrors(err))
}

func TestRoundTrip(t *testing.T) {
	m, err := convert.ToMindMap(rawDoc())
	require.NoError(t, err)

	raw, err := convert.FromMindMap(m)
	require.NoError(t, err)

	again, err := convert.ToMindMap(raw)
	require.NoError(t, err)
	assert.Equal(t, m, again)
	assert.Equal(t, schema.RawGeneral, raw.ChildNodeList[1].NodeType)
}

func TestFromMindMap_Dangling(t *testing.T) {
	m, err := convert.ToMindMap(rawDoc())
	require.NoError(t, err)
	delete(m.Nodes, "s1")

	_, err = convert.FromMindMap(m)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestNewID(t *testing.T) {
	id := convert.NewID()
	assert.Len(t, id, 32)
	assert.NotContains(t, id, "-")
}
