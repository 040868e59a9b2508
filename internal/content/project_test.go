package content_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-portfolio/internal/content"
)

func TestParseProjects_PreservesKeyOrderAndValues(t *testing.T) {
	items, err := content.ParseProjects([]byte(`[{"title":"Site","id":7,"tech":["go","<ts>"],"ratio":1.50}]`))
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, []string{"title", "id", "tech", "ratio"}, items[0].Record().Keys())

	id, err := items[0].ID()
	require.NoError(t, err)
	assert.Equal(t, "7", id)

	data, err := json.Marshal(items[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Site","id":7,"tech":["go","<ts>"],"ratio":1.50}`, string(data))
}

func TestProject_DefaultKindAppendsWhenAbsent(t *testing.T) {
	items, err := content.ParseProjects([]byte(`[{"id":"b"},{"id":"c","kind":"project"}]`))
	require.NoError(t, err)

	for _, item := range items {
		require.NoError(t, item.DefaultKind(content.KindExperimental))
	}

	assert.Equal(t, content.KindExperimental, items[0].Kind())
	assert.Equal(t, []string{"id", "kind"}, items[0].Record().Keys())
	assert.Equal(t, content.KindProject, items[1].Kind())
}

func TestProject_IDRules(t *testing.T) {
	items, err := content.ParseProjects([]byte(`[{"title":"no id"},{"id":null},{"id":"../x"},{"id":{"a":1}},"loose",{"id":true}]`))
	require.NoError(t, err)
	require.Len(t, items, 6)

	_, err = items[0].ID()
	assert.ErrorIs(t, err, content.ErrMissingID)
	for _, i := range []int{1, 2, 3} {
		_, err = items[i].ID()
		assert.ErrorIs(t, err, content.ErrUnsafeID, "item %d", i)
	}
	_, err = items[4].ID()
	assert.ErrorIs(t, err, content.ErrNotObject)

	id, err := items[5].ID()
	require.NoError(t, err)
	assert.Equal(t, "true", id)

	data, err := json.Marshal(items[4])
	require.NoError(t, err)
	assert.Equal(t, `"loose"`, string(data))
}

func TestProject_Featured(t *testing.T) {
	items, err := content.ParseProjects([]byte(`[{"featured":true},{"featured":1},{"featured":"no"},{}]`))
	require.NoError(t, err)

	assert.True(t, items[0].Featured())
	assert.True(t, items[1].Featured())
	assert.False(t, items[2].Featured())
	assert.False(t, items[3].Featured())
}

func TestParseProjects_RejectsNonArrays(t *testing.T) {
	_, err := content.ParseProjects([]byte(`{"id":"a"}`))
	assert.ErrorIs(t, err, content.ErrNotArray)

	_, err = content.ParseProjects([]byte(`[{"id":`))
	assert.Error(t, err)
}

func TestRecord_RepeatedKeyKeepsFirstPosition(t *testing.T) {
	record := content.NewRecord()
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":2,"a":3}`), record))

	assert.Equal(t, []string{"a", "b"}, record.Keys())
	value, ok := record.Value("a")
	require.True(t, ok)
	assert.Equal(t, json.Number("3"), value)
}
