package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderKeepsPublishOrder(t *testing.T) {
	recorder := NewRecorder()

	require.NoError(t, recorder.Publish("a", 1))
	require.NoError(t, recorder.Publish("b", 2))

	recorded := recorder.Events()
	require.Len(t, recorded, 2)
	assert.Equal(t, "a", recorded[0].Topic)
	assert.Equal(t, 1, recorded[0].Event)
	assert.Equal(t, "b", recorded[1].Topic)
	assert.Equal(t, 2, recorded[1].Event)
	assert.Equal(t, 2, recorder.Len())
}

func TestEventsReturnsCopy(t *testing.T) {
	recorder := NewRecorder()
	require.NoError(t, recorder.Publish("a", 1))

	recorded := recorder.Events()
	recorded[0].Topic = "mutated"

	assert.Equal(t, "a", recorder.Events()[0].Topic)
}
