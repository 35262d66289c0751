package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Membership(t *testing.T) {
	session := NewSession()
	session.PickList = List{{ID: "ABC-100", Quantity: 1}}
	session.ReturnList = List{{ID: "ABC-100", Quantity: 1}, {ID: "XYZ-200", Quantity: 2}}

	t.Run("Item In Multiple Lists", func(t *testing.T) {
		membership := session.Membership("ABC-100")
		assert.True(t, membership[WorkflowPicking])
		assert.False(t, membership[WorkflowReceiving])
		assert.True(t, membership[WorkflowReturns])
	})

	t.Run("Item In One List", func(t *testing.T) {
		membership := session.Membership("XYZ-200")
		assert.False(t, membership[WorkflowPicking])
		assert.True(t, membership[WorkflowReturns])
	})

	t.Run("Unknown Item", func(t *testing.T) {
		for workflow, member := range session.Membership("NOPE-1") {
			assert.False(t, member, "unexpected membership in %s", workflow)
		}
	})
}
