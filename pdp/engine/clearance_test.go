package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MichaelGetu-git/Security-Project/model"
)

func TestSatisfiesClearance(t *testing.T) {
	levels := []model.SecurityLevel{
		model.SecurityLevelPublic,
		model.SecurityLevelInternal,
		model.SecurityLevelConfidential,
	}

	for _, user := range levels {
		for _, required := range levels {
			t.Run(string(user)+"_"+string(required), func(t *testing.T) {
				assert.Equal(t, user.Rank() >= required.Rank(), SatisfiesClearance(user, required))
			})
		}
	}

	t.Run("UnknownLevels", func(t *testing.T) {
		assert.False(t, SatisfiesClearance("TOP_SECRET", model.SecurityLevelPublic))
		assert.False(t, SatisfiesClearance(model.SecurityLevelConfidential, ""))
	})
}
