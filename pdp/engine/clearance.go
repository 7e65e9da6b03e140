package engine

import "github.com/MichaelGetu-git/Security-Project/model"

// SatisfiesClearance reports whether userLevel dominates requiredLevel.
// Unknown levels never satisfy and are never satisfied.
func SatisfiesClearance(userLevel, requiredLevel model.SecurityLevel) bool {
	if !userLevel.Valid() || !requiredLevel.Valid() {
		return false
	}
	return userLevel.Rank() >= requiredLevel.Rank()
}
