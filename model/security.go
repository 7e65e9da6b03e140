// model/security.go
package model

import "strings"

// SecurityLevel is a document classification or a user clearance.
type SecurityLevel string

const (
	SecurityLevelPublic       SecurityLevel = "PUBLIC"
	SecurityLevelInternal     SecurityLevel = "INTERNAL"
	SecurityLevelConfidential SecurityLevel = "CONFIDENTIAL"
)

var securityLevelRanks = map[SecurityLevel]int{
	SecurityLevelPublic:       1,
	SecurityLevelInternal:     2,
	SecurityLevelConfidential: 3,
}

// Rank returns the position of the level in the clearance order, or 0 for an unknown level.
func (l SecurityLevel) Rank() int {
	return securityLevelRanks[l]
}

// Valid reports whether l is one of the known levels.
func (l SecurityLevel) Valid() bool {
	return l.Rank() > 0
}

// ParseSecurityLevel normalizes s into a SecurityLevel. Unknown input yields ok == false.
func ParseSecurityLevel(s string) (SecurityLevel, bool) {
	level := SecurityLevel(strings.ToUpper(strings.TrimSpace(s)))
	return level, level.Valid()
}
