// model/neo4j/graph.go
package sec_neo4j

// Node labels of the identity and policy graph.
const (
	// LabelUser is a decision subject
	LabelUser = "User"

	// LabelRole carries a permission set
	LabelRole = "Role"

	// LabelDepartment is the ABAC department attribute
	LabelDepartment = "Department"

	// LabelPolicy is an ABAC or RuBAC rule record
	LabelPolicy = "Policy"
)

// Relationship types.
const (
	// RelHasRole links a user to an assigned role
	RelHasRole = "HAS_ROLE"

	// RelMemberOf links a user to their department
	RelMemberOf = "MEMBER_OF"
)
