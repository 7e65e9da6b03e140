package engine

import "encoding/json"

// AllDepartments marks a document as visible to every department.
const AllDepartments = "ALL_DEPARTMENTS"

// Visibility is the decoded department field of a document.
type Visibility struct {
	All         bool
	Departments []string
}

// Includes reports whether department may see the document.
func (v Visibility) Includes(department string) bool {
	if v.All {
		return true
	}
	for _, d := range v.Departments {
		if d == department {
			return true
		}
	}
	return false
}

// DecodeDepartments interprets a stored department field. Anything that is
// neither the sentinel nor a JSON array is a legacy single department name.
func DecodeDepartments(field string) Visibility {
	if field == AllDepartments {
		return Visibility{All: true}
	}
	if field == "" {
		return Visibility{}
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(field), &parsed); err == nil {
		if items, ok := parsed.([]interface{}); ok {
			departments := make([]string, 0, len(items))
			for _, item := range items {
				// non-string entries can never name a department
				if s, ok := item.(string); ok {
					departments = append(departments, s)
				}
			}
			return Visibility{Departments: departments}
		}
	}

	return Visibility{Departments: []string{field}}
}

// EncodeDepartments produces the stored form of a visibility choice.
func EncodeDepartments(all bool, departments []string) string {
	if all {
		return AllDepartments
	}
	if departments == nil {
		departments = []string{}
	}
	data, _ := json.Marshal(departments)
	return string(data)
}
