package ingest

import (
	"path/filepath"
	"strings"

	"knagent-be/internal/entity"
)

type rbacRule struct {
	markers    []string
	role       entity.Role
	department string
}

// Rules are checked in order; the first file name marker that matches wins.
var rbacRules = []rbacRule{
	{[]string{"hr_policy", "employee_handbook", "diversity_inclusion"}, entity.RoleHREmployee, "HR"},
	{[]string{"it_security"}, entity.RoleITTech, "IT"},
	{[]string{"sales_playbook", "client_case_studies"}, entity.RoleSalesTeam, "Sales"},
}

// MetadataFor derives the access tag of a document from its file name.
// Anything unrecognised is visible to General_Employee.
func MetadataFor(path string) entity.ChunkMetadata {
	name := strings.ToLower(filepath.Base(path))
	for _, rule := range rbacRules {
		for _, m := range rule.markers {
			if strings.Contains(name, m) {
				return entity.ChunkMetadata{Role: rule.role, Department: rule.department, Source: filepath.Base(path)}
			}
		}
	}
	return entity.ChunkMetadata{Role: entity.RoleGeneralEmployee, Department: "General", Source: filepath.Base(path)}
}
