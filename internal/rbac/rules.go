package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"clinician": {
		"risk:compute",
		"assessment:create",
		"assessment:view-own",
		"user:change_password",
	},
	"auditor": {
		"risk:compute",
		"assessment:view-all",
		"users:list",
	},
	"admin": {
		"*", // everything
	},
}
