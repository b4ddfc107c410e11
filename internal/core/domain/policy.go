package domain

// Action tags an operation that the access policy gates.
type Action string

const (
	ActionCreateTest          Action = "create_test"
	ActionUpdateTest          Action = "update_test"
	ActionSignTest            Action = "sign_test"
	ActionCreateBatch         Action = "create_batch"
	ActionCreateSpecification Action = "create_specification"
	ActionCreateEquipment     Action = "create_equipment"
	ActionReadAuditLog        Action = "read_audit_log"
	ActionManageUsers         Action = "manage_users"
)

// Decision is the outcome of a policy check.
type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

// restricted lists the actions limited to specific roles. Actions absent from
// the table are open to any active principal.
var restricted = map[Action][]Role{
	ActionReadAuditLog:        {RoleAdmin, RoleQCManager, RoleAuditor},
	ActionCreateSpecification: {RoleAdmin, RoleQCManager},
	ActionCreateEquipment:     {RoleAdmin, RoleQCManager},
	ActionManageUsers:         {RoleAdmin},
}

var open = map[Action]struct{}{
	ActionCreateTest:  {},
	ActionUpdateTest:  {},
	ActionSignTest:    {},
	ActionCreateBatch: {},
}

// Authorize is the single access policy table. It never fails: unknown roles,
// unknown actions and inactive principals are denied.
func Authorize(role Role, active bool, action Action) Decision {
	if !active || !role.Valid() {
		return Deny
	}
	if roles, ok := restricted[action]; ok {
		for _, r := range roles {
			if r == role {
				return Allow
			}
		}
		return Deny
	}
	if _, ok := open[action]; ok {
		return Allow
	}
	return Deny
}
