package auth

import "hospital-management-backend/internal/models"

// Capabilities is the single place where role permissions are defined.
// Handlers check a capability, never a role string.
type Capabilities struct {
	CanManagePatients bool
	CanSchedule       bool
	CanRecordClinical bool
	CanManageLabs     bool
	CanPrescribe      bool
	CanCreateBill     bool
	CanEditBill       bool
	CanRecordPayment  bool
	CanCancelBill     bool
	CanViewReports    bool
}

var roleCapabilities = map[string]Capabilities{
	models.RoleAdmin: {
		CanManagePatients: true,
		CanSchedule:       true,
		CanRecordClinical: true,
		CanManageLabs:     true,
		CanPrescribe:      true,
		CanCreateBill:     true,
		CanEditBill:       true,
		CanRecordPayment:  true,
		CanCancelBill:     true,
		CanViewReports:    true,
	},
	models.RoleDoctor: {
		CanSchedule:       true,
		CanRecordClinical: true,
		CanManageLabs:     true,
		CanPrescribe:      true,
		CanViewReports:    true,
	},
	models.RoleNurse: {
		CanSchedule:       true,
		CanRecordClinical: true,
	},
	models.RoleReceptionist: {
		CanManagePatients: true,
		CanSchedule:       true,
		CanCreateBill:     true,
		CanRecordPayment:  true,
	},
	models.RoleLabTech: {
		CanManageLabs: true,
	},
	models.RolePharmacist: {
		CanPrescribe: false,
	},
	models.RoleAccountant: {
		CanCreateBill:    true,
		CanEditBill:      true,
		CanRecordPayment: true,
		CanCancelBill:    true,
		CanViewReports:   true,
	},
}

// For returns the capabilities of a role. Unknown roles get nothing.
func For(role string) Capabilities {
	return roleCapabilities[role]
}

// ValidRole reports whether role is one of the known staff roles.
func ValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}
