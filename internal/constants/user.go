package constants

type UserRole string

const (
	RoleUser           UserRole = "user"
	RoleAdmin          UserRole = "admin"
	RoleProjectManager UserRole = "project_manager"
	RoleTeamLead       UserRole = "team_lead"
	RoleDeveloper      UserRole = "developer"
	RoleDesigner       UserRole = "designer"
	RoleQA             UserRole = "qa"
)

func UserRoles() []UserRole {
	return []UserRole{RoleUser, RoleAdmin, RoleProjectManager, RoleTeamLead, RoleDeveloper, RoleDesigner, RoleQA}
}

type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusRejected UserStatus = "rejected"
)

func UserStatuses() []UserStatus {
	return []UserStatus{UserStatusPending, UserStatusActive, UserStatusInactive, UserStatusRejected}
}

type Department string

const (
	DepartmentEngineering       Department = "engineering"
	DepartmentDesign            Department = "design"
	DepartmentProductManagement Department = "product_management"
	DepartmentQualityAssurance  Department = "quality_assurance"
	DepartmentMarketing         Department = "marketing"
	DepartmentSales             Department = "sales"
	DepartmentHumanResources    Department = "human_resources"
)

func Departments() []Department {
	return []Department{
		DepartmentEngineering,
		DepartmentDesign,
		DepartmentProductManagement,
		DepartmentQualityAssurance,
		DepartmentMarketing,
		DepartmentSales,
		DepartmentHumanResources,
	}
}

type Gender string

const (
	GenderMale           Gender = "Male"
	GenderFemale         Gender = "Female"
	GenderPreferNotToSay Gender = "Prefer not to say"
)

func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderPreferNotToSay}
}

const DefaultEmployeeIDStart = 20000
