package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// 预置角色名称
const (
	RoleSuperAdmin       = "super_admin"
	RoleReadonlyAuditor  = "readonly_auditor"
	RoleOrderManager     = "order_manager"
	RoleSalesDesk        = "sales_desk"
	RoleSupplierReviewer = "supplier_reviewer"
)

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role:     RoleSuperAdmin,
			Policies: []Policy{{Object: "/admin/*", Action: "*"}},
		},
		{
			Role:     RoleReadonlyAuditor,
			Policies: []Policy{{Object: "/admin/*", Action: "GET"}},
		},
		{
			Role:     RoleOrderManager,
			Inherits: []string{RoleReadonlyAuditor},
			Policies: []Policy{
				{Object: "/admin/orders/:id/status", Action: "PATCH"},
				{Object: "/admin/orders/:id/cancel", Action: "POST"},
			},
		},
		{
			Role:     RoleSalesDesk,
			Inherits: []string{RoleReadonlyAuditor},
			Policies: []Policy{
				{Object: "/admin/enquiries/:id/respond", Action: "POST"},
				{Object: "/admin/enquiries/:id/close", Action: "POST"},
			},
		},
		{
			Role:     RoleSupplierReviewer,
			Inherits: []string{RoleReadonlyAuditor},
			Policies: []Policy{
				{Object: "/admin/suppliers/:id/approve", Action: "POST"},
				{Object: "/admin/suppliers/:id/reject", Action: "POST"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，重复执行无副作用
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.available(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := s.EnsureRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			if err := s.GrantRolePolicy(role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
