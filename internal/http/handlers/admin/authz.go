package admin

import (
	"strings"

	"github.com/b2b-bazaar/internal/authz"
	"github.com/b2b-bazaar/internal/constants"
	handlershared "github.com/b2b-bazaar/internal/http/handlers/shared"
	"github.com/b2b-bazaar/internal/http/response"

	"github.com/gin-gonic/gin"
)

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 获取当前管理员权限快照
func (h *Handler) GetAuthzMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	policies, err := h.AuthzService.GetAdminPolicies(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}

	superRole, _ := authz.NormalizeRole(authz.RoleSuperAdmin)
	isSuper := false
	for _, role := range roles {
		if role == superRole {
			isSuper = true
			break
		}
	}

	response.Success(c, gin.H{
		"admin_id": adminID,
		"is_super": isSuper,
		"roles":    roles,
		"policies": policies,
	})
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// SetAuthzAdminRoles 覆盖设置管理员角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	operatorID, ok := getAdminID(c)
	if !ok {
		return
	}
	targetID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req authzSetAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	user, err := h.UserRepo.GetByID(targetID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_update_failed", err)
		return
	}
	if user == nil || user.Role != constants.UserRoleAdmin {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}

	known, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	knownSet := make(map[string]struct{}, len(known))
	for _, role := range known {
		knownSet[role] = struct{}{}
	}
	roles := make([]string, 0, len(req.Roles))
	for _, role := range req.Roles {
		normalized, err := authz.NormalizeRole(role)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
			return
		}
		// 只允许绑定已存在的角色
		if _, ok := knownSet[normalized]; !ok {
			respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
			return
		}
		roles = append(roles, normalized)
	}
	if err := h.AuthzService.SetAdminRoles(targetID, roles); err != nil {
		respondError(c, response.CodeInternal, "error.authz_update_failed", err)
		return
	}
	requestLog(c).Infow("admin_authz_roles_updated",
		"operator_id", operatorID,
		"target_admin_id", targetID,
		"roles", strings.Join(roles, ","),
	)

	updated, err := h.AuthzService.GetAdminRoles(targetID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"admin_id": targetID,
		"roles":    updated,
	})
}
