package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// defaultPolicies maps the two WorkNest roles onto resources. Admin also
// inherits everything employee can do via the grouping policy.
var defaultPolicies = [][]string{
	{RoleEmployee, "booking", "create"},
	{RoleEmployee, "booking", "read"},
	{RoleEmployee, "booking", "update"},
	{RoleEmployee, "attendance", "create"},
	{RoleEmployee, "attendance", "update"},
	{RoleEmployee, "attendance", "read"},
	{RoleEmployee, "workspace", "read"},
	{RoleEmployee, "guest", "create"},
	{RoleEmployee, "guest", "read"},
	{RoleAdmin, "workspace", "manage"},
	{RoleAdmin, "booking", "sweep"},
	{RoleAdmin, "analytics", "read"},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range defaultPolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	if _, err := e.AddGroupingPolicy(RoleAdmin, RoleEmployee); err != nil {
		return nil, err
	}

	return e, nil
}
