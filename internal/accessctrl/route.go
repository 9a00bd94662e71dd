package accessctrl

import "strings"

// RouteClass partitions the URL space into the three app sections. Every
// path maps to exactly one class.
type RouteClass int

const (
	RouteAdmin RouteClass = iota
	RouteTenant
	RouteLogin
)

func (rc RouteClass) String() string {
	switch rc {
	case RouteTenant:
		return "tenant"
	case RouteLogin:
		return "login"
	default:
		return "admin"
	}
}

const (
	// LoginPath is the only route reachable without a session.
	LoginPath = "/login"

	// TenantPrefix marks the resident-facing section of the app.
	TenantPrefix = "/tenant"

	// TenantHome is where tenant-role users land after sign-in.
	TenantHome = "/tenant/dashboard"

	// AdminHome is where staff and homeowners land after sign-in.
	AdminHome = "/dashboard"
)

// Classify maps a request path to its route class. The login path wins over
// the prefix check so the partition stays total and non-overlapping.
func Classify(path string) RouteClass {
	if path == LoginPath {
		return RouteLogin
	}
	if path == TenantPrefix || strings.HasPrefix(path, TenantPrefix+"/") {
		return RouteTenant
	}
	return RouteAdmin
}
