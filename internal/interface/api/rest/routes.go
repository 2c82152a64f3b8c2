package rest

const (
	// auth
	RouteRegister = "/register"
	RouteLogin    = "/login"
	RouteLogout   = "/logout"
	RouteProfile  = "/profile"

	// files
	RouteDashboard  = "/dashboard"
	RouteUpload     = RouteDashboard + "/upload"
	RouteDownload   = RouteDashboard + "/download/:id"
	RouteDeleteFile = RouteDashboard + "/delete/:id"

	// admin
	RouteAdmin           = "/admin"
	RouteAdminCreateUser = RouteAdmin + "/create_user"
	RouteAdminDeleteUser = RouteAdmin + "/delete_user/:id"

	// ops
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)

// CredentialRoutes carry passwords in their bodies.
var CredentialRoutes = []string{RouteRegister, RouteLogin, RouteAdminCreateUser}
