package common

// Cookie and header names of the session surface.
const (
	SessionCookieName = "token"
	CSRFCookieName    = "csrfToken"
	CSRFHeaderName    = "X-CSRF-Token"
)

// Roles a user account can hold.
const (
	RoleCustomer = "customer"
	RoleMerchant = "merchant"
	RoleAdmin    = "admin"
)

// Login types accepted by the login endpoint.
const (
	LoginTypeSystem = "systemLogin"
	LoginTypeGoogle = "googleLogin"
)
