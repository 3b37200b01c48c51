package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No authentication
	SecurityRefresh                      // Refresh token required
	SecurityAccess                       // Access token required
)

// RouteSecurityConfig maps named HTTP routes to their required security level
var RouteSecurityConfig = map[string]SecurityLevel{
	// Health - Public
	"health": SecurityPublic,

	// Catalog - Public
	"tools.list":         SecurityPublic,
	"tools.get":          SecurityPublic,
	"tools.availability": SecurityPublic,
	"categories.list":    SecurityPublic,

	// Auth - Public
	"auth.register": SecurityPublic,
	"auth.signin":   SecurityPublic,

	// Auth - Refresh Protected
	"auth.refresh": SecurityRefresh,

	// Cart - Access Protected
	"cart.get":            SecurityAccess,
	"cart.add":            SecurityAccess,
	"cart.remove":         SecurityAccess,
	"cart.remove_by_tool": SecurityAccess,
	"cart.update":         SecurityAccess,
	"cart.clear":          SecurityAccess,

	// Reservations - Access Protected
	"reservations.create": SecurityAccess,
	"reservations.list":   SecurityAccess,
	"reservations.get":    SecurityAccess,
	"reservations.cancel": SecurityAccess,

	// Payments - Access Protected
	"payments.process": SecurityAccess,
	"payments.list":    SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := RouteSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown routes
	return SecurityAccess
}
