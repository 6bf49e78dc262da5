package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps HTTP route names to their required security
// level. Reads are public; writes need a staff access token.
var EndpointSecurityConfig = map[string]SecurityLevel{
	"health": SecurityPublic,

	"listCategories": SecurityPublic,
	"createCategory": SecurityAccess,

	"listGames":  SecurityPublic,
	"createGame": SecurityAccess,

	"listCustomers":  SecurityPublic,
	"getCustomer":    SecurityPublic,
	"createCustomer": SecurityAccess,

	"listRentals":  SecurityPublic,
	"getRental":    SecurityPublic,
	"createRental": SecurityAccess,
	"returnRental": SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
