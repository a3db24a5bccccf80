package schedule

// DefaultDurationMin is used when a booking references a service the
// catalog does not know about. Old bookings survive catalog renames.
const DefaultDurationMin = 30

// ServiceCatalog maps service names to their duration in minutes.
// Loaded from configuration at startup and immutable afterwards.
type ServiceCatalog map[string]int

// Duration returns the duration for a service, falling back to
// DefaultDurationMin for unknown names or non-positive entries.
func (c ServiceCatalog) Duration(service string) int {
	if d, ok := c[service]; ok && d > 0 {
		return d
	}
	return DefaultDurationMin
}

// DefaultCatalog returns the shop's standard service list.
func DefaultCatalog() ServiceCatalog {
	return ServiceCatalog{
		"Hair Cut":        30,
		"Kids Cut":        30,
		"Coils & Haircut": 30,
		"Barrel Twist":    120,
		"Home Service":    120,
		"Hair Color":      60,
	}
}
